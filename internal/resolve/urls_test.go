package resolve

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chromedrv/chromedrv/internal/catalog"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		osID    string
		version string
		want    string
	}{
		// ARM mac rename boundary is exact at 106.0.5249.
		{catalog.MacARM, "105.0.1000", "mac64_m1"},
		{catalog.MacARM, "106.0.5248", "mac64_m1"},
		{catalog.MacARM, "106.0.5249", "mac_arm64"},
		{catalog.MacARM, "106.0.5250", "mac_arm64"},
		{catalog.MacARM, "114.0.5735.90", "mac_arm64"},
		// Post-115 versions use the table slug directly.
		{catalog.MacARM, "115.0.5790.170", "mac-arm64"},
		{catalog.Mac, "200.0", "mac-x64"},
		// Pre-115 intel mac remaps to the legacy spelling.
		{catalog.Mac, "114.0.5735.90", "mac64"},
		{catalog.MacIntel, "72.0.3626.69", "mac64"},
		// Linux and Windows slugs never change.
		{catalog.Linux, "72.0.3626.69", "linux64"},
		{catalog.Linux, "120.0.6099.109", "linux64"},
		{catalog.Win, "72.0.3626.69", "win32"},
		{catalog.Win, "120.0.6099.109", "win32"},
	}

	for _, tt := range tests {
		t.Run(tt.osID+"_"+tt.version, func(t *testing.T) {
			got, err := Slug(tt.osID, tt.version)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSlugUnknownOS(t *testing.T) {
	_, err := Slug("plan9", "115.0.5790.170")

	var unknownErr *catalog.UnknownOSError
	assert.ErrorAs(t, err, &unknownErr)
}

func TestSlugVersionComparisonIsNumeric(t *testing.T) {
	// "106.0.5249" < "106.0.5300" numerically even though the strings
	// compare differently lexicographically at equal length prefixes.
	got, err := Slug(catalog.MacARM, "106.0.5300")
	require.NoError(t, err)
	assert.Equal(t, "mac_arm64", got)

	got, err = Slug(catalog.MacARM, "99.0.9999")
	require.NoError(t, err)
	assert.Equal(t, "mac64_m1", got, "99 must sort below 106, not above")
}

func TestResolveDownloadURLLegacy(t *testing.T) {
	r := New(WithDetector(noBrowser), WithLegacyDownloadBase("https://legacy.example"))

	tests := []struct {
		osID    string
		version string
		want    string
	}{
		{catalog.Linux, "72.0.3626.69", "https://legacy.example/72.0.3626.69/chromedriver_linux64.zip"},
		{catalog.MacARM, "105.0.1000", "https://legacy.example/105.0.1000/chromedriver_mac64_m1.zip"},
		{catalog.Mac, "114.0.5735.90", "https://legacy.example/114.0.5735.90/chromedriver_mac64.zip"},
		{catalog.Win, "2.44", "https://legacy.example/2.44/chromedriver_win32.zip"},
	}

	for _, tt := range tests {
		got, err := r.ResolveDownloadURL(context.Background(), tt.version, tt.osID)
		require.NoError(t, err, "%s/%s", tt.osID, tt.version)
		assert.Equal(t, tt.want, got)
	}
}

func TestResolveDownloadURLMilestone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(milestonesFixture))
	}))
	defer srv.Close()

	r := New(WithDetector(noBrowser), WithMilestonesURL(srv.URL))

	got, err := r.ResolveDownloadURL(context.Background(), "115.0.5790.170", catalog.Linux)
	require.NoError(t, err)
	assert.Equal(t, "http://x/d.zip", got)
}

func TestResolveDownloadURLMilestonePlatformMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(milestonesFixture))
	}))
	defer srv.Close()

	r := New(WithDetector(noBrowser), WithMilestonesURL(srv.URL))

	// The fixture only lists linux64, so win cannot be resolved.
	_, err := r.ResolveDownloadURL(context.Background(), "115.0.5790.170", catalog.Win)

	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
}

func TestResolveDownloadURLMilestoneMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(milestonesFixture))
	}))
	defer srv.Close()

	r := New(WithDetector(noBrowser), WithMilestonesURL(srv.URL))

	_, err := r.ResolveDownloadURL(context.Background(), "130.0.6723.58", catalog.Linux)

	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
}

func TestResolveDownloadURLUnknownOS(t *testing.T) {
	r := New(WithDetector(noBrowser))

	_, err := r.ResolveDownloadURL(context.Background(), "115.0.5790.170", "haiku")

	var unknownErr *catalog.UnknownOSError
	assert.ErrorAs(t, err, &unknownErr)
}

func TestCoreVersion(t *testing.T) {
	tests := []struct {
		version string
		wantNil bool
	}{
		{"115.0.5790.170", false},
		{"106.0.5249", false},
		{"200.0", false},
		{"2.44", false},
		{"not-a-version", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			v := coreVersion(tt.version)
			if tt.wantNil {
				assert.Nil(t, v)
			} else {
				assert.NotNil(t, v)
			}
		})
	}
}
