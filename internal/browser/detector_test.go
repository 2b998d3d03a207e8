package browser

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chromedrv/chromedrv/internal/catalog"
)

func TestDetectMajor(t *testing.T) {
	d := NewShellDetector(withRunner(func(_ context.Context, name string, _ ...string) ([]byte, error) {
		return []byte("Google Chrome 115.0.5790.170 \n"), nil
	}))

	major, err := d.DetectMajor(context.Background(), catalog.Linux)
	require.NoError(t, err)
	assert.Equal(t, 115, major)
}

func TestDetectMajorFirstProbeWins(t *testing.T) {
	var commands []string
	d := NewShellDetector(withRunner(func(_ context.Context, name string, _ ...string) ([]byte, error) {
		commands = append(commands, name)
		return []byte("Chromium 108.0.5359.124 built on Debian"), nil
	}))

	major, err := d.DetectMajor(context.Background(), catalog.Linux)
	require.NoError(t, err)
	assert.Equal(t, 108, major)
	assert.Len(t, commands, 1, "should stop at the first matching probe")
}

func TestDetectMajorSkipsFailingProbes(t *testing.T) {
	calls := 0
	d := NewShellDetector(withRunner(func(_ context.Context, name string, _ ...string) ([]byte, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("exec: not found")
		}
		return []byte("Google Chrome 120.0.6099.71"), nil
	}))

	major, err := d.DetectMajor(context.Background(), catalog.Linux)
	require.NoError(t, err)
	assert.Equal(t, 120, major)
	assert.Equal(t, 2, calls)
}

func TestDetectMajorNotFound(t *testing.T) {
	tests := []struct {
		name string
		run  runnerFunc
	}{
		{
			name: "all probes fail",
			run: func(context.Context, string, ...string) ([]byte, error) {
				return nil, errors.New("exec: not found")
			},
		},
		{
			name: "output without dotted version",
			run: func(context.Context, string, ...string) ([]byte, error) {
				return []byte("command not recognized"), nil
			},
		},
		{
			name: "three-part version is not a browser version",
			run: func(context.Context, string, ...string) ([]byte, error) {
				return []byte("v1.2.3"), nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewShellDetector(withRunner(tt.run))

			_, err := d.DetectMajor(context.Background(), catalog.Linux)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestDetectMajorUnknownOS(t *testing.T) {
	d := NewShellDetector(withRunner(func(context.Context, string, ...string) ([]byte, error) {
		t.Fatal("runner should not be called for unknown OS")
		return nil, nil
	}))

	_, err := d.DetectMajor(context.Background(), "solaris")

	var unknownErr *catalog.UnknownOSError
	assert.ErrorAs(t, err, &unknownErr)
}
