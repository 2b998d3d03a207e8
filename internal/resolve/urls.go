package resolve

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/chromedrv/chromedrv/internal/catalog"
)

var (
	// apiSplit is the first version served by the chrome-for-testing
	// download API instead of the legacy archive host.
	apiSplit = semver.MustParse("115.0.0")

	// macARMRename is the version at which the ARM mac slug changed
	// from mac64_m1 to mac_arm64.
	macARMRename = semver.MustParse("106.0.5249")
)

// Slug returns the platform segment of the download URL for osID at
// the given driver version. Versions below 115 use the legacy slug
// spellings, with the ARM mac slug depending on a second cutoff.
func Slug(osID, version string) (string, error) {
	base, err := catalog.Slug(osID)
	if err != nil {
		return "", err
	}

	v := coreVersion(version)
	if v == nil || !v.LessThan(apiSplit) {
		return base, nil
	}

	switch base {
	case "mac-arm64":
		if v.LessThan(macARMRename) {
			return "mac64_m1", nil
		}
		return "mac_arm64", nil
	case "mac-x64":
		return "mac64", nil
	default:
		return base, nil
	}
}

// ResolveDownloadURL maps a resolved version and OS identifier to the
// archive URL. Below 115 the URL is a deterministic template on the
// legacy host; from 115 on it is looked up in the milestone feed.
func (r *Resolver) ResolveDownloadURL(ctx context.Context, version, osID string) (string, error) {
	slug, err := Slug(osID, version)
	if err != nil {
		return "", err
	}

	if v := coreVersion(version); v != nil && v.LessThan(apiSplit) {
		return fmt.Sprintf("%s/%s/chromedriver_%s.zip", r.legacyDownloadBase, version, slug), nil
	}

	major, err := majorOf(version)
	if err != nil {
		return "", &ResolutionError{Version: version, Message: "version has no numeric major", Err: err}
	}

	feed, err := r.fetchMilestones(ctx)
	if err != nil {
		return "", err
	}

	m, ok := feed.Milestones[strconv.Itoa(major)]
	if !ok {
		return "", &ResolutionError{
			Version: version,
			Message: fmt.Sprintf("milestone %d not present in metadata feed", major),
		}
	}

	for _, d := range m.Downloads.Chromedriver {
		if d.Platform == slug {
			r.logger.Debug("resolved download URL", "version", version, "platform", slug, "url", d.URL)
			return d.URL, nil
		}
	}

	return "", &ResolutionError{
		Version: version,
		Message: fmt.Sprintf("no %s download for milestone %d", slug, major),
	}
}

// coreVersion parses the first three dotted groups of a browser
// version into a comparable semver. Chrome versions carry four groups;
// the cutoffs only ever use three. Returns nil when the string is not
// a dotted numeric version.
func coreVersion(version string) *semver.Version {
	parts := strings.Split(version, ".")
	if len(parts) > 3 {
		parts = parts[:3]
	}

	v, err := semver.NewVersion(strings.Join(parts, "."))
	if err != nil {
		return nil
	}
	return v
}

// majorOf returns the leading numeric component of a dotted version.
func majorOf(version string) (int, error) {
	head, _, _ := strings.Cut(version, ".")
	return strconv.Atoi(head)
}
