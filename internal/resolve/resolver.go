// Package resolve turns a requested or detected browser version into
// an exact driver version and a concrete download URL.
//
// Three version ranges need three mechanisms:
//   - majors below 70: the static legacy table in catalog
//   - majors 70 through 114: the per-major LATEST_RELEASE text endpoint
//   - majors 115 and up: the chrome-for-testing milestone JSON feed
package resolve

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/chromedrv/chromedrv/internal/browser"
	"github.com/chromedrv/chromedrv/internal/catalog"
	"github.com/chromedrv/chromedrv/internal/fetch"
	"github.com/chromedrv/chromedrv/internal/log"
)

const (
	defaultLastKnownGoodURL   = "https://googlechromelabs.github.io/chrome-for-testing/last-known-good-versions.json"
	defaultMilestonesURL      = "https://googlechromelabs.github.io/chrome-for-testing/latest-versions-per-milestone-with-downloads.json"
	defaultLegacyLatestBase   = "https://chromedriver.storage.googleapis.com/LATEST_RELEASE_"
	defaultLegacyDownloadBase = "https://chromedriver.storage.googleapis.com"

	// legacyTableCeiling is the first major served by the
	// LATEST_RELEASE endpoint instead of the static table.
	legacyTableCeiling = 70

	// milestoneFloor is the first major served by the
	// chrome-for-testing milestone feed.
	milestoneFloor = 115

	// maxFeedResponseSize caps metadata responses.
	maxFeedResponseSize = 10 * 1024 * 1024
)

// Resolver resolves driver versions and download URLs against the
// version feeds. Endpoint URLs are injectable for testing.
type Resolver struct {
	httpClient *http.Client
	logger     log.Logger
	detector   browser.Detector

	lastKnownGoodURL   string
	milestonesURL      string
	legacyLatestBase   string
	legacyDownloadBase string
}

// New creates a Resolver with production endpoints. Options override
// the HTTP client, logger, detector, and endpoint URLs.
func New(opts ...Option) *Resolver {
	client, _ := fetch.NewClient(fetch.ClientOptions{})

	r := &Resolver{
		httpClient:         client,
		logger:             log.Default(),
		detector:           browser.NewShellDetector(),
		lastKnownGoodURL:   defaultLastKnownGoodURL,
		milestonesURL:      defaultMilestonesURL,
		legacyLatestBase:   defaultLegacyLatestBase,
		legacyDownloadBase: defaultLegacyDownloadBase,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve determines the exact driver version to install.
//
// With no requested version, or when forceDetect is set, the installed
// browser's major version is detected for osID and used as the request.
// A detection miss is a soft failure: it logs a warning and falls back
// to the latest stable version. A bare major is then resolved through
// the range-appropriate mechanism; anything else is passed through as
// an already-full version string.
func (r *Resolver) Resolve(ctx context.Context, requested, osID string, forceDetect bool) (string, error) {
	if requested == "" || forceDetect {
		major, err := r.detector.DetectMajor(ctx, osID)
		switch {
		case err == nil:
			requested = strconv.Itoa(major)
			r.logger.Info("using detected browser version", "major", major)
		case errors.Is(err, browser.ErrNotFound):
			if requested != "" {
				r.logger.Warn("no installed browser detected, continuing with requested version",
					"requested", requested)
			} else {
				r.logger.Warn("no installed browser detected, falling back to latest stable")
			}
		default:
			return "", err
		}
	}

	if requested == "" {
		return r.resolveLatest(ctx)
	}

	major, err := strconv.Atoi(requested)
	if err != nil {
		// Not a bare major: treat as a full version string as-is.
		return requested, nil
	}

	switch {
	case major < legacyTableCeiling:
		v, ok := catalog.LegacyDriverVersion(major)
		if !ok {
			return "", &ResolutionError{
				Version: requested,
				Message: fmt.Sprintf("no known driver for Chrome major %d", major),
			}
		}
		return v, nil
	case major < milestoneFloor:
		return r.resolveLegacyLatest(ctx, major)
	default:
		return r.resolveMilestoneVersion(ctx, major)
	}
}

// resolveLatest fetches the latest stable version from the
// known-good-versions feed.
func (r *Resolver) resolveLatest(ctx context.Context) (string, error) {
	body, err := r.get(ctx, r.lastKnownGoodURL)
	if err != nil {
		return "", &ResolutionError{Message: "failed to fetch latest stable version", Err: err}
	}

	var feed struct {
		Channels struct {
			Stable struct {
				Version string `json:"version"`
			} `json:"Stable"`
		} `json:"channels"`
	}
	if err := json.Unmarshal(body, &feed); err != nil {
		return "", &ResolutionError{Message: "failed to parse known-good-versions feed", Err: err}
	}

	if feed.Channels.Stable.Version == "" {
		return "", &ResolutionError{Message: "known-good-versions feed has no stable version"}
	}

	r.logger.Info("resolved latest stable driver version", "version", feed.Channels.Stable.Version)
	return feed.Channels.Stable.Version, nil
}

// resolveLegacyLatest fetches the full driver version for a major in
// the 70..114 range from the LATEST_RELEASE text endpoint.
func (r *Resolver) resolveLegacyLatest(ctx context.Context, major int) (string, error) {
	url := r.legacyLatestBase + strconv.Itoa(major)

	body, err := r.get(ctx, url)
	if err != nil {
		return "", &ResolutionError{
			Version: strconv.Itoa(major),
			Message: "failed to fetch legacy driver version",
			Err:     err,
		}
	}

	version := strings.TrimSpace(string(body))
	r.logger.Debug("resolved legacy driver version", "major", major, "version", version)
	return version, nil
}

// resolveMilestoneVersion looks up the canonical version for a major
// in the milestone feed.
func (r *Resolver) resolveMilestoneVersion(ctx context.Context, major int) (string, error) {
	feed, err := r.fetchMilestones(ctx)
	if err != nil {
		return "", err
	}

	m, ok := feed.Milestones[strconv.Itoa(major)]
	if !ok || m.Version == "" {
		return "", &ResolutionError{
			Version: strconv.Itoa(major),
			Message: fmt.Sprintf("milestone %d not present in metadata feed", major),
		}
	}

	r.logger.Debug("resolved milestone version", "major", major, "version", m.Version)
	return m.Version, nil
}

// milestoneFeed mirrors the latest-versions-per-milestone feed shape.
type milestoneFeed struct {
	Milestones map[string]milestone `json:"milestones"`
}

type milestone struct {
	Version   string `json:"version"`
	Downloads struct {
		Chromedriver []driverDownload `json:"chromedriver"`
	} `json:"downloads"`
}

type driverDownload struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

func (r *Resolver) fetchMilestones(ctx context.Context) (*milestoneFeed, error) {
	body, err := r.get(ctx, r.milestonesURL)
	if err != nil {
		return nil, &ResolutionError{Message: "failed to fetch milestone metadata", Err: err}
	}

	var feed milestoneFeed
	if err := json.Unmarshal(body, &feed); err != nil {
		return nil, &ResolutionError{Message: "failed to parse milestone metadata", Err: err}
	}
	return &feed, nil
}

// get performs a GET and returns the body for 2xx responses.
func (r *Resolver) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s returned status %d", url, resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxFeedResponseSize))
}
