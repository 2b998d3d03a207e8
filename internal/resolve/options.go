package resolve

import (
	"net/http"

	"github.com/chromedrv/chromedrv/internal/browser"
	"github.com/chromedrv/chromedrv/internal/log"
)

// Option configures a Resolver.
type Option func(*Resolver)

// WithHTTPClient sets the HTTP client used for all feed requests.
// Pass the shared client so proxy and TLS settings apply here too.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Resolver) {
		r.httpClient = c
	}
}

// WithLogger sets the logger.
func WithLogger(l log.Logger) Option {
	return func(r *Resolver) {
		r.logger = l
	}
}

// WithDetector sets the browser version detector.
func WithDetector(d browser.Detector) Option {
	return func(r *Resolver) {
		r.detector = d
	}
}

// WithLastKnownGoodURL sets a custom known-good-versions feed URL for testing.
func WithLastKnownGoodURL(url string) Option {
	return func(r *Resolver) {
		r.lastKnownGoodURL = url
	}
}

// WithMilestonesURL sets a custom milestone feed URL for testing.
func WithMilestonesURL(url string) Option {
	return func(r *Resolver) {
		r.milestonesURL = url
	}
}

// WithLegacyLatestBase sets a custom LATEST_RELEASE endpoint base for testing.
func WithLegacyLatestBase(url string) Option {
	return func(r *Resolver) {
		r.legacyLatestBase = url
	}
}

// WithLegacyDownloadBase sets a custom legacy archive host for testing.
func WithLegacyDownloadBase(url string) Option {
	return func(r *Resolver) {
		r.legacyDownloadBase = url
	}
}
