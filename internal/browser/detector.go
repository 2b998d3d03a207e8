// Package browser detects the version of an installed Chrome or
// Chromium browser by probing known executables.
package browser

import (
	"context"
	"errors"
	"os/exec"
	"regexp"
	"strconv"

	"github.com/chromedrv/chromedrv/internal/catalog"
	"github.com/chromedrv/chromedrv/internal/log"
)

// ErrNotFound indicates no installed browser produced a usable version.
// Callers treat this as a soft failure and fall back to "latest".
var ErrNotFound = errors.New("no installed browser detected")

// Detector reports the major version of an installed browser.
// Probing spawns external processes and depends on the host
// environment, so the capability is behind an interface to keep
// callers testable.
type Detector interface {
	// DetectMajor returns the installed browser's major version for
	// the given OS identifier, or ErrNotFound.
	DetectMajor(ctx context.Context, osID string) (int, error)
}

// versionPattern matches a full dotted browser version anywhere in the
// probe output, e.g. "Google Chrome 115.0.5790.170".
var versionPattern = regexp.MustCompile(`(\d+)\.(\d+)\.(\d+)\.(\d+)`)

// runnerFunc executes a probe command and returns its combined output.
// Injectable for tests.
type runnerFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// ShellDetector probes the catalog's per-OS browser commands.
type ShellDetector struct {
	logger log.Logger
	run    runnerFunc
}

// Option configures a ShellDetector.
type Option func(*ShellDetector)

// WithLogger sets the logger used for probe diagnostics.
func WithLogger(l log.Logger) Option {
	return func(d *ShellDetector) {
		d.logger = l
	}
}

// withRunner overrides command execution (for tests).
func withRunner(run runnerFunc) Option {
	return func(d *ShellDetector) {
		d.run = run
	}
}

// NewShellDetector creates a detector that runs the catalog's probe
// commands for the target OS.
func NewShellDetector(opts ...Option) *ShellDetector {
	d := &ShellDetector{
		logger: log.Default(),
		run:    runCommand,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectMajor runs each probe for osID in order and returns the major
// component of the first dotted version found. Probes that fail to
// start or print nothing useful are skipped, not errors.
func (d *ShellDetector) DetectMajor(ctx context.Context, osID string) (int, error) {
	probes, err := catalog.Probes(osID)
	if err != nil {
		return 0, err
	}

	for _, probe := range probes {
		out, err := d.run(ctx, probe.Name, probe.Args...)
		if err != nil {
			d.logger.Debug("browser probe failed", "command", probe.Name, "error", err)
			continue
		}

		match := versionPattern.FindSubmatch(out)
		if match == nil {
			d.logger.Debug("browser probe output had no version", "command", probe.Name)
			continue
		}

		major, err := strconv.Atoi(string(match[1]))
		if err != nil {
			continue
		}

		d.logger.Debug("detected browser version",
			"command", probe.Name, "version", string(match[0]), "major", major)
		return major, nil
	}

	return 0, ErrNotFound
}
