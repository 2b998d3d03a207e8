package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chromedrv/chromedrv/internal/browser"
	"github.com/chromedrv/chromedrv/internal/catalog"
	"github.com/chromedrv/chromedrv/internal/config"
	"github.com/chromedrv/chromedrv/internal/fetch"
	"github.com/chromedrv/chromedrv/internal/installer"
	"github.com/chromedrv/chromedrv/internal/log"
	"github.com/chromedrv/chromedrv/internal/resolve"
	"github.com/chromedrv/chromedrv/internal/userconfig"
)

var (
	installAll         bool
	installDetect      bool
	installProxy       string
	installSSLNoVerify bool
	installBinDir      string
)

var installCmd = &cobra.Command{
	Use:   "install [version]",
	Short: "Download and install a ChromeDriver binary",
	Long: `Download and install the ChromeDriver binary for the current OS,
or for every supported OS with --all.

The version argument may be a full driver version, a bare Chrome major,
or omitted entirely, in which case the installed browser's version is
detected (falling back to the latest stable driver).

Examples:
  chromedrv install
  chromedrv install 115
  chromedrv install 115.0.5790.170 --all
  chromedrv install --detect --proxy socks5://127.0.0.1:1080`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		requested := ""
		if len(args) == 1 {
			requested = args[0]
		}
		return runInstall(cmd.Context(), requested)
	},
}

func init() {
	installCmd.Flags().BoolVar(&installAll, "all", false, "Install drivers for every supported OS")
	installCmd.Flags().BoolVar(&installDetect, "detect", false, "Detect the installed browser version even when a version argument is given")
	installCmd.Flags().StringVar(&installProxy, "proxy", "", "Proxy URL for all outbound requests (http, https, or socks5)")
	installCmd.Flags().BoolVar(&installSSLNoVerify, "ssl-no-verify", false, "Disable TLS certificate verification for all outbound requests")
	installCmd.Flags().StringVar(&installBinDir, "bin-dir", "", "Directory to install drivers into (default: $CHROMEDRV_HOME/bin)")
}

// installError wraps a failure to place a binary, so the exit code can
// distinguish it from download or resolution failures.
type installError struct {
	os  string
	err error
}

func (e *installError) Error() string {
	return fmt.Sprintf("install for %s failed: %v", e.os, e.err)
}

func (e *installError) Unwrap() error {
	return e.err
}

// settings are the effective network and path options after merging
// flags with the user config file. Flags win.
type settings struct {
	proxy       string
	sslNoVerify bool
	binDir      string
}

func mergeSettings(flagProxy string, flagSSL bool, flagBin string, cfg *userconfig.Config) settings {
	s := settings{proxy: flagProxy, sslNoVerify: flagSSL, binDir: flagBin}
	if s.proxy == "" {
		s.proxy = cfg.Proxy
	}
	if !s.sslNoVerify {
		s.sslNoVerify = cfg.SSLNoVerify
	}
	if s.binDir == "" {
		s.binDir = cfg.BinDir
	}
	return s
}

func runInstall(ctx context.Context, requested string) error {
	logger := log.Default()

	userCfg, err := userconfig.Load()
	if err != nil {
		return err
	}
	s := mergeSettings(installProxy, installSSLNoVerify, installBinDir, userCfg)

	// One client for everything: proxy and TLS settings apply
	// uniformly to feed requests and archive downloads.
	client, err := fetch.NewClient(fetch.ClientOptions{
		ProxyURL:           s.proxy,
		InsecureSkipVerify: s.sslNoVerify,
	})
	if err != nil {
		return err
	}

	binDir := s.binDir
	if binDir == "" {
		binDir, err = config.BinDir()
		if err != nil {
			return err
		}
	} else if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("failed to create bin directory: %w", err)
	}

	resolver := resolve.New(
		resolve.WithHTTPClient(client),
		resolve.WithLogger(logger),
		resolve.WithDetector(browser.NewShellDetector(browser.WithLogger(logger))),
	)

	current := catalog.Current()

	version, err := resolveWithTimeout(ctx, func(ctx context.Context) (string, error) {
		return resolver.Resolve(ctx, requested, current, installDetect)
	})
	if err != nil {
		return err
	}

	fmt.Printf("Installing ChromeDriver %s\n", version)

	targets := []string{current}
	if installAll {
		targets = catalog.All()
	}

	fetcher := fetch.New(client, fetch.WithLogger(logger))

	// Targets are processed sequentially and fail-fast: a failure
	// leaves earlier targets installed and skips the rest.
	for _, osID := range targets {
		url, err := resolveWithTimeout(ctx, func(ctx context.Context) (string, error) {
			return resolver.ResolveDownloadURL(ctx, version, osID)
		})
		if err != nil {
			return err
		}

		rel, err := fetcher.FetchAndExtract(ctx, url, binDir)
		if err != nil {
			return err
		}

		if err := installer.Install(rel, osID, binDir); err != nil {
			return &installError{os: osID, err: err}
		}

		fmt.Printf("  ✓ %s\n", osID)
	}

	fmt.Printf("Done. Drivers installed in %s\n", binDir)
	return nil
}

// resolveWithTimeout bounds a metadata request by the configured API
// timeout. Archive downloads are not bounded this way.
func resolveWithTimeout(ctx context.Context, fn func(context.Context) (string, error)) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, config.APITimeout())
	defer cancel()
	return fn(ctx)
}
