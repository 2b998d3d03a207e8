package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/chromedrv/chromedrv/internal/buildinfo"
	"github.com/chromedrv/chromedrv/internal/log"
)

var (
	flagVerbose bool
	flagDebug   bool
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "chromedrv",
	Short: "Install the ChromeDriver matching your installed Chrome",
	Long: `chromedrv resolves, downloads, and installs the ChromeDriver binary
matching an installed Chrome or Chromium browser.

Without arguments it detects the installed browser's major version and
installs the corresponding driver; the version can also be given
explicitly as a major ("115") or a full version ("115.0.5790.170").`,
	Version:      buildinfo.Version(),
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
}

// setupLogging installs the global logger according to the verbosity
// flags. Diagnostics go to stderr; command output stays on stdout.
func setupLogging() {
	level := slog.LevelWarn
	switch {
	case flagDebug:
		level = slog.LevelDebug
	case flagVerbose:
		level = slog.LevelInfo
	case flagQuiet:
		level = slog.LevelError
	}

	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	log.SetDefault(log.New(h))
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Show operational context")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Show internal troubleshooting details")
	rootCmd.PersistentFlags().BoolVar(&flagQuiet, "quiet", false, "Only show errors")

	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(detectCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}
