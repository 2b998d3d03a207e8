package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chromedrv/chromedrv/internal/browser"
	"github.com/chromedrv/chromedrv/internal/catalog"
	"github.com/chromedrv/chromedrv/internal/log"
)

var detectOS string

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Print the installed browser's major version",
	Long: `Probe the known browser executables and print the major version of
the first one that answers. Exits non-zero when no browser is found.

Examples:
  chromedrv detect
  chromedrv detect --os linux`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		osID := detectOS
		if osID == "" {
			osID = catalog.Current()
		}
		if !catalog.IsValid(osID) {
			return &catalog.UnknownOSError{OS: osID}
		}

		d := browser.NewShellDetector(browser.WithLogger(log.Default()))
		major, err := d.DetectMajor(cmd.Context(), osID)
		if err != nil {
			return err
		}

		fmt.Println(major)
		return nil
	},
}

func init() {
	detectCmd.Flags().StringVar(&detectOS, "os", "", "OS identifier to probe (default: current platform)")
}
