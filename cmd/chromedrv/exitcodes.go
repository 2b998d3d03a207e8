package main

import (
	"errors"

	"github.com/chromedrv/chromedrv/internal/catalog"
	"github.com/chromedrv/chromedrv/internal/fetch"
	"github.com/chromedrv/chromedrv/internal/resolve"
)

// Exit codes for different error types.
// These let scripts distinguish between failure modes.
const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0

	// ExitGeneral indicates a general error
	ExitGeneral = 1

	// ExitUsage indicates invalid arguments, e.g. an unknown OS identifier
	ExitUsage = 2

	// ExitResolution indicates no driver version or URL could be determined
	ExitResolution = 3

	// ExitDownload indicates the archive download failed
	ExitDownload = 4

	// ExitExtraction indicates the archive held no driver binary
	ExitExtraction = 5

	// ExitInstall indicates placing the binary failed
	ExitInstall = 6
)

// exitCode maps an error to its exit code.
func exitCode(err error) int {
	var unknownOS *catalog.UnknownOSError
	if errors.As(err, &unknownOS) {
		return ExitUsage
	}

	var resolutionErr *resolve.ResolutionError
	if errors.As(err, &resolutionErr) {
		return ExitResolution
	}

	var downloadErr *fetch.DownloadError
	if errors.As(err, &downloadErr) {
		return ExitDownload
	}

	var extractionErr *fetch.ExtractionError
	if errors.As(err, &extractionErr) {
		return ExitExtraction
	}

	var installErr *installError
	if errors.As(err, &installErr) {
		return ExitInstall
	}

	return ExitGeneral
}
