package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/chromedrv/chromedrv/internal/log"
)

// archiveName is the fixed temporary filename the archive is saved
// under inside the destination directory.
const archiveName = "chromedriver.zip"

// driverPrefix identifies the driver binary among archive entries.
const driverPrefix = "chromedriver"

// DownloadError reports a response status outside [200,299].
type DownloadError struct {
	URL    string
	Status int
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download of %s failed with status %d", e.URL, e.Status)
}

// ExtractionError reports an archive that contains no driver binary.
type ExtractionError struct {
	Archive string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("no %s binary found in archive %s", driverPrefix, e.Archive)
}

// Fetcher downloads a driver archive and extracts the binary.
type Fetcher struct {
	client *http.Client
	logger log.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithLogger sets the logger used for download diagnostics.
func WithLogger(l log.Logger) Option {
	return func(f *Fetcher) {
		f.logger = l
	}
}

// New creates a Fetcher using the given HTTP client. The client
// carries the proxy and TLS settings shared by all outbound requests.
func New(client *http.Client, opts ...Option) *Fetcher {
	f := &Fetcher{
		client: client,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchAndExtract downloads the archive at rawURL into destDir,
// extracts the driver binary, and returns the binary's path relative
// to destDir. The archive file is removed once extraction has run,
// whether it succeeded or not.
func (f *Fetcher) FetchAndExtract(ctx context.Context, rawURL, destDir string) (string, error) {
	archivePath := filepath.Join(destDir, archiveName)

	if err := f.download(ctx, rawURL, archivePath); err != nil {
		return "", err
	}

	return f.extract(archivePath, destDir)
}

// download streams the response body to destPath.
func (f *Fetcher) download(ctx context.Context, rawURL, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	f.logger.Info("downloading archive", "url", rawURL)

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &DownloadError{URL: rawURL, Status: resp.StatusCode}
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create archive file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}

	return nil
}

// extract scans the zip in archive order and writes the first entry
// whose base filename starts with the driver prefix into destDir,
// preserving the entry's relative path. The archive is deleted on
// return regardless of the outcome.
func (f *Fetcher) extract(archivePath, destDir string) (rel string, err error) {
	defer os.Remove(archivePath)

	// ErrInsecurePath still yields a usable reader; entry paths are
	// validated against the destination below.
	r, err := zip.OpenReader(archivePath)
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return "", fmt.Errorf("failed to open archive: %w", err)
	}
	defer r.Close()

	for _, entry := range r.File {
		// Archives list an explicit directory entry ahead of the
		// binary (e.g. "chromedriver-linux64/"); only files qualify.
		if entry.FileInfo().IsDir() {
			continue
		}

		name := strings.ReplaceAll(entry.Name, `\`, "/")
		if !strings.HasPrefix(path.Base(name), driverPrefix) {
			continue
		}

		if err := f.writeEntry(entry, name, destDir); err != nil {
			return "", err
		}

		f.logger.Debug("extracted driver binary", "entry", entry.Name)
		return name, nil
	}

	return "", &ExtractionError{Archive: archivePath}
}

func (f *Fetcher) writeEntry(entry *zip.File, name, destDir string) error {
	target := filepath.Join(destDir, filepath.FromSlash(name))
	if !isWithinDirectory(target, destDir) {
		return fmt.Errorf("archive entry escapes destination directory: %s", entry.Name)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create extraction directory: %w", err)
	}

	rc, err := entry.Open()
	if err != nil {
		return fmt.Errorf("failed to open archive entry %s: %w", entry.Name, err)
	}
	defer rc.Close()

	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, rc); err != nil {
		return fmt.Errorf("failed to extract %s: %w", entry.Name, err)
	}

	return nil
}

// isWithinDirectory checks that targetPath stays inside basePath.
// Prevents archive entries with ".." segments from writing elsewhere.
func isWithinDirectory(targetPath, basePath string) bool {
	absTarget, err := filepath.Abs(targetPath)
	if err != nil {
		return false
	}
	absBase, err := filepath.Abs(basePath)
	if err != nil {
		return false
	}
	return absTarget == absBase || strings.HasPrefix(absTarget, absBase+string(os.PathSeparator))
}
