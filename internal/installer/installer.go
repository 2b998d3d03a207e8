// Package installer places an extracted driver binary at its final,
// OS-qualified, executable path.
package installer

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/chromedrv/chromedrv/internal/log"
)

// Install moves the extracted binary at extractedRel (relative to
// destDir, as reported by the fetcher) to destDir/<name> where the
// "chromedriver" part of the base filename gains an OS suffix, e.g.
// chromedriver-linux or chromedriver-win.exe. Any directory prefix
// from the archive entry is stripped. The final file is made
// executable (0755).
func Install(extractedRel, osID, destDir string) error {
	return install(extractedRel, osID, destDir, log.Default())
}

func install(extractedRel, osID, destDir string, logger log.Logger) error {
	rel := strings.ReplaceAll(extractedRel, `\`, "/")
	base := path.Base(rel)
	name := strings.Replace(base, "chromedriver", "chromedriver-"+osID, 1)

	src := filepath.Join(destDir, filepath.FromSlash(rel))
	dst := filepath.Join(destDir, name)

	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("failed to install %s: %w", name, err)
	}

	if err := os.Chmod(dst, 0o755); err != nil {
		return fmt.Errorf("failed to mark %s executable: %w", name, err)
	}

	// Drop the archive's directory prefix if the rename emptied it.
	if dir := path.Dir(rel); dir != "." {
		_ = os.Remove(filepath.Join(destDir, filepath.FromSlash(dir)))
	}

	logger.Info("installed driver", "os", osID, "path", dst)
	return nil
}
