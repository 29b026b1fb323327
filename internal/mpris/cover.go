package mpris

import (
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/llehouerou/zeedle/internal/tags"
)

// artDir is where cover images are written for other processes to read.
var artDir = filepath.Join(xdg.CacheHome, "zeedle", "art")

// ArtPath writes pic to the cache directory and returns the file path.
// Files are keyed by track path, so repeated calls reuse the same file.
// Returns "" when pic is nil or cannot be written.
func ArtPath(trackPath string, pic *tags.Picture) string {
	if pic == nil || len(pic.Data) == 0 {
		return ""
	}
	path := filepath.Join(artDir, artFileName(trackPath, pic.MIMEType))
	if _, err := os.Stat(path); err == nil {
		return path
	}
	if err := os.MkdirAll(artDir, 0o755); err != nil {
		return ""
	}
	if err := os.WriteFile(path, pic.Data, 0o600); err != nil {
		return ""
	}
	return path
}

func artFileName(trackPath, mimeType string) string {
	ext := ".jpg"
	if mimeType == "image/png" {
		ext = ".png"
	}
	h := fnv.New64a()
	h.Write([]byte(trackPath))
	return fmt.Sprintf("%x%s", h.Sum64(), ext)
}
