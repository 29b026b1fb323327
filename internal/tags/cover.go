package tags

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// coverStems ranks folder image names; an earlier stem wins.
var coverStems = []string{"cover", "folder", "album", "front", "artwork"}

var coverMIME = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// CoverArt returns the embedded picture of t, falling back to an image
// such as cover.jpg next to the file. It returns nil when there is neither.
func CoverArt(t *Tag) *Picture {
	if t.Cover != nil {
		return t.Cover
	}
	dir := filepath.Dir(t.Path)
	name, mime := folderCover(dir)
	if name == "" {
		return nil
	}
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return nil
	}
	return &Picture{Data: data, MIMEType: mime}
}

// folderCover picks the best ranked image in dir, ignoring case.
func folderCover(dir string) (name, mime string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", ""
	}
	best := len(coverStems)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		lower := strings.ToLower(e.Name())
		ext := filepath.Ext(lower)
		m, ok := coverMIME[ext]
		if !ok {
			continue
		}
		rank := slices.Index(coverStems, strings.TrimSuffix(lower, ext))
		if rank >= 0 && rank < best {
			best, name, mime = rank, e.Name(), m
		}
	}
	return name, mime
}
