package catalog

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/llehouerou/zeedle/internal/logger"
	"github.com/llehouerou/zeedle/internal/tags"
)

// ScanIOError reports one directory entry or file the scan had to skip.
type ScanIOError struct {
	Path string
	Err  error
}

func (e *ScanIOError) Error() string {
	return fmt.Sprintf("scan %s: %v", e.Path, e.Err)
}

func (e *ScanIOError) Unwrap() error { return e.Err }

// Result is the outcome of a scan.
type Result struct {
	Tracks  []Track
	Skipped []*ScanIOError
	Elapsed time.Duration
}

// Scanner reads the metadata of every audio file below a root.
type Scanner struct {
	// Workers bounds concurrent metadata reads. Zero means GOMAXPROCS.
	Workers int
	// Read extracts metadata. Defaults to tags.ReadWithAudio.
	Read func(path string) (*tags.FileInfo, error)
}

// Scan walks root and returns the sorted catalog tracks. A missing or
// empty directory yields an empty slice; unreadable entries are logged and
// skipped.
func Scan(ctx context.Context, root string, key SortKey, ascending bool) []Track {
	res, _ := (&Scanner{}).Scan(ctx, root, key, ascending)
	return res.Tracks
}

// Scan walks root, reads every audio file on a bounded worker pool and
// returns the sorted tracks along with the entries that were skipped. The
// only error is ctx's.
func (s *Scanner) Scan(ctx context.Context, root string, key SortKey, ascending bool) (Result, error) {
	start := time.Now()

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		logger.Info("library root unavailable", logger.String("root", root), logger.Err(err))
		return Result{Tracks: []Track{}}, nil
	}

	files, skipped := discoverFiles(root)

	read := s.Read
	if read == nil {
		read = tags.ReadWithAudio
	}
	workers := s.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	found := make([]*Track, len(files))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fi, err := read(path)
			if err != nil {
				mu.Lock()
				skipped = append(skipped, &ScanIOError{Path: path, Err: err})
				mu.Unlock()
				return nil
			}
			t := trackFromInfo(path, fi)
			found[i] = &t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{Tracks: []Track{}}, err
	}

	tracks := make([]Track, 0, len(found))
	for _, t := range found {
		if t != nil {
			tracks = append(tracks, *t)
		}
	}

	for _, e := range skipped {
		logger.Warn("skipping library entry", logger.String("path", e.Path), logger.Err(e.Err))
	}

	res := Result{
		Tracks:  Sort(tracks, key, ascending),
		Skipped: skipped,
		Elapsed: time.Since(start),
	}
	logger.Info("library scanned",
		logger.String("root", root),
		logger.Int("tracks", len(res.Tracks)),
		logger.Int("skipped", len(res.Skipped)),
		logger.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}

// discoverFiles walks root and returns all music files found, in walk
// order. Entries the walk could not read are returned as skipped.
func discoverFiles(root string) (files []string, skipped []*ScanIOError) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			skipped = append(skipped, &ScanIOError{Path: path, Err: walkErr})
			if d != nil && d.IsDir() && path != root {
				return fs.SkipDir
			}
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !tags.IsMusicFile(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	return files, skipped
}

// trackFromInfo applies display defaults and the width budget.
func trackFromInfo(path string, fi *tags.FileInfo) Track {
	title := strings.TrimSpace(fi.Title)
	if title == "" {
		title = tags.Stem(path)
	}
	artist := strings.TrimSpace(fi.Artist)
	if artist == "" {
		artist = UnknownArtist
	}
	return Track{
		Path:     path,
		Title:    Truncate(title, DisplayWidth),
		Artist:   Truncate(artist, DisplayWidth),
		Duration: FormatDuration(fi.Duration),
		Length:   fi.Duration,
	}
}
