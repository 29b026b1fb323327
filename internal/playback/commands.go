package playback

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/text/language"

	"github.com/llehouerou/zeedle/internal/catalog"
	"github.com/llehouerou/zeedle/internal/logger"
	"github.com/llehouerou/zeedle/internal/player"
	"github.com/llehouerou/zeedle/internal/tags"
)

// Command is a user intent applied by the service worker. The set is
// closed; construct one of the types below.
type Command interface {
	apply(ctx context.Context, s *Service) error
}

// PlayCmd plays a track. Trigger decides how the history changes.
type PlayCmd struct {
	Track   catalog.Track
	Trigger Trigger
}

// TogglePauseCmd pauses or resumes. With nothing loaded it starts the first
// catalog track.
type TogglePauseCmd struct{}

// SeekCmd moves the playhead. Positions outside the track are clamped.
type SeekCmd struct {
	Position time.Duration
}

// NextCmd moves forward through the history, or picks a new track by play
// mode at the live edge.
type NextCmd struct{}

// PrevCmd moves back through the history.
type PrevCmd struct{}

// SetPlayModeCmd changes the play mode.
type SetPlayModeCmd struct {
	Mode PlayMode
}

// RescanCmd replaces the catalog with a scan of Dir and plays its first
// track. An empty Dir rescans the current root.
type RescanCmd struct {
	Dir string
}

// RefreshCmd rescans the current root and swaps in the new catalog without
// touching playback. The current track is looked up again by path.
type RefreshCmd struct{}

// SortCmd reorders the catalog.
type SortCmd struct {
	Key       catalog.SortKey
	Ascending bool
}

// SetLocaleCmd switches the interface language to a BCP 47 tag.
type SetLocaleCmd struct {
	Tag string
}

// RestoreCmd loads a track paused at a saved position, as at startup.
type RestoreCmd struct {
	Path     string
	Position time.Duration
}

func (c PlayCmd) apply(ctx context.Context, s *Service) error {
	err := s.play(ctx, c.Track, c.Trigger)
	s.publish()
	return err
}

func (TogglePauseCmd) apply(ctx context.Context, s *Service) error {
	if s.playback.Current == nil || s.engine.Empty() {
		first, ok := s.catalog.First()
		if !ok {
			return nil
		}
		err := s.play(ctx, first, UserSelected)
		s.publish()
		return err
	}

	paused, _ := s.engine.TogglePause()
	s.playback.Paused = paused
	if !paused {
		s.playback.UserListening = true
	}
	s.publish()
	return nil
}

func (c SeekCmd) apply(_ context.Context, s *Service) error {
	if s.playback.Current == nil {
		return nil
	}
	if err := s.engine.Seek(c.Position); err != nil {
		s.report(OpSeek, s.playback.Current.Path, err)
		return err
	}
	s.publish()
	return nil
}

func (NextCmd) apply(ctx context.Context, s *Service) error {
	err := s.next(ctx)
	s.publish()
	return err
}

func (PrevCmd) apply(ctx context.Context, s *Service) error {
	err := s.prev(ctx)
	s.publish()
	return err
}

func (c SetPlayModeCmd) apply(_ context.Context, s *Service) error {
	s.mode = c.Mode
	s.publish()
	return nil
}

func (c RescanCmd) apply(ctx context.Context, s *Service) error {
	dir := c.Dir
	if dir == "" {
		dir = s.libraryRoot
	}
	res, err := s.scan(ctx, dir, s.sortKey, s.ascending)
	if err != nil {
		s.report(OpRescan, dir, err)
		return err
	}

	s.libraryRoot = dir
	s.catalog = catalog.New(res.Tracks)

	first, ok := s.catalog.First()
	if !ok {
		s.engine.Clear()
		s.playback = emptyPlayback()
		s.lyrics = nil
		s.cover = nil
		s.publish()
		return nil
	}
	err = s.play(ctx, first, UserSelected)
	s.publish()
	return err
}

func (RefreshCmd) apply(ctx context.Context, s *Service) error {
	res, err := s.scan(ctx, s.libraryRoot, s.sortKey, s.ascending)
	if err != nil {
		s.report(OpRescan, s.libraryRoot, err)
		return err
	}
	s.catalog = catalog.New(res.Tracks)
	if cur := s.playback.Current; cur != nil {
		s.playback.Current = s.resolve(*cur)
	}
	s.publish()
	return nil
}

func (c SortCmd) apply(_ context.Context, s *Service) error {
	s.sortKey = c.Key
	s.ascending = c.Ascending
	s.catalog = s.catalog.Sorted(c.Key, c.Ascending)
	if cur := s.playback.Current; cur != nil {
		s.playback.Current = s.resolve(*cur)
	}
	s.publish()
	return nil
}

func (c SetLocaleCmd) apply(_ context.Context, s *Service) error {
	tag, err := language.Parse(c.Tag)
	if err != nil {
		err = fmt.Errorf("locale %q: %w", c.Tag, err)
		s.report(OpLocale, "", err)
		return err
	}
	s.locale = tag.String()
	s.publish()
	return nil
}

func (c RestoreCmd) apply(_ context.Context, s *Service) error {
	if c.Path == "" {
		return nil
	}
	t := s.resolvePath(c.Path)

	loaded, err := s.engine.LoadAndPlay(t.Path)
	if err != nil {
		s.report(OpRestore, t.Path, err)
		s.publish()
		return err
	}
	s.engine.Pause()
	if c.Position > 0 {
		if err := s.engine.Seek(c.Position); err != nil {
			logger.Warn("restore seek failed", logger.String("path", t.Path), logger.Err(err))
		}
	}

	if s.history.Len() == 0 {
		s.history.Select(*t)
	}
	s.setCurrent(t, loaded)
	s.playback.Paused = true
	s.playback.UserListening = false
	s.publish()
	return nil
}

// play records t in the history according to trigger and loads it. The
// history changes even when decoding fails so that navigation stays
// consistent with what the user asked for.
//
// Only plays that grew the history reach the recorder, so the stored plays
// can seed an identical history on the next start.
func (s *Service) play(ctx context.Context, t catalog.Track, trigger Trigger) error {
	cur := s.resolve(t)
	grew := false
	switch trigger {
	case UserSelected:
		s.history.Select(*cur)
		grew = true
	case SteppedForward:
		grew = s.history.Append(*cur)
	case SteppedBack:
	}
	if err := s.load(ctx, cur, trigger); err != nil {
		return err
	}
	if grew {
		s.record(ctx, *cur, trigger)
	}
	return nil
}

// record persists a play. Failures are logged only.
func (s *Service) record(ctx context.Context, t catalog.Track, trigger Trigger) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.RecordPlay(ctx, t, trigger.String()); err != nil {
		logger.Warn("record play failed", logger.String("path", t.Path), logger.Err(err))
	}
}

// load starts cur on the engine without touching the history.
func (s *Service) load(_ context.Context, cur *catalog.Track, trigger Trigger) error {
	loaded, err := s.engine.LoadAndPlay(cur.Path)
	if err != nil {
		s.report(OpPlay, cur.Path, err)
		s.playback = PlaybackState{Current: cur, Paused: true, Duration: cur.Length}
		s.lyrics = nil
		s.cover = nil
		return err
	}

	s.setCurrent(cur, loaded)
	s.playback.Paused = false
	s.playback.UserListening = true

	logger.Info("playing",
		logger.String("path", cur.Path),
		logger.String("trigger", trigger.String()),
		logger.Duration("duration", loaded.Duration),
	)
	return nil
}

// setCurrent installs a freshly loaded track and its extras.
func (s *Service) setCurrent(t *catalog.Track, loaded player.Loaded) {
	d := loaded.Duration
	if d <= 0 {
		d = t.Length
	}
	s.playback = PlaybackState{
		Current:       t,
		Duration:      d,
		Paused:        s.playback.Paused,
		UserListening: s.playback.UserListening,
	}
	extras := s.loadExtras(t.Path)
	s.lyrics = extras.Lyrics
	s.cover = extras.Cover
}

// next implements NextCmd.
func (s *Service) next(ctx context.Context) error {
	if !s.history.AtLiveEdge() {
		if t, ok := s.history.Forward(); ok {
			return s.load(ctx, s.resolve(t), SteppedForward)
		}
	}

	n := s.catalog.Len()
	if n == 0 {
		return nil
	}

	cur := s.playback.Current
	switch s.mode {
	case Recursive:
		if cur != nil {
			return s.load(ctx, s.resolve(*cur), SteppedForward)
		}
		first, _ := s.catalog.First()
		return s.play(ctx, first, SteppedForward)
	case Random:
		id := s.rand(n)
		if s.avoidRepeat && n > 1 && cur != nil && id == cur.ID {
			id = (id + 1 + s.rand(n-1)) % n
		}
		t, _ := s.catalog.At(id)
		return s.play(ctx, t, SteppedForward)
	default:
		id := 0
		if cur != nil && cur.ID >= 0 {
			id = (cur.ID + 1) % n
		}
		t, _ := s.catalog.At(id)
		return s.play(ctx, t, SteppedForward)
	}
}

// prev implements PrevCmd.
func (s *Service) prev(ctx context.Context) error {
	if t, ok := s.history.Back(); ok {
		return s.load(ctx, s.resolve(t), SteppedBack)
	}
	if cur := s.playback.Current; cur != nil {
		return s.load(ctx, s.resolve(*cur), SteppedBack)
	}
	return nil
}

// resolve returns t as found in the current catalog, or t with ID -1 when
// its file is no longer listed.
func (s *Service) resolve(t catalog.Track) *catalog.Track {
	if r, ok := s.catalog.Resolve(t); ok {
		return &r
	}
	t.ID = -1
	return &t
}

// resolvePath is resolve for a bare path.
func (s *Service) resolvePath(path string) *catalog.Track {
	if i := s.catalog.IndexOf(path); i >= 0 {
		t, _ := s.catalog.At(i)
		return &t
	}
	return &catalog.Track{ID: -1, Path: path, Title: tags.Stem(path), Artist: catalog.UnknownArtist}
}

// IsDecodeError reports whether err is a track that could not be opened.
func IsDecodeError(err error) bool {
	var de *player.DecodeError
	return errors.As(err, &de)
}
