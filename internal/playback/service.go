// Package playback turns user intents into ordered changes of the audio
// engine and of the listening history, and publishes the resulting state.
//
// One worker goroutine (Run) consumes commands from a queue that any number
// of goroutines may feed. Only the worker touches the engine's mutating
// operations, the history and the catalog; everyone else reads immutable
// snapshots.
package playback

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"sync/atomic"

	"github.com/llehouerou/zeedle/internal/catalog"
	"github.com/llehouerou/zeedle/internal/logger"
	"github.com/llehouerou/zeedle/internal/lyrics"
	"github.com/llehouerou/zeedle/internal/player"
	"github.com/llehouerou/zeedle/internal/tags"
)

// ErrClosed is returned when sending to a closed service.
var ErrClosed = errors.New("playback service closed")

const defaultQueueSize = 64

// Extras are the per-track details loaded next to the audio.
type Extras struct {
	Lyrics []lyrics.Line
	Cover  *tags.Picture
}

// Recorder persists plays. Failures are logged and otherwise ignored.
type Recorder interface {
	RecordPlay(ctx context.Context, t catalog.Track, trigger string) error
}

// ScanFunc produces a catalog for a library root.
type ScanFunc func(ctx context.Context, root string, key catalog.SortKey, ascending bool) (catalog.Result, error)

// Options configures a Service. Engine is required.
type Options struct {
	Engine player.Interface

	Catalog     *catalog.Catalog
	LibraryRoot string
	Mode        PlayMode
	SortKey     catalog.SortKey
	Ascending   bool
	Locale      string

	// History seeds the navigation history, oldest first.
	History []catalog.Track

	// AvoidRepeat makes Random never pick the current track when the
	// catalog has more than one entry.
	AvoidRepeat bool

	// Rand returns an int in [0, n). Defaults to math/rand/v2.IntN.
	Rand func(n int) int
	// Scan defaults to a catalog.Scanner.
	Scan ScanFunc
	// LoadExtras defaults to reading tags and lyrics from the file.
	LoadExtras func(path string) Extras
	// Recorder is optional.
	Recorder Recorder

	QueueSize int
}

// envelope carries a command and, for Exec, where to report its result.
type envelope struct {
	cmd   Command
	reply chan error
}

// Service is the command processor.
type Service struct {
	engine      player.Interface
	rand        func(int) int
	scan        ScanFunc
	loadExtras  func(string) Extras
	recorder    Recorder
	avoidRepeat bool

	queue chan envelope

	// Owned by the worker.
	catalog     *catalog.Catalog
	history     *History
	playback    PlaybackState
	libraryRoot string
	mode        PlayMode
	sortKey     catalog.SortKey
	ascending   bool
	locale      string
	lyrics      []lyrics.Line
	cover       *tags.Picture
	seq         uint64

	latest atomic.Pointer[Snapshot]

	subs   []*Subscription
	subsMu sync.RWMutex

	done      chan struct{}
	closeOnce sync.Once
}

// New creates a service. Call Run to start processing commands.
func New(opts Options) *Service {
	s := &Service{
		engine:      opts.Engine,
		rand:        opts.Rand,
		scan:        opts.Scan,
		loadExtras:  opts.LoadExtras,
		recorder:    opts.Recorder,
		avoidRepeat: opts.AvoidRepeat,
		catalog:     opts.Catalog,
		history:     NewHistory(opts.History...),
		playback:    emptyPlayback(),
		libraryRoot: opts.LibraryRoot,
		mode:        opts.Mode,
		sortKey:     opts.SortKey,
		ascending:   opts.Ascending,
		locale:      opts.Locale,
		done:        make(chan struct{}),
	}
	if s.catalog == nil {
		s.catalog = catalog.New(nil)
	}
	if s.rand == nil {
		s.rand = rand.IntN
	}
	if s.scan == nil {
		s.scan = (&catalog.Scanner{}).Scan
	}
	if s.loadExtras == nil {
		s.loadExtras = LoadExtras
	}
	if s.locale == "" {
		s.locale = "en"
	}
	size := opts.QueueSize
	if size <= 0 {
		size = defaultQueueSize
	}
	s.queue = make(chan envelope, size)
	s.latest.Store(s.snapshot())
	return s
}

// LoadExtras reads the lyric and cover of a file.
func LoadExtras(path string) Extras {
	t, err := tags.Read(path)
	if err != nil {
		lines, _ := lyrics.FromBlob("", path)
		return Extras{Lyrics: lines}
	}
	lines, _ := lyrics.FromBlob(t.Lyrics, path)
	return Extras{Lyrics: lines, Cover: tags.CoverArt(t)}
}

// Run processes commands until ctx is cancelled or the service is closed.
func (s *Service) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.done:
			return nil
		case env := <-s.queue:
			err := env.cmd.apply(ctx, s)
			if env.reply != nil {
				env.reply <- err
			}
		}
	}
}

// Send queues cmd without waiting for it to run. It blocks only while the
// queue is full.
func (s *Service) Send(cmd Command) error {
	select {
	case <-s.done:
		return ErrClosed
	default:
	}
	select {
	case s.queue <- envelope{cmd: cmd}:
		return nil
	case <-s.done:
		return ErrClosed
	}
}

// Exec queues cmd and waits until the worker has applied it. It returns the
// command's error, which has also been published as an ErrorEvent.
func (s *Service) Exec(ctx context.Context, cmd Command) error {
	reply := make(chan error, 1)
	select {
	case s.queue <- envelope{cmd: cmd, reply: reply}:
	case <-s.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-reply:
		return err
	case <-s.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Latest returns the most recently published snapshot.
func (s *Service) Latest() *Snapshot {
	return s.latest.Load()
}

// Engine returns the engine for read-only queries by the progress poller.
func (s *Service) Engine() player.Interface {
	return s.engine
}

// Subscribe creates a new event subscription.
func (s *Service) Subscribe() *Subscription {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	sub := newSubscription()
	s.subs = append(s.subs, sub)
	return sub
}

// Close stops the worker and closes all subscriptions. It does not close
// the engine.
func (s *Service) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		s.subsMu.Lock()
		for _, sub := range s.subs {
			sub.close()
		}
		s.subs = nil
		s.subsMu.Unlock()
	})
	return nil
}

// publish stores and broadcasts a new snapshot. Worker only.
func (s *Service) publish() {
	s.seq++
	snap := s.snapshot()
	s.latest.Store(snap)

	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendSnapshot(snap)
	}
}

// report logs err and broadcasts it as an ErrorEvent. Worker only.
func (s *Service) report(op, path string, err error) {
	logger.Warn("playback command failed",
		logger.String("op", op),
		logger.String("path", path),
		logger.Err(err),
	)
	e := ErrorEvent{Operation: op, Path: path, Err: err}
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendError(e)
	}
}

// snapshot copies the worker state.
func (s *Service) snapshot() *Snapshot {
	pb := s.playback
	if pb.Current != nil {
		cur := *pb.Current
		pb.Current = &cur
		pb.Elapsed = min(s.engine.Position(), max(pb.Duration, 0))
	}

	entries := s.history.Entries()
	for i, e := range entries {
		if r, ok := s.catalog.Resolve(e); ok {
			entries[i] = r
		} else {
			entries[i].ID = -1
		}
	}

	return &Snapshot{
		Seq:         s.seq,
		Playback:    pb,
		History:     HistoryView{Entries: entries, Pointer: s.history.Pointer()},
		Catalog:     s.catalog.Tracks(),
		LibraryRoot: s.libraryRoot,
		Mode:        s.mode,
		SortKey:     s.sortKey,
		Ascending:   s.ascending,
		Locale:      s.locale,
		Lyrics:      append([]lyrics.Line(nil), s.lyrics...),
		Cover:       s.cover,
	}
}
