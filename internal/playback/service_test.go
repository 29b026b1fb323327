package playback

import (
	"context"
	"errors"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/zeedle/internal/catalog"
	"github.com/llehouerou/zeedle/internal/lyrics"
	"github.com/llehouerou/zeedle/internal/player"
	"github.com/llehouerou/zeedle/internal/state"
)

type fakeRecorder struct {
	plays []string
}

func (r *fakeRecorder) RecordPlay(_ context.Context, t catalog.Track, trigger string) error {
	r.plays = append(r.plays, t.Path+"|"+trigger)
	return nil
}

func testCatalog(n int) *catalog.Catalog {
	tracks := make([]catalog.Track, n)
	for i := range tracks {
		tracks[i] = track(i)
		tracks[i].Length = time.Duration(i+1) * time.Minute
	}
	return catalog.New(tracks)
}

func newTestService(t *testing.T, n int, mutate ...func(*Options)) (*Service, *player.Mock) {
	t.Helper()
	eng := player.NewMock()
	opts := Options{
		Engine:     eng,
		Catalog:    testCatalog(n),
		LoadExtras: func(string) Extras { return Extras{} },
	}
	for _, m := range mutate {
		m(&opts)
	}
	return New(opts), eng
}

func apply(t *testing.T, s *Service, cmds ...Command) {
	t.Helper()
	for _, c := range cmds {
		_ = c.apply(context.Background(), s)
	}
}

func currentID(t *testing.T, s *Service) int {
	t.Helper()
	cur := s.Latest().Playback.Current
	require.NotNil(t, cur, "no current track")
	return cur.ID
}

func TestNew_InitialSnapshot(t *testing.T) {
	s, _ := newTestService(t, 3)

	snap := s.Latest()
	require.NotNil(t, snap)
	assert.Nil(t, snap.Playback.Current)
	assert.True(t, snap.Playback.Paused)
	assert.Equal(t, StateStopped, snap.Playback.State())
	assert.Len(t, snap.Catalog, 3)
	assert.Equal(t, "en", snap.Locale)
}

func TestPlay_UserSelected(t *testing.T) {
	rec := &fakeRecorder{}
	s, eng := newTestService(t, 3, func(o *Options) {
		o.Recorder = rec
		o.LoadExtras = func(string) Extras {
			return Extras{Lyrics: lyrics.Parse("[00:01.00]hi")}
		}
	})
	eng.SetDuration(track(1).Path, 90*time.Second)

	apply(t, s, PlayCmd{Track: track(1), Trigger: UserSelected})

	snap := s.Latest()
	assert.Equal(t, 1, currentID(t, s))
	assert.False(t, snap.Playback.Paused)
	assert.True(t, snap.Playback.UserListening)
	assert.Equal(t, 90*time.Second, snap.Playback.Duration)
	assert.Len(t, snap.Lyrics, 1)
	assert.Equal(t, 1, len(snap.History.Entries))
	assert.Equal(t, []string{track(1).Path + "|user_selected"}, rec.plays)
	assert.Equal(t, uint64(1), snap.Seq)
}

func TestPlay_DecodeErrorReported(t *testing.T) {
	s, eng := newTestService(t, 3)
	sub := s.Subscribe()
	eng.SetPlayError(track(2).Path, errors.New("bad header"))

	err := PlayCmd{Track: track(2), Trigger: UserSelected}.apply(context.Background(), s)

	require.Error(t, err)
	assert.True(t, IsDecodeError(err))
	snap := s.Latest()
	assert.Equal(t, 2, currentID(t, s))
	assert.True(t, snap.Playback.Paused)
	assert.False(t, snap.Playback.UserListening)
	assert.Len(t, snap.History.Entries, 1, "history records the pick even when decode fails")
	assert.True(t, eng.Empty())

	select {
	case e := <-sub.Error:
		assert.Equal(t, OpPlay, e.Operation)
		assert.Equal(t, track(2).Path, e.Path)
	default:
		t.Fatal("no error event published")
	}
}

func TestNext_InOrderWraps(t *testing.T) {
	s, eng := newTestService(t, 3)
	apply(t, s, PlayCmd{Track: track(0), Trigger: UserSelected})

	var ids []int
	for range 3 {
		apply(t, s, NextCmd{})
		ids = append(ids, currentID(t, s))
	}

	assert.Equal(t, []int{1, 2, 0}, ids)
	assert.Len(t, s.Latest().History.Entries, 4)
	assert.Equal(t, 0, s.Latest().History.Pointer)
	assert.Len(t, eng.PlayCalls(), 4)
}

func TestNext_WithoutCurrentStartsAtFirst(t *testing.T) {
	s, _ := newTestService(t, 3)
	apply(t, s, NextCmd{})
	assert.Equal(t, 0, currentID(t, s))
}

func TestNext_EmptyCatalogIsNoop(t *testing.T) {
	s, eng := newTestService(t, 0)
	apply(t, s, NextCmd{}, PrevCmd{}, TogglePauseCmd{})
	assert.Nil(t, s.Latest().Playback.Current)
	assert.Empty(t, eng.PlayCalls())
}

func TestNext_RecursiveRepeatsWithoutGrowingHistory(t *testing.T) {
	s, _ := newTestService(t, 3, func(o *Options) { o.Mode = Recursive })
	apply(t, s, PlayCmd{Track: track(1), Trigger: UserSelected})

	for range 5 {
		apply(t, s, NextCmd{})
		assert.Equal(t, 1, currentID(t, s))
	}
	assert.Len(t, s.Latest().History.Entries, 1)
}

func TestRecorder_OnlyHistoryGrowth(t *testing.T) {
	rec := &fakeRecorder{}
	s, _ := newTestService(t, 5, func(o *Options) { o.Recorder = rec })

	apply(t, s,
		PlayCmd{Track: track(3), Trigger: UserSelected},
		PlayCmd{Track: track(1), Trigger: UserSelected},
		PrevCmd{},
		NextCmd{},
		NextCmd{},
		SetPlayModeCmd{Mode: Recursive},
		NextCmd{},
		NextCmd{},
	)

	assert.Len(t, s.Latest().History.Entries, 3)
	assert.Equal(t, []string{
		track(3).Path + "|user_selected",
		track(1).Path + "|user_selected",
		track(2).Path + "|stepped_forward",
	}, rec.plays)
}

func TestRecorder_SeedMatchesLiveHistory(t *testing.T) {
	store, err := state.OpenPath(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	s, _ := newTestService(t, 4, func(o *Options) { o.Recorder = store })
	apply(t, s, PlayCmd{Track: track(1), Trigger: UserSelected}, NextCmd{}, PrevCmd{}, NextCmd{})
	apply(t, s, SetPlayModeCmd{Mode: Recursive})
	for range 10 {
		apply(t, s, NextCmd{})
	}
	live := s.Latest().History.Entries

	seed, err := store.SeedHistory(context.Background(), testCatalog(4), 200)
	require.NoError(t, err)
	restarted, _ := newTestService(t, 4, func(o *Options) { o.History = seed })

	got := restarted.Latest().History.Entries
	require.Len(t, got, len(live))
	for i := range live {
		assert.Equal(t, live[i].Path, got[i].Path)
	}
}

func TestNext_Random(t *testing.T) {
	picks := []int{2, 2, 0}
	s, _ := newTestService(t, 3, func(o *Options) {
		o.Mode = Random
		o.Rand = func(n int) int {
			p := picks[0]
			picks = picks[1:]
			return p % n
		}
	})

	apply(t, s, NextCmd{})
	assert.Equal(t, 2, currentID(t, s))
	apply(t, s, NextCmd{})
	assert.Equal(t, 2, currentID(t, s), "random may repeat the current track")
}

func TestNext_RandomAvoidRepeat(t *testing.T) {
	s, _ := newTestService(t, 3, func(o *Options) {
		o.Mode = Random
		o.AvoidRepeat = true
		o.Rand = func(int) int { return 0 }
	})
	apply(t, s, PlayCmd{Track: track(1), Trigger: UserSelected})

	apply(t, s, NextCmd{})
	assert.Equal(t, 0, currentID(t, s))
	apply(t, s, NextCmd{})
	assert.Equal(t, 1, currentID(t, s), "picks the next distinct ordinal")
}

func TestPrev_AtOldestReplaysCurrent(t *testing.T) {
	s, eng := newTestService(t, 3)
	apply(t, s, PlayCmd{Track: track(2), Trigger: UserSelected})

	apply(t, s, PrevCmd{})

	assert.Equal(t, 2, currentID(t, s))
	assert.Equal(t, []string{track(2).Path, track(2).Path}, eng.PlayCalls())
	assert.Len(t, s.Latest().History.Entries, 1)
}

func TestPrevNext_WalkHistory(t *testing.T) {
	s, _ := newTestService(t, 5)
	for _, id := range []int{3, 1, 4} {
		apply(t, s, PlayCmd{Track: track(id), Trigger: UserSelected})
	}

	apply(t, s, PrevCmd{})
	assert.Equal(t, 1, currentID(t, s))
	apply(t, s, PrevCmd{})
	assert.Equal(t, 3, currentID(t, s))
	assert.Equal(t, 2, s.Latest().History.Pointer)

	apply(t, s, NextCmd{})
	assert.Equal(t, 1, currentID(t, s))
	apply(t, s, NextCmd{})
	assert.Equal(t, 4, currentID(t, s))
	assert.Equal(t, 0, s.Latest().History.Pointer)
	assert.Len(t, s.Latest().History.Entries, 3, "re-walking history does not grow it")

	apply(t, s, NextCmd{})
	assert.Equal(t, 0, currentID(t, s), "live edge continues in order")
	assert.Len(t, s.Latest().History.Entries, 4)
}

func TestTogglePause(t *testing.T) {
	s, eng := newTestService(t, 2)

	apply(t, s, TogglePauseCmd{})
	assert.Equal(t, 0, currentID(t, s), "first toggle plays the first track")
	assert.False(t, s.Latest().Playback.Paused)

	apply(t, s, TogglePauseCmd{})
	assert.True(t, s.Latest().Playback.Paused)
	assert.Equal(t, player.Paused, eng.State())

	apply(t, s, TogglePauseCmd{})
	assert.False(t, s.Latest().Playback.Paused)
	assert.True(t, s.Latest().Playback.UserListening)
}

func TestSeek(t *testing.T) {
	s, eng := newTestService(t, 1)
	eng.SetDuration(track(0).Path, time.Minute)
	apply(t, s, PlayCmd{Track: track(0), Trigger: UserSelected})

	apply(t, s, SeekCmd{Position: 2 * time.Minute})
	assert.Equal(t, time.Minute, s.Latest().Playback.Elapsed, "clamped to duration")

	apply(t, s, SeekCmd{Position: -time.Second})
	assert.Equal(t, time.Duration(0), s.Latest().Playback.Elapsed)
}

func TestSeek_ErrorKeepsPosition(t *testing.T) {
	s, eng := newTestService(t, 1)
	eng.SetDuration(track(0).Path, time.Minute)
	apply(t, s, PlayCmd{Track: track(0), Trigger: UserSelected}, SeekCmd{Position: 10 * time.Second})
	sub := s.Subscribe()
	eng.SetSeekError(errors.New("not seekable"))

	err := SeekCmd{Position: 30 * time.Second}.apply(context.Background(), s)

	var se *player.SeekError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 10*time.Second, eng.Position())
	e := <-sub.Error
	assert.Equal(t, OpSeek, e.Operation)
}

func TestSeek_NothingLoaded(t *testing.T) {
	s, eng := newTestService(t, 1)
	apply(t, s, SeekCmd{Position: time.Second})
	assert.Empty(t, eng.SeekCalls())
	assert.Equal(t, uint64(0), s.Latest().Seq)
}

func TestSort_ReresolvesCurrent(t *testing.T) {
	s, _ := newTestService(t, 3)
	apply(t, s, PlayCmd{Track: track(0), Trigger: UserSelected})

	apply(t, s, SortCmd{Key: catalog.SortByDuration, Ascending: false})

	snap := s.Latest()
	assert.Equal(t, track(0).Path, snap.Playback.Current.Path)
	assert.Equal(t, 2, snap.Playback.Current.ID)
	assert.Equal(t, 2, snap.History.Entries[0].ID)
	assert.Equal(t, track(2).Path, snap.Catalog[0].Path)
	assert.Equal(t, catalog.SortByDuration, snap.SortKey)
	assert.False(t, snap.Ascending)
}

func TestSetLocale(t *testing.T) {
	s, _ := newTestService(t, 0)
	sub := s.Subscribe()

	apply(t, s, SetLocaleCmd{Tag: "zh-CN"})
	assert.Equal(t, "zh-CN", s.Latest().Locale)

	err := SetLocaleCmd{Tag: "not a locale!"}.apply(context.Background(), s)
	require.Error(t, err)
	assert.Equal(t, "zh-CN", s.Latest().Locale)
	e := <-sub.Error
	assert.Equal(t, OpLocale, e.Operation)
}

func TestSetPlayMode(t *testing.T) {
	s, _ := newTestService(t, 0)
	apply(t, s, SetPlayModeCmd{Mode: Random})
	assert.Equal(t, Random, s.Latest().Mode)
}

func TestRescan_PlaysFirst(t *testing.T) {
	s, _ := newTestService(t, 0, func(o *Options) {
		o.Scan = func(_ context.Context, root string, _ catalog.SortKey, _ bool) (catalog.Result, error) {
			return catalog.Result{Tracks: testCatalog(2).Tracks()}, nil
		}
	})

	apply(t, s, RescanCmd{Dir: "/music"})

	snap := s.Latest()
	assert.Equal(t, "/music", snap.LibraryRoot)
	assert.Len(t, snap.Catalog, 2)
	assert.Equal(t, 0, currentID(t, s))
	assert.Len(t, snap.History.Entries, 1)
}

func TestRescan_EmptyResetsPlayback(t *testing.T) {
	s, eng := newTestService(t, 2, func(o *Options) {
		o.Scan = func(context.Context, string, catalog.SortKey, bool) (catalog.Result, error) {
			return catalog.Result{Tracks: []catalog.Track{}}, nil
		}
		o.LoadExtras = func(string) Extras { return Extras{Lyrics: lyrics.Parse("[00:01.00]x")} }
	})
	apply(t, s, PlayCmd{Track: track(1), Trigger: UserSelected})

	apply(t, s, RescanCmd{Dir: "/empty"})

	snap := s.Latest()
	assert.Nil(t, snap.Playback.Current)
	assert.True(t, snap.Playback.Paused)
	assert.Empty(t, snap.Lyrics)
	assert.Empty(t, snap.Catalog)
	assert.True(t, eng.Empty())
	assert.Equal(t, -1, snap.History.Entries[0].ID, "history keeps entries that left the catalog")
}

func TestRefresh_KeepsPlaying(t *testing.T) {
	added := catalog.Track{Path: "/music/0a.mp3", Title: "0a", Length: time.Minute}
	s, eng := newTestService(t, 3, func(o *Options) {
		o.LibraryRoot = "/music"
		o.Scan = func(_ context.Context, root string, _ catalog.SortKey, _ bool) (catalog.Result, error) {
			assert.Equal(t, "/music", root)
			tracks := append([]catalog.Track{added}, testCatalog(3).Tracks()...)
			for i := range tracks {
				tracks[i].ID = i
			}
			return catalog.Result{Tracks: tracks}, nil
		}
	})
	apply(t, s, PlayCmd{Track: track(2), Trigger: UserSelected})
	eng.SetPosition(40 * time.Second)

	apply(t, s, RefreshCmd{})

	snap := s.Latest()
	require.NotNil(t, snap.Playback.Current)
	assert.Equal(t, track(2).Path, snap.Playback.Current.Path)
	assert.Equal(t, 3, snap.Playback.Current.ID, "current track re-resolved in the new ordering")
	assert.False(t, snap.Playback.Paused)
	assert.Len(t, snap.Catalog, 4)
	assert.Equal(t, []string{track(2).Path}, eng.PlayCalls(), "refresh does not restart playback")
	assert.Equal(t, 40*time.Second, eng.Position())
	assert.Len(t, snap.History.Entries, 1)
}

func TestRefresh_ScanErrorKeepsCatalog(t *testing.T) {
	s, _ := newTestService(t, 2, func(o *Options) {
		o.Scan = func(context.Context, string, catalog.SortKey, bool) (catalog.Result, error) {
			return catalog.Result{}, errors.New("gone")
		}
	})
	sub := s.Subscribe()

	err := RefreshCmd{}.apply(context.Background(), s)

	require.Error(t, err)
	assert.Len(t, s.Latest().Catalog, 2)
	e := <-sub.Error
	assert.Equal(t, OpRescan, e.Operation)
}

func TestRestore(t *testing.T) {
	s, eng := newTestService(t, 3)
	eng.SetDuration(track(1).Path, time.Minute)

	apply(t, s, RestoreCmd{Path: track(1).Path, Position: 20 * time.Second})

	snap := s.Latest()
	assert.Equal(t, 1, currentID(t, s))
	assert.True(t, snap.Playback.Paused)
	assert.False(t, snap.Playback.UserListening)
	assert.Equal(t, 20*time.Second, snap.Playback.Elapsed)
	assert.Equal(t, player.Paused, eng.State())
	assert.Len(t, snap.History.Entries, 1)
}

func TestRestore_MissingFileFromCatalog(t *testing.T) {
	s, _ := newTestService(t, 1)
	apply(t, s, RestoreCmd{Path: "/elsewhere/Old Song.mp3"})
	cur := s.Latest().Playback.Current
	require.NotNil(t, cur)
	assert.Equal(t, -1, cur.ID)
	assert.Equal(t, "Old Song", cur.Title)
}

func TestService_RunAndExec(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s, _ := newTestService(t, 3)
		sub := s.Subscribe()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() { _ = s.Run(ctx) }()

		require.NoError(t, s.Send(PlayCmd{Track: track(0), Trigger: UserSelected}))
		require.NoError(t, s.Exec(ctx, NextCmd{}))

		assert.Equal(t, 1, s.Latest().Playback.Current.ID)
		snap := <-sub.Snapshots
		assert.Equal(t, uint64(2), snap.Seq, "reader sees only the latest snapshot")

		require.NoError(t, s.Close())
		<-sub.Done
		assert.ErrorIs(t, s.Send(NextCmd{}), ErrClosed)
	})
}

func TestSubscription_LatestWins(t *testing.T) {
	sub := newSubscription()
	sub.sendSnapshot(&Snapshot{Seq: 1})
	sub.sendSnapshot(&Snapshot{Seq: 2})
	sub.sendSnapshot(&Snapshot{Seq: 3})

	got := <-sub.Snapshots
	assert.Equal(t, uint64(3), got.Seq)
	select {
	case s := <-sub.Snapshots:
		t.Fatalf("unexpected extra snapshot %d", s.Seq)
	default:
	}
}

func TestSubscription_ErrorsDropWhenFull(t *testing.T) {
	sub := newSubscription()
	for range errorBufferSize + 5 {
		sub.sendError(ErrorEvent{Operation: OpPlay})
	}
	assert.Len(t, sub.errorCh, errorBufferSize)
}
