//go:build linux

// Package mpris exposes the player on the session bus so media keys and
// desktop widgets can control it.
package mpris

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/zeedle/internal/playback"
)

// Service is the part of playback.Service the adapter needs.
type Service interface {
	Send(cmd playback.Command) error
	Latest() *playback.Snapshot
}

// Adapter connects the playback service to MPRIS over D-Bus.
type Adapter struct {
	server *server.Server
}

// New creates and starts a new MPRIS adapter.
func New(service Service, position func() time.Duration) (*Adapter, error) {
	a := &Adapter{}
	a.server = server.NewServer("zeedle", &rootAdapter{}, &playerAdapter{service: service, position: position})

	go func() {
		_ = a.server.Listen()
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // Not supported - app manages its own lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "Zeedle", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/wav", "audio/ogg"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter and optional interfaces.
type playerAdapter struct {
	service  Service
	position func() time.Duration
}

func (p *playerAdapter) state() playback.State {
	return p.service.Latest().Playback.State()
}

func (p *playerAdapter) Next() error {
	return p.service.Send(playback.NextCmd{})
}

func (p *playerAdapter) Previous() error {
	return p.service.Send(playback.PrevCmd{})
}

func (p *playerAdapter) Pause() error {
	if p.state() != playback.StatePlaying {
		return nil
	}
	return p.service.Send(playback.TogglePauseCmd{})
}

func (p *playerAdapter) PlayPause() error {
	return p.service.Send(playback.TogglePauseCmd{})
}

// Stop pauses; the player has no separate stopped state once a track is loaded.
func (p *playerAdapter) Stop() error {
	return p.Pause()
}

func (p *playerAdapter) Play() error {
	if p.state() == playback.StatePlaying {
		return nil
	}
	return p.service.Send(playback.TogglePauseCmd{})
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	pos := p.position() + time.Duration(offset)*time.Microsecond
	return p.service.Send(playback.SeekCmd{Position: pos})
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	return p.service.Send(playback.SeekCmd{Position: time.Duration(position) * time.Microsecond})
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	return playbackStatus(p.state()), nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	return metadata(p.service.Latest()), nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetVolume(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Position() (int64, error) {
	return p.position().Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return len(p.service.Latest().Catalog) > 0, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return p.service.Latest().Playback.Current != nil, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return len(p.service.Latest().Catalog) > 0, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

// LoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	return loopStatus(p.service.Latest().Mode), nil
}

// SetLoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) SetLoopStatus(status types.LoopStatus) error {
	mode := playback.InOrder
	if status == types.LoopStatusTrack {
		mode = playback.Recursive
	}
	return p.service.Send(playback.SetPlayModeCmd{Mode: mode})
}

// Shuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) Shuffle() (bool, error) {
	return p.service.Latest().Mode == playback.Random, nil
}

// SetShuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) SetShuffle(shuffle bool) error {
	mode := playback.InOrder
	if shuffle {
		mode = playback.Random
	}
	return p.service.Send(playback.SetPlayModeCmd{Mode: mode})
}

func playbackStatus(s playback.State) types.PlaybackStatus {
	switch s {
	case playback.StatePlaying:
		return types.PlaybackStatusPlaying
	case playback.StatePaused:
		return types.PlaybackStatusPaused
	case playback.StateStopped:
		return types.PlaybackStatusStopped
	}
	return types.PlaybackStatusStopped
}

func loopStatus(m playback.PlayMode) types.LoopStatus {
	switch m {
	case playback.Recursive:
		return types.LoopStatusTrack
	case playback.InOrder:
		return types.LoopStatusPlaylist
	case playback.Random:
		return types.LoopStatusNone
	}
	return types.LoopStatusNone
}

func metadata(snap *playback.Snapshot) types.Metadata {
	track := snap.Playback.Current
	if track == nil {
		return types.Metadata{}
	}

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(track.Path)),
		Length:  types.Microseconds(snap.Playback.Duration.Microseconds()),
		Title:   track.Title,
		Artist:  []string{track.Artist},
	}
	if artPath := ArtPath(track.Path, snap.Cover); artPath != "" {
		meta.ArtUrl = "file://" + artPath
	}
	return meta
}

func formatTrackID(path string) string {
	h := fnv.New64a()
	h.Write([]byte(path))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
