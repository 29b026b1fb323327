//go:build !linux

package mpris

import (
	"time"

	"github.com/llehouerou/zeedle/internal/playback"
)

// Service is the part of playback.Service the adapter needs.
type Service interface {
	Send(cmd playback.Command) error
	Latest() *playback.Snapshot
}

// Adapter is a no-op on non-Linux platforms.
type Adapter struct{}

// New returns a no-op adapter on non-Linux platforms.
func New(_ Service, _ func() time.Duration) (*Adapter, error) {
	return &Adapter{}, nil
}

// Close is a no-op on non-Linux platforms.
func (a *Adapter) Close() error {
	return nil
}
