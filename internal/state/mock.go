package state

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/llehouerou/zeedle/internal/catalog"
)

// Mock is an in-memory test double for Manager.
type Mock struct {
	mu     sync.Mutex
	plays  []Play
	closed bool
}

// NewMock creates a new mock store for testing.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) RecordPlay(_ context.Context, t catalog.Track, trigger string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plays = append(m.plays, Play{
		ID:       int64(len(m.plays) + 1),
		Session:  "mock",
		Path:     t.Path,
		Title:    t.Title,
		Artist:   t.Artist,
		Trigger:  trigger,
		PlayedAt: time.Now(),
	})
	return nil
}

func (m *Mock) Recent(_ context.Context, limit int) ([]Play, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := slices.Clone(m.plays)
	slices.Reverse(out)
	if limit < len(out) {
		out = out[:max(limit, 0)]
	}
	return out, nil
}

func (m *Mock) SeedHistory(ctx context.Context, cat *catalog.Catalog, limit int) ([]catalog.Track, error) {
	plays, _ := m.Recent(ctx, limit)
	return resolvePlays(plays, cat), nil
}

func (m *Mock) Session() string { return "mock" }

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
