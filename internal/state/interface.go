package state

import (
	"context"

	"github.com/llehouerou/zeedle/internal/catalog"
)

// Interface defines the history store contract for dependency injection and testing.
type Interface interface {
	RecordPlay(ctx context.Context, t catalog.Track, trigger string) error
	Recent(ctx context.Context, limit int) ([]Play, error)
	SeedHistory(ctx context.Context, cat *catalog.Catalog, limit int) ([]catalog.Track, error)
	Session() string
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
