package stderr

import (
	"context"

	"github.com/llehouerou/zeedle/internal/logger"
)

// Forward logs captured lines until ctx is done or capture stops.
func Forward(ctx context.Context) {
	forward(ctx, Messages, func(line string) {
		logger.Warn("audio backend", logger.String("stderr", line))
	})
}

func forward(ctx context.Context, lines <-chan string, log func(string)) {
	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			log(line)
		}
	}
}
