package notify

import (
	"context"

	"github.com/llehouerou/zeedle/internal/errmsg"
	"github.com/llehouerou/zeedle/internal/logger"
	"github.com/llehouerou/zeedle/internal/playback"
)

// ReportErrors shows each playback error as a desktop notice until ctx is
// done or events is closed. Each notice replaces the previous one, so a run
// of failures never stacks up on screen.
func ReportErrors(ctx context.Context, n Notifier, events <-chan playback.ErrorEvent) {
	var last uint32
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			id, err := n.Notify(Notice{Summary: "zeedle", Body: errmsg.Event(e), Replaces: last})
			if err != nil {
				logger.Debug("desktop notice failed", logger.Err(err))
				continue
			}
			last = id
		}
	}
}
