package playback

const errorBufferSize = 16

// Subscription provides event channels for a subscriber.
type Subscription struct {
	// Snapshots holds at most the latest unread snapshot. A slow reader
	// skips intermediate states but always sees the newest one.
	Snapshots <-chan *Snapshot
	Error     <-chan ErrorEvent
	Done      <-chan struct{}

	// Internal write channels
	snapCh  chan *Snapshot
	errorCh chan ErrorEvent
	doneCh  chan struct{}
}

// newSubscription creates a new subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		snapCh:  make(chan *Snapshot, 1),
		errorCh: make(chan ErrorEvent, errorBufferSize),
		doneCh:  make(chan struct{}),
	}
	s.Snapshots = s.snapCh
	s.Error = s.errorCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// sendSnapshot replaces any unread snapshot with snap. Only the service
// worker calls it, so the drain and send cannot race another writer.
func (s *Subscription) sendSnapshot(snap *Snapshot) {
	select {
	case s.snapCh <- snap:
		return
	default:
	}
	select {
	case <-s.snapCh:
	default:
	}
	select {
	case s.snapCh <- snap:
	default:
	}
}

// sendError sends an error event (non-blocking).
func (s *Subscription) sendError(e ErrorEvent) {
	select {
	case s.errorCh <- e:
	default:
		// Drop if buffer full
	}
}
