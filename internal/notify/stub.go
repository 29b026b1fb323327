//go:build !linux

package notify

import "errors"

// New reports that desktop notices need a freedesktop session bus.
func New() (Notifier, error) {
	return nil, errors.New("desktop notices are only supported on linux")
}
