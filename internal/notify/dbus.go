//go:build linux

package notify

import (
	"github.com/godbus/dbus/v5"
)

const (
	busName      = "org.freedesktop.Notifications"
	busPath      = "/org/freedesktop/Notifications"
	notifyMethod = busName + ".Notify"

	appName   = "zeedle"
	errorIcon = "dialog-error"
	// expireMillis keeps a failure on screen for 5 s.
	expireMillis  = int32(5000)
	urgencyNormal = byte(1)
)

// caller is the part of dbus.BusObject the notifier needs.
type caller interface {
	Call(method string, flags dbus.Flags, args ...any) *dbus.Call
}

type dbusNotifier struct {
	obj caller
}

// New connects to the session bus. It fails when there is none, which is
// common over SSH and in containers.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, err
	}
	return &dbusNotifier{obj: conn.Object(busName, busPath)}, nil
}

func (d *dbusNotifier) Notify(n Notice) (uint32, error) {
	var id uint32
	if err := d.obj.Call(notifyMethod, 0, notifyArgs(n)...).Store(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// notifyArgs follows Notify(app_name, replaces_id, app_icon, summary, body,
// actions, hints, expire_timeout).
func notifyArgs(n Notice) []any {
	hints := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(urgencyNormal),
		"desktop-entry": dbus.MakeVariant(appName),
	}
	return []any{appName, n.Replaces, errorIcon, n.Summary, n.Body, []string{}, hints, expireMillis}
}
