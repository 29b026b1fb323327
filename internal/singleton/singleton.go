// Package singleton keeps a second player from opening the audio device.
package singleton

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/shirou/gopsutil/v3/process"
)

// ErrRunning is returned when a live instance holds the lock.
var ErrRunning = errors.New("zeedle is already running")

// Lock is a held PID file.
type Lock struct {
	path string
}

// alive reports whether pid is a running process.
var alive = func(pid int) bool {
	ok, err := process.PidExists(int32(pid)) //nolint:gosec // pids fit in int32
	return err == nil && ok
}

// DefaultPath returns the PID file location in the XDG runtime directory.
func DefaultPath() string {
	return filepath.Join(xdg.RuntimeDir, "zeedle.pid")
}

// Acquire creates the PID file at path. A file left by a process that is no
// longer running is reclaimed.
func Acquire(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	for range 2 {
		err := create(path)
		if err == nil {
			return &Lock{path: path}, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, err
		}

		pid, readErr := readPID(path)
		if readErr == nil && pid != os.Getpid() && alive(pid) {
			return nil, fmt.Errorf("%w (pid %d)", ErrRunning, pid)
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: could not claim %s", ErrRunning, path)
}

// Release removes the PID file.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	err := os.Remove(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func create(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	_, err = f.WriteString(strconv.Itoa(os.Getpid()) + "\n")
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

func readPID(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}
