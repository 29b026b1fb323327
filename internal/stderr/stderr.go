//go:build !windows

// Package stderr moves what native audio libraries (ALSA through oto)
// print on file descriptor 2 into the log while the terminal UI owns the
// screen.
package stderr

import (
	"bufio"
	"io"
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

// Messages carries captured lines. It is closed once Stop has drained the
// capture.
var Messages = make(chan string, 100)

// capture is fd pointed at a pipe, with saved holding its old target.
type capture struct {
	fd    int
	saved int
	r, w  *os.File
}

var (
	active  *capture
	started bool
)

// Start redirects stderr. Call it before the audio backend initializes.
// On error the program keeps writing to the terminal. Capture runs at most
// once per process.
func Start() error {
	if started {
		return nil
	}
	c, err := redirect(int(os.Stderr.Fd()))
	if err != nil {
		return err
	}
	active, started = c, true
	go pump(c.r, Messages)
	return nil
}

// Stop restores stderr. Lines already captured are still delivered before
// Messages closes.
func Stop() {
	if active == nil {
		return
	}
	active.restore()
	active = nil
}

func redirect(fd int) (*capture, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	saved, err := unix.Dup(fd)
	if err != nil {
		_ = r.Close()
		_ = w.Close()
		return nil, err
	}
	if err := unix.Dup2(int(w.Fd()), fd); err != nil {
		_ = unix.Close(saved)
		_ = r.Close()
		_ = w.Close()
		return nil, err
	}
	return &capture{fd: fd, saved: saved, r: r, w: w}, nil
}

// restore points fd back at its old target and closes the write end, which
// lets pump reach EOF.
func (c *capture) restore() {
	_ = unix.Dup2(c.saved, c.fd)
	_ = unix.Close(c.saved)
	_ = c.w.Close()
}

// pump sends the non-blank lines of r to out, dropping them while out is
// full, then closes both.
func pump(r io.ReadCloser, out chan<- string) {
	defer close(out)
	defer r.Close()
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		select {
		case out <- line:
		default:
		}
	}
}
