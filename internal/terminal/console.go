// Package terminal listens for single keypresses on an interactive terminal.
//
// While listening, the terminal is switched to cbreak mode: no line buffering,
// no echo, signals still delivered (Ctrl-C raises SIGINT), and reads return at
// least every 100ms so the listener can notice its context ending.
package terminal

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"sync"

	"golang.org/x/term"
)

// Esc always stops a listener in addition to the configured stop keys.
const Esc = 0x1b

// Console owns the terminal state of one input file.
type Console struct {
	in     *os.File
	logger *slog.Logger

	mu    sync.Mutex
	saved *term.State
}

// NewConsole wraps in, typically os.Stdin.
func NewConsole(in *os.File, logger *slog.Logger) *Console {
	if logger == nil {
		logger = slog.Default()
	}
	return &Console{in: in, logger: logger}
}

// Interactive reports whether the input is a terminal.
func (c *Console) Interactive() bool {
	return term.IsTerminal(int(c.in.Fd()))
}

// Restore puts the terminal back into the state saved by the last
// WatchKeys. Safe to call at any time, from any goroutine, any number of times.
func (c *Console) Restore() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.saved == nil {
		return nil
	}
	err := term.Restore(int(c.in.Fd()), c.saved)
	c.saved = nil
	return err
}

// WatchKeys calls onStop when one of stopKeys (or Esc) is pressed, then returns.
// It also returns when ctx ends. The terminal is restored before returning.
// On a non-interactive input it simply waits for ctx.
func (c *Console) WatchKeys(ctx context.Context, stopKeys string, onStop func()) error {
	if !c.Interactive() {
		<-ctx.Done()
		return nil
	}

	if err := c.enterCbreak(); err != nil {
		c.logger.Warn("keypress listener unavailable", "err", err)
		<-ctx.Done()
		return nil
	}
	defer c.Restore()

	buf := make([]byte, 16)
	for {
		if ctx.Err() != nil {
			return nil
		}

		n, err := c.in.Read(buf)
		if err != nil && !errors.Is(err, io.EOF) {
			// EOF is a read timeout under VMIN=0.
			c.logger.Debug("keypress read failed", "err", err)
			<-ctx.Done()
			return nil
		}

		for _, b := range buf[:n] {
			if IsStopKey(b, stopKeys) {
				onStop()
				return nil
			}
		}
	}
}

func (c *Console) enterCbreak() error {
	fd := int(c.in.Fd())

	state, err := term.GetState(fd)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.saved = state
	c.mu.Unlock()

	if err := setCbreak(fd); err != nil {
		c.Restore()
		return err
	}
	return nil
}

// IsStopKey reports whether b is Esc or one of stopKeys.
func IsStopKey(b byte, stopKeys string) bool {
	if b == Esc {
		return true
	}
	for i := 0; i < len(stopKeys); i++ {
		if stopKeys[i] == b {
			return true
		}
	}
	return false
}
