package terminal

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestIsStopKey(t *testing.T) {
	tests := []struct {
		b    byte
		keys string
		want bool
	}{
		{'q', "q", true},
		{'Q', "qQ", true},
		{'Q', "q", false},
		{Esc, "", true},
		{'x', "q", false},
		{'\n', "q", false},
	}

	for _, tt := range tests {
		if got := IsStopKey(tt.b, tt.keys); got != tt.want {
			t.Errorf("IsStopKey(%q, %q) = %v, want %v", tt.b, tt.keys, got, tt.want)
		}
	}
}

func TestWatchKeys_NonInteractive(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "input"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	f.WriteString("q")

	c := NewConsole(f, nil)
	if c.Interactive() {
		t.Fatal("regular file reported as interactive")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	stopped := false
	if err := c.WatchKeys(ctx, "q", func() { stopped = true }); err != nil {
		t.Fatalf("WatchKeys error: %v", err)
	}
	if stopped {
		t.Error("onStop called for non-interactive input")
	}
}

func TestRestore_WithoutSavedState(t *testing.T) {
	c := NewConsole(os.Stdin, nil)
	if err := c.Restore(); err != nil {
		t.Errorf("Restore() error = %v, want nil", err)
	}
	if err := c.Restore(); err != nil {
		t.Errorf("second Restore() error = %v, want nil", err)
	}
}
