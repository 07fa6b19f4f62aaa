package watchlist

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"
)

func TestSaveLoad(t *testing.T) {
	s := NewStore(t.TempDir(), nil)

	if err := s.Save("mylist", []string{"btc", "eth"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := s.Load("mylist")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if want := []string{"btc", "eth"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %v, want %v", got, want)
	}
}

func TestSave_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "watchlists")
	s := NewStore(dir, nil)

	if err := s.Save("majors", []string{"btc"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "majors"+Extension)); err != nil {
		t.Errorf("watchlist file not created: %v", err)
	}
}

func TestSave_Overwrites(t *testing.T) {
	s := NewStore(t.TempDir(), nil)

	if err := s.Save("mylist", []string{"btc", "eth", "sol"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := s.Save("mylist", []string{"doge"}); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	got, err := s.Load("mylist")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if want := []string{"doge"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %v, want %v (no merge)", got, want)
	}
}

func TestSave_PreservesOrder(t *testing.T) {
	s := NewStore(t.TempDir(), nil)
	symbols := []string{"sol", "btc", "pepe", "eth", "ada"}

	if err := s.Save("ordered", symbols); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := s.Load("ordered")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(got, symbols) {
		t.Errorf("Load() = %v, want %v", got, symbols)
	}
}

func TestSave_Empty(t *testing.T) {
	s := NewStore(t.TempDir(), nil)

	if err := s.Save("empty", nil); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := s.Load("empty")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Load() = %#v, want empty non-nil slice", got)
	}
}

func TestLoad_NotFound(t *testing.T) {
	s := NewStore(t.TempDir(), nil)

	_, err := s.Load("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(missing) error = %v, want ErrNotFound", err)
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken"+Extension), []byte("symbols: [btc\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s := NewStore(dir, nil)
	_, err := s.Load("broken")

	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("Load(broken) error = %v, want *IOError", err)
	}
	if ioErr.Op != "load" {
		t.Errorf("Op = %q, want %q", ioErr.Op, "load")
	}
}

func TestList(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		s := NewStore(filepath.Join(t.TempDir(), "nope"), nil)
		names, err := s.List()
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(names) != 0 {
			t.Errorf("List() = %v, want empty", names)
		}
	})

	t.Run("sorted names, other files ignored", func(t *testing.T) {
		dir := t.TempDir()
		s := NewStore(dir, nil)
		for _, name := range []string{"zeta", "alpha", "mid"} {
			if err := s.Save(name, []string{"btc"}); err != nil {
				t.Fatalf("Save(%s) failed: %v", name, err)
			}
		}
		os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644)
		os.WriteFile(filepath.Join(dir, ".hidden"+Extension), []byte("x"), 0o644)
		os.Mkdir(filepath.Join(dir, "sub"+Extension), 0o755)

		names, err := s.List()
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if want := []string{"alpha", "mid", "zeta"}; !reflect.DeepEqual(names, want) {
			t.Errorf("List() = %v, want %v", names, want)
		}
	})
}

func TestInvalidNames(t *testing.T) {
	s := NewStore(t.TempDir(), nil)

	for _, name := range []string{"", "   ", "../escape", "a/b", `a\b`, ".hidden"} {
		t.Run(name, func(t *testing.T) {
			if err := s.Save(name, []string{"btc"}); !errors.Is(err, ErrInvalidName) {
				t.Errorf("Save(%q) error = %v, want ErrInvalidName", name, err)
			}
			if _, err := s.Load(name); !errors.Is(err, ErrInvalidName) {
				t.Errorf("Load(%q) error = %v, want ErrInvalidName", name, err)
			}
		})
	}
}

func TestSave_UnwritableDirectory(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits not enforced")
	}

	dir := t.TempDir()
	if err := os.Chmod(dir, 0o555); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	defer os.Chmod(dir, 0o755)

	s := NewStore(dir, nil)
	err := s.Save("mylist", []string{"btc"})

	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("Save error = %v, want *IOError", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("directory has %d entries after failed save, want 0", len(entries))
	}
}
