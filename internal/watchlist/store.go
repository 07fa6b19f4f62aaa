// Package watchlist persists named, ordered symbol lists as one YAML file each.
package watchlist

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Extension is the file extension of a stored watchlist.
const Extension = ".yaml"

var (
	// ErrNotFound is returned when no watchlist has the requested name.
	ErrNotFound = errors.New("watchlist not found")

	// ErrInvalidName is returned for names that cannot be used as a file name.
	ErrInvalidName = errors.New("invalid watchlist name")
)

// IOError reports a persistence failure of a store operation.
type IOError struct {
	Op   string // "save", "load", "list"
	Name string
	Err  error
}

func (e *IOError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("watchlist %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("watchlist %s %q: %v", e.Op, e.Name, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// file is the on-disk layout of one watchlist.
type file struct {
	Name    string    `yaml:"name"`
	Symbols []string  `yaml:"symbols"`
	SavedAt time.Time `yaml:"saved_at"`
}

// Store reads and writes watchlists under a single directory.
type Store struct {
	dir    string
	logger *slog.Logger
	now    func() time.Time
}

// NewStore creates a Store rooted at dir. The directory is created on first save.
func NewStore(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		dir:    dir,
		logger: logger,
		now:    time.Now,
	}
}

// Dir returns the storage directory.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes symbols under name, replacing any existing list of that name.
// The file is written to a temporary path and renamed into place, so a failed
// save never leaves a truncated watchlist behind.
func (s *Store) Save(name string, symbols []string) error {
	if err := validateName(name); err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return &IOError{Op: "save", Name: name, Err: err}
	}

	data, err := yaml.Marshal(file{
		Name:    name,
		Symbols: append([]string(nil), symbols...),
		SavedAt: s.now().UTC(),
	})
	if err != nil {
		return &IOError{Op: "save", Name: name, Err: fmt.Errorf("encode: %w", err)}
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+"-*.tmp")
	if err != nil {
		return &IOError{Op: "save", Name: name, Err: err}
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return &IOError{Op: "save", Name: name, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return &IOError{Op: "save", Name: name, Err: err}
	}
	if err := os.Rename(tmpPath, s.path(name)); err != nil {
		os.Remove(tmpPath)
		return &IOError{Op: "save", Name: name, Err: err}
	}

	s.logger.Debug("watchlist saved",
		"name", name,
		"symbols", len(symbols),
		"path", s.path(name),
	)
	return nil
}

// Load returns the symbols saved under name, in saved order.
func (s *Store) Load(name string) ([]string, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, &IOError{Op: "load", Name: name, Err: err}
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, &IOError{Op: "load", Name: name, Err: fmt.Errorf("decode: %w", err)}
	}

	if f.Symbols == nil {
		return []string{}, nil
	}
	return f.Symbols, nil
}

// List returns the names of all saved watchlists, sorted.
// A missing storage directory yields an empty list.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, &IOError{Op: "list", Err: err}
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if name, ok := strings.CutSuffix(e.Name(), Extension); ok && name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+Extension)
}

// validateName rejects names that would escape the directory or be hidden.
func validateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: empty", ErrInvalidName)
	case strings.HasPrefix(name, "."):
		return fmt.Errorf("%w: %q starts with a dot", ErrInvalidName, name)
	case strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	}
	return nil
}
