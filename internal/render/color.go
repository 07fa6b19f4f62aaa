package render

import (
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
	ansiGray   = "\x1b[90m"
)

// AutoColor reports whether output written to f should be coloured.
// NO_COLOR (https://no-color.org) always disables colour.
func AutoColor(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Palette applies ANSI styling when enabled and passes text through otherwise.
type Palette struct {
	Enabled bool
}

func (p Palette) wrap(code, s string) string {
	if !p.Enabled || s == "" {
		return s
	}
	return code + s + ansiReset
}

// Class colours s by change direction.
func (p Palette) Class(c Class, s string) string {
	switch c {
	case Positive:
		return p.wrap(ansiGreen, s)
	case Negative:
		return p.wrap(ansiRed, s)
	default:
		return p.wrap(ansiGray, s)
	}
}

func (p Palette) Bold(s string) string   { return p.wrap(ansiBold, s) }
func (p Palette) Accent(s string) string { return p.wrap(ansiCyan, s) }
func (p Palette) Warn(s string) string   { return p.wrap(ansiYellow, s) }
func (p Palette) Error(s string) string  { return p.wrap(ansiRed, s) }
