// Package watch runs the live watch loop: resolve symbols, fetch one batched
// market snapshot, render it, then count down to the next refresh.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/devin-hart/coinmage/internal/model"
	"github.com/devin-hart/coinmage/internal/render"
)

// ErrNoValidAssets is returned when no symbol of a cycle resolves.
var ErrNoValidAssets = errors.New("no valid assets")

// Resolver maps user input to canonical asset IDs.
type Resolver interface {
	Resolve(ctx context.Context, input string) (string, error)
}

// MarketSource fetches market snapshots for a batch of asset IDs.
type MarketSource interface {
	Markets(ctx context.Context, ids []string, windows []model.Window) ([]model.MarketSnapshot, error)
}

// MarketSourceFunc is a function adapter for MarketSource.
type MarketSourceFunc func(ctx context.Context, ids []string, windows []model.Window) ([]model.MarketSnapshot, error)

func (f MarketSourceFunc) Markets(ctx context.Context, ids []string, windows []model.Window) ([]model.MarketSnapshot, error) {
	return f(ctx, ids, windows)
}

// Config holds session configuration.
type Config struct {
	Interval     time.Duration // Time between refreshes (default: 60s)
	Tick         time.Duration // Countdown step and cancellation check granularity (default: 1s)
	FetchTimeout time.Duration // Per-fetch timeout (default: 20s)
	Marker       string        // Currency marker for prices
	Palette      render.Palette
	StopHint     string // Shown next to the countdown, e.g. "press q to stop"
	ClearScreen  bool   // Clear the terminal before each table
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval:     60 * time.Second,
		Tick:         time.Second,
		FetchTimeout: 20 * time.Second,
		Marker:       "$",
	}
}

// State is a WatchSession lifecycle state.
type State int32

const (
	StateIdle State = iota
	StateResolving
	StateRendering
	StateWaiting
	StateCancelled
	StateDone // ended without cancellation (no valid assets)
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateResolving:
		return "resolving"
	case StateRendering:
		return "rendering"
	case StateWaiting:
		return "waiting"
	case StateCancelled:
		return "cancelled"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Session is one live watch. A Session runs once; create a new one per watch.
type Session struct {
	cfg      Config
	resolver Resolver
	markets  MarketSource
	out      io.Writer
	logger   *slog.Logger
	id       uuid.UUID

	state      atomic.Int32
	cancelled  atomic.Bool
	cancelCh   chan struct{}
	cancelOnce sync.Once
	fetches    atomic.Int64
}

// New creates a Session writing its table and countdown to out.
func New(cfg Config, resolver Resolver, markets MarketSource, out io.Writer, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	def := DefaultConfig()
	if cfg.Interval <= 0 {
		cfg.Interval = def.Interval
	}
	if cfg.Tick <= 0 {
		cfg.Tick = def.Tick
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = def.FetchTimeout
	}

	id := uuid.New()
	return &Session{
		cfg:      cfg,
		resolver: resolver,
		markets:  markets,
		out:      out,
		logger:   logger.With("session_id", id.String()),
		id:       id,
		cancelCh: make(chan struct{}),
	}
}

// ID returns the session identifier used in logs.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Cancel asks the session to stop. Safe to call from any goroutine, any number of times.
func (s *Session) Cancel() {
	s.cancelOnce.Do(func() {
		s.cancelled.Store(true)
		close(s.cancelCh)
	})
}

// Cancelled reports whether Cancel has been called.
func (s *Session) Cancelled() bool {
	return s.cancelled.Load()
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return State(s.state.Load())
}

// Fetches returns the number of market fetches issued so far.
func (s *Session) Fetches() int64 {
	return s.fetches.Load()
}

// Run watches symbols until cancelled, either by Cancel or by ctx.
// It returns the symbol set it was given, lower-cased, regardless of which
// symbols resolved. The error is ErrNoValidAssets when a cycle resolves
// nothing, ctx.Err() when ctx ended the session, and nil after Cancel.
func (s *Session) Run(ctx context.Context, symbols []string) ([]string, error) {
	symbols = normalize(symbols)

	s.logger.Info("watch session started",
		"symbols", symbols,
		"interval", s.cfg.Interval,
	)

	for cycle := 1; ; cycle++ {
		if s.stopped(ctx) {
			return s.finish(ctx, symbols)
		}

		s.setState(StateResolving)
		ids := s.resolve(ctx, symbols)
		if s.stopped(ctx) {
			return s.finish(ctx, symbols)
		}
		if len(ids) == 0 {
			s.setState(StateDone)
			fmt.Fprintln(s.out, s.cfg.Palette.Error("No valid assets to watch."))
			s.logger.Info("watch session ended", "reason", "no valid assets", "cycle", cycle)
			return symbols, ErrNoValidAssets
		}

		s.setState(StateRendering)
		s.renderCycle(ctx, ids)

		s.setState(StateWaiting)
		if !s.wait(ctx) {
			return s.finish(ctx, symbols)
		}
	}
}

// resolve maps every symbol to an ID, dropping failures for this cycle only.
// Duplicate IDs keep their first position.
func (s *Session) resolve(ctx context.Context, symbols []string) []string {
	ctx, cancel := s.stoppable(ctx)
	defer cancel()

	ids := make([]string, 0, len(symbols))
	seen := make(map[string]bool, len(symbols))

	for _, sym := range symbols {
		if ctx.Err() != nil {
			break
		}
		id, err := s.resolver.Resolve(ctx, sym)
		if err != nil {
			s.logger.Debug("symbol not resolved", "symbol", sym, "err", err)
			continue
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

// renderCycle issues one batched fetch and prints the table. A failed fetch is
// reported and leaves the previous table on screen.
func (s *Session) renderCycle(ctx context.Context, ids []string) {
	fetchCtx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
	defer cancel()
	fetchCtx, stop := s.stoppable(fetchCtx)
	defer stop()

	start := time.Now()
	s.fetches.Add(1)
	snaps, err := s.markets.Markets(fetchCtx, ids, model.WatchWindows)
	if s.stopped(ctx) {
		return
	}
	if err != nil {
		s.logger.Warn("market fetch failed", "ids", ids, "err", err)
		fmt.Fprintf(s.out, "\n%s\n", s.cfg.Palette.Error("Failed to fetch market data: "+err.Error()))
		return
	}

	ordered := orderByIDs(snaps, ids)

	var b strings.Builder
	if s.cfg.ClearScreen {
		b.WriteString("\x1b[H\x1b[2J")
	}
	fmt.Fprintf(&b, "%s  %s\n\n",
		s.cfg.Palette.Accent("Live prices"),
		time.Now().Format("15:04:05"),
	)
	b.WriteString(render.Table(ordered, render.TableOptions{
		Marker:  s.cfg.Marker,
		Palette: s.cfg.Palette,
	}))
	io.WriteString(s.out, b.String())

	s.logger.Debug("watch cycle rendered",
		"requested", len(ids),
		"rows", len(ordered),
		"duration", time.Since(start),
	)
}

// stoppable derives a context that also ends when the session is cancelled,
// so a stop request aborts in-flight resolution and fetches.
func (s *Session) stoppable(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	go func() {
		select {
		case <-s.cancelCh:
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}

// wait counts down the refresh interval one tick at a time. It returns false
// as soon as the session is cancelled or ctx ends.
func (s *Session) wait(ctx context.Context) bool {
	ticker := time.NewTicker(s.cfg.Tick)
	defer ticker.Stop()

	remaining := s.cfg.Interval
	s.printCountdown(remaining)

	for remaining > 0 {
		select {
		case <-ctx.Done():
			fmt.Fprintln(s.out)
			return false
		case <-s.cancelCh:
			fmt.Fprintln(s.out)
			return false
		case <-ticker.C:
			remaining -= s.cfg.Tick
			if remaining < 0 {
				remaining = 0
			}
			s.printCountdown(remaining)
		}
	}
	fmt.Fprintln(s.out)
	return true
}

func (s *Session) printCountdown(remaining time.Duration) {
	secs := int((remaining + time.Second - 1) / time.Second)
	line := fmt.Sprintf("Next refresh in %2ds", secs)
	if s.cfg.StopHint != "" {
		line += " (" + s.cfg.StopHint + ")"
	}
	fmt.Fprintf(s.out, "\r%s", s.cfg.Palette.Warn(line))
}

func (s *Session) stopped(ctx context.Context) bool {
	return s.cancelled.Load() || ctx.Err() != nil
}

func (s *Session) finish(ctx context.Context, symbols []string) ([]string, error) {
	s.setState(StateCancelled)
	s.logger.Info("watch session cancelled", "fetches", s.fetches.Load())
	if !s.cancelled.Load() && ctx.Err() != nil {
		return symbols, ctx.Err()
	}
	return symbols, nil
}

func (s *Session) setState(st State) {
	if old := State(s.state.Swap(int32(st))); old != st {
		s.logger.Debug("watch state", "from", old, "to", st)
	}
}

// normalize lower-cases and trims symbols, dropping blanks. Order is kept.
func normalize(symbols []string) []string {
	out := make([]string, 0, len(symbols))
	for _, sym := range symbols {
		sym = strings.ToLower(strings.TrimSpace(sym))
		if sym != "" {
			out = append(out, sym)
		}
	}
	return out
}

// orderByIDs returns snaps in the order of ids; IDs the provider omitted are skipped.
func orderByIDs(snaps []model.MarketSnapshot, ids []string) []model.MarketSnapshot {
	byID := make(map[string]model.MarketSnapshot, len(snaps))
	for _, sn := range snaps {
		byID[sn.ID] = sn
	}

	out := make([]model.MarketSnapshot, 0, len(ids))
	for _, id := range ids {
		if sn, ok := byID[id]; ok {
			out = append(out, sn)
		}
	}
	return out
}
