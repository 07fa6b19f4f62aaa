package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/devin-hart/coinmage/internal/api"
	"github.com/devin-hart/coinmage/internal/assets"
	"github.com/devin-hart/coinmage/internal/model"
	"github.com/devin-hart/coinmage/internal/render"
	"github.com/devin-hart/coinmage/internal/watch"
	"github.com/devin-hart/coinmage/internal/watchlist"
)

// Prompt is printed before every input line.
const Prompt = "coinmage> "

// topCount is the number of assets shown by /top.
const topCount = 10

// ErrExit is returned by Execute for /exit.
var ErrExit = errors.New("exit requested")

// Resolver maps user input to canonical asset IDs.
type Resolver interface {
	Resolve(ctx context.Context, input string) (string, error)
}

// MarketAPI is the subset of the provider client the prompt uses.
type MarketAPI interface {
	GetMarkets(ctx context.Context, opts api.MarketsOptions) ([]model.MarketSnapshot, error)
	GetTopMarkets(ctx context.Context, vsCurrency string, n int) ([]model.MarketSnapshot, error)
	GetCoin(ctx context.Context, id, vsCurrency string) (*model.AssetDetail, error)
	GetTrending(ctx context.Context) ([]model.TrendingAsset, error)
}

// Watchlists persists named symbol lists.
type Watchlists interface {
	Save(name string, symbols []string) error
	Load(name string) ([]string, error)
	List() ([]string, error)
}

// KeyListener reports stop keys while a watch runs.
type KeyListener interface {
	WatchKeys(ctx context.Context, stopKeys string, onStop func()) error
}

// KeyListenerFunc is a function adapter for KeyListener.
type KeyListenerFunc func(ctx context.Context, stopKeys string, onStop func()) error

func (f KeyListenerFunc) WatchKeys(ctx context.Context, stopKeys string, onStop func()) error {
	return f(ctx, stopKeys, onStop)
}

// Config holds dispatcher configuration.
type Config struct {
	VsCurrency     string
	RequestTimeout time.Duration // Per one-shot command (lookup, /top, /trending)
	StopKeys       string
	Palette        render.Palette
	Watch          watch.Config
}

// Dispatcher executes prompt lines against the provider, the asset index and
// the watchlist store.
type Dispatcher struct {
	cfg        Config
	marker     string
	resolver   Resolver
	markets    MarketAPI
	watchlists Watchlists
	keys       KeyListener
	out        io.Writer
	logger     *slog.Logger

	lastWatched []string
}

// New creates a Dispatcher writing user-facing output to out.
func New(cfg Config, resolver Resolver, markets MarketAPI, watchlists Watchlists, keys KeyListener, out io.Writer, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.VsCurrency == "" {
		cfg.VsCurrency = "usd"
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 20 * time.Second
	}
	marker := render.CurrencyMarker(cfg.VsCurrency)
	cfg.Watch.Marker = marker
	cfg.Watch.Palette = cfg.Palette
	if cfg.Watch.StopHint == "" {
		cfg.Watch.StopHint = stopHint(cfg.StopKeys)
	}

	return &Dispatcher{
		cfg:        cfg,
		marker:     marker,
		resolver:   resolver,
		markets:    markets,
		watchlists: watchlists,
		keys:       keys,
		out:        out,
		logger:     logger,
	}
}

// LastWatched returns the symbol set of the last completed watch.
func (d *Dispatcher) LastWatched() []string {
	return append([]string(nil), d.lastWatched...)
}

// Run reads lines from in until /exit, end of input or ctx ends.
// Command errors are reported and the prompt continues.
func (d *Dispatcher) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(d.out, d.cfg.Palette.Accent(Prompt))
		if !scanner.Scan() {
			fmt.Fprintln(d.out)
			return scanner.Err()
		}

		err := d.Execute(ctx, scanner.Text())
		switch {
		case err == nil:
		case errors.Is(err, ErrExit):
			return nil
		case ctx.Err() != nil:
			return ctx.Err()
		default:
			d.report(err)
		}
	}
}

// Execute runs one prompt line.
func (d *Dispatcher) Execute(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	if !strings.HasPrefix(line, "/") {
		return d.Lookup(ctx, line)
	}

	fields := strings.Fields(line)
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	d.logger.Debug("command", "cmd", cmd, "args", args)

	switch cmd {
	case "/watch":
		if len(args) == 0 {
			return usageError("/watch <symbol> [symbol...]")
		}
		return d.Watch(ctx, args)
	case "/save":
		return d.save(args)
	case "/load":
		if len(args) != 1 {
			return usageError("/load <name>")
		}
		return d.LoadWatchlist(ctx, args[0])
	case "/list":
		return d.list()
	case "/top":
		return d.top(ctx)
	case "/trending":
		return d.trending(ctx)
	case "/help":
		fmt.Fprint(d.out, helpText)
		return nil
	case "/exit", "/quit":
		return ErrExit
	default:
		return fmt.Errorf("unknown command %s, type /help for a list", cmd)
	}
}

// Watch runs a watch session for symbols until a stop key, ctx, or a cycle
// with no valid assets ends it.
func (d *Dispatcher) Watch(ctx context.Context, symbols []string) error {
	sess := watch.New(d.cfg.Watch, d.resolver, d.marketSource(), d.out, d.logger)

	g, gctx := errgroup.WithContext(ctx)
	keysCtx, stopKeys := context.WithCancel(gctx)
	defer stopKeys()

	var watched []string
	g.Go(func() error {
		defer stopKeys()
		var err error
		watched, err = sess.Run(gctx, symbols)
		return err
	})
	g.Go(func() error {
		return d.keys.WatchKeys(keysCtx, d.cfg.StopKeys, sess.Cancel)
	})

	err := g.Wait()
	fmt.Fprintln(d.out)
	switch {
	case err == nil:
		d.lastWatched = watched
		fmt.Fprintln(d.out, "Stopped watching.")
		return nil
	case errors.Is(err, watch.ErrNoValidAssets):
		// The session already told the user.
		return nil
	default:
		return err
	}
}

// Lookup resolves query and prints the asset's detail view.
func (d *Dispatcher) Lookup(ctx context.Context, query string) error {
	ctx, cancel := context.WithTimeout(ctx, d.cfg.RequestTimeout)
	defer cancel()

	id, err := d.resolver.Resolve(ctx, query)
	if errors.Is(err, assets.ErrNotFound) {
		fmt.Fprintf(d.out, "No asset matches %q.\n", query)
		return nil
	}
	if err != nil {
		return err
	}

	detail, err := d.markets.GetCoin(ctx, id, d.cfg.VsCurrency)
	if err != nil {
		return err
	}
	fmt.Fprint(d.out, render.Detail(*detail, d.marker, d.cfg.Palette))
	return nil
}

func (d *Dispatcher) save(args []string) error {
	if len(args) == 0 {
		return usageError("/save <name> [symbol...]")
	}
	name, symbols := args[0], args[1:]
	if len(symbols) == 0 {
		symbols = d.lastWatched
	}
	if len(symbols) == 0 {
		fmt.Fprintln(d.out, "Nothing to save yet. Run /watch first or list symbols after the name.")
		return nil
	}

	if err := d.watchlists.Save(name, symbols); err != nil {
		return err
	}
	fmt.Fprintf(d.out, "Saved watchlist %q (%s).\n", name, strings.Join(symbols, ", "))
	return nil
}

// LoadWatchlist loads a saved watchlist and watches it.
func (d *Dispatcher) LoadWatchlist(ctx context.Context, name string) error {
	symbols, err := d.watchlists.Load(name)
	if errors.Is(err, watchlist.ErrNotFound) {
		fmt.Fprintf(d.out, "No watchlist named %q. Use /list to see saved watchlists.\n", name)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(d.out, "Loaded watchlist %q (%s).\n", name, strings.Join(symbols, ", "))
	return d.Watch(ctx, symbols)
}

func (d *Dispatcher) list() error {
	names, err := d.watchlists.List()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintln(d.out, "No saved watchlists.")
		return nil
	}
	fmt.Fprintln(d.out, "Saved watchlists:")
	for _, name := range names {
		fmt.Fprintf(d.out, "  %s\n", name)
	}
	return nil
}

func (d *Dispatcher) top(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, d.cfg.RequestTimeout)
	defer cancel()

	snaps, err := d.markets.GetTopMarkets(ctx, d.cfg.VsCurrency, topCount)
	if err != nil {
		return err
	}
	fmt.Fprint(d.out, render.Top(snaps, d.marker, d.cfg.Palette))
	return nil
}

func (d *Dispatcher) trending(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, d.cfg.RequestTimeout)
	defer cancel()

	list, err := d.markets.GetTrending(ctx)
	if err != nil {
		return err
	}
	fmt.Fprint(d.out, render.Trending(list, d.cfg.Palette))
	return nil
}

// marketSource adapts the provider client to the watch session.
func (d *Dispatcher) marketSource() watch.MarketSource {
	return watch.MarketSourceFunc(func(ctx context.Context, ids []string, windows []model.Window) ([]model.MarketSnapshot, error) {
		return d.markets.GetMarkets(ctx, api.MarketsOptions{
			IDs:        ids,
			VsCurrency: d.cfg.VsCurrency,
			Windows:    windows,
		})
	})
}

func (d *Dispatcher) report(err error) {
	d.logger.Debug("command failed", "err", err)

	var fetchErr *api.FetchError
	if errors.As(err, &fetchErr) {
		fmt.Fprintln(d.out, d.cfg.Palette.Error("Could not reach the market data provider: "+err.Error()))
		return
	}
	fmt.Fprintln(d.out, d.cfg.Palette.Error("Error: "+err.Error()))
}

type usageError string

func (u usageError) Error() string {
	return "usage: " + string(u)
}
