package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/devin-hart/coinmage/internal/api"
	"github.com/devin-hart/coinmage/internal/assets"
	"github.com/devin-hart/coinmage/internal/cli"
	"github.com/devin-hart/coinmage/internal/config"
	"github.com/devin-hart/coinmage/internal/render"
	"github.com/devin-hart/coinmage/internal/terminal"
	"github.com/devin-hart/coinmage/internal/version"
	"github.com/devin-hart/coinmage/internal/watch"
	"github.com/devin-hart/coinmage/internal/watchlist"
)

// exitInterrupted is the conventional status for a process ended by SIGINT.
const exitInterrupted = 130

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger(os.Stderr, cfg.Logging, debug)
	slog.SetDefault(logger)

	logger.Info("starting coinmage",
		"version", version.Version,
		"commit", version.Commit,
		"base_url", cfg.API.BaseURL,
		"vs_currency", cfg.API.VsCurrency,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	console := terminal.NewConsole(os.Stdin, logger)

	// Interrupt is fatal: put the terminal back first, then exit.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		if err := console.Restore(); err != nil {
			logger.Warn("failed to restore terminal", "err", err)
		}
		fmt.Fprintln(os.Stdout)
		os.Exit(exitInterrupted)
	}()

	client := api.NewClient(
		cfg.API.BaseURL,
		cfg.API.APIKey,
		api.WithLogger(logger),
		api.WithTimeout(cfg.API.Timeout),
		api.WithRetries(cfg.API.Retries(), cfg.API.RetryBackoff),
	)

	index := assets.New(assets.Config{TTL: cfg.Assets.TTL}, client, logger)
	store := watchlist.NewStore(cfg.Watchlists.Dir, logger)
	palette := render.Palette{Enabled: render.AutoColor(os.Stdout)}

	dispatcher := cli.New(cli.Config{
		VsCurrency:     cfg.API.VsCurrency,
		RequestTimeout: cfg.Watch.FetchTimeout,
		StopKeys:       cfg.Watch.StopKeys,
		Palette:        palette,
		Watch: watch.Config{
			Interval:     cfg.Watch.Interval,
			FetchTimeout: cfg.Watch.FetchTimeout,
			ClearScreen:  term.IsTerminal(int(os.Stdout.Fd())),
		},
	}, index, client, store, console, os.Stdout, logger)

	if coin != "" {
		if err := dispatcher.Lookup(ctx, coin); err != nil {
			return err
		}
		if exitAfter {
			return nil
		}
	} else if exitAfter {
		return errors.New("--exit requires --coin")
	}

	// Warm the catalog while the user reads the banner.
	go func() {
		if err := index.Refresh(ctx); err != nil && ctx.Err() == nil {
			logger.Warn("asset catalog warm-up failed", "err", err)
		}
	}()

	switch {
	case watchlistNm != "":
		if err := dispatcher.LoadWatchlist(ctx, watchlistNm); err != nil {
			return err
		}
	case len(watchSyms) > 0:
		if err := dispatcher.Watch(ctx, watchSyms); err != nil {
			return err
		}
	}

	cli.Banner(os.Stdout, cfg.API.VsCurrency, palette)
	return dispatcher.Run(ctx, os.Stdin)
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadAndValidate(cfgFile)
	}
	return config.LoadOrDefault(config.DefaultPath())
}

func newLogger(w io.Writer, cfg config.LoggingConfig, debug bool) *slog.Logger {
	level := cfg.SlogLevel()
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
