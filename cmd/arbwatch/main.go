package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"krwarb/internal/comparer"
	"krwarb/internal/config"
	"krwarb/internal/exchange"
	"krwarb/internal/model"
	"krwarb/internal/transport"
	"krwarb/internal/version"
	"krwarb/internal/watch"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional, defaults apply)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	// Pick up local .env before reading ${VAR} references in the config.
	_ = godotenv.Load()

	// Set up structured logging
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	logger.Info("starting arbwatch",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadAndValidate(*configPath)
	} else {
		cfg = config.Default()
	}
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	markets, err := cfg.WatchMarkets()
	if err != nil {
		logger.Error("invalid market list", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"markets", cfg.Watch.Markets,
		"margin", cfg.Comparer.PercentDiffMargin,
		"on_error", cfg.Comparer.OnError,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Shared HTTP client for both exchange adapters
	client := transport.NewClient(
		transport.WithTimeout(cfg.Exchanges.HTTPTimeout),
		transport.WithLogger(logger),
	)

	upbit := exchange.NewUpbit(client, exchange.UpbitConfig{
		MarketsURL:    cfg.Exchanges.Upbit.MarketsURL,
		TickerURL:     cfg.Exchanges.Upbit.TickerURL,
		RefreshPeriod: cfg.Exchanges.RefreshPeriod,
		Logger:        logger,
	})
	korbit := exchange.NewKorbit(client, exchange.KorbitConfig{
		TickerURL:     cfg.Exchanges.Korbit.TickerURL,
		RefreshPeriod: cfg.Exchanges.RefreshPeriod,
		Logger:        logger,
	})

	onError := comparer.PolicyAbort
	if cfg.Comparer.OnError == "skip" {
		onError = comparer.PolicySkip
	}

	cmp := comparer.New(comparer.Config{
		PercentDiffMargin: cfg.Comparer.PercentDiffMargin,
		Exchanges:         []exchange.Exchange{upbit, korbit},
		OnError:           onError,
		Concurrent:        cfg.Comparer.Concurrent,
		Logger:            logger,
	})

	handler := watch.SignalHandlerFunc(func(signals []model.Arbitrage) error {
		for _, sig := range signals {
			logger.Info("arbitrage detected",
				"from", sig.From.String(),
				"to", sig.To.String(),
				"percent_diff", sig.PercentDiff,
			)
		}
		return nil
	})

	watcher := watch.New(watch.Config{
		Interval: cfg.Watch.Interval,
		Timeout:  cfg.Watch.Timeout,
		Markets:  markets,
	}, cmp, handler, logger)

	if err := watcher.Start(ctx); err != nil {
		logger.Error("failed to start watcher", "error", err)
		os.Exit(1)
	}

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := watcher.Stop(shutdownCtx); err != nil {
		logger.Error("watcher shutdown failed", "error", err)
		os.Exit(1)
	}

	logger.Info("arbwatch stopped")
}
