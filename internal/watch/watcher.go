package watch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"krwarb/internal/comparer"
	"krwarb/internal/model"
)

// SignalHandler receives the arbitrage signals of one comparison cycle.
type SignalHandler interface {
	HandleSignals(signals []model.Arbitrage) error
}

// SignalHandlerFunc is a function adapter for SignalHandler.
type SignalHandlerFunc func([]model.Arbitrage) error

func (f SignalHandlerFunc) HandleSignals(s []model.Arbitrage) error {
	return f(s)
}

// Config holds watcher configuration.
type Config struct {
	Interval time.Duration  // Time between comparison cycles (default: 5s)
	Timeout  time.Duration  // Per-cycle deadline (default: 10s)
	Markets  []model.Market // Markets checked each cycle
}

// DefaultConfig returns sensible defaults over the full market catalog.
func DefaultConfig() Config {
	return Config{
		Interval: 5 * time.Second,
		Timeout:  10 * time.Second,
		Markets:  model.Markets,
	}
}

// Watcher periodically runs the comparer and forwards signals.
type Watcher struct {
	cfg      Config
	comparer *comparer.Comparer
	handler  SignalHandler
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a Watcher.
func New(cfg Config, c *comparer.Comparer, handler SignalHandler, logger *slog.Logger) *Watcher {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Second
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		cfg:      cfg,
		comparer: c,
		handler:  handler,
		logger:   logger,
	}
}

// Start begins the watch loop.
func (w *Watcher) Start(ctx context.Context) error {
	w.ctx, w.cancel = context.WithCancel(ctx)

	w.wg.Add(1)
	go w.run()

	w.logger.Info("watcher started",
		"interval", w.cfg.Interval,
		"markets", len(w.cfg.Markets),
	)

	return nil
}

// Stop gracefully shuts down the watcher.
func (w *Watcher) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.cancel()
	}

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		w.logger.Info("watcher stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run is the main watch loop.
func (w *Watcher) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	// Compare immediately on start.
	w.runOnce()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			w.runOnce()
		}
	}
}

// runOnce performs a single bounded comparison cycle.
func (w *Watcher) runOnce() {
	ctx, cancel := context.WithTimeout(w.ctx, w.cfg.Timeout)
	defer cancel()

	signals, err := w.comparer.Compare(ctx, w.cfg.Markets)
	if err != nil {
		w.logger.Warn("comparison cycle failed", "err", err)
		return
	}

	if len(signals) == 0 || w.handler == nil {
		return
	}

	if err := w.handler.HandleSignals(signals); err != nil {
		w.logger.Warn("signal handler failed", "err", err)
	}
}
