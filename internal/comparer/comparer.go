package comparer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"krwarb/internal/exchange"
	"krwarb/internal/model"
)

// ErrorPolicy controls how Compare reacts when an exchange adapter fails.
type ErrorPolicy int

const (
	// PolicyAbort stops the whole run on the first adapter error and returns
	// it, identifying the failing exchange. This is the default.
	PolicyAbort ErrorPolicy = iota

	// PolicySkip treats a failed adapter as "no price available" for that
	// market, logs the failure, and continues with a partial result set.
	PolicySkip
)

func (p ErrorPolicy) String() string {
	switch p {
	case PolicyAbort:
		return "abort"
	case PolicySkip:
		return "skip"
	default:
		return "unknown"
	}
}

// Config holds comparer settings.
type Config struct {
	// PercentDiffMargin is the minimum fractional price gap required to
	// qualify as a signal. The comparison is strictly greater-than, so equal
	// prices never qualify.
	PercentDiffMargin float64

	// Exchanges are queried in this order; pair enumeration follows it.
	Exchanges []exchange.Exchange

	// OnError selects the partial-failure policy.
	OnError ErrorPolicy

	// Concurrent fans out adapter fetches per market instead of querying
	// sequentially. Results keep configuration order either way.
	Concurrent bool

	Logger *slog.Logger
}

// Comparer evaluates markets across a fixed set of exchange adapters.
type Comparer struct {
	cfg    Config
	logger *slog.Logger
}

// New creates a Comparer.
func New(cfg Config) *Comparer {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Comparer{cfg: cfg, logger: logger}
}

// quote is one exchange's price for the market under comparison.
type quote struct {
	ticker model.Ticker
	name   model.Exchange
}

// Compare checks each market across all configured exchanges and returns the
// detected arbitrage signals in market order, then pair order.
func (c *Comparer) Compare(ctx context.Context, markets []model.Market) ([]model.Arbitrage, error) {
	runID := uuid.NewString()
	start := time.Now()

	var results []model.Arbitrage
	for _, market := range markets {
		quotes, err := c.collectQuotes(ctx, market)
		if err != nil {
			return nil, fmt.Errorf("compare %s: %w", market, err)
		}
		results = append(results, c.findArbitrage(quotes)...)
	}

	c.logger.Info("compare run complete",
		"run_id", runID,
		"markets", len(markets),
		"signals", len(results),
		"duration", time.Since(start),
	)

	return results, nil
}

// collectQuotes gathers one price per exchange for market, in configuration
// order. Exchanges that report no ticker for the market are skipped.
func (c *Comparer) collectQuotes(ctx context.Context, market model.Market) ([]quote, error) {
	slots := make([]*quote, len(c.cfg.Exchanges))

	if c.cfg.Concurrent {
		g, gctx := errgroup.WithContext(ctx)
		for i, ex := range c.cfg.Exchanges {
			i, ex := i, ex
			g.Go(func() error {
				q, err := c.fetchQuote(gctx, ex, market)
				if err != nil {
					return err
				}
				slots[i] = q
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, ex := range c.cfg.Exchanges {
			q, err := c.fetchQuote(ctx, ex, market)
			if err != nil {
				return nil, err
			}
			slots[i] = q
		}
	}

	quotes := make([]quote, 0, len(slots))
	for _, q := range slots {
		if q != nil {
			quotes = append(quotes, *q)
		}
	}
	return quotes, nil
}

// fetchQuote asks one exchange for the market's price. A nil quote with a nil
// error means no price was obtainable under the configured policy.
func (c *Comparer) fetchQuote(ctx context.Context, ex exchange.Exchange, market model.Market) (*quote, error) {
	tickers, err := ex.FetchTicker(ctx, market)
	if err != nil {
		if c.cfg.OnError == PolicySkip {
			c.logger.Warn("exchange fetch failed, skipping",
				"exchange", ex.Name().String(),
				"market", market.String(),
				"err", err,
			)
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ex.Name(), err)
	}
	if len(tickers) == 0 {
		return nil, nil
	}
	return &quote{ticker: tickers[0], name: ex.Name()}, nil
}

// findArbitrage enumerates unordered exchange pairs (i, j) with i <= j and
// emits a signal for every gap strictly above the margin.
func (c *Comparer) findArbitrage(quotes []quote) []model.Arbitrage {
	var out []model.Arbitrage
	for i := 0; i < len(quotes); i++ {
		for j := i; j < len(quotes); j++ {
			lower, higher := quotes[i], quotes[j]
			if lower.ticker.Last > higher.ticker.Last {
				lower, higher = higher, lower
			}
			if lower.ticker.Last <= 0 {
				// A degraded 0 price cannot anchor a percentage gap.
				continue
			}

			diff := (higher.ticker.Last - lower.ticker.Last) / lower.ticker.Last
			if diff > c.cfg.PercentDiffMargin {
				out = append(out, model.Arbitrage{
					From:        lower.name,
					To:          higher.name,
					PercentDiff: diff,
				})
			}
		}
	}
	return out
}
