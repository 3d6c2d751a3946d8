package exchange

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"sync"
	"time"

	"krwarb/internal/model"
)

// DefaultRefreshPeriod is the minimum time between live re-fetches of an
// exchange's full ticker set.
const DefaultRefreshPeriod = time.Second

// Exchange is the uniform price capability the comparer consumes.
type Exchange interface {
	// Name identifies the exchange. Pure, no side effects.
	Name() model.Exchange

	// FetchTicker returns zero or one ticker matching market. It may trigger
	// a full cache refresh if the cache is stale; an empty result means the
	// exchange does not currently report that market.
	FetchTicker(ctx context.Context, market model.Market) ([]model.Ticker, error)

	// FetchTickers returns the full cached ticker set, refreshing first if
	// the cache is stale.
	FetchTickers(ctx context.Context) ([]model.Ticker, error)
}

// fetchAllFunc performs one live fetch of an exchange's full ticker set.
// ok=false with a nil error signals a top-level response-shape mismatch:
// the refresh is skipped and the previous cache kept, without failing the
// caller.
type fetchAllFunc func(ctx context.Context) (tickers []model.Ticker, ok bool, err error)

// Adapter is the shared cache/refresh harness behind every exchange.
type Adapter struct {
	name          model.Exchange
	refreshPeriod time.Duration
	fetchAll      fetchAllFunc
	logger        *slog.Logger

	mu          sync.Mutex
	tickers     []model.Ticker
	lastRefresh time.Time // zero value = never refreshed
}

func newAdapter(name model.Exchange, refreshPeriod time.Duration, fetchAll fetchAllFunc, logger *slog.Logger) *Adapter {
	if refreshPeriod <= 0 {
		refreshPeriod = DefaultRefreshPeriod
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{
		name:          name,
		refreshPeriod: refreshPeriod,
		fetchAll:      fetchAll,
		logger:        logger.With("exchange", name.String()),
	}
}

// Name returns the exchange identity.
func (a *Adapter) Name() model.Exchange {
	return a.name
}

// FetchTicker returns the cached ticker for market, refreshing the cache
// first if it is stale.
func (a *Adapter) FetchTicker(ctx context.Context, market model.Market) ([]model.Ticker, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.refreshIfStale(ctx); err != nil {
		return nil, err
	}

	var out []model.Ticker
	for _, t := range a.tickers {
		if t.Market == market {
			out = append(out, t)
		}
	}
	return out, nil
}

// FetchTickers returns the full cached ticker set, refreshing the cache
// first if it is stale.
func (a *Adapter) FetchTickers(ctx context.Context) ([]model.Ticker, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.refreshIfStale(ctx); err != nil {
		return nil, err
	}

	out := make([]model.Ticker, len(a.tickers))
	copy(out, a.tickers)
	return out, nil
}

// refreshIfStale re-fetches the full ticker set when the cache has outlived
// its refresh period. On failure the old cache and timestamp are kept.
// Callers must hold a.mu.
func (a *Adapter) refreshIfStale(ctx context.Context) error {
	if time.Since(a.lastRefresh) <= a.refreshPeriod {
		return nil
	}

	tickers, ok, err := a.fetchAll(ctx)
	if err != nil {
		return err
	}
	if !ok {
		a.logger.Warn("unexpected response shape, keeping previous tickers")
		return nil
	}

	sort.Slice(tickers, func(i, j int) bool {
		return tickers[i].Market < tickers[j].Market
	})

	a.tickers = tickers
	a.lastRefresh = time.Now()

	a.logger.Debug("refreshed tickers", "count", len(tickers))
	return nil
}

// parsePrice accepts a price field that arrives as either a JSON number or a
// numeric string. A field that is present but unparseable degrades to 0.0
// rather than dropping the ticker.
func parsePrice(v any) float64 {
	switch p := v.(type) {
	case float64:
		return p
	case string:
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
