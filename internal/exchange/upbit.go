package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"krwarb/internal/model"
	"krwarb/internal/symbol"
	"krwarb/internal/transport"
)

// Default Upbit endpoints.
const (
	DefaultUpbitMarketsURL = "https://api.upbit.com/v1/market/all"
	DefaultUpbitTickerURL  = "https://api.upbit.com/v1/ticker"
)

// UpbitConfig holds Upbit adapter settings. Zero-value fields fall back to
// defaults.
type UpbitConfig struct {
	MarketsURL    string
	TickerURL     string
	RefreshPeriod time.Duration
	Logger        *slog.Logger
}

// NewUpbit creates the Upbit adapter. Upbit requires a two-step fetch: the
// market-list endpoint enumerates the native pair symbols, then the ticker
// endpoint is queried with exactly that comma-joined symbol list.
func NewUpbit(client *transport.Client, cfg UpbitConfig) *Adapter {
	if cfg.MarketsURL == "" {
		cfg.MarketsURL = DefaultUpbitMarketsURL
	}
	if cfg.TickerURL == "" {
		cfg.TickerURL = DefaultUpbitTickerURL
	}

	u := &upbitFetcher{client: client, cfg: cfg}
	return newAdapter(model.Upbit, cfg.RefreshPeriod, u.fetchAll, cfg.Logger)
}

type upbitFetcher struct {
	client *transport.Client
	cfg    UpbitConfig
}

func (u *upbitFetcher) fetchAll(ctx context.Context) ([]model.Ticker, bool, error) {
	natives, ok, err := u.fetchMarketList(ctx)
	if err != nil || !ok {
		return nil, ok, err
	}

	url := u.cfg.TickerURL + "?markets=" + strings.Join(natives, ",")
	body, err := u.client.Get(ctx, url)
	if err != nil {
		return nil, false, fmt.Errorf("upbit: fetch tickers: %w", err)
	}

	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, false, fmt.Errorf("upbit: decode tickers: %w", err)
	}
	entries, ok := raw.([]any)
	if !ok {
		return nil, false, nil
	}

	var tickers []model.Ticker
	for _, e := range entries {
		obj, ok := e.(map[string]any)
		if !ok {
			continue
		}
		native, _ := obj["market"].(string)
		m, err := symbol.ToMarket(native, model.Upbit)
		if err != nil {
			// Pairs outside the supported catalog are routine.
			continue
		}
		tickers = append(tickers, model.Ticker{
			Market: m,
			Last:   parsePrice(obj["trade_price"]),
		})
	}

	return tickers, true, nil
}

// fetchMarketList returns every native pair symbol Upbit currently lists.
func (u *upbitFetcher) fetchMarketList(ctx context.Context) ([]string, bool, error) {
	body, err := u.client.Get(ctx, u.cfg.MarketsURL)
	if err != nil {
		return nil, false, fmt.Errorf("upbit: fetch market list: %w", err)
	}

	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, false, fmt.Errorf("upbit: decode market list: %w", err)
	}
	entries, ok := raw.([]any)
	if !ok {
		return nil, false, nil
	}

	natives := make([]string, 0, len(entries))
	for _, e := range entries {
		obj, ok := e.(map[string]any)
		if !ok {
			continue
		}
		if native, _ := obj["market"].(string); native != "" {
			natives = append(natives, native)
		}
	}
	return natives, true, nil
}
