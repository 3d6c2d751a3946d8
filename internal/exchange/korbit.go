package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"krwarb/internal/model"
	"krwarb/internal/symbol"
	"krwarb/internal/transport"
)

// DefaultKorbitTickerURL is Korbit's detailed all-tickers endpoint.
const DefaultKorbitTickerURL = "https://api.korbit.co.kr/v1/ticker/detailed/all"

// KorbitConfig holds Korbit adapter settings. Zero-value fields fall back to
// defaults.
type KorbitConfig struct {
	TickerURL     string
	RefreshPeriod time.Duration
	Logger        *slog.Logger
}

// NewKorbit creates the Korbit adapter. Korbit reports every pair in a single
// response keyed by native pair string, so one GET covers the full set.
func NewKorbit(client *transport.Client, cfg KorbitConfig) *Adapter {
	if cfg.TickerURL == "" {
		cfg.TickerURL = DefaultKorbitTickerURL
	}

	k := &korbitFetcher{client: client, cfg: cfg}
	return newAdapter(model.Korbit, cfg.RefreshPeriod, k.fetchAll, cfg.Logger)
}

type korbitFetcher struct {
	client *transport.Client
	cfg    KorbitConfig
}

func (k *korbitFetcher) fetchAll(ctx context.Context) ([]model.Ticker, bool, error) {
	body, err := k.client.Get(ctx, k.cfg.TickerURL)
	if err != nil {
		return nil, false, fmt.Errorf("korbit: fetch tickers: %w", err)
	}

	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, false, fmt.Errorf("korbit: decode tickers: %w", err)
	}
	entries, ok := raw.(map[string]any)
	if !ok {
		return nil, false, nil
	}

	var tickers []model.Ticker
	for native, v := range entries {
		m, err := symbol.ToMarket(native, model.Korbit)
		if err != nil {
			// Pairs outside the supported catalog are routine.
			continue
		}
		var last any
		if obj, ok := v.(map[string]any); ok {
			last = obj["last"]
		}
		tickers = append(tickers, model.Ticker{
			Market: m,
			Last:   parsePrice(last),
		})
	}

	return tickers, true, nil
}
