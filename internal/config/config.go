package config

import (
	"time"

	"krwarb/internal/model"
)

// Config is the root configuration for an arbwatch instance.
type Config struct {
	Watch     WatchConfig     `yaml:"watch"`
	Comparer  ComparerConfig  `yaml:"comparer"`
	Exchanges ExchangesConfig `yaml:"exchanges"`
}

// WatchConfig holds watch-loop settings.
type WatchConfig struct {
	Interval time.Duration `yaml:"interval"`
	Timeout  time.Duration `yaml:"timeout"`
	Markets  []string      `yaml:"markets"` // Canonical pair names, e.g. "KRW-BTC"
}

// ComparerConfig holds arbitrage detection settings.
type ComparerConfig struct {
	PercentDiffMargin float64 `yaml:"percent_diff_margin"`
	OnError           string  `yaml:"on_error"` // "abort" or "skip"
	Concurrent        bool    `yaml:"concurrent"`
}

// ExchangesConfig holds per-exchange endpoint and cache settings.
type ExchangesConfig struct {
	RefreshPeriod time.Duration `yaml:"refresh_period"`
	HTTPTimeout   time.Duration `yaml:"http_timeout"`
	Upbit         UpbitConfig   `yaml:"upbit"`
	Korbit        KorbitConfig  `yaml:"korbit"`
}

// UpbitConfig holds Upbit's two endpoints.
type UpbitConfig struct {
	MarketsURL string `yaml:"markets_url"`
	TickerURL  string `yaml:"ticker_url"`
}

// KorbitConfig holds Korbit's ticker endpoint.
type KorbitConfig struct {
	TickerURL string `yaml:"ticker_url"`
}

// WatchMarkets returns the configured market list parsed into model values,
// preserving order.
func (c *Config) WatchMarkets() ([]model.Market, error) {
	markets := make([]model.Market, 0, len(c.Watch.Markets))
	for _, s := range c.Watch.Markets {
		m, err := model.ParseMarket(s)
		if err != nil {
			return nil, err
		}
		markets = append(markets, m)
	}
	return markets, nil
}
