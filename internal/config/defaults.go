package config

import (
	"time"

	"krwarb/internal/exchange"
	"krwarb/internal/model"
)

// Default values for optional configuration fields.
const (
	DefaultWatchInterval     = 5 * time.Second
	DefaultWatchTimeout      = 10 * time.Second
	DefaultPercentDiffMargin = 0.01
	DefaultOnError           = "abort"
	DefaultRefreshPeriod     = time.Second
	DefaultHTTPTimeout       = 10 * time.Second
)

func (c *Config) applyDefaults() {
	// Watch defaults
	if c.Watch.Interval == 0 {
		c.Watch.Interval = DefaultWatchInterval
	}
	if c.Watch.Timeout == 0 {
		c.Watch.Timeout = DefaultWatchTimeout
	}
	if len(c.Watch.Markets) == 0 {
		for _, m := range model.Markets {
			c.Watch.Markets = append(c.Watch.Markets, m.String())
		}
	}

	// Comparer defaults
	if c.Comparer.PercentDiffMargin == 0 {
		c.Comparer.PercentDiffMargin = DefaultPercentDiffMargin
	}
	if c.Comparer.OnError == "" {
		c.Comparer.OnError = DefaultOnError
	}

	// Exchange defaults
	if c.Exchanges.RefreshPeriod == 0 {
		c.Exchanges.RefreshPeriod = DefaultRefreshPeriod
	}
	if c.Exchanges.HTTPTimeout == 0 {
		c.Exchanges.HTTPTimeout = DefaultHTTPTimeout
	}
	if c.Exchanges.Upbit.MarketsURL == "" {
		c.Exchanges.Upbit.MarketsURL = exchange.DefaultUpbitMarketsURL
	}
	if c.Exchanges.Upbit.TickerURL == "" {
		c.Exchanges.Upbit.TickerURL = exchange.DefaultUpbitTickerURL
	}
	if c.Exchanges.Korbit.TickerURL == "" {
		c.Exchanges.Korbit.TickerURL = exchange.DefaultKorbitTickerURL
	}
}
