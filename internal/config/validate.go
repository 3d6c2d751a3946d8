package config

import (
	"errors"
	"fmt"

	"krwarb/internal/model"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.Watch.Interval <= 0 {
		return errors.New("watch.interval must be > 0")
	}
	if c.Watch.Timeout <= 0 {
		return errors.New("watch.timeout must be > 0")
	}
	if len(c.Watch.Markets) == 0 {
		return errors.New("watch.markets must list at least one market")
	}
	for _, s := range c.Watch.Markets {
		if _, err := model.ParseMarket(s); err != nil {
			return fmt.Errorf("watch.markets: %w", err)
		}
	}

	if c.Comparer.PercentDiffMargin < 0 {
		return errors.New("comparer.percent_diff_margin must be >= 0")
	}
	if c.Comparer.OnError != "abort" && c.Comparer.OnError != "skip" {
		return fmt.Errorf("comparer.on_error must be \"abort\" or \"skip\", got %q", c.Comparer.OnError)
	}

	if c.Exchanges.RefreshPeriod <= 0 {
		return errors.New("exchanges.refresh_period must be > 0")
	}
	if c.Exchanges.HTTPTimeout <= 0 {
		return errors.New("exchanges.http_timeout must be > 0")
	}
	if c.Exchanges.Upbit.MarketsURL == "" {
		return errors.New("exchanges.upbit.markets_url is required")
	}
	if c.Exchanges.Upbit.TickerURL == "" {
		return errors.New("exchanges.upbit.ticker_url is required")
	}
	if c.Exchanges.Korbit.TickerURL == "" {
		return errors.New("exchanges.korbit.ticker_url is required")
	}

	return nil
}
