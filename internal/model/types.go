package model

import "fmt"

// Market is a canonical trading-pair identity shared across exchanges.
// Each exchange maps its own native symbol onto one of these values.
type Market int

const (
	KRWBTC Market = iota
	KRWETH
	KRWETC
)

// Markets lists every supported market in canonical order.
var Markets = []Market{KRWBTC, KRWETH, KRWETC}

func (m Market) String() string {
	switch m {
	case KRWBTC:
		return "KRW-BTC"
	case KRWETH:
		return "KRW-ETH"
	case KRWETC:
		return "KRW-ETC"
	default:
		return "unknown"
	}
}

// ParseMarket converts a canonical pair name (e.g. "KRW-BTC") to its Market.
func ParseMarket(s string) (Market, error) {
	for _, m := range Markets {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown market %q", s)
}

// Exchange identifies which exchange a data point or adapter belongs to.
type Exchange int

const (
	Upbit Exchange = iota
	Korbit
)

func (e Exchange) String() string {
	switch e {
	case Upbit:
		return "upbit"
	case Korbit:
		return "korbit"
	default:
		return "unknown"
	}
}

// Ticker is a snapshot price for one market at one exchange.
type Ticker struct {
	Market Market  // Canonical pair identity
	Last   float64 // Last traded price in KRW
}

// Arbitrage is a detected price gap between two exchanges for the same
// market. Buying on From and selling on To captures PercentDiff before fees.
type Arbitrage struct {
	From        Exchange // Exchange with the lower price
	To          Exchange // Exchange with the higher price
	PercentDiff float64  // (higher - lower) / lower
}
