package symbol

import (
	"fmt"

	"krwarb/internal/model"
)

// ParseError reports a failed native-symbol conversion: either the string is
// not recognized for the exchange, or the exchange does not list the market.
type ParseError struct {
	Exchange model.Exchange
	Native   string       // Set when converting string -> market
	Market   model.Market // Set when converting market -> string
	ToNative bool         // Direction of the failed lookup
}

func (e *ParseError) Error() string {
	if e.ToNative {
		return fmt.Sprintf("symbol: %s does not list market %s", e.Exchange, e.Market)
	}
	return fmt.Sprintf("symbol: %q is not a recognized %s pair", e.Native, e.Exchange)
}

var upbitTable = map[string]model.Market{
	"KRW-BTC": model.KRWBTC,
	"KRW-ETH": model.KRWETH,
	"KRW-ETC": model.KRWETC,
}

var korbitTable = map[string]model.Market{
	"btc_krw": model.KRWBTC,
	"eth_krw": model.KRWETH,
	"etc_krw": model.KRWETC,
}

func tableFor(ex model.Exchange) map[string]model.Market {
	switch ex {
	case model.Upbit:
		return upbitTable
	case model.Korbit:
		return korbitTable
	default:
		return nil
	}
}

// ToMarket converts an exchange-native pair string to its canonical market.
func ToMarket(native string, ex model.Exchange) (model.Market, error) {
	if m, ok := tableFor(ex)[native]; ok {
		return m, nil
	}
	return 0, &ParseError{Exchange: ex, Native: native}
}

// ToNative converts a canonical market to the exchange's native pair string.
func ToNative(m model.Market, ex model.Exchange) (string, error) {
	for native, market := range tableFor(ex) {
		if market == m {
			return native, nil
		}
	}
	return "", &ParseError{Exchange: ex, Market: m, ToNative: true}
}
