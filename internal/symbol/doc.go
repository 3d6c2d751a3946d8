// Package symbol converts between exchange-native pair strings and the
// canonical model.Market enumeration.
//
// Each exchange names the same pair differently (Upbit "KRW-BTC", Korbit
// "btc_krw"), so every lookup is scoped to one exchange's table. Tables are
// fixed at compile time and bijective over the supported markets.
package symbol
