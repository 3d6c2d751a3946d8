// Package model defines the shared data types of the arbitrage watcher.
//
// Conventions:
//   - Prices: float64 in the quote currency (KRW)
//   - Market and Exchange are closed enumerations; values outside the
//     declared constants are invalid
package model
