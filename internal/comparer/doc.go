// Package comparer detects cross-exchange arbitrage opportunities.
//
// For each requested market it asks every configured exchange adapter for a
// current price, then evaluates all exchange pairs for a percentage gap
// strictly above the configured margin. Results keep market-list order, then
// pair-enumeration order; no deduplication or magnitude sorting.
package comparer
