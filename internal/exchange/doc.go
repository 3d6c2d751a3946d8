// Package exchange implements the per-exchange ticker adapters.
//
// Each adapter presents a uniform "current price of market M" capability
// backed by a TTL cache of the exchange's full ticker set. The cache is
// refreshed from the live API only when stale; the staleness check, network
// refresh, and cache write-back form a single critical section so a shared
// adapter never runs two refreshes concurrently.
//
// The refresh logic is written once in Adapter; only the endpoint-specific
// fetch differs between exchanges.
package exchange
