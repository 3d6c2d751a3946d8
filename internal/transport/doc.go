// Package transport provides the HTTP client used to reach exchange ticker
// endpoints.
//
// The client performs plain context-aware GETs and returns raw body bytes;
// response decoding belongs to the exchange adapters. It does not retry —
// stale-cache refresh failures are surfaced to the caller, who decides
// whether to try again on the next fetch.
package transport
