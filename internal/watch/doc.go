// Package watch runs comparison cycles on a fixed interval.
//
// The Watcher:
//   - Runs one comparison immediately on start, then one per interval
//   - Bounds each cycle with a per-run timeout
//   - Hands detected signals to a SignalHandler
//   - Logs a summary per cycle
package watch
