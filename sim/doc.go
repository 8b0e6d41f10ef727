// Package sim provides the core traversal simulator for cachevis.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - event.go: the AccessEvent type, the unit the whole package produces
//   - traversal.go: the four traversal generators (naive, transposed, blocked)
//   - simulator.go: the per-event loop that feeds caches, stats, and a FrameSink
//
// # Architecture
//
// The sim package owns all event generation and cache modeling; rendering lives
// in the render package behind the FrameSink interface:
//   - config.go / variant.go: run configuration and variant selection
//   - block.go: index-range tiling (spans, residency lookups)
//   - cache.go: LRU cache-line model used for hit/miss statistics
//   - stats.go: per-matrix and aggregate access statistics
//
// Event generation is pure and deterministic: the same Config always yields the
// same event sequence, which is what makes animation output reproducible.
package sim
