// Package store holds generated datasets in memory. It provides a thread-safe
// store keyed by dataset ID with TTL eviction.
package store
