// Package types defines shared Go types used by both the generator and server.
// These are the canonical in-memory representations of faculty workload
// records, separate from the CSV and JSON wire formats.
package types
