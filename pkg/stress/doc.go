// Package stress derives the Workload Stress Score (WSS) and stress level
// from faculty workload records.
//
// rules.go holds the declarative per-attribute contribution table. Each of
// the nine attributes contributes 1, 2 or 3 points; the WSS is their sum
// (9–27).
//
// score.go provides the pure Score(WorkloadRecord) function and the fixed
// level cut-offs: Low ≤14, Medium 15–20, High ≥21.
//
// batch.go applies the scorer to a sequence of records, sequentially or with
// a bounded worker pool, preserving input order and failing on the first
// invalid record.
//
// summary.go computes the descriptive statistics printed after a run.
package stress
