package stress

import (
	"context"
	"sync"

	"github.com/kinitsZ/HybridAI-System/pkg/types"
)

// ScoreBatch scores every record in order. It returns either all scored
// records or the first validation error, annotated with the record index.
// An empty input yields an empty, non-nil slice.
func ScoreBatch(records []types.WorkloadRecord) ([]types.ScoredRecord, error) {
	out := make([]types.ScoredRecord, len(records))
	for i, rec := range records {
		sr, err := Classify(rec)
		if err != nil {
			return nil, withIndex(err, i)
		}
		out[i] = sr
	}
	return out, nil
}

// ScoreBatchConcurrent is ScoreBatch spread over up to workers goroutines.
// Output order matches input order. When several records are invalid the
// error for the lowest index is returned, so the result is identical to
// ScoreBatch. Cancelling ctx stops the remaining work and returns ctx.Err().
func ScoreBatchConcurrent(ctx context.Context, records []types.WorkloadRecord, workers int) ([]types.ScoredRecord, error) {
	if workers <= 1 || len(records) < 2 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return ScoreBatch(records)
	}
	if workers > len(records) {
		workers = len(records)
	}

	out := make([]types.ScoredRecord, len(records))
	errs := make([]error, len(records))

	// Each worker owns a contiguous chunk, so writes never overlap.
	chunk := (len(records) + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < len(records); start += chunk {
		end := start + chunk
		if end > len(records) {
			end = len(records)
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				if ctx.Err() != nil {
					return
				}
				sr, err := Classify(records[i])
				if err != nil {
					errs[i] = withIndex(err, i)
					return
				}
				out[i] = sr
			}
		}(start, end)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
