package pipeline

import (
	"context"
	"sync"

	"github.com/SaiAbhiramBussa/AI-Marksheet-Extraction-API/internal/types"
)

// DefaultBatchConcurrency bounds how many documents a batch processes at once.
const DefaultBatchConcurrency = 5

// BatchResult is the outcome for one document in a batch. Exactly one of
// Record and Err is set.
type BatchResult struct {
	Filename string
	Record   *types.ScoredRecord
	Err      error
}

// RunBatch processes every request with bounded concurrency and returns
// results in input order. A failing document never affects its siblings;
// its slot carries the error instead of a record.
func (p *Pipeline) RunBatch(ctx context.Context, reqs []types.ExtractionRequest, concurrency int) []BatchResult {
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}

	results := make([]BatchResult, len(reqs))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i, req := range reqs {
		wg.Add(1)
		go func(i int, req types.ExtractionRequest) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			record, err := p.Run(ctx, req)
			results[i] = BatchResult{Filename: req.Filename, Record: record, Err: err}
		}(i, req)
	}
	wg.Wait()

	return results
}
