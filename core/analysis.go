package core

import (
	"context"
	"sync"

	"github.com/huangsam/spendwrap/core/agg"
	"github.com/huangsam/spendwrap/core/classify"
	"github.com/huangsam/spendwrap/core/extract"
	"github.com/huangsam/spendwrap/schema"
)

// minChunkSize keeps tiny inputs on the sequential path.
const minChunkSize = 256

// chunk is a contiguous slice of the input handed to one worker.
type chunk struct {
	index int
	start int
	end   int
}

// Analyze folds records into a summary for targetYear on the calling goroutine.
func Analyze(records []schema.RawRecord, targetYear int) schema.AnalysisSummary {
	return accumulate(records, targetYear).Summary(targetYear)
}

// AnalyzeParallel extracts and classifies contiguous chunks of records on a
// pool of workers and merges the partial results in chunk order. The summary
// is identical to Analyze for any worker count.
func AnalyzeParallel(ctx context.Context, records []schema.RawRecord, targetYear, workers int) (schema.AnalysisSummary, error) {
	chunks := splitChunks(len(records), workers)
	if len(chunks) <= 1 {
		if err := ctx.Err(); err != nil {
			return schema.AnalysisSummary{}, err
		}
		return Analyze(records, targetYear), nil
	}

	chunkCh := make(chan chunk, len(chunks))
	partials := make([]*agg.Accumulator, len(chunks))
	var wg sync.WaitGroup

	// Start worker pool
	for range min(workers, len(chunks)) {
		wg.Go(func() {
			for c := range chunkCh {
				if ctx.Err() != nil {
					continue // drain without work
				}
				partials[c.index] = accumulate(records[c.start:c.end], targetYear)
			}
		})
	}

	for _, c := range chunks {
		chunkCh <- c
	}
	close(chunkCh)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return schema.AnalysisSummary{}, err
	}

	total := agg.NewAccumulator()
	for _, p := range partials {
		total.Merge(p)
	}
	return total.Summary(targetYear), nil
}

// accumulate runs extract, classify and add over records in order.
func accumulate(records []schema.RawRecord, targetYear int) *agg.Accumulator {
	acc := agg.NewAccumulator()
	for _, rec := range records {
		line, ok := extract.Extract(rec, targetYear)
		if !ok {
			acc.Skip()
			continue
		}
		acc.Add(line, classify.Classify(line.Title, line.Category))
	}
	return acc
}

// splitChunks divides n records into at most workers contiguous ranges of at
// least minChunkSize records each.
func splitChunks(n, workers int) []chunk {
	if n == 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	size := (n + workers - 1) / workers
	if size < minChunkSize {
		size = minChunkSize
	}
	var chunks []chunk
	for start := 0; start < n; start += size {
		chunks = append(chunks, chunk{index: len(chunks), start: start, end: min(start+size, n)})
	}
	return chunks
}
