package pipeline

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MichaelStober/EventViewer/internal/event"
)

// BatchResult pairs a successfully analyzed poster with its record.
type BatchResult struct {
	Path   string
	Record *event.Record
}

// AnalyzeBatch fans the per-poster pipeline out across paths, bounded by
// maxConcurrent. A failed poster is logged and omitted from the results; it
// never aborts the rest of the batch. Results come back in input order.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, paths []string, maxConcurrent int) []BatchResult {
	if maxConcurrent < 1 {
		maxConcurrent = 3
	}
	start := time.Now()
	a.logger.Info("pipeline.batch.start", "posters", len(paths), "max_concurrent", maxConcurrent)

	slots := make([]*event.Record, len(paths))
	var (
		mu     sync.Mutex
		failed int
	)

	g := new(errgroup.Group)
	g.SetLimit(maxConcurrent)
	for i, path := range paths {
		g.Go(func() error {
			rec, err := a.AnalyzePoster(ctx, path)
			if err != nil {
				// Already logged with the path by AnalyzePoster; just count.
				mu.Lock()
				failed++
				mu.Unlock()
				return nil
			}
			slots[i] = rec
			return nil
		})
	}
	_ = g.Wait()

	results := make([]BatchResult, 0, len(paths))
	for i, rec := range slots {
		if rec != nil {
			results = append(results, BatchResult{Path: paths[i], Record: rec})
		}
	}

	a.logger.Info("pipeline.batch.done",
		"posters", len(paths),
		"succeeded", len(results),
		"skipped", failed,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return results
}
