package kdtree

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// NearestBatch finds the closest point within sqrt(radiusSq) of every query
// using multiple goroutines. found[i] reports whether result[i] is valid.
// workers controls the degree of parallelism; 0 means runtime.NumCPU() and
// 1 runs on the calling goroutine. It returns ctx.Err() if ctx is cancelled
// before all queries have run.
func NearestBatch[S Scalar, P Point[S], I Index](ctx context.Context, s Searcher[S, P, I], queries []P, radiusSq S, workers int) ([]Neighbor[S, P, I], []bool, error) {
	result := make([]Neighbor[S, P, I], len(queries))
	found := make([]bool, len(queries))
	err := forEachRange(ctx, len(queries), workers, func(ctx context.Context, start, end int) error {
		for i := start; i < end; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			result[i], found[i] = s.NearestWithin(queries[i], radiusSq)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return result, found, nil
}

// KNearestBatch finds the k nearest points for every query using multiple
// goroutines. Each result is sorted by ascending distance. workers behaves as
// in NearestBatch.
func KNearestBatch[S Scalar, P Point[S], I Index](ctx context.Context, s Searcher[S, P, I], queries []P, k, workers int) ([][]Neighbor[S, P, I], error) {
	result := make([][]Neighbor[S, P, I], len(queries))
	err := forEachRange(ctx, len(queries), workers, func(ctx context.Context, start, end int) error {
		for i := start; i < end; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			nbs := s.KNearestWithin(queries[i], k, inf[S](), make([]Neighbor[S, P, I], 0, max(k, 0)))
			SortNeighbors(nbs)
			result[i] = nbs
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// NearestBatch is the package-level NearestBatch over t.
func (t *Tree[S, P, I]) NearestBatch(ctx context.Context, queries []P, radiusSq S, workers int) ([]Neighbor[S, P, I], []bool, error) {
	return NearestBatch[S, P, I](ctx, t, queries, radiusSq, workers)
}

// KNearestBatch is the package-level KNearestBatch over t.
func (t *Tree[S, P, I]) KNearestBatch(ctx context.Context, queries []P, k, workers int) ([][]Neighbor[S, P, I], error) {
	return KNearestBatch[S, P, I](ctx, t, queries, k, workers)
}

// forEachRange splits [0, n) into one contiguous range per worker and runs fn
// on each. Since ranges don't overlap, fn needs no synchronization for
// per-row writes. The context passed to fn is cancelled as soon as any range
// fails.
func forEachRange(ctx context.Context, n, workers int, fn func(ctx context.Context, start, end int) error) error {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers == 1 || n <= 1 {
		return fn(ctx, 0, n)
	}

	g, gctx := errgroup.WithContext(ctx)
	rowsPerWorker := (n + workers - 1) / workers
	for start := 0; start < n; start += rowsPerWorker {
		end := min(start+rowsPerWorker, n)
		g.Go(func() error { return fn(gctx, start, end) })
	}
	return g.Wait()
}
