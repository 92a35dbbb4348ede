package database

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// fetchChunked runs fetch once per chunk, at most parallelism at a time, and
// merges the partial maps only after every chunk has succeeded. Any failure
// discards everything fetched so far.
func fetchChunked[V any](ctx context.Context, serials []string, size, parallelism int,
	fetch func(ctx context.Context, chunk []string) (map[string]V, error)) (map[string]V, error) {

	if parallelism <= 0 {
		parallelism = 1
	}

	var (
		mu       sync.Mutex
		partials []map[string]V
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for chunk := range Chunks(serials, size) {
		g.Go(func() error {
			part, err := fetch(gctx, chunk)
			if err != nil {
				return err
			}
			mu.Lock()
			partials = append(partials, part)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make(map[string]V)
	for _, part := range partials {
		for k, v := range part {
			merged[k] = v
		}
	}
	return merged, nil
}
