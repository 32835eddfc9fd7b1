// Package parallel splits row ranges across CPU cores.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultThreshold is the row count below which work runs sequentially.
const DefaultThreshold = 1000

// Chunks divides items into at most runtime.NumCPU() contiguous [start, end)
// ranges of near-equal size.
func Chunks(items int) [][2]int {
	if items <= 0 {
		return nil
	}
	workers := runtime.NumCPU()
	if workers > items {
		workers = items
	}
	size := (items + workers - 1) / workers

	out := make([][2]int, 0, workers)
	for start := 0; start < items; start += size {
		end := start + size
		if end > items {
			end = items
		}
		out = append(out, [2]int{start, end})
	}
	return out
}

// Parallelize runs fn over every chunk of items concurrently and returns the
// first error. The context passed to fn is cancelled once any chunk fails.
func Parallelize(ctx context.Context, items int, fn func(ctx context.Context, start, end int) error) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, c := range Chunks(items) {
		start, end := c[0], c[1]
		g.Go(func() error {
			return fn(ctx, start, end)
		})
	}
	return g.Wait()
}

// ParallelizeWithThreshold calls fn once over the whole range when items is
// at most threshold, and falls back to Parallelize otherwise.
func ParallelizeWithThreshold(ctx context.Context, items, threshold int, fn func(ctx context.Context, start, end int) error) error {
	if items <= threshold {
		if items == 0 {
			return nil
		}
		return fn(ctx, 0, items)
	}
	return Parallelize(ctx, items, fn)
}
