package pool

import (
	"context"
)

import (
	"golang.org/x/sync/errgroup"
)

// ForEach calls f(i) for every i in [0, n) using at most workers goroutines
// and returns the first error. Once an error occurs no new calls start.
func ForEach(n, workers int, f func(i int) error) error {
	if workers < 1 {
		workers = 1
	}
	if workers == 1 || n <= 1 {
		for i := 0; i < n; i++ {
			if err := f(i); err != nil {
				return err
			}
		}
		return nil
	}
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(workers)
	for i := 0; i < n && ctx.Err() == nil; i++ {
		i := i
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			return f(i)
		})
	}
	return g.Wait()
}

// Shards splits [0, n) into at most parts contiguous half open ranges of
// nearly equal size.
func Shards(n, parts int) [][2]int {
	if parts < 1 {
		parts = 1
	}
	if parts > n {
		parts = n
	}
	shards := make([][2]int, 0, parts)
	for p := 0; p < parts; p++ {
		shards = append(shards, [2]int{p * n / parts, (p + 1) * n / parts})
	}
	return shards
}
