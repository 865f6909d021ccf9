// Copyright (c) 2026 The streamly authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package streamly

import (
	"context"
	"sync"

	"github.com/panjf2000/ants/v2"
	"golang.org/x/sync/errgroup"
)

// Concurrent evaluation helpers. The engine itself is single-threaded
// cooperative pull; these functions sit at the boundary to a concurrent
// runtime and keep the single-traversal ownership rule intact by
// materializing or channeling between the serial and concurrent worlds.

// ParMapM drains the stream serially — source effects keep their order —
// then applies f to the elements concurrently on a goroutine pool of the
// given size. Results keep source order; the first error wins and is
// returned after all in-flight work settles.
func ParMapM[T, U any](ctx context.Context, workers int, s Stream[T], f func(ctx context.Context, v T) (U, error)) (Stream[U], error) {
	xs, err := ToSlice(ctx, s)
	if err != nil {
		return Stream[U]{}, err
	}
	pool, err := ants.NewPool(max(workers, 1))
	if err != nil {
		return Stream[U]{}, err
	}
	defer pool.Release()

	results := make([]U, len(xs))
	var wg sync.WaitGroup
	var once sync.Once
	var workErr error
	fail := func(err error) {
		once.Do(func() { workErr = err })
	}

	for i := range xs {
		wg.Add(1)
		submitted := pool.Submit(func() {
			defer wg.Done()
			u, err := f(ctx, xs[i])
			if err != nil {
				fail(err)
				return
			}
			results[i] = u
		})
		if submitted != nil {
			wg.Done()
			fail(submitted)
			break
		}
	}
	wg.Wait()
	if workErr != nil {
		return Stream[U]{}, workErr
	}
	return FromSlice(results), nil
}

// MergeMapM evaluates each source stream in its own goroutine, applies f to
// every element, and interleaves the results onto one channel-backed
// stream. Ordering between sources is unspecified; within one source it is
// preserved. The returned wait function blocks until every source settles
// and reports the first error; the output stream ends when all sources do.
//
// The output channel is unbuffered: a caller that stops consuming the
// returned stream early must cancel ctx, or the producer goroutines stay
// blocked on their sends and wait never returns.
func MergeMapM[T, U any](ctx context.Context, f func(ctx context.Context, v T) (U, error), streams ...Stream[T]) (Stream[U], func() error) {
	out := make(chan U)
	g, gctx := errgroup.WithContext(ctx)

	for _, s := range streams {
		g.Go(func() error {
			_, err := FoldlM(gctx, s, struct{}{}, func(gctx context.Context, _ struct{}, v T) (struct{}, error) {
				u, err := f(gctx, v)
				if err != nil {
					return struct{}{}, err
				}
				select {
				case out <- u:
					return struct{}{}, nil
				case <-gctx.Done():
					return struct{}{}, gctx.Err()
				}
			})
			return err
		})
	}

	done := make(chan error, 1)
	go func() {
		err := g.Wait()
		close(out)
		done <- err
	}()
	wait := func() error { return <-done }
	return FromChan(out), wait
}
