// Copyright (c) 2026 The streamly authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package streamly

import "context"

// Scans: stepwise accumulation exposed as a stream of intermediate results.
// One machine serves the whole family; the variants differ only in whether
// the seed is emitted before any input is consumed, whether the pre-update
// or post-update accumulator is emitted, and whether a finishing projection
// runs per step. The x-suffixed variants carry the projection, which is what
// makes multi-aggregate scans composable with [TeeWith]-style folds.

type scanTag uint8

const (
	scanSeed scanTag = iota
	scanNext
)

type scanState[S any] struct {
	tag scanTag
	acc S
	up  Erased
}

// scanCore is the shared stepwise-accumulate machine.
// emitSeed prepends done(seed); emitPre yields the pre-update accumulator.
func scanCore[T, S, B any](
	s Stream[T],
	seed S,
	f func(ctx context.Context, acc S, v T) (S, error),
	done func(S) B,
	emitSeed bool,
	emitPre bool,
) Stream[B] {
	initialTag := scanNext
	if emitSeed {
		initialTag = scanSeed
	}
	return Stream[B]{
		step: func(ctx context.Context, state Erased) (Step[B], error) {
			cur := state.(scanState[S])
			if cur.tag == scanSeed {
				return Yield(done(cur.acc), scanState[S]{tag: scanNext, acc: cur.acc, up: cur.up}), nil
			}
			st, err := s.step(ctx, cur.up)
			if err != nil {
				return Stop[B](), err
			}
			switch {
			case st.IsYield():
				next, err := f(ctx, cur.acc, st.Value())
				if err != nil {
					return Stop[B](), err
				}
				out := next
				if emitPre {
					out = cur.acc
				}
				return Yield(done(out), scanState[S]{tag: scanNext, acc: next, up: st.State()}), nil
			case st.IsSkip():
				return Skip[B](scanState[S]{tag: scanNext, acc: cur.acc, up: st.State()}), nil
			default:
				return Stop[B](), nil
			}
		},
		state: scanState[S]{tag: initialTag, acc: seed, up: s.state},
	}
}

// ScanlM yields the seed, then the accumulator after each element.
// The output is one element longer than the input.
func ScanlM[T, B any](s Stream[T], seed B, f func(ctx context.Context, acc B, v T) (B, error)) Stream[B] {
	return scanCore(s, seed, f, func(acc B) B { return acc }, true, false)
}

// Scanl is ScanlM with a pure step.
func Scanl[T, B any](s Stream[T], seed B, f func(acc B, v T) B) Stream[B] {
	return ScanlM(s, seed, func(_ context.Context, acc B, v T) (B, error) {
		return f(acc, v), nil
	})
}

// PostscanlM yields the updated accumulator after each element; the seed is
// not emitted. The output has the same length as the input.
func PostscanlM[T, B any](s Stream[T], seed B, f func(ctx context.Context, acc B, v T) (B, error)) Stream[B] {
	return scanCore(s, seed, f, func(acc B) B { return acc }, false, false)
}

// Postscanl is PostscanlM with a pure step.
func Postscanl[T, B any](s Stream[T], seed B, f func(acc B, v T) B) Stream[B] {
	return PostscanlM(s, seed, func(_ context.Context, acc B, v T) (B, error) {
		return f(acc, v), nil
	})
}

// Prescanl yields the accumulator as it was before each element was folded
// in. The final accumulator is never emitted.
func Prescanl[T, B any](s Stream[T], seed B, f func(acc B, v T) B) Stream[B] {
	return scanCore(s, seed,
		func(_ context.Context, acc B, v T) (B, error) { return f(acc, v), nil },
		func(acc B) B { return acc }, false, true)
}

// ScanxM is ScanlM with a finishing projection applied to every emitted
// accumulator, seed included.
func ScanxM[T, S, B any](s Stream[T], seed S, f func(ctx context.Context, acc S, v T) (S, error), done func(S) B) Stream[B] {
	return scanCore(s, seed, f, done, true, false)
}

// PostscanxM is PostscanlM with a finishing projection applied per step.
func PostscanxM[T, S, B any](s Stream[T], seed S, f func(ctx context.Context, acc S, v T) (S, error), done func(S) B) Stream[B] {
	return scanCore(s, seed, f, done, false, false)
}
