// Copyright (c) 2026 The streamly authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package streamly

import "context"

// StreamK is the continuation-passing representation of a stream. Instead
// of an explicit state value, a StreamK is run with three continuations:
//
//   - yld: a value is available and more may follow
//   - sng: a value is available and the stream then stops (singleton
//     optimization — saves the continuation that would just stop)
//   - stp: the stream is exhausted
//
// The continuation result type is [Erased] so one representation serves
// every driver; drivers recover their concrete result by assertion, the
// same type-erasure boundary the direct representation uses for state.
//
// StreamK and [Stream] describe the same ordered-sequence concept and are
// unified only by the conversion law documented on [ToStreamK] and
// [FromStreamK]. Concatenation ([AppendK]) and deeply left-nested
// construction are O(1) amortized here, where the direct representation
// pays per-operation; element-wise transformation is the reverse trade.
type StreamK[T any] struct {
	run func(ctx context.Context,
		yld func(v T, rest StreamK[T]) (Erased, error),
		sng func(v T) (Erased, error),
		stp func() (Erased, error)) (Erased, error)
}

// NilK is the empty CPS stream.
func NilK[T any]() StreamK[T] {
	return StreamK[T]{
		run: func(_ context.Context,
			_ func(T, StreamK[T]) (Erased, error),
			_ func(T) (Erased, error),
			stp func() (Erased, error)) (Erased, error) {
			return stp()
		},
	}
}

// SingleK is the one-element CPS stream, invoking the singleton
// continuation.
func SingleK[T any](v T) StreamK[T] {
	return StreamK[T]{
		run: func(_ context.Context,
			_ func(T, StreamK[T]) (Erased, error),
			sng func(T) (Erased, error),
			_ func() (Erased, error)) (Erased, error) {
			return sng(v)
		},
	}
}

// ConsK prepends a value. O(1), the construction primitive of this
// representation.
func ConsK[T any](v T, rest StreamK[T]) StreamK[T] {
	return StreamK[T]{
		run: func(_ context.Context,
			yld func(T, StreamK[T]) (Erased, error),
			_ func(T) (Erased, error),
			_ func() (Erased, error)) (Erased, error) {
			return yld(v, rest)
		},
	}
}

// ConsMK prepends the result of an effectful action, run when this cell is
// demanded.
func ConsMK[T any](action func(ctx context.Context) (T, error), rest StreamK[T]) StreamK[T] {
	return StreamK[T]{
		run: func(ctx context.Context,
			yld func(T, StreamK[T]) (Erased, error),
			_ func(T) (Erased, error),
			_ func() (Erased, error)) (Erased, error) {
			v, err := action(ctx)
			if err != nil {
				return nil, err
			}
			return yld(v, rest)
		},
	}
}

// FromSliceK builds a CPS stream from a slice by right-nested ConsK.
func FromSliceK[T any](xs []T) StreamK[T] {
	k := NilK[T]()
	for i := len(xs) - 1; i >= 0; i-- {
		k = ConsK(xs[i], k)
	}
	return k
}

// AppendK concatenates two CPS streams. O(1) amortized per element even
// under deep left-nesting, which is exactly where the direct representation
// degrades.
func AppendK[T any](a, b StreamK[T]) StreamK[T] {
	return StreamK[T]{
		run: func(ctx context.Context,
			yld func(T, StreamK[T]) (Erased, error),
			sng func(T) (Erased, error),
			stp func() (Erased, error)) (Erased, error) {
			return a.run(ctx,
				func(v T, rest StreamK[T]) (Erased, error) {
					return yld(v, AppendK(rest, b))
				},
				func(v T) (Erased, error) {
					return yld(v, b)
				},
				func() (Erased, error) {
					return b.run(ctx, yld, sng, stp)
				})
		},
	}
}

// ConcatMapK substitutes a CPS stream for every element and concatenates
// the results, the natural deep-recursion combinator of this
// representation.
func ConcatMapK[A, B any](k StreamK[A], f func(v A) StreamK[B]) StreamK[B] {
	return StreamK[B]{
		run: func(ctx context.Context,
			yld func(B, StreamK[B]) (Erased, error),
			sng func(B) (Erased, error),
			stp func() (Erased, error)) (Erased, error) {
			return k.run(ctx,
				func(v A, rest StreamK[A]) (Erased, error) {
					return AppendK(f(v), ConcatMapK(rest, f)).run(ctx, yld, sng, stp)
				},
				func(v A) (Erased, error) {
					return f(v).run(ctx, yld, sng, stp)
				},
				stp)
		},
	}
}
