// Copyright (c) 2026 The streamly authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package streamly

import (
	"cmp"
	"context"
)

// Elimination operators: drive a composed state machine to completion.
// All of them are built from two orthogonal primitive reducers:
// strict left reduction ([FoldlM]) for everything that must consume the whole
// sequence, and lazy right reduction ([FoldrM]) for predicates that must
// short-circuit without consuming it.

// FoldlM is the strict left reduction: the accumulator is forced each step,
// so no deferred work builds up across a long traversal. This is the
// workhorse behind sums, counts, collection, and [FoldStream].
func FoldlM[T, B any](ctx context.Context, s Stream[T], seed B, step func(ctx context.Context, acc B, v T) (B, error)) (B, error) {
	acc := seed
	state := s.state
	for {
		st, err := s.step(ctx, state)
		if err != nil {
			return acc, err
		}
		switch {
		case st.IsYield():
			acc, err = step(ctx, acc, st.Value())
			if err != nil {
				return acc, err
			}
			state = st.State()
		case st.IsSkip():
			state = st.State()
		default:
			return acc, nil
		}
	}
}

// Foldl is FoldlM with a pure step.
func Foldl[T, B any](ctx context.Context, s Stream[T], seed B, step func(acc B, v T) B) (B, error) {
	return FoldlM(ctx, s, seed, func(_ context.Context, acc B, v T) (B, error) {
		return step(acc, v), nil
	})
}

// FoldrM is the lazy right reduction: step receives each element together
// with a thunk that reduces the remainder of the stream. Not forcing the
// thunk terminates the traversal without consuming further input.
//
// FoldrM is for short-circuiting queries only. Forcing the thunk at every
// element recurses once per element; use [FoldlM] for anything strict.
func FoldrM[T, B any](ctx context.Context, s Stream[T], base B, step func(ctx context.Context, v T, rest func() (B, error)) (B, error)) (B, error) {
	var reduce func(state Erased) (B, error)
	reduce = func(state Erased) (B, error) {
		for {
			st, err := s.step(ctx, state)
			if err != nil {
				var zero B
				return zero, err
			}
			switch {
			case st.IsYield():
				next := st.State()
				return step(ctx, st.Value(), func() (B, error) {
					return reduce(next)
				})
			case st.IsSkip():
				state = st.State()
			default:
				return base, nil
			}
		}
	}
	return reduce(s.state)
}

// FoldStream drives a Fold over a stream: one initial, one step per element,
// one extract.
func FoldStream[T, B any](ctx context.Context, f Fold[T, B], s Stream[T]) (B, error) {
	var zero B
	acc, err := f.initial(ctx)
	if err != nil {
		return zero, err
	}
	acc, err = FoldlM(ctx, s, acc, func(ctx context.Context, acc Erased, v T) (Erased, error) {
		return f.step(ctx, acc, v)
	})
	if err != nil {
		return zero, err
	}
	return f.extract(ctx, acc)
}

// Drain consumes the stream for its effects, discarding every value.
func Drain[T any](ctx context.Context, s Stream[T]) error {
	_, err := FoldlM(ctx, s, struct{}{}, func(context.Context, struct{}, T) (struct{}, error) {
		return struct{}{}, nil
	})
	return err
}

// ToSlice collects the stream into a slice.
func ToSlice[T any](ctx context.Context, s Stream[T]) ([]T, error) {
	return Foldl(ctx, s, []T(nil), func(acc []T, v T) []T {
		return append(acc, v)
	})
}

// ToArray collects the stream into an [Array].
func ToArray[T any](ctx context.Context, s Stream[T]) (*Array[T], error) {
	return Foldl(ctx, s, NewArray[T](0), func(acc *Array[T], v T) *Array[T] {
		return acc.Append(v)
	})
}

// Length counts the yielded elements.
func Length[T any](ctx context.Context, s Stream[T]) (int, error) {
	return Foldl(ctx, s, 0, func(acc int, _ T) int { return acc + 1 })
}

// Head returns the first element, ok=false on an empty stream. Only the
// first yielding cell is consumed.
func Head[T any](ctx context.Context, s Stream[T]) (T, bool, error) {
	v, _, ok, err := Uncons(ctx, s)
	return v, ok, err
}

// Last returns the final element, ok=false on an empty stream.
func Last[T any](ctx context.Context, s Stream[T]) (T, bool, error) {
	m, err := Foldl(ctx, s, Maybe[T]{}, func(_ Maybe[T], v T) Maybe[T] {
		return Maybe[T]{Value: v, Ok: true}
	})
	return m.Value, m.Ok, err
}

// Null reports whether the stream is empty, consuming at most one yielding
// cell.
func Null[T any](ctx context.Context, s Stream[T]) (bool, error) {
	return FoldrM(ctx, s, true, func(context.Context, T, func() (bool, error)) (bool, error) {
		return false, nil
	})
}

// Index returns the n-th (0-based) yielded element. A negative index and a
// stream shorter than n+1 elements both report absence, not an error.
func Index[T any](ctx context.Context, s Stream[T], n int) (T, bool, error) {
	var zero T
	if n < 0 {
		return zero, false, nil
	}
	remaining := n
	state := s.state
	for {
		st, err := s.step(ctx, state)
		if err != nil {
			return zero, false, err
		}
		switch {
		case st.IsYield():
			if remaining == 0 {
				return st.Value(), true, nil
			}
			remaining--
			state = st.State()
		case st.IsSkip():
			state = st.State()
		default:
			return zero, false, nil
		}
	}
}

// Any reports whether pred holds for some element, ceasing consumption at
// the first match.
func Any[T any](ctx context.Context, s Stream[T], pred func(T) bool) (bool, error) {
	return FoldrM(ctx, s, false, func(_ context.Context, v T, rest func() (bool, error)) (bool, error) {
		if pred(v) {
			return true, nil
		}
		return rest()
	})
}

// All reports whether pred holds for every element, ceasing consumption at
// the first counterexample.
func All[T any](ctx context.Context, s Stream[T], pred func(T) bool) (bool, error) {
	return FoldrM(ctx, s, true, func(_ context.Context, v T, rest func() (bool, error)) (bool, error) {
		if !pred(v) {
			return false, nil
		}
		return rest()
	})
}

// Elem reports whether x occurs in the stream.
func Elem[T comparable](ctx context.Context, s Stream[T], x T) (bool, error) {
	return Any(ctx, s, func(v T) bool { return v == x })
}

// NotElem reports whether x does not occur in the stream.
func NotElem[T comparable](ctx context.Context, s Stream[T], x T) (bool, error) {
	found, err := Elem(ctx, s, x)
	return !found, err
}

// Find returns the first element satisfying pred, ceasing consumption at the
// match.
func Find[T any](ctx context.Context, s Stream[T], pred func(T) bool) (T, bool, error) {
	m, err := FoldrM(ctx, s, Maybe[T]{}, func(_ context.Context, v T, rest func() (Maybe[T], error)) (Maybe[T], error) {
		if pred(v) {
			return Maybe[T]{Value: v, Ok: true}, nil
		}
		return rest()
	})
	return m.Value, m.Ok, err
}

// Pair is a two-element tuple, used by [Indexed], [Lookup], and pairing zips.
type Pair[A, B any] struct {
	Fst A
	Snd B
}

// Lookup returns the value paired with the first occurrence of key, ceasing
// consumption at the match.
func Lookup[K comparable, V any](ctx context.Context, s Stream[Pair[K, V]], key K) (V, bool, error) {
	p, ok, err := Find(ctx, s, func(p Pair[K, V]) bool { return p.Fst == key })
	return p.Snd, ok, err
}

// Maximum returns the largest element. On equal elements the earliest one
// seen is kept: the candidate replaces the current best only on strict
// improvement.
func Maximum[T cmp.Ordered](ctx context.Context, s Stream[T]) (T, bool, error) {
	return MaximumBy(ctx, s, cmp.Compare[T])
}

// Minimum returns the smallest element, keeping the earliest on ties.
func Minimum[T cmp.Ordered](ctx context.Context, s Stream[T]) (T, bool, error) {
	return MinimumBy(ctx, s, cmp.Compare[T])
}

// MaximumBy returns the element that compares greatest. The current best is
// replaced only when the candidate compares strictly greater, so the
// earliest of equal elements wins. Pinned behavior: callers rely on this
// exact tie-break for determinism.
func MaximumBy[T any](ctx context.Context, s Stream[T], compare func(a, b T) int) (T, bool, error) {
	m, err := Foldl(ctx, s, Maybe[T]{}, func(best Maybe[T], v T) Maybe[T] {
		if !best.Ok || compare(v, best.Value) > 0 {
			return Maybe[T]{Value: v, Ok: true}
		}
		return best
	})
	return m.Value, m.Ok, err
}

// MinimumBy returns the element that compares least, keeping the earliest of
// equal elements.
func MinimumBy[T any](ctx context.Context, s Stream[T], compare func(a, b T) int) (T, bool, error) {
	m, err := Foldl(ctx, s, Maybe[T]{}, func(best Maybe[T], v T) Maybe[T] {
		if !best.Ok || compare(v, best.Value) < 0 {
			return Maybe[T]{Value: v, Ok: true}
		}
		return best
	})
	return m.Value, m.Ok, err
}
