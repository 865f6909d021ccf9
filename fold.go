// Copyright (c) 2026 The streamly authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package streamly

import "context"

// Fold is a composable incremental reducer: an existential triple
// (initial, step, extract) over a type-erased accumulator.
//
// The protocol for one logical run is: one initial call, zero or more step
// calls, then at most one extract call. Calling step after extract is
// undefined; the drivers in this package never do.
//
// A Fold is a pure description. Constructing one performs no effects, and the
// same Fold may drive any number of runs, each with a fresh accumulator.
type Fold[T, B any] struct {
	initial func(ctx context.Context) (Erased, error)
	step    func(ctx context.Context, acc Erased, in T) (Erased, error)
	extract func(ctx context.Context, acc Erased) (B, error)
}

// NewFold creates a Fold from a typed accumulator protocol. The accumulator
// type S is erased so that folds over different accumulators compose behind
// one signature.
func NewFold[T, S, B any](
	initial func(ctx context.Context) (S, error),
	step func(ctx context.Context, acc S, in T) (S, error),
	extract func(ctx context.Context, acc S) (B, error),
) Fold[T, B] {
	return Fold[T, B]{
		initial: func(ctx context.Context) (Erased, error) {
			return initial(ctx)
		},
		step: func(ctx context.Context, acc Erased, in T) (Erased, error) {
			return step(ctx, acc.(S), in)
		},
		extract: func(ctx context.Context, acc Erased) (B, error) {
			return extract(ctx, acc.(S))
		},
	}
}

// NewPureFold creates a Fold from pure seed, step, and extract functions.
func NewPureFold[T, S, B any](seed S, step func(acc S, in T) S, extract func(acc S) B) Fold[T, B] {
	return NewFold(
		func(context.Context) (S, error) { return seed, nil },
		func(_ context.Context, acc S, in T) (S, error) { return step(acc, in), nil },
		func(_ context.Context, acc S) (B, error) { return extract(acc), nil },
	)
}

// Numeric is the constraint for arithmetic folds.
type Numeric interface {
	Integral | Fractional
}

// SumFold sums its input.
func SumFold[T Numeric]() Fold[T, T] {
	var zero T
	return NewPureFold(zero,
		func(acc T, in T) T { return acc + in },
		func(acc T) T { return acc },
	)
}

// LengthFold counts its input.
func LengthFold[T any]() Fold[T, int] {
	return NewPureFold(0,
		func(acc int, _ T) int { return acc + 1 },
		func(acc int) int { return acc },
	)
}

// ToSliceFold collects its input into a slice.
func ToSliceFold[T any]() Fold[T, []T] {
	return NewPureFold[T, []T, []T](nil,
		func(acc []T, in T) []T { return append(acc, in) },
		func(acc []T) []T { return acc },
	)
}

// ToArrayFold collects its input into an [Array].
func ToArrayFold[T any]() Fold[T, *Array[T]] {
	return NewPureFold(NewArray[T](0),
		func(acc *Array[T], in T) *Array[T] { return acc.Append(in) },
		func(acc *Array[T]) *Array[T] { return acc },
	)
}

// LastFold remembers the last element, reporting ok=false on empty input.
func LastFold[T any]() Fold[T, Maybe[T]] {
	return NewPureFold(Maybe[T]{},
		func(_ Maybe[T], in T) Maybe[T] { return Maybe[T]{Value: in, Ok: true} },
		func(acc Maybe[T]) Maybe[T] { return acc },
	)
}

// Maybe is an in-band optional result: a value plus presence flag.
// Absence is a representable outcome, never a fault.
type Maybe[T any] struct {
	Value T
	Ok    bool
}

// teeAcc pairs the accumulators of two folds running in lockstep.
type teeAcc struct {
	left  Erased
	right Erased
}

// TeeWith composes two folds applicatively: both consume every input element
// in one pass, and combine joins their results. This is how several
// aggregates are computed over a single traversal.
func TeeWith[T, B, C, D any](combine func(B, C) D, f Fold[T, B], g Fold[T, C]) Fold[T, D] {
	return Fold[T, D]{
		initial: func(ctx context.Context) (Erased, error) {
			l, err := f.initial(ctx)
			if err != nil {
				return nil, err
			}
			r, err := g.initial(ctx)
			if err != nil {
				return nil, err
			}
			return teeAcc{left: l, right: r}, nil
		},
		step: func(ctx context.Context, acc Erased, in T) (Erased, error) {
			pair := acc.(teeAcc)
			l, err := f.step(ctx, pair.left, in)
			if err != nil {
				return nil, err
			}
			r, err := g.step(ctx, pair.right, in)
			if err != nil {
				return nil, err
			}
			return teeAcc{left: l, right: r}, nil
		},
		extract: func(ctx context.Context, acc Erased) (D, error) {
			pair := acc.(teeAcc)
			b, err := f.extract(ctx, pair.left)
			if err != nil {
				var zero D
				return zero, err
			}
			c, err := g.extract(ctx, pair.right)
			if err != nil {
				var zero D
				return zero, err
			}
			return combine(b, c), nil
		},
	}
}

// MapFold applies a pure function to a fold's result.
func MapFold[T, B, C any](f Fold[T, B], fn func(B) C) Fold[T, C] {
	return Fold[T, C]{
		initial: f.initial,
		step:    f.step,
		extract: func(ctx context.Context, acc Erased) (C, error) {
			b, err := f.extract(ctx, acc)
			if err != nil {
				var zero C
				return zero, err
			}
			return fn(b), nil
		},
	}
}
