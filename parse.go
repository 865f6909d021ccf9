// Copyright (c) 2026 The streamly authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package streamly

import "context"

// Parse is a Fold variant whose step can terminate early. Each step returns
// a [ParseStep]: Partial to keep consuming, or Done to stop immediately with
// a result. This is how single-pass parsers and early-exit aggregations run
// over the same state machine as ordinary folds.
//
// Resuming a Parse after it reported Done is undefined; [ParseStream] never
// does.
type Parse[T, B any] struct {
	initial func(ctx context.Context) (Erased, error)
	step    func(ctx context.Context, acc Erased, in T) (ParseStep[B], error)
	extract func(ctx context.Context, acc Erased) (B, error)
}

// ParseStep is the result of one Parse step: either a partial accumulator or
// a final result.
type ParseStep[B any] struct {
	done   bool
	state  Erased
	result B
}

// Partial continues the parse with the given accumulator.
func Partial[B any](acc Erased) ParseStep[B] {
	return ParseStep[B]{state: acc}
}

// Done terminates the parse immediately with a result. No further input is
// consumed.
func Done[B any](result B) ParseStep[B] {
	return ParseStep[B]{done: true, result: result}
}

// NewParse creates a Parse from a typed accumulator protocol. extract is
// applied only when the input is exhausted before the step reports Done.
func NewParse[T, S, B any](
	initial func(ctx context.Context) (S, error),
	step func(ctx context.Context, acc S, in T) (ParseStep[B], error),
	extract func(ctx context.Context, acc S) (B, error),
) Parse[T, B] {
	return Parse[T, B]{
		initial: func(ctx context.Context) (Erased, error) {
			return initial(ctx)
		},
		step: func(ctx context.Context, acc Erased, in T) (ParseStep[B], error) {
			return step(ctx, acc.(S), in)
		},
		extract: func(ctx context.Context, acc Erased) (B, error) {
			return extract(ctx, acc.(S))
		},
	}
}

// ParseStream drives a Parse over a stream. Consumption stops the moment the
// step reports Done; the remaining input is not advanced. If the stream ends
// first, the result is extracted from the last partial accumulator.
func ParseStream[T, B any](ctx context.Context, p Parse[T, B], s Stream[T]) (B, error) {
	var zero B
	acc, err := p.initial(ctx)
	if err != nil {
		return zero, err
	}
	state := s.state
	for {
		st, err := s.step(ctx, state)
		if err != nil {
			return zero, err
		}
		switch {
		case st.IsYield():
			ps, err := p.step(ctx, acc, st.Value())
			if err != nil {
				return zero, err
			}
			if ps.done {
				return ps.result, nil
			}
			acc = ps.state
			state = st.State()
		case st.IsSkip():
			state = st.State()
		default:
			return p.extract(ctx, acc)
		}
	}
}
