// Copyright (c) 2026 The streamly authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package streamly

import "context"

// usageError panics with a descriptive message for programmer-contract
// violations. Extracted as a noinline function so that operator constructors
// remain inlineable.
//
//go:noinline
func usageError(msg string) {
	panic("streamly: " + msg)
}

// StepFunc advances a stream by one cell. It must treat state as immutable:
// transitions are expressed by returning a new state inside the Step, never
// by mutating the argument in place. The context is threaded read-only; the
// engine never inspects it. An error aborts the traversal and propagates to
// the elimination caller uninterpreted.
type StepFunc[T any] func(ctx context.Context, state Erased) (Step[T], error)

// Stream is a pull-based sequence of values represented as an explicit state
// machine: an opaque state value plus a step function. A Stream value carries
// no position; all progress lives in the state, so a Stream may be traversed
// any number of times, each traversal owning a fresh state chain.
//
// Construction performs no effects. Effects occur only when an elimination
// operator drives the machine to completion.
type Stream[T any] struct {
	step  StepFunc[T]
	state Erased
}

// NewStream creates a stream from a step function and an initial state.
// This is the primitive constructor for operators that need direct access
// to the state-machine representation.
func NewStream[T any](step StepFunc[T], initial Erased) Stream[T] {
	return Stream[T]{step: step, state: initial}
}

// Nil returns the empty stream: a single-Stop machine ignoring its state.
func Nil[T any]() Stream[T] {
	return Stream[T]{
		step: func(context.Context, Erased) (Step[T], error) {
			return Stop[T](), nil
		},
	}
}

// singleState is the two-state machine behind Single: pending → emit, done → stop.
type singleState uint8

const (
	singlePending singleState = iota
	singleDone
)

// Single returns the stream yielding exactly one value. A two-state machine
// rather than recursion, so drivers specialize it to straight-line code.
func Single[T any](v T) Stream[T] {
	return Stream[T]{
		step: func(_ context.Context, state Erased) (Step[T], error) {
			if state.(singleState) == singlePending {
				return Yield(v, singleDone), nil
			}
			return Stop[T](), nil
		},
		state: singlePending,
	}
}

// SingleM returns the stream yielding the result of one effectful action.
// The action runs each time the stream is traversed, once per traversal.
func SingleM[T any](action func(ctx context.Context) (T, error)) Stream[T] {
	return Stream[T]{
		step: func(ctx context.Context, state Erased) (Step[T], error) {
			if state.(singleState) == singlePending {
				v, err := action(ctx)
				if err != nil {
					return Stop[T](), err
				}
				return Yield(v, singleDone), nil
			}
			return Stop[T](), nil
		},
		state: singlePending,
	}
}

// Uncons advances the stream to its first yielded element.
// Returns the element, the remainder of the stream, and ok=false if the
// stream stopped before yielding.
func Uncons[T any](ctx context.Context, s Stream[T]) (T, Stream[T], bool, error) {
	state := s.state
	for {
		st, err := s.step(ctx, state)
		if err != nil {
			var zero T
			return zero, Stream[T]{}, false, err
		}
		switch {
		case st.IsYield():
			return st.Value(), Stream[T]{step: s.step, state: st.State()}, true, nil
		case st.IsSkip():
			state = st.State()
		default:
			var zero T
			return zero, Nil[T](), false, nil
		}
	}
}
