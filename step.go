// Copyright (c) 2026 The streamly authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package streamly

// Erased represents a type-erased value threaded through the engine.
// Operator state is erased so that a composed chain of operators keeps a
// single uniform step signature regardless of how each stage represents its
// bookkeeping. Concrete types are recovered via type assertions inside the
// step function that created the state.
type Erased = any

// stepTag discriminates the three Step variants.
type stepTag uint8

const (
	stepYield stepTag = iota
	stepSkip
	stepStop
)

// Step is the result of advancing a stream by one cell. It has exactly three
// variants:
//
//   - Yield(value, nextState): a value is available; resume with nextState.
//   - Skip(nextState): no value this round; resume with nextState.
//   - Stop: sequence exhausted; terminal.
//
// Step is a by-value fat struct rather than an interface so that driver loops
// do not pay an interface allocation per cell.
type Step[T any] struct {
	tag   stepTag
	value T
	state Erased
}

// Yield constructs a Step carrying a value and the state to resume with.
func Yield[T any](v T, next Erased) Step[T] {
	return Step[T]{tag: stepYield, value: v, state: next}
}

// Skip constructs a Step with no value this round.
// Skip transitions must be finite in a row for any single upstream cell.
func Skip[T any](next Erased) Step[T] {
	return Step[T]{tag: stepSkip, state: next}
}

// Stop constructs the terminal Step.
func Stop[T any]() Step[T] {
	return Step[T]{tag: stepStop}
}

// IsYield reports whether the step carries a value.
func (s Step[T]) IsYield() bool { return s.tag == stepYield }

// IsSkip reports whether the step is a no-value transition.
func (s Step[T]) IsSkip() bool { return s.tag == stepSkip }

// IsStop reports whether the sequence is exhausted.
func (s Step[T]) IsStop() bool { return s.tag == stepStop }

// Value returns the yielded value. Valid only when IsYield.
func (s Step[T]) Value() T { return s.value }

// State returns the resumption state. Valid for Yield and Skip.
func (s Step[T]) State() Erased { return s.state }

// mapStep reinterprets a Step's value while keeping its shape.
// Stop stays Stop, Skip keeps its state, Yield applies f.
func mapStep[A, B any](s Step[A], f func(A) B) Step[B] {
	switch s.tag {
	case stepYield:
		return Yield(f(s.value), s.state)
	case stepSkip:
		return Skip[B](s.state)
	default:
		return Stop[B]()
	}
}
