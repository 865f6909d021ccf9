// Copyright (c) 2026 The streamly authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package streamly

import "context"

// Generation operators: streams from seeds, ranges, and external feeds.

// Integral is the constraint for integer range enumeration.
type Integral interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// SignedIntegral is the constraint for enumerations whose stride may be
// negative.
type SignedIntegral interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Fractional is the constraint for floating-point range enumeration.
type Fractional interface {
	~float32 | ~float64
}

// UnfoldrM generates a stream by iterating an effectful producer over a seed.
// The producer returns the next value, the next seed, and ok=false when the
// seed is exhausted.
func UnfoldrM[S, T any](seed S, produce func(ctx context.Context, s S) (T, S, bool, error)) Stream[T] {
	return Stream[T]{
		step: func(ctx context.Context, state Erased) (Step[T], error) {
			v, next, ok, err := produce(ctx, state.(S))
			if err != nil {
				return Stop[T](), err
			}
			if !ok {
				return Stop[T](), nil
			}
			return Yield(v, next), nil
		},
		state: seed,
	}
}

// Unfoldr is UnfoldrM with a pure producer.
func Unfoldr[S, T any](seed S, produce func(s S) (T, S, bool)) Stream[T] {
	return UnfoldrM(seed, func(_ context.Context, s S) (T, S, bool, error) {
		v, next, ok := produce(s)
		return v, next, ok, nil
	})
}

// Repeat yields v forever. The stream is infinite; bound it with [Take] or a
// short-circuiting eliminator.
func Repeat[T any](v T) Stream[T] {
	return Stream[T]{
		step: func(context.Context, Erased) (Step[T], error) {
			return Yield(v, nil), nil
		},
	}
}

// Replicate yields v exactly n times. Panics if n is negative.
func Replicate[T any](n int, v T) Stream[T] {
	if n < 0 {
		usageError("replicate count must be non-negative")
	}
	return Stream[T]{
		step: func(_ context.Context, state Erased) (Step[T], error) {
			remaining := state.(int)
			if remaining == 0 {
				return Stop[T](), nil
			}
			return Yield(v, remaining-1), nil
		},
		state: n,
	}
}

// IterateM yields seed, f(seed), f(f(seed)), ... forever.
// The stream is infinite; f runs once per yielded cell after the first.
func IterateM[T any](seed T, f func(ctx context.Context, v T) (T, error)) Stream[T] {
	return Stream[T]{
		step: func(ctx context.Context, state Erased) (Step[T], error) {
			cur := state.(iterateState[T])
			if !cur.primed {
				return Yield(cur.value, iterateState[T]{value: cur.value, primed: true}), nil
			}
			next, err := f(ctx, cur.value)
			if err != nil {
				return Stop[T](), err
			}
			return Yield(next, iterateState[T]{value: next, primed: true}), nil
		},
		state: iterateState[T]{value: seed},
	}
}

type iterateState[T any] struct {
	value  T
	primed bool
}

// enumTag discriminates the three enumeration states.
type enumTag uint8

const (
	enumInit enumTag = iota
	enumNext
	enumDone
)

// enumIntState is the integral enumeration cursor: the last yielded value.
// The continuation test compares the cursor itself against the range bound,
// never a value beyond it, so enumeration is overflow-safe at both type
// boundaries.
type enumIntState[T Integral] struct {
	tag    enumTag
	cursor T
}

// EnumerateFromTo yields from, from+1, ..., to. Empty when from > to.
// The continuation test is cursor >= to rather than cursor+1 > to, so the
// cursor never computes a value past to and cannot overflow when to is the
// type maximum.
func EnumerateFromTo[T Integral](from, to T) Stream[T] {
	return Stream[T]{
		step: func(_ context.Context, state Erased) (Step[T], error) {
			cur := state.(enumIntState[T])
			switch cur.tag {
			case enumInit:
				if from > to {
					return Stop[T](), nil
				}
				return Yield(from, enumIntState[T]{tag: enumNext, cursor: from}), nil
			case enumNext:
				if cur.cursor >= to {
					return Stop[T](), nil
				}
				next := cur.cursor + 1
				return Yield(next, enumIntState[T]{tag: enumNext, cursor: next}), nil
			default:
				return Stop[T](), nil
			}
		},
		state: enumIntState[T]{tag: enumInit},
	}
}

// EnumerateFromThenTo yields from, then, then+(then-from), ... while within
// to. The stride then-from selects the ascending or descending machine once
// at construction; each machine compares the last yielded cursor against
// to-stride, precomputed. When to-stride itself wraps around the type
// boundary, no cursor within [from, to] can take another stride without
// leaving the range, so the machine stops after its first yield. A zero
// stride repeats from forever when from is within bound, and is empty
// otherwise.
func EnumerateFromThenTo[T SignedIntegral](from, then, to T) Stream[T] {
	stride := then - from
	if stride == 0 {
		if from > to {
			return Nil[T]()
		}
		return Repeat(from)
	}
	limit := to - stride
	ascending := stride > 0
	// limit wrapping: ascending subtraction must shrink to, descending must
	// grow it. A wrapped limit means the continuation window is empty.
	wrapped := (ascending && limit > to) || (!ascending && limit < to)
	return Stream[T]{
		step: func(_ context.Context, state Erased) (Step[T], error) {
			cur := state.(enumIntState[T])
			switch cur.tag {
			case enumInit:
				if ascending {
					if from > to {
						return Stop[T](), nil
					}
				} else if from < to {
					return Stop[T](), nil
				}
				return Yield(from, enumIntState[T]{tag: enumNext, cursor: from}), nil
			case enumNext:
				if wrapped {
					return Stop[T](), nil
				}
				if ascending {
					if cur.cursor > limit {
						return Stop[T](), nil
					}
				} else if cur.cursor < limit {
					return Stop[T](), nil
				}
				next := cur.cursor + stride
				return Yield(next, enumIntState[T]{tag: enumNext, cursor: next}), nil
			default:
				return Stop[T](), nil
			}
		},
		state: enumIntState[T]{tag: enumInit},
	}
}

// EnumerateFromToFloat yields from, from+1, ..., stopping past to+0.5.
// See [EnumerateFromThenToFloat] for the accuracy contract.
func EnumerateFromToFloat[T Fractional](from, to T) Stream[T] {
	return EnumerateFromThenToFloat(from, from+1, to)
}

// EnumerateFromThenToFloat yields from, then, ... computing each element as
// from + i*stride with an accumulated index rather than repeated addition,
// so rounding error does not compound. The termination test compares against
// to + stride/2: an endpoint that floating-point addition would narrowly miss
// is still included. Boundary inclusion is approximate near precision limits;
// that is a property of fractional enumeration, not a fault.
func EnumerateFromThenToFloat[T Fractional](from, then, to T) Stream[T] {
	stride := then - from
	bound := to + stride/2
	ascending := stride >= 0
	return Stream[T]{
		step: func(_ context.Context, state Erased) (Step[T], error) {
			i := state.(int)
			v := from + T(i)*stride
			if ascending {
				if v > bound {
					return Stop[T](), nil
				}
			} else if v < bound {
				return Stop[T](), nil
			}
			return Yield(v, i+1), nil
		},
		state: 0,
	}
}

// FromSlice yields the elements of xs in order. The slice must not be
// mutated while the stream is being traversed.
func FromSlice[T any](xs []T) Stream[T] {
	return Stream[T]{
		step: func(_ context.Context, state Erased) (Step[T], error) {
			i := state.(int)
			if i >= len(xs) {
				return Stop[T](), nil
			}
			return Yield(xs[i], i+1), nil
		},
		state: 0,
	}
}

// FromChan yields values received from ch until it is closed. Receiving is
// the stream's only suspension point; a cancelled context aborts the
// traversal with the context's error.
func FromChan[T any](ch <-chan T) Stream[T] {
	return Stream[T]{
		step: func(ctx context.Context, _ Erased) (Step[T], error) {
			select {
			case v, ok := <-ch:
				if !ok {
					return Stop[T](), nil
				}
				return Yield(v, nil), nil
			case <-ctx.Done():
				return Stop[T](), ctx.Err()
			}
		},
	}
}
