// Copyright (c) 2026 The streamly authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package streamly

import "context"

// Bridge between the direct-style and continuation-passing representations.
//
// The conversions are explicit functions, never implicit coercions, so
// performance-sensitive call sites choose a representation deliberately.
// The correctness contract is the round-trip law:
//
//	FromStreamK(ToStreamK(s)) ≡ s
//	ToStreamK(FromStreamK(k)) ≡ k
//
// as observable sequences — same values, same effect order — independent of
// whether a toolchain can optimize the round trip away.

// ToStreamK converts a direct-style stream to the CPS representation. Each
// continuation invocation advances the direct machine by exactly one
// yielding cell, consuming Skip transitions internally, then hands control
// to the matching continuation.
func ToStreamK[T any](s Stream[T]) StreamK[T] {
	var from func(state Erased) StreamK[T]
	from = func(state Erased) StreamK[T] {
		return StreamK[T]{
			run: func(ctx context.Context,
				yld func(T, StreamK[T]) (Erased, error),
				_ func(T) (Erased, error),
				stp func() (Erased, error)) (Erased, error) {
				v, ok, next, err := pullOne(ctx, s.step, state)
				if err != nil {
					return nil, err
				}
				if !ok {
					return stp()
				}
				return yld(v, from(next))
			},
		}
	}
	return from(s.state)
}

// cpsState is the direct-style state of a converted CPS stream: the
// remaining continuation, or nothing after the singleton continuation fired.
type cpsState[T any] struct {
	rest StreamK[T]
	done bool
}

// FromStreamK converts a CPS stream to the direct representation. The
// stream's state is the remaining StreamK; each advance runs it once with
// three continuations producing Yield, Yield-then-Stop (the singleton
// optimization needs no further continuation), and Stop respectively.
func FromStreamK[T any](k StreamK[T]) Stream[T] {
	return Stream[T]{
		step: func(ctx context.Context, state Erased) (Step[T], error) {
			cur := state.(cpsState[T])
			if cur.done {
				return Stop[T](), nil
			}
			r, err := cur.rest.run(ctx,
				func(v T, rest StreamK[T]) (Erased, error) {
					return Yield(v, cpsState[T]{rest: rest}), nil
				},
				func(v T) (Erased, error) {
					return Yield(v, cpsState[T]{done: true}), nil
				},
				func() (Erased, error) {
					return Stop[T](), nil
				})
			if err != nil {
				return Stop[T](), err
			}
			return r.(Step[T]), nil
		},
		state: cpsState[T]{rest: k},
	}
}

// Append concatenates two direct-style streams by way of the CPS
// representation, where concatenation is cheap.
func Append[T any](a, b Stream[T]) Stream[T] {
	return FromStreamK(AppendK(ToStreamK(a), ToStreamK(b)))
}
