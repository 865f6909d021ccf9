// Copyright (c) 2026 The streamly authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package streamly

import (
	"context"

	"github.com/cornelk/hashmap"
)

// Transformation operators: Stream → Stream. Each wraps the upstream state
// in its own bookkeeping and reinterprets the upstream step's result.

// MapM transforms each element with an effectful function.
func MapM[A, B any](s Stream[A], f func(ctx context.Context, v A) (B, error)) Stream[B] {
	return Stream[B]{
		step: func(ctx context.Context, state Erased) (Step[B], error) {
			st, err := s.step(ctx, state)
			if err != nil {
				return Stop[B](), err
			}
			if !st.IsYield() {
				return mapStep(st, func(A) B { var zero B; return zero }), nil
			}
			b, err := f(ctx, st.Value())
			if err != nil {
				return Stop[B](), err
			}
			return Yield(b, st.State()), nil
		},
		state: s.state,
	}
}

// Map transforms each element with a pure function.
func Map[A, B any](s Stream[A], f func(A) B) Stream[B] {
	return Stream[B]{
		step: func(ctx context.Context, state Erased) (Step[B], error) {
			st, err := s.step(ctx, state)
			if err != nil {
				return Stop[B](), err
			}
			return mapStep(st, f), nil
		},
		state: s.state,
	}
}

// FilterM keeps the elements an effectful predicate accepts.
func FilterM[T any](s Stream[T], pred func(ctx context.Context, v T) (bool, error)) Stream[T] {
	return Stream[T]{
		step: func(ctx context.Context, state Erased) (Step[T], error) {
			st, err := s.step(ctx, state)
			if err != nil || !st.IsYield() {
				return st, err
			}
			keep, err := pred(ctx, st.Value())
			if err != nil {
				return Stop[T](), err
			}
			if keep {
				return st, nil
			}
			return Skip[T](st.State()), nil
		},
		state: s.state,
	}
}

// Filter keeps the elements a pure predicate accepts.
func Filter[T any](s Stream[T], pred func(T) bool) Stream[T] {
	return FilterM(s, func(_ context.Context, v T) (bool, error) {
		return pred(v), nil
	})
}

// takeState pairs the upstream state with the count of elements yielded.
type takeState struct {
	up    Erased
	taken int
}

// Take yields at most n elements. Once n elements have been yielded the
// stream stops unconditionally; the upstream is not polled again.
func Take[T any](s Stream[T], n int) Stream[T] {
	return Stream[T]{
		step: func(ctx context.Context, state Erased) (Step[T], error) {
			cur := state.(takeState)
			if cur.taken >= n {
				return Stop[T](), nil
			}
			st, err := s.step(ctx, cur.up)
			if err != nil {
				return Stop[T](), err
			}
			switch {
			case st.IsYield():
				return Yield(st.Value(), takeState{up: st.State(), taken: cur.taken + 1}), nil
			case st.IsSkip():
				return Skip[T](takeState{up: st.State(), taken: cur.taken}), nil
			default:
				return Stop[T](), nil
			}
		},
		state: takeState{up: s.state},
	}
}

// TakeWhileM yields elements while an effectful predicate holds, stopping at
// the first failure without yielding it.
func TakeWhileM[T any](s Stream[T], pred func(ctx context.Context, v T) (bool, error)) Stream[T] {
	return Stream[T]{
		step: func(ctx context.Context, state Erased) (Step[T], error) {
			st, err := s.step(ctx, state)
			if err != nil || !st.IsYield() {
				return st, err
			}
			keep, err := pred(ctx, st.Value())
			if err != nil {
				return Stop[T](), err
			}
			if !keep {
				return Stop[T](), nil
			}
			return st, nil
		},
		state: s.state,
	}
}

// TakeWhile yields elements while a pure predicate holds.
func TakeWhile[T any](s Stream[T], pred func(T) bool) Stream[T] {
	return TakeWhileM(s, func(_ context.Context, v T) (bool, error) {
		return pred(v), nil
	})
}

// dropState is the two-phase Drop machine. The switch from dropping to
// passing is one-way; once remaining reaches zero the counter is never
// consulted again.
type dropState struct {
	up        Erased
	remaining int
	dropping  bool
}

// Drop discards the first n elements, swallowing their yields as Skips, then
// passes everything through.
func Drop[T any](s Stream[T], n int) Stream[T] {
	return Stream[T]{
		step: func(ctx context.Context, state Erased) (Step[T], error) {
			cur := state.(dropState)
			st, err := s.step(ctx, cur.up)
			if err != nil || !st.IsYield() {
				if st.IsSkip() {
					return Skip[T](dropState{up: st.State(), remaining: cur.remaining, dropping: cur.dropping}), nil
				}
				return st, err
			}
			if !cur.dropping {
				return Yield(st.Value(), dropState{up: st.State()}), nil
			}
			if cur.remaining > 1 {
				return Skip[T](dropState{up: st.State(), remaining: cur.remaining - 1, dropping: true}), nil
			}
			// Last drop: switch permanently to the passing phase.
			return Skip[T](dropState{up: st.State()}), nil
		},
		state: dropState{up: s.state, remaining: n, dropping: n > 0},
	}
}

// dropWhileTag discriminates the three DropWhile states. Three are needed
// because the first element that fails the predicate must be yielded on the
// step after the mode switch, one cell per step.
type dropWhileTag uint8

const (
	dropWhileDropping dropWhileTag = iota
	dropWhileBuffered
	dropWhilePassing
)

type dropWhileState[T any] struct {
	tag      dropWhileTag
	buffered T
	up       Erased
}

// DropWhile discards the longest prefix satisfying pred, then passes the
// rest through starting with the element that failed.
func DropWhile[T any](s Stream[T], pred func(T) bool) Stream[T] {
	return Stream[T]{
		step: func(ctx context.Context, state Erased) (Step[T], error) {
			cur := state.(dropWhileState[T])
			switch cur.tag {
			case dropWhileDropping:
				st, err := s.step(ctx, cur.up)
				if err != nil || !st.IsYield() {
					if st.IsSkip() {
						return Skip[T](dropWhileState[T]{tag: dropWhileDropping, up: st.State()}), nil
					}
					return st, err
				}
				if pred(st.Value()) {
					return Skip[T](dropWhileState[T]{tag: dropWhileDropping, up: st.State()}), nil
				}
				return Skip[T](dropWhileState[T]{tag: dropWhileBuffered, buffered: st.Value(), up: st.State()}), nil
			case dropWhileBuffered:
				return Yield(cur.buffered, dropWhileState[T]{tag: dropWhilePassing, up: cur.up}), nil
			default:
				st, err := s.step(ctx, cur.up)
				if err != nil || !st.IsYield() {
					if st.IsSkip() {
						return Skip[T](dropWhileState[T]{tag: dropWhilePassing, up: st.State()}), nil
					}
					return st, err
				}
				return Yield(st.Value(), dropWhileState[T]{tag: dropWhilePassing, up: st.State()}), nil
			}
		},
		state: dropWhileState[T]{tag: dropWhileDropping, up: s.state},
	}
}

type uniqState[T any] struct {
	last Maybe[T]
	up   Erased
}

// Uniq suppresses an element equal to the last one yielded — not the literal
// previous input, which may itself have been suppressed.
func Uniq[T comparable](s Stream[T]) Stream[T] {
	return Stream[T]{
		step: func(ctx context.Context, state Erased) (Step[T], error) {
			cur := state.(uniqState[T])
			st, err := s.step(ctx, cur.up)
			if err != nil || !st.IsYield() {
				if st.IsSkip() {
					return Skip[T](uniqState[T]{last: cur.last, up: st.State()}), nil
				}
				return st, err
			}
			v := st.Value()
			if cur.last.Ok && v == cur.last.Value {
				return Skip[T](uniqState[T]{last: cur.last, up: st.State()}), nil
			}
			return Yield(v, uniqState[T]{last: Maybe[T]{Value: v, Ok: true}, up: st.State()}), nil
		},
		state: uniqState[T]{up: s.state},
	}
}

type distinctState struct {
	seen *hashmap.HashMap
	up   Erased
}

// DistinctBy suppresses every element whose key has been yielded before,
// anywhere in the stream. The seen-set is a concurrent hash map so the
// operator stays safe when the surrounding pipeline is evaluated by a
// concurrent runtime; each traversal owns a fresh set.
func DistinctBy[T any](s Stream[T], key func(T) uint64) Stream[T] {
	return Stream[T]{
		step: func(ctx context.Context, state Erased) (Step[T], error) {
			cur := state.(distinctState)
			if cur.seen == nil {
				cur.seen = &hashmap.HashMap{}
			}
			st, err := s.step(ctx, cur.up)
			if err != nil || !st.IsYield() {
				if st.IsSkip() {
					return Skip[T](distinctState{seen: cur.seen, up: st.State()}), nil
				}
				return st, err
			}
			if _, loaded := cur.seen.GetOrInsert(key(st.Value()), struct{}{}); loaded {
				return Skip[T](distinctState{seen: cur.seen, up: st.State()}), nil
			}
			return Yield(st.Value(), distinctState{seen: cur.seen, up: st.State()}), nil
		},
		state: distinctState{up: s.state},
	}
}

type indexedState struct {
	next int
	up   Erased
}

// Indexed pairs each element with its 0-based position.
func Indexed[T any](s Stream[T]) Stream[Pair[int, T]] {
	return Stream[Pair[int, T]]{
		step: func(ctx context.Context, state Erased) (Step[Pair[int, T]], error) {
			cur := state.(indexedState)
			st, err := s.step(ctx, cur.up)
			if err != nil {
				return Stop[Pair[int, T]](), err
			}
			switch {
			case st.IsYield():
				p := Pair[int, T]{Fst: cur.next, Snd: st.Value()}
				return Yield(p, indexedState{next: cur.next + 1, up: st.State()}), nil
			case st.IsSkip():
				return Skip[Pair[int, T]](indexedState{next: cur.next, up: st.State()}), nil
			default:
				return Stop[Pair[int, T]](), nil
			}
		},
		state: indexedState{up: s.state},
	}
}

type intersperseTag uint8

const (
	intersperseFirst intersperseTag = iota
	intersperseNext
	intersperseEmit
)

type intersperseState[T any] struct {
	tag      intersperseTag
	buffered T
	up       Erased
}

// Intersperse yields sep between every two consecutive elements.
func Intersperse[T any](s Stream[T], sep T) Stream[T] {
	return Stream[T]{
		step: func(ctx context.Context, state Erased) (Step[T], error) {
			cur := state.(intersperseState[T])
			if cur.tag == intersperseEmit {
				return Yield(cur.buffered, intersperseState[T]{tag: intersperseNext, up: cur.up}), nil
			}
			st, err := s.step(ctx, cur.up)
			if err != nil || !st.IsYield() {
				if st.IsSkip() {
					return Skip[T](intersperseState[T]{tag: cur.tag, up: st.State()}), nil
				}
				return st, err
			}
			if cur.tag == intersperseFirst {
				return Yield(st.Value(), intersperseState[T]{tag: intersperseNext, up: st.State()}), nil
			}
			return Yield(sep, intersperseState[T]{tag: intersperseEmit, buffered: st.Value(), up: st.State()}), nil
		},
		state: intersperseState[T]{tag: intersperseFirst, up: s.state},
	}
}

type insertTag uint8

const (
	insertBefore insertTag = iota
	insertHeld
	insertAtEnd
	insertAfter
)

type insertState[T any] struct {
	tag  insertTag
	held T
	up   Erased
}

// InsertBy inserts x before the first element that does not compare less
// than it. Single pass: the displaced element is held for one step and never
// re-scanned.
func InsertBy[T any](s Stream[T], compare func(a, b T) int, x T) Stream[T] {
	return Stream[T]{
		step: func(ctx context.Context, state Erased) (Step[T], error) {
			cur := state.(insertState[T])
			switch cur.tag {
			case insertBefore:
				st, err := s.step(ctx, cur.up)
				if err != nil {
					return Stop[T](), err
				}
				switch {
				case st.IsYield():
					if compare(x, st.Value()) <= 0 {
						return Yield(x, insertState[T]{tag: insertHeld, held: st.Value(), up: st.State()}), nil
					}
					return Yield(st.Value(), insertState[T]{tag: insertBefore, up: st.State()}), nil
				case st.IsSkip():
					return Skip[T](insertState[T]{tag: insertBefore, up: st.State()}), nil
				default:
					return Skip[T](insertState[T]{tag: insertAtEnd}), nil
				}
			case insertHeld:
				return Yield(cur.held, insertState[T]{tag: insertAfter, up: cur.up}), nil
			case insertAtEnd:
				return Yield(x, insertState[T]{tag: insertAfter, up: nil}), nil
			default:
				if cur.up == nil {
					return Stop[T](), nil
				}
				st, err := s.step(ctx, cur.up)
				if err != nil || !st.IsYield() {
					if st.IsSkip() {
						return Skip[T](insertState[T]{tag: insertAfter, up: st.State()}), nil
					}
					return st, err
				}
				return Yield(st.Value(), insertState[T]{tag: insertAfter, up: st.State()}), nil
			}
		},
		state: insertState[T]{tag: insertBefore, up: s.state},
	}
}

type deleteState struct {
	deleted bool
	up      Erased
}

// DeleteBy removes the first element y for which eq(x, y) holds. At most one
// occurrence is removed; the rest of the stream passes through untouched.
func DeleteBy[T any](s Stream[T], eq func(a, b T) bool, x T) Stream[T] {
	return Stream[T]{
		step: func(ctx context.Context, state Erased) (Step[T], error) {
			cur := state.(deleteState)
			st, err := s.step(ctx, cur.up)
			if err != nil || !st.IsYield() {
				if st.IsSkip() {
					return Skip[T](deleteState{deleted: cur.deleted, up: st.State()}), nil
				}
				return st, err
			}
			if !cur.deleted && eq(x, st.Value()) {
				return Skip[T](deleteState{deleted: true, up: st.State()}), nil
			}
			return Yield(st.Value(), deleteState{deleted: cur.deleted, up: st.State()}), nil
		},
		state: deleteState{up: s.state},
	}
}
