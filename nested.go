// Copyright (c) 2026 The streamly authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package streamly

import (
	"context"
	"hash/maphash"
)

// Nested operators: two-level state machines and fold-per-segment grouping.

// concatMapState tracks the outer source position plus the active inner
// stream, if any. The inner stream's own state rides inside it.
type concatMapState[B any] struct {
	outer  Erased
	inner  Stream[B]
	active bool
}

// ConcatMapM yields every element of the stream produced for each source
// element, in order. When an inner stream stops, control returns to the
// outer level to pull the next source element.
func ConcatMapM[A, B any](s Stream[A], f func(ctx context.Context, v A) (Stream[B], error)) Stream[B] {
	return Stream[B]{
		step: func(ctx context.Context, state Erased) (Step[B], error) {
			cur := state.(concatMapState[B])
			if cur.active {
				st, err := cur.inner.step(ctx, cur.inner.state)
				if err != nil {
					return Stop[B](), err
				}
				switch {
				case st.IsYield():
					next := Stream[B]{step: cur.inner.step, state: st.State()}
					return Yield(st.Value(), concatMapState[B]{outer: cur.outer, inner: next, active: true}), nil
				case st.IsSkip():
					next := Stream[B]{step: cur.inner.step, state: st.State()}
					return Skip[B](concatMapState[B]{outer: cur.outer, inner: next, active: true}), nil
				default:
					return Skip[B](concatMapState[B]{outer: cur.outer}), nil
				}
			}
			st, err := s.step(ctx, cur.outer)
			if err != nil {
				return Stop[B](), err
			}
			switch {
			case st.IsYield():
				inner, err := f(ctx, st.Value())
				if err != nil {
					return Stop[B](), err
				}
				return Skip[B](concatMapState[B]{outer: st.State(), inner: inner, active: true}), nil
			case st.IsSkip():
				return Skip[B](concatMapState[B]{outer: st.State()}), nil
			default:
				return Stop[B](), nil
			}
		},
		state: concatMapState[B]{outer: s.state},
	}
}

// ConcatMap is ConcatMapM with a pure stream producer.
func ConcatMap[A, B any](s Stream[A], f func(v A) Stream[B]) Stream[B] {
	return ConcatMapM(s, func(_ context.Context, v A) (Stream[B], error) {
		return f(v), nil
	})
}

// concatArraysState walks one cursor range at a time. Walking the buffer
// cursors directly is cheaper than nesting a generic inner state machine per
// array.
type concatArraysState[T any] struct {
	outer  Erased
	arr    *Array[T]
	cursor int
	end    int
}

// ConcatArrays concatenates a stream of arrays element-wise.
func ConcatArrays[T any](s Stream[*Array[T]]) Stream[T] {
	return Stream[T]{
		step: func(ctx context.Context, state Erased) (Step[T], error) {
			cur := state.(concatArraysState[T])
			if cur.arr != nil {
				if cur.cursor != cur.end {
					v := cur.arr.Peek(cur.cursor)
					return Yield(v, concatArraysState[T]{outer: cur.outer, arr: cur.arr, cursor: cur.cursor + 1, end: cur.end}), nil
				}
				return Skip[T](concatArraysState[T]{outer: cur.outer}), nil
			}
			st, err := s.step(ctx, cur.outer)
			if err != nil {
				return Stop[T](), err
			}
			switch {
			case st.IsYield():
				a := st.Value()
				return Skip[T](concatArraysState[T]{outer: st.State(), arr: a, cursor: a.Start(), end: a.End()}), nil
			case st.IsSkip():
				return Skip[T](concatArraysState[T]{outer: st.State()}), nil
			default:
				return Stop[T](), nil
			}
		},
		state: concatArraysState[T]{outer: s.state},
	}
}

// groupState marks whether the source has been exhausted.
type groupState struct {
	up   Erased
	done bool
}

// GroupsOf folds every n consecutive elements with one run of f and yields
// one result per group. The final partial group, if the source ends early,
// is still folded and emitted; an empty source emits nothing. Each output
// step pulls one element before starting the fold run, so a group is never
// emitted for an exhausted source.
//
// Panics if n < 1: a grouping fold must consume at least one element.
func GroupsOf[T, B any](s Stream[T], n int, f Fold[T, B]) Stream[B] {
	if n < 1 {
		usageError("groupsOf: group size must be at least 1")
	}
	return Stream[B]{
		step: func(ctx context.Context, state Erased) (Step[B], error) {
			cur := state.(groupState)
			if cur.done {
				return Stop[B](), nil
			}
			first, ok, up, err := pullOne(ctx, s.step, cur.up)
			if err != nil {
				return Stop[B](), err
			}
			if !ok {
				return Stop[B](), nil
			}
			acc, err := f.initial(ctx)
			if err != nil {
				return Stop[B](), err
			}
			acc, err = f.step(ctx, acc, first)
			if err != nil {
				return Stop[B](), err
			}
			exhausted := false
			for consumed := 1; consumed < n; consumed++ {
				v, ok, next, err := pullOne(ctx, s.step, up)
				if err != nil {
					return Stop[B](), err
				}
				if !ok {
					exhausted = true
					break
				}
				up = next
				acc, err = f.step(ctx, acc, v)
				if err != nil {
					return Stop[B](), err
				}
			}
			b, err := f.extract(ctx, acc)
			if err != nil {
				return Stop[B](), err
			}
			return Yield(b, groupState{up: up, done: exhausted}), nil
		},
		state: groupState{up: s.state},
	}
}

// pullOne advances a step function to its next yielded element, consuming
// Skips. ok=false means the machine stopped first.
func pullOne[T any](ctx context.Context, step StepFunc[T], state Erased) (T, bool, Erased, error) {
	for {
		st, err := step(ctx, state)
		if err != nil {
			var zero T
			return zero, false, nil, err
		}
		switch {
		case st.IsYield():
			return st.Value(), true, st.State(), nil
		case st.IsSkip():
			state = st.State()
		default:
			var zero T
			return zero, false, nil, nil
		}
	}
}

// SplitWhen splits the stream into segments delimited by elements matching
// pred, running one fold per segment. Separators are elided from the output.
// Adjacent separators produce empty segments; a trailing separator does not
// produce a final empty segment, and an unterminated trailing segment is
// still folded and emitted. An empty source emits nothing.
func SplitWhen[T, B any](s Stream[T], pred func(T) bool, f Fold[T, B]) Stream[B] {
	return Stream[B]{
		step: func(ctx context.Context, state Erased) (Step[B], error) {
			cur := state.(groupState)
			if cur.done {
				return Stop[B](), nil
			}
			acc, err := f.initial(ctx)
			if err != nil {
				return Stop[B](), err
			}
			up := cur.up
			consumed := false
			for {
				v, ok, next, err := pullOne(ctx, s.step, up)
				if err != nil {
					return Stop[B](), err
				}
				if !ok {
					if !consumed {
						return Stop[B](), nil
					}
					b, err := f.extract(ctx, acc)
					if err != nil {
						return Stop[B](), err
					}
					return Yield(b, groupState{done: true}), nil
				}
				up = next
				consumed = true
				if pred(v) {
					b, err := f.extract(ctx, acc)
					if err != nil {
						return Stop[B](), err
					}
					return Yield(b, groupState{up: up}), nil
				}
				acc, err = f.step(ctx, acc, v)
				if err != nil {
					return Stop[B](), err
				}
			}
		},
		state: groupState{up: s.state},
	}
}

// WordsWhen is SplitWhen with word semantics: runs of adjacent separators
// collapse and empty segments are never emitted.
func WordsWhen[T, B any](s Stream[T], pred func(T) bool, f Fold[T, B]) Stream[B] {
	return Stream[B]{
		step: func(ctx context.Context, state Erased) (Step[B], error) {
			cur := state.(groupState)
			if cur.done {
				return Stop[B](), nil
			}
			up := cur.up
			// Swallow leading separators so segments are never empty.
			first, ok, next, err := pullWord(ctx, s.step, up, pred)
			if err != nil {
				return Stop[B](), err
			}
			if !ok {
				return Stop[B](), nil
			}
			up = next
			acc, err := f.initial(ctx)
			if err != nil {
				return Stop[B](), err
			}
			acc, err = f.step(ctx, acc, first)
			if err != nil {
				return Stop[B](), err
			}
			for {
				v, ok, next, err := pullOne(ctx, s.step, up)
				if err != nil {
					return Stop[B](), err
				}
				if !ok {
					b, err := f.extract(ctx, acc)
					if err != nil {
						return Stop[B](), err
					}
					return Yield(b, groupState{done: true}), nil
				}
				up = next
				if pred(v) {
					b, err := f.extract(ctx, acc)
					if err != nil {
						return Stop[B](), err
					}
					return Yield(b, groupState{up: up}), nil
				}
				acc, err = f.step(ctx, acc, v)
				if err != nil {
					return Stop[B](), err
				}
			}
		},
		state: groupState{up: s.state},
	}
}

// pullWord advances to the next non-separator element.
func pullWord[T any](ctx context.Context, step StepFunc[T], state Erased, pred func(T) bool) (T, bool, Erased, error) {
	for {
		v, ok, next, err := pullOne(ctx, step, state)
		if err != nil || !ok {
			var zero T
			return zero, false, nil, err
		}
		if !pred(v) {
			return v, true, next, nil
		}
		state = next
	}
}

// SplitOnSeq splits the stream on an exact separator subsequence, running
// one fold per segment. The separator never appears in any emitted segment;
// an unterminated trailing segment is still folded and emitted; an empty
// source emits nothing.
//
// An empty separator treats the entire input as one segment. A
// single-element separator uses a direct equality scan. Longer separators
// use a Karp–Rabin rolling hash over a ring of the last len(sep) elements,
// verifying candidate windows by direct comparison, which avoids the
// O(n·m) cost of re-comparing the separator at every position.
func SplitOnSeq[T comparable, B any](s Stream[T], sep []T, f Fold[T, B]) Stream[B] {
	switch len(sep) {
	case 0:
		return splitWhole(s, f)
	case 1:
		return SplitWhen(s, func(v T) bool { return v == sep[0] }, f)
	default:
		return splitKarpRabin(s, sep, f)
	}
}

// splitWhole folds the entire input as a single segment.
func splitWhole[T, B any](s Stream[T], f Fold[T, B]) Stream[B] {
	return Stream[B]{
		step: func(ctx context.Context, state Erased) (Step[B], error) {
			cur := state.(groupState)
			if cur.done {
				return Stop[B](), nil
			}
			// One element must exist before a fold run starts: an empty
			// source emits no segment, same as the sibling splitters.
			first, ok, up, err := pullOne(ctx, s.step, cur.up)
			if err != nil {
				return Stop[B](), err
			}
			if !ok {
				return Stop[B](), nil
			}
			acc, err := f.initial(ctx)
			if err != nil {
				return Stop[B](), err
			}
			acc, err = f.step(ctx, acc, first)
			if err != nil {
				return Stop[B](), err
			}
			for {
				v, ok, next, err := pullOne(ctx, s.step, up)
				if err != nil {
					return Stop[B](), err
				}
				if !ok {
					b, err := f.extract(ctx, acc)
					if err != nil {
						return Stop[B](), err
					}
					return Yield(b, groupState{done: true}), nil
				}
				up = next
				acc, err = f.step(ctx, acc, v)
				if err != nil {
					return Stop[B](), err
				}
			}
		},
		state: groupState{up: s.state},
	}
}

// krBase is the Karp–Rabin multiplier. Any odd constant works; this one is
// the FNV-1a prime.
const krBase uint64 = 0x100000001b3

// splitKarpRabin is the multi-element separator machine. Elements are folded
// into the current segment only once they leave the ring of the last
// len(sep) elements, because an ejected element can no longer belong to any
// future separator window.
func splitKarpRabin[T comparable, B any](s Stream[T], sep []T, f Fold[T, B]) Stream[B] {
	m := len(sep)
	seed := maphash.MakeSeed()
	elemHash := func(v T) uint64 { return maphash.Comparable(seed, v) }

	var sepHash uint64
	for _, v := range sep {
		sepHash = sepHash*krBase + elemHash(v)
	}
	// krHigh is base^(m-1): the coefficient of the element leaving the window.
	krHigh := uint64(1)
	for i := 0; i < m-1; i++ {
		krHigh *= krBase
	}

	return Stream[B]{
		step: func(ctx context.Context, state Erased) (Step[B], error) {
			cur := state.(groupState)
			if cur.done {
				return Stop[B](), nil
			}
			acc, err := f.initial(ctx)
			if err != nil {
				return Stop[B](), err
			}
			up := cur.up
			ring := make([]T, 0, m)
			ringStart := 0 // index of the oldest element when the ring is full
			var winHash uint64
			consumed := false

			ringEquals := func() bool {
				for i := 0; i < m; i++ {
					if ring[(ringStart+i)%m] != sep[i] {
						return false
					}
				}
				return true
			}

			for {
				v, ok, next, err := pullOne(ctx, s.step, up)
				if err != nil {
					return Stop[B](), err
				}
				if !ok {
					if !consumed {
						return Stop[B](), nil
					}
					// Unterminated segment: flush the ring in arrival order.
					for i := 0; i < len(ring); i++ {
						acc, err = f.step(ctx, acc, ring[(ringStart+i)%len(ring)])
						if err != nil {
							return Stop[B](), err
						}
					}
					b, err := f.extract(ctx, acc)
					if err != nil {
						return Stop[B](), err
					}
					return Yield(b, groupState{done: true}), nil
				}
				up = next
				consumed = true
				if len(ring) < m {
					ring = append(ring, v)
					winHash = winHash*krBase + elemHash(v)
				} else {
					oldest := ring[ringStart]
					acc, err = f.step(ctx, acc, oldest)
					if err != nil {
						return Stop[B](), err
					}
					winHash = (winHash-elemHash(oldest)*krHigh)*krBase + elemHash(v)
					ring[ringStart] = v
					ringStart = (ringStart + 1) % m
				}
				if len(ring) == m && winHash == sepHash && ringEquals() {
					b, err := f.extract(ctx, acc)
					if err != nil {
						return Stop[B](), err
					}
					return Yield(b, groupState{up: up}), nil
				}
			}
		},
		state: groupState{up: s.state},
	}
}
