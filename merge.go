// Copyright (c) 2026 The streamly authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package streamly

import "context"

// Merge, zip, and pairwise comparison. Merge and zip share the same state
// shape: both upstream states plus one pending lookahead slot per side;
// nothing is combined until both slots are full.

type mergeState[T any] struct {
	left, right         Erased
	leftDone, rightDone bool
	leftVal, rightVal   Maybe[T]
}

// MergeByM merges two streams by an effectful comparator. If both inputs
// are sorted per the comparator, the output is their sorted union with
// multiplicity. The comparator's non-greater element is emitted first and
// the consumed side is re-polled next round; on a tie the left element is
// emitted and the right is absorbed into the next round. Pinned behavior:
// only a strictly-greater left element lets the right go first.
func MergeByM[T any](l, r Stream[T], compare func(ctx context.Context, a, b T) (int, error)) Stream[T] {
	return Stream[T]{
		step: func(ctx context.Context, state Erased) (Step[T], error) {
			cur := state.(mergeState[T])
			if !cur.leftVal.Ok && !cur.leftDone {
				v, ok, next, err := pullOne(ctx, l.step, cur.left)
				if err != nil {
					return Stop[T](), err
				}
				cur.left, cur.leftVal, cur.leftDone = next, Maybe[T]{Value: v, Ok: ok}, !ok
			}
			if !cur.rightVal.Ok && !cur.rightDone {
				v, ok, next, err := pullOne(ctx, r.step, cur.right)
				if err != nil {
					return Stop[T](), err
				}
				cur.right, cur.rightVal, cur.rightDone = next, Maybe[T]{Value: v, Ok: ok}, !ok
			}
			switch {
			case cur.leftVal.Ok && cur.rightVal.Ok:
				c, err := compare(ctx, cur.leftVal.Value, cur.rightVal.Value)
				if err != nil {
					return Stop[T](), err
				}
				if c > 0 {
					v := cur.rightVal.Value
					cur.rightVal = Maybe[T]{}
					return Yield(v, cur), nil
				}
				v := cur.leftVal.Value
				cur.leftVal = Maybe[T]{}
				return Yield(v, cur), nil
			case cur.leftVal.Ok:
				v := cur.leftVal.Value
				cur.leftVal = Maybe[T]{}
				return Yield(v, cur), nil
			case cur.rightVal.Ok:
				v := cur.rightVal.Value
				cur.rightVal = Maybe[T]{}
				return Yield(v, cur), nil
			default:
				return Stop[T](), nil
			}
		},
		state: mergeState[T]{left: l.state, right: r.state},
	}
}

// MergeBy is MergeByM with a pure comparator.
func MergeBy[T any](l, r Stream[T], compare func(a, b T) int) Stream[T] {
	return MergeByM(l, r, func(_ context.Context, a, b T) (int, error) {
		return compare(a, b), nil
	})
}

type zipState[A, B any] struct {
	left, right         Erased
	leftDone, rightDone bool
	leftVal             Maybe[A]
	rightVal            Maybe[B]
}

// ZipWithM combines elements pairwise with an effectful function, stopping
// at the shorter input.
func ZipWithM[A, B, C any](l Stream[A], r Stream[B], f func(ctx context.Context, a A, b B) (C, error)) Stream[C] {
	return Stream[C]{
		step: func(ctx context.Context, state Erased) (Step[C], error) {
			cur := state.(zipState[A, B])
			if !cur.leftVal.Ok && !cur.leftDone {
				v, ok, next, err := pullOne(ctx, l.step, cur.left)
				if err != nil {
					return Stop[C](), err
				}
				cur.left, cur.leftVal, cur.leftDone = next, Maybe[A]{Value: v, Ok: ok}, !ok
			}
			if cur.leftDone {
				return Stop[C](), nil
			}
			if !cur.rightVal.Ok && !cur.rightDone {
				v, ok, next, err := pullOne(ctx, r.step, cur.right)
				if err != nil {
					return Stop[C](), err
				}
				cur.right, cur.rightVal, cur.rightDone = next, Maybe[B]{Value: v, Ok: ok}, !ok
			}
			if cur.rightDone {
				return Stop[C](), nil
			}
			c, err := f(ctx, cur.leftVal.Value, cur.rightVal.Value)
			if err != nil {
				return Stop[C](), err
			}
			cur.leftVal = Maybe[A]{}
			cur.rightVal = Maybe[B]{}
			return Yield(c, cur), nil
		},
		state: zipState[A, B]{left: l.state, right: r.state},
	}
}

// ZipWith combines elements pairwise with a pure function.
func ZipWith[A, B, C any](l Stream[A], r Stream[B], f func(a A, b B) C) Stream[C] {
	return ZipWithM(l, r, func(_ context.Context, a A, b B) (C, error) {
		return f(a, b), nil
	})
}

// Zip pairs elements positionally.
func Zip[A, B any](l Stream[A], r Stream[B]) Stream[Pair[A, B]] {
	return ZipWith(l, r, func(a A, b B) Pair[A, B] {
		return Pair[A, B]{Fst: a, Snd: b}
	})
}

// EqBy reports whether two streams yield equal sequences under eq,
// length included. Consumption stops at the first difference.
func EqBy[A, B any](ctx context.Context, l Stream[A], r Stream[B], eq func(a A, b B) bool) (bool, error) {
	ls, rs := l.state, r.state
	for {
		a, aok, lNext, err := pullOne(ctx, l.step, ls)
		if err != nil {
			return false, err
		}
		b, bok, rNext, err := pullOne(ctx, r.step, rs)
		if err != nil {
			return false, err
		}
		if !aok || !bok {
			return aok == bok, nil
		}
		if !eq(a, b) {
			return false, nil
		}
		ls, rs = lNext, rNext
	}
}

// CmpBy compares two streams lexicographically under compare: the first
// non-equal pair decides; otherwise the shorter stream compares less.
// Returns -1, 0, or +1.
func CmpBy[T any](ctx context.Context, l, r Stream[T], compare func(a, b T) int) (int, error) {
	ls, rs := l.state, r.state
	for {
		a, aok, lNext, err := pullOne(ctx, l.step, ls)
		if err != nil {
			return 0, err
		}
		b, bok, rNext, err := pullOne(ctx, r.step, rs)
		if err != nil {
			return 0, err
		}
		switch {
		case !aok && !bok:
			return 0, nil
		case !aok:
			return -1, nil
		case !bok:
			return 1, nil
		}
		if c := compare(a, b); c != 0 {
			if c < 0 {
				return -1, nil
			}
			return 1, nil
		}
		ls, rs = lNext, rNext
	}
}

// IsPrefixOf reports whether prefix's sequence starts s's sequence under eq.
// Consumption stops as soon as the answer is known.
func IsPrefixOf[T any](ctx context.Context, prefix, s Stream[T], eq func(a, b T) bool) (bool, error) {
	ps, ss := prefix.state, s.state
	for {
		p, pok, pNext, err := pullOne(ctx, prefix.step, ps)
		if err != nil {
			return false, err
		}
		if !pok {
			return true, nil
		}
		v, vok, sNext, err := pullOne(ctx, s.step, ss)
		if err != nil {
			return false, err
		}
		if !vok || !eq(p, v) {
			return false, nil
		}
		ps, ss = pNext, sNext
	}
}

// IsSubsequenceOf reports whether needle's elements occur in order, not
// necessarily adjacent, within haystack. It differs from [IsPrefixOf] only
// in that a mismatch re-polls the haystack side instead of failing.
func IsSubsequenceOf[T any](ctx context.Context, needle, haystack Stream[T], eq func(a, b T) bool) (bool, error) {
	ns, hs := needle.state, haystack.state
	for {
		n, nok, nNext, err := pullOne(ctx, needle.step, ns)
		if err != nil {
			return false, err
		}
		if !nok {
			return true, nil
		}
		for {
			v, vok, hNext, err := pullOne(ctx, haystack.step, hs)
			if err != nil {
				return false, err
			}
			if !vok {
				return false, nil
			}
			hs = hNext
			if eq(n, v) {
				break
			}
		}
		ns = nNext
	}
}

// StripPrefix removes prefix's sequence from the front of s, returning the
// remainder. ok=false means prefix did not match; absence, not an error.
func StripPrefix[T any](ctx context.Context, prefix, s Stream[T], eq func(a, b T) bool) (Stream[T], bool, error) {
	ps, ss := prefix.state, s.state
	for {
		p, pok, pNext, err := pullOne(ctx, prefix.step, ps)
		if err != nil {
			return Stream[T]{}, false, err
		}
		if !pok {
			return Stream[T]{step: s.step, state: ss}, true, nil
		}
		v, vok, sNext, err := pullOne(ctx, s.step, ss)
		if err != nil {
			return Stream[T]{}, false, err
		}
		if !vok || !eq(p, v) {
			return Stream[T]{}, false, nil
		}
		ps, ss = pNext, sNext
	}
}
