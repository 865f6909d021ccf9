// Copyright (c) 2026 The streamly authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package streamly_test

import (
	"math/rand/v2"
	"reflect"
	"slices"
	"sort"
	"testing"

	"github.com/adithyaov/streamly"
)

const propertyN = 200

// randSlice returns a random int slice of length [0, 32] with elements in
// [-50, 50]. The narrow element range makes duplicates likely, which is
// what exercises the tie and dedup paths.
func randSlice(rng *rand.Rand) []int {
	n := rng.IntN(33)
	xs := make([]int, n)
	for i := range xs {
		xs[i] = rng.IntN(101) - 50
	}
	return xs
}

func equalOrBothEmpty(a, b []int) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	return reflect.DeepEqual(a, b)
}

// TestPropertyRoundTrip: FromStreamK(ToStreamK(s)) ≡ s
func TestPropertyRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	for range propertyN {
		xs := randSlice(rng)
		got := collect(t, streamly.FromStreamK(streamly.ToStreamK(streamly.FromSlice(xs))))
		if !equalOrBothEmpty(got, xs) {
			t.Fatalf("round trip of %v gave %v", xs, got)
		}
	}
}

// TestPropertyTakeDropComplement: Take(s, n) ++ Drop(s, n) ≡ s
func TestPropertyTakeDropComplement(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	for range propertyN {
		xs := randSlice(rng)
		n := rng.IntN(40)
		front := collect(t, streamly.Take(streamly.FromSlice(xs), n))
		back := collect(t, streamly.Drop(streamly.FromSlice(xs), n))
		if !equalOrBothEmpty(append(front, back...), xs) {
			t.Fatalf("take %d ++ drop %d of %v gave %v ++ %v", n, n, xs, front, back)
		}
	}
}

// TestPropertyUniqIdempotent: Uniq(Uniq(s)) ≡ Uniq(s)
func TestPropertyUniqIdempotent(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	for range propertyN {
		xs := randSlice(rng)
		once := collect(t, streamly.Uniq(streamly.FromSlice(xs)))
		twice := collect(t, streamly.Uniq(streamly.Uniq(streamly.FromSlice(xs))))
		if !equalOrBothEmpty(once, twice) {
			t.Fatalf("uniq not idempotent on %v: %v vs %v", xs, once, twice)
		}
	}
}

// TestPropertyMergeSorted: merging two sorted streams yields their sorted
// multiset union.
func TestPropertyMergeSorted(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	for range propertyN {
		a := randSlice(rng)
		b := randSlice(rng)
		sort.Ints(a)
		sort.Ints(b)
		got := collect(t, streamly.MergeBy(streamly.FromSlice(a), streamly.FromSlice(b), cmpInt))
		want := append(append([]int{}, a...), b...)
		sort.Ints(want)
		if !equalOrBothEmpty(got, want) {
			t.Fatalf("merge of %v and %v gave %v, want %v", a, b, got, want)
		}
	}
}

// TestPropertyInsertDeleteIdentity: on sorted input, DeleteBy(InsertBy(s, x)) ≡ s
func TestPropertyInsertDeleteIdentity(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	eq := func(a, b int) bool { return a == b }
	for range propertyN {
		xs := randSlice(rng)
		sort.Ints(xs)
		x := rng.IntN(101) - 50
		got := collect(t, streamly.DeleteBy(streamly.InsertBy(streamly.FromSlice(xs), cmpInt, x), eq, x))
		if !equalOrBothEmpty(got, xs) {
			t.Fatalf("insert then delete %d over %v gave %v", x, xs, got)
		}
	}
}

// TestPropertyScanLastEqualsFold: the final element of Scanl equals the
// Foldl result over the same input.
func TestPropertyScanLastEqualsFold(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	for range propertyN {
		xs := randSlice(rng)
		scanned := collect(t, streamly.Scanl(streamly.FromSlice(xs), 0, func(acc, v int) int { return acc + v }))
		folded, err := streamly.Foldl(t.Context(), streamly.FromSlice(xs), 0, func(acc, v int) int { return acc + v })
		if err != nil {
			t.Fatalf("Foldl: %v", err)
		}
		if scanned[len(scanned)-1] != folded {
			t.Fatalf("scan last %d != fold %d on %v", scanned[len(scanned)-1], folded, xs)
		}
	}
}

// TestPropertySplitJoin: splitting on a separator and rejoining with it
// reconstructs the input when the input has no trailing separator.
func TestPropertySplitJoin(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	const sep = 0 // within randSlice's range, so separators actually occur
	for range propertyN {
		xs := randSlice(rng)
		// Strip trailing separators so the suffix convention cannot drop
		// information.
		for len(xs) > 0 && xs[len(xs)-1] == sep {
			xs = xs[:len(xs)-1]
		}
		segs := collect(t, streamly.SplitWhen(streamly.FromSlice(xs), func(v int) bool { return v == sep }, streamly.ToSliceFold[int]()))
		var joined []int
		for i, seg := range segs {
			if i > 0 {
				joined = append(joined, sep)
			}
			joined = append(joined, seg...)
		}
		if !equalOrBothEmpty(joined, xs) {
			t.Fatalf("split/join of %v gave %v", xs, joined)
		}
	}
}

// TestPropertyDistinctKeepsFirstOccurrences: DistinctBy with the identity
// key equals a stable manual dedup.
func TestPropertyDistinctKeepsFirstOccurrences(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	for range propertyN {
		xs := randSlice(rng)
		got := collect(t, streamly.DistinctBy(streamly.FromSlice(xs), func(v int) uint64 { return uint64(int64(v)) }))
		var want []int
		for _, v := range xs {
			if !slices.Contains(want, v) {
				want = append(want, v)
			}
		}
		if !equalOrBothEmpty(got, want) {
			t.Fatalf("distinct of %v gave %v, want %v", xs, got, want)
		}
	}
}

// TestPropertyAppendAssociative: Append(Append(a, b), c) ≡ Append(a, Append(b, c))
func TestPropertyAppendAssociative(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	for range propertyN {
		a, b, c := randSlice(rng), randSlice(rng), randSlice(rng)
		left := collect(t, streamly.Append(streamly.Append(streamly.FromSlice(a), streamly.FromSlice(b)), streamly.FromSlice(c)))
		right := collect(t, streamly.Append(streamly.FromSlice(a), streamly.Append(streamly.FromSlice(b), streamly.FromSlice(c))))
		if !equalOrBothEmpty(left, right) {
			t.Fatalf("append not associative: %v vs %v", left, right)
		}
	}
}
