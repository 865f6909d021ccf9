// Copyright (c) 2026 The streamly authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package streamly_test

import (
	"reflect"
	"testing"

	"github.com/adithyaov/streamly"
)

func TestConcatMap(t *testing.T) {
	s := streamly.ConcatMap(streamly.FromSlice([]int{1, 2, 3}), func(n int) streamly.Stream[int] {
		return streamly.Replicate(n, n)
	})
	got := collect(t, s)
	if !reflect.DeepEqual(got, []int{1, 2, 2, 3, 3, 3}) {
		t.Fatalf("got %v", got)
	}
}

func TestConcatMapEmptyInners(t *testing.T) {
	s := streamly.ConcatMap(streamly.FromSlice([]int{1, 2, 3}), func(n int) streamly.Stream[int] {
		if n == 2 {
			return streamly.Single(n)
		}
		return streamly.Nil[int]()
	})
	got := collect(t, s)
	if !reflect.DeepEqual(got, []int{2}) {
		t.Fatalf("got %v, want [2]", got)
	}
}

func TestConcatArrays(t *testing.T) {
	arrays := streamly.FromSlice([]*streamly.Array[int]{
		streamly.ArrayFromSlice([]int{1, 2}),
		streamly.ArrayFromSlice([]int{}),
		streamly.ArrayFromSlice([]int{3}),
	})
	got := collect(t, streamly.ConcatArrays(arrays))
	if !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Fatalf("got %v, want [1 2 3]", got)
	}
}

func TestGroupsOf(t *testing.T) {
	s := streamly.GroupsOf(streamly.EnumerateFromTo(1, 10), 3, streamly.SumFold[int]())
	got := collect(t, s)
	if !reflect.DeepEqual(got, []int{6, 15, 24, 10}) {
		t.Fatalf("got %v, want [6 15 24 10] (partial final group folded)", got)
	}
}

func TestGroupsOfExactMultiple(t *testing.T) {
	s := streamly.GroupsOf(streamly.EnumerateFromTo(1, 6), 3, streamly.ToSliceFold[int]())
	got := collect(t, s)
	want := [][]int{{1, 2, 3}, {4, 5, 6}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v (no trailing empty group)", got, want)
	}
}

func TestGroupsOfEmptySource(t *testing.T) {
	got := collect(t, streamly.GroupsOf(streamly.Nil[int](), 3, streamly.SumFold[int]()))
	if len(got) != 0 {
		t.Fatalf("got %v, want no groups", got)
	}
}

func TestGroupsOfInvalidSizePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("want panic for group size 0")
		}
	}()
	streamly.GroupsOf(streamly.Nil[int](), 0, streamly.SumFold[int]())
}

func TestSplitWhen(t *testing.T) {
	s := streamly.FromSlice([]int{1, 2, 0, 3, 4, 0, 5})
	got := collect(t, streamly.SplitWhen(s, func(v int) bool { return v == 0 }, streamly.ToSliceFold[int]()))
	want := [][]int{{1, 2}, {3, 4}, {5}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSplitWhenTrailingSeparator(t *testing.T) {
	s := streamly.FromSlice([]int{1, 0, 2, 0})
	got := collect(t, streamly.SplitWhen(s, func(v int) bool { return v == 0 }, streamly.ToSliceFold[int]()))
	want := [][]int{{1}, {2}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v (no empty final segment)", got, want)
	}
}

func TestSplitWhenAdjacentSeparators(t *testing.T) {
	s := streamly.FromSlice([]int{0, 1, 0, 0, 2})
	got := collect(t, streamly.SplitWhen(s, func(v int) bool { return v == 0 }, streamly.LengthFold[int]()))
	if !reflect.DeepEqual(got, []int{0, 1, 0, 1}) {
		t.Fatalf("got %v, want [0 1 0 1] (adjacent separators keep empty segments)", got)
	}
}

func TestSplitWhenEmptySource(t *testing.T) {
	got := collect(t, streamly.SplitWhen(streamly.Nil[int](), func(v int) bool { return v == 0 }, streamly.LengthFold[int]()))
	if len(got) != 0 {
		t.Fatalf("got %v, want no segments", got)
	}
}

func TestWordsWhen(t *testing.T) {
	s := streamly.FromSlice([]byte(" a  bc  "))
	got := collect(t, streamly.WordsWhen(s, func(b byte) bool { return b == ' ' }, streamly.ToSliceFold[byte]()))
	want := [][]byte{[]byte("a"), []byte("bc")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q (no empty words)", got, want)
	}
}

func TestSplitOnSeqSingle(t *testing.T) {
	s := streamly.FromSlice([]int{1, 2, 0, 3, 4, 0, 5})
	got := collect(t, streamly.SplitOnSeq(s, []int{0}, streamly.ToSliceFold[int]()))
	want := [][]int{{1, 2}, {3, 4}, {5}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSplitOnSeqEmptySeparator(t *testing.T) {
	s := streamly.FromSlice([]int{1, 2, 3})
	got := collect(t, streamly.SplitOnSeq(s, nil, streamly.ToSliceFold[int]()))
	want := [][]int{{1, 2, 3}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want the whole input as one segment", got)
	}
	if got := collect(t, streamly.SplitOnSeq(streamly.Nil[int](), nil, streamly.ToSliceFold[int]())); len(got) != 0 {
		t.Fatalf("empty source: got %v, want no segments", got)
	}
}

func TestSplitOnSeqMulti(t *testing.T) {
	s := streamly.FromSlice([]byte("ab::cd::e"))
	got := collect(t, streamly.SplitOnSeq(s, []byte("::"), streamly.ToSliceFold[byte]()))
	want := [][]byte{[]byte("ab"), []byte("cd"), []byte("e")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSplitOnSeqMultiTrailingSeparator(t *testing.T) {
	s := streamly.FromSlice([]byte("ab::"))
	got := collect(t, streamly.SplitOnSeq(s, []byte("::"), streamly.ToSliceFold[byte]()))
	want := [][]byte{[]byte("ab")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q (no empty final segment)", got, want)
	}
}

func TestSplitOnSeqMultiLeadingSeparator(t *testing.T) {
	s := streamly.FromSlice([]byte("::ab"))
	got := collect(t, streamly.SplitOnSeq(s, []byte("::"), streamly.ToSliceFold[byte]()))
	want := [][]byte{[]byte(""), []byte("ab")}
	if len(got) != 2 || len(got[0]) != 0 || !reflect.DeepEqual(got[1], want[1]) {
		t.Fatalf("got %q, want leading empty segment then ab", got)
	}
}

func TestSplitOnSeqOverlappingCandidates(t *testing.T) {
	// Matching is leftmost-first: the middle 0 belongs to the first match
	// and cannot combine with the fourth element to form a second one.
	s := streamly.FromSlice([]int{5, 0, 0, 0, 6})
	got := collect(t, streamly.SplitOnSeq(s, []int{0, 0}, streamly.ToSliceFold[int]()))
	want := [][]int{{5}, {0, 6}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSplitOnSeqShorterThanSeparator(t *testing.T) {
	s := streamly.FromSlice([]byte("a"))
	got := collect(t, streamly.SplitOnSeq(s, []byte("::"), streamly.ToSliceFold[byte]()))
	want := [][]byte{[]byte("a")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSplitOnSeqNoMatch(t *testing.T) {
	s := streamly.FromSlice([]byte("abcdef"))
	got := collect(t, streamly.SplitOnSeq(s, []byte("zz"), streamly.ToSliceFold[byte]()))
	want := [][]byte{[]byte("abcdef")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want the whole input", got)
	}
}
