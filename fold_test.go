// Copyright (c) 2026 The streamly authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package streamly_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/adithyaov/streamly"
	"github.com/emirpasic/gods/utils"
)

func TestSumFold(t *testing.T) {
	got, err := streamly.FoldStream(context.Background(), streamly.SumFold[int](), streamly.EnumerateFromTo(1, 100))
	if err != nil {
		t.Fatalf("FoldStream: %v", err)
	}
	if got != 5050 {
		t.Fatalf("got %d, want 5050", got)
	}
}

func TestLengthFold(t *testing.T) {
	got, err := streamly.FoldStream(context.Background(), streamly.LengthFold[string](), streamly.FromSlice([]string{"a", "b", "c"}))
	if err != nil {
		t.Fatalf("FoldStream: %v", err)
	}
	if got != 3 {
		t.Fatalf("got %d, want 3", got)
	}
}

func TestLastFold(t *testing.T) {
	ctx := context.Background()
	got, err := streamly.FoldStream(ctx, streamly.LastFold[int](), streamly.FromSlice([]int{1, 2, 3}))
	if err != nil {
		t.Fatalf("FoldStream: %v", err)
	}
	if !got.Ok || got.Value != 3 {
		t.Fatalf("got %+v, want {3 true}", got)
	}
	got, err = streamly.FoldStream(ctx, streamly.LastFold[int](), streamly.Nil[int]())
	if err != nil {
		t.Fatalf("FoldStream: %v", err)
	}
	if got.Ok {
		t.Fatalf("got %+v, want absent", got)
	}
}

func TestTeeWithSinglePass(t *testing.T) {
	// Sum and count over one traversal of an effectful source. The source
	// must be pulled exactly once per element even though two folds consume.
	pulls := 0
	src := streamly.UnfoldrM(1, func(_ context.Context, n int) (int, int, bool, error) {
		if n > 5 {
			return 0, 0, false, nil
		}
		pulls++
		return n, n + 1, true, nil
	})
	mean := streamly.TeeWith(
		func(sum int, count int) float64 { return float64(sum) / float64(count) },
		streamly.SumFold[int](),
		streamly.LengthFold[int](),
	)
	got, err := streamly.FoldStream(context.Background(), mean, src)
	if err != nil {
		t.Fatalf("FoldStream: %v", err)
	}
	if got != 3.0 {
		t.Fatalf("got %v, want 3.0", got)
	}
	if pulls != 5 {
		t.Fatalf("pulls = %d, want 5", pulls)
	}
}

func TestMapFold(t *testing.T) {
	double := streamly.MapFold(streamly.SumFold[int](), func(n int) int { return n * 2 })
	got, err := streamly.FoldStream(context.Background(), double, streamly.FromSlice([]int{1, 2, 3}))
	if err != nil {
		t.Fatalf("FoldStream: %v", err)
	}
	if got != 12 {
		t.Fatalf("got %d, want 12", got)
	}
}

func TestFoldReusableAcrossRuns(t *testing.T) {
	ctx := context.Background()
	f := streamly.ToSliceFold[int]()
	a, err := streamly.FoldStream(ctx, f, streamly.FromSlice([]int{1, 2}))
	if err != nil {
		t.Fatalf("FoldStream: %v", err)
	}
	b, err := streamly.FoldStream(ctx, f, streamly.FromSlice([]int{3}))
	if err != nil {
		t.Fatalf("FoldStream: %v", err)
	}
	if !reflect.DeepEqual(a, []int{1, 2}) || !reflect.DeepEqual(b, []int{3}) {
		t.Fatalf("runs shared an accumulator: %v, %v", a, b)
	}
}

func TestToSortedCounts(t *testing.T) {
	words := streamly.FromSlice([]string{"pear", "apple", "pear", "fig", "pear", "apple"})
	counts := streamly.ToSortedCounts[string](utils.StringComparator, func(w string) interface{} { return w })
	m, err := streamly.FoldStream(context.Background(), counts, words)
	if err != nil {
		t.Fatalf("FoldStream: %v", err)
	}
	if !reflect.DeepEqual(m.Keys(), []interface{}{"apple", "fig", "pear"}) {
		t.Fatalf("keys = %v, want sorted [apple fig pear]", m.Keys())
	}
	if n, _ := m.Get("pear"); n != 3 {
		t.Fatalf("pear count = %v, want 3", n)
	}
	if n, _ := m.Get("fig"); n != 1 {
		t.Fatalf("fig count = %v, want 1", n)
	}
}

func TestParseStreamEarlyExit(t *testing.T) {
	// Sum until the running total passes 10; input after that must not be
	// consumed at all.
	pulls := 0
	src := streamly.UnfoldrM(1, func(_ context.Context, n int) (int, int, bool, error) {
		pulls++
		return n, n + 1, true, nil // infinite
	})
	sumTo := streamly.NewParse(
		func(context.Context) (int, error) { return 0, nil },
		func(_ context.Context, acc int, in int) (streamly.ParseStep[int], error) {
			acc += in
			if acc > 10 {
				return streamly.Done(acc), nil
			}
			return streamly.Partial[int](acc), nil
		},
		func(_ context.Context, acc int) (int, error) { return acc, nil },
	)
	got, err := streamly.ParseStream(context.Background(), sumTo, src)
	if err != nil {
		t.Fatalf("ParseStream: %v", err)
	}
	if got != 15 { // 1+2+3+4+5
		t.Fatalf("got %d, want 15", got)
	}
	if pulls != 5 {
		t.Fatalf("pulls = %d, want 5", pulls)
	}
}

func TestParseStreamExhausted(t *testing.T) {
	sumTo := streamly.NewParse(
		func(context.Context) (int, error) { return 0, nil },
		func(_ context.Context, acc int, in int) (streamly.ParseStep[int], error) {
			return streamly.Partial[int](acc + in), nil
		},
		func(_ context.Context, acc int) (int, error) { return acc, nil },
	)
	got, err := streamly.ParseStream(context.Background(), sumTo, streamly.FromSlice([]int{1, 2, 3}))
	if err != nil {
		t.Fatalf("ParseStream: %v", err)
	}
	if got != 6 {
		t.Fatalf("got %d, want 6", got)
	}
}

func TestParseStreamStepError(t *testing.T) {
	boom := errors.New("boom")
	p := streamly.NewParse(
		func(context.Context) (struct{}, error) { return struct{}{}, nil },
		func(context.Context, struct{}, int) (streamly.ParseStep[int], error) {
			return streamly.ParseStep[int]{}, boom
		},
		func(context.Context, struct{}) (int, error) { return 0, nil },
	)
	_, err := streamly.ParseStream(context.Background(), p, streamly.FromSlice([]int{1}))
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
}
