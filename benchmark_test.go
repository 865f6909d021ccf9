// Copyright (c) 2026 The streamly authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package streamly_test

import (
	"context"
	"testing"

	"github.com/adithyaov/streamly"
)

// BenchmarkMapFilterDrain measures the fused map/filter pipeline cost per
// element.
func BenchmarkMapFilterDrain(b *testing.B) {
	ctx := context.Background()
	for b.Loop() {
		s := streamly.Filter(
			streamly.Map(streamly.EnumerateFromTo(1, 1000), func(v int) int { return v * 2 }),
			func(v int) bool { return v%3 != 0 },
		)
		_ = streamly.Drain(ctx, s)
	}
}

// BenchmarkSumFold measures the fold driver against a plain enumeration.
func BenchmarkSumFold(b *testing.B) {
	ctx := context.Background()
	f := streamly.SumFold[int]()
	for b.Loop() {
		_, _ = streamly.FoldStream(ctx, f, streamly.EnumerateFromTo(1, 1000))
	}
}

// BenchmarkTeeWith measures the applicative fold product overhead over two
// plain folds.
func BenchmarkTeeWith(b *testing.B) {
	ctx := context.Background()
	f := streamly.TeeWith(
		func(s, n int) int { return s + n },
		streamly.SumFold[int](),
		streamly.LengthFold[int](),
	)
	for b.Loop() {
		_, _ = streamly.FoldStream(ctx, f, streamly.EnumerateFromTo(1, 1000))
	}
}

// BenchmarkSplitOnSeqKarpRabin measures the rolling-hash splitter on a
// byte stream with sparse separators.
func BenchmarkSplitOnSeqKarpRabin(b *testing.B) {
	ctx := context.Background()
	data := make([]byte, 4096)
	for i := range data {
		data[i] = byte(i % 251)
	}
	sep := []byte{13, 10}
	for b.Loop() {
		_ = streamly.Drain(ctx, streamly.SplitOnSeq(streamly.FromSlice(data), sep, streamly.LengthFold[byte]()))
	}
}

// BenchmarkBridgeRoundTrip measures the conversion overhead of going
// through the CPS representation and back.
func BenchmarkBridgeRoundTrip(b *testing.B) {
	ctx := context.Background()
	for b.Loop() {
		s := streamly.FromStreamK(streamly.ToStreamK(streamly.EnumerateFromTo(1, 1000)))
		_ = streamly.Drain(ctx, s)
	}
}

// BenchmarkAppendKLeftNested measures deep left-nested CPS concatenation,
// the case the direct representation cannot do in linear time.
func BenchmarkAppendKLeftNested(b *testing.B) {
	ctx := context.Background()
	for b.Loop() {
		k := streamly.NilK[int]()
		for i := 0; i < 256; i++ {
			k = streamly.AppendK(k, streamly.SingleK(i))
		}
		_ = streamly.Drain(ctx, streamly.FromStreamK(k))
	}
}
