// Copyright (c) 2026 The streamly authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package streamly provides composable pull-based stream processing in Go.
//
// The core type [Stream] represents an ordered sequence of values as an
// explicit state machine: an opaque state value plus a step function that
// advances the machine by one cell, producing [Step] — Yield, Skip, or Stop.
// Chains of operators compose state machines structurally; no effects occur
// until an elimination operator drives the composed machine to completion.
//
// # Design Philosophy
//
// streamly provides:
//   - A direct-style state-machine representation optimized for tight,
//     specialization-friendly driver loops
//   - A composable incremental fold abstraction ([Fold]) for consuming
//     streams without materializing intermediate sequences
//   - A continuation-passing representation ([StreamK]) for operations that
//     the direct style handles poorly — construction, concatenation, deep
//     left-nesting — with explicit conversions between the two
//
// Correctness never depends on the compiler fusing a chain: every operator is
// correct even when each composed stage costs a boxed state value per step.
// Inlining and monomorphization are an optimization opportunity only.
//
// # Step Contract
//
// Every operator defines a private state type and a step function
// (ctx, state) → ([Step], error) satisfying:
//
//   - State transitions are by returning a new state value, never by mutating
//     the previous one in place.
//   - Every reachable state reaches Stop for finite inputs, unless the
//     operator is documented as infinite ([Repeat], [IterateM]).
//   - Skip transitions are finite in a row for any single upstream cell: no
//     operator loops on Skip without consuming more of its upstream. This is
//     the liveness invariant the whole engine depends on.
//
// The context value is threaded read-only through every step call; the core
// never inspects it. Faults returned by a step abort the traversal and
// propagate to the elimination caller uninterpreted.
//
// # Generation
//
//   - [Nil], [Single], [FromSlice], [FromArray], [FromChan], [FromList]
//   - [UnfoldrM], [Unfoldr], [Repeat], [Replicate], [IterateM]
//   - [EnumerateFromTo], [EnumerateFromThenTo] — integral ranges with
//     overflow-avoiding boundary comparison
//   - [EnumerateFromToFloat], [EnumerateFromThenToFloat] — fractional ranges
//     with midpoint boundary inclusion
//   - [FromStreamK] — adapter from the continuation-passing representation
//
// # Transformation
//
//   - [Map], [MapM], [Filter], [FilterM], [Take], [TakeWhile], [TakeWhileM]
//   - [Drop], [DropWhile], [Uniq], [DistinctBy], [Indexed], [Intersperse]
//   - [InsertBy], [DeleteBy] — single-pass three-state machines
//   - [Scanl], [ScanlM], [Postscanl], [PostscanlM], [Prescanl], [ScanxM],
//     [PostscanxM] — one shared stepwise-accumulate machine
//   - [ConcatMap], [ConcatMapM], [ConcatArrays]
//   - [GroupsOf], [SplitWhen], [WordsWhen], [SplitOnSeq] — grouping and
//     splitting, one [Fold] run per segment
//   - [MergeBy], [MergeByM], [ZipWith], [ZipWithM]
//
// # Elimination
//
//   - [Foldl], [FoldlM] — strict left reduction, the workhorse
//   - [FoldrM] — right reduction with a lazy rest-thunk, used only where
//     short-circuiting must avoid consuming the full sequence
//   - [FoldStream] — drive a [Fold] over a stream
//   - [ParseStream] — drive a [Parse], stopping the moment it reports Done
//   - [Drain], [ToSlice], [ToArray], [Length], [Last], [Head], [Null],
//     [Index], [Any], [All], [Elem], [NotElem], [Find], [Lookup]
//   - [Maximum], [Minimum], [MaximumBy], [MinimumBy] — earliest element wins
//     on comparator ties
//   - [EqBy], [CmpBy], [IsPrefixOf], [IsSubsequenceOf], [StripPrefix]
//
// # Folds
//
// [Fold] is an existential triple (initial, step, extract) over a type-erased
// accumulator. extract is called at most once per run, after zero or more
// steps following one initial. Folds compose applicatively: [TeeWith] pairs
// two folds so a single input pass computes both aggregates.
//
// [Parse] is the early-terminating variant: its step returns [ParseStep],
// either Partial (keep consuming) or Done (stop immediately with a result).
//
// # Absence Versus Failure
//
// Queries that can come up empty — [Head], [Last], [Index], [Maximum],
// [Find], [Lookup], [StripPrefix] — report absence in-band with an ok bool,
// never an error. Errors are reserved for faults raised by user-supplied
// effectful functions. Programmer-contract violations (a non-positive group
// size, a negative replicate count) panic.
//
// # Bridge: ToStreamK / FromStreamK
//
// [StreamK] represents the same sequence concept with three continuations
// (yield-and-continue, yield-single-and-stop, stop) instead of an explicit
// state value. Concatenation and deep recursion are cheap in StreamK;
// element-wise transformation is cheap in Stream. The representations are
// unified only by an equivalence law:
//
//	FromStreamK(ToStreamK(s)) ≡ s
//	ToStreamK(FromStreamK(k)) ≡ k
//
// as observable sequences — same values, same effect order. Conversions are
// explicit; call sites choose representations deliberately.
//
// # Concurrent Helpers
//
// The engine itself is single-threaded, synchronous, cooperative pull.
// [ParMapM] and [MergeMapM] sit at the boundary to a concurrent runtime:
// worker-pool mapping with source order preserved, and N-way merge onto a
// channel-backed stream.
//
// # Example
//
//	ctx := context.Background()
//	s := streamly.Map(
//		streamly.Filter(streamly.EnumerateFromTo(1, 100), func(x int) bool {
//			return x%2 == 0
//		}),
//		func(x int) int { return x * x },
//	)
//	sum, err := streamly.Foldl(ctx, s, 0, func(acc, x int) int { return acc + x })
package streamly
