// Copyright (c) 2026 The streamly authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package streamly

import (
	"context"
	"fmt"

	"github.com/emirpasic/gods/lists"
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
)

// Adapters for gods containers: external-list generation and a
// comparator-ordered aggregation fold.

// FromList yields the elements of a gods list in index order, pulling one
// cursor position per step. The list stores untyped values; an element that
// is not a T aborts the traversal with an error.
func FromList[T any](l lists.List) Stream[T] {
	return Stream[T]{
		step: func(_ context.Context, state Erased) (Step[T], error) {
			i := state.(int)
			raw, ok := l.Get(i)
			if !ok {
				return Stop[T](), nil
			}
			v, ok := raw.(T)
			if !ok {
				return Stop[T](), fmt.Errorf("streamly: fromList: element %d is %T, not %T", i, raw, v)
			}
			return Yield(v, i+1), nil
		},
		state: 0,
	}
}

// ToSortedCounts is a fold that counts occurrences of each element's key in
// a comparator-ordered tree map. The result maps key → count, iterable in
// comparator order. Each run owns a fresh map.
func ToSortedCounts[T any](comparator utils.Comparator, key func(T) interface{}) Fold[T, *treemap.Map] {
	return NewFold(
		func(context.Context) (*treemap.Map, error) {
			return treemap.NewWith(comparator), nil
		},
		func(_ context.Context, acc *treemap.Map, in T) (*treemap.Map, error) {
			k := key(in)
			if c, ok := acc.Get(k); ok {
				acc.Put(k, c.(int)+1)
			} else {
				acc.Put(k, 1)
			}
			return acc, nil
		},
		func(_ context.Context, acc *treemap.Map) (*treemap.Map, error) {
			return acc, nil
		},
	)
}
