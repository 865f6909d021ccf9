// Copyright (c) 2026 The streamly authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package streamly

import "context"

// Array is a contiguous buffer of elements addressed by integer cursors.
// The raw-pointer walking of the original buffer type is rendered here as
// bounds-checked slice indexing, isolated inside this type; the stream
// engine itself only sees cursors.
//
// An Array is append-only during construction and must be treated as
// immutable once a stream walks it.
type Array[T any] struct {
	buf []T
}

// NewArray allocates an empty array with the given capacity.
func NewArray[T any](capacity int) *Array[T] {
	return &Array[T]{buf: make([]T, 0, capacity)}
}

// ArrayFromSlice wraps xs without copying. The caller gives up ownership.
func ArrayFromSlice[T any](xs []T) *Array[T] {
	return &Array[T]{buf: xs}
}

// Append adds v at the end and returns the receiver.
func (a *Array[T]) Append(v T) *Array[T] {
	a.buf = append(a.buf, v)
	return a
}

// Len returns the number of elements.
func (a *Array[T]) Len() int { return len(a.buf) }

// Index returns the element at position i.
func (a *Array[T]) Index(i int) T { return a.buf[i] }

// Start returns the cursor of the first element.
func (a *Array[T]) Start() int { return 0 }

// End returns the cursor one past the last element. Iteration terminates on
// cursor equality with End, not on length comparison.
func (a *Array[T]) End() int { return len(a.buf) }

// Peek reads the element at a cursor obtained from Start and advanced toward
// End.
func (a *Array[T]) Peek(cursor int) T { return a.buf[cursor] }

// Slice returns the backing slice. The result must not be mutated while any
// stream walks the array.
func (a *Array[T]) Slice() []T { return a.buf }

// FromArray yields the elements of a in order, walking the cursor range
// [Start, End). Termination is cursor equality with End.
func FromArray[T any](a *Array[T]) Stream[T] {
	end := a.End()
	return Stream[T]{
		step: func(_ context.Context, state Erased) (Step[T], error) {
			cursor := state.(int)
			if cursor == end {
				return Stop[T](), nil
			}
			return Yield(a.Peek(cursor), cursor+1), nil
		},
		state: a.Start(),
	}
}
