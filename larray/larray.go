// Package larray provides LargeArray, a typed array addressed by
// 64-bit signed indexes. It is a thin facade over the segstore
// substrate: every element access translates the logical index and all
// bulk work is delegated to the storage, so the array looks contiguous
// regardless of how many segments back it.
//
// A LargeArray exclusively owns its storage; nothing else aliases it.
// It is not safe for concurrent mutation. ParallelSort is internally
// parallelized but its workers never overlap writes.
package larray

import (
	"fmt"

	"github.com/oda/largecoll/segstore"
)

// LargeArray is a 64-bit-indexed array of T.
type LargeArray[T any] struct {
	store *segstore.Storage[T]
}

// New allocates an array of the given capacity, zero-valued.
func New[T any](capacity int64) (*LargeArray[T], error) {
	s, err := segstore.New[T](capacity)
	if err != nil {
		return nil, err
	}
	return &LargeArray[T]{store: s}, nil
}

// Count returns the number of elements.
func (a *LargeArray[T]) Count() int64 { return a.store.Count() }

// Get returns element i. Panics if i is outside [0, Count), like a
// slice index.
func (a *LargeArray[T]) Get(i int64) T { return a.store.Get(i) }

// Set stores v at index i. Panics if i is outside [0, Count).
func (a *LargeArray[T]) Set(i int64, v T) { a.store.Set(i, v) }

// Update applies fn to element i in place.
func (a *LargeArray[T]) Update(i int64, fn func(*T)) { a.store.Update(i, fn) }

// Resize grows or shrinks the array, preserving all retained elements.
func (a *LargeArray[T]) Resize(capacity int64) error { return a.store.Resize(capacity) }

// Swap exchanges elements i and j. Panics when either index is out of
// range; swapping an index with itself is a no-op.
func (a *LargeArray[T]) Swap(i, j int64) {
	vi, vj := a.store.Get(i), a.store.Get(j)
	if i == j {
		return
	}
	a.store.Set(i, vj)
	a.store.Set(j, vi)
}

// CopyTo copies count elements into dst, which may be the same array.
// Overlapping ranges within one array copy safely in either direction.
func (a *LargeArray[T]) CopyTo(dst *LargeArray[T], srcOffset, dstOffset, count int64) error {
	return a.store.CopyTo(dst.store, srcOffset, dstOffset, count)
}

// CopyToSlice copies len(dst) elements starting at srcOffset into dst.
func (a *LargeArray[T]) CopyToSlice(dst []T, srcOffset int64) error {
	return a.store.CopyToSlice(dst, srcOffset)
}

// CopyFromSlice copies all of src into the array starting at dstOffset.
func (a *LargeArray[T]) CopyFromSlice(src []T, dstOffset int64) error {
	return a.store.CopyFromSlice(src, dstOffset)
}

// DoForEach applies fn to every element in ascending index order.
func (a *LargeArray[T]) DoForEach(fn func(T)) error {
	return a.store.DoForEach(0, a.Count(), fn)
}

// DoForEachRange applies fn to the elements of the range in ascending
// index order.
func (a *LargeArray[T]) DoForEachRange(offset, count int64, fn func(T)) error {
	return a.store.DoForEach(offset, count, fn)
}

// DoForEachRef applies fn to every element in place.
func (a *LargeArray[T]) DoForEachRef(fn func(*T)) error {
	return a.store.DoForEachRef(0, a.Count(), fn)
}

// DoForEachRefRange applies fn in place over the given range.
func (a *LargeArray[T]) DoForEachRefRange(offset, count int64, fn func(*T)) error {
	return a.store.DoForEachRef(offset, count, fn)
}

// checkRange mirrors the substrate's validation for operations that do
// their own range splitting before delegating.
func (a *LargeArray[T]) checkRange(offset, count int64) error {
	if offset < 0 || count < 0 || offset > a.Count()-count {
		return fmt.Errorf("%w: offset %d count %d with count %d",
			segstore.ErrRange, offset, count, a.Count())
	}
	return nil
}
