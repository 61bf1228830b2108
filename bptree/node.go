package bptree

import (
	"github.com/oda/largecoll"
	"github.com/oda/largecoll/larray"
)

// Node entry and child arrays are LargeArrays so node bookkeeping runs
// through the same primitives as every other container: sorted insert
// and removal are a Resize plus an overlap-safe self-copy. Node sizes
// are bounded by the tree order, far below the substrate's limits, so
// the array errors are unreachable and funneled through mustNil.

type node[K, V any] interface {
	// size returns the number of keys in the node.
	size() int64
}

// leaf holds the entries. Leaves form a doubly linked list in
// ascending key order, which range scans walk without re-descending
// the tree.
type leaf[K, V any] struct {
	keys *larray.LargeArray[K]
	vals *larray.LargeArray[V]
	prev *leaf[K, V]
	next *leaf[K, V]
}

// internal holds size() separator keys and size()+1 children. The
// subtree under child j holds keys ordering below keys[j]; child j+1
// holds keys at or above it.
type internal[K, V any] struct {
	keys     *larray.LargeArray[K]
	children *larray.LargeArray[node[K, V]]
}

func newLeaf[K, V any]() *leaf[K, V] {
	return &leaf[K, V]{keys: newArray[K](), vals: newArray[V]()}
}

func newInternal[K, V any]() *internal[K, V] {
	return &internal[K, V]{keys: newArray[K](), children: newArray[node[K, V]]()}
}

func (l *leaf[K, V]) size() int64 { return l.keys.Count() }

// search locates key in the leaf. When absent, the returned index is
// the sorted insertion point.
func (l *leaf[K, V]) search(cmp largecoll.Comparer[K], key K) (int64, bool) {
	idx, err := l.keys.BinarySearch(key, cmp)
	mustNil(err)
	if idx >= 0 {
		return idx, true
	}
	return ^idx, false
}

func (in *internal[K, V]) size() int64 { return in.keys.Count() }

func (in *internal[K, V]) child(i int64) node[K, V] { return in.children.Get(i) }

// childIndex returns the index of the child whose subtree covers key.
func (in *internal[K, V]) childIndex(cmp largecoll.Comparer[K], key K) int64 {
	idx, err := in.keys.BinarySearch(key, cmp)
	mustNil(err)
	if idx >= 0 {
		return idx + 1
	}
	return ^idx
}

func newArray[T any]() *larray.LargeArray[T] {
	a, err := larray.New[T](0)
	mustNil(err)
	return a
}

// insertAt opens a slot at i, shifting [i, Count) up by one.
func insertAt[T any](a *larray.LargeArray[T], i int64, v T) {
	n := a.Count()
	mustNil(a.Resize(n + 1))
	mustNil(a.CopyTo(a, i, i+1, n-i))
	a.Set(i, v)
}

// removeAt closes the slot at i, shifting (i, Count) down by one, and
// returns the removed element.
func removeAt[T any](a *larray.LargeArray[T], i int64) T {
	n := a.Count()
	v := a.Get(i)
	mustNil(a.CopyTo(a, i+1, i, n-i-1))
	mustNil(a.Resize(n - 1))
	return v
}

func push[T any](a *larray.LargeArray[T], v T) {
	insertAt(a, a.Count(), v)
}

// moveTail moves src[from:] onto dst, which must be empty, and
// truncates src.
func moveTail[T any](src, dst *larray.LargeArray[T], from int64) {
	n := src.Count()
	mustNil(dst.Resize(n - from))
	mustNil(src.CopyTo(dst, from, 0, n-from))
	mustNil(src.Resize(from))
}

// appendAll appends all of src onto dst.
func appendAll[T any](dst, src *larray.LargeArray[T]) {
	d, s := dst.Count(), src.Count()
	mustNil(dst.Resize(d + s))
	mustNil(src.CopyTo(dst, 0, d, s))
}

func mustNil(err error) {
	if err != nil {
		panic(err)
	}
}
