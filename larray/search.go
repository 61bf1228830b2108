package larray

import (
	"github.com/oda/largecoll"
)

// eqFunc lowers an EqualityComparer to the substrate's function form,
// preserving nil so the substrate's nil-function policy applies.
func eqFunc[T any](eq largecoll.EqualityComparer[T]) func(a, b T) bool {
	if eq == nil {
		return nil
	}
	return eq.Equals
}

func cmpFunc[T any](c largecoll.Comparer[T]) func(a, b T) int {
	if c == nil {
		return nil
	}
	return c.Compare
}

// Contains reports whether any element equals v per eq.
func (a *LargeArray[T]) Contains(v T, eq largecoll.EqualityComparer[T]) (bool, error) {
	return a.store.Contains(v, 0, a.Count(), eqFunc(eq))
}

// IndexOf returns the smallest index whose element equals v per eq, or
// -1 when absent.
func (a *LargeArray[T]) IndexOf(v T, eq largecoll.EqualityComparer[T]) (int64, error) {
	return a.store.IndexOf(v, 0, a.Count(), eqFunc(eq))
}

// IndexOfRange is IndexOf restricted to [offset, offset+count).
func (a *LargeArray[T]) IndexOfRange(v T, offset, count int64, eq largecoll.EqualityComparer[T]) (int64, error) {
	return a.store.IndexOf(v, offset, count, eqFunc(eq))
}

// LastIndexOf returns the largest index whose element equals v per eq,
// or -1 when absent.
func (a *LargeArray[T]) LastIndexOf(v T, eq largecoll.EqualityComparer[T]) (int64, error) {
	return a.store.LastIndexOf(v, 0, a.Count(), eqFunc(eq))
}

// LastIndexOfRange is LastIndexOf restricted to [offset, offset+count).
func (a *LargeArray[T]) LastIndexOfRange(v T, offset, count int64, eq largecoll.EqualityComparer[T]) (int64, error) {
	return a.store.LastIndexOf(v, offset, count, eqFunc(eq))
}

// Sort sorts the whole array in place per cmp. The comparer may be a
// struct comparer such as largecoll.Ascending or a closure wrapped in
// largecoll.CompareFunc; identical orderings give identical results.
func (a *LargeArray[T]) Sort(cmp largecoll.Comparer[T]) error {
	return a.store.Sort(0, a.Count(), cmpFunc(cmp))
}

// SortRange sorts [offset, offset+count) in place per cmp.
func (a *LargeArray[T]) SortRange(offset, count int64, cmp largecoll.Comparer[T]) error {
	return a.store.Sort(offset, count, cmpFunc(cmp))
}

// BinarySearch searches the array, which must be sorted per cmp, for
// v. It returns a matching index when present, otherwise the one's
// complement of the insertion point.
func (a *LargeArray[T]) BinarySearch(v T, cmp largecoll.Comparer[T]) (int64, error) {
	return a.store.BinarySearch(v, 0, a.Count(), cmpFunc(cmp))
}

// BinarySearchRange is BinarySearch restricted to a sorted
// [offset, offset+count).
func (a *LargeArray[T]) BinarySearchRange(v T, offset, count int64, cmp largecoll.Comparer[T]) (int64, error) {
	return a.store.BinarySearch(v, offset, count, cmpFunc(cmp))
}
