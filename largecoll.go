// Package largecoll provides collections addressed by 64-bit signed
// indexes, built on a segmented storage substrate that shards element
// storage into bounded blocks.
//
// The subpackages hold the containers:
//
//   - segstore: the segmented storage substrate
//   - larray: a contiguous-looking array facade over segstore
//   - bptree: an ordered key-value map (B+ tree)
//   - hashdict: a hash dictionary
//
// This package defines the comparison and equality capabilities the
// containers are parameterized over. A container receives its comparer
// once at construction and uses it for every comparison for its
// lifetime.
package largecoll

import (
	"bytes"
	"cmp"
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
)

// Comparer is a total order over T.
// Compare returns a negative value when a orders before b, zero when
// they are equivalent, and a positive value when a orders after b.
type Comparer[T any] interface {
	Compare(a, b T) int
}

// CompareFunc adapts an ordinary function to the Comparer interface,
// for closure-style call sites.
type CompareFunc[T any] func(a, b T) int

// Compare implements Comparer.
func (f CompareFunc[T]) Compare(a, b T) int { return f(a, b) }

// Ascending orders values of any ordered type naturally.
type Ascending[T cmp.Ordered] struct{}

// Compare implements Comparer.
func (Ascending[T]) Compare(a, b T) int { return cmp.Compare(a, b) }

// Descending orders values of any ordered type in reverse.
type Descending[T cmp.Ordered] struct{}

// Compare implements Comparer.
func (Descending[T]) Compare(a, b T) int { return cmp.Compare(b, a) }

// Reverse inverts the order imposed by another comparer.
func Reverse[T any](c Comparer[T]) Comparer[T] {
	return CompareFunc[T](func(a, b T) int { return c.Compare(b, a) })
}

// EqualityComparer decides whether two values of T are equal.
type EqualityComparer[T any] interface {
	Equals(a, b T) bool
}

// EqualsFunc adapts an ordinary function to the EqualityComparer
// interface.
type EqualsFunc[T any] func(a, b T) bool

// Equals implements EqualityComparer.
func (f EqualsFunc[T]) Equals(a, b T) bool { return f(a, b) }

// ComparableEquality is the EqualityComparer for any comparable type,
// using the built-in == operator.
type ComparableEquality[T comparable] struct{}

// Equals implements EqualityComparer.
func (ComparableEquality[T]) Equals(a, b T) bool { return a == b }

// Equaler combines equality with hashing, as required by hashed
// containers. Equal values must hash equal.
type Equaler[K any] interface {
	EqualityComparer[K]
	Hash(k K) uint64
}

// ComparableEqualer hashes any comparable key type. The zero value is
// not usable; construct with NewComparableEqualer.
type ComparableEqualer[K comparable] struct {
	seed maphash.Seed
}

// NewComparableEqualer returns an Equaler for any comparable key type.
// Hash values are stable within a process but vary between processes.
func NewComparableEqualer[K comparable]() ComparableEqualer[K] {
	return ComparableEqualer[K]{seed: maphash.MakeSeed()}
}

// Equals implements Equaler.
func (ComparableEqualer[K]) Equals(a, b K) bool { return a == b }

// Hash implements Equaler.
func (e ComparableEqualer[K]) Hash(k K) uint64 { return maphash.Comparable(e.seed, k) }

// StringEqualer hashes string keys with xxhash. Unlike
// ComparableEqualer its hash values are stable across processes.
type StringEqualer struct{}

// Equals implements Equaler.
func (StringEqualer) Equals(a, b string) bool { return a == b }

// Hash implements Equaler.
func (StringEqualer) Hash(k string) uint64 { return xxhash.Sum64String(k) }

// BytesEqualer hashes []byte keys with xxhash.
type BytesEqualer struct{}

// Equals implements Equaler.
func (BytesEqualer) Equals(a, b []byte) bool { return bytes.Equal(a, b) }

// Hash implements Equaler.
func (BytesEqualer) Hash(k []byte) uint64 { return xxhash.Sum64(k) }
