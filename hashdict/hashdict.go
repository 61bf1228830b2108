// Package hashdict implements a hash dictionary on top of the larray
// containers: a bucket-head array plus a chained entry store, both
// 64-bit indexed, so the dictionary shares the element-count ceiling
// of the rest of the library rather than a single native map's.
//
// Hashing and equality come from an Equaler injected at construction.
// The dictionary is unordered and not safe for concurrent mutation.
package hashdict

import (
	"errors"
	"reflect"

	"github.com/oda/largecoll"
	"github.com/oda/largecoll/larray"
)

// initialBuckets is the starting table size; the table doubles when
// full, so it stays a power of two.
const initialBuckets = 16

var (
	// ErrKeyNotFound reports a Get of an absent key.
	ErrKeyNotFound = errors.New("hashdict: key not found")

	// ErrNilKey reports a nil key of a nilable kind.
	ErrNilKey = errors.New("hashdict: nil key")

	// ErrNilEqualer reports construction without an equaler.
	ErrNilEqualer = errors.New("hashdict: nil equaler")
)

type entry[K, V any] struct {
	key      K
	value    V
	hash     uint64
	next     int64 // next slot in the bucket or free chain, -1 ends it
	occupied bool
}

// Dictionary is a hash map from K to V over an injected Equaler.
type Dictionary[K, V any] struct {
	eq      largecoll.Equaler[K]
	buckets *larray.LargeArray[int64]
	entries *larray.LargeArray[entry[K, V]]
	free    int64 // head of the freed-slot chain
	used    int64 // slots ever handed out, freed ones included
	count   int64
}

// New creates an empty dictionary over eq.
func New[K, V any](eq largecoll.Equaler[K]) (*Dictionary[K, V], error) {
	if eq == nil {
		return nil, ErrNilEqualer
	}
	d := &Dictionary[K, V]{eq: eq}
	if err := d.reset(initialBuckets); err != nil {
		return nil, err
	}
	return d, nil
}

// NewComparable creates an empty dictionary for any comparable key
// type, hashed with the process-wide seed.
func NewComparable[K comparable, V any]() (*Dictionary[K, V], error) {
	return New[K, V](largecoll.NewComparableEqualer[K]())
}

func (d *Dictionary[K, V]) reset(size int64) error {
	buckets, err := larray.New[int64](size)
	if err != nil {
		return err
	}
	entries, err := larray.New[entry[K, V]](size)
	if err != nil {
		return err
	}
	if err := buckets.DoForEachRef(func(p *int64) { *p = -1 }); err != nil {
		return err
	}
	d.buckets = buckets
	d.entries = entries
	d.free = -1
	d.used = 0
	d.count = 0
	return nil
}

// Count returns the number of entries.
func (d *Dictionary[K, V]) Count() int64 { return d.count }

// Clear removes every entry, shrinking back to the initial table size.
func (d *Dictionary[K, V]) Clear() {
	// reset only fails on capacity errors, impossible at the initial
	// size.
	if err := d.reset(initialBuckets); err != nil {
		panic(err)
	}
}

func (d *Dictionary[K, V]) bucketFor(hash uint64) int64 {
	return int64(hash & uint64(d.buckets.Count()-1))
}

// findSlot returns the slot holding key and its predecessor in the
// bucket chain, -1 for either when absent.
func (d *Dictionary[K, V]) findSlot(key K, hash uint64) (slot, prev int64) {
	prev = -1
	for i := d.buckets.Get(d.bucketFor(hash)); i >= 0; {
		e := d.entries.Get(i)
		if e.hash == hash && d.eq.Equals(e.key, key) {
			return i, prev
		}
		prev = i
		i = e.next
	}
	return -1, -1
}

// Set stores value under key, replacing any existing value.
func (d *Dictionary[K, V]) Set(key K, value V) error {
	if isNilKey(key) {
		return ErrNilKey
	}
	hash := d.eq.Hash(key)
	if slot, _ := d.findSlot(key, hash); slot >= 0 {
		d.entries.Update(slot, func(e *entry[K, V]) { e.value = value })
		return nil
	}

	if d.free < 0 && d.used == d.entries.Count() {
		if err := d.grow(); err != nil {
			return err
		}
	}

	var slot int64
	if d.free >= 0 {
		slot = d.free
		d.free = d.entries.Get(slot).next
	} else {
		slot = d.used
		d.used++
	}

	b := d.bucketFor(hash)
	d.entries.Set(slot, entry[K, V]{
		key:      key,
		value:    value,
		hash:     hash,
		next:     d.buckets.Get(b),
		occupied: true,
	})
	d.buckets.Set(b, slot)
	d.count++
	return nil
}

// grow doubles the table and re-links every live entry; entry slots
// keep their indexes, only the bucket chains are rebuilt.
func (d *Dictionary[K, V]) grow() error {
	size := d.entries.Count() * 2
	if err := d.entries.Resize(size); err != nil {
		return err
	}
	if err := d.buckets.Resize(size); err != nil {
		return err
	}
	if err := d.buckets.DoForEachRef(func(p *int64) { *p = -1 }); err != nil {
		return err
	}

	d.free = -1
	for i := int64(0); i < d.used; i++ {
		e := d.entries.Get(i)
		if !e.occupied {
			d.entries.Update(i, func(e *entry[K, V]) { e.next = d.free })
			d.free = i
			continue
		}
		b := d.bucketFor(e.hash)
		d.entries.Update(i, func(e *entry[K, V]) { e.next = d.buckets.Get(b) })
		d.buckets.Set(b, i)
	}
	return nil
}

// Get returns the value stored under key, or ErrKeyNotFound.
func (d *Dictionary[K, V]) Get(key K) (V, error) {
	var zero V
	if isNilKey(key) {
		return zero, ErrNilKey
	}
	if slot, _ := d.findSlot(key, d.eq.Hash(key)); slot >= 0 {
		return d.entries.Get(slot).value, nil
	}
	return zero, ErrKeyNotFound
}

// TryGet returns the value stored under key and whether it is present.
func (d *Dictionary[K, V]) TryGet(key K) (V, bool) {
	var zero V
	if isNilKey(key) {
		return zero, false
	}
	if slot, _ := d.findSlot(key, d.eq.Hash(key)); slot >= 0 {
		return d.entries.Get(slot).value, true
	}
	return zero, false
}

// ContainsKey reports whether key is present.
func (d *Dictionary[K, V]) ContainsKey(key K) bool {
	_, found := d.TryGet(key)
	return found
}

// Remove deletes the entry under key, reporting whether it was
// present.
func (d *Dictionary[K, V]) Remove(key K) bool {
	if isNilKey(key) {
		return false
	}
	hash := d.eq.Hash(key)
	slot, prev := d.findSlot(key, hash)
	if slot < 0 {
		return false
	}

	next := d.entries.Get(slot).next
	if prev >= 0 {
		d.entries.Update(prev, func(e *entry[K, V]) { e.next = next })
	} else {
		d.buckets.Set(d.bucketFor(hash), next)
	}

	// Zero the slot so it does not pin the key or value, then chain it
	// for reuse.
	d.entries.Set(slot, entry[K, V]{next: d.free})
	d.free = slot
	d.count--
	return true
}

// DoForEach calls fn for every entry, in no particular order, until fn
// returns false.
func (d *Dictionary[K, V]) DoForEach(fn func(key K, value V) bool) {
	for i := int64(0); i < d.used; i++ {
		e := d.entries.Get(i)
		if e.occupied && !fn(e.key, e.value) {
			return
		}
	}
}

func isNilKey(key any) bool {
	if key == nil {
		return true
	}
	v := reflect.ValueOf(key)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}
