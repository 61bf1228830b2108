// Package bptree implements an in-memory B+ tree: an ordered map from
// keys to values with point operations, ascending iteration and
// O(log n + k) range queries.
//
// The ordering comes entirely from a comparer injected at
// construction; keys carry no implicit ordering. Only leaves hold
// values, and leaves are linked in ascending key order so range scans
// never re-descend the tree. Set and Add are upserts: writing an
// existing key replaces its value without changing the count.
//
// A Map is not safe for concurrent mutation.
package bptree

import (
	"cmp"
	"errors"
	"fmt"
	"reflect"

	"github.com/oda/largecoll"
)

// MinOrder is the smallest supported tree order.
const MinOrder = 3

var (
	// ErrKeyNotFound reports a Get of an absent key.
	ErrKeyNotFound = errors.New("bptree: key not found")

	// ErrEmptyTree reports MinKey or MaxKey on an empty tree.
	ErrEmptyTree = errors.New("bptree: empty tree")

	// ErrNilKey reports a nil key of a nilable kind.
	ErrNilKey = errors.New("bptree: nil key")

	// ErrNilComparer reports construction without a comparer.
	ErrNilComparer = errors.New("bptree: nil comparer")

	// ErrOrder reports construction with an order below MinOrder.
	ErrOrder = errors.New("bptree: order below minimum")
)

// Item is one key-value entry.
type Item[K, V any] struct {
	Key   K
	Value V
}

// Map is a B+ tree of order Order() over the comparer supplied at
// construction. The zero value is not usable; construct with New.
type Map[K, V any] struct {
	root  node[K, V]
	count int64
	order int
	cmp   largecoll.Comparer[K]
}

// New creates an empty tree. order is the maximum number of children
// of an internal node and must be at least MinOrder. cmp supplies the
// total order over keys for the tree's lifetime.
func New[K, V any](order int, cmp largecoll.Comparer[K]) (*Map[K, V], error) {
	if order < MinOrder {
		return nil, fmt.Errorf("%w: %d (minimum %d)", ErrOrder, order, MinOrder)
	}
	if cmp == nil {
		return nil, ErrNilComparer
	}
	return &Map[K, V]{root: newLeaf[K, V](), order: order, cmp: cmp}, nil
}

// NewOrdered creates an empty tree over the natural ascending order of
// K.
func NewOrdered[K cmp.Ordered, V any](order int) (*Map[K, V], error) {
	return New[K, V](order, largecoll.Ascending[K]{})
}

// Count returns the number of entries.
func (t *Map[K, V]) Count() int64 { return t.count }

// Order returns the tree order fixed at construction.
func (t *Map[K, V]) Order() int { return t.order }

// Clear removes every entry.
func (t *Map[K, V]) Clear() {
	t.root = newLeaf[K, V]()
	t.count = 0
}

func (t *Map[K, V]) maxKeys() int64 { return int64(t.order) - 1 }

// minKeys is the occupancy floor for every node except the root.
func (t *Map[K, V]) minKeys() int64 { return int64((t.order+1)/2) - 1 }

// leafFor descends to the leaf whose key range covers key.
func (t *Map[K, V]) leafFor(key K) *leaf[K, V] {
	n := t.root
	for {
		in, ok := n.(*internal[K, V])
		if !ok {
			return n.(*leaf[K, V])
		}
		n = in.child(in.childIndex(t.cmp, key))
	}
}

// Get returns the value stored under key, or ErrKeyNotFound.
func (t *Map[K, V]) Get(key K) (V, error) {
	var zero V
	if isNilKey(key) {
		return zero, ErrNilKey
	}
	l := t.leafFor(key)
	idx, found := l.search(t.cmp, key)
	if !found {
		return zero, ErrKeyNotFound
	}
	return l.vals.Get(idx), nil
}

// TryGet returns the value stored under key and whether it is present.
func (t *Map[K, V]) TryGet(key K) (V, bool) {
	var zero V
	if isNilKey(key) {
		return zero, false
	}
	l := t.leafFor(key)
	idx, found := l.search(t.cmp, key)
	if !found {
		return zero, false
	}
	return l.vals.Get(idx), true
}

// ContainsKey reports whether key is present.
func (t *Map[K, V]) ContainsKey(key K) bool {
	_, found := t.TryGet(key)
	return found
}

// ContainsPair reports whether item.Key is present with a value equal
// to item.Value per eq.
func (t *Map[K, V]) ContainsPair(item Item[K, V], eq largecoll.EqualityComparer[V]) bool {
	v, found := t.TryGet(item.Key)
	return found && eq.Equals(v, item.Value)
}

// Set stores value under key, replacing any existing value. The count
// only changes when the key was absent.
func (t *Map[K, V]) Set(key K, value V) error {
	if isNilKey(key) {
		return ErrNilKey
	}
	sep, right, added := t.insert(t.root, key, value)
	if right != nil {
		// Root split: the tree grows one level.
		nr := newInternal[K, V]()
		push(nr.keys, sep)
		push(nr.children, t.root)
		push(nr.children, right)
		t.root = nr
	}
	if added {
		t.count++
	}
	return nil
}

// Add stores item, replacing the value if the key already exists.
func (t *Map[K, V]) Add(item Item[K, V]) error {
	return t.Set(item.Key, item.Value)
}

// insert places key into the subtree under n. When the node split, it
// returns the separator and the new right sibling to hand upward.
func (t *Map[K, V]) insert(n node[K, V], key K, value V) (sep K, right node[K, V], added bool) {
	switch n := n.(type) {
	case *leaf[K, V]:
		idx, found := n.search(t.cmp, key)
		if found {
			n.vals.Set(idx, value)
			return sep, nil, false
		}
		insertAt(n.keys, idx, key)
		insertAt(n.vals, idx, value)
		if n.size() <= t.maxKeys() {
			return sep, nil, true
		}
		sep, r := t.splitLeaf(n)
		return sep, r, true

	case *internal[K, V]:
		ci := n.childIndex(t.cmp, key)
		csep, cright, added := t.insert(n.child(ci), key, value)
		if cright == nil {
			return sep, nil, added
		}
		insertAt(n.keys, ci, csep)
		insertAt(n.children, ci+1, cright)
		if n.size() <= t.maxKeys() {
			return sep, nil, added
		}
		sep, r := t.splitInternal(n)
		return sep, r, added
	}
	panic("bptree: unknown node type")
}

// splitLeaf moves the upper half of l into a new right sibling and
// returns the separator to publish upward: the first key of the right
// half.
func (t *Map[K, V]) splitLeaf(l *leaf[K, V]) (K, *leaf[K, V]) {
	mid := l.size() / 2
	right := newLeaf[K, V]()
	moveTail(l.keys, right.keys, mid)
	moveTail(l.vals, right.vals, mid)

	right.next = l.next
	right.prev = l
	if right.next != nil {
		right.next.prev = right
	}
	l.next = right

	return right.keys.Get(0), right
}

// splitInternal moves the keys above the middle into a new right
// sibling; the middle key itself moves up as the separator.
func (t *Map[K, V]) splitInternal(in *internal[K, V]) (K, *internal[K, V]) {
	mid := in.size() / 2
	sep := in.keys.Get(mid)
	right := newInternal[K, V]()
	moveTail(in.keys, right.keys, mid+1)
	moveTail(in.children, right.children, mid+1)
	mustNil(in.keys.Resize(mid))
	return sep, right
}

// depth returns the number of levels; all leaves sit at the same one.
func (t *Map[K, V]) depth() int {
	d := 1
	n := t.root
	for {
		in, ok := n.(*internal[K, V])
		if !ok {
			return d
		}
		d++
		n = in.child(0)
	}
}

// isNilKey reports whether key is a nil reference of a nilable kind.
// Value kinds can never be nil and always pass.
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
