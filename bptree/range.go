package bptree

// leftmostLeaf returns the first leaf in key order.
func (t *Map[K, V]) leftmostLeaf() *leaf[K, V] {
	n := t.root
	for {
		in, ok := n.(*internal[K, V])
		if !ok {
			return n.(*leaf[K, V])
		}
		n = in.child(0)
	}
}

func (t *Map[K, V]) rightmostLeaf() *leaf[K, V] {
	n := t.root
	for {
		in, ok := n.(*internal[K, V])
		if !ok {
			return n.(*leaf[K, V])
		}
		n = in.child(in.size())
	}
}

// Ascend calls fn for every entry in ascending key order until fn
// returns false.
func (t *Map[K, V]) Ascend(fn func(key K, value V) bool) {
	for l := t.leftmostLeaf(); l != nil; l = l.next {
		for i := int64(0); i < l.size(); i++ {
			if !fn(l.keys.Get(i), l.vals.Get(i)) {
				return
			}
		}
	}
}

// AscendRange calls fn for every entry with min <= key <= max per the
// comparer, in ascending key order, until fn returns false. A min
// ordering after max yields no calls. The scan locates the starting
// leaf once and then follows sibling links.
func (t *Map[K, V]) AscendRange(min, max K, fn func(key K, value V) bool) {
	if t.cmp.Compare(min, max) > 0 {
		return
	}
	l := t.leafFor(min)
	idx, _ := l.search(t.cmp, min)
	for l != nil {
		for ; idx < l.size(); idx++ {
			k := l.keys.Get(idx)
			if t.cmp.Compare(k, max) > 0 {
				return
			}
			if !fn(k, l.vals.Get(idx)) {
				return
			}
		}
		l = l.next
		idx = 0
	}
}

// Keys returns every key in ascending order.
func (t *Map[K, V]) Keys() []K {
	out := make([]K, 0, t.count)
	t.Ascend(func(k K, _ V) bool {
		out = append(out, k)
		return true
	})
	return out
}

// Values returns every value in ascending key order.
func (t *Map[K, V]) Values() []V {
	out := make([]V, 0, t.count)
	t.Ascend(func(_ K, v V) bool {
		out = append(out, v)
		return true
	})
	return out
}

// Items returns every entry in ascending key order.
func (t *Map[K, V]) Items() []Item[K, V] {
	out := make([]Item[K, V], 0, t.count)
	t.Ascend(func(k K, v V) bool {
		out = append(out, Item[K, V]{Key: k, Value: v})
		return true
	})
	return out
}

// GetRange returns the entries with min <= key <= max in ascending
// order.
func (t *Map[K, V]) GetRange(min, max K) []Item[K, V] {
	var out []Item[K, V]
	t.AscendRange(min, max, func(k K, v V) bool {
		out = append(out, Item[K, V]{Key: k, Value: v})
		return true
	})
	return out
}

// GetKeysInRange returns the keys with min <= key <= max in ascending
// order.
func (t *Map[K, V]) GetKeysInRange(min, max K) []K {
	var out []K
	t.AscendRange(min, max, func(k K, _ V) bool {
		out = append(out, k)
		return true
	})
	return out
}

// GetValuesInRange returns the values of entries with
// min <= key <= max, in ascending key order.
func (t *Map[K, V]) GetValuesInRange(min, max K) []V {
	var out []V
	t.AscendRange(min, max, func(_ K, v V) bool {
		out = append(out, v)
		return true
	})
	return out
}

// CountInRange returns the number of entries with min <= key <= max.
func (t *Map[K, V]) CountInRange(min, max K) int64 {
	var n int64
	t.AscendRange(min, max, func(K, V) bool {
		n++
		return true
	})
	return n
}

// MinKey returns the smallest key, or ErrEmptyTree.
func (t *Map[K, V]) MinKey() (K, error) {
	if t.count == 0 {
		var zero K
		return zero, ErrEmptyTree
	}
	return t.leftmostLeaf().keys.Get(0), nil
}

// MaxKey returns the largest key, or ErrEmptyTree.
func (t *Map[K, V]) MaxKey() (K, error) {
	if t.count == 0 {
		var zero K
		return zero, ErrEmptyTree
	}
	l := t.rightmostLeaf()
	return l.keys.Get(l.size() - 1), nil
}

// TryMinKey returns the smallest key and whether the tree is
// non-empty.
func (t *Map[K, V]) TryMinKey() (K, bool) {
	k, err := t.MinKey()
	return k, err == nil
}

// TryMaxKey returns the largest key and whether the tree is non-empty.
func (t *Map[K, V]) TryMaxKey() (K, bool) {
	k, err := t.MaxKey()
	return k, err == nil
}
