package bptree

// Remove deletes the entry under key, reporting whether it was
// present.
func (t *Map[K, V]) Remove(key K) bool {
	_, removed := t.RemoveValue(key)
	return removed
}

// RemoveValue deletes the entry under key and returns the removed
// value.
func (t *Map[K, V]) RemoveValue(key K) (V, bool) {
	var zero V
	if isNilKey(key) {
		return zero, false
	}
	v, removed := t.remove(t.root, key)
	if !removed {
		return zero, false
	}
	t.count--

	// An internal root left with a single child is replaced by that
	// child, shrinking the tree by one level. A root leaf underflows
	// freely.
	if in, ok := t.root.(*internal[K, V]); ok && in.size() == 0 {
		t.root = in.child(0)
	}
	return v, true
}

// RemovePair deletes the entry under item.Key. The supplied value is
// not consulted; the key alone locates the entry.
func (t *Map[K, V]) RemovePair(item Item[K, V]) bool {
	return t.Remove(item.Key)
}

// remove deletes key from the subtree under n, repairing any child
// underflow on the way back up.
func (t *Map[K, V]) remove(n node[K, V], key K) (V, bool) {
	switch n := n.(type) {
	case *leaf[K, V]:
		var zero V
		idx, found := n.search(t.cmp, key)
		if !found {
			return zero, false
		}
		removeAt(n.keys, idx)
		return removeAt(n.vals, idx), true

	case *internal[K, V]:
		ci := n.childIndex(t.cmp, key)
		v, removed := t.remove(n.child(ci), key)
		if removed && n.child(ci).size() < t.minKeys() {
			t.repairUnderflow(n, ci)
		}
		return v, removed
	}
	panic("bptree: unknown node type")
}

// repairUnderflow restores the occupancy floor of parent's child ci,
// borrowing from a sibling with spare entries first and merging only
// when both siblings sit at the minimum.
func (t *Map[K, V]) repairUnderflow(parent *internal[K, V], ci int64) {
	if ci > 0 && parent.child(ci-1).size() > t.minKeys() {
		t.borrowFromLeft(parent, ci)
		return
	}
	if ci < parent.size() && parent.child(ci+1).size() > t.minKeys() {
		t.borrowFromRight(parent, ci)
		return
	}
	if ci > 0 {
		t.mergeChildren(parent, ci-1)
	} else {
		t.mergeChildren(parent, ci)
	}
}

// borrowFromLeft moves the left sibling's last entry into the front of
// child ci and refreshes the separator between them.
func (t *Map[K, V]) borrowFromLeft(parent *internal[K, V], ci int64) {
	switch child := parent.child(ci).(type) {
	case *leaf[K, V]:
		left := parent.child(ci - 1).(*leaf[K, V])
		last := left.size() - 1
		k := removeAt(left.keys, last)
		insertAt(child.keys, 0, k)
		insertAt(child.vals, 0, removeAt(left.vals, last))
		parent.keys.Set(ci-1, k)

	case *internal[K, V]:
		// The borrowed entry rotates through the parent separator.
		left := parent.child(ci - 1).(*internal[K, V])
		insertAt(child.keys, 0, parent.keys.Get(ci-1))
		insertAt(child.children, 0, removeAt(left.children, left.children.Count()-1))
		parent.keys.Set(ci-1, removeAt(left.keys, left.size()-1))
	}
}

// borrowFromRight moves the right sibling's first entry onto the end
// of child ci and refreshes the separator between them.
func (t *Map[K, V]) borrowFromRight(parent *internal[K, V], ci int64) {
	switch child := parent.child(ci).(type) {
	case *leaf[K, V]:
		right := parent.child(ci + 1).(*leaf[K, V])
		push(child.keys, removeAt(right.keys, 0))
		push(child.vals, removeAt(right.vals, 0))
		parent.keys.Set(ci, right.keys.Get(0))

	case *internal[K, V]:
		right := parent.child(ci + 1).(*internal[K, V])
		push(child.keys, parent.keys.Get(ci))
		push(child.children, removeAt(right.children, 0))
		parent.keys.Set(ci, removeAt(right.keys, 0))
	}
}

// mergeChildren folds child li+1 into child li and drops the separator
// between them from the parent.
func (t *Map[K, V]) mergeChildren(parent *internal[K, V], li int64) {
	switch left := parent.child(li).(type) {
	case *leaf[K, V]:
		right := parent.child(li + 1).(*leaf[K, V])
		appendAll(left.keys, right.keys)
		appendAll(left.vals, right.vals)
		left.next = right.next
		if right.next != nil {
			right.next.prev = left
		}

	case *internal[K, V]:
		// The separator comes down into the merged node; leaves never
		// absorb separators because their keys live in the leaves
		// already.
		right := parent.child(li + 1).(*internal[K, V])
		push(left.keys, parent.keys.Get(li))
		appendAll(left.keys, right.keys)
		appendAll(left.children, right.children)
	}
	removeAt(parent.keys, li)
	removeAt(parent.children, li+1)
}
