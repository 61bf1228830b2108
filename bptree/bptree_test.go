package bptree_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oda/largecoll"
	"github.com/oda/largecoll/bptree"
)

func TestConstruction(t *testing.T) {
	_, err := bptree.NewOrdered[int, int](2)
	require.ErrorIs(t, err, bptree.ErrOrder)

	_, err = bptree.New[int, int](3, nil)
	require.ErrorIs(t, err, bptree.ErrNilComparer)

	tr, err := bptree.NewOrdered[int, int](3)
	require.NoError(t, err)
	require.EqualValues(t, 0, tr.Count())
	require.Equal(t, 3, tr.Order())
}

// Ten keys into an order-3 tree forces a cascade of splits; the
// traversal must come out sorted and complete.
func TestOrderThreeSplitStorm(t *testing.T) {
	tr, err := bptree.NewOrdered[int, int](3)
	require.NoError(t, err)

	for _, k := range []int{5, 3, 8, 1, 9, 2, 7, 4, 6, 10} {
		require.NoError(t, tr.Set(k, k*100))
	}

	require.EqualValues(t, 10, tr.Count())
	require.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, tr.Keys())
	for k := 1; k <= 10; k++ {
		v, err := tr.Get(k)
		require.NoError(t, err)
		require.Equal(t, k*100, v)
	}
}

func TestOrderThreeDeletionDownToTwo(t *testing.T) {
	tr, err := bptree.NewOrdered[int, int](3)
	require.NoError(t, err)
	for k := 1; k <= 10; k++ {
		require.NoError(t, tr.Set(k, k))
	}

	for k := 1; k <= 8; k++ {
		require.True(t, tr.Remove(k))
	}

	require.EqualValues(t, 2, tr.Count())
	for _, k := range []int{9, 10} {
		v, err := tr.Get(k)
		require.NoError(t, err)
		require.Equal(t, k, v)
	}
	require.False(t, tr.ContainsKey(5))
}

func TestUpsertSemantics(t *testing.T) {
	tr, err := bptree.NewOrdered[string, int](4)
	require.NoError(t, err)

	require.NoError(t, tr.Set("a", 1))
	require.NoError(t, tr.Set("a", 2))
	require.EqualValues(t, 1, tr.Count(), "replace must not change the count")

	v, err := tr.Get("a")
	require.NoError(t, err)
	require.Equal(t, 2, v)

	// Add is the same upsert, last write wins.
	require.NoError(t, tr.Add(bptree.Item[string, int]{Key: "a", Value: 3}))
	require.EqualValues(t, 1, tr.Count())
	v, _ = tr.TryGet("a")
	require.Equal(t, 3, v)
}

func TestGetAbsent(t *testing.T) {
	tr, err := bptree.NewOrdered[int, int](4)
	require.NoError(t, err)
	require.NoError(t, tr.Set(1, 1))

	_, err = tr.Get(2)
	require.ErrorIs(t, err, bptree.ErrKeyNotFound)

	v, found := tr.TryGet(2)
	require.False(t, found)
	require.Zero(t, v)

	require.False(t, tr.Remove(2))
	_, removed := tr.RemoveValue(2)
	require.False(t, removed)
}

func TestRemoveValue(t *testing.T) {
	tr, err := bptree.NewOrdered[int, string](4)
	require.NoError(t, err)
	require.NoError(t, tr.Set(7, "seven"))

	v, removed := tr.RemoveValue(7)
	require.True(t, removed)
	require.Equal(t, "seven", v)
	require.False(t, tr.ContainsKey(7))
	require.EqualValues(t, 0, tr.Count())
}

func TestPairOperations(t *testing.T) {
	tr, err := bptree.NewOrdered[int, string](4)
	require.NoError(t, err)
	require.NoError(t, tr.Set(1, "one"))

	eq := largecoll.ComparableEquality[string]{}
	require.True(t, tr.ContainsPair(bptree.Item[int, string]{Key: 1, Value: "one"}, eq))
	require.False(t, tr.ContainsPair(bptree.Item[int, string]{Key: 1, Value: "uno"}, eq))

	// RemovePair locates by key alone; the value need not match.
	require.True(t, tr.RemovePair(bptree.Item[int, string]{Key: 1, Value: "whatever"}))
	require.EqualValues(t, 0, tr.Count())
}

func TestClear(t *testing.T) {
	tr, err := bptree.NewOrdered[int, int](3)
	require.NoError(t, err)
	for k := 0; k < 100; k++ {
		require.NoError(t, tr.Set(k, k))
	}

	tr.Clear()
	require.EqualValues(t, 0, tr.Count())
	require.Empty(t, tr.Keys())

	_, err = tr.MinKey()
	require.ErrorIs(t, err, bptree.ErrEmptyTree)

	// The cleared tree is fully usable.
	require.NoError(t, tr.Set(5, 5))
	require.EqualValues(t, 1, tr.Count())
}

func TestAscendEarlyStop(t *testing.T) {
	tr, err := bptree.NewOrdered[int, int](4)
	require.NoError(t, err)
	for k := 0; k < 50; k++ {
		require.NoError(t, tr.Set(k, k))
	}

	var seen []int
	tr.Ascend(func(k, _ int) bool {
		seen = append(seen, k)
		return len(seen) < 5
	})
	require.Equal(t, []int{0, 1, 2, 3, 4}, seen)
}

func TestRangeQueries(t *testing.T) {
	tr, err := bptree.NewOrdered[int, int](3)
	require.NoError(t, err)
	// Even keys only, so range bounds can fall between keys.
	for k := 0; k <= 100; k += 2 {
		require.NoError(t, tr.Set(k, k*10))
	}

	items := tr.GetRange(10, 20)
	require.Len(t, items, 6)
	require.Equal(t, 10, items[0].Key)
	require.Equal(t, 20, items[5].Key)

	// Inclusive bounds, and bounds between keys.
	require.Equal(t, []int{12, 14, 16, 18}, tr.GetKeysInRange(11, 19))
	require.Equal(t, []int{120, 140, 160, 180}, tr.GetValuesInRange(11, 19))
	require.EqualValues(t, 4, tr.CountInRange(11, 19))
	require.EqualValues(t, len(tr.GetRange(11, 19)), tr.CountInRange(11, 19))

	// Bounds outside the key population clamp naturally.
	require.EqualValues(t, 51, tr.CountInRange(-100, 1000))

	// min ordering after max yields an empty result.
	require.Empty(t, tr.GetRange(20, 10))
	require.EqualValues(t, 0, tr.CountInRange(20, 10))

	// Single-key range.
	require.Equal(t, []int{50}, tr.GetKeysInRange(50, 50))
}

func TestMinMaxKeys(t *testing.T) {
	tr, err := bptree.NewOrdered[int, int](4)
	require.NoError(t, err)

	_, err = tr.MinKey()
	require.ErrorIs(t, err, bptree.ErrEmptyTree)
	_, err = tr.MaxKey()
	require.ErrorIs(t, err, bptree.ErrEmptyTree)
	_, ok := tr.TryMinKey()
	require.False(t, ok)
	_, ok = tr.TryMaxKey()
	require.False(t, ok)

	for _, k := range []int{42, 7, 99, 13} {
		require.NoError(t, tr.Set(k, k))
	}

	minKey, err := tr.MinKey()
	require.NoError(t, err)
	require.Equal(t, 7, minKey)
	maxKey, err := tr.MaxKey()
	require.NoError(t, err)
	require.Equal(t, 99, maxKey)

	k, ok := tr.TryMinKey()
	require.True(t, ok)
	require.Equal(t, 7, k)
	k, ok = tr.TryMaxKey()
	require.True(t, ok)
	require.Equal(t, 99, k)
}

func TestNilKey(t *testing.T) {
	tr, err := bptree.New[*int, int](4, largecoll.CompareFunc[*int](func(a, b *int) int {
		return *a - *b
	}))
	require.NoError(t, err)

	require.ErrorIs(t, tr.Set(nil, 1), bptree.ErrNilKey)
	_, err = tr.Get(nil)
	require.ErrorIs(t, err, bptree.ErrNilKey)

	_, found := tr.TryGet(nil)
	require.False(t, found)
	require.False(t, tr.ContainsKey(nil))
	require.False(t, tr.Remove(nil))

	k := 5
	require.NoError(t, tr.Set(&k, 50))
	require.EqualValues(t, 1, tr.Count())
}

func TestStringKeysWithClosureComparer(t *testing.T) {
	cmp := largecoll.CompareFunc[string](func(a, b string) int {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
		return 0
	})
	tr, err := bptree.New[string, int](5, cmp)
	require.NoError(t, err)

	words := []string{"pear", "apple", "fig", "cherry", "banana", "date"}
	for i, w := range words {
		require.NoError(t, tr.Set(w, i))
	}
	require.Equal(t, []string{"apple", "banana", "cherry", "date", "fig", "pear"}, tr.Keys())
}

func TestLargeSequentialAndRandom(t *testing.T) {
	tr, err := bptree.NewOrdered[int, int](16)
	require.NoError(t, err)

	n := 10_000
	for i := 0; i < n; i++ {
		require.NoError(t, tr.Set(i, i*2))
	}
	require.EqualValues(t, n, tr.Count())
	for i := 0; i < n; i++ {
		v, err := tr.Get(i)
		require.NoError(t, err)
		require.Equal(t, i*2, v)
	}

	// Ascending traversal is strictly ordered with no duplicates.
	keys := tr.Keys()
	require.Len(t, keys, n)
	for i := 1; i < len(keys); i++ {
		require.Less(t, keys[i-1], keys[i])
	}

	// Remove in random order, verifying the survivors along the way.
	rng := rand.New(rand.NewSource(5))
	perm := rng.Perm(n)
	for i, k := range perm {
		require.True(t, tr.Remove(k), "removing %d", k)
		require.EqualValues(t, n-i-1, tr.Count())
	}
	require.EqualValues(t, 0, tr.Count())
}
