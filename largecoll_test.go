package largecoll_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oda/largecoll"
)

func TestComparers(t *testing.T) {
	asc := largecoll.Ascending[int]{}
	require.Negative(t, asc.Compare(1, 2))
	require.Positive(t, asc.Compare(2, 1))
	require.Zero(t, asc.Compare(3, 3))

	desc := largecoll.Descending[int]{}
	require.Positive(t, desc.Compare(1, 2))

	rev := largecoll.Reverse[int](asc)
	require.Positive(t, rev.Compare(1, 2))
	require.Zero(t, rev.Compare(4, 4))

	fn := largecoll.CompareFunc[int](func(a, b int) int { return a - b })
	require.Negative(t, fn.Compare(1, 2))
}

func TestEqualityComparers(t *testing.T) {
	eq := largecoll.ComparableEquality[string]{}
	require.True(t, eq.Equals("a", "a"))
	require.False(t, eq.Equals("a", "b"))

	fn := largecoll.EqualsFunc[int](func(a, b int) bool { return a%10 == b%10 })
	require.True(t, fn.Equals(3, 13))
}

func TestEqualers(t *testing.T) {
	ce := largecoll.NewComparableEqualer[int]()
	require.True(t, ce.Equals(5, 5))
	require.Equal(t, ce.Hash(5), ce.Hash(5), "equal keys must hash equal")

	se := largecoll.StringEqualer{}
	require.Equal(t, se.Hash("x"), se.Hash("x"))
	require.True(t, se.Equals("x", "x"))

	be := largecoll.BytesEqualer{}
	require.True(t, be.Equals([]byte("ab"), []byte{'a', 'b'}))
	require.Equal(t, be.Hash([]byte("ab")), se.Hash("ab"), "byte and string hashing agree")
}
