package segstore_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oda/largecoll/segstore"
)

func newByteStorage(t *testing.T, n int64) *segstore.Storage[byte] {
	t.Helper()
	s, err := segstore.New[byte](n)
	require.NoError(t, err)
	for i := int64(0); i < n; i++ {
		s.Set(i, byte(i))
	}
	return s
}

func TestWriteRangeAcrossSegments(t *testing.T) {
	c := segstore.SegmentCapacity
	s := newByteStorage(t, 2*c)

	var buf bytes.Buffer
	n, err := segstore.WriteRange(s, &buf, c-3, 6)
	require.NoError(t, err)
	require.EqualValues(t, 6, n)

	want := []byte{byte(c - 3), byte(c - 2), byte(c - 1), byte(c), byte(c + 1), byte(c + 2)}
	require.Equal(t, want, buf.Bytes())
}

func TestWriteRangeWhole(t *testing.T) {
	s := newByteStorage(t, 300)
	var buf bytes.Buffer
	n, err := segstore.WriteRange(s, &buf, 0, 300)
	require.NoError(t, err)
	require.EqualValues(t, 300, n)
	require.EqualValues(t, 300, buf.Len())
}

func TestReadRangeRoundTrip(t *testing.T) {
	c := segstore.SegmentCapacity
	src := newByteStorage(t, c+100)

	var buf bytes.Buffer
	_, err := segstore.WriteRange(src, &buf, 0, src.Count())
	require.NoError(t, err)

	dst, err := segstore.New[byte](c + 100)
	require.NoError(t, err)
	n, err := segstore.ReadRange(dst, &buf, 0, dst.Count())
	require.NoError(t, err)
	require.Equal(t, src.Count(), n)

	for i := int64(0); i < src.Count(); i += 97 {
		require.Equal(t, src.Get(i), dst.Get(i))
	}
}

func TestReadRangeShortStream(t *testing.T) {
	s, err := segstore.New[byte](100)
	require.NoError(t, err)

	// Only 10 bytes available; the read reports the actual count.
	n, err := segstore.ReadRange(s, bytes.NewReader([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}), 0, 100)
	require.NoError(t, err)
	require.EqualValues(t, 10, n)
	require.EqualValues(t, 10, s.Get(9))
	require.Zero(t, s.Get(10))

	// Exhausted stream reads zero elements.
	n, err = segstore.ReadRange(s, bytes.NewReader(nil), 0, 100)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestStreamRangeValidation(t *testing.T) {
	s := newByteStorage(t, 10)
	var buf bytes.Buffer

	_, err := segstore.WriteRange(s, &buf, 5, 6)
	require.ErrorIs(t, err, segstore.ErrRange)
	_, err = segstore.ReadRange(s, &buf, -1, 2)
	require.ErrorIs(t, err, segstore.ErrRange)
}
