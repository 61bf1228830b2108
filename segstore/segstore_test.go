package segstore_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oda/largecoll/segstore"
)

func TestNewSegmentShape(t *testing.T) {
	c := segstore.SegmentCapacity
	tests := []struct {
		name     string
		capacity int64
		segments int
		lastLen  int64
	}{
		{"empty has no segments", 0, 0, 0},
		{"single element", 1, 1, 1},
		{"one short segment", c - 1, 1, c - 1},
		{"exactly one segment", c, 1, c},
		{"one full plus one element", c + 1, 2, 1},
		{"two full segments plus five", 2*c + 5, 3, 5},
		{"three full segments", 3 * c, 3, c},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := segstore.New[int64](tt.capacity)
			require.NoError(t, err)
			require.Equal(t, tt.capacity, s.Count())
			require.Equal(t, tt.segments, s.SegmentCount())
			for i := 0; i < tt.segments-1; i++ {
				require.EqualValues(t, c, s.SegmentLen(i))
			}
			if tt.segments > 0 {
				require.EqualValues(t, tt.lastLen, s.SegmentLen(tt.segments-1))
			}
		})
	}
}

func TestNewInvalidCapacity(t *testing.T) {
	_, err := segstore.New[int64](-1)
	require.ErrorIs(t, err, segstore.ErrCapacity)

	_, err = segstore.New[int64](segstore.MaxCount + 1)
	require.ErrorIs(t, err, segstore.ErrCapacity)
}

func TestGetSetRoundTrip(t *testing.T) {
	c := segstore.SegmentCapacity
	s, err := segstore.New[int64](2*c + 5)
	require.NoError(t, err)

	// Indexes straddling every segment boundary plus the extremes.
	indexes := []int64{0, 1, c - 1, c, c + 1, 2*c - 1, 2 * c, 2*c + 4}
	for _, i := range indexes {
		s.Set(i, i*3+1)
	}
	for _, i := range indexes {
		require.Equal(t, i*3+1, s.Get(i), "index %d", i)
	}
}

func TestIndexPanics(t *testing.T) {
	s, err := segstore.New[int64](10)
	require.NoError(t, err)

	require.Panics(t, func() { s.Get(-1) })
	require.Panics(t, func() { s.Get(10) })
	require.Panics(t, func() { s.Set(10, 1) })
	require.Panics(t, func() { s.Update(-1, func(*int64) {}) })
}

func TestUpdate(t *testing.T) {
	s, err := segstore.New[int64](segstore.SegmentCapacity + 3)
	require.NoError(t, err)

	i := segstore.SegmentCapacity + 1
	s.Set(i, 20)
	s.Update(i, func(p *int64) { *p += 22 })
	require.EqualValues(t, 42, s.Get(i))
}

func TestResizePreservation(t *testing.T) {
	c := segstore.SegmentCapacity
	s, err := segstore.New[int64](c + 10)
	require.NoError(t, err)

	for i := int64(0); i < s.Count(); i += 7 {
		s.Set(i, i)
	}

	// Grow across a segment boundary, then shrink back.
	require.NoError(t, s.Resize(3*c+7))
	require.Equal(t, 4, s.SegmentCount())
	require.EqualValues(t, 0, s.Get(2*c), "grown region must be zeroed")

	require.NoError(t, s.Resize(c+10))
	for i := int64(0); i < s.Count(); i += 7 {
		require.Equal(t, i, s.Get(i), "index %d", i)
	}
}

func TestResizeClearsTruncatedTail(t *testing.T) {
	s, err := segstore.New[int64](100)
	require.NoError(t, err)
	for i := int64(0); i < 100; i++ {
		s.Set(i, i+1)
	}

	require.NoError(t, s.Resize(50))
	require.NoError(t, s.Resize(100))
	for i := int64(0); i < 50; i++ {
		require.Equal(t, i+1, s.Get(i))
	}
	for i := int64(50); i < 100; i++ {
		require.Zero(t, s.Get(i), "regrown index %d must be zero", i)
	}
}

func TestResizeToZero(t *testing.T) {
	s, err := segstore.New[int64](2 * segstore.SegmentCapacity)
	require.NoError(t, err)

	require.NoError(t, s.Resize(0))
	require.EqualValues(t, 0, s.Count())
	require.Equal(t, 0, s.SegmentCount())

	// The empty storage must still be usable.
	require.NoError(t, s.Resize(5))
	require.EqualValues(t, 5, s.Count())
}

func TestResizeInvalidCapacity(t *testing.T) {
	s, err := segstore.New[int64](10)
	require.NoError(t, err)

	require.ErrorIs(t, s.Resize(-1), segstore.ErrCapacity)
	require.ErrorIs(t, s.Resize(segstore.MaxCount+1), segstore.ErrCapacity)
	require.EqualValues(t, 10, s.Count(), "failed resize must not mutate")
}

func TestDoForEach(t *testing.T) {
	c := segstore.SegmentCapacity
	s, err := segstore.New[int64](c + 50)
	require.NoError(t, err)
	for i := int64(0); i < s.Count(); i++ {
		s.Set(i, i)
	}

	var got []int64
	require.NoError(t, s.DoForEach(c-2, 5, func(v int64) { got = append(got, v) }))
	require.Equal(t, []int64{c - 2, c - 1, c, c + 1, c + 2}, got)

	require.NoError(t, s.DoForEachRef(0, s.Count(), func(p *int64) { *p *= 2 }))
	require.Equal(t, 2*(c+1), s.Get(c+1))

	require.ErrorIs(t, s.DoForEach(0, s.Count()+1, func(int64) {}), segstore.ErrRange)
	require.ErrorIs(t, s.DoForEach(0, 1, nil), segstore.ErrNilFunc)
}
