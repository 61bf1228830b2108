// Package segstore implements the segmented storage substrate: one
// logically contiguous, 64-bit-indexed array whose elements are sharded
// across independently allocated fixed-capacity segments.
//
// A logical index i maps to segment i/SegmentCapacity at offset
// i%SegmentCapacity. All segments have length SegmentCapacity except
// possibly the last. Growth appends or extends segments without moving
// data already in place; shrinking truncates or drops trailing
// segments.
//
// Storage is not safe for concurrent mutation.
package segstore

import (
	"errors"
	"fmt"
)

const (
	// segmentShift is the log2 of SegmentCapacity.
	segmentShift = 16

	// SegmentCapacity is the fixed element capacity of every segment
	// except possibly the last one of a storage.
	SegmentCapacity int64 = 1 << segmentShift

	segmentMask = SegmentCapacity - 1

	// MaxCount is the ceiling on the total element count of a single
	// storage. It is enforced at every mutating entry point.
	MaxCount int64 = 1 << 48
)

var (
	// ErrCapacity reports a requested capacity outside [0, MaxCount].
	ErrCapacity = errors.New("segstore: capacity out of range")

	// ErrRange reports an (offset, count) pair outside the storage
	// bounds.
	ErrRange = errors.New("segstore: offset/count out of range")

	// ErrNilFunc reports a missing comparison or equality function on
	// an operation that needs one.
	ErrNilFunc = errors.New("segstore: nil comparison function")
)

// Storage is an ordered sequence of segments holding Count() elements
// of T. The zero value is an empty storage.
type Storage[T any] struct {
	segments [][]T
	count    int64
}

// New allocates a storage of the given capacity. All elements hold the
// zero value of T.
func New[T any](capacity int64) (*Storage[T], error) {
	s := &Storage[T]{}
	if err := s.Resize(capacity); err != nil {
		return nil, err
	}
	return s, nil
}

// Count returns the total number of elements.
func (s *Storage[T]) Count() int64 { return s.count }

// SegmentCount returns the number of allocated segments.
func (s *Storage[T]) SegmentCount() int { return len(s.segments) }

// SegmentLen returns the length of segment idx.
func (s *Storage[T]) SegmentLen(idx int) int { return len(s.segments[idx]) }

// at returns a pointer to element i without bounds checking. Internal
// callers are expected to have validated i already; an invalid index
// faults on the underlying segment access.
func (s *Storage[T]) at(i int64) *T {
	return &s.segments[i>>segmentShift][i&segmentMask]
}

func (s *Storage[T]) checkIndex(i int64) {
	if i < 0 || i >= s.count {
		panic(fmt.Sprintf("segstore: index out of range [%d] with count %d", i, s.count))
	}
}

// checkRange validates an (offset, count) pair against bound.
func checkRange(offset, count, bound int64) error {
	if offset < 0 || count < 0 || offset > bound-count {
		return fmt.Errorf("%w: offset %d count %d with count %d", ErrRange, offset, count, bound)
	}
	return nil
}

// Get returns element i. Panics if i is outside [0, Count).
func (s *Storage[T]) Get(i int64) T {
	s.checkIndex(i)
	return *s.at(i)
}

// Set stores v at index i. Panics if i is outside [0, Count).
func (s *Storage[T]) Set(i int64, v T) {
	s.checkIndex(i)
	*s.at(i) = v
}

// Update applies fn to element i in place. The pointer passed to fn is
// only valid for the duration of the call. Panics if i is outside
// [0, Count).
func (s *Storage[T]) Update(i int64, fn func(*T)) {
	s.checkIndex(i)
	fn(s.at(i))
}

// Resize grows or shrinks the storage to the given capacity. Growing
// appends or extends segments, leaving existing elements untouched;
// new elements hold the zero value of T. Shrinking drops or truncates
// trailing segments. Resizing to 0 yields the canonical zero-segment
// form.
func (s *Storage[T]) Resize(capacity int64) error {
	if capacity < 0 || capacity > MaxCount {
		return fmt.Errorf("%w: %d", ErrCapacity, capacity)
	}
	if capacity == s.count {
		return nil
	}
	if capacity == 0 {
		s.segments = nil
		s.count = 0
		return nil
	}

	nsegs := int((capacity + segmentMask) >> segmentShift)
	lastLen := int(capacity - int64(nsegs-1)*SegmentCapacity)

	if capacity < s.count {
		// Drop whole trailing segments, then truncate the new last
		// one. Truncated elements are cleared so they do not pin
		// references, and so a later regrow sees zero values.
		for i := nsegs; i < len(s.segments); i++ {
			s.segments[i] = nil
		}
		s.segments = s.segments[:nsegs]
		last := s.segments[nsegs-1]
		clear(last[lastLen:])
		s.segments[nsegs-1] = last[:lastLen]
		s.count = capacity
		return nil
	}

	// Grow. Segments are always allocated with full capacity, so a
	// previously truncated segment extends by reslicing.
	for i := 0; i < nsegs; i++ {
		want := int(SegmentCapacity)
		if i == nsegs-1 {
			want = lastLen
		}
		if i < len(s.segments) {
			seg := s.segments[i]
			if len(seg) < want {
				seg = seg[:want]
				s.segments[i] = seg
			}
		} else {
			s.segments = append(s.segments, make([]T, want, SegmentCapacity))
		}
	}
	s.count = capacity
	return nil
}

// DoForEach applies fn to each element of the range in ascending index
// order.
func (s *Storage[T]) DoForEach(offset, count int64, fn func(T)) error {
	if fn == nil {
		return fmt.Errorf("%w: visitor", ErrNilFunc)
	}
	return s.forEachSegment(offset, count, func(_ int64, chunk []T) {
		for i := range chunk {
			fn(chunk[i])
		}
	})
}

// DoForEachRef applies fn to each element of the range in ascending
// index order, passing a pointer for in-place mutation. The pointer is
// only valid for the duration of the call.
func (s *Storage[T]) DoForEachRef(offset, count int64, fn func(*T)) error {
	if fn == nil {
		return fmt.Errorf("%w: visitor", ErrNilFunc)
	}
	return s.forEachSegment(offset, count, func(_ int64, chunk []T) {
		for i := range chunk {
			fn(&chunk[i])
		}
	})
}

// forEachSegment visits the range as maximal per-segment chunks. fn
// receives the logical index of the chunk's first element.
func (s *Storage[T]) forEachSegment(offset, count int64, fn func(start int64, chunk []T)) error {
	if err := checkRange(offset, count, s.count); err != nil {
		return err
	}
	for i := offset; i < offset+count; {
		so := i & segmentMask
		n := min(SegmentCapacity-so, offset+count-i)
		seg := s.segments[i>>segmentShift]
		fn(i, seg[so:so+n])
		i += n
	}
	return nil
}
