package segstore

import "fmt"

// IndexOf returns the smallest index in [offset, offset+count) whose
// element equals v per eq, or -1 when the range holds no such element.
// A count of 0 reports -1 without scanning and without requiring eq.
func (s *Storage[T]) IndexOf(v T, offset, count int64, eq func(a, b T) bool) (int64, error) {
	if err := checkRange(offset, count, s.count); err != nil {
		return -1, err
	}
	if count == 0 {
		return -1, nil
	}
	if eq == nil {
		return -1, fmt.Errorf("%w: equality", ErrNilFunc)
	}
	for i := offset; i < offset+count; {
		so := i & segmentMask
		n := min(SegmentCapacity-so, offset+count-i)
		seg := s.segments[i>>segmentShift]
		for j := so; j < so+n; j++ {
			if eq(seg[j], v) {
				return i + (j - so), nil
			}
		}
		i += n
	}
	return -1, nil
}

// LastIndexOf returns the largest index in [offset, offset+count) whose
// element equals v per eq, or -1 when the range holds no such element.
func (s *Storage[T]) LastIndexOf(v T, offset, count int64, eq func(a, b T) bool) (int64, error) {
	if err := checkRange(offset, count, s.count); err != nil {
		return -1, err
	}
	if count == 0 {
		return -1, nil
	}
	if eq == nil {
		return -1, fmt.Errorf("%w: equality", ErrNilFunc)
	}
	for i := offset + count; i > offset; {
		last := i - 1
		so := last & segmentMask
		n := min(so+1, i-offset)
		seg := s.segments[last>>segmentShift]
		for j := so; j > so-n; j-- {
			if eq(seg[j], v) {
				return last - (so - j), nil
			}
		}
		i -= n
	}
	return -1, nil
}

// Contains reports whether the range holds an element equal to v per
// eq.
func (s *Storage[T]) Contains(v T, offset, count int64, eq func(a, b T) bool) (bool, error) {
	idx, err := s.IndexOf(v, offset, count, eq)
	return idx >= 0, err
}

// BinarySearch searches the range, which must be sorted per cmp, for v.
// When v is present it returns the index of one matching element. When
// absent it returns the one's complement of the index where v would be
// inserted to keep the range sorted, which is always negative. An empty
// range short-circuits without requiring cmp.
func (s *Storage[T]) BinarySearch(v T, offset, count int64, cmp func(a, b T) int) (int64, error) {
	if err := checkRange(offset, count, s.count); err != nil {
		return 0, err
	}
	if count == 0 {
		return ^offset, nil
	}
	if cmp == nil {
		return 0, fmt.Errorf("%w: comparer", ErrNilFunc)
	}
	lo, hi := offset, offset+count-1
	for lo <= hi {
		mid := lo + (hi-lo)/2
		c := cmp(*s.at(mid), v)
		switch {
		case c == 0:
			return mid, nil
		case c < 0:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}
	return ^lo, nil
}
