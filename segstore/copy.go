package segstore

// CopyTo copies count elements from this storage starting at srcOffset
// into dst starting at dstOffset. dst may be the same storage; when the
// ranges overlap with dstOffset > srcOffset the copy runs from the
// highest index downward, so overlapping copies behave like a memory
// move. Both ranges are validated before any element is written.
func (s *Storage[T]) CopyTo(dst *Storage[T], srcOffset, dstOffset, count int64) error {
	if err := checkRange(srcOffset, count, s.count); err != nil {
		return err
	}
	if err := checkRange(dstOffset, count, dst.count); err != nil {
		return err
	}
	if count == 0 || (s == dst && srcOffset == dstOffset) {
		return nil
	}
	if s == dst && dstOffset > srcOffset {
		s.copyDescending(dst, srcOffset, dstOffset, count)
		return nil
	}
	s.copyAscending(dst, srcOffset, dstOffset, count)
	return nil
}

func (s *Storage[T]) copyAscending(dst *Storage[T], srcOffset, dstOffset, count int64) {
	var copied int64
	for copied < count {
		si, di := srcOffset+copied, dstOffset+copied
		so, do := si&segmentMask, di&segmentMask
		n := min(SegmentCapacity-so, SegmentCapacity-do, count-copied)
		copy(dst.segments[di>>segmentShift][do:do+n], s.segments[si>>segmentShift][so:so+n])
		copied += n
	}
}

func (s *Storage[T]) copyDescending(dst *Storage[T], srcOffset, dstOffset, count int64) {
	remaining := count
	for remaining > 0 {
		// Last still-uncopied element of each range.
		si, di := srcOffset+remaining-1, dstOffset+remaining-1
		so, do := si&segmentMask, di&segmentMask
		n := min(so+1, do+1, remaining)
		// copy has move semantics within one segment, so the chunks
		// themselves may overlap.
		copy(dst.segments[di>>segmentShift][do+1-n:do+1], s.segments[si>>segmentShift][so+1-n:so+1])
		remaining -= n
	}
}

// CopyToSlice copies count elements starting at srcOffset into dst.
func (s *Storage[T]) CopyToSlice(dst []T, srcOffset int64) error {
	return s.forEachSegment(srcOffset, int64(len(dst)), func(start int64, chunk []T) {
		copy(dst[start-srcOffset:], chunk)
	})
}

// CopyFromSlice copies all of src into the storage starting at
// dstOffset.
func (s *Storage[T]) CopyFromSlice(src []T, dstOffset int64) error {
	return s.forEachSegment(dstOffset, int64(len(src)), func(start int64, chunk []T) {
		copy(chunk, src[start-dstOffset:])
	})
}
