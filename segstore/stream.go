package segstore

import (
	"errors"
	"io"
)

// WriteRange writes count bytes of s starting at offset to w, crossing
// segment boundaries as needed. It returns the number of bytes written,
// which is count unless w fails.
func WriteRange(s *Storage[byte], w io.Writer, offset, count int64) (int64, error) {
	if err := checkRange(offset, count, s.count); err != nil {
		return 0, err
	}
	var written int64
	for i := offset; i < offset+count; {
		so := i & segmentMask
		n := min(SegmentCapacity-so, offset+count-i)
		seg := s.segments[i>>segmentShift]
		wn, err := w.Write(seg[so : so+n])
		written += int64(wn)
		if err != nil {
			return written, err
		}
		i += n
	}
	return written, nil
}

// ReadRange fills up to count bytes of s starting at offset from r. It
// returns the number of bytes actually read, which is less than count
// only when r is exhausted first; end-of-stream is not an error.
func ReadRange(s *Storage[byte], r io.Reader, offset, count int64) (int64, error) {
	if err := checkRange(offset, count, s.count); err != nil {
		return 0, err
	}
	var total int64
	for i := offset; i < offset+count; {
		so := i & segmentMask
		n := min(SegmentCapacity-so, offset+count-i)
		seg := s.segments[i>>segmentShift]
		rn, err := io.ReadFull(r, seg[so:so+n])
		total += int64(rn)
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return total, nil
		}
		if err != nil {
			return total, err
		}
		i += n
	}
	return total, nil
}
