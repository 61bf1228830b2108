package segstore

import (
	"fmt"
	"math/bits"
)

// insertionCutoff is the range size below which quicksort hands over to
// insertion sort.
const insertionCutoff = 12

// Sort sorts the range in place per cmp. The sort is not stable.
// Ranges of fewer than two elements return without requiring cmp.
func (s *Storage[T]) Sort(offset, count int64, cmp func(a, b T) int) error {
	if err := checkRange(offset, count, s.count); err != nil {
		return err
	}
	if count < 2 {
		return nil
	}
	if cmp == nil {
		return fmt.Errorf("%w: comparer", ErrNilFunc)
	}
	// Depth limit after which quicksort degenerates to heapsort,
	// keeping the worst case O(n log n).
	limit := 2 * bits.Len64(uint64(count))
	s.quickSort(offset, offset+count-1, limit, cmp)
	return nil
}

func (s *Storage[T]) swapAt(i, j int64) {
	pi, pj := s.at(i), s.at(j)
	*pi, *pj = *pj, *pi
}

// quickSort sorts the inclusive range [lo, hi]. The larger partition is
// handled by the loop rather than recursion, bounding stack depth.
func (s *Storage[T]) quickSort(lo, hi int64, limit int, cmp func(a, b T) int) {
	for hi-lo >= insertionCutoff {
		if limit == 0 {
			s.heapSort(lo, hi, cmp)
			return
		}
		limit--
		p := s.partition(lo, hi, cmp)
		if p-lo < hi-p {
			s.quickSort(lo, p-1, limit, cmp)
			lo = p + 1
		} else {
			s.quickSort(p+1, hi, limit, cmp)
			hi = p - 1
		}
	}
	s.insertionSort(lo, hi, cmp)
}

// partition arranges [lo, hi] around a median-of-three pivot and
// returns the pivot's final index.
func (s *Storage[T]) partition(lo, hi int64, cmp func(a, b T) int) int64 {
	mid := lo + (hi-lo)/2
	if cmp(*s.at(mid), *s.at(lo)) < 0 {
		s.swapAt(mid, lo)
	}
	if cmp(*s.at(hi), *s.at(lo)) < 0 {
		s.swapAt(hi, lo)
	}
	if cmp(*s.at(hi), *s.at(mid)) < 0 {
		s.swapAt(hi, mid)
	}
	// Median now at mid; park it next to the end.
	s.swapAt(mid, hi-1)
	pivot := *s.at(hi - 1)

	i, j := lo, hi-1
	for {
		for i++; cmp(*s.at(i), pivot) < 0; i++ {
		}
		for j--; cmp(*s.at(j), pivot) > 0; j-- {
		}
		if i >= j {
			break
		}
		s.swapAt(i, j)
	}
	s.swapAt(i, hi-1)
	return i
}

func (s *Storage[T]) insertionSort(lo, hi int64, cmp func(a, b T) int) {
	for i := lo + 1; i <= hi; i++ {
		v := *s.at(i)
		j := i - 1
		for j >= lo && cmp(*s.at(j), v) > 0 {
			*s.at(j+1) = *s.at(j)
			j--
		}
		*s.at(j+1) = v
	}
}

func (s *Storage[T]) heapSort(lo, hi int64, cmp func(a, b T) int) {
	n := hi - lo + 1
	for root := n/2 - 1; root >= 0; root-- {
		s.siftDown(lo, root, n, cmp)
	}
	for end := n - 1; end > 0; end-- {
		s.swapAt(lo, lo+end)
		s.siftDown(lo, 0, end, cmp)
	}
}

func (s *Storage[T]) siftDown(lo, root, n int64, cmp func(a, b T) int) {
	for {
		child := 2*root + 1
		if child >= n {
			return
		}
		if child+1 < n && cmp(*s.at(lo+child), *s.at(lo+child+1)) < 0 {
			child++
		}
		if cmp(*s.at(lo+root), *s.at(lo+child)) >= 0 {
			return
		}
		s.swapAt(lo+root, lo+child)
		root = child
	}
}
