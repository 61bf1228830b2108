package larray

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/oda/largecoll"
	"github.com/oda/largecoll/segstore"
)

// parallelThreshold is the range size below which ParallelSort falls
// back to the sequential sort; splitting smaller ranges costs more in
// goroutine churn than it saves.
const parallelThreshold = 512

type sortRun struct {
	off, count int64
}

// ParallelSort sorts the whole array per cmp using up to
// runtime.GOMAXPROCS(0) concurrent workers.
func (a *LargeArray[T]) ParallelSort(cmp largecoll.Comparer[T]) error {
	return a.ParallelSortRange(0, a.Count(), cmp, 0)
}

// ParallelSortRange sorts [offset, offset+count) per cmp with a
// divide-and-conquer merge sort: the range is split into at most
// maxParallel chunks, chunks are sorted concurrently, then merged.
// maxParallel <= 0 selects runtime.GOMAXPROCS(0); maxParallel == 1
// forces fully sequential execution, as do ranges below the internal
// size threshold. The resulting order is identical to SortRange for
// any comparer imposing a total order; the relative order of elements
// the comparer considers equal may differ between degrees of
// parallelism.
func (a *LargeArray[T]) ParallelSortRange(offset, count int64, cmp largecoll.Comparer[T], maxParallel int) error {
	if err := a.checkRange(offset, count); err != nil {
		return err
	}
	if count < 2 {
		return nil
	}
	if cmp == nil {
		return fmt.Errorf("%w: comparer", segstore.ErrNilFunc)
	}
	if maxParallel <= 0 {
		maxParallel = runtime.GOMAXPROCS(0)
	}
	if maxParallel == 1 || count < parallelThreshold {
		return a.store.Sort(offset, count, cmp.Compare)
	}

	// Chunk offsets are relative to the start of the range; the run
	// list shrinks by pairwise merging until one run spans it all.
	chunk := (count + int64(maxParallel) - 1) / int64(maxParallel)
	runs := make([]sortRun, 0, maxParallel)
	for off := int64(0); off < count; off += chunk {
		runs = append(runs, sortRun{off, min(chunk, count-off)})
	}

	var g errgroup.Group
	g.SetLimit(maxParallel)
	for _, r := range runs {
		g.Go(func() error {
			return a.store.Sort(offset+r.off, r.count, cmp.Compare)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	scratch, err := segstore.New[T](count)
	if err != nil {
		return err
	}

	// Merge rounds ping-pong between the array's storage (runs based
	// at offset) and the scratch storage (runs based at 0). Merges
	// within a round touch disjoint ranges, so they run concurrently.
	src, dst := a.store, scratch
	srcBase, dstBase := offset, int64(0)
	for len(runs) > 1 {
		next := make([]sortRun, 0, (len(runs)+1)/2)
		var mg errgroup.Group
		mg.SetLimit(maxParallel)
		for i := 0; i < len(runs); i += 2 {
			if i+1 == len(runs) {
				r := runs[i]
				mg.Go(func() error {
					return src.CopyTo(dst, srcBase+r.off, dstBase+r.off, r.count)
				})
				next = append(next, r)
				continue
			}
			left, right := runs[i], runs[i+1]
			mg.Go(func() error {
				return mergeRuns(src, dst,
					srcBase+left.off, left.count,
					srcBase+right.off, right.count,
					dstBase+left.off, cmp)
			})
			next = append(next, sortRun{left.off, left.count + right.count})
		}
		if err := mg.Wait(); err != nil {
			return err
		}
		runs = next
		src, dst = dst, src
		srcBase, dstBase = dstBase, srcBase
	}

	if src != a.store {
		return src.CopyTo(a.store, 0, offset, count)
	}
	return nil
}

// mergeRuns merges two adjacent sorted runs of src into dst. Ties take
// the left run first, keeping the result independent of how the range
// was chunked when the comparer imposes a total order.
func mergeRuns[T any](src, dst *segstore.Storage[T], aOff, aCount, bOff, bCount, dstOff int64, cmp largecoll.Comparer[T]) error {
	i, j, k := aOff, bOff, dstOff
	aEnd, bEnd := aOff+aCount, bOff+bCount
	for i < aEnd && j < bEnd {
		av, bv := src.Get(i), src.Get(j)
		if cmp.Compare(av, bv) <= 0 {
			dst.Set(k, av)
			i++
		} else {
			dst.Set(k, bv)
			j++
		}
		k++
	}
	if i < aEnd {
		return src.CopyTo(dst, i, k, aEnd-i)
	}
	if j < bEnd {
		return src.CopyTo(dst, j, k, bEnd-j)
	}
	return nil
}
