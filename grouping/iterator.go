package grouping

import "iter"

// Group identifies one contiguous run of channels in a grouping flag array.
// Index, Start and End are 1-based; Start and End are inclusive.
type Group struct {
	Index int
	Start int
	End   int
}

// Len returns the number of channels spanned by the group.
func (g Group) Len() int { return g.End - g.Start + 1 }

// Groups returns a lazy sequence of the contiguous groups encoded by flags.
//
// Group 1 always starts at index 1 regardless of the first flag value; every
// subsequent 1 closes the running group and opens the next one. A 1 at the
// final index yields a singleton trailing group. The emitted groups partition
// 1..len(flags) exactly, so an all-zero flag array yields a single group
// spanning the whole array. The input is never mutated and the sequence can
// be ranged over any number of times.
func Groups(flags []int) iter.Seq[Group] {
	return func(yield func(Group) bool) {
		n := len(flags)
		if n == 0 {
			return
		}
		index, start := 1, 1
		for i := 2; i <= n; i++ {
			if flags[i-1] == 1 {
				if !yield(Group{Index: index, Start: start, End: i - 1}) {
					return
				}
				index++
				start = i
			}
		}
		yield(Group{Index: index, Start: start, End: n})
	}
}

// Count returns the number of groups [Groups] will emit for flags.
func Count(flags []int) int {
	if len(flags) == 0 {
		return 0
	}
	count := 1
	for _, f := range flags[1:] {
		if f == 1 {
			count++
		}
	}
	return count
}
