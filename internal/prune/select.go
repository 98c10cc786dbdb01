package prune

import "sort"

// keepers picks the archives retained by one tier: one representative for
// each of the n most recent periods at granularity g (all periods if fewer
// than n exist). A zero or negative count short-circuits to nothing, so a
// disabled tier never retains an archive on its own.
func keepers(archives []Archive, g Granularity, n int) []Archive {
	if n <= 0 {
		return nil
	}

	buckets := bucketize(archives, g)

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	if len(keys) > n {
		keys = keys[:n]
	}

	kept := make([]Archive, 0, len(keys))
	for _, key := range keys {
		kept = append(kept, representative(buckets[key]))
	}
	return kept
}

// representative is the archive retained for one period: the newest one,
// with ties broken by the lexicographically greatest name so the choice is
// total and reproducible.
func representative(bucket []Archive) Archive {
	best := bucket[0]
	for _, a := range bucket[1:] {
		if a.Time.After(best.Time) || (a.Time.Equal(best.Time) && a.Name > best.Name) {
			best = a
		}
	}
	return best
}
