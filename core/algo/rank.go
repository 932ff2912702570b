package algo

import "sort"

// RankBy stably sorts entries so that greater(a, b) entries come first and
// returns at most limit of them. A negative limit keeps everything.
// Entries that compare equal keep their incoming order.
func RankBy[T any](entries []T, greater func(a, b T) bool, limit int) []T {
	sort.SliceStable(entries, func(i, j int) bool {
		return greater(entries[i], entries[j])
	})
	if limit >= 0 && len(entries) > limit {
		return entries[:limit]
	}
	return entries
}

// PeakIndex returns the index of the first entry that no later entry is
// strictly greater than, or -1 for an empty slice.
func PeakIndex[T any](entries []T, greater func(a, b T) bool) int {
	if len(entries) == 0 {
		return -1
	}
	peak := 0
	for i := 1; i < len(entries); i++ {
		if greater(entries[i], entries[peak]) {
			peak = i
		}
	}
	return peak
}
