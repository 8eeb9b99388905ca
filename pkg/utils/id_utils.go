package utils

import "time"

// NextID returns a millisecond timestamp id that is strictly greater than
// every id in existing, so two records created in the same millisecond
// still get distinct ids.
func NextID(now time.Time, existing []int64) int64 {
	id := now.UnixMilli()
	for _, e := range existing {
		if e >= id {
			id = e + 1
		}
	}
	return id
}
