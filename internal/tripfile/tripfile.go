// Package tripfile reads TLC trip-record parquet files and aggregates them
// into (pickup, dropoff) pair frequencies. It knows nothing about stores or
// HTTP — the upload service feeds its output into the zone and route repos.
package tripfile

import "sort"

// Required parquet columns. Trip records carry many more columns
// (fares, timestamps, passenger counts); only the location pair is read.
const (
	ColumnPickup  = "PULocationID"
	ColumnDropoff = "DOLocationID"
)

// Pair is a directed (pickup, dropoff) zone pair.
type Pair struct {
	Pickup  int
	Dropoff int
}

// PairCount is a Pair with its occurrence count in the scanned rows.
type PairCount struct {
	Pair
	Count int
}

// TopN returns the n most frequent pairs in descending count order.
// Ties keep the order of first occurrence in the file, so repeated runs
// over the same file select the same pairs.
func TopN(counts []PairCount, n int) []PairCount {
	top := make([]PairCount, len(counts))
	copy(top, counts)

	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Count > top[j].Count
	})

	if n < len(top) {
		top = top[:n]
	}
	return top
}
