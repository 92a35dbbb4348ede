package database

import (
	"iter"
	"slices"

	"repairwip/status"
)

// MaxChunkSize is the most identifiers sent in one IN (...) round trip.
const MaxChunkSize = 1000

// Chunks normalizes and de-duplicates serials, then yields them in slices of
// at most size items. The sequence is lazy and can be ranged over again.
func Chunks(serials []string, size int) iter.Seq[[]string] {
	if size <= 0 || size > MaxChunkSize {
		size = MaxChunkSize
	}
	unique := make([]string, 0, len(serials))
	seen := make(map[string]bool, len(serials))
	for _, s := range serials {
		n := status.NormalizeSerial(s)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		unique = append(unique, n)
	}
	return func(yield func([]string) bool) {
		if len(unique) == 0 {
			return
		}
		for chunk := range slices.Chunk(unique, size) {
			if !yield(chunk) {
				return
			}
		}
	}
}
