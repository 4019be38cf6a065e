package services

import (
	"math"

	"trip-itinerary-service/internal/domain"
)

// OptimizeOrder orders stops to minimize travel using a greedy
// nearest-neighbor heuristic. It returns a permutation of the input
// indexes; stops[perm[0]] is visited first.
//
// Locked stops keep the absolute list index they held in the input.
// Unlocked stops are slotted into the remaining positions in
// nearest-neighbor order. The algorithm minimizes immediate travel
// duration at each step; it does not attempt global route optimization
// (e.g., TSP solvers). The design prioritizes determinism and simplicity
// over optimality.
//
// matrix holds pairwise travel durations in seconds, indexed like the
// coordinate list handed to the provider: startOffset is 1 when index 0 is
// a starting location, else 0 and stop i maps to matrix index i+startOffset.
// A nil matrix disables optimization and the input order is kept.
func OptimizeOrder(stops []domain.Stop, matrix [][]int, startOffset int) []int {
	perm := identityOrder(len(stops))
	if len(stops) <= 1 || matrix == nil {
		return perm
	}

	unlocked := make([]int, 0, len(stops))
	lockedAt := make(map[int]bool, len(stops))
	for i, s := range stops {
		if s.Locked {
			lockedAt[i] = true
		} else {
			unlocked = append(unlocked, i)
		}
	}

	// All locked: nothing to reorder.
	if len(unlocked) == 0 {
		return perm
	}

	start := -1
	if startOffset > 0 {
		start = 0
	}
	ordered := nearestNeighborOrder(unlocked, start, matrix, startOffset)

	// All unlocked: the traversal order is the visiting order.
	if len(lockedAt) == 0 {
		return ordered
	}

	// Mixed: locked stops keep their absolute index, unlocked stops fill
	// the remaining positions in traversal order.
	out := make([]int, len(stops))
	next := 0
	for pos := range out {
		if lockedAt[pos] {
			out[pos] = pos
			continue
		}
		out[pos] = ordered[next]
		next++
	}
	return out
}

// ApplyOrder returns the stops rearranged by the given permutation.
func ApplyOrder(stops []domain.Stop, perm []int) []domain.Stop {
	out := make([]domain.Stop, 0, len(perm))
	for _, i := range perm {
		out = append(out, stops[i])
	}
	return out
}

// nearestNeighborOrder greedily visits the given stop indexes, at each step
// picking the unvisited stop with minimum travel duration from the current
// position. The first candidate encountered with the minimum wins, so
// iteration order is stable. start is a matrix index, or -1 to seed the
// traversal with the first candidate.
func nearestNeighborOrder(candidates []int, start int, matrix [][]int, startOffset int) []int {
	remaining := append([]int(nil), candidates...)
	out := make([]int, 0, len(candidates))

	current := start
	if current < 0 {
		out = append(out, remaining[0])
		current = remaining[0] + startOffset
		remaining = remaining[1:]
	}

	for len(remaining) > 0 {
		best := -1
		minDuration := math.MaxInt

		for pos, idx := range remaining {
			d, ok := durationAt(matrix, current, idx+startOffset)
			if !ok {
				// Malformed or truncated matrix entries fail closed:
				// unreachable candidates lose ties to anything reachable.
				continue
			}
			if d < minDuration {
				minDuration = d
				best = pos
			}
		}

		// No usable durations left: keep the remaining input order.
		if best == -1 {
			best = 0
		}

		chosen := remaining[best]
		out = append(out, chosen)
		current = chosen + startOffset
		remaining = append(remaining[:best], remaining[best+1:]...)
	}

	return out
}

func durationAt(matrix [][]int, from, to int) (int, bool) {
	if from < 0 || from >= len(matrix) {
		return 0, false
	}
	row := matrix[from]
	if to < 0 || to >= len(row) {
		return 0, false
	}
	return row[to], true
}

func identityOrder(n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	return perm
}
