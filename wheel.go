package main

import (
	"math/rand/v2"
)

const (
	// Minimum circular index distance between two special wedges of the
	// same kind, relaxed one step at a time if placement stalls.
	defaultWedgeGap = 3

	placementAttempts = 64
)

func isSpecialWedge(w Wedge) bool {
	return w.Kind != WedgeCash
}

func circularDistance(a, b, size int) int {
	d := a - b
	if d < 0 {
		d = -d
	}
	if size-d < d {
		d = size - d
	}
	return d
}

// generateWheel produces a shuffled permutation of slots in which no two
// special wedges of the same kind sit closer than minGap positions apart on
// the circle. Placement is rejection-sampled with a bounded attempt count;
// when a gap level can't be satisfied the gap relaxes by one and placement
// retries, so generation always terminates (gap 0 accepts any free slot).
func generateWheel(slots []Wedge, minGap int, rng *rand.Rand) []Wedge {
	var special, cash []Wedge
	for _, w := range slots {
		if isSpecialWedge(w) {
			special = append(special, w)
		} else {
			cash = append(cash, w)
		}
	}

	rng.Shuffle(len(special), func(i, j int) {
		special[i], special[j] = special[j], special[i]
	})
	rng.Shuffle(len(cash), func(i, j int) {
		cash[i], cash[j] = cash[j], cash[i]
	})

	total := len(slots)
	result := make([]Wedge, total)
	occupied := make([]bool, total)
	placed := make(map[WedgeKind][]int)

	for _, w := range special {
		pos := placeWedge(w.Kind, placed, occupied, minGap, rng)
		result[pos] = w
		occupied[pos] = true
		placed[w.Kind] = append(placed[w.Kind], pos)
	}

	idx := 0
	for i := range total {
		if occupied[i] {
			continue
		}
		result[i] = cash[idx]
		idx++
	}

	return result
}

func placeWedge(kind WedgeKind, placed map[WedgeKind][]int, occupied []bool, minGap int, rng *rand.Rand) int {
	total := len(occupied)

	for gap := minGap; gap >= 0; gap-- {
		for range placementAttempts {
			pos := rng.IntN(total)
			if occupied[pos] {
				continue
			}
			if wedgeFits(pos, placed[kind], total, gap) {
				return pos
			}
		}
	}

	// gap 0 accepts any free slot, so reaching this point means every
	// random draw hit an occupied position; fall back to a linear scan.
	start := rng.IntN(total)
	for i := range total {
		pos := (start + i) % total
		if !occupied[pos] {
			return pos
		}
	}

	return 0
}

func wedgeFits(pos int, existing []int, size, gap int) bool {
	for _, p := range existing {
		if circularDistance(pos, p, size) < gap {
			return false
		}
	}
	return true
}
