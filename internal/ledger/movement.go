package ledger

import (
	"math"

	"makeready/internal/heights"
)

// moveEpsilon filters out float noise in recorded moves.
const moveEpsilon = 0.01

// resolveHeights turns a main-list item's measurement and move into
// display tokens. Brand-new items have no existing height; existing items
// only get a proposed height when a real move is recorded.
func resolveHeights(measured float64, hasMeasured bool, move float64, isNew bool) (existing, proposed string, raw float64) {
	if !hasMeasured {
		return "", "", 0
	}
	if isNew {
		return "", heights.Format(measured), measured
	}
	existing = heights.Format(measured)
	if math.Abs(move) > moveEpsilon {
		proposed = heights.Format(measured + move)
	}
	return existing, proposed, measured
}

// resolveSpanHeights is the span variant: the direct move and every
// movement event along the span stack into one total.
func resolveSpanHeights(measured, move float64, effective []float64) (existing, proposed string) {
	total := move
	for _, v := range effective {
		total += v
	}
	existing = heights.Format(measured)
	if math.Abs(total) > 0 {
		proposed = heights.Format(measured + total)
	}
	return existing, proposed
}

// halfMove halves a movement event for the midspan estimate. Sag splits
// between the two poles; raises round up, lowers round down.
func halfMove(v float64) float64 {
	if v > 0 {
		return math.Ceil(v / 2)
	}
	return math.Floor(v / 2)
}
