// Package heights converts between raw inch measurements and the
// feet-inches display tokens used on make-ready report rows.
package heights

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Format renders a height in inches as a feet-inches token, e.g. 240 -> 20'-0".
// NaN and infinities render as an empty token.
func Format(inches float64) string {
	if math.IsNaN(inches) || math.IsInf(inches, 0) {
		return ""
	}
	total := int(math.Round(inches))
	feet := total / 12
	rem := total % 12
	return fmt.Sprintf("%d'-%d\"", feet, rem)
}

// Parse converts a feet-inches token back to total inches. Empty or
// malformed tokens parse as zero; callers treat zero as no movement.
func Parse(token string) float64 {
	s := strings.ReplaceAll(strings.TrimSpace(token), "\"", "")
	feetPart, inchPart, found := strings.Cut(s, "'")
	if !found {
		return 0
	}
	feet, err := strconv.Atoi(strings.TrimSpace(feetPart))
	if err != nil {
		return 0
	}
	inchPart = strings.TrimPrefix(strings.TrimSpace(inchPart), "-")
	inch, err := strconv.Atoi(strings.TrimSpace(inchPart))
	if err != nil {
		return 0
	}
	return float64(feet*12 + inch)
}
