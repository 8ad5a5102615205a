package ledger

import (
	"strconv"
	"strings"
)

// SCID returns a node's structure code id, preferring the crew button
// value over the imported one. "N/A" when unset.
func (r *Resolver) SCID(nodeID string) string {
	v := r.doc.Node(nodeID).Attribute("scid").PreferKeys("auto_button", "-Imported")
	s := strings.TrimSpace(v.String())
	if s == "" {
		return "N/A"
	}
	return s
}

// CompareSCIDs orders structure codes the way crews number a route:
// numerically by base, with a plain code before its suffixed variants
// ("002" before "002.A") and "N/A" last. Returns <0, 0 or >0.
func CompareSCIDs(a, b string) int {
	if a == b {
		return 0
	}
	if a == "N/A" {
		return 1
	}
	if b == "N/A" {
		return -1
	}

	ap := strings.Split(a, ".")
	bp := strings.Split(b, ".")
	ai, aerr := strconv.Atoi(stripLeadingZeros(ap[0]))
	bi, berr := strconv.Atoi(stripLeadingZeros(bp[0]))
	switch {
	case aerr == nil && berr == nil:
		if ai != bi {
			if ai < bi {
				return -1
			}
			return 1
		}
	case ap[0] != bp[0]:
		if ap[0] < bp[0] {
			return -1
		}
		return 1
	}

	if len(ap) == 1 && len(bp) > 1 {
		return -1
	}
	if len(ap) > 1 && len(bp) == 1 {
		return 1
	}
	if a < b {
		return -1
	}
	return 1
}

func stripLeadingZeros(s string) string {
	s = strings.TrimLeft(s, "0")
	if s == "" {
		return "0"
	}
	return s
}
