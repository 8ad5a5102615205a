package ledger

import (
	"fmt"
	"strings"

	"makeready/internal/heights"
	"makeready/internal/survey"
)

// SummaryMode selects which attachers a movement summary covers.
type SummaryMode int

const (
	// SummaryAll covers every attacher with a move or install.
	SummaryAll SummaryMode = iota
	// SummaryPowerOnly restricts the summary to power company attachers.
	SummaryPowerOnly
	// SummaryPowerShort is the power summary without heights or company
	// prefixes, for the narrow remedy column.
	SummaryPowerShort
)

// MovementSummary renders the narrative make-ready lines for a resolved
// attacher list, one line per install or move, in list order.
func (r *Resolver) MovementSummary(attachers []Attacher, mode SummaryMode) string {
	var lines []string
	for _, a := range attachers {
		if mode != SummaryAll && !r.rules.IsPowerCompany(a.Company) {
			continue
		}
		if a.IsNew {
			if mode == SummaryPowerShort {
				continue
			}
			height := a.Proposed
			if height == "" {
				height = a.Existing
			}
			if a.Category == survey.CategoryGuy {
				lines = append(lines, fmt.Sprintf("Add %s at %s", a.Name, height))
			} else {
				lines = append(lines, fmt.Sprintf("Install proposed %s at %s", a.Name, height))
			}
			continue
		}
		if a.Existing == "" || a.Proposed == "" {
			continue
		}
		delta := int(heights.Parse(a.Proposed) - heights.Parse(a.Existing))
		if delta == 0 {
			continue
		}
		action := "Raise"
		if delta < 0 {
			action = "Lower"
			delta = -delta
		}
		if mode == SummaryPowerShort {
			lines = append(lines, fmt.Sprintf("%s %s", action, shortName(a)))
		} else {
			lines = append(lines, fmt.Sprintf("%s %s %d\" from %s to %s", action, a.Name, delta, a.Existing, a.Proposed))
		}
	}
	return strings.Join(lines, "\n")
}

// shortName strips the owning company prefix from an attacher name.
func shortName(a Attacher) string {
	if a.Company != "" && strings.HasPrefix(strings.ToLower(a.Name), strings.ToLower(a.Company)) {
		return strings.TrimSpace(a.Name[len(a.Company):])
	}
	return a.Name
}
