package ledger

import (
	"fmt"
	"sort"
	"strings"

	"makeready/internal/survey"
)

// Build resolves the full ledger: one row per qualifying aerial or
// underground connection, ordered by origin then destination SCID, with
// operation numbers assigned after the sort.
func (r *Resolver) Build() []Row {
	var rows []Row
	for _, conn := range r.doc.Connections() {
		if row, ok := r.BuildRow(conn); ok {
			rows = append(rows, row)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if c := CompareSCIDs(rows[i].SCID, rows[j].SCID); c != 0 {
			return c < 0
		}
		return CompareSCIDs(r.SCID(rows[i].ToNodeID), r.SCID(rows[j].ToNodeID)) < 0
	})
	for i := range rows {
		rows[i].OperationNumber = i + 1
	}
	return rows
}

// BuildRow resolves one connection into a ledger row. ok is false when
// the connection does not qualify: only aerial and underground cables
// count, reference structures and ped-to-ped runs are skipped, and an
// underground run must leave from a pole.
func (r *Resolver) BuildRow(conn survey.Connection) (Row, bool) {
	isAerial := conn.IsAerial()
	isUnderground := conn.IsUnderground()
	if !isAerial && !isUnderground {
		return Row{}, false
	}
	n1, n2 := conn.NodeID1(), conn.NodeID2()
	if n1 == "" || n2 == "" {
		return Row{}, false
	}

	type1 := r.doc.Node(n1).Type()
	type2 := r.doc.Node(n2).Type()
	if strings.EqualFold(type1, "reference") || strings.EqualFold(type2, "reference") {
		return Row{}, false
	}
	if strings.EqualFold(type1, "ped") && strings.EqualFold(type2, "ped") {
		return Row{}, false
	}

	var from, to string
	if isUnderground {
		switch {
		case strings.EqualFold(type1, "pole"):
			from, to = n1, n2
		case strings.EqualFold(type2, "pole"):
			from, to = n2, n1
		default:
			return Row{}, false
		}
	} else {
		// Aerial rows run from the lower SCID to the higher.
		if CompareSCIDs(r.SCID(n1), r.SCID(n2)) <= 0 {
			from, to = n1, n2
		} else {
			from, to = n2, n1
		}
	}

	main := r.MainAttachers(from)
	backspan, _ := r.Backspan(from)

	capacity := r.FinalCapacity(from)
	grade := "C"
	if capacity == "NA" {
		grade = "NA"
	}

	row := Row{
		ConnectionID:      conn.ID,
		Underground:       isUnderground,
		FromNodeID:        from,
		ToNodeID:          to,
		AttachmentAction:  AttachmentAction(main),
		PoleOwner:         r.rules.PoleOwner,
		PoleNumber:        r.PoleNumber(from),
		SCID:              r.SCID(from),
		PoleStructure:     r.PoleStructure(from),
		ProposedGuy:       r.ProposedGuyValue(from),
		Capacity:          capacity,
		ConstructionGrade: grade,
		WorkType:          r.WorkType(from),
		ResponsibleParty:  r.rules.ResponsibleParty,
		RedTag:            r.RedTag(from),
		FromPole:          r.poleDisplay(from),
		MainAttachers:     main,
		ReferenceSpans:    r.ReferenceSpans(from),
		Backspan:          backspan,
	}

	if isUnderground {
		row.ToPole = "UG"
		row.LowestCom = "NA"
		row.LowestPower = "NA"
		row.ProposedRiser = "YES (1)"
		row.RemedyDescription = r.UndergroundRemedy(conn.ID, from, to)
	} else {
		row.ToPole = r.poleDisplay(to)
		row.LowestCom, row.LowestPower = r.LowestMidspanHeights(conn.ID)
		if n := r.undergroundCount(from); n > 0 {
			row.ProposedRiser = fmt.Sprintf("YES (%d)", n)
		} else {
			row.ProposedRiser = "No"
		}
	}

	row.MovementSummary = r.MovementSummary(main, SummaryAll)
	row.PowerMovementSummary = r.MovementSummary(main, SummaryPowerOnly)
	row.ShortPowerSummary = r.MovementSummary(main, SummaryPowerShort)
	return row, true
}

// poleDisplay returns the best label for a pole endpoint: DLOC number,
// then pole tag, then SCID.
func (r *Resolver) poleDisplay(nodeID string) string {
	n := r.doc.Node(nodeID)
	if v := strings.TrimSpace(n.Attribute("DLOC_number").First().String()); v != "" && v != "N/A" {
		return plPrefix(v)
	}
	if v := strings.TrimSpace(n.Attribute("pole_tag").First().Get("tagtext").String()); v != "" && v != "N/A" {
		return plPrefix(v)
	}
	return r.SCID(nodeID)
}
