package ledger

import (
	"math"
	"strings"

	"makeready/internal/survey"
)

// itemKey identifies one detection on a photo by category and position.
type itemKey struct {
	category survey.Category
	index    int
}

// MainAttachers resolves the ordered attachment list on a pole's main
// photo. Items are trace-resolved across every detection category, the
// power-exclusive cut keeps only the lowest power attachment, equipment
// and guys above the neutral are dropped as power-space hardware, and the
// survivors come back sorted from highest to lowest.
func (r *Resolver) MainAttachers(nodeID string) []Attacher {
	photo := r.doc.MainPhoto(r.doc.Node(nodeID))
	if !photo.Exists() {
		return nil
	}

	neutral, hasNeutral := r.NeutralWireHeight(nodeID)
	winner, hasWinner := r.lowestPowerItem(photo)

	var out []Attacher
	for _, cat := range survey.Categories {
		for idx, it := range photo.Detections(cat) {
			ti, ok := r.resolveTrace(it, cat)
			if !ok {
				continue
			}

			label := ti.Label
			company := ti.Company
			if label == "" {
				switch cat {
				case survey.CategoryEquipment:
					label = it.EquipmentType()
				case survey.CategoryGuy:
					label = it.GuyType()
				}
			}
			if company == "" && cat == survey.CategoryEquipment {
				// Untraced street lights and risers belong to the power company.
				et := strings.ToLower(it.EquipmentType())
				if et == "street_light" || et == "riser" {
					company = r.rules.PowerCompany
				}
			}
			if label == "" {
				continue
			}
			if r.rules.IsPrimary(label) {
				continue
			}

			measured, hasMeasured := it.MeasuredHeight()

			if r.rules.IsPowerCompany(ti.Company) && r.rules.IsPowerExclusiveType(ti.Label) {
				if !hasWinner || winner != (itemKey{cat, idx}) {
					continue
				}
			}

			if cat != survey.CategoryWire && hasNeutral && hasMeasured && measured > neutral {
				continue
			}

			existing, proposed, raw := resolveHeights(measured, hasMeasured, it.Move(), ti.Proposed)
			out = append(out, Attacher{
				Name:      r.attacherName(cat, company, label, it),
				Company:   company,
				Existing:  existing,
				Proposed:  proposed,
				RawHeight: raw,
				Category:  cat,
				IsNew:     ti.Proposed,
			})
		}
	}
	sortByHeightDesc(out)
	return out
}

// lowestPowerItem finds the single power attachment of an exclusive type
// with the minimum parsed height anywhere on the photo. Items without a
// parsable height never win and are dropped by the exclusivity cut.
func (r *Resolver) lowestPowerItem(photo survey.Photo) (itemKey, bool) {
	var best itemKey
	bestHeight := math.Inf(1)
	found := false
	for _, cat := range survey.Categories {
		for idx, it := range photo.Detections(cat) {
			ti, ok := r.resolveTrace(it, cat)
			if !ok {
				continue
			}
			if !r.rules.IsPowerCompany(ti.Company) || !r.rules.IsPowerExclusiveType(ti.Label) {
				continue
			}
			h, ok := it.MeasuredHeight()
			if !ok {
				continue
			}
			if h < bestHeight {
				bestHeight = h
				best = itemKey{cat, idx}
				found = true
			}
		}
	}
	return best, found
}

// NeutralWireHeight returns the lowest power neutral wire height on the
// pole's main photo, the boundary between power and communication space.
func (r *Resolver) NeutralWireHeight(nodeID string) (float64, bool) {
	photo := r.doc.MainPhoto(r.doc.Node(nodeID))
	lowest := math.Inf(1)
	found := false
	for _, it := range photo.Detections(survey.CategoryWire) {
		tr, ok := r.doc.Trace(it.TraceID())
		if !ok {
			continue
		}
		if !r.rules.IsPowerCompany(tr.Company) || !r.rules.IsNeutral(tr.CableType) {
			continue
		}
		if h, ok := it.MeasuredHeight(); ok && h < lowest {
			lowest = h
			found = true
		}
	}
	return lowest, found
}

// attacherName builds the display name for an attachment. Street lights,
// risers and down guys override the base "{company} {type}" form, and
// other equipment and guys carry their subtype as a suffix.
func (r *Resolver) attacherName(cat survey.Category, company, label string, it survey.Item) string {
	lower := strings.ToLower(label)
	switch {
	case cat == survey.CategoryEquipment && lower == "street_light":
		name := strings.TrimSpace(company + " Street Light")
		if mo := strings.TrimSpace(strings.ReplaceAll(it.MeasurementOf(), "_", " ")); mo != "" {
			name += " (" + mo + ")"
		}
		return name
	case cat == survey.CategoryEquipment && lower == "riser":
		return strings.TrimSpace(company + " Riser")
	case cat == survey.CategoryGuy && lower == "down guy":
		return strings.TrimSpace(company + " Down Guy")
	case cat == survey.CategoryGuy:
		if gt := it.GuyType(); gt != "" {
			return r.baseName(company, label) + " (" + gt + ")"
		}
		return r.baseName(company, label) + " (Guy)"
	case cat == survey.CategoryEquipment:
		et := it.EquipmentType()
		if et == "" {
			return r.baseName(company, label) + " (Equipment)"
		}
		if !strings.EqualFold(et, "riser") {
			return r.baseName(company, label) + " (" + et + ")"
		}
		return r.baseName(company, label)
	default:
		return r.baseName(company, label)
	}
}

// baseName is "{company} {type}", except power attachments go by type
// alone.
func (r *Resolver) baseName(company, label string) string {
	if r.rules.IsPowerCompany(company) {
		return label
	}
	return strings.TrimSpace(company + " " + label)
}
