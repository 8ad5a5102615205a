package ledger

import (
	"fmt"
	"math"
	"strings"

	"makeready/internal/geo"
	"makeready/internal/heights"
	"makeready/internal/survey"
)

// PoleNumber returns the pole's display number: the DLOC number, falling
// back to the pole tag. Numbers get a PL prefix unless they are NT poles
// or already carry one.
func (r *Resolver) PoleNumber(nodeID string) string {
	n := r.doc.Node(nodeID)
	v := strings.TrimSpace(n.Attribute("DLOC_number").First().String())
	if v == "" {
		v = strings.TrimSpace(n.Attribute("pole_tag").First().Get("tagtext").String())
	}
	if v == "" {
		return "N/A"
	}
	return plPrefix(v)
}

func plPrefix(v string) string {
	u := strings.ToUpper(v)
	if strings.HasPrefix(u, "NT") || strings.Contains(u, "PL") {
		return v
	}
	return "PL" + v
}

// PoleStructure returns the proposed pole spec when the survey has one,
// otherwise "{height}-{class}" from the existing pole attributes.
func (r *Resolver) PoleStructure(nodeID string) string {
	n := r.doc.Node(nodeID)
	if spec := firstUsable(n.Attribute("proposed_pole_spec")); spec != "" {
		return spec
	}
	height := attrPreferOne(n.Attribute("pole_height"))
	class := attrPreferOne(n.Attribute("pole_class"))
	if height != "" && class != "" {
		return height + "-" + class
	}
	return "N/A"
}

// firstUsable returns the first non-blank, non-"N/A" value in a bag,
// looking inside {value: ...} wrappers.
func firstUsable(a survey.Attr) string {
	for _, v := range a.Values() {
		if v.IsObject() {
			v = v.Get("value")
		}
		s := strings.TrimSpace(v.String())
		if s != "" && s != "N/A" {
			return s
		}
	}
	return ""
}

// attrPreferOne reads a measurement bag keyed by instance, preferring the
// "one" slot.
func attrPreferOne(a survey.Attr) string {
	if v := a.Key("one"); v.Exists() {
		return strings.TrimSpace(v.String())
	}
	for _, v := range a.Values() {
		s := strings.TrimSpace(v.String())
		if s != "" && s != "N/A" {
			return s
		}
	}
	return ""
}

// RedTag reports whether any surveyor flagged an existing red tag.
func (r *Resolver) RedTag(nodeID string) bool {
	return r.doc.Node(nodeID).Attribute("existing_red_tag?").AnyTrue()
}

// FinalCapacity returns the pole loading analysis percentage, "NA" when
// the analysis has not been run.
func (r *Resolver) FinalCapacity(nodeID string) string {
	v := r.doc.Node(nodeID).Attribute("final_passing_capacity_%").FirstNonEmpty()
	s := strings.TrimSpace(v.String())
	if s == "" {
		return "NA"
	}
	return s
}

// WorkType reports whether non-exempt third-party movement on the pole
// calls for a simple make-ready transfer.
func (r *Resolver) WorkType(nodeID string) string {
	photo := r.doc.MainPhoto(r.doc.Node(nodeID))
	for _, cat := range survey.Categories {
		for _, it := range photo.Detections(cat) {
			tr, ok := r.doc.Trace(it.TraceID())
			if !ok {
				continue
			}
			if r.rules.IsTransferExempt(tr.Company) {
				continue
			}
			if math.Abs(it.Move()) > moveEpsilon {
				return "Make Ready Simple"
			}
		}
	}
	return "None"
}

// AttachmentAction summarizes whether the applicant is installing new
// plant on the pole or keeping an existing attachment.
func AttachmentAction(attachers []Attacher) string {
	for _, a := range attachers {
		if a.IsNew {
			return "( I )nstalling"
		}
	}
	return "( E )xisting"
}

// ProposedGuyValue counts crew-flagged proposed guys on the main photo.
func (r *Resolver) ProposedGuyValue(nodeID string) string {
	photo := r.doc.MainPhoto(r.doc.Node(nodeID))
	count := 0
	for _, it := range photo.Detections(survey.CategoryGuy) {
		if it.ProposedFlag() {
			count++
		}
	}
	if count > 0 {
		return fmt.Sprintf("YES (%d)", count)
	}
	return "No"
}

// LowestMidspanHeights returns the lowest communication and lowest power
// wire heights across the connection's section photos as display tokens,
// "" when nothing qualifies.
func (r *Resolver) LowestMidspanHeights(connID string) (com, power string) {
	conn := r.doc.Connection(connID)
	lowestCom, lowestPower := math.Inf(1), math.Inf(1)
	for _, sec := range conn.Sections() {
		photo := r.doc.Photo(sec.MainPhotoID())
		if !photo.Exists() {
			continue
		}
		for _, it := range photo.Detections(survey.CategoryWire) {
			tr, ok := r.doc.Trace(it.TraceID())
			if !ok {
				continue
			}
			h, ok := it.MeasuredHeight()
			if !ok {
				continue
			}
			if r.rules.IsPowerCompany(tr.Company) {
				if r.rules.IsPowerMidspanType(tr.CableType) && h < lowestPower {
					lowestPower = h
				}
			} else if h < lowestCom {
				lowestCom = h
			}
		}
	}
	if !math.IsInf(lowestCom, 1) {
		com = heights.Format(lowestCom)
	}
	if !math.IsInf(lowestPower, 1) {
		power = heights.Format(lowestPower)
	}
	return com, power
}

// UndergroundRemedy describes the proposed riser transition for an
// underground connection, bearing from the pole toward the far structure.
func (r *Resolver) UndergroundRemedy(connID, fromNodeID, toNodeID string) string {
	company := r.doc.TraceCompanyForConnection(connID)
	if company == "" {
		return ""
	}
	fromLat, fromLon, ok := r.doc.MainPhoto(r.doc.Node(fromNodeID)).Coordinates()
	if !ok {
		return ""
	}
	toLat, toLon, ok := r.doc.MainPhoto(r.doc.Node(toNodeID)).Coordinates()
	if !ok {
		return ""
	}
	deg, compass := geo.Bearing(fromLat, fromLon, toLat, toLon)
	return fmt.Sprintf("Proposed %s to transition to UG connection to the %s", company, geo.Label(deg, compass))
}

// undergroundCount counts underground connections leaving the pole.
func (r *Resolver) undergroundCount(nodeID string) int {
	count := 0
	for _, c := range r.doc.Connections() {
		if c.IsUnderground() && c.NodeID1() == nodeID {
			count++
		}
	}
	return count
}

// IsStructure reports whether the node's type is on the structure
// allow-list, i.e. something that can carry attachments.
func (r *Resolver) IsStructure(nodeID string) bool {
	return r.rules.IsAllowedStructure(r.doc.Node(nodeID).Type())
}
