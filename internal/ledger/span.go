package ledger

import (
	"makeready/internal/geo"
	"makeready/internal/survey"
)

// spanItem accumulates the lowest occurrence of a named wire or guy
// across a connection's section photos.
type spanItem struct {
	company   string
	height    float64
	move      float64
	effective []float64
	category  survey.Category
}

// Backspan resolves the span arriving at the pole: the first connection
// whose far endpoint is this pole. found is false when the pole starts
// the route.
func (r *Resolver) Backspan(nodeID string) (SpanSet, bool) {
	var conn survey.Connection
	found := false
	for _, c := range r.doc.Connections() {
		if c.NodeID2() == nodeID {
			conn = c
			found = true
			break
		}
	}
	if !found {
		return SpanSet{}, false
	}

	set := SpanSet{Bearing: r.spanBearing(nodeID, firstSection(conn))}
	neutral, hasNeutral := r.NeutralWireHeight(nodeID)

	// Each attacher name keeps its lowest sighting across all sections.
	best := map[string]spanItem{}
	var order []string
	record := func(name string, si spanItem) {
		prev, ok := best[name]
		if !ok {
			order = append(order, name)
			best[name] = si
			return
		}
		if si.height < prev.height {
			best[name] = si
		}
	}

	for _, sec := range conn.Sections() {
		photo := r.doc.Photo(sec.MainPhotoID())
		if !photo.Exists() {
			continue
		}
		for _, it := range photo.Detections(survey.CategoryWire) {
			tr, ok := r.doc.Trace(it.TraceID())
			if !ok || tr.Company == "" || tr.CableType == "" {
				continue
			}
			if r.rules.IsPrimary(tr.CableType) {
				continue
			}
			h, ok := it.MeasuredHeight()
			if !ok {
				continue
			}
			record(r.baseName(tr.Company, tr.CableType), spanItem{
				company: tr.Company, height: h, move: it.Move(),
				effective: it.EffectiveMoves(), category: survey.CategoryWire,
			})
		}
		for _, it := range photo.Detections(survey.CategoryGuy) {
			tr, ok := r.doc.Trace(it.TraceID())
			if !ok || tr.Company == "" || tr.CableType == "" {
				continue
			}
			h, ok := it.MeasuredHeight()
			if !ok || !hasNeutral || h >= neutral {
				continue
			}
			record(r.baseName(tr.Company, tr.CableType)+" (Down Guy)", spanItem{
				company: tr.Company, height: h, move: it.Move(),
				effective: it.EffectiveMoves(), category: survey.CategoryGuy,
			})
		}
	}

	for _, name := range order {
		si := best[name]
		existing, proposed := resolveSpanHeights(si.height, si.move, si.effective)
		set.Attachers = append(set.Attachers, Attacher{
			Name: name, Company: si.company,
			Existing: existing, Proposed: proposed,
			RawHeight: si.height, Category: si.category,
		})
	}
	sortByHeightDesc(set.Attachers)
	return set, true
}

// ReferenceSpans resolves every reference connection touching the pole.
// Bearing and detections come from the middle section of each, which is
// the representative midspan survey point.
func (r *Resolver) ReferenceSpans(nodeID string) []SpanSet {
	neutral, hasNeutral := r.NeutralWireHeight(nodeID)

	var out []SpanSet
	for _, c := range r.doc.Connections() {
		if !c.IsReference() || !c.Touches(nodeID) {
			continue
		}
		mid, ok := middleSection(c)
		if !ok {
			continue
		}
		photo := r.doc.Photo(mid.MainPhotoID())
		if !photo.Exists() {
			continue
		}

		set := SpanSet{Bearing: r.spanBearing(nodeID, mid)}
		for _, it := range photo.Detections(survey.CategoryWire) {
			tr, ok := r.doc.Trace(it.TraceID())
			if !ok || tr.Company == "" || tr.CableType == "" {
				continue
			}
			if r.rules.IsPrimary(tr.CableType) {
				continue
			}
			h, ok := it.MeasuredHeight()
			if !ok {
				continue
			}
			existing, proposed := resolveSpanHeights(h, it.Move(), it.EffectiveMoves())
			set.Attachers = append(set.Attachers, Attacher{
				Name: r.baseName(tr.Company, tr.CableType), Company: tr.Company,
				Existing: existing, Proposed: proposed,
				RawHeight: h, Category: survey.CategoryWire,
			})
		}
		for _, it := range photo.Detections(survey.CategoryGuy) {
			tr, ok := r.doc.Trace(it.TraceID())
			if !ok || tr.Company == "" || tr.CableType == "" {
				continue
			}
			h, ok := it.MeasuredHeight()
			if !ok || !hasNeutral || h >= neutral {
				continue
			}
			existing, proposed := resolveSpanHeights(h, it.Move(), it.EffectiveMoves())
			set.Attachers = append(set.Attachers, Attacher{
				Name: r.baseName(tr.Company, tr.CableType) + " (Down Guy)", Company: tr.Company,
				Existing: existing, Proposed: proposed,
				RawHeight: h, Category: survey.CategoryGuy,
			})
		}
		if len(set.Attachers) == 0 {
			continue
		}
		sortByHeightDesc(set.Attachers)
		out = append(out, set)
	}
	return out
}

// FindBackspanConnection returns the id of the first aerial connection
// arriving at the pole, or "" when none does.
func (r *Resolver) FindBackspanConnection(nodeID string) string {
	for _, c := range r.doc.Connections() {
		if c.IsUnderground() {
			continue
		}
		if c.NodeID2() == nodeID {
			return c.ID
		}
	}
	return ""
}

// FindBackspanConnectionBySCID orients every connection by SCID order and
// returns the first one whose destination is the pole. Unlike
// FindBackspanConnection this variant does not skip underground
// connections and ignores how the surveyor happened to record the
// endpoints.
func (r *Resolver) FindBackspanConnectionBySCID(nodeID string) string {
	for _, c := range r.doc.Connections() {
		n1, n2 := c.NodeID1(), c.NodeID2()
		if n1 == "" || n2 == "" {
			continue
		}
		to := n2
		if CompareSCIDs(r.SCID(n1), r.SCID(n2)) > 0 {
			to = n1
		}
		if to == nodeID {
			return c.ID
		}
	}
	return ""
}

// spanBearing renders the bearing from the pole's main photo toward a
// section point, "" when either position is unknown.
func (r *Resolver) spanBearing(nodeID string, sec survey.Section) string {
	toLat, toLon, ok := sec.Coordinates()
	if !ok {
		return ""
	}
	fromLat, fromLon, ok := r.doc.MainPhoto(r.doc.Node(nodeID)).Coordinates()
	if !ok {
		return ""
	}
	deg, compass := geo.Bearing(fromLat, fromLon, toLat, toLon)
	return geo.Label(deg, compass)
}

func firstSection(c survey.Connection) survey.Section {
	secs := c.Sections()
	if len(secs) == 0 {
		return survey.Section{}
	}
	return secs[0]
}

func middleSection(c survey.Connection) (survey.Section, bool) {
	secs := c.Sections()
	if len(secs) == 0 {
		return survey.Section{}, false
	}
	return secs[len(secs)/2], true
}
