package ledger

import (
	"math"
	"strings"

	"makeready/internal/heights"
	"makeready/internal/survey"
)

// MidspanProposedHeight estimates where a named wire will sit at midspan
// after make-ready. The named wire's lowest occurrence across the
// connection's section photos is the midspan point; brand-new wires
// report their measured height directly, existing wires report a height
// only when a real move is recorded. Movement events are halved because
// only one end of the span moves.
func (r *Resolver) MidspanProposedHeight(connID, attacherName string) string {
	conn := r.doc.Connection(connID)
	if !conn.Exists() {
		return ""
	}
	want := strings.TrimSpace(attacherName)
	if want == "" {
		return ""
	}

	lowest := math.Inf(1)
	var lowestItem survey.Item
	var lowestTrace survey.Trace
	found := false
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
			if r.rules.IsPrimary(tr.CableType) {
				continue
			}
			if r.baseName(tr.Company, tr.CableType) != want {
				continue
			}
			h, ok := it.MeasuredHeight()
			if !ok {
				continue
			}
			if h < lowest {
				lowest, lowestItem, lowestTrace, found = h, it, tr, true
			}
		}
	}
	if !found {
		return ""
	}
	if lowestTrace.Proposed {
		return heights.Format(lowest)
	}

	move := lowestItem.Move()
	hasMove := math.Abs(move) > moveEpsilon
	var events []float64
	for _, v := range lowestItem.EffectiveMoves() {
		if math.Abs(v) > moveEpsilon {
			events = append(events, v)
		}
	}
	if !hasMove && len(events) == 0 {
		return ""
	}

	total := 0.0
	if hasMove {
		total = move
	}
	for _, v := range events {
		total += halfMove(v)
	}
	return heights.Format(lowest + total)
}
