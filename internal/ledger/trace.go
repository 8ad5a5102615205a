package ledger

import "makeready/internal/survey"

// traceInfo is the resolved ownership of a detected item.
type traceInfo struct {
	Company  string
	Label    string
	Proposed bool
}

// resolveTrace looks up an item's trace and picks its type label: the
// cable type for wires and guys, the equipment type for equipment. ok is
// false when the trace reference is blank or unknown.
func (r *Resolver) resolveTrace(it survey.Item, cat survey.Category) (traceInfo, bool) {
	tr, ok := r.doc.Trace(it.TraceID())
	if !ok {
		return traceInfo{}, false
	}
	label := tr.CableType
	if cat == survey.CategoryEquipment {
		label = tr.EquipmentType
	}
	return traceInfo{Company: tr.Company, Label: label, Proposed: tr.Proposed}, true
}
