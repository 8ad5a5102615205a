// Package survey provides a read-only view over a parsed pole survey
// document. The underlying tree is loosely typed field data, so every
// accessor resolves missing or malformed branches to a zero value instead
// of failing. Object traversal follows document order, which matters for
// the first-match rules (main photo selection, attribute bags).
package survey

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Category partitions photo detections.
type Category string

const (
	CategoryWire      Category = "wire"
	CategoryEquipment Category = "equipment"
	CategoryGuy       Category = "guying"
)

// Categories lists all detection categories in the order they are scanned.
var Categories = []Category{CategoryWire, CategoryEquipment, CategoryGuy}

// Document wraps a survey job tree. It is safe for concurrent readers as
// long as nothing mutates the underlying data.
type Document struct {
	root gjson.Result
}

func FromJSON(data []byte) Document {
	return Document{root: gjson.ParseBytes(data)}
}

func FromString(data string) Document {
	return Document{root: gjson.Parse(data)}
}

// Node is a pole (or other structure) in the survey.
type Node struct {
	ID  string
	raw gjson.Result
}

func (d Document) Node(id string) Node {
	if id == "" {
		return Node{}
	}
	return Node{ID: id, raw: d.root.Get("nodes").Get(id)}
}

// Nodes returns every node in document order.
func (d Document) Nodes() []Node {
	var out []Node
	d.root.Get("nodes").ForEach(func(k, v gjson.Result) bool {
		out = append(out, Node{ID: k.String(), raw: v})
		return true
	})
	return out
}

func (n Node) Exists() bool { return n.raw.Exists() }

// Type returns the node's structure type tag, preferring the imported
// attribute key over whatever the crew added later.
func (n Node) Type() string {
	attr := n.Attribute("node_type")
	v := attr.PreferKeys("-Imported")
	if v.Type == gjson.String {
		return strings.TrimSpace(v.String())
	}
	return strings.TrimSpace(v.Raw)
}

// MainPhotoID returns the first photo flagged as the node's main
// association, or "" when the node has none.
func (n Node) MainPhotoID() string {
	return mainPhotoID(n.raw.Get("photos"))
}

func mainPhotoID(photos gjson.Result) string {
	id := ""
	photos.ForEach(func(k, v gjson.Result) bool {
		if v.Get("association").String() == "main" {
			id = k.String()
			return false
		}
		return true
	})
	return id
}

// MainPhoto resolves the node's main photo. The returned photo may not
// exist; accessors on it yield empty values.
func (d Document) MainPhoto(n Node) Photo {
	return d.Photo(n.MainPhotoID())
}

// Attr is a node attribute bag. Survey attributes are keyed by dynamic
// editor ids, so values are read positionally or by preferred key.
type Attr struct {
	raw gjson.Result
}

func (n Node) Attribute(name string) Attr {
	return Attr{raw: n.raw.Get("attributes").Get(escapePath(name))}
}

// escapePath neutralizes path metacharacters in field-entered attribute
// names, e.g. "existing_red_tag?".
func escapePath(k string) string {
	var b strings.Builder
	for _, r := range k {
		switch r {
		case '.', '*', '?', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (a Attr) Exists() bool { return a.raw.Exists() }

// First returns the first value in the bag in document order.
func (a Attr) First() gjson.Result {
	var first gjson.Result
	a.raw.ForEach(func(_, v gjson.Result) bool {
		first = v
		return false
	})
	return first
}

// Key returns the value at an exact key.
func (a Attr) Key(k string) gjson.Result {
	return a.raw.Get(k)
}

// Values returns every value in the bag in document order.
func (a Attr) Values() []gjson.Result {
	var out []gjson.Result
	a.raw.ForEach(func(_, v gjson.Result) bool {
		out = append(out, v)
		return true
	})
	return out
}

// PreferKeys returns the value at the first present key, falling back to
// the first value in the bag.
func (a Attr) PreferKeys(keys ...string) gjson.Result {
	for _, k := range keys {
		if v := a.raw.Get(k); v.Exists() {
			return v
		}
	}
	return a.First()
}

// FirstNonEmpty returns the first value whose string form is non-blank.
func (a Attr) FirstNonEmpty() gjson.Result {
	var found gjson.Result
	a.raw.ForEach(func(_, v gjson.Result) bool {
		if strings.TrimSpace(v.String()) != "" {
			found = v
			return false
		}
		return true
	})
	return found
}

// AnyTrue reports whether any value in the bag is boolean true.
func (a Attr) AnyTrue() bool {
	any := false
	a.raw.ForEach(func(_, v gjson.Result) bool {
		if v.Type == gjson.True {
			any = true
			return false
		}
		return true
	})
	return any
}

// Photo is one survey photo with its detected items.
type Photo struct {
	ID  string
	raw gjson.Result
}

func (d Document) Photo(id string) Photo {
	if id == "" {
		return Photo{}
	}
	return Photo{ID: id, raw: d.root.Get("photos").Get(id)}
}

func (p Photo) Exists() bool { return p.raw.Exists() }

// Coordinates returns the photo's position when both halves are present.
func (p Photo) Coordinates() (lat, lon float64, ok bool) {
	latRes := p.raw.Get("latitude")
	lonRes := p.raw.Get("longitude")
	lat, latOK := floatValue(latRes)
	lon, lonOK := floatValue(lonRes)
	return lat, lon, latOK && lonOK
}

// Detections returns the photo's detected items for one category, in
// document order. Missing categories yield an empty slice.
func (p Photo) Detections(c Category) []Item {
	var out []Item
	p.raw.Get("photofirst_data").Get(string(c)).ForEach(func(_, v gjson.Result) bool {
		out = append(out, Item{raw: v})
		return true
	})
	return out
}

// Item is one detected attachment on a photo.
type Item struct {
	raw gjson.Result
}

func (it Item) TraceID() string { return it.raw.Get("_trace").String() }

// MeasuredHeight returns the measured height in inches. ok is false when
// the field is missing or unparsable.
func (it Item) MeasuredHeight() (float64, bool) {
	return floatValue(it.raw.Get("_measured_height"))
}

// Move returns the make-ready move in inches; absent or malformed is zero.
func (it Item) Move() float64 {
	v, ok := floatValue(it.raw.Get("mr_move"))
	if !ok {
		return 0
	}
	return v
}

// EffectiveMoves returns the parseable movement-event values in inches, in
// document order. Unparsable entries are skipped.
func (it Item) EffectiveMoves() []float64 {
	var out []float64
	it.raw.Get("_effective_moves").ForEach(func(_, v gjson.Result) bool {
		if f, ok := floatValue(v); ok {
			out = append(out, f)
		}
		return true
	})
	return out
}

func (it Item) EquipmentType() string {
	return strings.TrimSpace(it.raw.Get("equipment_type").String())
}

func (it Item) GuyType() string {
	return strings.TrimSpace(it.raw.Get("guying_type").String())
}

func (it Item) MeasurementOf() string {
	return strings.TrimSpace(it.raw.Get("measurement_of").String())
}

// ProposedFlag is the item-level proposed marker used for guy counting;
// the authoritative brand-new flag lives on the trace.
func (it Item) ProposedFlag() bool {
	return it.raw.Get("proposed").Type == gjson.True
}

// Trace is the ownership record behind a detected item.
type Trace struct {
	Company       string
	CableType     string
	EquipmentType string
	Proposed      bool
}

// Trace resolves a trace reference. ok is false for blank or unknown ids;
// items with unresolvable traces are dropped by every caller.
func (d Document) Trace(id string) (Trace, bool) {
	if id == "" {
		return Trace{}, false
	}
	raw := d.root.Get("traces.trace_data").Get(id)
	if !raw.Exists() {
		return Trace{}, false
	}
	return Trace{
		Company:       strings.TrimSpace(raw.Get("company").String()),
		CableType:     strings.TrimSpace(raw.Get("cable_type").String()),
		EquipmentType: strings.TrimSpace(raw.Get("equipment_type").String()),
		Proposed:      raw.Get("proposed").Type == gjson.True,
	}, true
}

// TraceCompanyForConnection finds the company on the first trace bound to
// the given connection, used for underground remedy text.
func (d Document) TraceCompanyForConnection(connID string) string {
	company := ""
	d.root.Get("traces.trace_data").ForEach(func(_, v gjson.Result) bool {
		if v.Get("connection_id").String() == connID {
			if c := strings.TrimSpace(v.Get("company").String()); c != "" {
				company = c
				return false
			}
		}
		return true
	})
	return company
}

// Connection is a span between two structures.
type Connection struct {
	ID  string
	raw gjson.Result
}

func (d Document) Connection(id string) Connection {
	if id == "" {
		return Connection{}
	}
	return Connection{ID: id, raw: d.root.Get("connections").Get(id)}
}

// Connections returns every connection in document order.
func (d Document) Connections() []Connection {
	var out []Connection
	d.root.Get("connections").ForEach(func(k, v gjson.Result) bool {
		out = append(out, Connection{ID: k.String(), raw: v})
		return true
	})
	return out
}

func (c Connection) Exists() bool   { return c.raw.Exists() }
func (c Connection) NodeID1() string { return c.raw.Get("node_id_1").String() }
func (c Connection) NodeID2() string { return c.raw.Get("node_id_2").String() }

// TypeTag returns the connection type, preferring the crew-added value
// over whatever dynamic key the import produced.
func (c Connection) TypeTag() string {
	ct := c.raw.Get("attributes.connection_type")
	if v := ct.Get("button_added"); v.Exists() {
		return strings.TrimSpace(v.String())
	}
	tag := ""
	ct.ForEach(func(_, v gjson.Result) bool {
		tag = strings.TrimSpace(v.String())
		return false
	})
	return tag
}

func (c Connection) IsAerial() bool      { return c.TypeTag() == "aerial cable" }
func (c Connection) IsUnderground() bool { return c.TypeTag() == "underground cable" }

func (c Connection) IsReference() bool {
	return strings.Contains(strings.ToLower(c.TypeTag()), "reference")
}

// Touches reports whether either endpoint is the given node.
func (c Connection) Touches(nodeID string) bool {
	return c.NodeID1() == nodeID || c.NodeID2() == nodeID
}

// Sections returns the connection's sections in document order.
func (c Connection) Sections() []Section {
	var out []Section
	c.raw.Get("sections").ForEach(func(k, v gjson.Result) bool {
		out = append(out, Section{ID: k.String(), raw: v})
		return true
	})
	return out
}

// Section is one survey point along a connection's physical run.
type Section struct {
	ID  string
	raw gjson.Result
}

func (s Section) Coordinates() (lat, lon float64, ok bool) {
	lat, latOK := floatValue(s.raw.Get("latitude"))
	lon, lonOK := floatValue(s.raw.Get("longitude"))
	return lat, lon, latOK && lonOK
}

// MainPhotoID returns the section's main photo id, or "" when absent.
func (s Section) MainPhotoID() string {
	return mainPhotoID(s.raw.Get("photos"))
}

// floatValue reads a numeric field that crews sometimes record as a
// string. ok is false for anything that does not parse.
func floatValue(r gjson.Result) (float64, bool) {
	switch r.Type {
	case gjson.Number:
		return r.Float(), true
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(r.String()), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
