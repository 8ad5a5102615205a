package survey

import "testing"

const testDoc = `{
	"nodes": {
		"n1": {
			"attributes": {
				"node_type": {"-Imported": "pole", "button_added": "Power"},
				"scid": {"auto_button": "001"},
				"existing_red_tag?": {"k1": false, "k2": true}
			},
			"photos": {
				"p0": {"association": "extra"},
				"p1": {"association": "main"},
				"p2": {"association": "main"}
			}
		},
		"n2": {"attributes": {"node_type": {"xyz": "Ped"}}}
	},
	"photos": {
		"p1": {
			"latitude": 29.4, "longitude": "-98.5",
			"photofirst_data": {
				"wire": {
					"w1": {"_trace": "t1", "_measured_height": 250},
					"w2": {"_trace": "t2", "_measured_height": "310.5", "mr_move": "-12",
						"_effective_moves": {"e1": 6, "e2": "junk", "e3": "-3"}}
				},
				"guying": {}
			}
		}
	},
	"traces": {
		"trace_data": {
			"t1": {"company": " CPS Energy ", "cable_type": "Neutral"},
			"t2": {"company": "AT&T", "cable_type": "Fiber", "proposed": true, "connection_id": "c1"}
		}
	},
	"connections": {
		"c1": {
			"node_id_1": "n1", "node_id_2": "n2",
			"attributes": {"connection_type": {"button_added": "aerial cable"}},
			"sections": {
				"s1": {"latitude": 29.41, "longitude": -98.51,
					"photos": {"sp1": {"association": "main"}}},
				"s2": {}
			}
		},
		"c2": {
			"node_id_1": "n2", "node_id_2": "n1",
			"attributes": {"connection_type": {"imported": "wire reference"}}
		}
	}
}`

func TestMainPhotoFirstMatchWins(t *testing.T) {
	doc := FromString(testDoc)
	n := doc.Node("n1")
	if got := n.MainPhotoID(); got != "p1" {
		t.Fatalf("MainPhotoID = %q, want p1", got)
	}
}

func TestMissingBranchesResolveEmpty(t *testing.T) {
	doc := FromString(testDoc)

	if doc.Node("absent").Exists() {
		t.Error("absent node should not exist")
	}
	if id := doc.Node("n2").MainPhotoID(); id != "" {
		t.Errorf("node without photos gave main photo %q", id)
	}
	if items := doc.Photo("").Detections(CategoryWire); len(items) != 0 {
		t.Errorf("zero photo returned %d detections", len(items))
	}
	if items := doc.MainPhoto(doc.Node("n1")).Detections(CategoryEquipment); len(items) != 0 {
		t.Errorf("missing category returned %d detections", len(items))
	}
	if _, ok := doc.Trace(""); ok {
		t.Error("blank trace id should not resolve")
	}
	if _, ok := doc.Trace("nope"); ok {
		t.Error("unknown trace id should not resolve")
	}
}

func TestNodeTypePrefersImportedKey(t *testing.T) {
	doc := FromString(testDoc)
	if got := doc.Node("n1").Type(); got != "pole" {
		t.Fatalf("Type = %q, want pole", got)
	}
	if got := doc.Node("n2").Type(); got != "Ped" {
		t.Fatalf("fallback Type = %q, want Ped", got)
	}
}

func TestAttrAccessors(t *testing.T) {
	doc := FromString(testDoc)
	n := doc.Node("n1")

	if got := n.Attribute("scid").PreferKeys("auto_button", "-Imported").String(); got != "001" {
		t.Errorf("scid = %q", got)
	}
	if !n.Attribute("existing_red_tag?").AnyTrue() {
		t.Error("red tag bag contains a true value")
	}
	if n.Attribute("missing").Exists() {
		t.Error("missing attribute should not exist")
	}
}

func TestItemFields(t *testing.T) {
	doc := FromString(testDoc)
	items := doc.Photo("p1").Detections(CategoryWire)
	if len(items) != 2 {
		t.Fatalf("got %d wire items", len(items))
	}

	h, ok := items[0].MeasuredHeight()
	if !ok || h != 250 {
		t.Errorf("numeric height = %v/%v", h, ok)
	}
	h, ok = items[1].MeasuredHeight()
	if !ok || h != 310.5 {
		t.Errorf("string height = %v/%v", h, ok)
	}
	if mv := items[1].Move(); mv != -12 {
		t.Errorf("string move = %v", mv)
	}
	if mv := items[0].Move(); mv != 0 {
		t.Errorf("absent move = %v", mv)
	}
	moves := items[1].EffectiveMoves()
	if len(moves) != 2 || moves[0] != 6 || moves[1] != -3 {
		t.Errorf("effective moves = %v, want parsable values only", moves)
	}
}

func TestTraceResolution(t *testing.T) {
	doc := FromString(testDoc)
	tr, ok := doc.Trace("t1")
	if !ok {
		t.Fatal("t1 should resolve")
	}
	if tr.Company != "CPS Energy" || tr.CableType != "Neutral" || tr.Proposed {
		t.Errorf("trace fields = %+v", tr)
	}
	if got := doc.TraceCompanyForConnection("c1"); got != "AT&T" {
		t.Errorf("connection trace company = %q", got)
	}
	if got := doc.TraceCompanyForConnection("nope"); got != "" {
		t.Errorf("unknown connection company = %q", got)
	}
}

func TestConnectionAccessors(t *testing.T) {
	doc := FromString(testDoc)
	c := doc.Connection("c1")
	if !c.IsAerial() || c.IsUnderground() || c.IsReference() {
		t.Errorf("c1 type tag misread: %q", c.TypeTag())
	}
	if !doc.Connection("c2").IsReference() {
		t.Error("c2 should be a reference connection via dynamic key")
	}
	if !c.Touches("n1") || c.Touches("n3") {
		t.Error("Touches broken")
	}

	secs := c.Sections()
	if len(secs) != 2 {
		t.Fatalf("got %d sections", len(secs))
	}
	lat, lon, ok := secs[0].Coordinates()
	if !ok || lat != 29.41 || lon != -98.51 {
		t.Errorf("section coords = %v,%v,%v", lat, lon, ok)
	}
	if _, _, ok := secs[1].Coordinates(); ok {
		t.Error("empty section should have no coordinates")
	}
	if id := secs[0].MainPhotoID(); id != "sp1" {
		t.Errorf("section main photo = %q", id)
	}
}

func TestPhotoCoordinatesMixedTypes(t *testing.T) {
	doc := FromString(testDoc)
	lat, lon, ok := doc.Photo("p1").Coordinates()
	if !ok || lat != 29.4 || lon != -98.5 {
		t.Fatalf("coords = %v,%v,%v", lat, lon, ok)
	}
}
