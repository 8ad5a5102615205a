package ledger

import "testing"

func TestBuildQualifyingConnections(t *testing.T) {
	r := testResolver()
	rows := r.Build()
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2 (aerial + underground): %+v", len(rows), rows)
	}

	if rows[0].ConnectionID != "cAB" || rows[1].ConnectionID != "cUG" {
		t.Fatalf("row order = %q, %q", rows[0].ConnectionID, rows[1].ConnectionID)
	}
	if rows[0].OperationNumber != 1 || rows[1].OperationNumber != 2 {
		t.Error("operation numbers should follow the sorted order")
	}
}

func TestAerialRowFields(t *testing.T) {
	r := testResolver()
	rows := r.Build()
	row := rows[0]

	if row.Underground {
		t.Fatal("cAB row should be aerial")
	}
	// The recorded endpoints are reversed; the row runs low SCID to high.
	if row.FromNodeID != "nA" || row.ToNodeID != "nB" {
		t.Errorf("orientation = %s -> %s", row.FromNodeID, row.ToNodeID)
	}
	if row.SCID != "001" {
		t.Errorf("scid = %q", row.SCID)
	}
	if row.FromPole != "PL12345" || row.ToPole != "PL678" {
		t.Errorf("pole labels = %q -> %q", row.FromPole, row.ToPole)
	}
	if row.PoleNumber != "PL12345" {
		t.Errorf("pole number = %q", row.PoleNumber)
	}
	if row.PoleStructure != "40-4" {
		t.Errorf("pole structure = %q", row.PoleStructure)
	}
	if row.AttachmentAction != "( I )nstalling" {
		t.Errorf("attachment action = %q", row.AttachmentAction)
	}
	if row.WorkType != "Make Ready Simple" {
		t.Errorf("work type = %q", row.WorkType)
	}
	if !row.RedTag {
		t.Error("red tag flag lost")
	}
	if row.Capacity != "78.5" || row.ConstructionGrade != "C" {
		t.Errorf("capacity/grade = %q/%q", row.Capacity, row.ConstructionGrade)
	}
	if row.ProposedGuy != "YES (1)" {
		t.Errorf("proposed guy = %q", row.ProposedGuy)
	}
	// The pole also feeds an underground run.
	if row.ProposedRiser != "YES (1)" {
		t.Errorf("proposed riser = %q", row.ProposedRiser)
	}
	if row.LowestCom != `15'-0"` || row.LowestPower != `21'-8"` {
		t.Errorf("lowest heights = %q/%q", row.LowestCom, row.LowestPower)
	}
	if len(row.MainAttachers) != 5 {
		t.Errorf("main attachers = %d", len(row.MainAttachers))
	}
	if len(row.ReferenceSpans) != 1 {
		t.Errorf("reference spans = %d", len(row.ReferenceSpans))
	}
	if len(row.Backspan.Attachers) != 3 {
		t.Errorf("backspan attachers = %d", len(row.Backspan.Attachers))
	}
	if row.MovementSummary == "" || row.PowerMovementSummary == "" {
		t.Error("movement summaries missing")
	}
}

func TestUndergroundRowFields(t *testing.T) {
	r := testResolver()
	rows := r.Build()
	row := rows[1]

	if !row.Underground {
		t.Fatal("cUG row should be underground")
	}
	if row.FromNodeID != "nA" || row.ToPole != "UG" {
		t.Errorf("underground endpoints = %s / %q", row.FromNodeID, row.ToPole)
	}
	if row.LowestCom != "NA" || row.LowestPower != "NA" {
		t.Errorf("underground lowest heights = %q/%q", row.LowestCom, row.LowestPower)
	}
	if row.ProposedRiser != "YES (1)" {
		t.Errorf("underground riser = %q", row.ProposedRiser)
	}
	want := "Proposed AT&T to transition to UG connection to the W (270°)"
	if row.RemedyDescription != want {
		t.Errorf("remedy = %q, want %q", row.RemedyDescription, want)
	}
}

func TestGradeFollowsCapacity(t *testing.T) {
	r := testResolver()
	if got := r.FinalCapacity("nB"); got != "NA" {
		t.Errorf("capacity without analysis = %q", got)
	}
}

func TestPoleStructureFallbacks(t *testing.T) {
	r := testResolver()
	if got := r.PoleStructure("nB"); got != "45-3" {
		t.Errorf("proposed spec should win, got %q", got)
	}
	if got := r.PoleStructure("nPed"); got != "N/A" {
		t.Errorf("missing attributes = %q", got)
	}
}

func TestIsStructure(t *testing.T) {
	r := testResolver()
	if !r.IsStructure("nA") {
		t.Error("pole should be a structure")
	}
	if r.IsStructure("nPed") || r.IsStructure("nRef") {
		t.Error("pedestals and reference points are not structures")
	}
}
