package ledger

import "testing"

func TestCompareSCIDs(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"001", "002", -1},
		{"002", "001", 1},
		{"002", "002", 0},
		{"2", "010", -1},
		{"002", "002.A", -1},
		{"002.A", "002", 1},
		{"002.A", "002.B", -1},
		{"N/A", "001", 1},
		{"001", "N/A", -1},
		{"abc", "abd", -1},
	}
	for _, c := range cases {
		got := CompareSCIDs(c.a, c.b)
		switch {
		case c.want < 0 && got >= 0, c.want > 0 && got <= 0, c.want == 0 && got != 0:
			t.Errorf("CompareSCIDs(%q, %q) = %d, want sign %d", c.a, c.b, got, c.want)
		}
	}
}

func TestSCIDLookup(t *testing.T) {
	r := testResolver()
	if got := r.SCID("nA"); got != "001" {
		t.Errorf("SCID(nA) = %q", got)
	}
	if got := r.SCID("nRef"); got != "N/A" {
		t.Errorf("node without scid = %q", got)
	}
}
