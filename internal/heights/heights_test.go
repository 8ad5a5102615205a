package heights

import (
	"math"
	"testing"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		inches float64
		want   string
	}{
		{240, "20'-0\""},
		{252, "21'-0\""},
		{250, "20'-10\""},
		{0, "0'-0\""},
		{11.6, "1'-0\""},
		{185.4, "15'-5\""},
	}
	for _, c := range cases {
		if got := Format(c.inches); got != c.want {
			t.Errorf("Format(%v) = %q, want %q", c.inches, got, c.want)
		}
	}
}

func TestFormatNonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := Format(v); got != "" {
			t.Errorf("Format(%v) = %q, want empty", v, got)
		}
	}
}

func TestParseMalformed(t *testing.T) {
	for _, tok := range []string{"", "garbage", "20", "x'-y\""} {
		if got := Parse(tok); got != 0 {
			t.Errorf("Parse(%q) = %v, want 0", tok, got)
		}
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	for n := 0; n <= 600; n++ {
		if got := Parse(Format(float64(n))); got != float64(n) {
			t.Fatalf("round trip failed for %d: got %v", n, got)
		}
	}
}
