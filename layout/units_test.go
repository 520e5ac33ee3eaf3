package layout

import (
	"math"
	"testing"
)

// TestPtMmRoundTrip 验证 pt↔mm 换算的往返精度（允许极小的浮点误差）。
func TestPtMmRoundTrip(t *testing.T) {
	samples := []float64{0, 0.001, 1, 12, 14.4, 72, 96, 144, 1000}
	for _, pt := range samples {
		back := pt * PtToMm * MmToPt
		if diff := math.Abs(back - pt); diff > 1e-9 {
			t.Fatalf("pt→mm→pt 往返误差过大: in=%gpt back=%g diff=%g", pt, back, diff)
		}
	}
}

func TestParseQuantity(t *testing.T) {
	cases := []struct {
		in       string
		value    float64
		unit     Unit
		fraction float64
	}{
		{"90%", 90, UnitPercent, 0.9},
		{"1.05x", 1.05, UnitFactor, 1.05},
		{"192", 192, UnitNone, 192},
		{"192px", 192, UnitPX, 192},
		{" 12pt ", 12, UnitPT, 12},
	}
	for _, tc := range cases {
		q, err := ParseQuantity(tc.in)
		if err != nil {
			t.Fatalf("ParseQuantity(%q): %v", tc.in, err)
		}
		if q.Value != tc.value || q.Unit != tc.unit {
			t.Fatalf("ParseQuantity(%q) = %+v", tc.in, q)
		}
		if math.Abs(q.Fraction()-tc.fraction) > 1e-9 {
			t.Fatalf("%q fraction = %g, want %g", tc.in, q.Fraction(), tc.fraction)
		}
	}
	if q, _ := ParseQuantity("12pt"); q.Pixels() != 16 {
		t.Fatalf("12pt should be 16px, got %g", q.Pixels())
	}
	for _, bad := range []string{"", "abc", "%"} {
		if _, err := ParseQuantity(bad); err == nil {
			t.Fatalf("ParseQuantity(%q) should fail", bad)
		}
	}
	if s := (Quantity{Value: 1.05, Unit: UnitFactor}).String(); s != "1.05x" {
		t.Fatalf("unexpected String %q", s)
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#dc2626")
	if err != nil || c != (Color{R: 0xdc, G: 0x26, B: 0x26}) {
		t.Fatalf("unexpected color %+v err=%v", c, err)
	}
	c, err = ParseColor("#fff")
	if err != nil || c.Hex() != "#ffffff" {
		t.Fatalf("unexpected short color %+v err=%v", c, err)
	}
	if _, err := ParseColor("#zzzzzz"); err == nil {
		t.Fatalf("invalid hex should fail")
	}
	if _, err := ParseColor("#12345"); err == nil {
		t.Fatalf("invalid length should fail")
	}
}
