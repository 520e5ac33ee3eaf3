package layout

import (
	"math"
	"strings"
	"testing"
)

func TestEstimateFontSizeBranches(t *testing.T) {
	cases := []struct {
		name  string
		line  string
		width float64
		base  int
		want  int
	}{
		// 2*50*0.65 = 65 < 70：放大 10%。
		{"short uppercase grows", "AB", 100, 50, 55},
		// 5*20*0.55 = 55 < 70。
		{"short lowercase grows", "hello", 100, 20, 22},
		// 4*50*0.65 = 130，介于 0.7*172.8 与 172.8 之间。
		{"fits unchanged", "CAJA", 192 * 0.9, 50, 50},
		// 10*20*0.55 = 110 > 100：20*(100/110)*0.95 = 17.27。
		{"shrinks proportionally", "abcdefghij", 100, 20, 17},
		// 按比例缩小到 22.96，但不低于 base/2 = 25。
		{"clamps to half base", "NRD CONTROL", 192 * 0.9, 50, 25},
		{"empty line grows", "", 192 * 0.9, 50, 55},
		{"zero base", "ABC", 100, 0, 0},
	}
	for _, tc := range cases {
		if got := EstimateFontSize(tc.line, tc.width, tc.base); got != tc.want {
			t.Fatalf("%s: EstimateFontSize(%q, %g, %d) = %d, want %d", tc.name, tc.line, tc.width, tc.base, got, tc.want)
		}
	}
}

// TestEstimateFontSizeBounds 断言：结果总在 [floor(base/2), ceil(base*1.1)] 区间内。
func TestEstimateFontSizeBounds(t *testing.T) {
	lines := []string{"", "a", "A", "caja", "CAJA", "control de cajas", strings.Repeat("W", 80), strings.Repeat("i", 300)}
	widths := []float64{0, 1, 50, 172.8, 460.8, 10000}
	bases := []int{0, 1, 7, 38, 50, 100, 130}
	for _, line := range lines {
		for _, w := range widths {
			for _, base := range bases {
				got := EstimateFontSize(line, w, base)
				lo := base / 2
				hi := int(math.Ceil(float64(base) * 1.1))
				if got < lo || got > hi {
					t.Fatalf("EstimateFontSize(%q, %g, %d) = %d outside [%d, %d]", line, w, base, got, lo, hi)
				}
			}
		}
	}
}

// TestEstimateFontSizeMonotonic 断言：同一大小写分支下，行越长字号不会越大。
func TestEstimateFontSizeMonotonic(t *testing.T) {
	for _, ch := range []string{"a", "A"} {
		for _, w := range []float64{100, 172.8, 460.8} {
			for _, base := range []int{38, 50, 100, 130} {
				prev := math.MaxInt
				for n := 0; n <= 60; n++ {
					got := EstimateFontSize(strings.Repeat(ch, n), w, base)
					if got > prev {
						t.Fatalf("non-monotonic at len %d (%q, w=%g, base=%d): %d > %d", n, ch, w, base, got, prev)
					}
					prev = got
				}
			}
		}
	}
}

func TestEstimateTextWidth(t *testing.T) {
	if got := EstimateTextWidth("AB", 50); math.Abs(got-65) > 1e-9 {
		t.Fatalf("expected 65, got %g", got)
	}
	if got := EstimateTextWidth("ab", 50); math.Abs(got-55) > 1e-9 {
		t.Fatalf("expected 55, got %g", got)
	}
	// 按字符计数：ñ 只算一个字符。
	if got := EstimateTextWidth("ñ", 10); math.Abs(got-5.5) > 1e-9 {
		t.Fatalf("expected 5.5, got %g", got)
	}
}
