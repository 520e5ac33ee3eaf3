package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// This file defines unit-aware quantities used by profile sheets and the
// conversions the canvas backend needs.

// Unit represents the unit suffix of a numeric value in a profile sheet.
type Unit int

const (
	UnitNone    Unit = iota // bare number
	UnitPX                  // pixels
	UnitPT                  // points
	UnitPercent             // percentage, 90% == 0.9
	UnitFactor              // multiplier, 1.05x
)

// Conversion constants between pt and mm. The canvas backend maps one canvas
// pixel to one millimetre, so font sizes in px convert to pt with MmToPt.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
	PxToPt = 0.75
)

// UnitToString returns the suffix for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitPX:
		return "px"
	case UnitPT:
		return "pt"
	case UnitPercent:
		return "%"
	case UnitFactor:
		return "x"
	default:
		return ""
	}
}

// Quantity preserves a numeric value with its unit.
type Quantity struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

func (q Quantity) String() string {
	return strconv.FormatFloat(q.Value, 'f', -1, 64) + UnitToString(q.Unit)
}

// Fraction returns the value as a ratio: percentages are divided by 100.
func (q Quantity) Fraction() float64 {
	if q.Unit == UnitPercent {
		return q.Value / 100
	}
	return q.Value
}

// Pixels returns the value in canvas pixels. Points convert at 96 dpi.
func (q Quantity) Pixels() float64 {
	if q.Unit == UnitPT {
		return q.Value / PxToPt
	}
	return q.Value
}

// ParseQuantity parses a sheet number such as "90%", "1.05x", "192px" or "50".
func ParseQuantity(value string) (Quantity, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Quantity{}, fmt.Errorf("数值为空")
	}
	unit := UnitNone
	num := v
	for _, suf := range []struct {
		s string
		u Unit
	}{{"px", UnitPX}, {"pt", UnitPT}, {"%", UnitPercent}, {"x", UnitFactor}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Quantity{}, fmt.Errorf("数值 %q 无法解析: %w", value, err)
	}
	return Quantity{Value: f, Unit: unit}, nil
}
