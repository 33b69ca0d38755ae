package layout

import (
	"strconv"
	"strings"
)

// This file defines unit-safe lengths and leading specs. Layout works in pt,
// the canvas renderer converts to mm at its boundary.

// Unit represents the original unit of a length value as written in the DSL.
type Unit int

const (
	UnitNone Unit = iota // unit-less numbers, read as pt
	UnitPT               // points
	UnitMM               // millimeters
	UnitCM               // centimeters
	UnitIN               // inches
)

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

func (u Unit) String() string {
	switch u {
	case UnitPT:
		return "pt"
	case UnitMM:
		return "mm"
	case UnitCM:
		return "cm"
	case UnitIN:
		return "in"
	default:
		return ""
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// PT converts the length to points. Unit-less values are already points.
func (l Length) PT() float64 {
	switch l.Unit {
	case UnitMM:
		return l.Value * MmToPt
	case UnitCM:
		return l.Value * 10 * MmToPt
	case UnitIN:
		return l.Value * 72
	default:
		return l.Value
	}
}

// MM converts the length to millimeters.
func (l Length) MM() float64 { return l.PT() * PtToMm }

var unitSuffixes = []struct {
	s string
	u Unit
}{{"pt", UnitPT}, {"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}}

// ParseLength parses "12pt", "4mm", "1in" or a bare number. ok is false for
// anything else.
func ParseLength(value string) (Length, bool) {
	lower := strings.ToLower(strings.TrimSpace(value))
	if lower == "" {
		return Length{}, false
	}
	unit, num := UnitNone, lower
	for _, suf := range unitSuffixes {
		if strings.HasSuffix(lower, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(lower, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, false
	}
	return Length{Value: f, Unit: unit}, true
}

// LeadingKind distinguishes factor-based vs absolute leading.
type LeadingKind int

const (
	LeadingFactor LeadingKind = iota
	LeadingAbsolute
)

// LeadingSpec keeps the author's intent: a factor of the font size ("1.5x")
// or an absolute length ("18pt").
type LeadingSpec struct {
	Kind   LeadingKind `json:"kind"`
	Factor float64     `json:"factor,omitempty"`
	Len    Length      `json:"len,omitempty"`
}

// ParseLeading parses "1.5x" or a length.
func ParseLeading(value string) (LeadingSpec, bool) {
	v := strings.TrimSpace(value)
	if strings.HasSuffix(v, "x") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(v, "x"), 64)
		if err != nil {
			return LeadingSpec{}, false
		}
		return LeadingSpec{Kind: LeadingFactor, Factor: f}, true
	}
	l, ok := ParseLength(v)
	if !ok {
		return LeadingSpec{}, false
	}
	return LeadingSpec{Kind: LeadingAbsolute, Len: l}, true
}

// Resolve computes the leading in pt for a font size in pt.
func (s LeadingSpec) Resolve(fontSizePt float64) float64 {
	switch s.Kind {
	case LeadingAbsolute:
		return s.Len.PT()
	default:
		return fontSizePt * s.Factor
	}
}
