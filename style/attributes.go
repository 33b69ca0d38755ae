// Package style holds the character attributes of styled text and the copy
// rules that move them from a source run onto emitted word-units.
package style

// DefaultFontSize is used when a style carries no size (pt).
const DefaultFontSize = 12.0

// AutoLeadingFactor derives leading from the font size when no positive
// leading is set.
const AutoLeadingFactor = 1.2

// Capitalization mirrors the case transformations of print hosts.
type Capitalization int

const (
	CapsNormal Capitalization = iota
	CapsAll
	CapsSmall
	CapsAllSmall
)

func (c Capitalization) String() string {
	switch c {
	case CapsAll:
		return "all-caps"
	case CapsSmall:
		return "small-caps"
	case CapsAllSmall:
		return "all-small-caps"
	default:
		return "normal"
	}
}

// Kerning selects the kerning method.
type Kerning int

const (
	KerningAuto Kerning = iota
	KerningOptical
	KerningMetrics
	KerningNone
)

func (k Kerning) String() string {
	switch k {
	case KerningOptical:
		return "optical"
	case KerningMetrics:
		return "metrics"
	case KerningNone:
		return "none"
	default:
		return "auto"
	}
}

// Attributes is a character style. Every field is optional: a nil pointer or
// nil color means "not set" and is skipped by Copy.
type Attributes struct {
	Font            *string         `json:"font,omitempty"`
	Size            *float64        `json:"size,omitempty"`
	Fill            Color           `json:"fill,omitempty"`
	Stroke          Color           `json:"stroke,omitempty"`
	Tracking        *float64        `json:"tracking,omitempty"` // 1/1000 em
	Leading         *float64        `json:"leading,omitempty"`
	HorizontalScale *float64        `json:"horizontalScale,omitempty"` // percent
	VerticalScale   *float64        `json:"verticalScale,omitempty"`   // percent
	BaselineShift   *float64        `json:"baselineShift,omitempty"`
	Capitalization  *Capitalization `json:"capitalization,omitempty"`
	Kerning         *Kerning        `json:"kerning,omitempty"`
	StrokeWeight    *float64        `json:"strokeWeight,omitempty"`
	FillOverprint   *bool           `json:"fillOverprint,omitempty"`
	StrokeOverprint *bool           `json:"strokeOverprint,omitempty"`
}

// FontSize returns the size in pt, DefaultFontSize when unset or non-positive.
func (a Attributes) FontSize() float64 {
	if a.Size != nil && *a.Size > 0 {
		return *a.Size
	}
	return DefaultFontSize
}

// EffectiveLeading returns the explicit leading when positive, otherwise
// FontSize()*AutoLeadingFactor.
func (a Attributes) EffectiveLeading() float64 {
	if a.Leading != nil && *a.Leading > 0 {
		return *a.Leading
	}
	return a.FontSize() * AutoLeadingFactor
}

// HScale returns the horizontal scale as a factor (1 = 100%).
func (a Attributes) HScale() float64 {
	if a.HorizontalScale != nil && *a.HorizontalScale > 0 {
		return *a.HorizontalScale / 100
	}
	return 1
}

// FontName returns the font reference or "".
func (a Attributes) FontName() string {
	if a.Font == nil {
		return ""
	}
	return *a.Font
}

func Float(v float64) *float64 { return &v }
func Bool(v bool) *bool        { return &v }
func String(v string) *string  { return &v }

func Caps(c Capitalization) *Capitalization { return &c }
func Kern(k Kerning) *Kerning               { return &k }
