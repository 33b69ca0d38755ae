package style

import (
	"fmt"
	"image/color"
	"math"
)

// Model names the color model of a Color variant.
type Model int

const (
	ModelNone Model = iota
	ModelGray
	ModelRGB
	ModelCMYK
	ModelSpot
)

func (m Model) String() string {
	switch m {
	case ModelGray:
		return "gray"
	case ModelRGB:
		return "rgb"
	case ModelCMYK:
		return "cmyk"
	case ModelSpot:
		return "spot"
	default:
		return "none"
	}
}

// Color is a closed set of color variants: NoColor, Gray, RGB, CMYK and Spot.
// The unexported marker keeps other packages from adding variants.
type Color interface {
	Model() Model
	// Clone returns a new color value of the same variant that shares no
	// memory with the receiver.
	Clone() Color
	isColor()
}

// NoColor paints nothing.
type NoColor struct{}

// Gray is a grayscale tint, 0 is white and 100 is black.
type Gray struct {
	Gray float64 `json:"gray"`
}

// RGB uses 0-255 channels.
type RGB struct {
	Red   float64 `json:"red"`
	Green float64 `json:"green"`
	Blue  float64 `json:"blue"`
}

// CMYK uses 0-100 percentages.
type CMYK struct {
	Cyan    float64 `json:"cyan"`
	Magenta float64 `json:"magenta"`
	Yellow  float64 `json:"yellow"`
	Black   float64 `json:"black"`
}

// Ink is a named spot swatch together with its process equivalent.
type Ink struct {
	Name    string `json:"name"`
	Process Color  `json:"-"`
}

// Spot is a tint (0-100) of a spot ink.
type Spot struct {
	Ink  *Ink    `json:"ink"`
	Tint float64 `json:"tint"`
}

func (NoColor) Model() Model { return ModelNone }
func (Gray) Model() Model    { return ModelGray }
func (RGB) Model() Model     { return ModelRGB }
func (CMYK) Model() Model    { return ModelCMYK }
func (Spot) Model() Model    { return ModelSpot }

func (NoColor) Clone() Color { return NoColor{} }
func (g Gray) Clone() Color  { return Gray{Gray: g.Gray} }
func (c RGB) Clone() Color   { return RGB{Red: c.Red, Green: c.Green, Blue: c.Blue} }
func (c CMYK) Clone() Color {
	return CMYK{Cyan: c.Cyan, Magenta: c.Magenta, Yellow: c.Yellow, Black: c.Black}
}

// Clone copies the ink as well, so the clone never aliases the source swatch.
func (s Spot) Clone() Color {
	out := Spot{Tint: s.Tint}
	if s.Ink != nil {
		ink := &Ink{Name: s.Ink.Name}
		if s.Ink.Process != nil {
			ink.Process = s.Ink.Process.Clone()
		}
		out.Ink = ink
	}
	return out
}

func (NoColor) isColor() {}
func (Gray) isColor()    {}
func (RGB) isColor()     {}
func (CMYK) isColor()    {}
func (Spot) isColor()    {}

func (NoColor) String() string { return "none" }
func (g Gray) String() string  { return fmt.Sprintf("gray(%g)", g.Gray) }
func (c RGB) String() string   { return fmt.Sprintf("rgb(%g, %g, %g)", c.Red, c.Green, c.Blue) }
func (c CMYK) String() string {
	return fmt.Sprintf("cmyk(%g, %g, %g, %g)", c.Cyan, c.Magenta, c.Yellow, c.Black)
}
func (s Spot) String() string {
	name := ""
	if s.Ink != nil {
		name = s.Ink.Name
	}
	return fmt.Sprintf("spot(%s, %g)", name, s.Tint)
}

// CloneColor clones c; a nil color stays nil.
func CloneColor(c Color) Color {
	if c == nil {
		return nil
	}
	return c.Clone()
}

// ToRGBA converts any variant to an 8-bit RGBA value for rendering.
// NoColor and nil map to fully transparent.
func ToRGBA(c Color) color.RGBA {
	switch v := c.(type) {
	case Gray:
		l := channel(255 * (1 - clamp01(v.Gray/100)))
		return color.RGBA{R: l, G: l, B: l, A: 255}
	case RGB:
		return color.RGBA{R: channel(v.Red), G: channel(v.Green), B: channel(v.Blue), A: 255}
	case CMYK:
		k := clamp01(v.Black / 100)
		conv := func(p float64) uint8 {
			return channel(255 * (1 - clamp01(p/100)) * (1 - k))
		}
		return color.RGBA{R: conv(v.Cyan), G: conv(v.Magenta), B: conv(v.Yellow), A: 255}
	case Spot:
		if v.Ink == nil || v.Ink.Process == nil {
			return color.RGBA{A: 255}
		}
		base := ToRGBA(v.Ink.Process)
		t := clamp01(v.Tint / 100)
		mix := func(ch uint8) uint8 {
			return channel(255 - (255-float64(ch))*t)
		}
		return color.RGBA{R: mix(base.R), G: mix(base.G), B: mix(base.B), A: 255}
	default:
		return color.RGBA{}
	}
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func channel(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}
