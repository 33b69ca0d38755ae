package style

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullStyle() Attributes {
	return Attributes{
		Font:            String("Body"),
		Size:            Float(24),
		Fill:            Spot{Ink: &Ink{Name: "PMS 485", Process: RGB{Red: 218, Green: 41, Blue: 28}}, Tint: 80},
		Stroke:          CMYK{Cyan: 10, Magenta: 20, Yellow: 30, Black: 40},
		Tracking:        Float(50),
		Leading:         Float(30),
		HorizontalScale: Float(90),
		VerticalScale:   Float(110),
		BaselineShift:   Float(2),
		Capitalization:  Caps(CapsAll),
		Kerning:         Kern(KerningOptical),
		StrokeWeight:    Float(1.5),
		FillOverprint:   Bool(true),
		StrokeOverprint: Bool(true),
	}
}

func TestCopyIsIdempotent(t *testing.T) {
	src := fullStyle()
	var dst Attributes
	Copy(&dst, src)
	first := Clone(dst)
	Copy(&dst, src)
	assert.Equal(t, first, dst)
	assert.Equal(t, src, dst)
}

func TestCopySkipsAbsentFields(t *testing.T) {
	dst := Attributes{Size: Float(10), Fill: Gray{Gray: 50}, Kerning: Kern(KerningNone)}
	Copy(&dst, Attributes{Font: String("Bold")})
	require.NotNil(t, dst.Size)
	assert.Equal(t, 10.0, *dst.Size)
	assert.Equal(t, Gray{Gray: 50}, dst.Fill)
	assert.Equal(t, KerningNone, *dst.Kerning)
	assert.Equal(t, "Bold", dst.FontName())
}

func TestCopyDoesNotAlias(t *testing.T) {
	src := fullStyle()
	var dst Attributes
	Copy(&dst, src)

	*src.Size = 99
	*src.FillOverprint = false
	src.Fill.(Spot).Ink.Name = "changed"
	src.Fill.(Spot).Ink.Process = NoColor{}

	assert.Equal(t, 24.0, *dst.Size)
	assert.True(t, *dst.FillOverprint)
	spot, ok := dst.Fill.(Spot)
	require.True(t, ok, "fill keeps its spot variant")
	assert.Equal(t, "PMS 485", spot.Ink.Name)
	assert.Equal(t, RGB{Red: 218, Green: 41, Blue: 28}, spot.Ink.Process)
}

func TestCloneKeepsVariant(t *testing.T) {
	colors := []Color{NoColor{}, Gray{Gray: 20}, RGB{Red: 1, Green: 2, Blue: 3}, CMYK{Cyan: 1}, Spot{Tint: 40}}
	for _, c := range colors {
		clone := c.Clone()
		assert.Equal(t, c.Model(), clone.Model(), "variant of %s", c)
		assert.Equal(t, c, clone)
	}
	assert.Nil(t, CloneColor(nil))
}

func TestForceNoStroke(t *testing.T) {
	a := fullStyle()
	ForceNoStroke(&a)
	assert.Equal(t, 0.0, *a.StrokeWeight)
	assert.False(t, *a.StrokeOverprint)
	assert.Equal(t, ModelNone, a.Stroke.Model())
	assert.True(t, *a.FillOverprint, "fill overprint is left alone")
}

func TestEffectiveLeading(t *testing.T) {
	assert.InDelta(t, 14.4, Attributes{}.EffectiveLeading(), 1e-9)
	assert.InDelta(t, 28.8, Attributes{Size: Float(24)}.EffectiveLeading(), 1e-9)
	assert.InDelta(t, 28.8, Attributes{Size: Float(24), Leading: Float(0)}.EffectiveLeading(), 1e-9)
	assert.InDelta(t, 28.8, Attributes{Size: Float(24), Leading: Float(-3)}.EffectiveLeading(), 1e-9)
	assert.Equal(t, 14.0, Attributes{Size: Float(24), Leading: Float(14)}.EffectiveLeading())
}

func TestToRGBA(t *testing.T) {
	assert.Equal(t, color.RGBA{}, ToRGBA(NoColor{}))
	assert.Equal(t, color.RGBA{}, ToRGBA(nil))
	assert.Equal(t, color.RGBA{R: 0, G: 0, B: 0, A: 255}, ToRGBA(Gray{Gray: 100}))
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, ToRGBA(CMYK{}))
	assert.Equal(t, color.RGBA{R: 10, G: 20, B: 30, A: 255}, ToRGBA(RGB{Red: 10, Green: 20, Blue: 30}))
	full := Spot{Ink: &Ink{Name: "red", Process: RGB{Red: 255}}, Tint: 100}
	assert.Equal(t, color.RGBA{R: 255, A: 255}, ToRGBA(full))
	none := Spot{Ink: &Ink{Name: "red", Process: RGB{Red: 255}}, Tint: 0}
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, ToRGBA(none))
}
