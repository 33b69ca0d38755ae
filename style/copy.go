package style

// Copy transfers every present field of src onto dst. Absent fields leave dst
// untouched. Pointer targets are copied and colors cloned, so dst never shares
// memory with src.
func Copy(dst *Attributes, src Attributes) {
	if dst == nil {
		return
	}
	if src.Font != nil {
		dst.Font = String(*src.Font)
	}
	copyFloat(&dst.Size, src.Size)
	if src.Fill != nil {
		dst.Fill = src.Fill.Clone()
	}
	if src.Stroke != nil {
		dst.Stroke = src.Stroke.Clone()
	}
	copyFloat(&dst.Tracking, src.Tracking)
	copyFloat(&dst.Leading, src.Leading)
	copyFloat(&dst.HorizontalScale, src.HorizontalScale)
	copyFloat(&dst.VerticalScale, src.VerticalScale)
	copyFloat(&dst.BaselineShift, src.BaselineShift)
	if src.Capitalization != nil {
		dst.Capitalization = Caps(*src.Capitalization)
	}
	if src.Kerning != nil {
		dst.Kerning = Kern(*src.Kerning)
	}
	copyFloat(&dst.StrokeWeight, src.StrokeWeight)
	copyBool(&dst.FillOverprint, src.FillOverprint)
	copyBool(&dst.StrokeOverprint, src.StrokeOverprint)
}

// Merge returns a fresh style holding base with over applied on top.
func Merge(base, over Attributes) Attributes {
	var out Attributes
	Copy(&out, base)
	Copy(&out, over)
	return out
}

// Clone returns a deep copy of a.
func Clone(a Attributes) Attributes {
	var out Attributes
	Copy(&out, a)
	return out
}

// ForceNoStroke applies the output stroke policy: no stroke weight, no stroke
// overprint and no stroke color, whatever the inherited style says.
func ForceNoStroke(a *Attributes) {
	if a == nil {
		return
	}
	a.StrokeWeight = Float(0)
	a.StrokeOverprint = Bool(false)
	a.Stroke = NoColor{}
}

func copyFloat(dst **float64, src *float64) {
	if src != nil {
		*dst = Float(*src)
	}
}

func copyBool(dst **bool, src *bool) {
	if src != nil {
		*dst = Bool(*src)
	}
}
