package document

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ByLCY/wordsplit/layout"
	"github.com/ByLCY/wordsplit/style"
)

// attributesFromProps 把 DSL 属性转换为字符样式。sizeHint 用于解析倍数行距
// （属性中没有 size 时使用）。未知属性只记录日志。
func attributesFromProps(props map[string]string, colors map[string]style.Color, inks map[string]*style.Ink, sizeHint float64) (style.Attributes, error) {
	var attrs style.Attributes
	props = lowerKeys(props)
	if v, ok := props["size"]; ok {
		size, err := parsePositiveLength("size", v)
		if err != nil {
			return attrs, err
		}
		attrs.Size = style.Float(size)
		sizeHint = size
	}
	if sizeHint <= 0 {
		sizeHint = style.DefaultFontSize
	}

	for key, v := range props {
		var err error
		switch key {
		case "size":
		case "font":
			attrs.Font = style.String(v)
		case "leading":
			spec, ok := layout.ParseLeading(v)
			if !ok {
				return attrs, fmt.Errorf("leading 非法：%s", v)
			}
			attrs.Leading = style.Float(spec.Resolve(sizeHint))
		case "fill", "color":
			attrs.Fill, err = parseColor(v, colors, inks)
		case "stroke":
			attrs.Stroke, err = parseColor(v, colors, inks)
		case "stroke-weight":
			var w float64
			w, err = parseSignedLength(key, v)
			attrs.StrokeWeight = style.Float(w)
		case "tracking":
			var f float64
			f, err = parseNumber(key, v)
			attrs.Tracking = style.Float(f)
		case "horizontal-scale":
			var f float64
			f, err = parseNumber(key, v)
			attrs.HorizontalScale = style.Float(f)
		case "vertical-scale":
			var f float64
			f, err = parseNumber(key, v)
			attrs.VerticalScale = style.Float(f)
		case "baseline-shift":
			var f float64
			f, err = parseSignedLength(key, v)
			attrs.BaselineShift = style.Float(f)
		case "capitalization", "caps":
			var c style.Capitalization
			c, err = parseCapitalization(v)
			attrs.Capitalization = style.Caps(c)
		case "kerning":
			var k style.Kerning
			k, err = parseKerning(v)
			attrs.Kerning = style.Kern(k)
		case "fill-overprint":
			var b bool
			b, err = strconv.ParseBool(v)
			attrs.FillOverprint = style.Bool(b)
		case "stroke-overprint":
			var b bool
			b, err = strconv.ParseBool(v)
			attrs.StrokeOverprint = style.Bool(b)
		default:
			tracer().Debugf("ignoring unknown style property %q", key)
		}
		if err != nil {
			return attrs, fmt.Errorf("%s: %w", key, err)
		}
	}
	return attrs, nil
}

func parseNumber(key, v string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(v), "%"), 64)
	if err != nil {
		return 0, fmt.Errorf("%s 不是数字：%s", key, v)
	}
	return f, nil
}

func parseSignedLength(key, v string) (float64, error) {
	l, ok := layout.ParseLength(v)
	if !ok {
		return 0, fmt.Errorf("%s 不是长度：%s", key, v)
	}
	return l.PT(), nil
}

func parsePositiveLength(key, v string) (float64, error) {
	pt, err := parseSignedLength(key, v)
	if err != nil {
		return 0, err
	}
	if pt <= 0 {
		return 0, fmt.Errorf("%s 必须为正数：%s", key, v)
	}
	return pt, nil
}

func parseCapitalization(v string) (style.Capitalization, error) {
	switch strings.ToLower(v) {
	case "normal", "none":
		return style.CapsNormal, nil
	case "all-caps", "upper", "uppercase":
		return style.CapsAll, nil
	case "small-caps":
		return style.CapsSmall, nil
	case "all-small-caps":
		return style.CapsAllSmall, nil
	}
	return style.CapsNormal, fmt.Errorf("未知的大小写方式：%s", v)
}

func parseKerning(v string) (style.Kerning, error) {
	switch strings.ToLower(v) {
	case "auto":
		return style.KerningAuto, nil
	case "optical":
		return style.KerningOptical, nil
	case "metrics":
		return style.KerningMetrics, nil
	case "none", "off":
		return style.KerningNone, nil
	}
	return style.KerningAuto, fmt.Errorf("未知的字偶距方式：%s", v)
}

func lowerKeys(props map[string]string) map[string]string {
	out := make(map[string]string, len(props))
	for k, v := range props {
		out[strings.ToLower(k)] = v
	}
	return out
}
