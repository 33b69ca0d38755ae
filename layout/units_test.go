package layout

import (
	"math"
	"testing"
)

// TestPtMmRoundTrip 验证 pt↔mm 换算的往返精度（允许极小的浮点误差）。
func TestPtMmRoundTrip(t *testing.T) {
	samples := []float64{0, 0.001, 1, 12, 14.4, 72, 96, 144, 1000}
	for _, pt := range samples {
		mm := pt * PtToMm
		back := mm * MmToPt
		if diff := math.Abs(back - pt); diff > 1e-9 {
			t.Fatalf("pt→mm→pt 往返误差过大: in=%gpt mm=%g back=%g diff=%g", pt, mm, back, diff)
		}
	}
}

// TestParseLength 覆盖常见单位到 pt 的换算。
func TestParseLength(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"12", 12},
		{"12pt", 12},
		{" 1in ", 72},
		{"25.4mm", 72},
		{"2.54cm", 72},
		{"10MM", 10 * MmToPt},
	}
	for _, c := range cases {
		l, ok := ParseLength(c.in)
		if !ok {
			t.Fatalf("%q 解析失败", c.in)
		}
		if diff := math.Abs(l.PT() - c.want); diff > 1e-3 {
			t.Fatalf("%q 转 pt 期望 %g，实际 %g", c.in, c.want, l.PT())
		}
	}
	for _, bad := range []string{"", "pt", "abc", "12px"} {
		if _, ok := ParseLength(bad); ok {
			t.Fatalf("%q 不应解析成功", bad)
		}
	}
}

// TestLeadingResolve 验证行距解析：倍数与绝对值两种语义。
func TestLeadingResolve(t *testing.T) {
	factor, ok := ParseLeading("1.2x")
	if !ok || factor.Kind != LeadingFactor {
		t.Fatalf("1.2x 应解析为倍数行距: %#v", factor)
	}
	if got := factor.Resolve(24); math.Abs(got-28.8) > 1e-9 {
		t.Fatalf("1.2x 在 24pt 下期望 28.8，实际 %g", got)
	}
	abs, ok := ParseLeading("6mm")
	if !ok || abs.Kind != LeadingAbsolute {
		t.Fatalf("6mm 应解析为绝对行距: %#v", abs)
	}
	if got := abs.Resolve(24); math.Abs(got-6*MmToPt) > 1e-9 {
		t.Fatalf("6mm 行距期望 %g，实际 %g", 6*MmToPt, got)
	}
	if _, ok := ParseLeading("wide"); ok {
		t.Fatalf("wide 不应解析成功")
	}
}
