package canvasrenderer

import (
	"bytes"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
	"github.com/tdewolff/canvas"

	"github.com/ByLCY/wordsplit/layout"
	"github.com/ByLCY/wordsplit/measure"
	"github.com/ByLCY/wordsplit/style"
	"github.com/ByLCY/wordsplit/textrun"
)

// --- Test Suite Preparation ------------------------------------------------

type CanvasTestEnviron struct {
	suite.Suite
	host *Host
}

// listen for 'go test' command --> run test methods
func TestCanvasFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wordsplit.canvas", "wordsplit.layout")
	defer teardown()
	suite.Run(t, new(CanvasTestEnviron))
}

// run before each test
func (env *CanvasTestEnviron) SetupTest() {
	env.host = NewHost(Options{Resources: layout.ResourceSet{
		Fonts: map[string]layout.FontResource{
			"Body":   {Name: "Body", Src: "builtin:goregular", IsBuiltin: true},
			"Mono":   {Name: "Mono", Src: "builtin:gomono", IsBuiltin: true},
			"Broken": {Name: "Broken", Src: "fonts/missing.ttf"},
		},
	}})
}

func sized(pt float64) style.Attributes {
	return style.Attributes{Font: style.String("Body"), Size: style.Float(pt)}
}

func (env *CanvasTestEnviron) width(text string, st style.Attributes) float64 {
	w, err := env.host.PlaceUnit(text, st, layout.Point{})
	env.Require().NoError(err)
	return w
}

// --- Tests -----------------------------------------------------------------

func (env *CanvasTestEnviron) TestWidthScalesWithSize() {
	w12 := env.width("Hello", sized(12))
	w24 := env.width("Hello", sized(24))
	env.Greater(w12, 0.0)
	env.InEpsilon(2*w12, w24, 1e-6)
	env.Equal(2, env.host.Placed())
}

func (env *CanvasTestEnviron) TestMonoWidthsAreEqual() {
	mono := style.Attributes{Font: style.String("Mono"), Size: style.Float(10)}
	env.InEpsilon(env.width("iiii", mono), env.width("MMMM", mono), 1e-6)
	env.Less(env.width("iiii", sized(10)), env.width("MMMM", sized(10)))
}

func (env *CanvasTestEnviron) TestHorizontalScaleAndTracking() {
	base := env.width("word", sized(10))

	half := sized(10)
	half.HorizontalScale = style.Float(50)
	env.InEpsilon(base/2, env.width("word", half), 1e-6)

	tracked := sized(10)
	tracked.Tracking = style.Float(100) // 0.1 em = 1pt per character
	env.InEpsilon(base+4, env.width("word", tracked), 1e-6)
}

func (env *CanvasTestEnviron) TestAllCapsMeasuresUppercase() {
	caps := sized(10)
	caps.Capitalization = style.Caps(style.CapsAll)
	env.InEpsilon(env.width("ABC", sized(10)), env.width("abc", caps), 1e-6)

	small := sized(10)
	small.Capitalization = style.Caps(style.CapsAllSmall)
	env.InEpsilon(env.width("ABC", sized(8)), env.width("abc", small), 1e-6)
}

func (env *CanvasTestEnviron) TestUnknownFontFallsBack() {
	broken := style.Attributes{Font: style.String("Broken"), Size: style.Float(10)}
	env.InEpsilon(env.width("fallback", sized(10)), env.width("fallback", broken), 1e-6)

	builtin := style.Attributes{Font: style.String("gomono"), Size: style.Float(10)}
	mono := style.Attributes{Font: style.String("Mono"), Size: style.Float(10)}
	env.InEpsilon(env.width("builtin", mono), env.width("builtin", builtin), 1e-6)
}

func (env *CanvasTestEnviron) TestProbeLifecycle() {
	p, err := env.host.NewProbe("probe", sized(12))
	env.Require().NoError(err)
	env.Equal(1, env.host.Live())
	w, err := p.Width()
	env.NoError(err)
	env.Greater(w, 0.0)
	env.NoError(p.Remove())
	env.Equal(0, env.host.Live())
	env.Error(p.Remove())
	_, err = p.Width()
	env.Error(err)
}

func (env *CanvasTestEnviron) TestProbeOracleLeavesNoProbes() {
	adapter := measure.NewAdapter(measure.ProbeOracle{Host: env.host})
	w := adapter.Measure("Hello", sized(12))
	env.InEpsilon(env.width("Hello", sized(12)), w, 1e-6)
	env.Equal(0, env.host.Live())
	env.Equal(measure.Stats{Measured: 1}, adapter.Stats())
}

func (env *CanvasTestEnviron) TestSplitAndRender() {
	run := textrun.New("title", "Hello  world\nagain", sized(24),
		textrun.Span{Start: 7, End: 12, Style: style.Attributes{
			Fill:          style.CMYK{Magenta: 100},
			BaselineShift: style.Float(3),
			Tracking:      style.Float(50),
		}})
	res := &layout.Result{
		Artboard: layout.Artboard{Width: 400, Height: 300, Margin: layout.Margin{Top: 20, Left: 20}},
		Meta:     layout.DocumentMeta{Title: "Test", Keywords: []string{"a", "b"}},
	}
	splitter := layout.NewSplitter(res.Layer("Words"), layout.Options{
		Oracle: measure.ProbeOracle{Host: env.host},
		Placer: env.host,
	})
	sum, err := splitter.Split([]layout.SourceRun{{Name: run.Name, Source: run, Anchor: res.Artboard.Anchor()}})
	env.Require().NoError(err)
	env.Equal(3, sum.Units)
	env.Equal(0, env.host.Live())

	units := res.Layers[0].Groups[0].Units
	hello := env.width("Hello", sized(24))
	env.InDelta(20+hello, units[1].Origin.X-env.width("  ", sized(24)), 1e-6)
	env.InDelta(280-28.8, units[2].Origin.Y, 1e-6)

	pdf, err := NewRenderer(env.host).Render(res)
	env.Require().NoError(err)
	env.True(bytes.HasPrefix(pdf, []byte("%PDF")))
}

func (env *CanvasTestEnviron) TestRenderRejectsBadInput() {
	r := NewRenderer(nil)
	_, err := r.Render(nil)
	env.Error(err)
	_, err = r.Render(&layout.Result{})
	env.Error(err)

	pdf, err := r.Render(&layout.Result{Artboard: layout.Artboard{Width: 100, Height: 100}})
	env.Require().NoError(err, "an empty artboard still renders")
	env.NotEmpty(pdf)
}

func TestParseFontStyle(t *testing.T) {
	cases := map[string]canvas.FontStyle{
		"":            canvas.FontRegular,
		"Bold":        canvas.FontBold,
		"SemiBold":    canvas.FontSemiBold,
		"Bold Italic": canvas.FontBold | canvas.FontItalic,
		"Light":       canvas.FontLight,
	}
	for in, want := range cases {
		if got := parseFontStyle(in); got != want {
			t.Fatalf("parseFontStyle(%q) = %v, want %v", in, got, want)
		}
	}
}
