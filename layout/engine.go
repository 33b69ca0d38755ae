package layout

import (
	"math"

	"github.com/npillmayer/schuko/tracing"

	"github.com/ByLCY/wordsplit/measure"
	"github.com/ByLCY/wordsplit/style"
	"github.com/ByLCY/wordsplit/textrun"
	"github.com/ByLCY/wordsplit/token"
)

// tracer traces with key 'wordsplit.layout'.
func tracer() tracing.Trace {
	return tracing.Select("wordsplit.layout")
}

// Engine 逐个 token 推进光标：单词输出单元并右移，空白只右移，换行回到行首并下移一行。
type Engine struct {
	Measure *measure.Adapter
	Placer  UnitPlacer
}

// Cursor 是一次排版过程中的瞬时状态；Style 记录最近一次解析出的样式。
type Cursor struct {
	X     float64
	Y     float64
	Style style.Attributes
}

// Pass 是一次排版的产出：按顺序输出的单词单元，以及每个 token 处理后的光标位置。
type Pass struct {
	Units      []WordUnit
	Trajectory []Point
}

// LayoutRun 从 anchor 开始排版 tokens。任何 token 都不会导致失败：宽度与行距总有正的兜底值。
func (e *Engine) LayoutRun(src textrun.Source, tokens []token.Token, anchor Point) Pass {
	adapter := e.adapter()
	defaultLeading := src.DefaultStyle().EffectiveLeading()
	cur := Cursor{X: anchor.X, Y: anchor.Y, Style: src.DefaultStyle()}
	pass := Pass{Trajectory: make([]Point, 0, len(tokens))}

	for i, tok := range tokens {
		switch tok.Kind {
		case token.Word:
			cur.Style = textrun.Resolve(tok, src)
			unit := e.placeWord(adapter, tok, cur)
			pass.Units = append(pass.Units, unit)
			cur.X += unit.Width
		case token.Whitespace:
			cur.Style = textrun.Resolve(tok, src)
			cur.X += math.Max(0, adapter.Measure(tok.Text, cur.Style))
		case token.LineBreak:
			leading := NextWordLeading(tokens, i+1, defaultLeading, func(t token.Token) float64 {
				return textrun.Resolve(t, src).EffectiveLeading()
			})
			cur.X = anchor.X
			cur.Y -= leading
			tracer().Debugf("line break at %d: leading %g, y=%g", tok.Start, leading, cur.Y)
		}
		pass.Trajectory = append(pass.Trajectory, Point{X: cur.X, Y: cur.Y})
	}
	return pass
}

func (e *Engine) placeWord(adapter *measure.Adapter, tok token.Token, cur Cursor) WordUnit {
	var st style.Attributes
	style.Copy(&st, cur.Style)
	style.ForceNoStroke(&st)

	at := Point{X: cur.X, Y: cur.Y}
	var width float64
	if e.Placer != nil {
		w, err := e.Placer.PlaceUnit(tok.Text, st, at)
		if err != nil {
			tracer().Infof("placing %q failed: %v", tok.Text, err)
			w = 0
		}
		width = adapter.Settle(w, tok.Text, st)
	} else {
		width = adapter.Measure(tok.Text, st)
	}
	return WordUnit{
		Text:   tok.Text,
		Origin: at,
		Width:  width,
		Start:  tok.Start,
		End:    tok.End,
		Style:  st,
	}
}

func (e *Engine) adapter() *measure.Adapter {
	if e.Measure == nil {
		e.Measure = measure.NewAdapter(nil)
	}
	return e.Measure
}

// NextWordLeading 从 from 开始向后查找第一个单词，返回它的行距；
// 途中的空白与换行都被跳过。找不到单词或行距非法时返回 defaultLeading。
// 连续的多个换行各自独立查找，由于查找会跳过换行，它们总会落到同一个单词上。
func NextWordLeading(tokens []token.Token, from int, defaultLeading float64, leadingOf func(token.Token) float64) float64 {
	if from < 0 {
		from = 0
	}
	for i := from; i < len(tokens); i++ {
		if tokens[i].Kind != token.Word {
			continue
		}
		if leadingOf == nil {
			break
		}
		if l := leadingOf(tokens[i]); measure.Valid(l) {
			return l
		}
		break
	}
	if !measure.Valid(defaultLeading) {
		return style.DefaultFontSize * style.AutoLeadingFactor
	}
	return defaultLeading
}
