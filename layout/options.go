package layout

import (
	"github.com/ByLCY/wordsplit/measure"
	"github.com/ByLCY/wordsplit/style"
)

// Options 配置拆分阶段所需的宿主能力，例如测量后端与单元放置。
type Options struct {
	Oracle measure.Oracle
	Placer UnitPlacer
}

// UnitPlacer 在宿主上放置一个单词单元，并返回其实际包围盒宽度（pt）。
// 返回的宽度可能为 0 或非法值，由引擎按测量回退规则兜底。
type UnitPlacer interface {
	PlaceUnit(text string, st style.Attributes, at Point) (float64, error)
}

// NewEngine 根据 Options 构造布局引擎。
func NewEngine(opts Options) *Engine {
	return &Engine{
		Measure: measure.NewAdapter(opts.Oracle),
		Placer:  opts.Placer,
	}
}
