package layout

import (
	"errors"
	"fmt"

	"github.com/ByLCY/wordsplit/measure"
	"github.com/ByLCY/wordsplit/textrun"
	"github.com/ByLCY/wordsplit/token"
)

// ErrNoTextRuns 表示选区中没有任何文本，整个操作在产生输出前终止。
var ErrNoTextRuns = errors.New("选区中没有文本对象")

// SourceRun 是一次拆分的输入：一个文本源、输出分组的名称以及起始锚点。
type SourceRun struct {
	Name   string
	Source textrun.Source
	Anchor Point
}

// Summary 汇总一次拆分的结果，供调用方展示。
type Summary struct {
	Units   int           `json:"units"`
	Runs    int           `json:"runs"`
	Skipped int           `json:"skipped"`
	Measure measure.Stats `json:"measure"`
}

// Splitter 依次拆分源文本，把每个源文本的单元放进目标图层中独占的分组。
// 图层由调用方注入，Splitter 不做任何全局查找。
type Splitter struct {
	Engine *Engine
	Layer  *Layer
}

// NewSplitter 创建向 layer 输出的拆分器。
func NewSplitter(layer *Layer, opts Options) *Splitter {
	return &Splitter{Engine: NewEngine(opts), Layer: layer}
}

// Split 按顺序处理 runs。空文本或没有单词的文本被跳过，不影响其他文本。
// 一个源文本要么完整地进入图层，要么完全不出现。
func (s *Splitter) Split(runs []SourceRun) (Summary, error) {
	var sum Summary
	if len(runs) == 0 {
		return sum, ErrNoTextRuns
	}
	if s.Layer == nil {
		return sum, fmt.Errorf("layout: 缺少输出图层")
	}
	if s.Engine == nil {
		s.Engine = NewEngine(Options{})
	}

	for _, run := range runs {
		if run.Source == nil {
			tracer().Infof("跳过 %q：没有文本源", run.Name)
			sum.Skipped++
			continue
		}
		tokens := token.Tokenize(run.Source.Contents())
		if token.Count(tokens, token.Word) == 0 {
			tracer().Infof("跳过 %q：没有可拆分的单词", run.Name)
			sum.Skipped++
			continue
		}
		pass := s.Engine.LayoutRun(run.Source, tokens, run.Anchor)
		group := s.Layer.NewGroup(run.Name)
		group.Units = pass.Units
		tracer().Debugf("%q 拆分为 %d 个单词单元", group.Name, len(pass.Units))
		sum.Runs++
		sum.Units += len(pass.Units)
	}
	sum.Measure = s.Engine.adapter().Stats()
	return sum, nil
}
