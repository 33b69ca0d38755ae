package document

import (
	"fmt"
	"strings"

	"github.com/ByLCY/wordsplit/layout"
)

// Select 返回选区中的文本对象及其锚点，顺序与文档一致。
// names 为空时选中全部对象；names 可以是分组名或文本名，选中分组即选中其下全部文本。
// 选区为空返回 ErrNoSelection；选区中没有文本时返回空切片，由 Splitter 报告。
func (d *Document) Select(names []string) ([]layout.SourceRun, error) {
	if d == nil {
		return nil, ErrNoDocument
	}
	if len(d.Nodes) == 0 {
		return nil, ErrNoSelection
	}
	wanted := map[string]bool{}
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			wanted[n] = true
		}
	}

	matched := false
	var runs []layout.SourceRun
	var walk func(nodes []*Node, selected bool)
	walk = func(nodes []*Node, selected bool) {
		for _, node := range nodes {
			hit := selected || len(wanted) == 0
			if !hit && node.Name != "" && wanted[node.Name] {
				hit, matched = true, true
			}
			if node.Kind == TextNode {
				if hit {
					runs = append(runs, d.sourceRun(node))
				}
				continue
			}
			walk(node.Children, hit)
		}
	}
	walk(d.Nodes, false)

	if len(wanted) > 0 && !matched {
		return nil, fmt.Errorf("%w: %s", ErrNoSelection, strings.Join(names, ", "))
	}
	tracer().Debugf("selection %v: %d text runs", names, len(runs))
	return runs, nil
}

// Anchor 返回文本对象第一行基线的起点：画板锚点加上对象偏移（偏移的 y 向下）。
func (d *Document) Anchor(node *Node) layout.Point {
	a := d.Artboard.Anchor()
	return layout.Point{X: a.X + node.Offset.X, Y: a.Y - node.Offset.Y}
}

func (d *Document) sourceRun(node *Node) layout.SourceRun {
	return layout.SourceRun{Name: node.Name, Source: node.Run, Anchor: d.Anchor(node)}
}
