package layout

import (
	"fmt"

	"github.com/ByLCY/wordsplit/style"
)

// 该文件定义拆分结果与资源描述，供布局计算、渲染与调试 JSON 共用。
// 所有坐标与尺寸均以 pt 为单位，y 轴向上（下一行的 y 更小）。

// Point 是画板坐标系中的一个点。
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Result 保存拆分后的图层、画板与资源信息。
type Result struct {
	Artboard  Artboard     `json:"artboard"`
	Layers    []*Layer     `json:"layers"`
	Resources ResourceSet  `json:"resources"`
	Meta      DocumentMeta `json:"meta"`
	Summary   Summary      `json:"summary"`
}

// Layer 是输出容器：按名称查找或创建，每个源文本对应其中的一个分组。
type Layer struct {
	Name   string   `json:"name"`
	Groups []*Group `json:"groups"`
}

// Group 收纳同一个源文本拆分出的全部单词单元，归该源文本独占。
type Group struct {
	Name  string     `json:"name"`
	Units []WordUnit `json:"units"`
}

// WordUnit 是一个独立定位的单词。Origin 为基线起点；Style 中的描边总是被强制为无。
type WordUnit struct {
	Text   string           `json:"text"`
	Origin Point            `json:"origin"`
	Width  float64          `json:"width"`
	Start  int              `json:"start"`
	End    int              `json:"end"`
	Style  style.Attributes `json:"style"`
}

// Artboard 描述画板尺寸与边距。
type Artboard struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin Margin  `json:"margin"`
}

// Anchor 返回画板内容区域的左上角，作为拆分的起始光标。
func (a Artboard) Anchor() Point {
	return Point{X: a.Margin.Left, Y: a.Height - a.Margin.Top}
}

// Margin 以 pt 为单位。
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// ResourceSet 记录解析出的字体、颜色与样式定义。
type ResourceSet struct {
	Fonts  map[string]FontResource     `json:"fonts"`
	Colors map[string]style.Color      `json:"-"`
	Styles map[string]style.Attributes `json:"styles"`
}

// FontResource 描述字体资源，src 可以是文件路径或 builtin:<name> 形式。
type FontResource struct {
	Name      string `json:"name"`
	Src       string `json:"src"`
	Style     string `json:"style"`
	Family    string `json:"family"`    // 渲染器使用的 Family 名称
	IsBuiltin bool   `json:"isBuiltin"` // 是否为内建字体
}

// DocumentMeta 保存 PDF 元信息。
type DocumentMeta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}

// Layer 按名称查找图层，不存在时创建；重复调用返回同一个图层。
func (r *Result) Layer(name string) *Layer {
	for _, l := range r.Layers {
		if l.Name == name {
			return l
		}
	}
	l := &Layer{Name: name}
	r.Layers = append(r.Layers, l)
	return l
}

// UnitCount 返回所有图层中的单词单元总数。
func (r *Result) UnitCount() int {
	n := 0
	for _, l := range r.Layers {
		n += l.UnitCount()
	}
	return n
}

// NewGroup 在图层末尾追加一个新分组。名称为空或重复时自动编号。
func (l *Layer) NewGroup(name string) *Group {
	if name == "" {
		name = fmt.Sprintf("text-%d", len(l.Groups)+1)
	}
	base, n := name, 1
	for l.hasGroup(name) {
		n++
		name = fmt.Sprintf("%s-%d", base, n)
	}
	g := &Group{Name: name}
	l.Groups = append(l.Groups, g)
	return g
}

// UnitCount 返回图层内的单词单元数。
func (l *Layer) UnitCount() int {
	n := 0
	for _, g := range l.Groups {
		n += len(g.Units)
	}
	return n
}

func (l *Layer) hasGroup(name string) bool {
	for _, g := range l.Groups {
		if g.Name == name {
			return true
		}
	}
	return false
}
