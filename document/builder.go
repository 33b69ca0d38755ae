// Package document turns a parsed DSL document into an artboard with styled
// text runs, and selects the runs a split operates on.
package document

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/schuko/tracing"

	"github.com/ByLCY/wordsplit/binding"
	"github.com/ByLCY/wordsplit/dsl"
	"github.com/ByLCY/wordsplit/layout"
	"github.com/ByLCY/wordsplit/style"
	"github.com/ByLCY/wordsplit/textrun"
	"github.com/ByLCY/wordsplit/token"
)

// tracer traces with key 'wordsplit.document'.
func tracer() tracing.Trace {
	return tracing.Select("wordsplit.document")
}

var (
	// ErrNoDocument 表示没有可用的文档：文件缺失、无法解析或缺少 artboard。
	ErrNoDocument = errors.New("没有打开的文档")
	// ErrNoSelection 表示选区为空。
	ErrNoSelection = errors.New("没有选中任何对象")
)

// BuildOptions 控制文档构建。
type BuildOptions struct {
	// Creator 写入 PDF 元信息，文档 meta 中的 creator 优先。
	Creator string
}

// NodeKind 区分分组与文本节点。
type NodeKind int

const (
	GroupNode NodeKind = iota
	TextNode
)

// Node 是画板上的一个对象：分组或文本。
type Node struct {
	Kind     NodeKind
	Name     string
	Offset   textrun.Point // 相对画板锚点的累计偏移，y 向下
	Children []*Node
	Run      *textrun.Run // 仅文本节点
}

// Document 是构建完成的文档：画板、资源与对象树。
type Document struct {
	Name      string
	Artboard  layout.Artboard
	Resources layout.ResourceSet
	Meta      layout.DocumentMeta
	Nodes     []*Node
}

// Load 读取并解析 DSL 文件。任何失败都包装为 ErrNoDocument。
func Load(path string) (*dsl.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDocument, err)
	}
	defer f.Close()
	doc, err := dsl.Parse(path, f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDocument, err)
	}
	return doc, nil
}

// Build 根据 DSL AST 生成画板与文本对象，data 用于 ${path} 插值。
func Build(doc *dsl.Document, data any, opts BuildOptions) (*Document, error) {
	if doc == nil {
		return nil, ErrNoDocument
	}
	board := firstArtboard(doc)
	if board == nil {
		return nil, fmt.Errorf("%w: 文档中缺少 artboard 段落", ErrNoDocument)
	}

	res, inks, err := collectResources(doc)
	if err != nil {
		return nil, err
	}
	artboard, err := resolveArtboard(board.Params)
	if err != nil {
		return nil, err
	}
	meta := collectMeta(doc, opts)

	b := &builder{res: res, inks: inks, data: data}
	nodes, err := b.block(board.Block, textrun.Point{})
	if err != nil {
		return nil, err
	}
	tracer().Debugf("document %s: %d top-level objects, %d texts", doc.Name, len(nodes), b.texts)
	return &Document{
		Name:      doc.Name,
		Artboard:  artboard,
		Resources: res,
		Meta:      meta,
		Nodes:     nodes,
	}, nil
}

type builder struct {
	res   layout.ResourceSet
	inks  map[string]*style.Ink
	data  any
	texts int
}

func (b *builder) block(block *dsl.Block, offset textrun.Point) ([]*Node, error) {
	var nodes []*Node
	for _, cmd := range block.Commands() {
		switch cmd.Name {
		case "group":
			node, err := b.group(cmd, offset)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
		case "text":
			node, err := b.text(cmd, offset)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
		default:
			tracer().Infof("%s: ignoring unsupported element %q", cmd.Pos, cmd.Name)
		}
	}
	return nodes, nil
}

func (b *builder) group(cmd *dsl.Command, offset textrun.Point) (*Node, error) {
	args, err := parseObjectArgs(cmd.Args, false)
	if err != nil {
		return nil, fmt.Errorf("%s: group: %w", cmd.Pos, err)
	}
	node := &Node{Kind: GroupNode, Name: args.name, Offset: addPoint(offset, args.at)}
	if node.Children, err = b.block(cmd.Block, node.Offset); err != nil {
		return nil, err
	}
	return node, nil
}

func (b *builder) text(cmd *dsl.Command, offset textrun.Point) (*Node, error) {
	args, err := parseObjectArgs(cmd.Args, true)
	if err != nil {
		return nil, fmt.Errorf("%s: text: %w", cmd.Pos, err)
	}
	base, err := b.styleFor(args.style, args.props, 0)
	if err != nil {
		return nil, fmt.Errorf("%s: text: %w", cmd.Pos, err)
	}
	content := token.Normalize(binding.Interpolate(cmd.Block.Text(), b.data))

	var spans []textrun.Span
	for _, sub := range cmd.Block.Commands() {
		if sub.Name != "span" {
			tracer().Infof("%s: ignoring %q inside text", sub.Pos, sub.Name)
			continue
		}
		sp, err := b.spans(sub, content, base.FontSize())
		if err != nil {
			return nil, fmt.Errorf("%s: span: %w", sub.Pos, err)
		}
		spans = append(spans, sp...)
	}

	b.texts++
	at := addPoint(offset, args.at)
	run := textrun.New(args.name, content, base, spans...)
	run.Offset = at
	return &Node{Kind: TextNode, Name: args.name, Offset: at, Run: run}, nil
}

// spans 解析 `span A B [STYLE] [key value]... [{ ... }]` 或 `span "needle" STYLE ...`；
// 后者为文本中每次出现的 needle 各生成一个区间。偏移按字符计，content 已规范化换行。
func (b *builder) spans(cmd *dsl.Command, content string, sizeHint float64) ([]textrun.Span, error) {
	if len(cmd.Args) == 0 {
		return nil, fmt.Errorf("缺少区间")
	}
	var ranges [][2]int
	rest := cmd.Args
	if cmd.Args[0].Type == "String" {
		ranges = occurrences(content, token.Normalize(cmd.Args[0].Value))
		rest = cmd.Args[1:]
	} else {
		if len(cmd.Args) < 2 {
			return nil, fmt.Errorf("需要起止位置")
		}
		start, err1 := strconv.Atoi(cmd.Arg(0))
		end, err2 := strconv.Atoi(cmd.Arg(1))
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("起止位置必须为整数：%s %s", cmd.Arg(0), cmd.Arg(1))
		}
		ranges = [][2]int{{start, end}}
		rest = cmd.Args[2:]
	}

	args, err := parseObjectArgs(rest, true)
	if err != nil {
		return nil, err
	}
	for _, a := range cmd.Block.Assignments() {
		args.props[strings.ToLower(a.Key)] = a.Value.Raw()
	}
	st, err := b.styleFor(args.style, args.props, sizeHint)
	if err != nil {
		return nil, err
	}
	out := make([]textrun.Span, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, textrun.Span{Start: r[0], End: r[1], Style: st})
	}
	return out, nil
}

// styleFor 合并命名样式与内联属性。
func (b *builder) styleFor(name string, inline map[string]string, sizeHint float64) (style.Attributes, error) {
	var attrs style.Attributes
	if name != "" {
		named, ok := b.res.Styles[name]
		if !ok {
			return attrs, fmt.Errorf("style %s 未定义", name)
		}
		attrs = style.Clone(named)
		if attrs.Size != nil {
			sizeHint = *attrs.Size
		}
	}
	if len(inline) == 0 {
		return attrs, nil
	}
	over, err := attributesFromProps(inline, b.res.Colors, b.inks, sizeHint)
	if err != nil {
		return attrs, err
	}
	return style.Merge(attrs, over), nil
}

type objectArgs struct {
	style string
	name  string
	at    textrun.Point
	props map[string]string
}

// parseObjectArgs 解析 `[STYLE] [name N] [at X Y] [key value]...`。
func parseObjectArgs(args []*dsl.Lexeme, allowStyle bool) (objectArgs, error) {
	out := objectArgs{props: map[string]string{}}
	cursor := 0
	if allowStyle && len(args) > 0 && args[0].Type == "Ident" && !isObjectKeyword(args[0].Value) {
		out.style = args[0].Value
		cursor = 1
	}
	if !allowStyle && len(args) > 0 && !isObjectKeyword(args[0].Value) {
		out.name = args[0].Value
		cursor = 1
	}
	for cursor < len(args) {
		key := args[cursor].Value
		switch key {
		case "at":
			if cursor+2 >= len(args) {
				return out, fmt.Errorf("at 需要两个坐标")
			}
			x, err := parseSignedLength("at", args[cursor+1].Value)
			if err != nil {
				return out, err
			}
			y, err := parseSignedLength("at", args[cursor+2].Value)
			if err != nil {
				return out, err
			}
			out.at = textrun.Point{X: x, Y: y}
			cursor += 3
		default:
			if cursor+1 >= len(args) {
				return out, fmt.Errorf("%s 缺少取值", key)
			}
			if key == "name" {
				out.name = args[cursor+1].Value
			} else {
				out.props[key] = args[cursor+1].Value
			}
			cursor += 2
		}
	}
	return out, nil
}

func isObjectKeyword(v string) bool {
	return v == "name" || v == "at"
}

func addPoint(a, b textrun.Point) textrun.Point {
	return textrun.Point{X: a.X + b.X, Y: a.Y + b.Y}
}

// occurrences 返回 needle 在 content 中不重叠出现的字符区间。
func occurrences(content, needle string) [][2]int {
	if needle == "" {
		return nil
	}
	var out [][2]int
	n := utf8.RuneCountInString(needle)
	offset := 0 // 已消费的字符数
	for {
		i := strings.Index(content, needle)
		if i < 0 {
			return out
		}
		start := offset + utf8.RuneCountInString(content[:i])
		out = append(out, [2]int{start, start + n})
		offset = start + n
		content = content[i+len(needle):]
	}
}

func firstArtboard(doc *dsl.Document) *dsl.ArtboardSection {
	for _, section := range doc.Sections {
		if section.Artboard != nil {
			return section.Artboard
		}
	}
	return nil
}

func collectMeta(doc *dsl.Document, opts BuildOptions) layout.DocumentMeta {
	meta := layout.DocumentMeta{Creator: opts.Creator}
	if meta.Creator == "" {
		meta.Creator = "wordsplit"
	}
	for _, section := range doc.Sections {
		if section.Meta == nil {
			continue
		}
		for _, a := range section.Meta.Block.Assignments() {
			switch strings.ToLower(a.Key) {
			case "title":
				meta.Title = a.Value.Raw()
			case "author":
				meta.Author = a.Value.Raw()
			case "subject":
				meta.Subject = a.Value.Raw()
			case "creator":
				meta.Creator = a.Value.Raw()
			case "keywords":
				meta.Keywords = splitList(a.Value.Raw())
			}
		}
	}
	return meta
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

var artboardPresets = map[string][2]float64{
	"A3":     {841.89, 1190.55},
	"A4":     {595.28, 841.89},
	"A5":     {419.53, 595.28},
	"LETTER": {612, 792},
}

// resolveArtboard 解析 `artboard W H [margin ...]` 或 `artboard A4 [landscape] [margin ...]`。
func resolveArtboard(params []*dsl.Lexeme) (layout.Artboard, error) {
	a4 := artboardPresets["A4"]
	board := layout.Artboard{Width: a4[0], Height: a4[1]}
	var dims []float64
	landscape := false
	for i := 0; i < len(params); i++ {
		v := params[i].Value
		switch {
		case v == "margin":
			margin, used := resolveMargin(params[i+1:])
			board.Margin = margin
			i += used
		case v == "landscape":
			landscape = true
		case v == "portrait":
		default:
			if size, ok := artboardPresets[strings.ToUpper(v)]; ok {
				board.Width, board.Height = size[0], size[1]
				continue
			}
			l, ok := layout.ParseLength(v)
			if !ok || l.PT() <= 0 {
				return board, fmt.Errorf("artboard 参数非法：%s", v)
			}
			dims = append(dims, l.PT())
		}
	}
	switch len(dims) {
	case 0:
	case 2:
		board.Width, board.Height = dims[0], dims[1]
	default:
		return board, fmt.Errorf("artboard 需要宽和高两个尺寸，得到 %d 个", len(dims))
	}
	if landscape && board.Width < board.Height {
		board.Width, board.Height = board.Height, board.Width
	}
	return board, nil
}

// resolveMargin 按 CSS 语义读取 margin 之后最多 4 个长度，返回消费的参数个数。
func resolveMargin(params []*dsl.Lexeme) (layout.Margin, int) {
	var vals []float64
	for _, p := range params {
		if len(vals) == 4 {
			break
		}
		l, ok := layout.ParseLength(p.Value)
		if !ok {
			break
		}
		vals = append(vals, l.PT())
	}
	switch len(vals) {
	case 1:
		v := vals[0]
		return layout.Margin{Top: v, Right: v, Bottom: v, Left: v}, 1
	case 2:
		return layout.Margin{Top: vals[0], Right: vals[1], Bottom: vals[0], Left: vals[1]}, 2
	case 3:
		return layout.Margin{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[1]}, 3
	case 4:
		return layout.Margin{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}, 4
	}
	return layout.Margin{}, 0
}
