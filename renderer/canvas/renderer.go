package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/wordsplit/layout"
	"github.com/ByLCY/wordsplit/renderer"
	"github.com/ByLCY/wordsplit/style"
)

// Renderer draws split results via github.com/tdewolff/canvas, sharing the
// font cache of the Host that measured them.
type Renderer struct {
	host *Host
}

var _ renderer.Renderer = (*Renderer)(nil)

// NewRenderer creates a renderer on top of host. A nil host gets a default one.
func NewRenderer(host *Host) *Renderer {
	if host == nil {
		host = NewHost(Options{})
	}
	return &Renderer{host: host}
}

// Render renders the artboard with every word-unit into a single-page PDF.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	width, height := toMm(result.Artboard.Width), toMm(result.Artboard.Height)
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("画板尺寸非法：%gx%g pt", result.Artboard.Width, result.Artboard.Height)
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, width, height, nil)
	r.applyMeta(writer, result.Meta)

	c := canvas.New(width, height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianI) // y 轴向上，与拆分结果一致
	for _, l := range result.Layers {
		for _, g := range l.Groups {
			for _, u := range g.Units {
				if err := r.drawUnit(ctx, u); err != nil {
					return nil, fmt.Errorf("%s/%s: %w", l.Name, g.Name, err)
				}
			}
		}
	}
	c.RenderTo(writer)

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) applyMeta(writer *pdf.PDF, meta layout.DocumentMeta) {
	if writer == nil {
		return
	}
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}

// drawUnit 在基线起点绘制一个单词。基线偏移向上为正；水平/垂直缩放以起点为中心。
// 有字距调整时逐字绘制。
func (r *Renderer) drawUnit(ctx *canvas.Context, u layout.WordUnit) error {
	st := u.Style
	face, shown, err := r.host.face(st, fillColor(st.Fill), u.Text)
	if err != nil {
		return err
	}
	y := u.Origin.Y
	if st.BaselineShift != nil {
		y += *st.BaselineShift
	}
	vscale := 1.0
	if st.VerticalScale != nil && *st.VerticalScale > 0 {
		vscale = *st.VerticalScale / 100
	}

	ctx.Push()
	defer ctx.Pop()
	ctx.Translate(toMm(u.Origin.X), toMm(y))
	ctx.Scale(st.HScale(), vscale)

	track := toMm(trackingAdvance(st))
	if track == 0 {
		ctx.DrawText(0, 0, canvas.NewTextLine(face, shown, canvas.Left))
		return nil
	}
	x := 0.0
	for _, ch := range shown {
		s := string(ch)
		ctx.DrawText(x, 0, canvas.NewTextLine(face, s, canvas.Left))
		x += face.TextWidth(s) + track/st.HScale()
	}
	return nil
}

// fillColor 未设置填色时按黑色处理；none 为全透明。
func fillColor(c style.Color) color.Color {
	if c == nil {
		return canvas.Black
	}
	return style.ToRGBA(c)
}

// toMm 将点(pt)转换为毫米(mm)。
func toMm(pt float64) float64 { return pt * layout.PtToMm }
