package canvasrenderer

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/npillmayer/schuko/tracing"
	"github.com/tdewolff/canvas"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ByLCY/wordsplit/fonts"
	"github.com/ByLCY/wordsplit/layout"
	"github.com/ByLCY/wordsplit/measure"
	"github.com/ByLCY/wordsplit/style"
)

// tracer traces with key 'wordsplit.canvas'.
func tracer() tracing.Trace {
	return tracing.Select("wordsplit.canvas")
}

// smallCapsScale 是 all-small-caps 时大写字母相对字号的缩放。
const smallCapsScale = 0.8

// Host 是基于 github.com/tdewolff/canvas 的排版宿主：
// 它创建测量探针、放置单词单元，并为渲染器提供字体。
// 所有对外的宽度均为 pt，与 canvas 交互时在边界做 pt↔mm 换算。
type Host struct {
	baseDir   string
	fontBlobs map[string][]byte // by unique name
	resources layout.ResourceSet

	fontMu         sync.Mutex
	fontFamilies   map[string]*fontFamilyEntry
	fallbackFamily *canvas.FontFamily

	unitMu sync.Mutex
	live   int // 尚未移除的探针
	placed int
}

var (
	_ measure.ProbeHost = (*Host)(nil)
	_ layout.UnitPlacer = (*Host)(nil)
)

type fontFamilyEntry struct {
	family *canvas.FontFamily
	style  canvas.FontStyle
}

// Options configures the canvas host.
type Options struct {
	BaseDir   string
	Fonts     map[string]Resource // injected fonts accessible via builtin:<name>
	Resources layout.ResourceSet  // font resources referenced by styles
}

// Resource can be provided either by Bytes or by Path.
type Resource struct {
	Bytes []byte
	Path  string
}

// NewHost creates a host with injected resources and optional baseDir.
func NewHost(opts Options) *Host {
	h := &Host{
		baseDir:      opts.BaseDir,
		fontBlobs:    map[string][]byte{},
		resources:    opts.Resources,
		fontFamilies: map[string]*fontFamilyEntry{},
	}
	for name, res := range opts.Fonts {
		if name == "" {
			continue
		}
		if len(res.Bytes) > 0 {
			h.fontBlobs[name] = res.Bytes
			continue
		}
		if res.Path != "" {
			data, err := os.ReadFile(res.Path)
			if err != nil {
				tracer().Infof("font %s: %v", name, err)
				continue
			}
			h.fontBlobs[name] = data
		}
	}
	return h
}

// --- Probes ----------------------------------------------------------------

// NewProbe 创建一个不可见的测量对象。字体无法加载时返回错误。
func (h *Host) NewProbe(text string, st style.Attributes) (measure.Probe, error) {
	w, err := h.textWidth(text, st)
	if err != nil {
		return nil, err
	}
	h.unitMu.Lock()
	h.live++
	h.unitMu.Unlock()
	return &probe{host: h, width: w}, nil
}

// Live 返回尚未移除的探针数量。
func (h *Host) Live() int {
	h.unitMu.Lock()
	defer h.unitMu.Unlock()
	return h.live
}

type probe struct {
	host    *Host
	width   float64
	removed bool
}

func (p *probe) Width() (float64, error) {
	if p.removed {
		return 0, fmt.Errorf("probe already removed")
	}
	return p.width, nil
}

func (p *probe) Remove() error {
	if p.removed {
		return fmt.Errorf("probe already removed")
	}
	p.removed = true
	p.host.unitMu.Lock()
	p.host.live--
	p.host.unitMu.Unlock()
	return nil
}

// --- Units -----------------------------------------------------------------

// PlaceUnit 放置一个单词单元并返回它的宽度（pt）。描边由调用方去除。
// Host 不保存被放置的对象：调用方生成的 layout.WordUnit 就是放置结果，
// 渲染器之后按它绘制。这里只测量并计数。
func (h *Host) PlaceUnit(text string, st style.Attributes, at layout.Point) (float64, error) {
	w, err := h.textWidth(text, st)
	if err != nil {
		return 0, err
	}
	h.unitMu.Lock()
	h.placed++
	h.unitMu.Unlock()
	tracer().Debugf("placed %q at (%.2f, %.2f), width %.2f", text, at.X, at.Y, w)
	return w, nil
}

// Placed 返回已放置的单词单元数量。
func (h *Host) Placed() int {
	h.unitMu.Lock()
	defer h.unitMu.Unlock()
	return h.placed
}

// textWidth 计算文本宽度（pt）：字形宽度 × 水平缩放，再加上字距调整。
func (h *Host) textWidth(text string, st style.Attributes) (float64, error) {
	face, shown, err := h.face(st, color.RGBA{A: 255}, text)
	if err != nil {
		return 0, err
	}
	w := face.TextWidth(shown) * layout.MmToPt * st.HScale()
	if n := utf8.RuneCountInString(shown); n > 0 {
		w += trackingAdvance(st) * float64(n)
	}
	return w, nil
}

// trackingAdvance 返回每个字符额外的前进量（pt）。Tracking 以 1/1000 em 为单位。
func trackingAdvance(st style.Attributes) float64 {
	if st.Tracking == nil {
		return 0
	}
	return *st.Tracking / 1000 * st.FontSize()
}

// --- Fonts -----------------------------------------------------------------

// face 返回样式对应的字体面以及应用大小写变换后要显示的文本。
func (h *Host) face(st style.Attributes, col color.Color, text string) (*canvas.FontFace, string, error) {
	font := resolveFontResource(st.FontName(), h.resources.Fonts)
	family, fstyle, err := h.ensureFontFamily(font)
	if err != nil {
		return nil, "", err
	}
	size := st.FontSize()
	if st.Capitalization != nil {
		switch *st.Capitalization {
		case style.CapsAll:
			text = cases.Upper(language.Und).String(text)
		case style.CapsAllSmall:
			text = cases.Upper(language.Und).String(text)
			size *= smallCapsScale
		}
	}
	return family.Face(size, col, fstyle, canvas.FontNormal), text, nil
}

func (h *Host) ensureFontFamily(font layout.FontResource) (*canvas.FontFamily, canvas.FontStyle, error) {
	key := fontCacheKey(font)
	h.fontMu.Lock()
	defer h.fontMu.Unlock()

	if entry, ok := h.fontFamilies[key]; ok {
		return entry.family, entry.style, nil
	}

	fstyle := parseFontStyle(font.Style)
	familyName := font.Family
	if familyName == "" {
		familyName = font.Name
	}
	if familyName == "" {
		familyName = "Body"
	}
	family := canvas.NewFontFamily(familyName)

	if err := h.loadFontIntoFamily(family, font, fstyle); err != nil {
		tracer().Infof("font %q unusable, falling back to %s: %v", font.Name, fonts.Default, err)
		fallback, fbErr := h.fallback()
		if fbErr != nil {
			return nil, canvas.FontRegular, err
		}
		h.fontFamilies[key] = &fontFamilyEntry{family: fallback, style: canvas.FontRegular}
		return fallback, canvas.FontRegular, nil
	}

	h.fontFamilies[key] = &fontFamilyEntry{family: family, style: fstyle}
	return family, fstyle, nil
}

func (h *Host) loadFontIntoFamily(family *canvas.FontFamily, font layout.FontResource, fstyle canvas.FontStyle) error {
	data, err := h.loadFontBytes(font)
	if err != nil {
		return err
	}
	return family.LoadFont(data, 0, fstyle)
}

func (h *Host) loadFontBytes(font layout.FontResource) ([]byte, error) {
	if font.Src == "" {
		return nil, fmt.Errorf("字体 %s 缺少 src", font.Name)
	}
	src := font.Src
	if strings.HasPrefix(src, "built-in:") || strings.HasPrefix(src, "builtin:") {
		name := strings.TrimPrefix(strings.TrimPrefix(src, "built-in:"), "builtin:")
		if blob, ok := h.fontBlobs[name]; ok {
			return blob, nil
		}
		return fonts.Load(name)
	}
	path := src
	if h.baseDir == "" && !filepath.IsAbs(path) {
		return nil, fmt.Errorf("未指定资源目录时不允许直接使用字体路径：%s（请改用 builtin:）", src)
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(h.baseDir, path)
	}
	return os.ReadFile(path)
}

// fallback 在调用方持有 fontMu 时调用。
func (h *Host) fallback() (*canvas.FontFamily, error) {
	if h.fallbackFamily != nil {
		return h.fallbackFamily, nil
	}
	data, err := fonts.Load(fonts.Default)
	if err != nil {
		return nil, err
	}
	family := canvas.NewFontFamily("wordsplit-fallback")
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, err
	}
	h.fallbackFamily = family
	return family, nil
}

func resolveFontResource(name string, resources map[string]layout.FontResource) layout.FontResource {
	if font, ok := resources[name]; ok {
		return font
	}
	if name != "" && !strings.Contains(name, ":") {
		// 样式可以直接引用内置字体名，例如 font: gomono
		if _, err := fonts.Load(name); err == nil {
			return layout.FontResource{Name: name, Src: "builtin:" + name, IsBuiltin: true}
		}
	}
	if font, ok := resources["Body"]; ok {
		return font
	}
	return layout.FontResource{Name: fonts.Default, Src: "builtin:" + fonts.Default, IsBuiltin: true}
}

func parseFontStyle(s string) canvas.FontStyle {
	if s == "" {
		return canvas.FontRegular
	}
	lower := strings.ToLower(s)
	result := canvas.FontRegular
	switch {
	case strings.Contains(lower, "black"):
		result = canvas.FontBlack
	case strings.Contains(lower, "extrabold"):
		result = canvas.FontExtraBold
	case strings.Contains(lower, "semibold"), strings.Contains(lower, "demibold"):
		result = canvas.FontSemiBold
	case strings.Contains(lower, "bold"):
		result = canvas.FontBold
	case strings.Contains(lower, "medium"):
		result = canvas.FontMedium
	case strings.Contains(lower, "light"):
		result = canvas.FontLight
	}
	if strings.Contains(lower, "italic") || strings.Contains(lower, "oblique") {
		result |= canvas.FontItalic
	}
	return result
}

func fontCacheKey(font layout.FontResource) string {
	return fmt.Sprintf("%s|%s|%s", font.Name, font.Src, font.Style)
}
