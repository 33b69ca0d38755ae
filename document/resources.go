package document

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ByLCY/wordsplit/dsl"
	"github.com/ByLCY/wordsplit/fonts"
	"github.com/ByLCY/wordsplit/layout"
	"github.com/ByLCY/wordsplit/style"
)

// rawStyle 是 DSL 中声明的样式，解析继承前只保存原始属性。
type rawStyle struct {
	Name    string
	Extends string
	Props   map[string]string
}

// collectResources 收集字体、颜色、专色与样式；专色表单独返回，供文本中的内联颜色使用。
func collectResources(doc *dsl.Document) (layout.ResourceSet, map[string]*style.Ink, error) {
	res := layout.ResourceSet{
		Fonts:  map[string]layout.FontResource{},
		Colors: map[string]style.Color{},
		Styles: map[string]style.Attributes{},
	}
	rawStyles := map[string]rawStyle{}
	inks := map[string]*style.Ink{}

	for _, section := range doc.Sections {
		if section.Resources == nil {
			continue
		}
		// 先收集专色，颜色表达式 spot(name, tint) 可能引用它们。
		for _, cmd := range section.Resources.Block.Commands() {
			if cmd.Name != "spot" || cmd.Arg(0) == "" {
				continue
			}
			ink, err := parseSpotInk(cmd, res.Colors)
			if err != nil {
				return res, nil, err
			}
			inks[ink.Name] = ink
		}
		for _, cmd := range section.Resources.Block.Commands() {
			switch cmd.Name {
			case "font":
				font := parseFontResource(cmd)
				if font.Name != "" {
					res.Fonts[font.Name] = font
				}
			case "color":
				name, value := parseColorResource(cmd)
				if name == "" || value == "" {
					continue
				}
				c, err := parseColor(value, res.Colors, inks)
				if err != nil {
					return res, nil, fmt.Errorf("颜色 %s: %w", name, err)
				}
				res.Colors[name] = c
			case "style":
				st := parseStyleResource(cmd)
				if st.Name != "" {
					rawStyles[st.Name] = st
				}
			}
		}
	}

	if len(res.Fonts) == 0 {
		res.Fonts["Body"] = layout.FontResource{
			Name:      "Body",
			Src:       "builtin:" + fonts.Default,
			Family:    "Body",
			IsBuiltin: true,
		}
	}

	resolved, err := resolveStyles(rawStyles)
	if err != nil {
		return res, nil, err
	}
	for name, raw := range resolved {
		attrs, err := attributesFromProps(raw.Props, res.Colors, inks, 0)
		if err != nil {
			return res, nil, fmt.Errorf("style %s: %w", name, err)
		}
		res.Styles[name] = attrs
	}
	return res, inks, nil
}

func parseFontResource(cmd *dsl.Command) layout.FontResource {
	name := cmd.Arg(0)
	if name == "" {
		return layout.FontResource{}
	}
	font := layout.FontResource{Name: name, Family: name}
	for _, a := range cmd.Block.Assignments() {
		switch a.Key {
		case "src":
			font.Src = a.Value.Raw()
			font.IsBuiltin = strings.HasPrefix(font.Src, "builtin:")
		case "style":
			font.Style = a.Value.Raw()
		case "family":
			font.Family = a.Value.Raw()
		}
	}
	if font.Src == "" {
		font.Src = "builtin:" + fonts.Default
		font.IsBuiltin = true
	}
	return font
}

func parseStyleResource(cmd *dsl.Command) rawStyle {
	if cmd.Arg(0) == "" {
		return rawStyle{}
	}
	st := rawStyle{Name: cmd.Arg(0), Props: map[string]string{}}
	if strings.EqualFold(cmd.Arg(1), "extends") {
		st.Extends = cmd.Arg(2)
	}
	for _, a := range cmd.Block.Assignments() {
		if val := a.Value.Raw(); val != "" {
			st.Props[strings.ToLower(a.Key)] = val
		}
	}
	return st
}

func resolveStyles(styles map[string]rawStyle) (map[string]rawStyle, error) {
	resolved := map[string]rawStyle{}
	visiting := map[string]bool{}

	var dfs func(name string) (rawStyle, error)
	dfs = func(name string) (rawStyle, error) {
		if st, ok := resolved[name]; ok {
			return st, nil
		}
		st, ok := styles[name]
		if !ok {
			return rawStyle{}, fmt.Errorf("style %s 未定义", name)
		}
		if visiting[name] {
			return rawStyle{}, fmt.Errorf("style 继承存在循环：%s", name)
		}
		visiting[name] = true

		props := map[string]string{}
		if st.Extends != "" {
			parent, err := dfs(st.Extends)
			if err != nil {
				return rawStyle{}, err
			}
			for k, v := range parent.Props {
				props[k] = v
			}
		}
		for k, v := range st.Props {
			props[k] = v
		}
		st.Props = props
		resolved[name] = st
		delete(visiting, name)
		return st, nil
	}

	for name := range styles {
		if _, err := dfs(name); err != nil {
			return nil, err
		}
	}
	return resolved, nil
}

// parseColorResource 解析 `color Name = value`，value 可以由多个词法单元组成。
func parseColorResource(cmd *dsl.Command) (string, string) {
	name := cmd.Arg(0)
	if name == "" {
		return "", ""
	}
	var b strings.Builder
	for i, arg := range cmd.Args[1:] {
		if i == 0 && arg.Raw == "=" {
			continue
		}
		b.WriteString(arg.Raw)
	}
	return name, b.String()
}

// parseSpotInk 解析 `spot Name { process: <color> }`。
func parseSpotInk(cmd *dsl.Command, named map[string]style.Color) (*style.Ink, error) {
	ink := &style.Ink{Name: cmd.Arg(0), Process: style.CMYK{Black: 100}}
	for _, a := range cmd.Block.Assignments() {
		if a.Key != "process" {
			continue
		}
		c, err := parseColor(a.Value.Raw(), named, nil)
		if err != nil {
			return nil, fmt.Errorf("专色 %s: %w", ink.Name, err)
		}
		ink.Process = c
	}
	return ink, nil
}

// parseColor 支持 #RGB/#RRGGBB、rgb(r,g,b)、gray(k)、cmyk(c,m,y,k)、spot(name,tint)、none 以及已命名颜色。
func parseColor(value string, named map[string]style.Color, inks map[string]*style.Ink) (style.Color, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil, fmt.Errorf("颜色为空")
	}
	if strings.EqualFold(v, "none") {
		return style.NoColor{}, nil
	}
	if strings.HasPrefix(v, "#") {
		return parseHexColor(v)
	}
	if c, ok := named[v]; ok {
		return c.Clone(), nil
	}

	fn, args, ok := splitCall(v)
	if !ok {
		return nil, fmt.Errorf("无法识别的颜色：%s", value)
	}
	switch fn {
	case "spot":
		if len(args) != 2 {
			return nil, fmt.Errorf("spot 需要 2 个参数：%s", value)
		}
		ink, ok := inks[args[0]]
		if !ok {
			return nil, fmt.Errorf("专色 %s 未定义", args[0])
		}
		tint, err := strconv.ParseFloat(strings.TrimSuffix(args[1], "%"), 64)
		if err != nil {
			return nil, fmt.Errorf("专色浓度非法：%s", args[1])
		}
		return style.Spot{Ink: ink, Tint: tint}, nil
	case "gray", "rgb", "cmyk":
	default:
		return nil, fmt.Errorf("无法识别的颜色：%s", value)
	}

	nums := make([]float64, len(args))
	for i, a := range args {
		f, err := strconv.ParseFloat(strings.TrimSuffix(a, "%"), 64)
		if err != nil {
			return nil, fmt.Errorf("颜色分量非法：%s", a)
		}
		nums[i] = f
	}
	switch {
	case fn == "gray" && len(nums) == 1:
		return style.Gray{Gray: nums[0]}, nil
	case fn == "rgb" && len(nums) == 3:
		return style.RGB{Red: nums[0], Green: nums[1], Blue: nums[2]}, nil
	case fn == "cmyk" && len(nums) == 4:
		return style.CMYK{Cyan: nums[0], Magenta: nums[1], Yellow: nums[2], Black: nums[3]}, nil
	}
	return nil, fmt.Errorf("%s 参数个数错误：%s", fn, value)
}

func parseHexColor(value string) (style.Color, error) {
	hex := strings.TrimPrefix(value, "#")
	if len(hex) == 3 {
		hex = strings.Repeat(hex[0:1], 2) + strings.Repeat(hex[1:2], 2) + strings.Repeat(hex[2:3], 2)
	}
	if len(hex) != 6 {
		return nil, fmt.Errorf("颜色格式非法：%s", value)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("颜色格式非法：%s", value)
	}
	return style.RGB{Red: float64(n >> 16 & 0xff), Green: float64(n >> 8 & 0xff), Blue: float64(n & 0xff)}, nil
}

// splitCall 把 "cmyk(0,50,100,0)" 拆成 "cmyk" 与参数列表。
func splitCall(v string) (string, []string, bool) {
	open := strings.IndexByte(v, '(')
	if open <= 0 || !strings.HasSuffix(v, ")") {
		return "", nil, false
	}
	fn := strings.ToLower(strings.TrimSpace(v[:open]))
	var args []string
	for _, a := range strings.Split(v[open+1:len(v)-1], ",") {
		args = append(args, strings.TrimSpace(a))
	}
	return fn, args, true
}
