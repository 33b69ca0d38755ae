package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ByLCY/wordsplit/document"
	"github.com/ByLCY/wordsplit/layout"
	"github.com/ByLCY/wordsplit/measure"
	canvasrenderer "github.com/ByLCY/wordsplit/renderer/canvas"
)

type config struct {
	input     string
	output    string
	debug     string
	data      string
	selection []string
	layer     string
}

// run 串联解析、选区、拆分与渲染。任何致命错误都在写出文件之前返回。
func run(cfg config) (*layout.Result, error) {
	data, err := loadData(cfg.data)
	if err != nil {
		return nil, err
	}
	ast, err := document.Load(cfg.input)
	if err != nil {
		return nil, err
	}
	doc, err := document.Build(ast, data, document.BuildOptions{})
	if err != nil {
		return nil, fmt.Errorf("构建文档失败: %w", err)
	}
	runs, err := doc.Select(cfg.selection)
	if err != nil {
		return nil, err
	}

	host := canvasrenderer.NewHost(canvasrenderer.Options{
		BaseDir:   filepath.Dir(cfg.input),
		Resources: doc.Resources,
	})
	result := &layout.Result{
		Artboard:  doc.Artboard,
		Resources: doc.Resources,
		Meta:      doc.Meta,
	}
	layerName := cfg.layer
	if layerName == "" {
		layerName = "Words"
	}
	splitter := layout.NewSplitter(result.Layer(layerName), layout.Options{
		Oracle: measure.ProbeOracle{Host: host},
		Placer: host,
	})
	if result.Summary, err = splitter.Split(runs); err != nil {
		return nil, err
	}
	tracer().Debugf("split %d runs into %d units, %d probes left", result.Summary.Runs, result.Summary.Units, host.Live())

	if cfg.debug != "" {
		if err := layout.WriteDebugJSON(result, cfg.debug); err != nil {
			return nil, fmt.Errorf("输出调试 JSON 失败: %w", err)
		}
	}
	if cfg.output == "" {
		return result, nil
	}
	pdfBytes, err := canvasrenderer.NewRenderer(host).Render(result)
	if err != nil {
		return nil, fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.output), 0o755); err != nil {
		return nil, fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(cfg.output, pdfBytes, 0o644); err != nil {
		return nil, fmt.Errorf("写入 PDF 文件失败: %w", err)
	}
	return result, nil
}

// loadData 解析 -data：JSON 字面量，或以 @ 开头的 JSON 文件路径。
func loadData(arg string) (any, error) {
	if arg == "" {
		return nil, nil
	}
	raw := []byte(arg)
	if path, ok := strings.CutPrefix(arg, "@"); ok {
		var err error
		if raw, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("读取 data 文件失败: %w", err)
		}
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("解析 data JSON 失败: %w", err)
	}
	return data, nil
}
