package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"

	"github.com/ByLCY/wordsplit/document"
	"github.com/ByLCY/wordsplit/layout"
)

// tracer traces with key 'wordsplit.cli'.
func tracer() tracing.Trace {
	return tracing.Select("wordsplit.cli")
}

var traceKeys = []string{
	"wordsplit.cli",
	"wordsplit.document",
	"wordsplit.textrun",
	"wordsplit.measure",
	"wordsplit.layout",
	"wordsplit.canvas",
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{"tracing.adapter": "go"}
	for _, key := range traceKeys {
		conf["trace."+key] = "Error"
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	cfg := config{}
	flag.StringVar(&cfg.input, "in", "examples/poster.ws", "DSL 文件路径")
	flag.StringVar(&cfg.output, "out", "output/poster.pdf", "PDF 输出路径（为空则不渲染）")
	flag.StringVar(&cfg.debug, "debug", "", "拆分结果调试 JSON 输出路径")
	flag.StringVar(&cfg.data, "data", "", "绑定到 DSL 的 JSON 数据，@path 表示从文件读取")
	selection := flag.String("select", "", "要拆分的分组或文本名称，逗号分隔；为空则全部")
	flag.StringVar(&cfg.layer, "layer", "Words", "输出图层名称")
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	list := flag.Bool("list", false, "以表格列出全部单词单元")
	flag.Parse()
	if *selection != "" {
		cfg.selection = strings.Split(*selection, ",")
	}

	if !setTraceLevel(*tlevel) {
		pterm.Error.Printf("Invalid trace level: %s\n", *tlevel)
		os.Exit(1)
	}
	tracer().Infof("Trace level is %s", *tlevel)

	result, err := run(cfg)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(exitCode(err))
	}
	if *list {
		listUnits(result)
	}
	sum := result.Summary
	pterm.Info.Printf("%d word units created from %d text runs (%d skipped, %d estimated widths)\n",
		sum.Units, sum.Runs, sum.Skipped, sum.Measure.Estimated)
}

func setTraceLevel(level string) bool {
	for _, key := range traceKeys {
		switch level {
		case "Debug":
			tracing.Select(key).SetTraceLevel(tracing.LevelDebug)
		case "Info":
			tracing.Select(key).SetTraceLevel(tracing.LevelInfo)
		case "Error":
			tracing.Select(key).SetTraceLevel(tracing.LevelError)
		default:
			return false
		}
	}
	return true
}

// exitCode 为每种致命错误返回不同的退出码。
func exitCode(err error) int {
	switch {
	case errors.Is(err, document.ErrNoDocument):
		return 2
	case errors.Is(err, document.ErrNoSelection):
		return 3
	case errors.Is(err, layout.ErrNoTextRuns):
		return 4
	default:
		return 1
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func listUnits(result *layout.Result) {
	data := [][]string{{"Layer", "Group", "Word", "X", "Y", "Width"}}
	for _, l := range result.Layers {
		for _, g := range l.Groups {
			for _, u := range g.Units {
				data = append(data, []string{
					l.Name, g.Name, u.Text,
					fmt.Sprintf("%.2f", u.Origin.X),
					fmt.Sprintf("%.2f", u.Origin.Y),
					fmt.Sprintf("%.2f", u.Width),
				})
			}
		}
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
