package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/wordsplit/document"
	"github.com/ByLCY/wordsplit/layout"
)

func TestRunPoster(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wordsplit.cli", "wordsplit.layout")
	defer teardown()

	dir := t.TempDir()
	cfg := config{
		input:  filepath.Join("examples", "poster.ws"),
		output: filepath.Join(dir, "out", "poster.pdf"),
		debug:  filepath.Join(dir, "debug", "poster.json"),
		data:   "@" + filepath.Join("examples", "poster.json"),
		layer:  "Split",
	}
	result, err := run(cfg)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Summary.Runs)
	assert.Equal(t, 19, result.Summary.Units)
	assert.Equal(t, 0, result.Summary.Measure.Estimated)
	require.Len(t, result.Layers, 1)
	assert.Equal(t, "Split", result.Layers[0].Name)
	assert.Equal(t, "Ada", result.Layers[0].Groups[0].Units[1].Text)

	pdf, err := os.ReadFile(cfg.output)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))
	_, err = os.Stat(cfg.debug)
	assert.NoError(t, err)
}

func TestRunFatalErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wordsplit.cli")
	defer teardown()

	dir := t.TempDir()
	src := filepath.Join(dir, "empty.ws")
	require.NoError(t, os.WriteFile(src, []byte(`doc Empty v1 {
  artboard 100 100 {
    group Nothing { }
    text { "x" }
  }
}`), 0o644))
	out := filepath.Join(dir, "never.pdf")

	cases := []struct {
		cfg  config
		want error
		code int
	}{
		{config{input: filepath.Join(dir, "missing.ws"), output: out}, document.ErrNoDocument, 2},
		{config{input: src, output: out, selection: []string{"nope"}}, document.ErrNoSelection, 3},
		{config{input: src, output: out, selection: []string{"Nothing"}}, layout.ErrNoTextRuns, 4},
	}
	for _, c := range cases {
		_, err := run(c.cfg)
		require.Error(t, err)
		assert.True(t, errors.Is(err, c.want), "got %v", err)
		assert.Equal(t, c.code, exitCode(err))
	}
	_, err := os.Stat(out)
	assert.True(t, os.IsNotExist(err), "no output on fatal errors")
}

func TestLoadData(t *testing.T) {
	data, err := loadData(`{"a": [1, 2]}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": []any{1.0, 2.0}}, data)

	data, err = loadData("")
	assert.NoError(t, err)
	assert.Nil(t, data)

	_, err = loadData("{broken")
	assert.Error(t, err)
	_, err = loadData("@does/not/exist.json")
	assert.Error(t, err)
}
