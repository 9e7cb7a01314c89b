package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "<h1>A</h1><h2>B</h2>"

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func run(t *testing.T, stdin string, args []string, opts ...Option) (string, error) {
	t.Helper()
	cmd := NewRootCmd(opts...)
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestAnchorsFromStdin(t *testing.T) {
	isolate(t)

	out, err := run(t, sample, []string{"anchors"})
	require.NoError(t, err)
	assert.Equal(t, `<h1 id="a">A</h1><h2 id="b">B</h2>`+"\n", out)

	out, err = run(t, sample, []string{"anchors", "-", "--top", "2"})
	require.NoError(t, err)
	assert.Equal(t, `<h1>A</h1><h2 id="b">B</h2>`+"\n", out)
}

func TestMenuHTML(t *testing.T) {
	isolate(t)

	out, err := run(t, sample, []string{"menu"})
	require.NoError(t, err)
	assert.Equal(t, `<ul><li><a href="#a">A</a><ul><li><a href="#b">B</a></li></ul></li></ul>`+"\n", out)

	out, err = run(t, sample, []string{"menu", "--ordered"})
	require.NoError(t, err)
	assert.Equal(t, `<ol><li><a href="#a">A</a><ol><li><a href="#b">B</a></li></ol></li></ol>`+"\n", out)
}

func TestMenuJSON(t *testing.T) {
	isolate(t)

	out, err := run(t, sample, []string{"menu", "--format", "json"})
	require.NoError(t, err)

	var items []struct {
		Label    string `json:"label"`
		URI      string `json:"uri"`
		Level    int    `json:"level"`
		Children []struct {
			Label string `json:"label"`
			URI   string `json:"uri"`
			Level int    `json:"level"`
		} `json:"children"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "A", items[0].Label)
	assert.Equal(t, "#a", items[0].URI)
	assert.Equal(t, 1, items[0].Level)
	require.Len(t, items[0].Children, 1)
	assert.Equal(t, "#b", items[0].Children[0].URI)
	assert.Equal(t, 2, items[0].Children[0].Level)
}

func TestMenuEmptyJSON(t *testing.T) {
	isolate(t)

	out, err := run(t, "<p>no headings</p>", []string{"menu", "-f", "json"})
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestMenuYAML(t *testing.T) {
	isolate(t)

	out, err := run(t, sample, []string{"menu", "--format", "yaml"})
	require.NoError(t, err)
	assert.Contains(t, out, "label: A")
	assert.Contains(t, out, "level: 2")
	assert.Contains(t, out, "#b")
}

func TestMenuMarkdownFromFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("# Intro\n\n### Deep_dive\n\n## Usage\n"), 0o644))

	out, err := run(t, "", []string{"menu", path, "--format", "markdown"})
	require.NoError(t, err)
	assert.Equal(t, "- [Intro](#intro)\n  -\n    - [Deep\\_dive](#deep-dive)\n  - [Usage](#usage)\n", out)
}

func TestRenderTemplate(t *testing.T) {
	dir := isolate(t)
	tplDir := filepath.Join(dir, "tpl")
	require.NoError(t, os.MkdirAll(tplDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(tplDir, "page.html"),
		[]byte(`{{ content|add_anchors }}|{{ toc(content, 1, 1) }}`), 0o644))

	out, err := run(t, sample, []string{"render", "page.html", "--templates", tplDir})
	require.NoError(t, err)
	assert.Equal(t, `<h1 id="a">A</h1><h2 id="b">B</h2>|<ul><li><a href="#a">A</a></li></ul>`, out)

	source := filepath.Join(dir, "doc.html")
	require.NoError(t, os.WriteFile(source, []byte(sample), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tplDir, "source.html"),
		[]byte(`{{ source }}|{{ content|add_anchors:"2" }}`), 0o644))

	out, err = run(t, "", []string{"render", "source.html", source, "--templates", tplDir})
	require.NoError(t, err)
	assert.Equal(t, source+`|<h1>A</h1><h2 id="b">B</h2>`, out)
}

func TestConfigFileAndFlags(t *testing.T) {
	dir := isolate(t)
	cfg := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("top: 2\nclasses:\n  list: toc\n"), 0o644))

	out, err := run(t, sample, []string{"menu", "--config", cfg})
	require.NoError(t, err)
	assert.Equal(t, `<ul class="toc"><li><a href="#b">B</a></li></ul>`+"\n", out)

	out, err = run(t, sample, []string{"menu", "--config", cfg, "--top", "1", "--depth", "1"})
	require.NoError(t, err)
	assert.Equal(t, `<ul class="toc"><li><a href="#a">A</a></li></ul>`+"\n", out)
}

func TestInvalidRange(t *testing.T) {
	isolate(t)

	_, err := run(t, sample, []string{"menu", "--top", "4", "--depth", "2"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestHTTPDisabledByDefault(t *testing.T) {
	isolate(t)

	_, err := run(t, "", []string{"menu", "https://example.invalid/page.html"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http support disabled")
}

type scriptedPrompter struct {
	answers []string
	asked   []InputConfig
}

func (p *scriptedPrompter) Input(_ context.Context, cfg InputConfig) (string, error) {
	p.asked = append(p.asked, cfg)
	if len(p.answers) == 0 {
		return "", errors.New("no answer scripted")
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

func TestInteractiveRange(t *testing.T) {
	isolate(t)

	prompter := &scriptedPrompter{answers: []string{"2", "2"}}
	out, err := run(t, "<h1>A</h1><h2>B</h2><h3>C</h3>", []string{"menu", "--interactive"}, WithPrompter(prompter))
	require.NoError(t, err)
	assert.Equal(t, `<ul><li><a href="#b">B</a></li></ul>`+"\n", out)

	require.Len(t, prompter.asked, 2)
	assert.Equal(t, "1", prompter.asked[0].Default)
	assert.Error(t, prompter.asked[1].Validator("1"))
	assert.NoError(t, prompter.asked[1].Validator("6"))
}

func TestInteractiveRejectsBadAnswer(t *testing.T) {
	isolate(t)

	prompter := &scriptedPrompter{answers: []string{"seven"}}
	_, err := run(t, sample, []string{"anchors", "--interactive"}, WithPrompter(prompter))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a number")
}
