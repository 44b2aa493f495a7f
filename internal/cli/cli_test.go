package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zengjixiang/parcel/errors"
	"github.com/zengjixiang/parcel/schema"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent of testing.T.Chdir, Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestLoadSettings_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	s, err := LoadSettings("", nil)
	require.NoError(t, err)
	assert.Equal(t, EngineGo, s.Engine)
	assert.Equal(t, OutputAuto, s.Output)
	assert.Empty(t, s.Trace)
	assert.False(t, s.Verbose)
	assert.Empty(t, s.Options)
	assert.Empty(t, s.ConfigFile)
}

func TestLoadSettings_Precedence(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, dir, "transform.yaml", `
output: yaml
options:
  target: es2015
  minify: false
  define:
    process.env.API: '"https://example.test"'
`)
	t.Setenv("TRANSFORM_OUTPUT", "json")
	t.Setenv("TRANSFORM_OPTIONS__MINIFY", "true")

	cmd := newRunCommand()
	require.NoError(t, cmd.Flags().Parse([]string{
		"--target", "es2020",
		"--define", "DEBUG=false",
		"--drop", "console,debugger",
	}))

	s, err := LoadSettings("", cmd.Flags())
	require.NoError(t, err)
	assert.Equal(t, "transform.yaml", s.ConfigFile)
	assert.Equal(t, OutputJSON, s.Output, "env overrides file")
	assert.Equal(t, "es2020", s.Options["target"], "flag overrides file")
	assert.Equal(t, true, s.Options["minify"], "env values are typed")
	assert.Equal(t, "[console debugger]", fmt.Sprint(s.Options["drop"]))
	assert.Equal(t, map[string]any{
		"process.env.API": `"https://example.test"`,
		"DEBUG":           "false",
	}, s.Options["define"])
}

func TestLoadSettings_Invalid(t *testing.T) {
	t.Run("wasm without module", func(t *testing.T) {
		chdir(t, t.TempDir())
		t.Setenv("TRANSFORM_ENGINE", "wasm")

		_, err := LoadSettings("", nil)
		var e *errors.Error
		require.ErrorAs(t, err, &e)
		assert.Equal(t, errors.PhaseConfig, e.Phase)
		assert.Equal(t, errors.KindFieldMissing, e.Kind)
		assert.Equal(t, []string{"module"}, e.Path)
	})

	t.Run("unknown output", func(t *testing.T) {
		chdir(t, t.TempDir())
		t.Setenv("TRANSFORM_OUTPUT", "xml")

		_, err := LoadSettings("", nil)
		var e *errors.Error
		require.ErrorAs(t, err, &e)
		assert.Equal(t, errors.KindInvalidEnum, e.Kind)
	})

	t.Run("malformed define", func(t *testing.T) {
		chdir(t, t.TempDir())
		cmd := newRunCommand()
		require.NoError(t, cmd.Flags().Parse([]string{"--define", "NOVALUE"}))

		_, err := LoadSettings("", cmd.Flags())
		var e *errors.Error
		require.ErrorAs(t, err, &e)
		assert.Equal(t, errors.KindInvalidInput, e.Kind)
	})

	t.Run("missing config file", func(t *testing.T) {
		chdir(t, t.TempDir())
		_, err := LoadSettings("nope.yaml", nil)
		require.Error(t, err)
	})
}

func TestCallTree(t *testing.T) {
	s := &Settings{Options: map[string]any{"minify": true, "code": "ignored"}}
	tree := s.CallTree("let a", "a.ts")
	assert.Equal(t, map[string]any{"minify": true, "code": "let a", "filename": "a.ts"}, tree)
	assert.Equal(t, "ignored", s.Options["code"], "options are not modified")
}

func TestRun_File(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := writeFile(t, dir, "a.ts", "let a: number = 1")

	out, err := execute(t, "", "run", path, "-o", "json")
	require.NoError(t, err)

	var tree map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &tree))
	assert.Equal(t, "let a = 1;\n", tree["code"])
}

func TestRun_StdinWithOptions(t *testing.T) {
	chdir(t, t.TempDir())

	out, err := execute(t, "if (DEBUG) console.log(1)\nfoo()",
		"run", "--filename", "in.js", "--define", "DEBUG=false", "--drop", "console", "-o", "text")
	require.NoError(t, err)
	assert.NotContains(t, out, "console")
	assert.Contains(t, out, "foo();")
}

func TestRun_YAML(t *testing.T) {
	chdir(t, t.TempDir())

	out, err := execute(t, "const x = 1", "run", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "const x = 1;")
	assert.Contains(t, out, "warnings: []")
}

func TestRun_Diagnostics(t *testing.T) {
	chdir(t, t.TempDir())

	out, err := execute(t, "const x = ;", "run", "--filename", "bad.js", "-o", "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.js")
	assert.Contains(t, out, `Unexpected ";"`)
	assert.Contains(t, out, "bad.js:1:")
}

func TestRun_DecodeError(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := execute(t, "x", "run", "--target", "es3", "-o", "json")
	require.Error(t, err)
	assert.True(t, errors.IsDecode(err))
}

func TestCheckConfig(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	good := writeFile(t, dir, "good.yaml", `
options:
  target: es2018
  drop: [console]
  line_limit: 120
  define:
    process.env.NODE_ENV: '"production"'
`)
	out, err := execute(t, "", "check-config", good)
	require.NoError(t, err)
	assert.Contains(t, out, "configuration ok")

	tests := []struct {
		name    string
		content string
	}{
		{"bad enum", "options:\n  target: es3\n"},
		{"fractional integer", "options:\n  line_limit: 1.5\n"},
		{"wrong type", "options:\n  minify: [true]\n"},
		{"options not a mapping", "options: 3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, "bad.yaml", tt.content)
			_, err := execute(t, "", "check-config", path)
			require.Error(t, err)
		})
	}
}

func TestCheckConfig_MergedSettings(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TRANSFORM_OPTIONS__FORMAT", "umd")

	_, err := execute(t, "", "check-config")
	require.Error(t, err)
}

func TestCompare_RequiresModule(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := execute(t, "x", "compare")
	var e *errors.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errors.KindFieldMissing, e.Kind)
}

type rewriteEngine struct {
	Engine
	code string
}

func (e rewriteEngine) Transform(ctx context.Context, tree any) (any, error) {
	out, err := e.Engine.Transform(ctx, tree)
	if err != nil {
		return nil, err
	}
	m := out.(map[string]any)
	m["code"] = e.code
	return m, nil
}

func TestCompareEngines(t *testing.T) {
	ctx := context.Background()
	tree := map[string]any{"code": "const x = 1", "filename": "a.js"}

	diffs, err := compareEngines(ctx, newGoEngine(), newGoEngine(), tree)
	require.NoError(t, err)
	assert.Empty(t, diffs)

	diffs, err = compareEngines(ctx, newGoEngine(), rewriteEngine{Engine: newGoEngine(), code: "x"}, tree)
	require.NoError(t, err)
	require.Len(t, diffs, 1)
	assert.Equal(t, "code", diffs[0].Path)
	assert.Equal(t, `code: "const x = 1;\n" != "x"`, diffs[0].String())

	var buf bytes.Buffer
	err = reportDifferences(&buf, diffs)
	require.Error(t, err)
	assert.Contains(t, buf.String(), "code:")

	// Both engines failing the same way agree.
	bad := map[string]any{"filename": "a.js"}
	diffs, err = compareEngines(ctx, newGoEngine(), newGoEngine(), bad)
	require.NoError(t, err)
	assert.Empty(t, diffs)
}

func TestDiffTrees(t *testing.T) {
	left := map[string]any{
		"code":     "a",
		"warnings": []any{map[string]any{"message": "m"}},
		"map":      "",
	}
	right := map[string]any{
		"code":     "a",
		"warnings": []any{},
		"extra":    true,
	}

	diffs := diffTrees(left, right)
	require.Len(t, diffs, 3)
	assert.Equal(t, "extra", diffs[0].Path)
	assert.Equal(t, "<absent>", show(diffs[0].Left))
	assert.Equal(t, "map", diffs[1].Path)
	assert.Equal(t, `map: "" != <absent>`, diffs[1].String())
	assert.Equal(t, "warnings.0", diffs[2].Path)
	assert.Equal(t, map[string]any{"message": "m"}, diffs[2].Left)
	assert.Nil(t, diffs[2].Right)

	assert.Empty(t, diffTrees(left, left))
}

func TestDiffTrees_NestedChange(t *testing.T) {
	left := map[string]any{"warnings": []any{
		map[string]any{"message": "a", "loc": map[string]any{"line": float64(1)}},
	}}
	right := map[string]any{"warnings": []any{
		map[string]any{"message": "a", "loc": map[string]any{"line": float64(2)}},
	}}

	diffs := diffTrees(left, right)
	require.Len(t, diffs, 1)
	assert.Equal(t, "warnings.0.loc.line: 1 != 2", diffs[0].String())
}

func TestFormatDiagnostic(t *testing.T) {
	got := formatDiagnostic(schema.Diagnostic{
		Message:  "Unexpected token",
		ID:       "syntax",
		Severity: schema.SeverityError,
		File:     "a.js",
		CodeHighlights: []schema.CodeHighlight{{
			Message: "here",
			Loc:     schema.SourceLocation{StartLine: 3, StartCol: 7, EndLine: 3, EndCol: 7},
		}},
		Hints: []string{`Replace with "x"`},
	})
	assert.Contains(t, got, "[syntax]: Unexpected token")
	assert.Contains(t, got, "a.js:3:7")
	assert.Contains(t, got, "here")
	assert.Contains(t, got, `hint: Replace with "x"`)
}

func TestFormatResult_SourceMap(t *testing.T) {
	got := formatResult(schema.Succeeded(schema.Output{Code: "x;", Map: "{}"}))
	assert.Equal(t, "x;\n//# sourceMappingURL=data:application/json;base64,e30=\n", got)
}

func TestResolveOutput(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, OutputJSON, resolveOutput(OutputAuto, &buf))
	assert.Equal(t, OutputYAML, resolveOutput(OutputYAML, &buf))
}

func TestSetupTracing(t *testing.T) {
	shutdown, err := setupTracing("", &bytes.Buffer{})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))

	_, err = setupTracing("jaeger", &bytes.Buffer{})
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "transform v"+Version)
}
