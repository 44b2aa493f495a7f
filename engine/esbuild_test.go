package engine

import (
	"encoding/json"
	"testing"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zengjixiang/parcel/schema"
)

func transform(t *testing.T, cfg schema.Config) schema.Result {
	t.Helper()
	res := NewESBuild().Transform(cfg)
	require.True(t, res.Valid(), "exactly one arm must be set")
	return res
}

func TestESBuild_Deterministic(t *testing.T) {
	cfg := schema.Config{Code: "const x = 1", Filename: "a.js"}

	first := transform(t, cfg)
	second := transform(t, cfg)

	require.NotNil(t, first.Output)
	assert.Equal(t, "const x = 1;\n", first.Output.Code)
	assert.Equal(t, first, second)
}

func TestESBuild_SyntaxErrorIsDiagnostics(t *testing.T) {
	res := transform(t, schema.Config{Code: "const x = ;", Filename: "a.js"})

	require.Nil(t, res.Output)
	require.NotNil(t, res.Diagnostics)
	require.NotEmpty(t, res.Diagnostics.Errors)

	d := res.Diagnostics.Errors[0]
	assert.Contains(t, d.Message, `Unexpected ";"`)
	assert.Equal(t, schema.SeverityError, d.Severity)
	assert.Equal(t, "a.js", d.File)
	require.NotEmpty(t, d.CodeHighlights)
	assert.Equal(t, 1, d.CodeHighlights[0].Loc.StartLine)
	assert.Equal(t, 11, d.CodeHighlights[0].Loc.StartCol)
}

func TestESBuild_Options(t *testing.T) {
	tests := []struct {
		name     string
		cfg      schema.Config
		contains []string
		excludes []string
	}{
		{
			name:     "typescript loader from filename",
			cfg:      schema.Config{Code: "let a: number = 1", Filename: "a.ts"},
			contains: []string{"let a = 1;"},
			excludes: []string{"number"},
		},
		{
			name:     "classic jsx with pragma",
			cfg:      schema.Config{Code: "<A>x</A>", Filename: "a.jsx", JSXPragma: "h"},
			contains: []string{"h(A"},
		},
		{
			name: "automatic jsx runtime",
			cfg: schema.Config{
				Code:                "export const a = <div />",
				Filename:            "a.jsx",
				AutomaticJSXRuntime: true,
				JSXImportSource:     "preact",
			},
			contains: []string{"preact/jsx-runtime"},
		},
		{
			name: "replace env",
			cfg: schema.Config{
				Code:       "console.log(process.env.NODE_ENV, process.env.API)",
				Filename:   "a.js",
				ReplaceEnv: true,
				Env:        map[string]string{"API": "https://example.test"},
			},
			contains: []string{`"production"`, `"https://example.test"`},
			excludes: []string{"process.env"},
		},
		{
			name: "define",
			cfg: schema.Config{
				Code:     "console.log(DEBUG)",
				Filename: "a.js",
				Define:   map[string]string{"DEBUG": "false"},
			},
			contains: []string{"console.log(false)"},
			excludes: []string{"DEBUG"},
		},
		{
			name: "drop console",
			cfg: schema.Config{
				Code:     "console.log(1); run();",
				Filename: "a.js",
				Drop:     []schema.Drop{schema.DropConsole},
			},
			contains: []string{"run();"},
			excludes: []string{"console"},
		},
		{
			name:     "lower to es2015",
			cfg:      schema.Config{Code: "a ??= b", Filename: "a.js", Target: schema.TargetES2015},
			excludes: []string{"??="},
		},
		{
			name:     "minify",
			cfg:      schema.Config{Code: "const value = 1;\nexport { value };", Filename: "a.js", Minify: true},
			excludes: []string{"\n\n", "const value = 1;\n"},
		},
		{
			name:     "banner and footer",
			cfg:      schema.Config{Code: "run()", Filename: "a.js", Banner: "/* top */", Footer: "/* end */"},
			contains: []string{"/* top */", "/* end */"},
		},
		{
			name:     "cjs format",
			cfg:      schema.Config{Code: "export const a = 1", Filename: "a.js", Format: schema.FormatCJS},
			contains: []string{"module.exports"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := transform(t, tt.cfg)
			require.NotNil(t, res.Output, "unexpected diagnostics: %+v", res.Diagnostics)
			for _, s := range tt.contains {
				assert.Contains(t, res.Output.Code, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, res.Output.Code, s)
			}
		})
	}
}

func TestESBuild_SourceMap(t *testing.T) {
	res := transform(t, schema.Config{
		Code:        "const x = 1",
		Filename:    "/app/src/a.js",
		ProjectRoot: "/app",
		SourceMaps:  true,
	})
	require.NotNil(t, res.Output)
	require.NotEmpty(t, res.Output.Map)

	var sm struct {
		Version int      `json:"version"`
		Sources []string `json:"sources"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.Output.Map), &sm))
	assert.Equal(t, 3, sm.Version)
	assert.Equal(t, []string{"src/a.js"}, sm.Sources)

	plain := transform(t, schema.Config{Code: "const x = 1", Filename: "a.js"})
	assert.Empty(t, plain.Output.Map)
}

func TestOptions(t *testing.T) {
	cfg := schema.Config{
		Code:          "",
		Filename:      "a.tsx",
		Drop:          []schema.Drop{schema.DropConsole, schema.DropDebugger},
		LegalComments: schema.LegalCommentsEOF,
		Platform:      schema.PlatformNode,
		ReplaceEnv:    true,
		IsDevelopment: true,
		Define:        map[string]string{"process.env.NODE_ENV": `"test"`},
	}
	cfg.Normalize()

	opts := Options(cfg)
	assert.Equal(t, api.LoaderTSX, opts.Loader)
	assert.Equal(t, api.ESNext, opts.Target)
	assert.Equal(t, api.FormatDefault, opts.Format)
	assert.Equal(t, api.PlatformNode, opts.Platform)
	assert.Equal(t, api.LegalCommentsEndOfFile, opts.LegalComments)
	assert.Equal(t, api.DropConsole|api.DropDebugger, opts.Drop)
	assert.Equal(t, api.LogLevelSilent, opts.LogLevel)
	assert.Equal(t, `"test"`, opts.Define["process.env.NODE_ENV"], "explicit define wins")
}

func TestConvertMessage(t *testing.T) {
	msg := api.Message{
		ID:   "js-comparison",
		Text: "Comparison with -0",
		Location: &api.Location{
			File:       "src/a.js",
			Line:       2,
			Column:     4,
			Length:     3,
			Suggestion: "Object.is",
		},
		Notes: []api.Note{
			{Text: "Floating-point equality treats 0 and -0 as equal"},
			{Text: "declared here", Location: &api.Location{Line: 1, Column: 0, Length: 0}},
		},
	}

	d := convertMessage(msg, schema.SeverityWarning, "fallback.js")
	assert.Equal(t, schema.Diagnostic{
		Message:  "Comparison with -0",
		ID:       "js-comparison",
		Severity: schema.SeverityWarning,
		File:     "src/a.js",
		CodeHighlights: []schema.CodeHighlight{
			{Loc: schema.SourceLocation{StartLine: 2, StartCol: 5, EndLine: 2, EndCol: 7}},
			{Message: "declared here", Loc: schema.SourceLocation{StartLine: 1, StartCol: 1, EndLine: 1, EndCol: 1}},
		},
		Hints: []string{`Replace with "Object.is"`, "Floating-point equality treats 0 and -0 as equal"},
	}, d)

	bare := convertMessage(api.Message{Text: "oops"}, schema.SeverityError, "fallback.js")
	assert.Equal(t, "fallback.js", bare.File)
	assert.Nil(t, bare.CodeHighlights)
	assert.Nil(t, convertMessages(nil, schema.SeverityError, "x"))
}

func TestLogger(t *testing.T) {
	assert.NotNil(t, Logger())
	SetLogger(nil)
	assert.NotNil(t, Logger())
}
