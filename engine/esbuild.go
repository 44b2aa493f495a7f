package engine

import (
	"encoding/json"

	"github.com/evanw/esbuild/pkg/api"
	"go.uber.org/zap"

	"github.com/zengjixiang/parcel/schema"
)

// ESBuild implements Transformer with esbuild's single-file transform API.
// The zero value is ready to use and safe for concurrent calls.
type ESBuild struct{}

// NewESBuild returns the esbuild-backed transformer.
func NewESBuild() *ESBuild {
	return &ESBuild{}
}

var (
	loaders = map[schema.Loader]api.Loader{
		schema.LoaderJS:  api.LoaderJS,
		schema.LoaderJSX: api.LoaderJSX,
		schema.LoaderTS:  api.LoaderTS,
		schema.LoaderTSX: api.LoaderTSX,
	}

	targets = map[schema.Target]api.Target{
		schema.TargetESNext: api.ESNext,
		schema.TargetES2015: api.ES2015,
		schema.TargetES2016: api.ES2016,
		schema.TargetES2017: api.ES2017,
		schema.TargetES2018: api.ES2018,
		schema.TargetES2019: api.ES2019,
		schema.TargetES2020: api.ES2020,
		schema.TargetES2021: api.ES2021,
		schema.TargetES2022: api.ES2022,
	}

	formats = map[schema.Format]api.Format{
		schema.FormatPreserve: api.FormatDefault,
		schema.FormatESM:      api.FormatESModule,
		schema.FormatCJS:      api.FormatCommonJS,
		schema.FormatIIFE:     api.FormatIIFE,
	}

	platforms = map[schema.Platform]api.Platform{
		schema.PlatformBrowser: api.PlatformBrowser,
		schema.PlatformNode:    api.PlatformNode,
		schema.PlatformNeutral: api.PlatformNeutral,
	}

	legalComments = map[schema.LegalComments]api.LegalComments{
		schema.LegalCommentsDefault: api.LegalCommentsDefault,
		schema.LegalCommentsNone:    api.LegalCommentsNone,
		schema.LegalCommentsInline:  api.LegalCommentsInline,
		schema.LegalCommentsEOF:     api.LegalCommentsEndOfFile,
	}
)

// Transform runs esbuild once over cfg.Code. Parse and lowering errors
// become the Diagnostics arm; warnings travel with either arm.
func (e *ESBuild) Transform(cfg schema.Config) schema.Result {
	cfg.Normalize()
	opts := Options(cfg)

	res := api.Transform(cfg.Code, opts)

	file := cfg.SourceFile()
	warnings := convertMessages(res.Warnings, schema.SeverityWarning, file)
	if len(res.Errors) > 0 {
		Logger().Debug("transform produced diagnostics",
			zap.String("filename", cfg.Filename),
			zap.Int("errors", len(res.Errors)),
			zap.Int("warnings", len(res.Warnings)))
		return schema.Failed(schema.Diagnostics{
			Errors:   convertMessages(res.Errors, schema.SeverityError, file),
			Warnings: warnings,
		})
	}

	return schema.Succeeded(schema.Output{
		Code:          string(res.Code),
		Map:           string(res.Map),
		LegalComments: string(res.LegalComments),
		Warnings:      warnings,
	})
}

// Options maps a normalized Config onto esbuild transform options.
func Options(cfg schema.Config) api.TransformOptions {
	opts := api.TransformOptions{
		LogLevel:      api.LogLevelSilent,
		Sourcefile:    cfg.SourceFile(),
		Loader:        loaders[cfg.Loader],
		Target:        targets[cfg.Target],
		Format:        formats[cfg.Format],
		Platform:      platforms[cfg.Platform],
		LegalComments: legalComments[cfg.LegalComments],
		KeepNames:     cfg.KeepNames,
		LineLimit:     cfg.LineLimit,
		Banner:        cfg.Banner,
		Footer:        cfg.Footer,
		Define:        defines(cfg),
	}

	if cfg.SourceMaps {
		opts.Sourcemap = api.SourceMapExternal
		opts.SourcesContent = api.SourcesContentInclude
	}

	if cfg.Minify {
		opts.MinifyWhitespace = true
		opts.MinifyIdentifiers = true
		opts.MinifySyntax = true
	}

	if cfg.AutomaticJSXRuntime {
		opts.JSX = api.JSXAutomatic
		opts.JSXImportSource = cfg.JSXImportSource
		opts.JSXDev = cfg.IsDevelopment
	} else {
		opts.JSX = api.JSXTransform
		opts.JSXFactory = cfg.JSXPragma
		opts.JSXFragment = cfg.JSXPragmaFrag
	}

	for _, d := range cfg.Drop {
		switch d {
		case schema.DropConsole:
			opts.Drop |= api.DropConsole
		case schema.DropDebugger:
			opts.Drop |= api.DropDebugger
		}
	}

	return opts
}

// defines builds the global replacement table. Explicit define entries
// win over values inlined from env.
func defines(cfg schema.Config) map[string]string {
	if !cfg.ReplaceEnv && len(cfg.Define) == 0 {
		return nil
	}

	out := make(map[string]string, len(cfg.Define)+len(cfg.Env)+1)
	if cfg.ReplaceEnv {
		mode := "production"
		if cfg.IsDevelopment {
			mode = "development"
		}
		out["process.env.NODE_ENV"] = jsString(mode)

		for k, v := range cfg.Env {
			out["process.env."+k] = jsString(v)
		}
	}
	for k, v := range cfg.Define {
		out[k] = v
	}
	return out
}

func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
