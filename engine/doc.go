// Package engine provides the source transformation the adapter invokes.
//
// The adapter treats the transformation as an opaque capability behind the
// Transformer interface. ESBuild is the production implementation; tests
// inject a TransformFunc.
//
// # Config Mapping
//
//	Config field           esbuild option
//	─────────────────────────────────────────────────────
//	loader                 Loader (js, jsx, ts, tsx)
//	target                 Target (esnext, es2015..es2022)
//	format                 Format (preserve = default)
//	platform               Platform
//	source_maps            Sourcemap = external, sources content included
//	minify                 whitespace + identifiers + syntax
//	keep_names             KeepNames
//	replace_env, env       Define process.env.NODE_ENV and process.env.<KEY>
//	define                 Define (explicit entries win)
//	automatic_jsx_runtime  JSX automatic + JSXImportSource, JSXDev in development
//	jsx_pragma(_frag)      JSXFactory / JSXFragment for the classic runtime
//	drop                   Drop bit set
//	line_limit             LineLimit
//	legal_comments         LegalComments (eof = end of file)
//	banner, footer         Banner / Footer
//
// # Results
//
// Any esbuild error makes the result a schema.Diagnostics; warnings are
// carried by both arms. Message locations become 1-based inclusive
// highlights, notes become extra highlights or hints.
//
// # Logging
//
// Logger returns a no-op zap logger by default. Install a real one with
// SetLogger before the first call.
//
// # Thread Safety
//
// ESBuild is stateless and safe for concurrent use.
package engine
