// Package parcel embeds a JavaScript/TypeScript transform in two hosts:
// Node.js through Node-API and any WebAssembly runtime through a WASI
// reactor module. Both embeddings share one adapter, so a given config
// yields the same result, or the same error, whichever host runs it.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	parcel/              Root package with core Memory and Allocator interfaces
//	├── schema/          Config and Result types, enums, JSON Schema
//	├── errors/          Structured adapter errors (phase, kind, path)
//	├── transcoder/      Neutral value tree <-> Config/Result
//	├── engine/          The transform itself (esbuild) and its logger
//	├── adapter/         Decode -> invoke -> encode pipeline, tracing
//	├── abi/             WebAssembly wire format and memory protocol
//	├── guest/           Code running inside the WebAssembly module
//	├── runtime/         wazero host for the compiled module
//	├── napi/            Node-API embedding (build tag napi)
//	├── testbed/         In-process guest and JS heap for tests
//	└── internal/cli/    The transform command
//
// # Quick Start
//
// Run a transform in process on a neutral value tree:
//
//	p := adapter.NewTree(engine.NewESBuild())
//	out, err := p.Call(ctx, map[string]any{
//	    "code":     "let a: number = 1",
//	    "filename": "a.ts",
//	}).Unpack()
//
// Or inside the WebAssembly module, see package runtime.
//
// # Errors
//
// Every failure outside the transform itself is an *errors.Error naming
// the phase (decode, encode, invoke, load, runtime, config), the kind
// and the path of the offending field. Source errors are not failures:
// they come back as a Result carrying diagnostics.
//
// # Thread Safety
//
// Pipelines and the esbuild engine are safe for concurrent use. A
// runtime.Instance serializes calls into its module.
package parcel
