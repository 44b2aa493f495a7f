// Package runtime hosts the WebAssembly build of the transform adapter.
//
// # Quick Start
//
//	ctx := context.Background()
//	rt, err := runtime.New(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rt.Close(ctx)
//
//	mod, err := rt.Load(ctx, wasmBytes)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	inst, err := mod.Instantiate(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer inst.Close(ctx)
//
//	res, err := inst.TransformConfig(ctx, schema.Config{
//	    Code:     "let a: number = 1",
//	    Filename: "a.ts",
//	})
//
// # Module Contract
//
// A transform module is a GOOS=wasip1 reactor exporting:
//
//	transform(ptr, len i32) i64   packed result, see package abi
//	alloc(size i32) i32
//	free(ptr i32)
//	memory
//
// Load rejects modules that miss any of these or export them with a
// different signature. The host frees both the argument block and the
// result block after each call.
//
// # Errors
//
// Every error returned here is an *errors.Error. Load failures carry
// PhaseLoad; host-side memory and call failures carry PhaseRuntime; errors
// reported by the guest keep the guest's phase (decode or encode).
//
// # Thread Safety
//
// Runtime and Module are safe for concurrent use. An Instance serializes
// its calls; create one instance per goroutine for parallel transforms.
package runtime
