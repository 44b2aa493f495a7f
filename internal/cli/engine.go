package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/zengjixiang/parcel/adapter"
	"github.com/zengjixiang/parcel/engine"
	"github.com/zengjixiang/parcel/runtime"
)

// Engine runs transform calls on neutral value trees.
type Engine interface {
	Name() string
	Transform(ctx context.Context, tree any) (any, error)
	Close(ctx context.Context) error
}

// goEngine runs the transform in process.
type goEngine struct {
	pipeline *adapter.Pipeline[any]
}

func newGoEngine() *goEngine {
	return &goEngine{pipeline: adapter.NewTree(engine.NewESBuild())}
}

func (e *goEngine) Name() string { return EngineGo }

func (e *goEngine) Transform(ctx context.Context, tree any) (any, error) {
	return e.pipeline.Call(ctx, tree).Unpack()
}

func (e *goEngine) Close(context.Context) error { return nil }

// wasmEngine runs the transform inside a compiled module.
type wasmEngine struct {
	rt   *runtime.Runtime
	inst *runtime.Instance
}

func newWASMEngine(ctx context.Context, path string, stderr io.Writer) (*wasmEngine, error) {
	wasm, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read module: %w", err)
	}

	rt, err := runtime.New(ctx, runtime.WithStderr(stderr))
	if err != nil {
		return nil, err
	}
	mod, err := rt.Load(ctx, wasm)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, err
	}
	inst, err := mod.Instantiate(ctx)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, err
	}
	return &wasmEngine{rt: rt, inst: inst}, nil
}

func (e *wasmEngine) Name() string { return EngineWASM }

func (e *wasmEngine) Transform(ctx context.Context, tree any) (any, error) {
	return e.inst.Transform(ctx, tree)
}

func (e *wasmEngine) Close(ctx context.Context) error {
	_ = e.inst.Close(ctx)
	return e.rt.Close(ctx)
}

// openEngine selects the engine named by the settings.
func openEngine(ctx context.Context, s *Settings, stderr io.Writer) (Engine, error) {
	if s.Engine == EngineWASM {
		return newWASMEngine(ctx, s.Module, stderr)
	}
	return newGoEngine(), nil
}
