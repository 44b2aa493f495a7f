package runtime

import (
	"context"
	"io"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/zengjixiang/parcel/engine"
	"github.com/zengjixiang/parcel/errors"
)

// Export names and signatures a transform module must provide.
var requiredExports = map[string]struct {
	params  []api.ValueType
	results []api.ValueType
}{
	"transform": {[]api.ValueType{api.ValueTypeI32, api.ValueTypeI32}, []api.ValueType{api.ValueTypeI64}},
	"alloc":     {[]api.ValueType{api.ValueTypeI32}, []api.ValueType{api.ValueTypeI32}},
	"free":      {[]api.ValueType{api.ValueTypeI32}, nil},
}

// Config holds configuration for runtime creation.
type Config struct {
	// Stderr receives the guest's standard error (Go runtime panics end
	// up here). Defaults to discarding.
	Stderr io.Writer

	// MemoryLimitPages sets the maximum memory per instance in pages
	// (64KB each). 0 means the wazero default.
	MemoryLimitPages uint32
}

// Option configures a Runtime.
type Option func(*Config)

func WithMemoryLimitPages(pages uint32) Option {
	return func(c *Config) { c.MemoryLimitPages = pages }
}

func WithStderr(w io.Writer) Option {
	return func(c *Config) { c.Stderr = w }
}

// Runtime hosts transform modules built for GOOS=wasip1.
type Runtime struct {
	runtime wazero.Runtime
	config  Config
}

func New(ctx context.Context, opts ...Option) (*Runtime, error) {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}

	runtimeCfg := wazero.NewRuntimeConfig().WithCloseOnContextDone(true)
	if cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}
	rt := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)

	if err := instantiateWASI(ctx, rt); err != nil {
		_ = rt.Close(ctx)
		return nil, errors.Load("instantiate WASI", err)
	}

	return &Runtime{runtime: rt, config: cfg}, nil
}

// Close releases all runtime resources, including every module and
// instance created from it.
func (r *Runtime) Close(ctx context.Context) error {
	return r.runtime.Close(ctx)
}

// Load compiles a transform module and checks its exports.
func (r *Runtime) Load(ctx context.Context, wasm []byte) (*Module, error) {
	if len(wasm) < 8 {
		return nil, errors.InvalidInput(errors.PhaseLoad, "not a WebAssembly binary")
	}

	compiled, err := r.runtime.CompileModule(ctx, wasm)
	if err != nil {
		return nil, errors.Load("compile module", err)
	}

	exported := compiled.ExportedFunctions()
	for name, sig := range requiredExports {
		def, ok := exported[name]
		if !ok {
			_ = compiled.Close(ctx)
			return nil, errors.NotFound(errors.PhaseLoad, "export", name)
		}
		if !sameTypes(def.ParamTypes(), sig.params) || !sameTypes(def.ResultTypes(), sig.results) {
			_ = compiled.Close(ctx)
			return nil, errors.New(errors.PhaseLoad, errors.KindTypeMismatch).
				Detail("export %s has signature %v -> %v", name, def.ParamTypes(), def.ResultTypes()).Build()
		}
	}

	engine.Logger().Debug("transform module loaded",
		zap.Int("size", len(wasm)),
		zap.Int("exports", len(exported)))

	return &Module{runtime: r, compiled: compiled}, nil
}

func sameTypes(a, b []api.ValueType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
