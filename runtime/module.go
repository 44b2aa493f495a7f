package runtime

import (
	"context"
	"io"
	"sort"

	"github.com/tetratelabs/wazero"

	"github.com/zengjixiang/parcel/errors"
)

// Module is a compiled transform module.
type Module struct {
	runtime  *Runtime
	compiled wazero.CompiledModule
}

// Exports returns the exported function names in sorted order.
func (m *Module) Exports() []string {
	defs := m.compiled.ExportedFunctions()
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Instantiate creates an independent instance with its own linear memory.
// The reactor's _initialize runs before Instantiate returns.
func (m *Module) Instantiate(ctx context.Context) (*Instance, error) {
	stderr := m.runtime.config.Stderr
	if stderr == nil {
		stderr = io.Discard
	}
	modCfg := wazero.NewModuleConfig().
		WithName("").
		WithStartFunctions("_initialize").
		WithStderr(stderr)

	mod, err := m.runtime.runtime.InstantiateModule(ctx, m.compiled, modCfg)
	if err != nil {
		return nil, errors.Instantiation(err)
	}

	g, err := newWazeroGuest(mod)
	if err != nil {
		_ = mod.Close(ctx)
		return nil, err
	}
	return NewInstance(g), nil
}

// Close releases the compiled code. Running instances are unaffected.
func (m *Module) Close(ctx context.Context) error {
	return m.compiled.Close(ctx)
}
