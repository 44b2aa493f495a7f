package runtime

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
)

// instantiateWASI provides the preview1 imports a GOOS=wasip1 module
// links against.
func instantiateWASI(ctx context.Context, r wazero.Runtime) error {
	if r.Module(wasi_snapshot_preview1.ModuleName) != nil {
		return nil
	}
	builder := r.NewHostModuleBuilder(wasi_snapshot_preview1.ModuleName)
	wasi_snapshot_preview1.NewFunctionExporter().ExportFunctions(builder)
	_, err := builder.Instantiate(ctx)
	return err
}
