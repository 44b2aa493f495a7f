package runtime

import (
	"context"
	"sync"

	"github.com/zengjixiang/parcel/abi"
	"github.com/zengjixiang/parcel/errors"
	"github.com/zengjixiang/parcel/schema"
	"github.com/zengjixiang/parcel/transcoder"
)

// Instance is one running transform module. A WebAssembly instance is
// single-threaded, so calls are serialized; use separate instances for
// parallel work.
type Instance struct {
	guest  Guest
	mu     sync.Mutex
	closed bool
}

// NewInstance wraps a guest. Module.Instantiate uses it for wazero
// modules; tests pass an in-process guest.
func NewInstance(g Guest) *Instance {
	return &Instance{guest: g}
}

// Transform calls the transform export with a neutral value tree and
// returns the encoded Output or Diagnostics tree. Only the Config keys of
// tree are sent to the guest; other keys are ignored. Adapter errors
// raised inside the guest come back as *errors.Error with the guest's
// phase.
func (i *Instance) Transform(ctx context.Context, tree any) (any, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.closed {
		return nil, errors.NotInitialized(errors.PhaseRuntime, "instance")
	}
	if s, ok := i.guest.(interface{ setContext(context.Context) }); ok {
		s.setContext(ctx)
		defer s.setContext(nil)
	}
	return abi.Invoke(ctx, i.guest, i.guest, i.guest.Call, transcoder.SelectConfig(tree))
}

// TransformConfig is Transform over the schema types.
func (i *Instance) TransformConfig(ctx context.Context, cfg schema.Config) (schema.Result, error) {
	tree, err := transcoder.EncodeConfig(cfg)
	if err != nil {
		return schema.Result{}, err
	}
	out, err := i.Transform(ctx, tree)
	if err != nil {
		return schema.Result{}, err
	}
	return transcoder.DecodeResult(out)
}

func (i *Instance) Close(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.closed {
		return nil
	}
	i.closed = true
	return i.guest.Close(ctx)
}
