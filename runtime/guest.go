package runtime

import (
	"context"
	"fmt"
	"sync"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/zengjixiang/parcel"
	"github.com/zengjixiang/parcel/engine"
	"github.com/zengjixiang/parcel/errors"
)

// Guest is the calling surface of one transform module instance: its
// linear memory, its allocator exports and the raw transform export.
type Guest interface {
	parcel.Memory
	parcel.Allocator
	Call(ctx context.Context, ptr, length uint32) (uint64, error)
	Close(ctx context.Context) error
}

// wazeroGuest implements Guest over an instantiated wazero module.
// Allocator calls have no context parameter, so the context of the
// current Transform is stashed with setContext.
type wazeroGuest struct {
	mod         api.Module
	mem         api.Memory
	transformFn api.Function
	allocFn     api.Function
	freeFn      api.Function
	currentCtx  context.Context
	stackBuf    []uint64
	stackMutex  sync.Mutex
}

func newWazeroGuest(mod api.Module) (*wazeroGuest, error) {
	g := &wazeroGuest{
		mod:         mod,
		mem:         mod.Memory(),
		transformFn: mod.ExportedFunction("transform"),
		allocFn:     mod.ExportedFunction("alloc"),
		freeFn:      mod.ExportedFunction("free"),
		stackBuf:    make([]uint64, 2),
	}
	if g.mem == nil {
		return nil, errors.NotFound(errors.PhaseLoad, "export", "memory")
	}
	return g, nil
}

func (g *wazeroGuest) setContext(ctx context.Context) {
	g.stackMutex.Lock()
	defer g.stackMutex.Unlock()
	g.currentCtx = ctx
}

func (g *wazeroGuest) callContext() context.Context {
	if g.currentCtx == nil {
		return context.Background()
	}
	return g.currentCtx
}

func (g *wazeroGuest) Call(ctx context.Context, ptr, length uint32) (uint64, error) {
	g.stackMutex.Lock()
	defer g.stackMutex.Unlock()

	g.stackBuf[0] = uint64(ptr)
	g.stackBuf[1] = uint64(length)
	if err := g.transformFn.CallWithStack(ctx, g.stackBuf[:2]); err != nil {
		return 0, err
	}
	return g.stackBuf[0], nil
}

func (g *wazeroGuest) Alloc(size uint32) (uint32, error) {
	g.stackMutex.Lock()
	defer g.stackMutex.Unlock()

	g.stackBuf[0] = uint64(size)
	if err := g.allocFn.CallWithStack(g.callContext(), g.stackBuf[:1]); err != nil {
		return 0, err
	}
	return uint32(g.stackBuf[0]), nil
}

func (g *wazeroGuest) Free(ptr uint32) error {
	if ptr == 0 {
		return nil
	}
	g.stackMutex.Lock()
	defer g.stackMutex.Unlock()

	g.stackBuf[0] = uint64(ptr)
	if err := g.freeFn.CallWithStack(g.callContext(), g.stackBuf[:1]); err != nil {
		engine.Logger().Warn("free: guest call failed",
			zap.Uint32("ptr", ptr),
			zap.Error(err))
		return err
	}
	return nil
}

func (g *wazeroGuest) Read(offset, length uint32) ([]byte, error) {
	data, ok := g.mem.Read(offset, length)
	if !ok {
		return nil, fmt.Errorf("read out of bounds: offset=%d, length=%d", offset, length)
	}
	out := make([]byte, length)
	copy(out, data)
	return out, nil
}

func (g *wazeroGuest) Write(offset uint32, data []byte) error {
	if !g.mem.Write(offset, data) {
		return fmt.Errorf("write out of bounds: offset=%d, length=%d", offset, len(data))
	}
	return nil
}

func (g *wazeroGuest) Size() uint32 {
	return g.mem.Size()
}

func (g *wazeroGuest) Close(ctx context.Context) error {
	return g.mod.Close(ctx)
}

var _ Guest = (*wazeroGuest)(nil)
