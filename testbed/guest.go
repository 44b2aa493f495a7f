package testbed

import (
	"context"

	"github.com/zengjixiang/parcel/abi"
	"github.com/zengjixiang/parcel/engine"
	"github.com/zengjixiang/parcel/guest"
)

// Guest serves the transform export over a Memory the way the compiled
// module does: it reads the argument block, runs the handler and stores
// the result in a new block the caller must free.
type Guest struct {
	*Memory
	handler *guest.Handler
	calls   int
}

// NewGuest creates a guest with a 16-page memory.
func NewGuest(transformer engine.Transformer) *Guest {
	return &Guest{
		Memory:  NewMemory(16),
		handler: guest.NewHandler(transformer),
	}
}

func (g *Guest) Call(ctx context.Context, ptr, length uint32) (uint64, error) {
	g.calls++
	in, err := g.Read(ptr, length)
	if err != nil {
		return 0, err
	}
	out, isErr := g.handler.Handle(ctx, in)

	outPtr, err := g.Alloc(uint32(len(out)))
	if err != nil {
		return 0, err
	}
	if err := g.Write(outPtr, out); err != nil {
		return 0, err
	}
	return abi.Pack(outPtr, uint32(len(out)), isErr), nil
}

// Calls returns how many times the export ran.
func (g *Guest) Calls() int {
	return g.calls
}

func (g *Guest) Close(context.Context) error {
	return nil
}
