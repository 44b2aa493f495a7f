//go:build wasip1

package guest

import (
	"context"

	"github.com/zengjixiang/parcel/abi"
	"github.com/zengjixiang/parcel/engine"
	"github.com/zengjixiang/parcel/errors"
)

var (
	heap    = NewHeap()
	handler = NewHandler(engine.NewESBuild())
)

// Transform backs the transform export. The input block stays owned by
// the host; the returned block must be released with Free.
func Transform(ptr, length uint32) uint64 {
	in := heap.Bytes(ptr, length)
	var (
		out   []byte
		isErr bool
	)
	if in == nil && length > 0 {
		out, isErr = abi.ErrorPayload(errors.OutOfBounds(errors.PhaseDecode, ptr, length)), true
	} else {
		out, isErr = handler.Handle(context.Background(), in)
	}
	return abi.Pack(heap.Store(out), uint32(len(out)), isErr)
}

// Alloc backs the alloc export.
func Alloc(size uint32) uint32 {
	return heap.Alloc(size)
}

// Free backs the free export.
func Free(ptr uint32) {
	heap.Free(ptr)
}
