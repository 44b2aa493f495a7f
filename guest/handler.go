package guest

import (
	"context"

	"github.com/zengjixiang/parcel/abi"
	"github.com/zengjixiang/parcel/adapter"
	"github.com/zengjixiang/parcel/engine"
)

// Handler serves the transform export of the WebAssembly module. It works
// on payload bytes only, so it runs the same on the host as in the guest.
type Handler struct {
	pipeline *adapter.Pipeline[[]byte]
}

// NewHandler builds a handler around transformer.
func NewHandler(transformer engine.Transformer, opts ...adapter.Option) *Handler {
	return &Handler{pipeline: adapter.New[[]byte](abi.Codec{}, transformer, opts...)}
}

// Handle runs one call. Output and Diagnostics come back on the success
// arm; decode and encode failures come back as an error record with
// isErr set. It never panics on bad input.
func (h *Handler) Handle(ctx context.Context, in []byte) (out []byte, isErr bool) {
	outcome := h.pipeline.Call(ctx, in)
	if outcome.Status == adapter.StatusAdapterError {
		return abi.ErrorPayload(outcome.Err), true
	}
	return outcome.Value, false
}
