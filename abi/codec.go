package abi

import (
	"strings"

	"github.com/zengjixiang/parcel/adapter"
	"github.com/zengjixiang/parcel/errors"
	"github.com/zengjixiang/parcel/schema"
	"github.com/zengjixiang/parcel/transcoder"
)

// Codec is the adapter codec of the WebAssembly embedding: host values are
// structpb.Value payload bytes.
type Codec struct{}

func (Codec) DecodeConfig(payload []byte) (schema.Config, error) {
	tree, err := Unmarshal(errors.PhaseDecode, payload)
	if err != nil {
		return schema.Config{}, err
	}
	return transcoder.DecodeConfig(tree)
}

func (Codec) EncodeResult(r schema.Result) ([]byte, error) {
	tree, err := transcoder.EncodeResult(r)
	if err != nil {
		return nil, err
	}
	b, err := Marshal(errors.PhaseEncode, tree)
	if err != nil {
		return nil, err
	}
	if err := CheckPayload(len(b)); err != nil {
		return nil, err
	}
	return b, nil
}

var _ adapter.Codec[[]byte] = Codec{}

// ErrorPayload encodes an adapter error as the error-arm payload.
func ErrorPayload(e *errors.Error) []byte {
	b, err := Marshal(errors.PhaseEncode, e.Record())
	if err == nil {
		return b
	}
	// Only invalid UTF-8 in a message can get here.
	b, _ = Marshal(errors.PhaseEncode, map[string]any{
		"phase":   string(e.Phase),
		"kind":    string(e.Kind),
		"message": strings.ToValidUTF8(e.Error(), "�"),
	})
	return b
}

// DecodeError rebuilds an adapter error from an error-arm payload.
func DecodeError(payload []byte) *errors.Error {
	tree, err := Unmarshal(errors.PhaseRuntime, payload)
	if err != nil {
		return errors.As(errors.PhaseRuntime, err)
	}
	e, ok := errors.FromRecord(tree)
	if !ok {
		return errors.InvalidData(errors.PhaseRuntime, nil, "error payload is not an error record")
	}
	return e
}
