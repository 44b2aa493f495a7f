package adapter

import (
	"github.com/zengjixiang/parcel/engine"
	"github.com/zengjixiang/parcel/schema"
	"github.com/zengjixiang/parcel/transcoder"
)

// TreeCodec is the Codec for in-process Go callers: host values are
// neutral value trees (map[string]any and friends).
type TreeCodec struct{}

func (TreeCodec) DecodeConfig(host any) (schema.Config, error) {
	return transcoder.DecodeConfig(host)
}

func (TreeCodec) EncodeResult(r schema.Result) (any, error) {
	tree, err := transcoder.EncodeResult(r)
	if err != nil {
		return nil, err
	}
	return tree, nil
}

var _ Codec[any] = TreeCodec{}

// NewTree returns a pipeline over neutral value trees.
func NewTree(transformer engine.Transformer, opts ...Option) *Pipeline[any] {
	return New[any](TreeCodec{}, transformer, opts...)
}
