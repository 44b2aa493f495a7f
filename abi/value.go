package abi

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/zengjixiang/parcel/errors"
	"github.com/zengjixiang/parcel/transcoder"
)

var marshalOptions = proto.MarshalOptions{Deterministic: true}

// Marshal encodes a neutral value tree as protobuf structpb.Value bytes.
// Mapping keys are emitted in sorted order, so equal trees always yield
// equal bytes.
func Marshal(phase errors.Phase, tree any) ([]byte, error) {
	norm, err := transcoder.Normalize(phase, tree)
	if err != nil {
		return nil, err
	}
	v, err := structpb.NewValue(norm)
	if err != nil {
		return nil, errors.Wrap(phase, errors.KindUnsupported, err, "build tagged value")
	}
	b, err := marshalOptions.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(phase, errors.KindInvalidData, err, "marshal tagged value")
	}
	return b, nil
}

// Unmarshal decodes structpb.Value bytes into a neutral value tree.
// Numbers come back as float64.
func Unmarshal(phase errors.Phase, data []byte) (any, error) {
	var v structpb.Value
	if err := proto.Unmarshal(data, &v); err != nil {
		return nil, errors.Wrap(phase, errors.KindInvalidData, err, "unmarshal tagged value")
	}
	return v.AsInterface(), nil
}
