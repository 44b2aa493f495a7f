package abi

import (
	"context"

	"github.com/zengjixiang/parcel"
	"github.com/zengjixiang/parcel/errors"
)

// Func is a raw call of the guest's transform export.
type Func func(ctx context.Context, ptr, length uint32) (uint64, error)

// WriteBytes allocates guest memory for data and copies it in. Empty data
// still gets a one-byte block so the pointer is never zero.
func WriteBytes(mem parcel.Memory, alloc parcel.Allocator, data []byte) (uint32, error) {
	size := uint32(len(data))
	ptr, err := alloc.Alloc(max(size, 1))
	if err != nil {
		return 0, errors.Allocation(errors.PhaseRuntime, size, err)
	}
	if ptr == 0 {
		return 0, errors.Allocation(errors.PhaseRuntime, size, nil)
	}
	if err := mem.Write(ptr, data); err != nil {
		_ = alloc.Free(ptr)
		return 0, errors.New(errors.PhaseRuntime, errors.KindOutOfBounds).
			Cause(err).Detail("write %d bytes at %d", size, ptr).Build()
	}
	return ptr, nil
}

// ReadBytes copies length bytes out of guest memory.
func ReadBytes(mem parcel.Memory, ptr, length uint32) ([]byte, error) {
	if uint64(ptr)+uint64(length) > uint64(mem.Size()) {
		return nil, errors.OutOfBounds(errors.PhaseRuntime, ptr, length)
	}
	data, err := mem.Read(ptr, length)
	if err != nil {
		return nil, errors.New(errors.PhaseRuntime, errors.KindOutOfBounds).
			Cause(err).Detail("read %d bytes at %d", length, ptr).Build()
	}
	return data, nil
}

// Invoke runs one transform call through guest memory: the tree is
// marshaled into a fresh guest block, call runs, and the packed return is
// read back and released. The error arm comes back as *errors.Error with
// the phase and kind the guest reported.
func Invoke(ctx context.Context, mem parcel.Memory, alloc parcel.Allocator, call Func, tree any) (any, error) {
	in, err := Marshal(errors.PhaseDecode, tree)
	if err != nil {
		return nil, err
	}

	inPtr, err := WriteBytes(mem, alloc, in)
	if err != nil {
		return nil, err
	}
	packed, err := call(ctx, inPtr, uint32(len(in)))
	if freeErr := alloc.Free(inPtr); freeErr != nil && err == nil {
		err = freeErr
	}
	if err != nil {
		return nil, errors.Wrap(errors.PhaseRuntime, errors.KindInvalidData, err, "call transform")
	}

	outPtr, outLen, isErr := Unpack(packed)
	out, err := ReadBytes(mem, outPtr, outLen)
	if err != nil {
		_ = alloc.Free(outPtr)
		return nil, err
	}
	if err := alloc.Free(outPtr); err != nil {
		return nil, errors.Wrap(errors.PhaseRuntime, errors.KindAllocation, err, "release result")
	}

	if isErr {
		return nil, DecodeError(out)
	}
	return Unmarshal(errors.PhaseRuntime, out)
}
