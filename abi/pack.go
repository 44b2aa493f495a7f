package abi

import (
	"github.com/zengjixiang/parcel/errors"
)

// ErrorBit marks the error arm in the low word of a packed return.
const ErrorBit = 1 << 31

// MaxPayload is the largest payload length a packed return can carry.
const MaxPayload = ErrorBit - 1

// Pack combines a guest pointer and payload length into the single u64
// the transform export returns: ptr in the high word, length in the low
// 31 bits, ErrorBit set for the error arm. length must not exceed
// MaxPayload.
func Pack(ptr, length uint32, isErr bool) uint64 {
	packed := uint64(ptr)<<32 | uint64(length&MaxPayload)
	if isErr {
		packed |= ErrorBit
	}
	return packed
}

// Unpack splits a packed return.
func Unpack(packed uint64) (ptr, length uint32, isErr bool) {
	low := uint32(packed)
	return uint32(packed >> 32), low & MaxPayload, low&ErrorBit != 0
}

// CheckPayload reports an encode-phase overflow for payloads that do not
// fit a packed return.
func CheckPayload(n int) error {
	if n > MaxPayload {
		return errors.Overflow(errors.PhaseEncode, nil, n, "packed payload length")
	}
	return nil
}
