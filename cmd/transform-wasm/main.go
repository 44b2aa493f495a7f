//go:build wasip1

// Command transform-wasm is the WebAssembly embedding of the transform.
//
// Build it as a WASI reactor:
//
//	GOOS=wasip1 GOARCH=wasm go build -buildmode=c-shared -o transform.wasm ./cmd/transform-wasm
//
// Exports:
//
//	transform(ptr, len u32) u64   structpb.Value payload in, packed (ptr<<32 | len) out,
//	                              bit 31 of the low word set for an error record
//	alloc(size u32) u32           reserve a block for the host to write into
//	free(ptr u32)                 release a block returned by alloc or transform
package main

import "github.com/zengjixiang/parcel/guest"

//go:wasmexport transform
func transform(ptr, length uint32) uint64 {
	return guest.Transform(ptr, length)
}

//go:wasmexport alloc
func alloc(size uint32) uint32 {
	return guest.Alloc(size)
}

//go:wasmexport free
func free(ptr uint32) {
	guest.Free(ptr)
}

func main() {}
