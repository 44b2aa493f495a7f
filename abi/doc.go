// Package abi defines the calling convention of the WebAssembly embedding.
//
// # Payloads
//
// Arguments and results are protobuf google.protobuf.Value messages
// (structpb), marshaled deterministically. The message is a tagged value
// tree: null, bool, number (double), string, list and struct, which is
// exactly the neutral tree the transcoder works on.
//
// # Exports
//
//	transform(ptr, len u32) u64
//	alloc(size u32) u32
//	free(ptr u32)
//
// The host allocates a block with alloc, writes the argument payload,
// calls transform and frees its argument. The return value packs the
// result block:
//
//	 63            32 31 30                 0
//	┌────────────────┬──┬────────────────────┐
//	│      ptr       │E │       length       │
//	└────────────────┴──┴────────────────────┘
//
// E clear: the payload is an encoded Output or Diagnostics.
// E set: the payload is an error record (phase, kind, path, detail, ...).
// The host frees the result block after reading it.
package abi
