// Package guest is the inside of the WebAssembly module.
//
// Handler turns an argument payload into a result payload and is plain Go,
// so it is tested on the host. Under GOOS=wasip1 the package also provides
// Heap and the Transform, Alloc and Free functions that cmd/transform-wasm
// exports.
//
// The WebAssembly embedding never aborts on a transform failure:
// Diagnostics travel on the success arm like an Output, exactly as in the
// native embedding.
package guest
