package parcel

// Memory is a view of a WebAssembly linear memory. Offsets are guest
// addresses; Read returns a copy the caller owns.
type Memory interface {
	Read(offset, length uint32) ([]byte, error)
	Write(offset uint32, data []byte) error
	Size() uint32
}

// Allocator reserves and releases guest memory through the module's
// alloc and free exports.
type Allocator interface {
	Alloc(size uint32) (uint32, error)
	Free(ptr uint32) error
}
