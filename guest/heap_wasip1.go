//go:build wasip1

package guest

import (
	"sync"
	"unsafe"
)

// Heap hands out guest memory blocks to the host. Blocks stay reachable
// from the map until Free, so the garbage collector never moves or
// reclaims memory the host still addresses.
type Heap struct {
	blocks map[uint32][]byte
	mu     sync.Mutex
}

func NewHeap() *Heap {
	return &Heap{blocks: make(map[uint32][]byte)}
}

// Alloc reserves size bytes and returns their address.
func (h *Heap) Alloc(size uint32) uint32 {
	buf := make([]byte, max(size, 1))
	ptr := uint32(uintptr(unsafe.Pointer(&buf[0])))

	h.mu.Lock()
	h.blocks[ptr] = buf
	h.mu.Unlock()
	return ptr
}

// Store copies data into a new block.
func (h *Heap) Store(data []byte) uint32 {
	ptr := h.Alloc(uint32(len(data)))
	h.mu.Lock()
	copy(h.blocks[ptr], data)
	h.mu.Unlock()
	return ptr
}

// Bytes returns the first length bytes of the block at ptr, or nil when
// ptr was not handed out by Alloc or length exceeds the block.
func (h *Heap) Bytes(ptr, length uint32) []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	buf, ok := h.blocks[ptr]
	if !ok || int(length) > len(buf) {
		return nil
	}
	return buf[:length]
}

// Free releases a block. Unknown pointers are ignored.
func (h *Heap) Free(ptr uint32) {
	h.mu.Lock()
	delete(h.blocks, ptr)
	h.mu.Unlock()
}
