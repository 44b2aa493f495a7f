// Package testbed provides in-process stand-ins for both embeddings: a
// linear memory with a bump allocator and a guest that serves the
// transform export from it, and a JS heap implementing napi.Env.
// Integration tests in this package run the real transform.wasm when it
// has been built.
package testbed

import (
	"fmt"
	"sync"

	"github.com/zengjixiang/parcel"
)

// PageSize is the WebAssembly page size.
const PageSize = 64 * 1024

// Memory is a fixed-size linear memory with a bump allocator. Freed
// blocks are not reused; Live reports blocks that were never freed.
type Memory struct {
	live map[uint32]uint32
	data []byte
	next uint32
	mu   sync.Mutex
}

// NewMemory creates a memory of the given number of pages.
func NewMemory(pages uint32) *Memory {
	return &Memory{
		data: make([]byte, pages*PageSize),
		live: make(map[uint32]uint32),
		next: 8,
	}
}

func (m *Memory) Read(offset, length uint32) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if uint64(offset)+uint64(length) > uint64(len(m.data)) {
		return nil, fmt.Errorf("read out of bounds: offset=%d, length=%d", offset, length)
	}
	out := make([]byte, length)
	copy(out, m.data[offset:])
	return out, nil
}

func (m *Memory) Write(offset uint32, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if uint64(offset)+uint64(len(data)) > uint64(len(m.data)) {
		return fmt.Errorf("write out of bounds: offset=%d, length=%d", offset, len(data))
	}
	copy(m.data[offset:], data)
	return nil
}

func (m *Memory) Size() uint32 {
	return uint32(len(m.data))
}

// Alloc returns an 8-byte aligned block. It never returns zero.
func (m *Memory) Alloc(size uint32) (uint32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ptr := m.next
	end := uint64(ptr) + uint64(max(size, 1))
	if end > uint64(len(m.data)) {
		return 0, fmt.Errorf("out of memory: need %d bytes at %d", size, ptr)
	}
	m.next = uint32((end + 7) &^ 7)
	m.live[ptr] = size
	return ptr, nil
}

func (m *Memory) Free(ptr uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.live[ptr]; !ok {
		return fmt.Errorf("free of unknown block %d", ptr)
	}
	delete(m.live, ptr)
	return nil
}

// Live returns the number of allocated blocks not yet freed.
func (m *Memory) Live() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.live)
}

var (
	_ parcel.Memory    = (*Memory)(nil)
	_ parcel.Allocator = (*Memory)(nil)
)
