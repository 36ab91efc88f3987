package wasm

import (
	"context"
	"errors"

	"github.com/tetratelabs/wazero/api"
)

// Memory provides safe memory operations against the guest module.
//
// The guest has its own linear memory, separate from Go's. All byte
// transfer goes through the guest's exported allocator so the guest's
// own bookkeeping stays consistent; raw reads are bounds-checked by
// wazero.
type Memory struct {
	mem     api.Memory
	alloc   api.Function
	dealloc api.Function
}

func newMemory(module api.Module, alloc, dealloc api.Function) *Memory {
	return &Memory{mem: module.Memory(), alloc: alloc, dealloc: dealloc}
}

// ReadBytes copies length bytes from guest memory starting at ptr.
// The returned slice is a copy and stays valid after the guest reuses
// the region.
func (m *Memory) ReadBytes(ptr uint32, length uint32) ([]byte, error) {
	buf, ok := m.mem.Read(ptr, length)
	if !ok {
		return nil, &MemoryAccessError{
			Operation: "read",
			Address:   ptr,
			Length:    length,
			Err:       errors.New("out of range"),
		}
	}
	out := make([]byte, length)
	copy(out, buf)
	return out, nil
}

// WriteBytes copies data into guest memory allocated via the guest's
// allocator and returns the guest pointer. Empty input is not allocated;
// the zero pointer with zero length is the empty-payload convention.
func (m *Memory) WriteBytes(ctx context.Context, data []byte) (uint32, error) {
	if len(data) == 0 {
		return 0, nil
	}

	results, err := m.alloc.Call(ctx, uint64(len(data)))
	if err != nil {
		return 0, &MemoryAccessError{
			Operation: "allocate",
			Length:    uint32(len(data)),
			Err:       err,
		}
	}
	ptr := uint32(results[0])

	if !m.mem.Write(ptr, data) {
		return 0, &MemoryAccessError{
			Operation: "write",
			Address:   ptr,
			Length:    uint32(len(data)),
			Err:       errors.New("out of range"),
		}
	}

	return ptr, nil
}

// Free returns a region to the guest allocator. A zero pointer or zero
// length is a no-op, matching the WriteBytes empty-payload convention.
func (m *Memory) Free(ctx context.Context, ptr uint32, length uint32) error {
	if ptr == 0 || length == 0 {
		return nil
	}
	if _, err := m.dealloc.Call(ctx, uint64(ptr), uint64(length)); err != nil {
		return &MemoryAccessError{
			Operation: "deallocate",
			Address:   ptr,
			Length:    length,
			Err:       err,
		}
	}
	return nil
}
