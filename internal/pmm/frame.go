package pmm

import (
	"unsafe"

	"github.com/gfgafn/rcore-go/internal/addr"
)

// FrameHandle owns one physical frame for as long as it is live. Go has no
// destructors, so unlike original_source/os/src/mm/frame_allocator.rs's
// FrameTracker (which frees on drop), callers must call Release explicitly
// once the frame is no longer needed — the same discipline upcell.Guard
// already asks of its callers in this kernel.
type FrameHandle struct {
	ppn  addr.PhysPageNum
	live bool
}

// PPN returns the physical page number this handle owns.
func (h FrameHandle) PPN() addr.PhysPageNum { return h.ppn }

// Valid reports whether the handle still owns a frame.
func (h FrameHandle) Valid() bool { return h.live }

// Release returns the frame to the allocator. Release is a no-op on a
// zero-value or already-released handle, mirroring defer-friendly patterns
// used throughout this kernel (upcell.Guard.Release).
func (h *FrameHandle) Release() {
	if !h.live {
		return
	}
	release(h.ppn)
	h.live = false
}

// Bytes returns the frame's 4096 bytes; it is the same slice BytesMut
// returns, so writes through it change the frame. Access goes through the
// kernel address space's identity mapping of physical memory — so
// physical pages are always directly addressable from kernel code, unlike
// gopher-os's amd64 recursive-mapping scheme for inactive page tables.
func (h FrameHandle) Bytes() []byte {
	return BytesMut(h.ppn)
}

// physView resolves a physical page number to its byte-addressable backing
// store. Production code leans on the kernel's own identity map of all
// physical memory; SetPhysViewForTest swaps this for a host-backed view,
// the same seam the teacher's kernel/mem/vmm/pdt_test.go uses when it
// redirects mapTemporaryFn to a plain Go array instead of driving the real
// MMU.
var physView = identityPhysView

func identityPhysView(ppn addr.PhysPageNum) []byte {
	base := unsafe.Pointer(uintptr(ppn.Addr().Int()))
	return unsafe.Slice((*byte)(base), addr.PageSize)
}

// BytesMut returns a mutable view of the page at ppn's physical address.
func BytesMut(ppn addr.PhysPageNum) []byte {
	return physView(ppn)
}

// ArrayPTEs views the frame as 512 page table entries, used by
// internal/vmm when walking or building multi-level page tables.
func ArrayPTEs(ppn addr.PhysPageNum) []uint64 {
	b := BytesMut(ppn)
	return unsafe.Slice((*uint64)(unsafe.Pointer(&b[0])), 512)
}

// SetPhysViewForTest installs fn as the package's physical-frame byte view
// and returns a function restoring the previous one. It exists only so
// tests — in this package and in internal/vmm, which allocates frames
// through pmm.Alloc and reads them back through pmm.BytesMut/ArrayPTEs —
// can redirect frame access onto ordinary host memory instead of the
// kernel's own identity-mapped physical RAM, which does not exist in a
// hosted test binary.
func SetPhysViewForTest(fn func(addr.PhysPageNum) []byte) func() {
	orig := physView
	physView = fn
	return func() { physView = orig }
}
