// Package pmm is the physical frame allocator (spec.md §4.1, component C).
// Grounded on original_source/os/src/mm/frame_allocator.rs's
// StackFrameAllocator and shaped like the teacher's
// kernel/mem/pmm/allocator/bootmem.go (a single-purpose allocator behind a
// package-level singleton, guarded by a cell rather than exposed directly).
package pmm

import (
	"github.com/gfgafn/rcore-go/internal/addr"
	"github.com/gfgafn/rcore-go/internal/kernerr"
	"github.com/gfgafn/rcore-go/internal/upcell"
)

// stackAllocator is a stack-based physical frame allocator: frames below
// `current` and not yet recycled are considered issued; frames in
// `recycled` were issued once and given back.
type stackAllocator struct {
	current  uint64
	end      uint64
	recycled []uint64
}

func (a *stackAllocator) init(start, end addr.PhysPageNum) {
	a.current = uint64(start)
	a.end = uint64(end)
	a.recycled = nil
}

func (a *stackAllocator) alloc() (addr.PhysPageNum, bool) {
	if n := len(a.recycled); n > 0 {
		ppn := a.recycled[n-1]
		a.recycled = a.recycled[:n-1]
		return addr.PhysPageNum(ppn), true
	}
	if a.current == a.end {
		return 0, false
	}
	ppn := a.current
	a.current++
	return addr.PhysPageNum(ppn), true
}

func (a *stackAllocator) dealloc(ppn addr.PhysPageNum) {
	v := uint64(ppn)
	if v >= a.current {
		kernerr.Panic(kernerr.New("pmm", "frame was never issued"))
		return
	}
	for _, r := range a.recycled {
		if r == v {
			kernerr.Panic(kernerr.New("pmm", "double free of frame"))
			return
		}
	}
	a.recycled = append(a.recycled, v)
}

// allocatorCell is the single, process-wide frame allocator instance,
// guarded by a uniprocessor cell exactly as spec.md §4.1 requires ("scoped
// to a single uniprocessor cell").
var allocatorCell = upcell.New(stackAllocator{})

// Init sets up the allocator over [start, end). Must be called exactly
// once, before any call to Alloc, with no outstanding handles — spec.md
// §4.1's precondition.
func Init(start, end addr.PhysPageNum) {
	g := allocatorCell.ExclusiveAccess()
	defer g.Release()
	g.Get().init(start, end)
}

// Alloc reserves one physical frame and returns a FrameHandle owning it.
// The frame's contents are zeroed before the handle is returned. Returns
// false if no frame is available.
func Alloc() (FrameHandle, bool) {
	g := allocatorCell.ExclusiveAccess()
	ppn, ok := g.Get().alloc()
	g.Release()
	if !ok {
		return FrameHandle{}, false
	}

	h := FrameHandle{ppn: ppn, live: true}
	zero(ppn)
	return h, true
}

// release returns ppn to the recycled set. Called only from
// FrameHandle.Release, never directly.
func release(ppn addr.PhysPageNum) {
	g := allocatorCell.ExclusiveAccess()
	defer g.Release()
	g.Get().dealloc(ppn)
}

func zero(ppn addr.PhysPageNum) {
	b := BytesMut(ppn)
	for i := range b {
		b[i] = 0
	}
}
