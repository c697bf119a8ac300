package vmm

import (
	"github.com/gfgafn/rcore-go/internal/addr"
	"github.com/gfgafn/rcore-go/internal/config"
	"github.com/gfgafn/rcore-go/internal/cpu"
	"github.com/gfgafn/rcore-go/internal/kfmt"
	"github.com/gfgafn/rcore-go/internal/layout"
)

// AddressSpace is a page table plus the logical segments mapped through
// it (spec.md §4.5, component F). The trampoline is mapped directly
// through the page table and is deliberately not tracked as a MapArea,
// mirroring original_source's "trampoline is not collected by areas"
// comment: it is never torn down while any task using it might still
// trap through it.
type AddressSpace struct {
	pageTable *PageTable
	areas     []*MapArea
}

// NewBare returns an address space with nothing mapped but a fresh root
// page table.
func NewBare() *AddressSpace {
	return &AddressSpace{pageTable: New()}
}

func (as *AddressSpace) push(area *MapArea, data []byte) {
	area.Map(as.pageTable)
	if data != nil {
		area.CopyData(as.pageTable, data)
	}
	as.areas = append(as.areas, area)
}

// InsertFramedArea adds a new framed segment over [startVA, endVA),
// assuming (per spec.md) that it does not overlap any existing area.
func (as *AddressSpace) InsertFramedArea(startVA, endVA addr.VirtAddr, perm MapPermission) {
	as.push(NewMapArea(startVA, endVA, MapFramed, perm), nil)
}

// mapTrampoline installs the one physical trampoline page at its high
// virtual alias, R|X, in every address space (spec.md's trampoline
// double-mapping requirement).
func (as *AddressSpace) mapTrampoline() {
	trampolineVA := addr.VirtAddrFromU64(config.Trampoline)
	trampolinePA := addr.PhysAddr(uint64(layout.TrampolineText()))
	as.pageTable.Map(addr.FromVirtAddr(trampolineVA), addr.FromPhysAddr(trampolinePA), PTEX|PTER)
}

// NewKernel builds the kernel's own address space: the trampoline, the
// five kernel sections identity-mapped with tightened permissions, free
// physical memory, and every MMIO window (spec.md §4.5 item 2).
func NewKernel() *AddressSpace {
	as := NewBare()
	as.mapTrampoline()

	text, etext := uint64(layout.TextStart()), uint64(layout.TextEnd())
	rodata, erodata := uint64(layout.RodataStart()), uint64(layout.RodataEnd())
	data, edata := uint64(layout.DataStart()), uint64(layout.DataEnd())
	bss, ebss := uint64(layout.BSSStart()), uint64(layout.BSSEnd())
	kernelEnd := uint64(layout.KernelEnd())

	kfmt.Printf(".text [%x, %x)\n", text, etext)
	kfmt.Printf(".rodata [%x, %x)\n", rodata, erodata)
	kfmt.Printf(".data [%x, %x)\n", data, edata)
	kfmt.Printf(".bss [%x, %x)\n", bss, ebss)

	kfmt.Printf("mapping .text section\n")
	as.push(NewMapArea(addr.VirtAddr(text), addr.VirtAddr(etext), MapIdentical, PermR|PermX), nil)
	kfmt.Printf("mapping .rodata section\n")
	as.push(NewMapArea(addr.VirtAddr(rodata), addr.VirtAddr(erodata), MapIdentical, PermR), nil)
	kfmt.Printf("mapping .data section\n")
	as.push(NewMapArea(addr.VirtAddr(data), addr.VirtAddr(edata), MapIdentical, PermR|PermW), nil)
	kfmt.Printf("mapping .bss section\n")
	as.push(NewMapArea(addr.VirtAddr(bss), addr.VirtAddr(ebss), MapIdentical, PermR|PermW), nil)
	kfmt.Printf("mapping physical memory\n")
	as.push(NewMapArea(addr.VirtAddr(kernelEnd), addr.VirtAddr(config.MemoryEnd), MapIdentical, PermR|PermW), nil)

	kfmt.Printf("mapping memory-mapped registers\n")
	for _, w := range config.MMIO {
		as.push(NewMapArea(addr.VirtAddr(w.Base), addr.VirtAddr(w.Base+w.Size), MapIdentical, PermR|PermW), nil)
	}
	return as
}

// ElfImage is the subset of an ELF file this package needs: its PT_LOAD
// program headers and the file bytes they index into. spec.md treats the
// ELF parser itself as an external black box; internal/loader supplies
// this view over whatever parser it wraps.
type ElfImage interface {
	Segments() []ElfSegment
	EntryPoint() uint64
}

// ElfSegment is one PT_LOAD program header.
type ElfSegment struct {
	VirtAddr uint64
	MemSize  uint64
	Data     []byte
	Readable bool
	Writable bool
	Execable bool
}

// NewFromELF builds a task's address space from its ELF image: the
// trampoline, each loadable segment (U-accessible, framed), a guarded user
// stack just past the highest segment, and the TrapContext page — and
// returns the user stack's initial top and the entry point (spec.md §4.5
// item 3).
func NewFromELF(img ElfImage) (as *AddressSpace, userStackTop uint64, entryPoint uint64) {
	as = NewBare()
	as.mapTrampoline()

	var maxEndVPN addr.VirtPageNum
	for _, seg := range img.Segments() {
		startVA := addr.VirtAddr(seg.VirtAddr)
		endVA := addr.VirtAddr(seg.VirtAddr + seg.MemSize)
		perm := PermU
		if seg.Readable {
			perm |= PermR
		}
		if seg.Writable {
			perm |= PermW
		}
		if seg.Execable {
			perm |= PermX
		}
		area := NewMapArea(startVA, endVA, MapFramed, perm)
		if area.VPNRange().End() > maxEndVPN {
			maxEndVPN = area.VPNRange().End()
		}
		as.push(area, seg.Data)
	}

	maxEndVA := addr.FromVirtPageNum(maxEndVPN).Int()
	userStackBottom := maxEndVA + config.PageSize // guard page
	userStackTop = userStackBottom + config.UserStackSize
	as.push(NewMapArea(addr.VirtAddr(userStackBottom), addr.VirtAddr(userStackTop), MapFramed, PermR|PermW|PermU), nil)

	as.push(NewMapArea(addr.VirtAddr(config.TrapContext), addr.VirtAddr(config.Trampoline), MapFramed, PermR|PermW), nil)

	return as, userStackTop, img.EntryPoint()
}

// Activate writes this address space's token into satp and flushes the
// TLB, switching the MMU over to it.
func (as *AddressSpace) Activate() {
	cpu.WriteSatp(as.pageTable.Token())
	cpu.SfenceVMA()
}

// Token returns the satp value identifying this address space.
func (as *AddressSpace) Token() uint64 { return as.pageTable.Token() }

// Translate resolves vpn to its leaf PTE in this address space, if mapped.
func (as *AddressSpace) Translate(vpn addr.VirtPageNum) (PTE, bool) {
	return as.pageTable.Translate(vpn)
}

// RecycleAreas releases every tracked area's frames and drops them,
// called when a task exits (spec.md §4.9's Exited teardown).
func (as *AddressSpace) RecycleAreas() {
	for _, a := range as.areas {
		a.Unmap(as.pageTable)
	}
	as.areas = nil
}

// InsertTaskStack adds [bottom, top) as a framed R|W area through
// InsertFramedArea, so the stack is tracked in as.areas like any other
// area. Used by internal/task to place a kernel stack at
// config.KernelStackPosition (mirrors the original's
// KERNEL_SPACE.exclusive_access().insert_framed_area calls from
// TaskManager::new).
func (as *AddressSpace) InsertTaskStack(bottom, top uint64) {
	as.InsertFramedArea(addr.VirtAddr(bottom), addr.VirtAddr(top), PermR|PermW)
}
