package vmm

import (
	"unsafe"

	"github.com/gfgafn/rcore-go/internal/addr"
	"github.com/gfgafn/rcore-go/internal/cpu"
	"github.com/gfgafn/rcore-go/internal/kernerr"
	"github.com/gfgafn/rcore-go/internal/pmm"
)

// PageTable is a three-level SV39 page table. It owns the frames backing
// every non-leaf node it creates; the frames backing leaf-mapped data
// belong to the MapArea that called Map, not to the PageTable itself.
type PageTable struct {
	rootPPN addr.PhysPageNum
	frames  []pmm.FrameHandle
}

// New allocates a fresh, empty page table: just a zeroed root node.
func New() *PageTable {
	root, ok := pmm.Alloc()
	if !ok {
		kernerr.Panic(kernerr.New("vmm", "out of memory allocating page table root"))
	}
	return &PageTable{rootPPN: root.PPN(), frames: []pmm.FrameHandle{root}}
}

// FromToken builds a read-only view over the page table described by an
// satp value produced by another PageTable's Token. It owns no frames and
// must not be used to Map or Unmap — it exists only so internal/syscall
// can translate pointers that live in a different address space than the
// one currently active, mirroring original_source's
// PageTable::from_token.
func FromToken(token uint64) *PageTable {
	ppn := addr.PhysPageNumFromU64(token & ((1 << 44) - 1))
	return &PageTable{rootPPN: ppn}
}

func ptrToPTE(raw *uint64) *PTE {
	return (*PTE)(unsafe.Pointer(raw))
}

func (pt *PageTable) walkOrCreate(vpn addr.VirtPageNum) *PTE {
	idxs := vpn.Indexes()
	ppn := pt.rootPPN
	var result *PTE
	for i, idx := range idxs {
		ptes := pmm.ArrayPTEs(ppn)
		pte := ptrToPTE(&ptes[idx])
		if i == 2 {
			result = pte
			break
		}
		if !pte.IsValid() {
			h, ok := pmm.Alloc()
			if !ok {
				kernerr.Panic(kernerr.New("vmm", "out of memory growing page table"))
			}
			*pte = NewPTE(h.PPN(), PTEV)
			pt.frames = append(pt.frames, h)
		}
		ppn = pte.PPN()
	}
	return result
}

func (pt *PageTable) walk(vpn addr.VirtPageNum) *PTE {
	idxs := vpn.Indexes()
	ppn := pt.rootPPN
	var result *PTE
	for i, idx := range idxs {
		ptes := pmm.ArrayPTEs(ppn)
		pte := ptrToPTE(&ptes[idx])
		if i == 2 {
			result = pte
			break
		}
		if !pte.IsValid() {
			return nil
		}
		ppn = pte.PPN()
	}
	return result
}

// Map installs vpn -> ppn with the given flags. Panics if vpn is already
// mapped, matching the original's "vpn is mapped before mapping" assert.
func (pt *PageTable) Map(vpn addr.VirtPageNum, ppn addr.PhysPageNum, flags PTEFlags) {
	pte := pt.walkOrCreate(vpn)
	if pte.IsValid() {
		kernerr.Panic(kernerr.New("vmm", "vpn mapped before mapping"))
	}
	*pte = NewPTE(ppn, flags|PTEV)
}

// Unmap removes vpn's mapping. Panics if vpn was not mapped.
func (pt *PageTable) Unmap(vpn addr.VirtPageNum) {
	pte := pt.walk(vpn)
	if pte == nil || !pte.IsValid() {
		kernerr.Panic(kernerr.New("vmm", "vpn invalid before unmapping"))
	}
	*pte = PTE{}
}

// Translate returns the leaf PTE for vpn, if one is mapped.
func (pt *PageTable) Translate(vpn addr.VirtPageNum) (PTE, bool) {
	pte := pt.walk(vpn)
	if pte == nil || !pte.IsValid() {
		return PTE{}, false
	}
	return *pte, true
}

// Token returns the satp value that activates this page table.
func (pt *PageTable) Token() uint64 {
	return cpu.MakeSatp(pt.rootPPN.Int())
}
