// Package vmm implements SV39 page tables, map areas and address spaces
// (spec.md §4.2-4.5, components D-F). Grounded on
// original_source/os/src/mm/page_table.rs and memory_set.rs, expressed in
// the teacher's small-value-type style (kernel/mem/vmm/page.go).
package vmm

import "github.com/gfgafn/rcore-go/internal/addr"

// PTEFlags are the low 8 bits of an SV39 page table entry.
type PTEFlags uint16

const (
	PTEV PTEFlags = 1 << 0 // valid
	PTER PTEFlags = 1 << 1 // readable
	PTEW PTEFlags = 1 << 2 // writable
	PTEX PTEFlags = 1 << 3 // executable
	PTEU PTEFlags = 1 << 4 // accessible to user mode
	PTEG PTEFlags = 1 << 5 // global
	PTEA PTEFlags = 1 << 6 // accessed
	PTED PTEFlags = 1 << 7 // dirty
)

// PTE is one SV39 page table entry: bits [53:10] are a physical page
// number, bits [7:0] are flags. Its memory layout is a bare uint64 so it
// can alias the raw words a page-table page is built from
// (pmm.ArrayPTEs).
type PTE struct {
	Bits uint64
}

// NewPTE packs ppn and flags into a page table entry.
func NewPTE(ppn addr.PhysPageNum, flags PTEFlags) PTE {
	return PTE{Bits: uint64(ppn)<<10 | uint64(flags)}
}

// PPN extracts the physical page number this entry points at.
func (p PTE) PPN() addr.PhysPageNum {
	return addr.PhysPageNumFromU64(p.Bits >> 10)
}

// Flags extracts this entry's flag bits.
func (p PTE) Flags() PTEFlags { return PTEFlags(p.Bits & 0xff) }

// IsValid reports whether the V bit is set.
func (p PTE) IsValid() bool { return p.Flags()&PTEV != 0 }

// Readable reports whether the R bit is set.
func (p PTE) Readable() bool { return p.Flags()&PTER != 0 }

// Writable reports whether the W bit is set.
func (p PTE) Writable() bool { return p.Flags()&PTEW != 0 }

// Executable reports whether the X bit is set.
func (p PTE) Executable() bool { return p.Flags()&PTEX != 0 }
