// Package addr defines the SV39 physical/virtual address and page-number
// types (spec.md §3, component A). Grounded on
// _examples/original_source/os/src/mm/address.rs, expressed in the
// teacher's style of small value types with an Address()/conversion method
// set (kernel/mem/pmm/frame.go, kernel/mem/vmm/page.go).
package addr

const (
	paWidthSV39  = 56
	vaWidthSV39  = 39
	ppnWidthSV39 = paWidthSV39 - PageSizeBits
	vpnWidthSV39 = vaWidthSV39 - PageSizeBits

	// PageSizeBits is log2(page size); the same value as
	// config.PageSizeBits, which this package does not import.
	PageSizeBits = 12
	// PageSize is the SV39 base page size in bytes.
	PageSize = 1 << PageSizeBits

	// ptesPerPage is the number of 8-byte PTEs in one page-table page:
	// each SV39 level is indexed by 9 bits, so 1<<9 entries per level.
	ptesPerPage = 1 << 9
)

// PhysAddr is a 56-bit-wide physical byte address.
type PhysAddr uint64

// VirtAddr is a 39-bit-wide virtual byte address.
type VirtAddr uint64

// PhysPageNum is a physical page number (PhysAddr >> PageSizeBits).
type PhysPageNum uint64

// VirtPageNum is a virtual page number (VirtAddr >> PageSizeBits).
type VirtPageNum uint64

// PhysAddrFromU64 truncates v to the legal SV39 physical address width.
func PhysAddrFromU64(v uint64) PhysAddr { return PhysAddr(v & ((1 << paWidthSV39) - 1)) }

// VirtAddrFromU64 truncates v to the legal SV39 virtual address width.
func VirtAddrFromU64(v uint64) VirtAddr { return VirtAddr(v & ((1 << vaWidthSV39) - 1)) }

// PhysPageNumFromU64 truncates v to the legal SV39 physical page width.
func PhysPageNumFromU64(v uint64) PhysPageNum { return PhysPageNum(v & ((1 << ppnWidthSV39) - 1)) }

// VirtPageNumFromU64 truncates v to the legal SV39 virtual page width.
func VirtPageNumFromU64(v uint64) VirtPageNum { return VirtPageNum(v & ((1 << vpnWidthSV39) - 1)) }

// Floor rounds a down to the page that contains it.
func (a PhysAddr) Floor() PhysPageNum { return PhysPageNum(uint64(a) / PageSize) }

// Ceil rounds a up to the page following it (or containing it, if aligned).
func (a PhysAddr) Ceil() PhysPageNum { return PhysPageNum((uint64(a) - 1 + PageSize) / PageSize) }

// PageOffset returns the low PageSizeBits bits of a.
func (a PhysAddr) PageOffset() uint64 { return uint64(a) & (PageSize - 1) }

// Aligned reports whether a falls exactly on a page boundary.
func (a PhysAddr) Aligned() bool { return a.PageOffset() == 0 }

// Floor rounds a down to the page that contains it.
func (a VirtAddr) Floor() VirtPageNum { return VirtPageNum(uint64(a) / PageSize) }

// Ceil rounds a up to the page following it (or containing it, if aligned).
func (a VirtAddr) Ceil() VirtPageNum { return VirtPageNum((uint64(a) - 1 + PageSize) / PageSize) }

// PageOffset returns the low PageSizeBits bits of a.
func (a VirtAddr) PageOffset() uint64 { return uint64(a) & (PageSize - 1) }

// Aligned reports whether a falls exactly on a page boundary.
func (a VirtAddr) Aligned() bool { return a.PageOffset() == 0 }

// Addr converts a physical page number to the physical address of its
// first byte.
func (p PhysPageNum) Addr() PhysAddr { return PhysAddr(uint64(p) << PageSizeBits) }

// Addr converts a virtual page number to the virtual address of its first
// byte.
func (v VirtPageNum) Addr() VirtAddr { return VirtAddr(uint64(v) << PageSizeBits) }

// Indexes splits a virtual page number into its three SV39 walk indices,
// returned high-to-low as [vpn2, vpn1, vpn0].
func (v VirtPageNum) Indexes() [3]int {
	vpn := uint64(v)
	var idx [3]int
	for i := 2; i >= 0; i-- {
		idx[i] = int(vpn & (ptesPerPage - 1))
		vpn >>= 9
	}
	return idx
}

// Int returns a as a plain uint64 (no sign extension — physical addresses
// never need it).
func (a PhysAddr) Int() uint64     { return uint64(a) }
func (p PhysPageNum) Int() uint64  { return uint64(p) }
func (v VirtPageNum) Int() uint64  { return uint64(v) }

// Int returns v sign-extended from bit 38, so high-half kernel addresses
// (e.g. TRAMPOLINE, which is conceptually negative in a 39-bit signed view)
// render and compare correctly as a native machine word.
func (v VirtAddr) Int() uint64 {
	const signBit = uint64(1) << (vaWidthSV39 - 1)
	if uint64(v) >= signBit {
		return uint64(v) | ^uint64((1<<vaWidthSV39)-1)
	}
	return uint64(v)
}

// FromPhysPageNum converts a physical page number to the physical address
// of its first byte. Equivalent to PhysPageNum.Addr but reads better at
// call sites that already hold a PhysAddr-typed variable name.
func FromPhysPageNum(p PhysPageNum) PhysAddr { return p.Addr() }

// FromVirtPageNum converts a virtual page number to the virtual address of
// its first byte.
func FromVirtPageNum(v VirtPageNum) VirtAddr { return v.Addr() }

// FromPhysAddr converts a page-aligned physical address to its page
// number; panics if a is not page-aligned, mirroring the original's
// assert_eq! on page_offset().
func FromPhysAddr(a PhysAddr) PhysPageNum {
	if !a.Aligned() {
		panic("addr: PhysAddr not page-aligned")
	}
	return a.Floor()
}

// FromVirtAddr converts a page-aligned virtual address to its page number;
// panics if a is not page-aligned.
func FromVirtAddr(a VirtAddr) VirtPageNum {
	if !a.Aligned() {
		panic("addr: VirtAddr not page-aligned")
	}
	return a.Floor()
}
