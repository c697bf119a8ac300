package vmm

import (
	"github.com/gfgafn/rcore-go/internal/addr"
	"github.com/gfgafn/rcore-go/internal/config"
	"github.com/gfgafn/rcore-go/internal/kernerr"
	"github.com/gfgafn/rcore-go/internal/pmm"
)

// MapType selects how a MapArea's virtual pages acquire physical backing.
type MapType int

const (
	// MapIdentical maps each virtual page to the physical page of the
	// same number — used for the kernel's own sections, which already
	// run at an address equal to their physical address.
	MapIdentical MapType = iota
	// MapFramed allocates a fresh physical frame per virtual page —
	// used for anything the kernel hands to a task: its stacks, its
	// loaded segments, its trap context.
	MapFramed
)

// MapPermission mirrors PTEFlags' R/W/X/U bits, kept as a distinct type so
// callers describing a logical segment's permissions never accidentally
// pass in V/G/A/D.
type MapPermission uint8

const (
	PermR MapPermission = 1 << 1
	PermW MapPermission = 1 << 2
	PermX MapPermission = 1 << 3
	PermU MapPermission = 1 << 4
)

// MapArea is one logical, contiguous segment of an address space: a range
// of virtual pages sharing a map type and permission set.
type MapArea struct {
	vpnRange   addr.VPNRange
	dataFrames map[addr.VirtPageNum]pmm.FrameHandle
	mapType    MapType
	perm       MapPermission
}

// NewMapArea describes the segment [startVA, endVA), rounding outward to
// page boundaries exactly as original_source's MapArea::new does.
func NewMapArea(startVA, endVA addr.VirtAddr, mapType MapType, perm MapPermission) *MapArea {
	return &MapArea{
		vpnRange:   addr.NewVPNRange(startVA.Floor(), endVA.Ceil()),
		dataFrames: make(map[addr.VirtPageNum]pmm.FrameHandle),
		mapType:    mapType,
		perm:       perm,
	}
}

// VPNRange exposes the area's page range, e.g. so callers can find its
// last page (used to lay out the user stack just past an ELF's segments).
func (m *MapArea) VPNRange() addr.VPNRange { return m.vpnRange }

func (m *MapArea) mapOne(pt *PageTable, vpn addr.VirtPageNum) {
	var ppn addr.PhysPageNum
	switch m.mapType {
	case MapIdentical:
		ppn = addr.PhysPageNumFromU64(uint64(vpn))
	case MapFramed:
		h, ok := pmm.Alloc()
		if !ok {
			kernerr.Panic(kernerr.New("vmm", "out of memory mapping area"))
		}
		ppn = h.PPN()
		m.dataFrames[vpn] = h
	}
	pt.Map(vpn, ppn, PTEFlags(m.perm))
}

func (m *MapArea) unmapOne(pt *PageTable, vpn addr.VirtPageNum) {
	if m.mapType == MapFramed {
		if h, ok := m.dataFrames[vpn]; ok {
			h.Release()
			delete(m.dataFrames, vpn)
		}
	}
	pt.Unmap(vpn)
}

// Map installs every page of the area into pt.
func (m *MapArea) Map(pt *PageTable) {
	for _, vpn := range m.vpnRange.Iter() {
		m.mapOne(pt, vpn)
	}
}

// Unmap removes every page of the area from pt, releasing any frames it
// owns.
func (m *MapArea) Unmap(pt *PageTable) {
	for _, vpn := range m.vpnRange.Iter() {
		m.unmapOne(pt, vpn)
	}
}

// CopyData fills a framed area's backing pages with data, start-aligned.
// data may be shorter than the area; the remaining bytes of the last page
// stay zero, since pmm.Alloc always zeroes new frames.
func (m *MapArea) CopyData(pt *PageTable, data []byte) {
	if m.mapType != MapFramed {
		kernerr.Panic(kernerr.New("vmm", "CopyData on a non-framed area"))
	}
	start := 0
	cur := m.vpnRange.Start()
	for {
		end := start + config.PageSize
		if end > len(data) {
			end = len(data)
		}
		src := data[start:end]
		pte, ok := pt.Translate(cur)
		if !ok {
			kernerr.Panic(kernerr.New("vmm", "CopyData on an unmapped page"))
		}
		dst := pmm.BytesMut(pte.PPN())[:len(src)]
		copy(dst, src)

		start += config.PageSize
		if start >= len(data) {
			break
		}
		cur++
	}
}
