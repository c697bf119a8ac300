package addr

// VPNRange is a half-open [Start, End) interval of virtual page numbers,
// equivalent to rCore's SimpleInterval/VPNInterval
// (original_source/os/src/mm/address.rs).
type VPNRange struct {
	start, end VirtPageNum
}

// NewVPNRange builds a VPNRange; panics if start is ordered after end, the
// way the original's SimpleInterval::new asserts start <= end.
func NewVPNRange(start, end VirtPageNum) VPNRange {
	if uint64(start) > uint64(end) {
		panic("addr: range start after end")
	}
	return VPNRange{start: start, end: end}
}

// Start returns the range's first page.
func (r VPNRange) Start() VirtPageNum { return r.start }

// End returns the range's end page (exclusive).
func (r VPNRange) End() VirtPageNum { return r.end }

// Len returns the number of pages covered by the range.
func (r VPNRange) Len() uint64 { return uint64(r.end) - uint64(r.start) }

// Iter returns every VirtPageNum in [Start, End) in ascending order.
func (r VPNRange) Iter() []VirtPageNum {
	out := make([]VirtPageNum, 0, r.Len())
	for v := uint64(r.start); v < uint64(r.end); v++ {
		out = append(out, VirtPageNum(v))
	}
	return out
}
