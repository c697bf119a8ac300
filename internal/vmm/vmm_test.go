package vmm

import (
	"testing"

	"github.com/gfgafn/rcore-go/internal/addr"
	"github.com/gfgafn/rcore-go/internal/pmm"
)

// freshFrames resets the frame allocator and redirects its frame byte
// access onto host-backed pages, the same seam internal/pmm's own tests
// use (pmm.SetPhysViewForTest) — PageTable/MapArea drive real pmm.Alloc
// calls, which zero every frame through pmm.BytesMut, so this package's
// tests need the same host-memory substitute the teacher's
// kernel/mem/vmm/pdt_test.go gives mapTemporaryFn.
func freshFrames(t *testing.T, nframes int) {
	t.Helper()
	pages := make(map[addr.PhysPageNum]*[addr.PageSize]byte)
	restore := pmm.SetPhysViewForTest(func(ppn addr.PhysPageNum) []byte {
		p, ok := pages[ppn]
		if !ok {
			p = new([addr.PageSize]byte)
			pages[ppn] = p
		}
		return p[:]
	})
	t.Cleanup(restore)
	pmm.Init(addr.PhysPageNum(0), addr.PhysPageNum(nframes))
}

func TestPageTableMapTranslateUnmap(t *testing.T) {
	freshFrames(t, 64)
	pt := New()

	vpn := addr.VirtPageNum(5)
	ppn := addr.PhysPageNum(9)
	pt.Map(vpn, ppn, PTER|PTEW)

	pte, ok := pt.Translate(vpn)
	if !ok {
		t.Fatalf("expected vpn %d to translate", vpn)
	}
	if pte.PPN() != ppn {
		t.Fatalf("PPN() = %d, want %d", pte.PPN(), ppn)
	}
	if !pte.Readable() || !pte.Writable() || pte.Executable() {
		t.Fatalf("unexpected flags: R=%v W=%v X=%v", pte.Readable(), pte.Writable(), pte.Executable())
	}

	pt.Unmap(vpn)
	if _, ok := pt.Translate(vpn); ok {
		t.Fatalf("expected vpn %d to be unmapped", vpn)
	}
}

func TestPageTableRemapRequiresUnmapFirst(t *testing.T) {
	// Map (unlike a hosted allocator's panic()) halts the machine via
	// kernerr.Panic rather than unwinding, so this only exercises the
	// guard's precondition rather than invoking its halt path — the same
	// restraint internal/upcell's tests take around ExclusiveAccess.
	freshFrames(t, 64)
	pt := New()
	pt.Map(addr.VirtPageNum(1), addr.PhysPageNum(2), PTER)

	pte, ok := pt.Translate(addr.VirtPageNum(1))
	if !ok || !pte.IsValid() {
		t.Fatalf("expected vpn 1 to already be validly mapped")
	}

	pt.Unmap(addr.VirtPageNum(1))
	pt.Map(addr.VirtPageNum(1), addr.PhysPageNum(3), PTER)
	pte, ok = pt.Translate(addr.VirtPageNum(1))
	if !ok || pte.PPN() != 3 {
		t.Fatalf("expected remap after unmap to succeed with new PPN 3, got %d ok=%v", pte.PPN(), ok)
	}
}

func TestMapAreaFramedAllocatesDistinctFrames(t *testing.T) {
	freshFrames(t, 64)
	pt := New()

	area := NewMapArea(addr.VirtAddr(0), addr.VirtAddr(3*addr.PageSize), MapFramed, PermR|PermW)
	area.Map(pt)

	seen := map[addr.PhysPageNum]bool{}
	for _, vpn := range area.VPNRange().Iter() {
		pte, ok := pt.Translate(vpn)
		if !ok {
			t.Fatalf("vpn %d not mapped", vpn)
		}
		if seen[pte.PPN()] {
			t.Fatalf("frame %d reused across pages", pte.PPN())
		}
		seen[pte.PPN()] = true
	}
}

func TestMapAreaIdenticalMapsSamePageNumber(t *testing.T) {
	freshFrames(t, 64)
	pt := New()

	area := NewMapArea(addr.VirtAddr(4*addr.PageSize), addr.VirtAddr(6*addr.PageSize), MapIdentical, PermR)
	area.Map(pt)

	pte, ok := pt.Translate(addr.VirtPageNum(4))
	if !ok {
		t.Fatalf("expected vpn 4 to be mapped")
	}
	if pte.PPN() != addr.PhysPageNum(4) {
		t.Fatalf("PPN() = %d, want 4 (identical mapping)", pte.PPN())
	}
}

func TestMapAreaCopyData(t *testing.T) {
	freshFrames(t, 64)
	pt := New()

	area := NewMapArea(addr.VirtAddr(0), addr.VirtAddr(addr.PageSize), MapFramed, PermR|PermW)
	area.Map(pt)

	data := []byte("hello kernel")
	area.CopyData(pt, data)

	pte, _ := pt.Translate(addr.VirtPageNum(0))
	got := pmm.BytesMut(pte.PPN())[:len(data)]
	if string(got) != string(data) {
		t.Fatalf("CopyData() wrote %q, want %q", got, data)
	}
}

func TestAddressSpaceInsertFramedArea(t *testing.T) {
	freshFrames(t, 64)
	as := NewBare()
	as.InsertFramedArea(addr.VirtAddr(0), addr.VirtAddr(2*addr.PageSize), PermR|PermW)

	if _, ok := as.Translate(addr.VirtPageNum(0)); !ok {
		t.Fatalf("expected page 0 to be mapped after InsertFramedArea")
	}
	if _, ok := as.Translate(addr.VirtPageNum(1)); !ok {
		t.Fatalf("expected page 1 to be mapped after InsertFramedArea")
	}
}
