package pmm

import (
	"testing"

	"github.com/gfgafn/rcore-go/internal/addr"
)

// freshAllocator resets the package-level singleton so tests don't leak
// state into each other; exercised only from _test.go, never from kernel
// code proper. It also redirects frame byte access onto host-backed pages
// (see SetPhysViewForTest) since Alloc zeroes every frame it returns, and
// the real identity-mapped view only makes sense inside the kernel image
// itself, not in a hosted test binary.
func freshAllocator(t *testing.T, start, end addr.PhysPageNum) {
	t.Helper()
	pages := make(map[addr.PhysPageNum]*[addr.PageSize]byte)
	restore := SetPhysViewForTest(func(ppn addr.PhysPageNum) []byte {
		p, ok := pages[ppn]
		if !ok {
			p = new([addr.PageSize]byte)
			pages[ppn] = p
		}
		return p[:]
	})
	t.Cleanup(restore)
	Init(start, end)
}

func TestAllocIssuesDistinctFrames(t *testing.T) {
	freshAllocator(t, 10, 13)

	h1, ok := Alloc()
	if !ok {
		t.Fatalf("Alloc() failed on fresh range")
	}
	h2, ok := Alloc()
	if !ok {
		t.Fatalf("Alloc() failed on fresh range")
	}
	if h1.PPN() == h2.PPN() {
		t.Fatalf("Alloc() returned the same frame twice: %d", h1.PPN())
	}
}

func TestAllocExhaustion(t *testing.T) {
	freshAllocator(t, 0, 2)

	if _, ok := Alloc(); !ok {
		t.Fatalf("expected first Alloc() to succeed")
	}
	if _, ok := Alloc(); !ok {
		t.Fatalf("expected second Alloc() to succeed")
	}
	if _, ok := Alloc(); ok {
		t.Fatalf("expected third Alloc() to fail, range exhausted")
	}
}

func TestReleaseRecyclesFrame(t *testing.T) {
	freshAllocator(t, 0, 1)

	h, ok := Alloc()
	if !ok {
		t.Fatalf("Alloc() failed")
	}
	ppn := h.PPN()
	h.Release()

	h2, ok := Alloc()
	if !ok {
		t.Fatalf("expected Alloc() to succeed after release")
	}
	if h2.PPN() != ppn {
		t.Fatalf("expected recycled frame %d, got %d", ppn, h2.PPN())
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	freshAllocator(t, 0, 4)

	h, _ := Alloc()
	h.Release()
	h.Release() // must not double-free or panic
	if h.Valid() {
		t.Fatalf("expected handle to be invalid after Release")
	}
}
