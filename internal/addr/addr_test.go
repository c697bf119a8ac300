package addr

import "testing"

func TestPhysAddrFloorCeil(t *testing.T) {
	a := PhysAddr(0x1000 + 1)
	if got := a.Floor(); got != 1 {
		t.Fatalf("Floor() = %d, want 1", got)
	}
	if got := a.Ceil(); got != 2 {
		t.Fatalf("Ceil() = %d, want 2", got)
	}

	aligned := PhysAddr(0x2000)
	if !aligned.Aligned() {
		t.Fatalf("expected 0x2000 to be page-aligned")
	}
	if got := aligned.Ceil(); got != 2 {
		t.Fatalf("Ceil() of aligned address = %d, want 2", got)
	}
}

func TestVirtAddrIntSignExtends(t *testing.T) {
	// Trampoline is the top virtual page: ^uint64(0) - PageSize + 1, which
	// when masked to 39 bits is still interpreted as a high-half address
	// and must sign-extend back to all-ones in the top 25 bits.
	trampolineRaw := uint64(0xFFFFFFFFFFFFF000)
	va := VirtAddrFromU64(trampolineRaw)
	got := va.Int()
	want := uint64(0xFFFFFFFFFFFFF000)
	if got != want {
		t.Fatalf("Int() = %#x, want %#x", got, want)
	}
}

func TestVirtAddrIntNoSignExtendForLowHalf(t *testing.T) {
	va := VirtAddrFromU64(0x1000)
	if got := va.Int(); got != 0x1000 {
		t.Fatalf("Int() = %#x, want 0x1000", got)
	}
}

func TestVirtPageNumIndexes(t *testing.T) {
	// vpn2=1, vpn1=2, vpn0=3 -> vpn = (1<<18) | (2<<9) | 3
	vpn := VirtPageNum((1 << 18) | (2 << 9) | 3)
	idx := vpn.Indexes()
	want := [3]int{1, 2, 3}
	if idx != want {
		t.Fatalf("Indexes() = %v, want %v", idx, want)
	}
}

func TestFromPhysAddrRejectsUnaligned(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for unaligned address")
		}
	}()
	FromPhysAddr(PhysAddr(1))
}

func TestVPNRangeIter(t *testing.T) {
	r := NewVPNRange(VirtPageNum(4), VirtPageNum(7))
	got := r.Iter()
	want := []VirtPageNum{4, 5, 6}
	if len(got) != len(want) {
		t.Fatalf("Iter() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Iter()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}
