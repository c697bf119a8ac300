package upcell

import "testing"

func TestExclusiveAccessRoundTrip(t *testing.T) {
	c := New(42)
	g := c.ExclusiveAccess()
	if *g.Get() != 42 {
		t.Fatalf("Get() = %d, want 42", *g.Get())
	}
	*g.Get() = 7
	g.Release()

	g2 := c.ExclusiveAccess()
	if *g2.Get() != 7 {
		t.Fatalf("Get() after mutation = %d, want 7", *g2.Get())
	}
	g2.Release()
}

func TestExclusiveAccessMarksBorrowUntilRelease(t *testing.T) {
	// ExclusiveAccess re-entry without releasing panics, and that check is
	// driven by the borrowed flag. Since kernerr.Panic shuts the
	// (simulated) machine down rather than unwinding, this test does not
	// attempt a second access: it checks that the flag is set while a guard
	// is outstanding and cleared by Release.
	c := New(1)
	g := c.ExclusiveAccess()
	if !c.borrowed {
		t.Fatalf("expected cell to be marked borrowed")
	}
	g.Release()
	if c.borrowed {
		t.Fatalf("expected cell to be released")
	}
}
