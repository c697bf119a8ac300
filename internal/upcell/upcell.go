// Package upcell provides the "uniprocessor cell" interior-mutability
// wrapper (spec.md §4.12, component L): a single-hart stand-in for a mutex,
// enforcing a runtime borrow check instead of a real lock. Grounded on
// rCore's UPSafeCell and on the teacher's habit of gating every kernel
// singleton behind a type it controls access through (the frame allocator
// singleton in kernel/mem/pmm, hal.ActiveTerminal).
//
// Every global mutable singleton in this kernel (the frame allocator, the
// kernel address space, the task table) is wrapped in a Cell. The discipline
// spec.md §5 requires — release the borrow before any operation that may
// switch tasks — is enforced here only at the panic level: Cell cannot see
// into the future to know a switch is about to happen, so callers must
// still structure their code so ExclusiveAccess's returned Guard is dropped (by
// calling Guard.Release, typically via defer) before calling into
// internal/task's switch path.
package upcell

import "github.com/gfgafn/rcore-go/internal/kernerr"

// Cell wraps a value of type T with single-hart interior mutability.
type Cell[T any] struct {
	value    T
	borrowed bool
}

// New constructs a Cell holding value. Safety rests entirely on this
// kernel's single-hart, non-reentrant execution model (spec.md §5):
// constructing a Cell asserts that at most one hart will ever touch it,
// exactly as the unsafe block around UPSafeCell::new does in the original.
func New[T any](value T) *Cell[T] {
	return &Cell[T]{value: value}
}

// Guard is the RAII-style handle returned by ExclusiveAccess. Its Release
// method must be called (directly or via defer) before control may reach
// any switch point, or the next ExclusiveAccess call panics.
type Guard[T any] struct {
	cell *Cell[T]
}

// Get returns a pointer to the guarded value for the lifetime of the guard.
func (g *Guard[T]) Get() *T {
	return &g.cell.value
}

// Release ends the exclusive borrow, allowing the next ExclusiveAccess call
// to succeed.
func (g *Guard[T]) Release() {
	g.cell.borrowed = false
}

// ExclusiveAccess panics on re-entry — i.e. if a borrow from a previous,
// unreleased ExclusiveAccess call is still outstanding. This is the runtime
// borrow check called out by spec.md §4.12.
func (c *Cell[T]) ExclusiveAccess() *Guard[T] {
	if c.borrowed {
		kernerr.Panic(kernerr.New("upcell", "already borrowed"))
	}
	c.borrowed = true
	return &Guard[T]{cell: c}
}
