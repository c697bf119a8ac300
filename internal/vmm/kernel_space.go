package vmm

import "github.com/gfgafn/rcore-go/internal/upcell"

// kernelSpaceCell guards the kernel's own address space, the second of
// the three permanent singletons spec.md §9 calls out (frame allocator,
// kernel address space, task table), exactly as original_source's
// lazy_static KERNEL_SPACE: Arc<UPSafeCell<MemorySet>> does.
var kernelSpaceCell *upcell.Cell[*AddressSpace]

// InitKernelSpace builds the kernel address space. Must run once, after
// internal/pmm.Init and before any task is created (task kernel stacks
// are inserted into this same address space).
func InitKernelSpace() {
	kernelSpaceCell = upcell.New(NewKernel())
}

// WithKernelSpace runs fn with exclusive access to the kernel address
// space, releasing the borrow before returning — callers must not retain
// the *AddressSpace past fn's return.
func WithKernelSpace(fn func(*AddressSpace)) {
	g := kernelSpaceCell.ExclusiveAccess()
	defer g.Release()
	fn(*g.Get())
}

// ActivateKernelSpace switches the MMU to the kernel's own page table.
func ActivateKernelSpace() {
	WithKernelSpace(func(as *AddressSpace) { as.Activate() })
}

// KernelSpaceToken returns the kernel address space's satp value, stashed
// into every task's Context.KernelSatp so the trampoline can switch back
// to it on trap entry.
func KernelSpaceToken() (token uint64) {
	WithKernelSpace(func(as *AddressSpace) { token = as.Token() })
	return token
}

// InsertKernelStack maps [bottom, top) R|W into the kernel address space,
// used once per task to place its kernel stack (spec.md §4.5 item 2's
// note that kernel-stack areas are inserted later, one per task).
func InsertKernelStack(bottom, top uint64) {
	WithKernelSpace(func(as *AddressSpace) { as.InsertTaskStack(bottom, top) })
}
