// Package config holds compile-time constants describing the kernel's
// memory layout. It plays the role that kernel/mem/mem.go plays for the
// teacher and os/src/config.rs plays in the original rCore sources.
package config

const (
	// PageSizeBits is log2(PageSize).
	PageSizeBits = 12

	// PageSize is the SV39 base page size in bytes.
	PageSize = 1 << PageSizeBits

	// UserStackSize is the size, in bytes, of each task's user-mode stack.
	UserStackSize = 4096 * 2

	// KernelStackSize is the size, in bytes, of each task's kernel-mode stack.
	KernelStackSize = 4096 * 2

	// KernelHeapSize backs the fixed-size array registered with the
	// kernel's dynamic allocator (see internal/kheap).
	KernelHeapSize = 0x30_0000

	// MemoryEnd is the last physical address (exclusive) managed by the
	// frame allocator.
	MemoryEnd = 0x8080_0000

	// AppBaseAddress is the legacy identity-load address used only by the
	// superseded batch-subsystem loading path (spec.md §9, open questions).
	// The ELF-loading, per-task-address-space path is authoritative; this
	// constant is retained only so the two paths can be told apart in
	// historical comments.
	AppBaseAddress = 0x8040_0000

	// Trampoline is the highest virtual page in the 39-bit address space,
	// sign-extended. Mapped identically (R|X) in every address space.
	Trampoline = ^uint64(0) - PageSize + 1

	// TrapContext is the fixed virtual address, in every user address
	// space, of the task's trap-context page.
	TrapContext = Trampoline - PageSize

	// ClockFreq is the platform timer frequency in Hz (QEMU virt machine).
	ClockFreq = 10_000_000

	// TicksPerSec is the number of scheduler timer ticks requested per
	// second; set_next_trigger() programs ClockFreq/TicksPerSec cycles
	// ahead of "now".
	TicksPerSec = 100

	// MaxSyscallNum bounds the syscall_times bucket array used by
	// sys_task_info; every syscall ID dispatched by this kernel is below it.
	MaxSyscallNum = 500

	// MSecPerSec and MicroPerSec are the conversion factors used by the
	// timer package.
	MSecPerSec   = 1_000
	MicroPerSec  = 1_000_000
)

// MMIOWindow describes one memory-mapped I/O region that the kernel address
// space identity-maps R|W, in addition to physical RAM.
type MMIOWindow struct {
	Base uint64
	Size uint64
}

// MMIO lists the platform's memory-mapped device windows (QEMU virt
// machine: the VirtIO MMIO transport windows and the CLINT).
var MMIO = []MMIOWindow{
	{Base: 0x0200_0000, Size: 0x1_0000}, // CLINT
	{Base: 0x1000_1000, Size: 0x1000},   // VirtIO MMIO
}

// KernelStackPosition returns the (bottom, top) virtual addresses of the
// kernel stack belonging to task i, counting down from just below the
// trampoline with one PageSize guard page between consecutive stacks.
func KernelStackPosition(taskIdx int) (bottom, top uint64) {
	top = Trampoline - uint64(taskIdx)*(KernelStackSize+PageSize)
	bottom = top - KernelStackSize
	return bottom, top
}
