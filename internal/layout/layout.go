// Package layout exposes the kernel image's section boundaries. The linker
// script that defines stext/etext/srodata/... and places the trampoline at
// a page-aligned symbol is an external collaborator (spec.md line 7,
// "the boot assembly... the link-time application packager"); this package
// only declares the Go-side accessors for the addresses that script
// produces, in the same no-body-function-backed-by-.s idiom
// internal/cpu and internal/sbi use for other asm-only primitives.
package layout

// TextStart, TextEnd bound the kernel's .text section.
func TextStart() uintptr
func TextEnd() uintptr

// RodataStart, RodataEnd bound the kernel's .rodata section.
func RodataStart() uintptr
func RodataEnd() uintptr

// DataStart, DataEnd bound the kernel's .data section.
func DataStart() uintptr
func DataEnd() uintptr

// BSSStart, BSSEnd bound the kernel's .bss section (BSSStart includes the
// boot stack, mirroring the original's sbss_with_stack).
func BSSStart() uintptr
func BSSEnd() uintptr

// KernelEnd is the first free physical address after the kernel image;
// everything from here to config.MemoryEnd is available to the frame
// allocator.
func KernelEnd() uintptr

// TrampolineText is the physical address of the page-aligned trampoline
// code (all_traps/restore), emitted by the linker as its own section per
// spec.md's "Trampoline double-mapping" note.
func TrampolineText() uintptr
