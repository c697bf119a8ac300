// Package trap implements the trap context layout, the trampoline glue,
// and trap dispatch (spec.md §4.6-4.7, components G-H). Grounded on
// original_source/os/src/trap/mod.rs, with the 37-word trap context layout
// taken from spec.md §6 (the original's context.rs was not retrieved).
// Expressed in the teacher's idiom of Go functions with no body backed by
// hand-written assembly for anything that must cross into a different
// address space or privilege level (internal/cpu, internal/sbi).
package trap

import "github.com/gfgafn/rcore-go/internal/cpu"

// Context is the 37-word register image the trampoline saves on entry and
// restores on return, at the fixed offsets spec.md §6 specifies. x[0] is
// reserved (x0 is wired to zero on RISC-V and is never read or written).
type Context struct {
	X            [32]uint64 // x0..x31
	Sstatus      uint64     // offset 32
	Sepc         uint64     // offset 33
	KernelSatp   uint64     // offset 34
	KernelSP     uint64     // offset 35
	TrapHandler  uint64     // offset 36
}

// NewAppInitContext builds the initial trap context a freshly created task
// resumes into: sp = user stack top, sepc = entry point, sstatus carries
// SPP=User so the eventual sret drops to U-mode, and the three
// kernel-handoff words are pre-filled so all_traps never has to consult
// anything but this page.
func NewAppInitContext(entry, userSP, kernelSatp, kernelSP, trapHandler uint64) Context {
	var cx Context
	cx.Sstatus = sstatusUserMode()
	cx.Sepc = entry
	cx.X[2] = userSP // sp
	cx.KernelSatp = kernelSatp
	cx.KernelSP = kernelSP
	cx.TrapHandler = trapHandler
	return cx
}

// sstatusUserMode reads the current sstatus and clears SPP, so that the
// sret performed by restore drops into U-mode rather than returning to
// S-mode. Reading the live CSR (rather than hard-coding a literal) matches
// the original's `sstatus::read(); set_spp(User)` sequence, which
// preserves whatever other sstatus bits firmware/boot code already set.
func sstatusUserMode() uint64 {
	const sppMask = uint64(1) << 8
	return cpu.ReadSstatus() &^ sppMask
}
