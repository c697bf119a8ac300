// Package cpu declares the RISC-V CSR and privileged-instruction primitives
// the kernel needs: reading the time CSR, switching satp, flushing the TLB,
// and gating the supervisor-timer interrupt. Grounded on the teacher's
// kernel/cpu/cpu_amd64.go, which declares every such primitive with no Go
// body and backs it with hand-written assembly — the same idiom used here
// for cpu_riscv64.s.
package cpu

// ReadTime returns the raw `time` CSR value.
func ReadTime() uint64

// WriteSatp installs token into the satp CSR and executes sfence.vma to
// invalidate stale TLB entries, per spec.md §4.4 Activate().
func WriteSatp(token uint64)

// ReadSatp returns the current satp CSR value.
func ReadSatp() uint64

// SfenceVMA invalidates the entire TLB. Called by AddressSpace.Activate in
// addition to the fence folded into WriteSatp; the trampoline issues its
// own sfence.vma instructions inline.
func SfenceVMA()

// EnableTimerInterrupt sets the supervisor-timer bit in sie.
func EnableTimerInterrupt()

// FenceI clears the instruction cache. trap_return does not call it: the
// fence.i before jumping back through the trampoline is issued inline by
// internal/trap's jumpToRestore.
func FenceI()

// ReadSstatus returns the current sstatus CSR value.
func ReadSstatus() uint64

// WriteStvec installs addr (with TrapMode::Direct, i.e. the low two mode
// bits left clear) into the stvec CSR.
func WriteStvec(addr uint64)

// SetSie sets the supervisor-timer-enable bit in sie; a thin rename of
// EnableTimerInterrupt kept distinct so internal/trap's init reads clearly
// alongside WriteStvec without implying any SBI involvement.
func SetSie() { EnableTimerInterrupt() }

// ReadScause returns the scause CSR: the top bit marks an interrupt rather
// than an exception, the rest is the cause code.
func ReadScause() uint64

// ReadStval returns the stval CSR: the faulting address for a page/access
// fault, or the offending instruction bits for an illegal-instruction trap.
func ReadStval() uint64

const (
	// SatpModeSV39 is the 4-bit mode field value selecting SV39 paging.
	SatpModeSV39 = 8
)

// MakeSatp encodes a root page table physical frame number into an SV39
// satp value: mode(4) | asid(16, unused, zero) | ppn(44).
func MakeSatp(rootPPN uint64) uint64 {
	return uint64(SatpModeSV39)<<60 | rootPPN
}
