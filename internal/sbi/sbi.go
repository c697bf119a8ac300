// Package sbi wraps the three SBI (Supervisor Binary Interface) calls this
// kernel needs: console output, timer programming, and shutdown. The SBI
// implementation itself — the M-mode firmware below us — is an external
// collaborator (spec.md §1, §6): this package only specifies the ecall
// convention it is called through and never interprets firmware internals.
//
// Grounded on original_source/os/src/sbi.rs. Each call is declared with no
// Go body, exactly as the teacher declares its architecture primitives in
// kernel/cpu/cpu_amd64.go and kernel/mem/vmm/tlb.go — the body lives in
// sbi_riscv64.s.
package sbi

const (
	callSetTimer      = 0
	callConsolePutchar = 1
	callShutdown      = 8
)

// call issues a single ecall into M-mode with the given SBI extension id and
// up to three argument registers (a0-a2), returning the value SBI left in a0.
func call(which, arg0, arg1, arg2 uint64) uint64

// ConsolePutchar writes a single byte to the SBI console (QEMU's UART, in
// practice).
func ConsolePutchar(c byte) {
	call(callConsolePutchar, uint64(c), 0, 0)
}

// SetTimer programs the next supervisor-timer interrupt to fire when the
// `time` CSR reaches the given absolute value.
func SetTimer(stimeValue uint64) {
	call(callSetTimer, stimeValue, 0, 0)
}

// Shutdown powers the machine off. success selects the SBI system-reset
// reason reported to the firmware; it never returns.
func Shutdown(success bool) {
	reason := uint64(1)
	if success {
		reason = 0
	}
	call(callShutdown, reason, 0, 0)
	for {
	}
}
