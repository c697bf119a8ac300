// Package task implements the kernel's per-task state and round-robin
// scheduler (spec.md §4.8-4.9, components M-N). Grounded on
// original_source/os/src/task/{mod,task}.rs and switch.S (the latter not
// retrieved; __switch's register set — ra, sp, s0-s11 — is standard
// knowledge for this design and is re-derived in switch_riscv64.s).
//
// Tasks here are not goroutines: this kernel manages its own raw
// execution contexts below the Go scheduler, exactly as the original
// manages them below Rust's (neither language's userland concurrency
// primitive is what is being virtualized — RISC-V U-mode execution is).
// __switch swaps kernel call stacks directly, the same trick the original
// uses, translated into Plan9 assembly in the same no-body-Go-function
// style as internal/cpu and internal/trap's trampoline.
package task

// Context holds the callee-saved registers __switch preserves across a
// kernel-stack switch: the return address, the stack pointer, and s0-s11.
// Caller-saved registers need no preservation here because a switch only
// ever happens from inside a plain function call (SuspendCurrentAndRunNext
// / ExitCurrentAndRunNext / RunFirst), never from arbitrary code.
type Context struct {
	RA uint64
	SP uint64
	S  [12]uint64
}

// zeroContext is a scratch destination for the very first switch's "save
// old context into" argument (run_first_task has no real previous task to
// save into).
func zeroContext() Context { return Context{} }

// gotoTrapReturn builds the context a freshly created task's first switch
// lands in: RA points at trap.Return, so the CPU's implicit "return" out
// of __switch (a RET at the tail of the asm routine) transfers control
// straight into it, exactly as the original's TaskContext::goto_trap_return
// does for Return (called __restore in the identity-mapped ch3 kernel,
// trap_return once the trampoline is introduced).
func gotoTrapReturn(kernelSP uint64, trapReturnEntry uintptr) Context {
	return Context{RA: uint64(trapReturnEntry), SP: kernelSP}
}
