package trap

// AllTrapsAddr and RestoreAddr return the current, identity-mapped
// addresses of the trampoline's two labels. trap_return uses their
// difference, not either address directly, to compute Restore's location
// at the high virtual alias — the only address either label may ever be
// reached through once paging is on (spec.md's trampoline double-mapping
// note).
func AllTrapsAddr() uintptr
func RestoreAddr() uintptr

// jumpToRestore hands control to restore at restoreVA with a0 = trapCxVA,
// a1 = userSatp, after a fence.i to invalidate any stale i-cache entries
// for a physical frame that may have changed owners since it last ran
// (the original's comment on trap_return's fence.i). Never returns: it
// tail-jumps into restore, which ends in sret.
func jumpToRestore(restoreVA, trapCxVA, userSatp uintptr)

// trapFromKernelEntryAddr returns the address stvec is pointed at while
// the kernel itself runs. A trap from S-mode here is not a recognized
// kernel operation (spec.md does not define one); reportKernelTrap halts
// the machine, matching the original's unimplemented trap_from_kernel.
func trapFromKernelEntryAddr() uintptr

// ReturnEntryAddr returns Return's machine address, so internal/task can
// point a freshly created task's first Context.RA at it: __switch's tail
// RET then transfers control straight into Return the first time a task
// is ever scheduled, exactly as original_source's
// TaskContext::goto_trap_return wires ra to trap_return.
func ReturnEntryAddr() uintptr

// HandlerEntryAddr returns Handler's machine address, stored in every
// task's Context.TrapHandler word (offset 36) so all_traps's tail jump
// reaches it without any global state.
func HandlerEntryAddr() uintptr
