package trap

import (
	"github.com/gfgafn/rcore-go/internal/config"
	"github.com/gfgafn/rcore-go/internal/cpu"
	"github.com/gfgafn/rcore-go/internal/kernerr"
	"github.com/gfgafn/rcore-go/internal/kfmt"
	"github.com/gfgafn/rcore-go/internal/syscall"
	"github.com/gfgafn/rcore-go/internal/timer"
)

// Init points stvec at the kernel-mode trap entry. The user-mode entry
// (the high trampoline alias) is installed separately by Return, just
// before every drop to U-mode, mirroring the original's
// set_kernel_trap_entry/set_user_trap_entry split.
func Init() {
	setKernelTrapEntry()
}

func setKernelTrapEntry() {
	cpu.WriteStvec(uint64(trapFromKernelEntryAddr()))
}

func setUserTrapEntry() {
	cpu.WriteStvec(config.Trampoline)
}

// EnableTimerInterrupt unmasks the supervisor-timer interrupt.
func EnableTimerInterrupt() { cpu.SetSie() }

// Handler is trap_handler: entered (via the trampoline's tail jump) every
// time a trap arrives from U-mode. It never returns to its caller — every
// path ends by calling Return, which drops back into U-mode.
func Handler() {
	setKernelTrapEntry()

	cx := scheduler.CurrentTrapContext()
	stval := cpu.ReadStval()

	switch readCause() {
	case causeUserEnvCall:
		cx.Sepc += 4
		// sys_exit and sys_yield switch to a different task's saved
		// kernel context from inside Dispatch and only return here once
		// this same task is scheduled again, at which point cx still
		// correctly points at its (unmoved) Context page.
		cx.X[10] = uint64(syscall.Dispatch(cx.X[17], [3]uint64{cx.X[10], cx.X[11], cx.X[12]}))

	case causeStoreFault, causeStorePageFault, causeLoadFault, causeLoadPageFault:
		kfmt.Printf("[kernel] PageFault in application, bad addr = %x, bad instruction = %x, kernel killed it.\n", stval, cx.Sepc)
		scheduler.ExitCurrentAndRunNext()

	case causeIllegalInstruction:
		kfmt.Printf("[kernel] IllegalInstruction in application, kernel killed it.\n")
		scheduler.ExitCurrentAndRunNext()

	case causeSupervisorTimer:
		timer.SetNextTrigger()
		scheduler.SuspendCurrentAndRunNext()

	default:
		kernerr.Panic(kernerr.New("trap", "unsupported trap"))
	}

	Return()
}

// Return is trap_return: installs the user-mode trap entry, then jumps
// into restore's high-alias address with a0/a1 set to the trap-context VA
// and the target user satp, per spec.md's trampoline double-mapping note.
// Never returns.
func Return() {
	setUserTrapEntry()

	trapCxVA := uintptr(config.TrapContext)
	userSatp := uintptr(scheduler.CurrentUserToken())

	allTraps := AllTrapsAddr()
	restore := RestoreAddr()
	restoreVA := uintptr(config.Trampoline) + (restore - allTraps)

	jumpToRestore(restoreVA, trapCxVA, userSatp)
}

// reportKernelTrap is the Go-level body trapFromKernelEntry's asm stub
// calls into; see trampoline.go's trapFromKernelEntryAddr doc.
func reportKernelTrap() {
	kernerr.Panic(kernerr.New("trap", "a trap from kernel mode"))
}
