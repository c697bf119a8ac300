// Package task implements the task control block and the round-robin
// scheduler (spec.md §4.8-4.9, components I-J). Grounded on
// original_source/os/src/task/task.rs and os/src/task/manager.rs, expressed
// in the teacher's style of small structs with explicit constructors
// (kernel/sched's process table) rather than the original's Arc<UPSafeCell<>>
// wrapping — internal/upcell already supplies that exclusion discipline at
// the manager level, so individual blocks need no interior mutability of
// their own.
package task

import (
	"unsafe"

	"github.com/gfgafn/rcore-go/internal/addr"
	"github.com/gfgafn/rcore-go/internal/config"
	"github.com/gfgafn/rcore-go/internal/kernerr"
	"github.com/gfgafn/rcore-go/internal/loader"
	"github.com/gfgafn/rcore-go/internal/pmm"
	"github.com/gfgafn/rcore-go/internal/timer"
	"github.com/gfgafn/rcore-go/internal/trap"
	"github.com/gfgafn/rcore-go/internal/vmm"
)

// Status is a task's scheduling state (spec.md §4.9). Tasks are built
// directly into StatusReady; there is no UnInit state, since
// NewControlBlock fully constructs an address space and trap context
// before ever handing the block to the manager.
type Status int

const (
	StatusReady Status = iota
	StatusRunning
	StatusExited
)

// lifecycle records the three timestamps original_source's TaskControlBlock
// keeps for sys_task_info: when the block was constructed, when it first
// ran, and when it exited. firstRunMs is 0 until RecordFirstRun is called.
type lifecycle struct {
	initMs     int64
	firstRunMs int64
	exitMs     int64
}

// ControlBlock is one task's complete kernel-visible state: its own address
// space, a back-reference to the trap context page living inside that
// address space, the raw kernel-stack switch context, and the bookkeeping
// sys_task_info needs.
type ControlBlock struct {
	status       Status
	cx           Context
	addressSpace *vmm.AddressSpace
	trapCxPPN    addr.PhysPageNum
	baseSize     uint64
	life         lifecycle
	syscallTimes [config.MaxSyscallNum]uint32
}

// NewControlBlock parses appData as ELF, builds its address space, and
// wires up the kernel stack and trap context so the block is immediately
// schedulable. appID selects this task's slot in the kernel stack layout
// (config.KernelStackPosition), mirroring TaskControlBlock::new's
// kernel_stack_position(app_id) call.
func NewControlBlock(appData []byte, appID int) *ControlBlock {
	img := loader.ParseImage(appData)
	as, userSP, entry := vmm.NewFromELF(img)

	trapCxVA := addr.VirtAddrFromU64(config.TrapContext)
	pte, ok := as.Translate(addr.FromVirtAddr(trapCxVA))
	if !ok {
		kernerr.Panic(kernerr.New("task", "trap context page not mapped after NewFromELF"))
	}

	kernelBottom, kernelTop := config.KernelStackPosition(appID)
	vmm.InsertKernelStack(kernelBottom, kernelTop)

	tcb := &ControlBlock{
		status:       StatusReady,
		addressSpace: as,
		trapCxPPN:    pte.PPN(),
		baseSize:     userSP,
		life:         lifecycle{initMs: timer.GetTimeMs()},
	}
	tcb.cx = gotoTrapReturn(kernelTop, trap.ReturnEntryAddr())

	*tcb.TrapContext() = trap.NewAppInitContext(
		entry, userSP, vmm.KernelSpaceToken(), kernelTop, uint64(trap.HandlerEntryAddr()))

	return tcb
}

// TrapContext reinterprets this task's trap-context physical page as a
// *trap.Context, relying on the same permanent physical-memory identity
// mapping internal/pmm's FrameHandle.Bytes documents.
func (tcb *ControlBlock) TrapContext() *trap.Context {
	b := pmm.BytesMut(tcb.trapCxPPN)
	return (*trap.Context)(unsafe.Pointer(&b[0]))
}

// UserToken returns this task's address space satp value, used by syscalls
// that must translate a pointer out of the caller's address space.
func (tcb *ControlBlock) UserToken() uint64 { return tcb.addressSpace.Token() }

// RecordSyscall bumps this task's per-syscall-ID counter for sys_task_info.
func (tcb *ControlBlock) RecordSyscall(id uint64) {
	if id < config.MaxSyscallNum {
		tcb.syscallTimes[id]++
	}
}

// RecordFirstRun stamps firstRunMs the first time this task is dispatched;
// a no-op on every subsequent call.
func (tcb *ControlBlock) RecordFirstRun() {
	if tcb.life.firstRunMs == 0 {
		tcb.life.firstRunMs = timer.GetTimeMs()
	}
}

// MarkExited stamps exitMs and releases the task's address space areas.
func (tcb *ControlBlock) MarkExited() {
	tcb.status = StatusExited
	tcb.life.exitMs = timer.GetTimeMs()
	tcb.addressSpace.RecycleAreas()
}

// TaskInfo reports this task's status, per-syscall-ID counts, and wall-clock
// runtime in milliseconds since first dispatch (sys_task_info, spec.md
// §5.3's TaskInfo operation).
func (tcb *ControlBlock) TaskInfo() (status int32, syscallTimes [config.MaxSyscallNum]uint32, runMillis int64) {
	var runtimeEnd int64
	if tcb.status == StatusExited {
		runtimeEnd = tcb.life.exitMs
	} else {
		runtimeEnd = timer.GetTimeMs()
	}
	start := tcb.life.firstRunMs
	if start == 0 {
		start = runtimeEnd
	}
	return int32(tcb.status), tcb.syscallTimes, runtimeEnd - start
}
