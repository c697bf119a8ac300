package task

import (
	"github.com/gfgafn/rcore-go/internal/config"
	"github.com/gfgafn/rcore-go/internal/kfmt"
	"github.com/gfgafn/rcore-go/internal/sbi"
	"github.com/gfgafn/rcore-go/internal/trap"
	"github.com/gfgafn/rcore-go/internal/upcell"
)

// inner is the TaskManager's exclusively-guarded state: the task table and
// the index of whichever task is currently running. Grounded on
// original_source/os/src/task/manager.rs's TaskManagerInner, wrapped the
// same upcell.Cell way internal/pmm and internal/vmm guard their own
// singletons.
type inner struct {
	tasks   []*ControlBlock
	current int
}

// TaskManager is the kernel's one scheduler, implementing both
// trap.Scheduler and syscall.TaskService so trap dispatch and syscall
// dispatch can each reach it through their own narrow interface.
type TaskManager struct {
	state *upcell.Cell[*inner]
}

// NewTaskManager builds every task's ControlBlock up front from the
// loader's packed application table, matching original_source's
// TaskManager::new, which parses and maps every application at boot rather
// than lazily on first run (spec.md Non-goals: "process creation by user
// code" — the task table's membership is fixed for the kernel's lifetime).
func NewTaskManager(numApp int, appData func(i int) []byte) *TaskManager {
	tasks := make([]*ControlBlock, numApp)
	for i := 0; i < numApp; i++ {
		tasks[i] = NewControlBlock(appData(i), i)
	}
	return &TaskManager{state: upcell.New(&inner{tasks: tasks, current: -1})}
}

// RunFirst dispatches task 0, the kernel's one-time entry into user mode.
// Mirrors run_first_task's "switch into a context nothing will ever switch
// back out of" discipline: the discarded context is a throwaway, since
// there is no real "previous" kernel stack to resume here.
func (m *TaskManager) RunFirst() {
	g := m.state.ExclusiveAccess()
	in := g.Get()
	if len(in.tasks) == 0 {
		g.Release()
		kfmt.Printf("[kernel] No applications available!\n")
		sbi.Shutdown(false)
		return
	}
	in.current = 0
	in.tasks[0].status = StatusRunning
	in.tasks[0].RecordFirstRun()
	next := &in.tasks[0].cx
	g.Release()

	var discarded Context
	switchTo(&discarded, next)
}

// findNext returns the index of the next Ready task, searching round-robin
// starting just after current, or false if none remain Ready.
func (in *inner) findNext() (int, bool) {
	n := len(in.tasks)
	for step := 1; step <= n; step++ {
		idx := (in.current + step) % n
		if in.tasks[idx].status == StatusReady {
			return idx, true
		}
	}
	return 0, false
}

// switchAway marks the running task with newStatus, selects the next Ready
// task, and performs the raw context switch — or shuts the machine down if
// no Ready task remains, mirroring run_next_task's "All applications
// completed!" path.
func (m *TaskManager) switchAway(newStatus Status) {
	g := m.state.ExclusiveAccess()
	in := g.Get()

	cur := in.current
	in.tasks[cur].status = newStatus

	next, ok := in.findNext()
	if !ok {
		g.Release()
		kfmt.Printf("[kernel] All applications completed!\n")
		sbi.Shutdown(false)
		return
	}

	in.current = next
	in.tasks[next].status = StatusRunning
	in.tasks[next].RecordFirstRun()
	curCx := &in.tasks[cur].cx
	nextCx := &in.tasks[next].cx
	g.Release()

	switchTo(curCx, nextCx)
}

// CurrentTrapContext returns the running task's Context page, satisfying
// trap.Scheduler.
func (m *TaskManager) CurrentTrapContext() *trap.Context {
	g := m.state.ExclusiveAccess()
	in := g.Get()
	cx := in.tasks[in.current].TrapContext()
	g.Release()
	return cx
}

// CurrentUserToken returns the running task's satp value, satisfying both
// trap.Scheduler and syscall.TaskService.
func (m *TaskManager) CurrentUserToken() uint64 {
	g := m.state.ExclusiveAccess()
	defer g.Release()
	in := g.Get()
	return in.tasks[in.current].UserToken()
}

// SuspendCurrentAndRunNext marks the running task Ready and switches to the
// next one, satisfying trap.Scheduler (the timer-interrupt path).
func (m *TaskManager) SuspendCurrentAndRunNext() {
	m.switchAway(StatusReady)
}

// ExitCurrentAndRunNext marks the running task Exited and switches to the
// next one, satisfying trap.Scheduler (the fault path).
func (m *TaskManager) ExitCurrentAndRunNext() {
	m.markCurrentExited()
	m.switchAway(StatusExited)
}

// markCurrentExited releases the running task's address space before
// switchAway hands its kernel stack to whatever runs next.
func (m *TaskManager) markCurrentExited() {
	g := m.state.ExclusiveAccess()
	in := g.Get()
	in.tasks[in.current].MarkExited()
	g.Release()
}

// RecordSyscall increments the running task's per-ID call counter,
// satisfying syscall.TaskService.
func (m *TaskManager) RecordSyscall(id uint64) {
	g := m.state.ExclusiveAccess()
	in := g.Get()
	in.tasks[in.current].RecordSyscall(id)
	g.Release()
}

// Exit marks the running task Exited (code is logged only; spec.md has no
// parent process to report it to) and switches away, satisfying
// syscall.TaskService.
func (m *TaskManager) Exit(code int32) {
	kfmt.Printf("[kernel] Application exited with code %d\n", code)
	m.ExitCurrentAndRunNext()
}

// Yield marks the running task Ready and switches away, satisfying
// syscall.TaskService.
func (m *TaskManager) Yield() {
	m.SuspendCurrentAndRunNext()
}

// TaskInfo reports the running task's status, syscall counts, and runtime,
// satisfying syscall.TaskService.
func (m *TaskManager) TaskInfo() (status int32, syscallTimes [config.MaxSyscallNum]uint32, runMillis int64) {
	g := m.state.ExclusiveAccess()
	in := g.Get()
	status, syscallTimes, runMillis = in.tasks[in.current].TaskInfo()
	g.Release()
	return status, syscallTimes, runMillis
}
