package task

import "testing"

// findNext and RecordSyscall are plain Go logic with no riscv64 asm
// dependency, unlike RunFirst/switchAway (which call switchTo) or
// ControlBlock.TaskInfo (which reads the cycle counter through
// internal/timer) — this file sticks to the former, the same restraint
// internal/timer's own test takes around portable-vs-asm-backed code.

func fakeTasks(statuses ...Status) *inner {
	tasks := make([]*ControlBlock, len(statuses))
	for i, s := range statuses {
		tasks[i] = &ControlBlock{status: s}
	}
	return &inner{tasks: tasks, current: 0}
}

func TestFindNextRoundRobinSkipsNonReady(t *testing.T) {
	in := fakeTasks(StatusRunning, StatusExited, StatusReady, StatusReady)
	in.current = 0

	idx, ok := in.findNext()
	if !ok || idx != 2 {
		t.Fatalf("findNext() = (%d, %v), want (2, true)", idx, ok)
	}
}

func TestFindNextWrapsAround(t *testing.T) {
	in := fakeTasks(StatusReady, StatusRunning, StatusExited)
	in.current = 1

	idx, ok := in.findNext()
	if !ok || idx != 0 {
		t.Fatalf("findNext() = (%d, %v), want (0, true)", idx, ok)
	}
}

func TestFindNextNoneReady(t *testing.T) {
	in := fakeTasks(StatusRunning, StatusExited, StatusExited)
	in.current = 0

	if _, ok := in.findNext(); ok {
		t.Fatalf("findNext() reported a Ready task when none remain")
	}
}

func TestRecordSyscallCountsPerID(t *testing.T) {
	tcb := &ControlBlock{status: StatusReady}
	tcb.RecordSyscall(SysWriteIDForTest)
	tcb.RecordSyscall(SysWriteIDForTest)
	tcb.RecordSyscall(SysWriteIDForTest + 1)

	if tcb.syscallTimes[SysWriteIDForTest] != 2 {
		t.Fatalf("syscallTimes[%d] = %d, want 2", SysWriteIDForTest, tcb.syscallTimes[SysWriteIDForTest])
	}
	if tcb.syscallTimes[SysWriteIDForTest+1] != 1 {
		t.Fatalf("syscallTimes[%d] = %d, want 1", SysWriteIDForTest+1, tcb.syscallTimes[SysWriteIDForTest+1])
	}
}

func TestRecordSyscallIgnoresOutOfRangeID(t *testing.T) {
	tcb := &ControlBlock{status: StatusReady}
	tcb.RecordSyscall(1 << 20) // far beyond config.MaxSyscallNum; must not panic or corrupt memory
}

// SysWriteIDForTest is the write syscall ID, defined here so this test
// does not reference internal/syscall.
const SysWriteIDForTest = 64
