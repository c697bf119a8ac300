package syscall

import "github.com/gfgafn/rcore-go/internal/timer"

// timeVal mirrors the two-field struct timeval gettimeofday writes into
// user memory: seconds and the microseconds remainder.
type timeVal struct {
	Sec  int64
	USec int64
}

// sysGetTimeOfDay implements gettimeofday(tv, tz), grounded on
// original_source/os/src/syscall/process.rs. tz is accepted but unused, as
// in the original (this kernel has no timezone concept).
func sysGetTimeOfDay(tv uintptr) int64 {
	us := timer.GetTimeUs()
	val := timeVal{Sec: us / 1_000_000, USec: us % 1_000_000}

	written := copyIntoUser(tasks.CurrentUserToken(), tv, timeValBytes(val))
	if written != 16 {
		return -1
	}
	return 0
}

func timeValBytes(v timeVal) []byte {
	var b [16]byte
	putU64(b[0:8], uint64(v.Sec))
	putU64(b[8:16], uint64(v.USec))
	return b[:]
}

func putU64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * uint(i)))
	}
}

// taskInfo mirrors the TaskInfo struct sys_task_info fills in: current
// status, a fixed-size per-syscall-ID call count table, and wall-clock
// milliseconds since the task's first dispatch.
type taskInfo struct {
	Status       int32
	SyscallTimes [maxSyscallNum]uint32
	Time         int64
}

// sysTaskInfo implements task_info(ti), the supplemented operation
// spec.md §4.10 lists as optional; this kernel fully wires it (see
// SPEC_FULL.md's supplemented-features section).
func sysTaskInfo(ti uintptr) int64 {
	status, times, runMillis := tasks.TaskInfo()
	info := taskInfo{Status: status, SyscallTimes: times, Time: runMillis}

	raw := taskInfoBytes(info)
	written := copyIntoUser(tasks.CurrentUserToken(), ti, raw)
	if written != len(raw) {
		return -1
	}
	return 0
}

func taskInfoBytes(info taskInfo) []byte {
	buf := make([]byte, 4+4*maxSyscallNum+8)
	putU32(buf[0:4], uint32(info.Status))
	for i, c := range info.SyscallTimes {
		putU32(buf[4+4*i:8+4*i], c)
	}
	putU64(buf[4+4*maxSyscallNum:], uint64(info.Time))
	return buf
}

func putU32(b []byte, v uint32) {
	for i := 0; i < 4; i++ {
		b[i] = byte(v >> (8 * uint(i)))
	}
}
