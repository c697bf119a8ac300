package syscall

import "github.com/gfgafn/rcore-go/internal/kfmt"

const fdStdout = 1

// sysWrite implements write(fd, buf, len), grounded on
// original_source/os/src/syscall/fs.rs. Only stdout is a known fd; spec.md
// §7 treats any other fd as a user input error (return -1), not a fatal
// kernel error.
func sysWrite(fd int32, buf uintptr, length int) int64 {
	if fd != fdStdout {
		kfmt.Printf("[kernel] unsupported fd %d in sys_write\n", fd)
		return -1
	}

	chunks, ok := translatedByteBuffer(tasks.CurrentUserToken(), buf, length)
	if !ok {
		return -1
	}
	for _, c := range chunks {
		for _, b := range c {
			kfmt.Putc(b)
		}
	}
	return int64(length)
}
