// Command kernel is the supervisor-mode kernel image's sole entry point.
// Grounded on
// _examples/gopher-os-gopher-os/boot.go and
// _examples/gopher-os-gopher-os/kernel/kmain/kmain.go's split between a
// package main trampoline (kept tiny so the rt0 assembly's call into Go
// code survives the compiler's dead-code elimination) and the real
// boot sequence, and on original_source/os/src/main.rs's rust_main, whose
// exact step order main is translated from line for line.
package main

import (
	"unsafe"

	"github.com/gfgafn/rcore-go/internal/addr"
	"github.com/gfgafn/rcore-go/internal/config"
	"github.com/gfgafn/rcore-go/internal/kernerr"
	"github.com/gfgafn/rcore-go/internal/kfmt"
	"github.com/gfgafn/rcore-go/internal/kheap"
	"github.com/gfgafn/rcore-go/internal/layout"
	"github.com/gfgafn/rcore-go/internal/loader"
	"github.com/gfgafn/rcore-go/internal/pmm"
	"github.com/gfgafn/rcore-go/internal/syscall"
	"github.com/gfgafn/rcore-go/internal/task"
	"github.com/gfgafn/rcore-go/internal/timer"
	"github.com/gfgafn/rcore-go/internal/trap"
	"github.com/gfgafn/rcore-go/internal/vmm"
)

var errMainReturned = kernerr.New("kernel", "main returned")

// main is invoked directly by the boot assembly (entry.s, not carried over
// from the Rust original's entry.asm/link_app.S since both are external
// collaborators per spec.md) once a0/sp are set up for S-mode Go code.
// Never expected to return.
func main() {
	clearBSS()
	kfmt.Printf("[kernel] Hello, world!\n")

	kheap.Init()

	kernelEndPPN := addr.PhysAddr(uint64(layout.KernelEnd())).Ceil()
	memoryEndPPN := addr.PhysAddr(config.MemoryEnd).Floor()
	pmm.Init(kernelEndPPN, memoryEndPPN)

	vmm.InitKernelSpace()
	vmm.ActivateKernelSpace()
	kfmt.Printf("[kernel] back to world!\n")

	trap.Init()
	trap.EnableTimerInterrupt()
	timer.SetNextTrigger()

	numApp := loader.GetNumApp()
	manager := task.NewTaskManager(numApp, loader.GetAppData)
	trap.SetScheduler(manager)
	syscall.SetTaskService(manager)

	manager.RunFirst()

	// Use kernerr.Panic instead of panic to keep the compiler from treating
	// this call as dead code and eliminating RunFirst's caller.
	kernerr.Panic(errMainReturned)
}

func clearBSS() {
	start := uintptr(layout.BSSStart())
	end := uintptr(layout.BSSEnd())
	b := unsafe.Slice((*byte)(unsafe.Pointer(start)), end-start)
	for i := range b {
		b[i] = 0
	}
}
