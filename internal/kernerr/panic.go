package kernerr

import (
	"github.com/gfgafn/rcore-go/internal/kfmt"
	"github.com/gfgafn/rcore-go/internal/sbi"
)

// Panic reports err (if any) through the console and halts the machine via
// SBI shutdown. Calls to Panic never return. Mirrors the teacher's
// kernel.Panic, which plays the same role as a redirection target for Go's
// own panic() in a freestanding build.
func Panic(err *Error) {
	kfmt.Printf("\n-----------------------------------\n")
	if err != nil {
		kfmt.Printf("[%s] unrecoverable error: %s\n", err.Module, err.Message)
	}
	kfmt.Printf("*** kernel panic: system halted ***\n")
	kfmt.Printf("-----------------------------------\n")
	sbi.Shutdown(false)
}
