// Package timer wraps the `time` CSR and the SBI set_timer call into the
// millisecond/microsecond clock and tick-programming operations spec.md
// §4.11 names (component I). Grounded on original_source/os/src/timer.rs.
package timer

import (
	"github.com/gfgafn/rcore-go/internal/config"
	"github.com/gfgafn/rcore-go/internal/cpu"
	"github.com/gfgafn/rcore-go/internal/sbi"
)

// GetTime returns the raw cycle count since boot.
func GetTime() int64 { return int64(cpu.ReadTime()) }

// GetTimeMs returns milliseconds since boot.
func GetTimeMs() int64 {
	return int64(cpu.ReadTime()) / (config.ClockFreq / config.MSecPerSec)
}

// GetTimeUs returns microseconds since boot.
func GetTimeUs() int64 {
	return int64(cpu.ReadTime()) / (config.ClockFreq / config.MicroPerSec)
}

// SetNextTrigger programs the next supervisor-timer interrupt one tick
// (ClockFreq/TicksPerSec cycles) ahead of now, via the SBI firmware call.
func SetNextTrigger() {
	sbi.SetTimer(cpu.ReadTime() + config.ClockFreq/config.TicksPerSec)
}

// EnableTimerInterrupt unmasks the supervisor-timer interrupt in sie.
func EnableTimerInterrupt() { cpu.EnableTimerInterrupt() }
