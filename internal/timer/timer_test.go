package timer

import (
	"testing"

	"github.com/gfgafn/rcore-go/internal/config"
)

func TestGetTimeMsConversionFactor(t *testing.T) {
	// GetTimeMs divides raw cycles by ClockFreq/MSecPerSec; sanity-check
	// that factor is the documented 10_000 cycles per millisecond at
	// ClockFreq = 10_000_000 Hz.
	factor := int64(config.ClockFreq / config.MSecPerSec)
	if factor != 10_000 {
		t.Fatalf("unexpected ms conversion factor %d", factor)
	}
}
