package trap

import "github.com/gfgafn/rcore-go/internal/cpu"

// cause classifies a decoded scause value into the handful of trap kinds
// this kernel distinguishes (spec.md §7's three error kinds collapse into
// these at the trap layer).
type cause int

const (
	causeUnsupported cause = iota
	causeUserEnvCall
	causeStoreFault
	causeStorePageFault
	causeLoadFault
	causeLoadPageFault
	causeIllegalInstruction
	causeSupervisorTimer
)

const scauseInterruptBit = uint64(1) << 63

func decodeScause(raw uint64) cause {
	code := raw &^ scauseInterruptBit
	if raw&scauseInterruptBit != 0 {
		if code == 5 {
			return causeSupervisorTimer
		}
		return causeUnsupported
	}
	switch code {
	case 8:
		return causeUserEnvCall
	case 7:
		return causeStoreFault
	case 15:
		return causeStorePageFault
	case 5:
		return causeLoadFault
	case 13:
		return causeLoadPageFault
	case 2:
		return causeIllegalInstruction
	}
	return causeUnsupported
}

func readCause() cause { return decodeScause(cpu.ReadScause()) }
