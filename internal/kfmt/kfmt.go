// Package kfmt provides an allocation-free Printf subset for kernel
// diagnostics, usable from the very first instruction through normal
// scheduling. Adapted from the teacher's kernel/kfmt/early package, which
// exists for exactly the same reason: the Go allocator may not be live yet
// (in our case, until internal/kheap has bootstrapped), so fmt.Printf is
// off-limits. Output is redirected from the teacher's VGA console to the
// SBI console (internal/sbi.ConsolePutchar).
package kfmt

import "github.com/gfgafn/rcore-go/internal/sbi"

var (
	errMissingArg   = []byte("(MISSING)")
	errWrongArgType = []byte("%!(WRONGTYPE)")
	errNoVerb       = []byte("%!(NOVERB)")
	errExtraArg     = []byte("%!(EXTRA)")
	padding         = byte(' ')
	trueValue       = []byte("true")
	falseValue      = []byte("false")
)

func writeByte(b byte) { sbi.ConsolePutchar(b) }

func write(buf []byte) {
	for _, b := range buf {
		writeByte(b)
	}
}

// Putc writes a single raw byte to the console, bypassing Printf's format
// parsing. Used by internal/syscall's sys_write, which already has the raw
// bytes a user task asked to print.
func Putc(b byte) { writeByte(b) }

// Printf supports %s, %d, %x, %o, %t with an optional leading decimal width,
// matching the subset documented on the teacher's early.Printf. It performs
// no heap allocation.
func Printf(format string, args ...interface{}) {
	var (
		nextCh                       byte
		nextArgIndex                 int
		blockStart, blockEnd, padLen int
		fmtLen                       = len(format)
	)

	for blockEnd < fmtLen {
		nextCh = format[blockEnd]
		if nextCh != '%' {
			blockEnd++
			continue
		}

		if blockStart < blockEnd {
			for i := blockStart; i < blockEnd; i++ {
				writeByte(format[i])
			}
		}

		padLen = 0
		blockEnd++
	parseFmt:
		for ; blockEnd < fmtLen; blockEnd++ {
			nextCh = format[blockEnd]
			switch {
			case nextCh == '%':
				writeByte('%')
				break parseFmt
			case nextCh >= '0' && nextCh <= '9':
				padLen = (padLen * 10) + int(nextCh-'0')
				continue
			case nextCh == 'd' || nextCh == 'x' || nextCh == 'o' || nextCh == 's' || nextCh == 't':
				if nextArgIndex >= len(args) {
					write(errMissingArg)
					break parseFmt
				}

				switch nextCh {
				case 'o':
					fmtInt(args[nextArgIndex], 8, padLen)
				case 'd':
					fmtInt(args[nextArgIndex], 10, padLen)
				case 'x':
					fmtInt(args[nextArgIndex], 16, padLen)
				case 's':
					fmtString(args[nextArgIndex], padLen)
				case 't':
					fmtBool(args[nextArgIndex])
				}

				nextArgIndex++
				break parseFmt
			}

			write(errNoVerb)
		}
		blockStart, blockEnd = blockEnd+1, blockEnd+1
	}

	if blockStart != blockEnd {
		for i := blockStart; i < blockEnd; i++ {
			writeByte(format[i])
		}
	}

	for ; nextArgIndex < len(args); nextArgIndex++ {
		write(errExtraArg)
	}
}

func fmtBool(v interface{}) {
	b, ok := v.(bool)
	if !ok {
		write(errWrongArgType)
		return
	}
	if b {
		write(trueValue)
	} else {
		write(falseValue)
	}
}

func fmtString(v interface{}, padLen int) {
	switch casted := v.(type) {
	case string:
		fmtRepeat(padding, padLen-len(casted))
		for i := 0; i < len(casted); i++ {
			writeByte(casted[i])
		}
	case []byte:
		fmtRepeat(padding, padLen-len(casted))
		write(casted)
	default:
		write(errWrongArgType)
	}
}

func fmtRepeat(ch byte, count int) {
	for i := 0; i < count; i++ {
		writeByte(ch)
	}
}

func fmtInt(v interface{}, base, padLen int) {
	var (
		sval             int64
		uval             uint64
		divider          uint64
		remainder        uint64
		buf              [24]byte
		padCh            byte
		left, right, end int
	)

	switch base {
	case 8:
		divider, padCh = 8, '0'
	case 10:
		divider, padCh = 10, ' '
	case 16:
		divider, padCh = 16, '0'
	}

	switch casted := v.(type) {
	case uint8:
		uval = uint64(casted)
	case uint16:
		uval = uint64(casted)
	case uint32:
		uval = uint64(casted)
	case uint64:
		uval = casted
	case uintptr:
		uval = uint64(casted)
	case int8:
		sval = int64(casted)
	case int16:
		sval = int64(casted)
	case int32:
		sval = int64(casted)
	case int64:
		sval = casted
	case int:
		sval = int64(casted)
	default:
		write(errWrongArgType)
		return
	}

	if sval < 0 {
		uval = uint64(-sval)
	} else if sval > 0 {
		uval = uint64(sval)
	}

	for {
		remainder = uval % divider
		if remainder < 10 {
			buf[right] = byte(remainder) + '0'
		} else {
			buf[right] = byte(remainder-10) + 'a'
		}
		right++
		uval /= divider
		if uval == 0 {
			break
		}
	}

	for ; right-left < padLen; right++ {
		buf[right] = padCh
	}

	if base == 16 {
		buf[right] = 'x'
		buf[right+1] = '0'
		right += 2
	}

	if sval < 0 {
		for end = right - 1; buf[end] == ' '; end-- {
		}
		if end == right-1 {
			right++
		}
		buf[end+1] = '-'
	}

	end = right
	for right = right - 1; left < right; left, right = left+1, right-1 {
		buf[left], buf[right] = buf[right], buf[left]
	}

	write(buf[0:end])
}
