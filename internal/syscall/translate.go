package syscall

import (
	"github.com/gfgafn/rcore-go/internal/addr"
	"github.com/gfgafn/rcore-go/internal/pmm"
	"github.com/gfgafn/rcore-go/internal/vmm"
)

// translatedByteBuffer walks a task's page table (identified by token, a
// satp value) and slices out the physical backing of [ptr, ptr+length) a
// page at a time, so kernel code can read/write a user buffer without
// switching satp. Returns ok=false the moment any page in the range is
// unmapped, per spec.md scenario S2.
func translatedByteBuffer(token uint64, ptr uintptr, length int) ([][]byte, bool) {
	pt := vmm.FromToken(token)

	start := uint64(ptr)
	end := start + uint64(length)
	var chunks [][]byte

	for start < end {
		startVA := addr.VirtAddrFromU64(start)
		vpn := startVA.Floor()

		pte, ok := pt.Translate(vpn)
		if !ok {
			return nil, false
		}

		nextPageVA := addr.FromVirtPageNum(vpn + 1).Int()
		chunkEnd := nextPageVA
		if chunkEnd > end {
			chunkEnd = end
		}

		page := pmm.BytesMut(pte.PPN())
		chunks = append(chunks, page[startVA.PageOffset():chunkEnd-vpn.Addr().Int()])

		start = chunkEnd
	}
	return chunks, true
}

// copyIntoUser copies src into the user buffer described by token/ptr.
// If any page of [ptr, ptr+len(src)) is unmapped, nothing is written and
// it returns 0; otherwise it returns the number of bytes written.
func copyIntoUser(token uint64, ptr uintptr, src []byte) int {
	chunks, ok := translatedByteBuffer(token, ptr, len(src))
	if !ok {
		return 0
	}
	written := 0
	for _, c := range chunks {
		n := copy(c, src[written:])
		written += n
		if n < len(c) {
			break
		}
	}
	return written
}
