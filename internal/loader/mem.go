package loader

import (
	"bytes"
	"io"
	"unsafe"
)

func readWord(addr uintptr) uint64 {
	return *(*uint64)(unsafe.Pointer(addr))
}

func bytesAt(addr uintptr, length int) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), length)
}

// byteReader adapts a []byte to io.ReaderAt, which debug/elf.NewFile
// requires.
func byteReader(data []byte) io.ReaderAt {
	return bytes.NewReader(data)
}
