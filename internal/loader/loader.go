// Package loader reads the linker-embedded application table (spec.md §6's
// "linker-embedded application table" external collaborator) and parses
// each packed image as ELF, adapting debug/elf — the standard library's
// own authoritative ELF reader — behind the vmm.ElfImage interface so
// internal/vmm never needs to know which parser produced a program
// header. spec.md treats ELF parsing as a black box; debug/elf is the one
// "parser" in reach that needs no justification for why a third-party
// library wasn't used instead, since the collaborator is explicitly
// out of scope and the standard library already ships a complete,
// correct implementation of it.
package loader

import (
	"debug/elf"

	"github.com/gfgafn/rcore-go/internal/kernerr"
	"github.com/gfgafn/rcore-go/internal/vmm"
)

// numAppTableAddr returns the address of the linker-placed `_num_app`
// table: one word N, N+1 word offsets, read directly as raw memory the
// same way internal/layout reads section boundaries — the link-time
// application packager is an external collaborator per spec.md line 7.
func numAppTableAddr() uintptr

// GetNumApp returns the number of applications packed into the kernel
// image.
func GetNumApp() int {
	return int(readWord(numAppTableAddr()))
}

// GetAppData returns application i's packed bytes, sliced out of the
// table's [offsets[i], offsets[i+1]) range.
func GetAppData(i int) []byte {
	base := numAppTableAddr()
	n := int(readWord(base))
	if i < 0 || i >= n {
		kernerr.Panic(kernerr.New("loader", "app index out of range"))
	}
	offsets := make([]uint64, n+1)
	for k := 0; k <= n; k++ {
		offsets[k] = readWord(base + uintptr(8*(k+1)))
	}
	start, end := offsets[i], offsets[i+1]
	return bytesAt(uintptr(start), int(end-start))
}

// Image adapts a debug/elf.File to vmm.ElfImage.
type Image struct {
	file *elf.File
}

// ParseImage parses a packed application image. Panics on malformed ELF —
// every app is fixed at link time (spec.md Non-goals: "process creation by
// user code"), so a bad image is a build-time error, not a runtime one.
func ParseImage(data []byte) *Image {
	f, err := elf.NewFile(byteReader(data))
	if err != nil {
		kernerr.Panic(kernerr.New("loader", "malformed application ELF"))
	}
	return &Image{file: f}
}

// Segments returns every PT_LOAD program header as a vmm.ElfSegment.
func (img *Image) Segments() []vmm.ElfSegment {
	var segs []vmm.ElfSegment
	for _, prog := range img.file.Progs {
		if prog.Type != elf.PT_LOAD {
			continue
		}
		data := make([]byte, prog.Filesz)
		if _, err := prog.ReadAt(data, 0); err != nil {
			kernerr.Panic(kernerr.New("loader", "failed reading PT_LOAD segment"))
		}
		segs = append(segs, vmm.ElfSegment{
			VirtAddr: prog.Vaddr,
			MemSize:  prog.Memsz,
			Data:     data,
			Readable: prog.Flags&elf.PF_R != 0,
			Writable: prog.Flags&elf.PF_W != 0,
			Execable: prog.Flags&elf.PF_X != 0,
		})
	}
	return segs
}

// EntryPoint returns the ELF entry point.
func (img *Image) EntryPoint() uint64 { return img.file.Entry }
