package binfile

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
	"testing"
)

const (
	testTextAddr = 0x401000
	testBssAddr  = 0x402000
)

type testSym struct {
	name    string
	info    uint8
	section uint16
	value   uint64
	size    uint64
}

// buildTestELF assembles a minimal little-endian ELF64 executable with one
// PT_LOAD segment covering .text, a .bss section and a symbol table
func buildTestELF(t *testing.T, withProgs bool) []byte {
	t.Helper()

	text := []byte("hexmap\x00\x01\x02\x03\x04\x05\x06\x07\x08\x09")

	shstr := []byte("\x00.text\x00.bss\x00.symtab\x00.strtab\x00.shstrtab\x00")
	nameOff := func(s string) uint32 {
		return uint32(bytes.Index(shstr, []byte("\x00"+s+"\x00")) + 1)
	}

	syms := []testSym{
		{name: "", info: elf.ST_INFO(elf.STB_LOCAL, elf.STT_SECTION), section: 1, value: testTextAddr},
		{name: "main.go", info: elf.ST_INFO(elf.STB_LOCAL, elf.STT_FILE), section: uint16(elf.SHN_ABS)},
		{name: "main", info: elf.ST_INFO(elf.STB_GLOBAL, elf.STT_FUNC), section: 1, value: testTextAddr, size: 8},
		{name: "marker", info: elf.ST_INFO(elf.STB_GLOBAL, elf.STT_NOTYPE), section: 1, value: testTextAddr + 4},
		{name: "_Z3addii", info: elf.ST_INFO(elf.STB_GLOBAL, elf.STT_FUNC), section: 1, value: testTextAddr + 8, size: 8},
		{name: "buffer", info: elf.ST_INFO(elf.STB_GLOBAL, elf.STT_OBJECT), section: 2, value: testBssAddr, size: 0x20},
		{name: "puts", info: elf.ST_INFO(elf.STB_GLOBAL, elf.STT_FUNC), section: uint16(elf.SHN_UNDEF)},
	}

	var strtab bytes.Buffer
	strtab.WriteByte(0)
	var symtab bytes.Buffer
	write := func(buf *bytes.Buffer, v any) {
		if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	write(&symtab, elf.Sym64{})
	for _, s := range syms {
		var name uint32
		if s.name != "" {
			name = uint32(strtab.Len())
			strtab.WriteString(s.name)
			strtab.WriteByte(0)
		}
		write(&symtab, elf.Sym64{
			Name:  name,
			Info:  s.info,
			Shndx: s.section,
			Value: s.value,
			Size:  s.size,
		})
	}

	const headerSize = 64
	const progSize = 56
	phnum := 0
	if withProgs {
		phnum = 1
	}
	textOff := uint64(headerSize + progSize*phnum)
	symOff := textOff + uint64(len(text))
	strOff := symOff + uint64(symtab.Len())
	shstrOff := strOff + uint64(strtab.Len())
	shOff := shstrOff + uint64(len(shstr))

	var out bytes.Buffer
	hdr := elf.Header64{
		Type:      uint16(elf.ET_EXEC),
		Machine:   uint16(elf.EM_X86_64),
		Version:   uint32(elf.EV_CURRENT),
		Entry:     testTextAddr,
		Shoff:     shOff,
		Ehsize:    headerSize,
		Phentsize: progSize,
		Phnum:     uint16(phnum),
		Shentsize: 64,
		Shnum:     6,
		Shstrndx:  5,
	}
	if withProgs {
		hdr.Phoff = headerSize
	}
	copy(hdr.Ident[:], elf.ELFMAG)
	hdr.Ident[elf.EI_CLASS] = byte(elf.ELFCLASS64)
	hdr.Ident[elf.EI_DATA] = byte(elf.ELFDATA2LSB)
	hdr.Ident[elf.EI_VERSION] = byte(elf.EV_CURRENT)
	write(&out, hdr)

	if withProgs {
		write(&out, elf.Prog64{
			Type:   uint32(elf.PT_LOAD),
			Flags:  uint32(elf.PF_R | elf.PF_X),
			Off:    textOff,
			Vaddr:  testTextAddr,
			Paddr:  testTextAddr,
			Filesz: uint64(len(text)),
			Memsz:  uint64(len(text)),
			Align:  0x1000,
		})
	}

	out.Write(text)
	out.Write(symtab.Bytes())
	out.Write(strtab.Bytes())
	out.Write(shstr)

	sections := []elf.Section64{
		{},
		{
			Name: nameOff(".text"), Type: uint32(elf.SHT_PROGBITS),
			Flags: uint64(elf.SHF_ALLOC | elf.SHF_EXECINSTR),
			Addr:  testTextAddr, Off: textOff, Size: uint64(len(text)), Addralign: 16,
		},
		{
			Name: nameOff(".bss"), Type: uint32(elf.SHT_NOBITS),
			Flags: uint64(elf.SHF_ALLOC | elf.SHF_WRITE),
			Addr:  testBssAddr, Off: symOff, Size: 0x20, Addralign: 16,
		},
		{
			Name: nameOff(".symtab"), Type: uint32(elf.SHT_SYMTAB),
			Off: symOff, Size: uint64(symtab.Len()), Link: 4, Info: 3,
			Addralign: 8, Entsize: 24,
		},
		{
			Name: nameOff(".strtab"), Type: uint32(elf.SHT_STRTAB),
			Off: strOff, Size: uint64(strtab.Len()), Addralign: 1,
		},
		{
			Name: nameOff(".shstrtab"), Type: uint32(elf.SHT_STRTAB),
			Off: shstrOff, Size: uint64(len(shstr)), Addralign: 1,
		},
	}
	for _, s := range sections {
		write(&out, s)
	}
	return out.Bytes()
}
