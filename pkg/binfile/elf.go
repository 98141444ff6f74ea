package binfile

import (
	"bytes"
	"debug/elf"
	stderrors "errors"

	"github.com/arthur-debert/hexmap/pkg/errors"
	"github.com/arthur-debert/hexmap/pkg/logging"
	"github.com/arthur-debert/hexmap/pkg/types"
)

func parseELF(data []byte, opts LoadOptions) (*types.Image, error) {
	logger := logging.GetLogger("binfile.elf")

	f, err := elf.NewFile(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFormatInvalid, "failed to parse ELF file")
	}
	defer func() { _ = f.Close() }()

	img := &types.Image{Format: string(FormatELF)}

	useSections := opts.Blocks == BlocksSections
	if !useSections {
		for i, p := range f.Progs {
			if p.Type != elf.PT_LOAD || p.Filesz == 0 {
				continue
			}
			body, err := view(data, p.Off, p.Filesz, blockName("LOAD", i))
			if err != nil {
				return nil, err
			}
			img.Blocks = append(img.Blocks, types.ContentBlock{
				Address: p.Vaddr,
				Name:    blockName("LOAD", i),
				Data:    body,
			})
		}
		if len(img.Blocks) == 0 {
			logger.Debug().Msg("No loadable segments, using sections as content")
			useSections = true
		}
	}

	for _, s := range f.Sections {
		// non-allocated sections have no address in the running image
		if s.Flags&elf.SHF_ALLOC == 0 {
			continue
		}
		img.Background = append(img.Background, types.AnnotationRange{
			Start: s.Addr,
			Size:  s.Size,
			Name:  s.Name,
		})
		if !useSections || s.Type == elf.SHT_NOBITS || s.Size == 0 {
			continue
		}
		body, err := view(data, s.Offset, s.Size, s.Name)
		if err != nil {
			return nil, err
		}
		img.Blocks = append(img.Blocks, types.ContentBlock{
			Address: s.Addr,
			Name:    s.Name,
			Data:    body,
		})
	}

	symbols, err := elfSymbols(f)
	if err != nil {
		return nil, err
	}
	img.Foreground = symbols

	logger.Trace().
		Str("machine", f.Machine.String()).
		Int("segments", len(f.Progs)).
		Int("sections", len(f.Sections)).
		Msg("Parsed ELF headers")
	return img, nil
}

// elfSymbols reads .symtab, falling back to .dynsym for stripped binaries
func elfSymbols(f *elf.File) ([]types.AnnotationRange, error) {
	syms, err := f.Symbols()
	if stderrors.Is(err, elf.ErrNoSymbols) {
		syms, err = f.DynamicSymbols()
	}
	if stderrors.Is(err, elf.ErrNoSymbols) {
		logger := logging.GetLogger("binfile.elf")
		logger.Info().Msg("No symbol table found")
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrSymbolTable, "failed to read symbol table")
	}

	ranges := make([]types.AnnotationRange, 0, len(syms))
	for _, s := range syms {
		typ := elf.ST_TYPE(s.Info)
		if typ == elf.STT_SECTION || typ == elf.STT_FILE || s.Name == "" {
			continue
		}
		if s.Section == elf.SHN_UNDEF {
			continue
		}
		addr := s.Value
		// Thumb functions carry the mode in bit 0
		if f.Machine == elf.EM_ARM && typ == elf.STT_FUNC {
			addr &^= 1
		}
		ranges = append(ranges, types.AnnotationRange{
			Start: addr,
			Size:  s.Size,
			Name:  s.Name,
		})
	}
	return ranges, nil
}
