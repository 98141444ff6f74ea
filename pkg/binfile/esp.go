package binfile

import (
	"encoding/binary"
	"fmt"

	"github.com/arthur-debert/hexmap/pkg/errors"
	"github.com/arthur-debert/hexmap/pkg/logging"
	"github.com/arthur-debert/hexmap/pkg/types"
)

const (
	espMagic = 0xE9
	// ESP32-family images carry a 16 byte extended header after the common 8
	espHeaderSize       = 24
	espLegacyHeaderSize = 8
	espMaxSegments      = 16
	espChecksumSeed     = 0xEF
)

type espRegion struct {
	name       string
	start, end uint64
}

// address windows shared by the ESP32 family, used to qualify chunk names
var espRegions = []espRegion{
	{"DROM", 0x3F400000, 0x3F800000},
	{"DRAM", 0x3FFAE000, 0x40000000},
	{"IRAM", 0x40070000, 0x400A0000},
	{"IROM", 0x400C2000, 0x40C00000},
	{"RTC", 0x50000000, 0x50002000},
}

func espRegionName(addr uint64) string {
	for _, r := range espRegions {
		if addr >= r.start && addr < r.end {
			return r.name
		}
	}
	return ""
}

func looksLikeESP(data []byte) bool {
	return len(data) >= espLegacyHeaderSize &&
		data[0] == espMagic &&
		data[1] > 0 && data[1] <= espMaxSegments
}

func parseESP(data []byte) (*types.Image, error) {
	if !looksLikeESP(data) {
		return nil, errors.New(errors.ErrFormatInvalid, "not an ESP firmware image")
	}

	img, end, err := parseESPSegments(data, espHeaderSize)
	if err != nil {
		// ESP8266 images have no extended header
		var legacyErr error
		img, end, legacyErr = parseESPSegments(data, espLegacyHeaderSize)
		if legacyErr != nil {
			return nil, err
		}
	}

	entry := uint64(binary.LittleEndian.Uint32(data[4:8]))
	img.Foreground = append(img.Foreground, types.AnnotationRange{
		Start: entry,
		Name:  "entry",
	})

	verifyESPChecksum(data, img.Blocks, end)
	return img, nil
}

func parseESPSegments(data []byte, headerSize int) (*types.Image, uint64, error) {
	count := int(data[1])
	img := &types.Image{Format: string(FormatESP)}
	off := uint64(headerSize)

	for i := 0; i < count; i++ {
		head, err := view(data, off, 8, fmt.Sprintf("segment %d header", i))
		if err != nil {
			return nil, 0, err
		}
		addr := uint64(binary.LittleEndian.Uint32(head[0:4]))
		size := uint64(binary.LittleEndian.Uint32(head[4:8]))
		off += 8

		name := fmt.Sprintf("seg%d", i)
		if size == 0 {
			return nil, 0, errors.Newf(errors.ErrFormatInvalid, "%s is empty", name)
		}
		body, err := view(data, off, size, name)
		if err != nil {
			return nil, 0, err
		}
		off += size

		label := name
		if region := espRegionName(addr); region != "" {
			label = name + " " + region
		}
		img.Blocks = append(img.Blocks, types.ContentBlock{
			Address: addr,
			Name:    name,
			Data:    body,
		})
		img.Background = append(img.Background, types.AnnotationRange{
			Start: addr,
			Size:  size,
			Name:  label,
		})
	}
	return img, off, nil
}

// verifyESPChecksum checks the XOR checksum stored in the last byte of the
// 16 byte aligned block following the segments. A mismatch is only logged.
func verifyESPChecksum(data []byte, blocks []types.ContentBlock, end uint64) {
	logger := logging.GetLogger("binfile.esp")

	pos := end + 15 - end%16
	if pos >= uint64(len(data)) {
		logger.Warn().Msg("Image has no checksum byte")
		return
	}

	var sum byte = espChecksumSeed
	for _, b := range blocks {
		for _, v := range b.Data {
			sum ^= v
		}
	}
	if data[pos] != sum {
		logger.Warn().
			Uint8("stored", data[pos]).
			Uint8("computed", sum).
			Msg("Image checksum mismatch")
	}
}
