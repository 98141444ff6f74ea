package binfile

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"strings"

	"github.com/arthur-debert/hexmap/pkg/errors"
	"github.com/arthur-debert/hexmap/pkg/types"
)

// Intel HEX record types
const (
	ihexData             = 0x00
	ihexEOF              = 0x01
	ihexExtSegment       = 0x02
	ihexStartSegment     = 0x03
	ihexExtLinear        = 0x04
	ihexStartLinear      = 0x05
	ihexMinRecordLength  = 5
	ihexAddressFieldSize = 2
)

func parseIHex(data []byte) (*types.Image, error) {
	img := &types.Image{Format: string(FormatIHex)}

	var (
		base    uint64
		current *types.ContentBlock
		lineNo  int
	)
	flush := func() {
		if current != nil && len(current.Data) > 0 {
			current.Name = blockName("ihex", len(img.Blocks))
			img.Blocks = append(img.Blocks, *current)
		}
		current = nil
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		rec, err := decodeIHexRecord(line)
		if err != nil {
			return nil, err.WithDetail("line", lineNo)
		}

		length := int(rec[0])
		addr := uint64(rec[1])<<8 | uint64(rec[2])
		payload := rec[4 : 4+length]

		switch rec[3] {
		case ihexData:
			at := base + addr
			if current == nil || current.End() != at {
				flush()
				current = &types.ContentBlock{Address: at}
			}
			current.Data = append(current.Data, payload...)
		case ihexEOF:
			flush()
			return img, nil
		case ihexExtSegment, ihexExtLinear:
			if length != ihexAddressFieldSize {
				return nil, errors.Newf(errors.ErrFormatInvalid,
					"extended address record with %d data bytes", length).WithDetail("line", lineNo)
			}
			v := uint64(payload[0])<<8 | uint64(payload[1])
			if rec[3] == ihexExtSegment {
				base = v << 4
			} else {
				base = v << 16
			}
		case ihexStartSegment, ihexStartLinear:
			if length == 4 {
				v := uint64(payload[0])<<24 | uint64(payload[1])<<16 | uint64(payload[2])<<8 | uint64(payload[3])
				if rec[3] == ihexStartSegment {
					// CS:IP
					v = (v>>16)<<4 + v&0xFFFF
				}
				img.Foreground = append(img.Foreground, types.AnnotationRange{Start: v, Name: "entry"})
			}
		default:
			return nil, errors.Newf(errors.ErrFormatInvalid, "unknown record type %#02x", rec[3]).
				WithDetail("line", lineNo)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrFormatInvalid, "failed to read Intel HEX data")
	}

	// tolerate a missing EOF record
	flush()
	return img, nil
}

// decodeIHexRecord decodes one ":LLAAAATT<data>CC" line and validates its
// length and checksum
func decodeIHexRecord(line string) ([]byte, *errors.HexmapError) {
	if !strings.HasPrefix(line, ":") {
		return nil, errors.New(errors.ErrFormatInvalid, "record does not start with ':'")
	}
	rec, err := hex.DecodeString(line[1:])
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFormatInvalid, "invalid hex digits in record")
	}
	if len(rec) < ihexMinRecordLength {
		return nil, errors.New(errors.ErrFormatInvalid, "record too short")
	}
	if len(rec) != int(rec[0])+ihexMinRecordLength {
		return nil, errors.Newf(errors.ErrFormatInvalid,
			"record length %d does not match byte count %d", len(rec)-ihexMinRecordLength, rec[0])
	}
	var sum byte
	for _, b := range rec {
		sum += b
	}
	if sum != 0 {
		return nil, errors.New(errors.ErrFormatInvalid, "record checksum mismatch")
	}
	return rec, nil
}
