package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/arthur-debert/hexmap/pkg/style"
	"github.com/arthur-debert/hexmap/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage() *types.Image {
	return &types.Image{
		Format: "elf",
		Blocks: []types.ContentBlock{
			{Address: 0x1000, Name: "LOAD[0]", Data: make([]byte, 0x30)},
		},
		Background: []types.AnnotationRange{
			{Start: 0x1000, Size: 0x20, Name: ".text"},
			{Start: 0x1020, Size: 0x10, Name: ".rodata"},
		},
		Foreground: []types.AnnotationRange{
			{Start: 0x1000, Size: 8, Name: "main"},
			{Start: 0x1008, Size: 8, Name: "helper"},
			{Start: 0x1010, Size: 4, Name: "table"},
		},
	}
}

func TestRenderInfo(t *testing.T) {
	var buf bytes.Buffer
	err := RenderInfo(&buf, "app.elf", testImage(), InfoOptions{Plain: true, Palette: style.DefaultPalette()})
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "app.elf (elf)\n"))
	assert.Contains(t, out, "48 bytes in 1 blocks, 2 background and 3 foreground ranges")
	for _, want := range []string{"LOAD[0]", "0x00001030", ".rodata", "helper", "0x00001014", "232", "236"} {
		assert.Contains(t, out, want)
	}
}

func TestRenderInfoLimit(t *testing.T) {
	var buf bytes.Buffer
	err := RenderInfo(&buf, "app.elf", testImage(), InfoOptions{Plain: true, Limit: 1})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "main")
	assert.NotContains(t, out, "helper")
	assert.Contains(t, out, "... 2 more")
	assert.Contains(t, out, "... 1 more")
}

func TestRenderInfoEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := RenderInfo(&buf, "blob", &types.Image{Format: "raw"}, InfoOptions{Plain: true})
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(buf.String(), "  none\n"))
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{3 << 20, "3.0 MiB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSize(tt.in))
	}
}

func TestFormatAddress(t *testing.T) {
	assert.Equal(t, "0x00000000", FormatAddress(0))
	assert.Equal(t, "0x3f400020", FormatAddress(0x3F400020))
}
