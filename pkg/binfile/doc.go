// Package binfile extracts content blocks and annotation ranges from binary
// containers so the renderer never has to know about file formats.
//
// Supported formats:
//
//   - elf: loadable segments (or allocated sections) as content, allocated
//     sections as background ranges, .symtab/.dynsym symbols as foreground
//   - esp: Espressif application images, one block and one background range
//     per chunk, the entry point as a foreground marker
//   - ihex: Intel HEX, contiguous data records coalesced into blocks
//   - raw: the whole file as a single block at a chosen base address
//
// Every failure here is fatal for the invocation and is reported before any
// rendering starts. Blocks and ranges come back sorted.
package binfile
