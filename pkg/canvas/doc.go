// Package canvas accumulates one line of a hex dump at a time and writes it
// out in a fixed layout:
//
//	0x00000010 | 00 01 02 03 04 05 06 07  08 09 0a 0b 0c 0d 0e 0f  | ................ | [.text] 0x00000010+0x20: main
//
// address, hex columns (with an extra space after every eighth column when
// the width is a multiple of eight), the same bytes as ASCII in bold, and
// the labels of every annotation entered on the line.
//
// A line is written when it fills up, when the caller moves to another
// line, or on an explicit boundary. When the address moves backwards into
// columns already written, the canvas starts an overlapping pass: the
// accumulated line is written and a fresh one begins at the same address,
// printed with a blank address column.
package canvas
