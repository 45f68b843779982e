// Package bitpack packs palette indices into fixed-width bit fields.
//
// Each width from 1 to 8 has its own packer with its own byte layout. Width 0
// is the degenerate case of a single-entry palette and stores nothing.
//
// # Layout Families
//
// Byte-aligned widths (1, 2, 4) place 8, 4 or 2 values in each output byte,
// value k of a byte occupying bits [k*w, (k+1)*w). The value count must be a
// multiple of the values-per-byte factor and the output has no padding:
//
//	width 1: [0,1,0,1,0,1,0,1] -> 0b10101010
//	width 2: [0,1,2,3]         -> 0b11100100
//
// Word-grouped widths (3, 5, 6, 7) place G = 64/w values in one little-endian
// 64-bit word, value k at bit offset k*w, leaving 64-G*w high bits unused:
//
//	width | group | unused bits
//	------|-------|------------
//	  3   |  21   |     1
//	  5   |  12   |     4
//	  6   |  10   |     4
//	  7   |   9   |     1
//
// Any count is accepted. A partial last group is written as a full 8-byte word
// with its unused slots zeroed, so a grouped stream is always a multiple of 8
// bytes. Callers sizing buffers by hand must leave room for that trailing
// word; MaxPackedSize returns a size that is safe for every width.
//
// Width 8 stores one truncated byte per value.
//
// # Dispatch
//
// A Dispatcher maps a palette size to a width through MinimalWidth and a
// WidthSet of allowed widths, then calls the matching packer:
//
//	d, _ := bitpack.NewDispatcher(format.PolicyOptimized)
//	n, err := d.SelectAndPack(paletteLen, dst, indices)
//
// PolicyBaseline allows only widths 4..8 and widens smaller palettes to 4 bits.
//
// Every packer has an exact inverse in the Unpack family.
package bitpack
