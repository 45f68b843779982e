// Package section defines the binary layouts of voxpack: the section record
// that stores one palettized, bit-packed block and the fixed-size header of a
// compressed chunk frame.
//
// # Section Record
//
// A section record is self-describing given the packing policy of its chunk:
//
//	┌──────────────────────────────────────────────────────────┐
//	│ Palette size - 1 (1 byte, 0..255)                        │
//	├──────────────────────────────────────────────────────────┤
//	│ Palette (2 × n bytes, little-endian uint16 symbols)      │
//	├──────────────────────────────────────────────────────────┤
//	│ Packed indices (bitpack.PackedSize(w, 4096) bytes)       │
//	└──────────────────────────────────────────────────────────┘
//
// The index width w is not stored. Decoders recompute it from the palette
// size and the chunk's policy, exactly as the encoder selected it. A section
// whose palette has a single entry under the optimized policy therefore
// occupies three bytes.
//
// # Chunk Header
//
// A chunk frame starts with a 16-byte header followed by the compressed
// concatenation of its section records:
//
//	offset  size  field
//	0       1     magic (0xB7)
//	1       1     policy (high nibble) | compression type (low nibble)
//	2       2     section presence bitmap, bit i = section i
//	4       4     uncompressed payload size
//	8       8     xxHash64 of the uncompressed payload
//
// All multi-byte fields are little-endian.
package section
