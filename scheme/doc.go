// Package scheme frames the sections of a chunk into a single compressed unit.
//
// A ChunkEncoder turns up to 16 sections into section records, concatenates
// them into a chunk payload and compresses the payload behind a 16-byte
// header:
//
//	offset  size  field
//	0       1     magic 0xB7
//	1       1     packing policy (high nibble) / compression type (low nibble)
//	2       2     section presence bitmap, bit i set for section i
//	4       4     uncompressed payload size
//	8       8     xxHash64 of the uncompressed payload
//	16      ..    compressed payload
//
// All multi-byte fields are little-endian. A ChunkDecoder reverses the
// process and verifies the checksum before any section is decoded.
//
// # Schemes
//
// A scheme is a named encoder configuration. The names are:
//
//	vanilla              baseline policy, scalar palettes, zlib at its default level
//	opt1                 optimized policy, scalar palettes, zlib at its default level
//	opt2:<codec>/<level> optimized policy, vectorized palettes, any codec
//
// where codec is one of null, zstd, s2, lz4, snappy, flate, zlib, gzip,
// brotli or bzip2. The null codec takes no level.
//
// Encoders and decoders keep per-instance scratch state and are not safe for
// concurrent use. Create one per goroutine.
package scheme
