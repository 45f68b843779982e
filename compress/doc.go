// Package compress provides the general-purpose compression stage applied to
// voxpack chunk payloads.
//
// # Overview
//
// voxpack encodes a chunk in two stages:
//
//  1. **Packing**: every section is palettized and bit-packed into a section
//     record, and the records of a chunk are concatenated into one payload.
//  2. **Compression**: the payload is compressed by one of the backends of
//     this package.
//
// Packing removes the redundancy of the 16-bit symbol alphabet; compression
// removes the spatial redundancy left in the packed indices.
//
// # Backends
//
//	| Type   | Library                         | Levels | Default |
//	|--------|---------------------------------|--------|---------|
//	| None   | -                               | -      | -       |
//	| Zstd   | klauspost/compress/zstd, gozstd | 0..22  | 3       |
//	| S2     | klauspost/compress/s2           | 1..3   | 1       |
//	| LZ4    | pierrec/lz4/v4                  | 0..9   | 0       |
//	| Snappy | golang/snappy                   | -      | -       |
//	| Flate  | klauspost/compress/flate        | 0..9   | 6       |
//	| Zlib   | klauspost/compress/zlib         | 0..9   | 6       |
//	| Gzip   | klauspost/compress/gzip         | 0..9   | 6       |
//	| Brotli | andybalholm/brotli              | 0..11  | 6       |
//	| Bzip2  | dsnet/compress/bzip2            | 1..9   | 6       |
//
// Pass DefaultLevel to CreateCodec to select a backend's default. The level
// only affects compression; GetCodec returns a default-level codec that
// decompresses output of any level.
//
// Zstd is served by the pure Go klauspost implementation unless the module is
// built with the "gozstd" tag and cgo, which switches to the C library:
//
//	go build -tags gozstd ./...
//
// # Usage
//
//	codec, err := compress.CreateCodec(format.CompressionZstd, 9)
//	if err != nil {
//		return err
//	}
//	compressed, err := codec.Compress(payload)
//
// CompressInto writes into a caller-provided buffer and fails with
// errs.ErrInsufficientCapacity, without writing anything, when the result
// does not fit.
//
// # Thread Safety
//
// All codecs are safe for concurrent use. Encoders, decoders and writers are
// pooled internally.
package compress
