// Package endian provides the byte order used by every voxpack encoding.
//
// All voxpack formats are little-endian regardless of the host byte order:
// palette symbols, packed index words, region sections and chunk frame
// headers. EndianEngine combines binary.ByteOrder and binary.AppendByteOrder
// so encoders can both patch fixed offsets and append to growing buffers:
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint16(buf, sym)
//	engine.PutUint32(buf[4:], payloadLen)
//
// All functions in this package are safe for concurrent use.
package endian

import (
	"encoding/binary"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// PutUint16s writes every value of src to dst as consecutive 2-byte words.
// dst must hold at least 2*len(src) bytes.
func PutUint16s(engine EndianEngine, dst []byte, src []uint16) {
	for i, v := range src {
		engine.PutUint16(dst[2*i:], v)
	}
}

// AppendUint16s appends every value of src to dst as 2-byte words.
func AppendUint16s(engine EndianEngine, dst []byte, src []uint16) []byte {
	for _, v := range src {
		dst = engine.AppendUint16(dst, v)
	}

	return dst
}

// Uint16s reads len(dst) consecutive 2-byte words from src.
// src must hold at least 2*len(dst) bytes.
func Uint16s(engine EndianEngine, dst []uint16, src []byte) {
	for i := range dst {
		dst[i] = engine.Uint16(src[2*i:])
	}
}
