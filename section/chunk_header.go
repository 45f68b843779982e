package section

import (
	"fmt"
	"math/bits"

	"github.com/arloliu/voxpack/errs"
	"github.com/arloliu/voxpack/format"
)

// ChunkHeader is the fixed-size header at the start of a chunk frame.
type ChunkHeader struct {
	// Checksum is the xxHash64 of the uncompressed payload.
	Checksum uint64 // byte offset 8-15
	// PayloadSize is the size of the uncompressed payload in bytes.
	PayloadSize uint32 // byte offset 4-7
	// SectionMask marks the sections present in the chunk; their records
	// appear in the payload in ascending section order.
	SectionMask uint16 // byte offset 2-3
	// Policy is the packing policy of every record in the payload.
	Policy format.Policy // byte offset 1, high nibble
	// Compression is the compression type of the payload.
	Compression format.CompressionType // byte offset 1, low nibble
}

// SectionCount returns the number of sections present in the chunk.
func (h *ChunkHeader) SectionCount() int {
	return bits.OnesCount16(h.SectionMask)
}

// HasSection reports whether section i is present.
func (h *ChunkHeader) HasSection(i int) bool {
	return i >= 0 && i < SectionsPerChunk && h.SectionMask&(1<<i) != 0
}

// Validate checks the policy and compression fields.
func (h *ChunkHeader) Validate() error {
	if h.Policy != format.PolicyBaseline && h.Policy != format.PolicyOptimized {
		return fmt.Errorf("%w: %d", errs.ErrInvalidPolicy, h.Policy)
	}

	if h.Compression < format.CompressionNone || h.Compression > format.CompressionBzip2 {
		return fmt.Errorf("%w: %d", errs.ErrInvalidCompressionType, h.Compression)
	}

	if h.PayloadSize > MaxPayloadSize {
		return fmt.Errorf("%w: payload size %d exceeds %d", errs.ErrInvalidPayloadSize, h.PayloadSize, MaxPayloadSize)
	}

	return nil
}

// Parse parses the header from a byte slice.
//
// Returns errs.ErrTruncatedData if data is shorter than ChunkHeaderSize,
// errs.ErrInvalidChunkMagic for a wrong magic byte, or a Validate error.
func (h *ChunkHeader) Parse(data []byte) error {
	if len(data) < ChunkHeaderSize {
		return fmt.Errorf("%w: chunk header needs %d bytes, have %d", errs.ErrTruncatedData, ChunkHeaderSize, len(data))
	}

	if data[0] != ChunkMagic {
		return fmt.Errorf("%w: %#02x", errs.ErrInvalidChunkMagic, data[0])
	}

	h.Policy = format.Policy(data[1] >> 4)
	h.Compression = format.CompressionType(data[1] & 0x0F)
	h.SectionMask = engine.Uint16(data[2:4])
	h.PayloadSize = engine.Uint32(data[4:8])
	h.Checksum = engine.Uint64(data[8:16])

	return h.Validate()
}

// AppendTo appends the serialized header to dst.
func (h *ChunkHeader) AppendTo(dst []byte) []byte {
	dst = append(dst, ChunkMagic, byte(h.Policy)<<4|byte(h.Compression)&0x0F)
	dst = engine.AppendUint16(dst, h.SectionMask)
	dst = engine.AppendUint32(dst, h.PayloadSize)

	return engine.AppendUint64(dst, h.Checksum)
}

// Bytes serializes the header into a new byte slice.
func (h *ChunkHeader) Bytes() []byte {
	return h.AppendTo(make([]byte, 0, ChunkHeaderSize))
}

// ParseChunkHeader parses a ChunkHeader from the start of data.
func ParseChunkHeader(data []byte) (ChunkHeader, error) {
	h := ChunkHeader{}
	if err := h.Parse(data); err != nil {
		return ChunkHeader{}, err
	}

	return h, nil
}
