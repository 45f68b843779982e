package palette

import (
	"fmt"
	"math/bits"

	"github.com/ajroetker/go-highway/hwy"

	"github.com/arloliu/voxpack/errs"
)

const (
	// BuilderLaneCapacity is the number of entries the vectorized builder
	// keeps resident in vector registers before falling back to a scalar scan.
	BuilderLaneCapacity = 48

	// PalettizerLaneCapacity is the largest palette the vectorized
	// palettizer handles in vector registers; larger palettes are looked up
	// with the scalar scan.
	PalettizerLaneCapacity = 64
)

// laneBank holds up to capacity symbols spread over as many uint16 vectors
// as the current SIMD width needs.
//
// Lane occupancy is tracked in a bitmask per register instead of filling
// unused lanes with a marker value, so every uint16, 0xFFFF included, is a
// legal symbol. Lanes past the first 64 of a register are never occupied.
type laneBank struct {
	lanes    int
	regs     []hwy.Vec[uint16]
	occupied []uint64
	scratch  []uint16
	count    int
}

func newLaneBank(capacity int) laneBank {
	lanes := hwy.MaxLanes[uint16]()
	n := (capacity + lanes - 1) / lanes

	b := laneBank{
		lanes:    lanes,
		regs:     make([]hwy.Vec[uint16], n),
		occupied: make([]uint64, n),
		scratch:  make([]uint16, lanes),
	}
	b.reset()

	return b
}

func (b *laneBank) reset() {
	for r := range b.regs {
		b.regs[r] = hwy.Zero[uint16]()
		b.occupied[r] = 0
	}
	b.count = 0
}

// find returns the lowest occupied lane holding sym, counted across registers.
func (b *laneBank) find(sym uint16) (int, bool) {
	needle := hwy.Set(sym)
	for r, reg := range b.regs {
		occ := b.occupied[r]
		if occ == 0 {
			break
		}

		hits := hwy.BitsFromMask(hwy.Equal(reg, needle)) & occ
		if hits != 0 {
			return r*b.lanes + bits.TrailingZeros64(hits), true
		}
	}

	return 0, false
}

// push appends sym to the next free lane. The target register is stored to
// scratch, updated and reloaded.
func (b *laneBank) push(sym uint16) {
	r, k := b.count/b.lanes, b.count%b.lanes

	hwy.Store(b.regs[r], b.scratch)
	b.scratch[k] = sym
	b.regs[r] = hwy.Load(b.scratch)
	b.occupied[r] |= 1 << k
	b.count++
}

// fill loads syms into the bank, replacing its contents.
func (b *laneBank) fill(syms []uint16) {
	b.reset()
	for off := 0; off < len(syms); off += b.lanes {
		r := off / b.lanes
		part := syms[off:min(off+b.lanes, len(syms))]

		clear(b.scratch)
		copy(b.scratch, part)
		b.regs[r] = hwy.Load(b.scratch)
		b.occupied[r] = occupancy(len(part))
	}
	b.count = len(syms)
}

// drain appends the resident symbols to p in lane order.
func (b *laneBank) drain(p *Palette) {
	for r, reg := range b.regs {
		occ := b.occupied[r]
		if occ == 0 {
			break
		}

		hwy.Store(reg, b.scratch)
		for occ != 0 {
			k := bits.TrailingZeros64(occ)
			p.values[p.size] = b.scratch[k]
			p.size++
			occ &= occ - 1
		}
	}
}

func occupancy(n int) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}

	return 1<<n - 1
}

// VectorBuilder builds palettes with the first BuilderLaneCapacity entries
// resident in SIMD lanes.
//
// Each run of equal symbols is broadcast and compared against every occupied
// lane at once. When a block has more distinct symbols than the lanes hold,
// the resident entries are flushed to the palette in insertion order and the
// whole block is rescanned with the scalar algorithm seeded with them, so the
// result is always identical to ScalarBuilder's.
//
// A VectorBuilder is not safe for concurrent use.
type VectorBuilder struct {
	bank laneBank
}

var _ Builder = (*VectorBuilder)(nil)

// NewVectorBuilder creates a vectorized palette builder for the SIMD width
// selected at runtime.
func NewVectorBuilder() *VectorBuilder {
	return &VectorBuilder{bank: newLaneBank(BuilderLaneCapacity)}
}

// Build implements Builder.
func (b *VectorBuilder) Build(data []uint16, p *Palette) error {
	p.Reset()

	if complete := b.scan(data); !complete {
		b.bank.drain(p)
		return extend(data, p)
	}

	b.bank.drain(p)

	return nil
}

// scan fills the lane bank and reports false when data has more distinct
// symbols than the bank can hold.
func (b *VectorBuilder) scan(data []uint16) bool {
	b.bank.reset()

	for i, v := range data {
		if i > 0 && v == data[i-1] {
			continue
		}

		if _, ok := b.bank.find(v); ok {
			continue
		}

		if b.bank.count == BuilderLaneCapacity {
			return false
		}
		b.bank.push(v)
	}

	return true
}

// VectorPalettizer looks symbols up in palettes of up to
// PalettizerLaneCapacity entries held in SIMD lanes. The index of a symbol
// is its lowest matching lane plus the base of the register holding it.
// Larger palettes are handled by ScalarPalettizer.
//
// A VectorPalettizer is not safe for concurrent use.
type VectorPalettizer struct {
	bank laneBank
}

var _ Palettizer = (*VectorPalettizer)(nil)

// NewVectorPalettizer creates a vectorized palettizer for the SIMD width
// selected at runtime.
func NewVectorPalettizer() *VectorPalettizer {
	return &VectorPalettizer{bank: newLaneBank(PalettizerLaneCapacity)}
}

// Apply implements Palettizer.
func (v *VectorPalettizer) Apply(p *Palette, data []uint16, out []uint16) error {
	if p.Len() > PalettizerLaneCapacity {
		return ScalarPalettizer{}.Apply(p, data, out)
	}

	if err := checkCapacity(data, out); err != nil {
		return err
	}

	v.bank.fill(p.Values())

	for i, sym := range data {
		if i > 0 && sym == data[i-1] {
			out[i] = out[i-1]
			continue
		}

		idx, ok := v.bank.find(sym)
		if !ok {
			return fmt.Errorf("%w: symbol %#04x at offset %d", errs.ErrSymbolNotInPalette, sym, i)
		}
		out[i] = uint16(idx)
	}

	return nil
}
