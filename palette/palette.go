// Package palette maps blocks of 16-bit symbols to small index arrays.
//
// A Palette is the insertion-ordered set of distinct symbols of a block, in
// order of first occurrence. A Builder derives the palette of a block and a
// Palettizer replaces every symbol with its position in the palette, so that
// p.At(int(out[i])) == data[i] holds for every i.
//
// Both stages come in a scalar and a vectorized variant. The variants are
// interchangeable: for the same input they produce identical palettes and
// identical index arrays.
package palette

import (
	"fmt"

	"github.com/arloliu/voxpack/errs"
	"github.com/arloliu/voxpack/format"
)

// MaxSize is the maximum number of entries of a palette.
const MaxSize = 256

// Palette is an insertion-ordered set of at most MaxSize distinct symbols.
//
// The zero value is an empty palette ready for use. A Palette is a value type
// owned by its caller; builders reset it before filling it.
type Palette struct {
	values [MaxSize]uint16
	size   int
}

// Len returns the number of entries.
func (p *Palette) Len() int {
	return p.size
}

// Values returns the entries in insertion order. The slice aliases the
// palette and is only valid until the next modification.
func (p *Palette) Values() []uint16 {
	return p.values[:p.size]
}

// At returns the entry at index i.
func (p *Palette) At(i int) uint16 {
	return p.values[i]
}

// Index returns the position of sym, or false if the palette does not hold it.
func (p *Palette) Index(sym uint16) (int, bool) {
	for i, v := range p.values[:p.size] {
		if v == sym {
			return i, true
		}
	}

	return 0, false
}

// Contains reports whether sym is an entry of the palette.
func (p *Palette) Contains(sym uint16) bool {
	_, ok := p.Index(sym)
	return ok
}

// Append adds sym as the last entry without checking for duplicates.
//
// Returns errs.ErrPaletteOverflow when the palette is full.
func (p *Palette) Append(sym uint16) error {
	if p.size == MaxSize {
		return fmt.Errorf("%w: cannot add symbol %#04x", errs.ErrPaletteOverflow, sym)
	}

	p.values[p.size] = sym
	p.size++

	return nil
}

// Reset empties the palette.
func (p *Palette) Reset() {
	p.size = 0
}

// Builder derives the palette of a block.
type Builder interface {
	// Build resets p and fills it with the distinct symbols of data in order
	// of first occurrence. It returns errs.ErrPaletteOverflow, leaving p
	// empty, when data holds more than MaxSize distinct symbols.
	Build(data []uint16, p *Palette) error
}

// Palettizer maps symbols to palette indices.
type Palettizer interface {
	// Apply writes the palette index of data[i] to out[i] for every i.
	//
	// out must hold at least len(data) entries, otherwise
	// errs.ErrInsufficientCapacity is returned. A symbol that is not in p
	// returns errs.ErrSymbolNotInPalette.
	Apply(p *Palette, data []uint16, out []uint16) error
}

// NewBuilder returns the palette builder of a strategy.
//
// The vectorized builder keeps per-instance lane state, so the result must
// not be shared between goroutines.
func NewBuilder(strategy format.Strategy) (Builder, error) {
	switch strategy {
	case format.StrategyScalar:
		return ScalarBuilder{}, nil
	case format.StrategyVectorized:
		return NewVectorBuilder(), nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidStrategy, strategy)
	}
}

// NewPalettizer returns the palettizer of a strategy.
func NewPalettizer(strategy format.Strategy) (Palettizer, error) {
	switch strategy {
	case format.StrategyScalar:
		return ScalarPalettizer{}, nil
	case format.StrategyVectorized:
		return NewVectorPalettizer(), nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidStrategy, strategy)
	}
}

func checkCapacity(data, out []uint16) error {
	if len(out) < len(data) {
		return fmt.Errorf("%w: index array holds %d entries, need %d",
			errs.ErrInsufficientCapacity, len(out), len(data))
	}

	return nil
}
