package bitpack

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/arloliu/voxpack/errs"
	"github.com/arloliu/voxpack/format"
)

// WidthSet is a bitmask of allowed packing widths; bit w allows width w.
type WidthSet uint16

const (
	// BaselineWidths allows widths 4..8 only.
	BaselineWidths WidthSet = 1<<4 | 1<<5 | 1<<6 | 1<<7 | 1<<8
	// OptimizedWidths allows every width 0..8.
	OptimizedWidths WidthSet = 1<<(MaxWidth+1) - 1
)

// NewWidthSet builds a WidthSet from the given widths.
//
// Returns errs.ErrUnsupportedWidth for any width outside 0..8.
func NewWidthSet(widths ...int) (WidthSet, error) {
	var s WidthSet
	for _, w := range widths {
		if w < 0 || w > MaxWidth {
			return 0, fmt.Errorf("%w: %d", errs.ErrUnsupportedWidth, w)
		}
		s |= 1 << w
	}

	return s, nil
}

// Contains reports whether width is allowed.
func (s WidthSet) Contains(width int) bool {
	return width >= 0 && width <= MaxWidth && s&(1<<width) != 0
}

// Widths returns the allowed widths in ascending order.
func (s WidthSet) Widths() []int {
	out := make([]int, 0, bits.OnesCount16(uint16(s)))
	for w := 0; w <= MaxWidth; w++ {
		if s.Contains(w) {
			out = append(out, w)
		}
	}

	return out
}

func (s WidthSet) String() string {
	parts := make([]string, 0, MaxWidth+1)
	for _, w := range s.Widths() {
		parts = append(parts, fmt.Sprint(w))
	}

	return "{" + strings.Join(parts, ",") + "}"
}

// WidthSetForPolicy returns the width set of a packing policy.
func WidthSetForPolicy(policy format.Policy) (WidthSet, error) {
	switch policy {
	case format.PolicyBaseline:
		return BaselineWidths, nil
	case format.PolicyOptimized:
		return OptimizedWidths, nil
	default:
		return 0, fmt.Errorf("%w: %s", errs.ErrInvalidPolicy, policy)
	}
}

// Dispatcher selects a packing width for a palette size and runs the matching packer.
//
// The selected width is the smallest allowed width that is at least
// MinimalWidth(distinct). With BaselineWidths every palette of up to 16
// entries is packed at 4 bits; with OptimizedWidths the minimal width is used
// as is, and a single-entry palette packs to zero bytes.
//
// A Dispatcher is immutable and safe for concurrent use.
type Dispatcher struct {
	widths WidthSet
}

// NewDispatcher creates a dispatcher for a packing policy.
func NewDispatcher(policy format.Policy) (*Dispatcher, error) {
	widths, err := WidthSetForPolicy(policy)
	if err != nil {
		return nil, err
	}

	return &Dispatcher{widths: widths}, nil
}

// NewDispatcherWithWidths creates a dispatcher restricted to an explicit width set.
func NewDispatcherWithWidths(widths WidthSet) (*Dispatcher, error) {
	if widths&OptimizedWidths == 0 {
		return nil, errs.ErrEmptyWidthSet
	}

	return &Dispatcher{widths: widths & OptimizedWidths}, nil
}

// Widths returns the dispatcher's allowed widths.
func (d *Dispatcher) Widths() WidthSet {
	return d.widths
}

// SelectWidth returns the packing width for a palette of distinct entries.
//
// Returns errs.ErrUnsupportedWidth when more than 256 entries would be needed,
// or when no allowed width is wide enough.
func (d *Dispatcher) SelectWidth(distinct int) (int, error) {
	minimal, err := MinimalWidth(distinct)
	if err != nil {
		return 0, err
	}

	if minimal > MaxWidth {
		return 0, fmt.Errorf("%w: %d distinct values need %d bits", errs.ErrUnsupportedWidth, distinct, minimal)
	}

	for w := minimal; w <= MaxWidth; w++ {
		if d.widths.Contains(w) {
			return w, nil
		}
	}

	return 0, fmt.Errorf("%w: no width >= %d in %s", errs.ErrUnsupportedWidth, minimal, d.widths)
}

// PackedSize returns the number of bytes SelectAndPack writes for count
// indices of a palette with distinct entries.
func (d *Dispatcher) PackedSize(distinct, count int) (int, error) {
	width, err := d.SelectWidth(distinct)
	if err != nil {
		return 0, err
	}

	return PackedSize(width, count)
}

// SelectAndPack packs indices at the width selected for distinct and returns
// the number of bytes written to dst.
func (d *Dispatcher) SelectAndPack(distinct int, dst []byte, indices []uint16) (int, error) {
	width, err := d.SelectWidth(distinct)
	if err != nil {
		return 0, err
	}

	return packers[width](dst, indices)
}

// Unpack reverses SelectAndPack for len(dst) indices and returns the number
// of bytes consumed from src.
func (d *Dispatcher) Unpack(distinct int, dst []uint16, src []byte) (int, error) {
	width, err := d.SelectWidth(distinct)
	if err != nil {
		return 0, err
	}

	return unpackers[width](dst, src)
}
