package palette

import (
	"fmt"

	"github.com/arloliu/voxpack/errs"
)

// ScalarBuilder builds palettes with a linear membership scan.
//
// Runs of equal consecutive symbols are checked once. ScalarBuilder has no
// state and is safe for concurrent use.
type ScalarBuilder struct{}

var _ Builder = ScalarBuilder{}

// Build implements Builder.
func (ScalarBuilder) Build(data []uint16, p *Palette) error {
	p.Reset()

	return extend(data, p)
}

// extend appends the symbols of data missing from p, in order of first
// occurrence. Entries already in p are kept as they are.
func extend(data []uint16, p *Palette) error {
	for i, v := range data {
		if i > 0 && v == data[i-1] {
			continue
		}

		if p.Contains(v) {
			continue
		}

		if err := p.Append(v); err != nil {
			p.Reset()
			return fmt.Errorf("offset %d: %w", i, err)
		}
	}

	return nil
}

// ScalarPalettizer looks every symbol up with a linear palette scan.
type ScalarPalettizer struct{}

var _ Palettizer = ScalarPalettizer{}

// Apply implements Palettizer.
func (ScalarPalettizer) Apply(p *Palette, data []uint16, out []uint16) error {
	if err := checkCapacity(data, out); err != nil {
		return err
	}

	for i, v := range data {
		if i > 0 && v == data[i-1] {
			out[i] = out[i-1]
			continue
		}

		idx, ok := p.Index(v)
		if !ok {
			return fmt.Errorf("%w: symbol %#04x at offset %d", errs.ErrSymbolNotInPalette, v, i)
		}
		out[i] = uint16(idx)
	}

	return nil
}
