package layout

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCommonLayout indicates no layout is supported by every
	// participant in a negotiation; the message names the offending types.
	ErrNoCommonLayout = errors.New("layout: no common layout support")
	// ErrUnsupportedLayout indicates an accessor was invoked for a layout
	// the participant never declared.
	ErrUnsupportedLayout = errors.New("layout: layout not supported")
)

// Layout tags the shape contract between a domain array and an objective
// array.
type Layout int

const (
	// OneToOne means domain and objective correspond index by index.
	OneToOne Layout = iota + 1
	// ContiguouslyBinned means the domain holds bin edges: it is one
	// element longer than the objective, and objective bin n spans
	// domain[n]..domain[n+1].
	ContiguouslyBinned
)

// String returns the layout tag name.
func (l Layout) String() string {
	switch l {
	case OneToOne:
		return "one-to-one"
	case ContiguouslyBinned:
		return "contiguously-binned"
	default:
		return fmt.Sprintf("layout(%d)", int(l))
	}
}

// preferred lists layouts in negotiation preference order.
var preferred = [...]Layout{ContiguouslyBinned, OneToOne}

// Supporter declares which layouts a participant can produce.
type Supporter interface {
	SupportedLayouts() []Layout
}

// Provider extends [Supporter] with the accessors that back each declared
// layout. Every returned slice is fresh: mutating it is never reflected in
// the underlying data.
type Provider interface {
	Supporter
	MakeDomain(Layout) ([]float64, error)
	MakeObjective(Layout) ([]float64, error)
	MakeObjectiveVariance(Layout) ([]float64, error)
	MakeDomainVariance(Layout) ([]float64, error)
}

// Supports reports whether p declares support for l.
func Supports(l Layout, p Supporter) bool {
	for _, s := range p.SupportedLayouts() {
		if s == l {
			return true
		}
	}
	return false
}

// Common returns the preferred layout both participants support.
func Common(a, b Supporter) (Layout, error) {
	for _, l := range preferred {
		if Supports(l, a) && Supports(l, b) {
			return l, nil
		}
	}
	return 0, fmt.Errorf("%w: %T and %T", ErrNoCommonLayout, a, b)
}

// CommonAll folds [Common] over any number of participants. The running
// choice is kept as long as each next participant supports it; otherwise the
// fold degrades to [OneToOne], and fails when even that is unsupported.
func CommonAll(first Supporter, rest ...Supporter) (Layout, error) {
	if len(rest) == 0 {
		for _, l := range preferred {
			if Supports(l, first) {
				return l, nil
			}
		}
		return 0, fmt.Errorf("%w: %T", ErrNoCommonLayout, first)
	}

	current, err := Common(first, rest[0])
	if err != nil {
		return 0, err
	}
	for _, p := range rest[1:] {
		switch {
		case Supports(current, p):
		case Supports(OneToOne, p):
			current = OneToOne
		default:
			return 0, fmt.Errorf("%w: %T", ErrNoCommonLayout, p)
		}
	}
	return current, nil
}
