// Package dataset binds a source spectrum to its optional background and
// response and exposes the result through the layout accessor contract used
// by fitting and plotting code.
package dataset

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-xspec/layout"
	"github.com/cwbudde/algo-xspec/response"
	"github.com/cwbudde/algo-xspec/spectrum"
)

var (
	ErrNilSpectrum     = errors.New("dataset: source spectrum is required")
	ErrNoBackground    = errors.New("dataset: no background attached")
	ErrChannelMismatch = errors.New("dataset: channel counts differ")
)

// Dataset is one observation ready for fitting: the source spectrum plus
// whatever companions the loader found next to it.
type Dataset struct {
	Name       string
	Source     *spectrum.Spectrum
	Background *spectrum.Spectrum // nil when absent
	Response   *response.Matrix   // nil when absent
}

// Option configures a Dataset during construction.
type Option func(*Dataset)

// WithBackground attaches a background spectrum.
func WithBackground(bkg *spectrum.Spectrum) Option {
	return func(d *Dataset) { d.Background = bkg }
}

// WithResponse attaches a response matrix.
func WithResponse(r *response.Matrix) Option {
	return func(d *Dataset) { d.Response = r }
}

// New builds a Dataset and validates that all attached parts agree on the
// channel count.
func New(name string, src *spectrum.Spectrum, opts ...Option) (*Dataset, error) {
	if src == nil {
		return nil, ErrNilSpectrum
	}
	d := &Dataset{Name: name, Source: src}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}

	if err := src.Validate(); err != nil {
		return nil, fmt.Errorf("dataset %q: %w", name, err)
	}
	if d.Background != nil {
		if err := d.Background.Validate(); err != nil {
			return nil, fmt.Errorf("dataset %q background: %w", name, err)
		}
		if d.Background.Len() != src.Len() {
			return nil, fmt.Errorf("%w: source=%d background=%d", ErrChannelMismatch, src.Len(), d.Background.Len())
		}
	}
	if d.Response != nil && d.Response.Channels() != src.Len() {
		return nil, fmt.Errorf("%w: source=%d response=%d", ErrChannelMismatch, src.Len(), d.Response.Channels())
	}
	return d, nil
}

// SupportedLayouts declares one-to-one always; contiguously-binned needs a
// response to supply channel energy bounds.
func (d *Dataset) SupportedLayouts() []layout.Layout {
	if d.Response != nil {
		return []layout.Layout{layout.ContiguouslyBinned, layout.OneToOne}
	}
	return []layout.Layout{layout.OneToOne}
}

// MakeDomain returns the fitting domain under the given layout: channel ids
// for one-to-one, channel energy edges for contiguously-binned.
func (d *Dataset) MakeDomain(l layout.Layout) ([]float64, error) {
	switch l {
	case layout.OneToOne:
		out := make([]float64, d.Source.Len())
		for i, c := range d.Source.Channels {
			out[i] = float64(c)
		}
		return out, nil
	case layout.ContiguouslyBinned:
		if d.Response == nil {
			return nil, fmt.Errorf("%w: %v needs a response", layout.ErrUnsupportedLayout, l)
		}
		return d.Response.ChannelEdges()
	default:
		return nil, fmt.Errorf("%w: %v", layout.ErrUnsupportedLayout, l)
	}
}

// MakeObjective returns a fresh copy of the data column. The objective lives
// in channel space under both layouts.
func (d *Dataset) MakeObjective(l layout.Layout) ([]float64, error) {
	if err := d.checkLayout(l); err != nil {
		return nil, err
	}
	out := make([]float64, d.Source.Len())
	copy(out, d.Source.Data)
	return out, nil
}

// MakeObjectiveVariance returns the squared error column, zero-filled when
// the spectrum carries no errors.
func (d *Dataset) MakeObjectiveVariance(l layout.Layout) ([]float64, error) {
	if err := d.checkLayout(l); err != nil {
		return nil, err
	}
	out := make([]float64, d.Source.Len())
	if d.Source.Errors != nil {
		vecmath.MulBlock(out, d.Source.Errors, d.Source.Errors)
	}
	return out, nil
}

// MakeDomainVariance returns a zero-filled array shaped like the domain;
// channel ids and energy edges carry no uncertainty here.
func (d *Dataset) MakeDomainVariance(l layout.Layout) ([]float64, error) {
	domain, err := d.MakeDomain(l)
	if err != nil {
		return nil, err
	}
	return make([]float64, len(domain)), nil
}

func (d *Dataset) checkLayout(l layout.Layout) error {
	if !layout.Supports(l, d) {
		return fmt.Errorf("%w: %v", layout.ErrUnsupportedLayout, l)
	}
	return nil
}

var _ layout.Provider = (*Dataset)(nil)
