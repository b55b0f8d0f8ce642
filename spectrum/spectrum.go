// Package spectrum provides the mutable spectrum record for binned X-ray
// observations and the in-place operations that prepare it for fitting:
// channel grouping, regrouping, normalisation, channel dropping, and
// background subtraction.
//
// The package does not parse FITS files. An external loader populates a
// [Spectrum] with already-decoded arrays; every per-channel array has the
// same length at all times, and all operations here preserve that invariant.
package spectrum

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

var (
	ErrUnsupportedUnits = errors.New("spectrum: units must be counts or counts-per-second")
	ErrNotCounts        = errors.New("spectrum: operation requires counts units")
	ErrLengthMismatch   = errors.New("spectrum: per-channel arrays must have equal length")
	ErrInvalidExposure  = errors.New("spectrum: exposure time must be positive")
	ErrInvalidScale     = errors.New("spectrum: scale factors must be positive")
	ErrInvalidGrouping  = errors.New("spectrum: grouping flags must be 0 or 1")
)

// Units tags the physical interpretation of the data column.
type Units int

const (
	// Counts means data holds accumulated counts per channel.
	Counts Units = iota + 1
	// Rate means data holds counts per second per channel.
	Rate
)

// String returns the OGIP-style unit tag.
func (u Units) String() string {
	switch u {
	case Counts:
		return "counts"
	case Rate:
		return "counts/s"
	default:
		return fmt.Sprintf("units(%d)", int(u))
	}
}

// Statistic tags how the error column was derived.
type Statistic int

const (
	StatNumeric Statistic = iota + 1
	StatPoisson
	StatGaussian
	StatUnknown
)

// String returns the statistic tag name.
func (s Statistic) String() string {
	switch s {
	case StatNumeric:
		return "numeric"
	case StatPoisson:
		return "poisson"
	case StatGaussian:
		return "gaussian"
	case StatUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("statistic(%d)", int(s))
	}
}

// Diagnostic describes a degraded-but-successful outcome. An empty
// diagnostic means the operation completed without caveats.
type Diagnostic string

// Spectrum is one observation's binned data. All per-channel slices have
// equal length; Errors may be nil when the loader found no error column.
//
// Operations mutate the record in place. A Spectrum is owned by a single
// caller at a time; concurrent mutation of the same instance is not
// supported, but independent instances may be processed in parallel.
type Spectrum struct {
	Telescope  string
	Instrument string

	Channels []int
	Quality  []int // 0 = good, nonzero = bad or suspect
	Grouping []int // 1 = starts a new group, 0 = continues the previous one
	Data     []float64
	Errors   []float64 // nil when absent

	Units     Units
	Statistic Statistic

	Exposure        float64
	BackgroundScale float64
	AreaScale       float64
	SystematicError float64
}

// Len returns the current number of channels.
func (s *Spectrum) Len() int { return len(s.Data) }

// HasErrors reports whether an error column is present.
func (s *Spectrum) HasErrors() bool { return s.Errors != nil }

// Validate checks the record invariants: equal per-channel lengths, grouping
// flags in {0,1}, recognised units, and positive scale factors.
func (s *Spectrum) Validate() error {
	n := len(s.Data)
	if len(s.Channels) != n || len(s.Quality) != n || len(s.Grouping) != n {
		return fmt.Errorf("%w: channels=%d quality=%d grouping=%d data=%d",
			ErrLengthMismatch, len(s.Channels), len(s.Quality), len(s.Grouping), n)
	}
	if s.Errors != nil && len(s.Errors) != n {
		return fmt.Errorf("%w: errors=%d data=%d", ErrLengthMismatch, len(s.Errors), n)
	}
	for i, g := range s.Grouping {
		if g != 0 && g != 1 {
			return fmt.Errorf("%w: got %d at channel index %d", ErrInvalidGrouping, g, i)
		}
	}
	if s.Units != Counts && s.Units != Rate {
		return fmt.Errorf("%w: got %v", ErrUnsupportedUnits, s.Units)
	}
	if s.Exposure < 0 {
		return fmt.Errorf("%w: got %g", ErrInvalidExposure, s.Exposure)
	}
	if s.BackgroundScale <= 0 || s.AreaScale <= 0 {
		return fmt.Errorf("%w: background=%g area=%g", ErrInvalidScale, s.BackgroundScale, s.AreaScale)
	}
	return nil
}

// Counts returns a fresh copy of the data column converted to counts space.
// Rate data is multiplied by the exposure time; no truncation is applied.
func (s *Spectrum) Counts() ([]float64, error) {
	out := make([]float64, len(s.Data))
	switch s.Units {
	case Counts:
		copy(out, s.Data)
	case Rate:
		vecmath.ScaleBlock(out, s.Data, s.Exposure)
	default:
		return nil, fmt.Errorf("%w: got %v", ErrUnsupportedUnits, s.Units)
	}
	return out, nil
}

// PoissonError returns the standard shot-noise uncertainty on a count value,
// sqrt(counts) * scale.
func PoissonError(counts, scale float64) float64 {
	return math.Sqrt(counts) * scale
}

// DeriveErrors fills in the error column when the loader supplied none.
//
// A present error column is kept as-is. With a Poisson statistic the errors
// are derived from the counts. Anything else zero-fills the column, retags
// the statistic as unknown, and reports a non-empty [Diagnostic] so the
// caller can decide whether a degraded result is acceptable.
func (s *Spectrum) DeriveErrors() (Diagnostic, error) {
	if s.Errors != nil {
		return "", nil
	}

	switch s.Statistic {
	case StatPoisson:
		counts, err := s.Counts()
		if err != nil {
			return "", err
		}
		errs := make([]float64, len(counts))
		for i, c := range counts {
			e := PoissonError(math.Max(c, 0), 1.0)
			if s.Units == Rate {
				e /= s.Exposure
			}
			errs[i] = e
		}
		s.Errors = errs
		return "", nil
	default:
		s.Errors = make([]float64, len(s.Data))
		diag := Diagnostic(fmt.Sprintf("spectrum: no error column and %v statistics; errors zero-filled", s.Statistic))
		s.Statistic = StatUnknown
		return diag, nil
	}
}

// Normalize converts a counts spectrum to rate units by dividing data and
// errors by the exposure time. Calling it on a rate spectrum is a no-op.
func (s *Spectrum) Normalize() error {
	switch s.Units {
	case Rate:
		return nil
	case Counts:
		if s.Exposure <= 0 {
			return fmt.Errorf("%w: got %g", ErrInvalidExposure, s.Exposure)
		}
		inv := 1 / s.Exposure
		vecmath.ScaleBlockInPlace(s.Data, inv)
		if s.Errors != nil {
			vecmath.ScaleBlockInPlace(s.Errors, inv)
		}
		s.Units = Rate
		return nil
	default:
		return fmt.Errorf("%w: got %v", ErrUnsupportedUnits, s.Units)
	}
}

// DropChannels removes every channel whose mask entry is true, shrinking all
// per-channel arrays in place.
func (s *Spectrum) DropChannels(drop []bool) error {
	if len(drop) != len(s.Data) {
		return fmt.Errorf("%w: mask=%d data=%d", ErrLengthMismatch, len(drop), len(s.Data))
	}

	w := 0
	for i := range drop {
		if drop[i] {
			continue
		}
		s.Channels[w] = s.Channels[i]
		s.Quality[w] = s.Quality[i]
		s.Grouping[w] = s.Grouping[i]
		s.Data[w] = s.Data[i]
		if s.Errors != nil {
			s.Errors[w] = s.Errors[i]
		}
		w++
	}
	s.resize(w)
	return nil
}

// DropBadChannels removes every channel with a nonzero quality flag.
func (s *Spectrum) DropBadChannels() {
	drop := make([]bool, len(s.Quality))
	for i, q := range s.Quality {
		drop[i] = q != 0
	}
	// The mask always matches, so the error path is unreachable here.
	_ = s.DropChannels(drop)
}

// resize shrinks every per-channel slice to n elements.
func (s *Spectrum) resize(n int) {
	s.Channels = s.Channels[:n]
	s.Quality = s.Quality[:n]
	s.Grouping = s.Grouping[:n]
	s.Data = s.Data[:n]
	if s.Errors != nil {
		s.Errors = s.Errors[:n]
	}
}
