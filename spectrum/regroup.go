package spectrum

import (
	"fmt"

	"github.com/cwbudde/algo-xspec/grouping"
)

// Regroup collapses the spectrum according to its own grouping flags.
func (s *Spectrum) Regroup() error {
	return s.RegroupWith(s.Grouping)
}

// RegroupWith collapses the spectrum's per-channel arrays according to the
// given flags, one output bin per group.
//
// Each output bin keeps the channel id of the group's first channel, the sum
// of the group's data, and the worst (maximum) quality flag in the group.
// When an error column is present the group error is recomputed from the
// summed value via the Poisson relation, always in counts space: rate data
// is converted to counts before the square root and back after. On return
// every per-channel array has length equal to the group count and the
// grouping column is all ones.
//
// An all-ones flag array is a no-op. Regrouping is not rollback-safe: on a
// units failure the record may be partially mutated and should be discarded.
func (s *Spectrum) RegroupWith(flags []int) error {
	n := len(s.Data)
	if len(flags) != n {
		return fmt.Errorf("%w: flags=%d data=%d", ErrLengthMismatch, len(flags), n)
	}
	if len(s.Channels) != n || len(s.Quality) != n || len(s.Grouping) != n {
		return fmt.Errorf("%w: channels=%d quality=%d grouping=%d data=%d",
			ErrLengthMismatch, len(s.Channels), len(s.Quality), len(s.Grouping), n)
	}
	if allOnes(flags) {
		return nil
	}
	if s.Errors != nil && s.Units != Counts && s.Units != Rate {
		return fmt.Errorf("%w: got %v", ErrUnsupportedUnits, s.Units)
	}

	// Each group writes at index Index-1, which never exceeds its own
	// Start-1, so collapsing in place cannot clobber unread channels.
	groups := 0
	for g := range grouping.Groups(flags) {
		k := g.Index - 1
		lo, hi := g.Start-1, g.End-1

		sum := 0.0
		worst := s.Quality[lo]
		for i := lo; i <= hi; i++ {
			sum += s.Data[i]
			if s.Quality[i] > worst {
				worst = s.Quality[i]
			}
		}

		s.Channels[k] = s.Channels[lo]
		s.Data[k] = sum
		s.Quality[k] = worst
		if s.Errors != nil {
			s.Errors[k] = s.groupError(sum)
		}
		groups = g.Index
	}

	s.resize(groups)
	for i := range s.Grouping {
		s.Grouping[i] = 1
	}
	return nil
}

// groupError recomputes a collapsed bin's uncertainty from its summed value.
// The Poisson relation applies to counts, so rate values round-trip through
// counts space via the exposure time.
func (s *Spectrum) groupError(value float64) float64 {
	if s.Units == Rate {
		return PoissonError(value*s.Exposure, 1.0) / s.Exposure
	}
	return PoissonError(value, 1.0)
}

func allOnes(flags []int) bool {
	for _, f := range flags {
		if f != 1 {
			return false
		}
	}
	return true
}
