package spectrum

import (
	"fmt"

	"github.com/cwbudde/algo-xspec/grouping"
)

// GroupMinCounts recomputes the grouping flags so each closed group holds at
// least min counts, converting rate data to counts via the exposure time.
// Only the grouping column is touched.
func (s *Spectrum) GroupMinCounts(min int) error {
	counts, err := s.Counts()
	if err != nil {
		return err
	}
	flags, err := grouping.MinCounts(counts, min)
	if err != nil {
		return err
	}
	s.Grouping = flags
	return nil
}

// GroupMinSNR recomputes the grouping flags so each closed group reaches the
// given signal-to-noise ratio. bkg may be nil; when present it must have the
// same channel count and is read-only. Source and background are converted
// to counts space independently, each via its own exposure time, and the
// area normalisation is the product of the background-scale and exposure
// ratios.
func (s *Spectrum) GroupMinSNR(min float64, bkg *Spectrum) error {
	src, err := s.Counts()
	if err != nil {
		return err
	}

	var back []float64
	areaNorm := 0.0
	if bkg != nil {
		back, err = bkg.Counts()
		if err != nil {
			return err
		}
		if len(back) != len(src) {
			return fmt.Errorf("%w: source=%d background=%d", ErrLengthMismatch, len(src), len(back))
		}
		areaNorm = (s.BackgroundScale / bkg.BackgroundScale) * (s.Exposure / bkg.Exposure)
	}

	flags, err := grouping.MinSNR(src, back, areaNorm, min)
	if err != nil {
		return err
	}
	s.Grouping = flags
	return nil
}
