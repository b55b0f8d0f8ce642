package spectrum

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// SubtractBackground removes the exposure- and area-normalised background
// from the spectrum in place. Both spectra must be in counts units; the
// background is read-only.
//
// The data transform is
//
//	out = data/aD - (tD/tB) * (bD/bB) * back/aB
//
// with aD, aB the area scales, bD, bB the background scales and tD, tB the
// exposure times. Error propagation applies the same linear factors to the
// two variance arrays before summing and square-rooting; this understates
// the true propagated uncertainty and is kept for compatibility with the
// established treatment. The absolute value guards against negative-zero
// artifacts from the subtraction.
func (s *Spectrum) SubtractBackground(bkg *Spectrum) error {
	if s.Units != Counts {
		return fmt.Errorf("%w: source is %v", ErrNotCounts, s.Units)
	}
	if bkg.Units != Counts {
		return fmt.Errorf("%w: background is %v", ErrNotCounts, bkg.Units)
	}
	n := len(s.Data)
	if len(bkg.Data) != n {
		return fmt.Errorf("%w: source=%d background=%d", ErrLengthMismatch, n, len(bkg.Data))
	}

	srcFactor := 1 / s.AreaScale
	backFactor := (s.Exposure / bkg.Exposure) * (s.BackgroundScale / bkg.BackgroundScale) / bkg.AreaScale

	scaledBack := make([]float64, n)
	vecmath.ScaleBlock(scaledBack, bkg.Data, backFactor)
	vecmath.ScaleBlockInPlace(s.Data, srcFactor)
	for i := range s.Data {
		s.Data[i] -= scaledBack[i]
	}

	if s.Errors == nil && bkg.Errors == nil {
		return nil
	}

	srcVar := varianceScaled(s.Errors, srcFactor, n)
	backVar := varianceScaled(bkg.Errors, backFactor, n)
	if s.Errors == nil {
		s.Errors = make([]float64, n)
	}
	for i := range s.Errors {
		s.Errors[i] = math.Abs(math.Sqrt(srcVar[i] + backVar[i]))
	}
	return nil
}

// varianceScaled squares an error column into a variance array and applies
// the linear factor. A nil column contributes zero variance.
func varianceScaled(errs []float64, factor float64, n int) []float64 {
	out := make([]float64, n)
	if errs == nil {
		return out
	}
	vecmath.MulBlock(out, errs, errs)
	vecmath.ScaleBlockInPlace(out, factor)
	return out
}
