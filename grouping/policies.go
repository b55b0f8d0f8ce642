package grouping

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-xspec/internal/numeric"
)

var (
	ErrInvalidThreshold = errors.New("grouping: threshold must be positive")
	ErrEmptyInput       = errors.New("grouping: input array is empty")
	ErrLengthMismatch   = errors.New("grouping: array lengths differ")
)

// MinCounts computes a grouping flag array so that each closed group holds at
// least minCounts counts.
//
// The input is in counts space; each channel's value is truncated to an
// integer before accumulation. A channel is marked 1 when the running sum
// reaches the threshold, which also resets the accumulator. There is no
// look-ahead: a trailing run whose sum never reaches the threshold is left
// marked 0 and survives as an under-threshold final group when the flags are
// applied.
func MinCounts(counts []float64, minCounts int) ([]int, error) {
	if minCounts <= 0 {
		return nil, fmt.Errorf("%w: min counts %d", ErrInvalidThreshold, minCounts)
	}
	if len(counts) == 0 {
		return nil, ErrEmptyInput
	}

	flags := make([]int, len(counts))
	sum := 0
	for i, c := range counts {
		sum += int(c)
		if sum >= minCounts {
			flags[i] = 1
			sum = 0
		}
	}
	return flags, nil
}

// MinSNR computes a grouping flag array so that each closed group reaches the
// given signal-to-noise ratio.
//
// src holds source counts; bkg, when non-nil, holds background counts of the
// same length and areaNorm is the source/background normalisation ratio
// (area scale times exposure). With no background the per-step ratio is
// S/sqrt(S); with a background it is (S - B*areaNorm) / sqrt(S + B*areaNorm²),
// where the radicand is clamped to zero to absorb floating-point
// cancellation. A negative signal is valid input: background-dominated runs
// simply never reach the threshold.
func MinSNR(src, bkg []float64, areaNorm, minSNR float64) ([]int, error) {
	if minSNR <= 0 {
		return nil, fmt.Errorf("%w: min signal-to-noise %g", ErrInvalidThreshold, minSNR)
	}
	if len(src) == 0 {
		return nil, ErrEmptyInput
	}
	if bkg != nil && len(bkg) != len(src) {
		return nil, fmt.Errorf("%w: source %d, background %d", ErrLengthMismatch, len(src), len(bkg))
	}

	flags := make([]int, len(src))
	var s, b float64
	for i := range src {
		s += src[i]

		var snr float64
		if bkg == nil {
			if s > 0 {
				snr = s / math.Sqrt(s)
			}
		} else {
			b += bkg[i]
			signal := s - b*areaNorm
			// Floating-point cancellation can push the radicand a hair
			// below zero.
			noiseSq := numeric.Clamp(s+b*areaNorm*areaNorm, 0, math.Inf(1))
			if noise := math.Sqrt(noiseSq); noise > 0 {
				snr = signal / noise
			}
		}

		if snr >= minSNR {
			flags[i] = 1
			s, b = 0, 0
		}
	}
	return flags, nil
}

// Collapse sums data over the groups encoded by flags and returns the
// collapsed array, one summed value per group. The total over the output
// equals the total over the input: grouping merges, it never discards.
func Collapse(data []float64, flags []int) ([]float64, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}
	if len(flags) != len(data) {
		return nil, fmt.Errorf("%w: data %d, flags %d", ErrLengthMismatch, len(data), len(flags))
	}

	out := make([]float64, 0, Count(flags))
	for g := range Groups(flags) {
		sum := 0.0
		for i := g.Start - 1; i < g.End; i++ {
			sum += data[i]
		}
		out = append(out, sum)
	}
	return out, nil
}
