package spectrum

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-xspec/grouping"
	"github.com/cwbudde/algo-xspec/internal/testutil"
)

func TestGroupMinCountsCounts(t *testing.T) {
	s := countsSpectrum([]float64{5, 5, 5, 5})
	before := append([]float64(nil), s.Data...)

	if err := s.GroupMinCounts(10); err != nil {
		t.Fatalf("GroupMinCounts error: %v", err)
	}
	testutil.RequireIntSliceEqual(t, s.Grouping, []int{0, 1, 0, 1})
	// Only the grouping column moves.
	testutil.RequireSliceNearlyEqual(t, s.Data, before, 0)
}

func TestGroupMinCountsRate(t *testing.T) {
	// 0.05 counts/s over 100 s = 5 equivalent counts per channel.
	s := rateSpectrum([]float64{0.05, 0.05, 0.05, 0.05}, 100)

	if err := s.GroupMinCounts(10); err != nil {
		t.Fatalf("GroupMinCounts error: %v", err)
	}
	testutil.RequireIntSliceEqual(t, s.Grouping, []int{0, 1, 0, 1})
}

func TestGroupMinCountsThreshold(t *testing.T) {
	s := countsSpectrum([]float64{1, 2})
	if err := s.GroupMinCounts(0); !errors.Is(err, grouping.ErrInvalidThreshold) {
		t.Fatalf("got err=%v, want ErrInvalidThreshold", err)
	}
}

func TestGroupMinCountsUnsupportedUnits(t *testing.T) {
	s := countsSpectrum([]float64{1, 2})
	s.Units = Units(3)
	if err := s.GroupMinCounts(5); !errors.Is(err, ErrUnsupportedUnits) {
		t.Fatalf("got err=%v, want ErrUnsupportedUnits", err)
	}
}

func TestGroupMinSNRNoBackground(t *testing.T) {
	s := countsSpectrum([]float64{100, 100, 100, 25, 25, 25, 25, 9, 9, 9})

	if err := s.GroupMinSNR(8.0, nil); err != nil {
		t.Fatalf("GroupMinSNR error: %v", err)
	}
	testutil.RequireIntSliceEqual(t, s.Grouping, []int{1, 1, 1, 0, 0, 1, 0, 0, 0, 0})
}

func TestGroupMinSNRWithBackground(t *testing.T) {
	s := countsSpectrum([]float64{100, 100, 100, 25, 25, 25, 25, 9, 9, 9})
	bkg := countsSpectrum([]float64{10, 10, 10, 5, 5, 5, 5, 2, 2, 2})
	bkgBefore := append([]float64(nil), bkg.Data...)

	if err := s.GroupMinSNR(5.0, bkg); err != nil {
		t.Fatalf("GroupMinSNR error: %v", err)
	}
	// (100-10)/sqrt(110) = 8.58: each of the first three channels closes
	// its own group.
	testutil.RequireIntSliceEqual(t, s.Grouping[:3], []int{1, 1, 1})
	// The background is read-only.
	testutil.RequireSliceNearlyEqual(t, bkg.Data, bkgBefore, 0)
	testutil.RequireIntSliceEqual(t, bkg.Grouping, testutil.IntConstant(1, 10))
}

func TestGroupMinSNRMixedUnits(t *testing.T) {
	// Source in counts, background in rate: each converts independently.
	s := countsSpectrum([]float64{100, 100})
	bkg := rateSpectrum([]float64{0.1, 0.1}, 100) // 10 equivalent counts

	if err := s.GroupMinSNR(5.0, bkg); err != nil {
		t.Fatalf("GroupMinSNR error: %v", err)
	}
	testutil.RequireIntSliceEqual(t, s.Grouping, []int{1, 1})
}

func TestGroupMinSNRLengthMismatch(t *testing.T) {
	s := countsSpectrum([]float64{1, 2, 3})
	bkg := countsSpectrum([]float64{1, 2})
	if err := s.GroupMinSNR(3.0, bkg); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("got err=%v, want ErrLengthMismatch", err)
	}
}

func TestGroupMinSNRBackgroundBadUnits(t *testing.T) {
	s := countsSpectrum([]float64{1, 2})
	bkg := countsSpectrum([]float64{1, 2})
	bkg.Units = Units(9)
	if err := s.GroupMinSNR(3.0, bkg); !errors.Is(err, ErrUnsupportedUnits) {
		t.Fatalf("got err=%v, want ErrUnsupportedUnits", err)
	}
}
