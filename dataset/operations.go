package dataset

import "github.com/cwbudde/algo-xspec/grouping"

// SubtractBackground removes the attached background from the source
// spectrum and detaches it. The source keeps the partially mutated state if
// the underlying subtraction fails, matching the not-rollback-safe contract
// of the spectrum operations.
func (d *Dataset) SubtractBackground() error {
	if d.Background == nil {
		return ErrNoBackground
	}
	if err := d.Source.SubtractBackground(d.Background); err != nil {
		return err
	}
	d.Background = nil
	return nil
}

// GroupMinCounts recomputes the source grouping flags for a minimum-counts
// threshold.
func (d *Dataset) GroupMinCounts(min int) error {
	return d.Source.GroupMinCounts(min)
}

// GroupMinSNR recomputes the source grouping flags for a signal-to-noise
// threshold, using the attached background when present.
func (d *Dataset) GroupMinSNR(min float64) error {
	return d.Source.GroupMinSNR(min, d.Background)
}

// Regroup collapses the source spectrum by its grouping flags and applies
// the same flags to the attached background and response so all parts stay
// channel-aligned.
func (d *Dataset) Regroup() error {
	// The source regroup rewrites its grouping column to all ones, so the
	// companions need the flags captured up front.
	flags := append([]int(nil), d.Source.Grouping...)

	if err := d.Source.Regroup(); err != nil {
		return err
	}
	if d.Background != nil {
		if err := d.Background.RegroupWith(flags); err != nil {
			return err
		}
	}
	// A flag array of all singleton groups leaves the partition unchanged;
	// skip rebuilding the response in that case.
	if d.Response != nil && grouping.Count(flags) != len(flags) {
		regrouped, err := d.Response.RegroupChannels(flags)
		if err != nil {
			return err
		}
		d.Response = regrouped
	}
	return nil
}
