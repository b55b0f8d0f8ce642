// Package grouping implements channel-grouping policies and the group
// iterator used to rebin X-ray spectra.
//
// A grouping flag array marks, per channel, whether that channel starts a new
// group (1) or continues the previous one (0). Policies compute flag arrays
// from statistical thresholds; [Groups] turns a flag array into a lazy
// sequence of contiguous group boundaries; [Collapse] reduces a raw data
// array over those boundaries.
//
// The package operates on plain counts-space arrays and knows nothing about
// units or exposure times. Unit-aware entry points live in the spectrum
// package.
package grouping
