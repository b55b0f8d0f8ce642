// Package layout negotiates the common data representation between datasets
// and models at fit setup time.
//
// A participant (a dataset, a model) declares the layouts it can produce via
// the [Supporter] capability interface. Negotiation picks the single layout
// every participant supports, preferring [ContiguouslyBinned] over
// [OneToOne], and fails when no shared layout exists. The [Provider]
// interface couples the capability declaration to the accessors that must
// back it, so a type cannot declare support without also implementing the
// corresponding domain and objective constructors.
package layout
