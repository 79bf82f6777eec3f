package output

import "github.com/crimson-sun/newsdesk/internal/model"

// Verbosity controls how much of each record is exported.
type Verbosity int

const (
	Minimal  Verbosity = iota // canonical and derived fields only, no description
	Standard                  // everything except unrecognized input fields
	Full                      // retain everything
)

// ParseVerbosity maps "minimal", "standard" or "full" to a Verbosity.
// Unknown strings default to Standard.
func ParseVerbosity(s string) Verbosity {
	switch s {
	case "minimal":
		return Minimal
	case "full":
		return Full
	default:
		return Standard
	}
}

// FormatRecord returns a copy of the record with fields stripped according to verbosity.
// At Minimal: Description and Extra are dropped (Description encodes as null).
// At Standard: Extra is dropped. At Full: all fields preserved.
func FormatRecord(r model.Record, verbosity Verbosity) model.Record {
	switch verbosity {
	case Minimal:
		r.Description = nil
		r.Extra = nil
	case Standard:
		r.Extra = nil
	}
	return r
}
