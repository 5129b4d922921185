package update

import (
	"net/netip"
	"slices"
)

type Verdict uint8

const (
	// Undecided is the verdict of a pass which failed before deciding.
	Undecided Verdict = iota
	UpToDate
	NeedsUpdate
)

func (v Verdict) String() string {
	switch v {
	case Undecided:
		return "undecided"
	case UpToDate:
		return "up to date"
	case NeedsUpdate:
		return "needs update"
	default:
		return "unknown verdict"
	}
}

// Decide returns the verdict for the record given the discovered public
// address and the result of the record lookup. A non nil lookupErr must
// be a recoverable resolution failure, and counts as a stale record.
func Decide(discovered netip.Addr, resolved []netip.Addr,
	lookupErr error, force bool) Verdict {
	switch {
	case force,
		lookupErr != nil,
		len(resolved) == 0,
		!slices.Contains(resolved, discovered):
		return NeedsUpdate
	default:
		return UpToDate
	}
}
