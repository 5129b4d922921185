package update

import (
	"errors"
	"fmt"
	"net/netip"
	"testing"

	"github.com/qdm12/dynroute53/internal/resolver"
	"github.com/stretchr/testify/assert"
)

func Test_Decide(t *testing.T) {
	t.Parallel()

	discovered := netip.MustParseAddr("203.0.113.9")
	other := netip.MustParseAddr("198.51.100.1")
	errResolution := fmt.Errorf("%w: home.example.com: i/o timeout", resolver.ErrResolution)

	testCases := map[string]struct {
		resolved  []netip.Addr
		lookupErr error
		force     bool
		verdict   Verdict
	}{
		"record matches": {
			resolved: []netip.Addr{discovered},
			verdict:  UpToDate,
		},
		"record differs": {
			resolved: []netip.Addr{other},
			verdict:  NeedsUpdate,
		},
		"one of several records matches": {
			resolved: []netip.Addr{other, discovered},
			verdict:  UpToDate,
		},
		"empty record set": {
			resolved: []netip.Addr{},
			verdict:  NeedsUpdate,
		},
		"nil record set": {
			verdict: NeedsUpdate,
		},
		"resolution failure": {
			lookupErr: errResolution,
			verdict:   NeedsUpdate,
		},
		"resolution failure ignores stale addresses": {
			resolved:  []netip.Addr{discovered},
			lookupErr: errResolution,
			verdict:   NeedsUpdate,
		},
		"forced with matching record": {
			resolved: []netip.Addr{discovered},
			force:    true,
			verdict:  NeedsUpdate,
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			verdict := Decide(discovered, testCase.resolved,
				testCase.lookupErr, testCase.force)

			assert.Equal(t, testCase.verdict, verdict)
		})
	}
}

func Test_Decide_properties(t *testing.T) {
	t.Parallel()

	addresses := []netip.Addr{
		netip.MustParseAddr("0.0.0.0"),
		netip.MustParseAddr("10.0.0.1"),
		netip.MustParseAddr("198.51.100.1"),
		netip.MustParseAddr("203.0.113.9"),
		netip.MustParseAddr("255.255.255.255"),
	}
	resolvedSets := [][]netip.Addr{
		{},
		{addresses[1]},
		{addresses[3]},
		{addresses[2], addresses[3]},
		{addresses[0], addresses[1], addresses[4]},
		addresses,
	}
	errResolution := errors.Join(resolver.ErrResolution)

	for _, discovered := range addresses {
		for _, resolved := range resolvedSets {
			member := false
			for _, address := range resolved {
				member = member || address == discovered
			}

			verdict := Decide(discovered, resolved, nil, false)
			assert.Equal(t, member, verdict == UpToDate,
				"%s in %v", discovered, resolved)

			verdict = Decide(discovered, resolved, nil, true)
			assert.Equal(t, NeedsUpdate, verdict, "forced %s with %v", discovered, resolved)

			verdict = Decide(discovered, resolved, errResolution, false)
			assert.Equal(t, NeedsUpdate, verdict, "resolution failure for %s", discovered)
		}

		verdict := Decide(discovered, []netip.Addr{}, nil, false)
		assert.Equal(t, NeedsUpdate, verdict, "empty set for %s", discovered)
	}
}

func Test_Verdict_String(t *testing.T) {
	t.Parallel()

	var zero Verdict
	assert.Equal(t, Undecided, zero)
	assert.Equal(t, "undecided", zero.String())
	assert.Equal(t, "up to date", UpToDate.String())
	assert.Equal(t, "needs update", NeedsUpdate.String())
	assert.Equal(t, "unknown verdict", Verdict(9).String())
}
