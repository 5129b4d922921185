package main

import (
	"errors"
	"net/netip"
	"testing"

	"github.com/qdm12/dynroute53/internal/update"
	"github.com/stretchr/testify/assert"
)

func Test_resultToMessage(t *testing.T) {
	t.Parallel()

	publicIP := netip.MustParseAddr("203.0.113.9")

	testCases := map[string]struct {
		result  update.Result
		message string
	}{
		"up to date": {
			result:  update.Result{PublicIP: publicIP, Verdict: update.UpToDate},
			message: "home.example.com is up to date with 203.0.113.9",
		},
		"updated": {
			result: update.Result{
				PublicIP: publicIP,
				Verdict:  update.NeedsUpdate,
				ChangeID: "C2682N5HXP0BZ4",
			},
			message: "home.example.com changed to 203.0.113.9 (change C2682N5HXP0BZ4)",
		},
		"updated without propagation confirmation": {
			result: update.Result{
				PublicIP:       publicIP,
				Verdict:        update.NeedsUpdate,
				ChangeID:       "C2682N5HXP0BZ4",
				PropagationErr: errors.New("change propagation timed out: after 5m0s"),
			},
			message: "home.example.com changed to 203.0.113.9 (change C2682N5HXP0BZ4): " +
				"change propagation timed out: after 5m0s",
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			message := resultToMessage("home.example.com", testCase.result)

			assert.Equal(t, testCase.message, message)
		})
	}
}
