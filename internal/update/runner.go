// Package update runs a single reconciliation pass of the managed
// A record against the current public IPv4 address.
package update

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"time"

	"github.com/qdm12/dynroute53/internal/models"
	"github.com/qdm12/dynroute53/internal/resolver"
)

type Settings struct {
	Hostname string
	TTL      uint32
	// Force updates the record without looking it up first.
	Force bool
	// WaitPropagation waits for the change to be in sync
	// on all the authoritative servers, up to PropagationTimeout.
	WaitPropagation    bool
	PropagationTimeout time.Duration
}

// Result is the outcome of a pass which did not fail.
type Result struct {
	PublicIP  netip.Addr
	RecordIPs []netip.Addr
	// LookupErr is the recovered resolution failure, if any.
	LookupErr error
	Verdict   Verdict
	// ChangeID is set only if an update was submitted.
	ChangeID string
	// PropagationErr is a propagation timeout or failure, which
	// does not fail the pass since the change was accepted.
	PropagationErr error
}

func (r Result) Updated() bool { return r.ChangeID != "" }

type Runner struct {
	settings    Settings
	ipGetter    PublicIPFetcher
	newLookuper LookuperFactory
	store       RecordStore
	shoutrrr    ShoutrrrClient
	logger      Logger
}

func NewRunner(settings Settings, ipGetter PublicIPFetcher,
	newLookuper LookuperFactory, store RecordStore,
	shoutrrr ShoutrrrClient, logger Logger) *Runner {
	return &Runner{
		settings:    settings,
		ipGetter:    ipGetter,
		newLookuper: newLookuper,
		store:       store,
		shoutrrr:    shoutrrr,
		logger:      logger,
	}
}

// Run discovers the public IPv4 address, looks up the record, and submits
// an upsert of the record if it does not contain the public address.
// The returned error names the stage which failed.
func (r *Runner) Run(ctx context.Context) (result Result, err error) {
	hostname := r.settings.Hostname

	result.PublicIP, err = r.ipGetter.IP4(ctx)
	if err != nil {
		return result, fmt.Errorf("discovering public IP address: %w", err)
	}
	r.logger.Debug("public IP address is " + result.PublicIP.String())

	if r.settings.Force {
		r.logger.Info("forcing update of " + hostname)
	} else {
		result.RecordIPs, result.LookupErr, err = r.lookup(ctx)
		if err != nil {
			return result, err
		}
	}

	result.Verdict = Decide(result.PublicIP, result.RecordIPs,
		result.LookupErr, r.settings.Force)
	if result.Verdict == UpToDate {
		r.logger.Info(fmt.Sprintf("record %s is up to date with %s",
			hostname, result.PublicIP))
		return result, nil
	}

	record := models.Record{
		Name: hostname,
		TTL:  r.settings.TTL,
		IP:   result.PublicIP,
	}
	r.logger.Info(fmt.Sprintf("updating record %s from %s",
		record, addressesToString(result.RecordIPs)))

	result.ChangeID, err = r.store.Upsert(ctx, record)
	if err != nil {
		return result, fmt.Errorf("submitting record update: %w", err)
	}
	r.logger.Info("record update submitted with change id " + result.ChangeID)
	r.shoutrrr.Notify(fmt.Sprintf("%s changed to %s", hostname, result.PublicIP))

	if !r.settings.WaitPropagation {
		return result, nil
	}

	r.logger.Info(fmt.Sprintf("waiting up to %s for change %s to propagate",
		r.settings.PropagationTimeout, result.ChangeID))
	err = r.store.WaitForChange(ctx, result.ChangeID, r.settings.PropagationTimeout)
	switch {
	case errors.Is(err, context.Canceled):
		return result, fmt.Errorf("waiting for record propagation: %w", err)
	case err != nil:
		result.PropagationErr = err
		message := fmt.Sprintf("%s changed to %s but propagation is unconfirmed: %s",
			hostname, result.PublicIP, err)
		r.logger.Warn(message)
		r.shoutrrr.Notify(message)
		return result, nil
	}
	r.logger.Info("change " + result.ChangeID + " propagated")

	return result, nil
}

// lookup creates the DNS client and looks up the record with it.
// A resolution failure is returned as lookupErr, and any other
// failure as err.
func (r *Runner) lookup(ctx context.Context) (
	addresses []netip.Addr, lookupErr, err error) {
	hostname := r.settings.Hostname

	lookuper, err := r.newLookuper()
	if err != nil {
		return nil, nil, fmt.Errorf("creating DNS lookup client: %w", err)
	}
	defer func() {
		closeErr := lookuper.Close()
		if closeErr != nil {
			r.logger.Warn("closing DNS lookup client: " + closeErr.Error())
		}
	}()

	addresses, err = lookuper.LookupA(ctx, hostname)
	switch {
	case errors.Is(err, resolver.ErrResolution):
		r.logger.Warn(err.Error() + ", assuming the record is stale")
		return nil, err, nil
	case err != nil:
		return nil, nil, fmt.Errorf("looking up current record: %w", err)
	}

	r.logger.Debug(fmt.Sprintf("%s resolves to %s",
		hostname, addressesToString(addresses)))
	return addresses, nil, nil
}

func addressesToString(addresses []netip.Addr) string {
	if len(addresses) == 0 {
		return "no address"
	}
	return fmt.Sprint(addresses)
}
