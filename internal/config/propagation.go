package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/qdm12/gosettings"
	"github.com/qdm12/gosettings/reader"
	"github.com/qdm12/gotree"
)

type Propagation struct {
	// Wait waits for the record change to be in sync
	// on all the Route 53 authoritative servers.
	Wait       *bool
	Timeout    time.Duration
	PollPeriod time.Duration
}

func (p *Propagation) setDefaults() {
	p.Wait = gosettings.DefaultPointer(p.Wait, false)
	const defaultTimeout = 300 * time.Second
	p.Timeout = gosettings.DefaultComparable(p.Timeout, defaultTimeout)
	const defaultPollPeriod = 10 * time.Second
	p.PollPeriod = gosettings.DefaultComparable(p.PollPeriod, defaultPollPeriod)
}

var ErrDurationNotPositive = errors.New("duration must be positive")

func (p Propagation) Validate() (err error) {
	switch {
	case p.Timeout <= 0:
		return fmt.Errorf("timeout: %w: %s", ErrDurationNotPositive, p.Timeout)
	case p.PollPeriod <= 0:
		return fmt.Errorf("poll period: %w: %s", ErrDurationNotPositive, p.PollPeriod)
	}
	return nil
}

func (p Propagation) String() string {
	return p.toLinesNode().String()
}

func (p Propagation) toLinesNode() *gotree.Node {
	if !*p.Wait {
		return gotree.New("Propagation wait: disabled")
	}
	node := gotree.New("Propagation wait")
	node.Appendf("Timeout: %s", p.Timeout)
	node.Appendf("Poll period: %s", p.PollPeriod)
	return node
}

func (p *Propagation) read(reader *reader.Reader, file fileSettings) (err error) {
	p.Wait, err = reader.BoolPtr("PROPAGATION_WAIT")
	if err != nil {
		return err
	}

	p.Timeout, err = reader.Duration("PROPAGATION_TIMEOUT")
	if err != nil {
		return err
	}

	p.PollPeriod, err = reader.Duration("PROPAGATION_POLL_PERIOD")
	if err != nil {
		return err
	}

	if file.Propagation == nil {
		return nil
	}
	fileWait := file.Propagation
	p.Wait = defaultFromFile(p.Wait, fileWait.Wait)
	p.Timeout = gosettings.DefaultComparable(p.Timeout,
		derefOrZero(fileWait.Timeout.durationPtr()))
	p.PollPeriod = gosettings.DefaultComparable(p.PollPeriod,
		derefOrZero(fileWait.PollPeriod.durationPtr()))
	return nil
}
