package shoutrrr

import (
	"fmt"

	"github.com/containrrr/shoutrrr"
	"github.com/qdm12/gosettings"
)

type Erroer interface {
	Error(s string)
}

type Settings struct {
	// Addresses are shoutrrr service URLs. No address
	// makes the client a no-op.
	Addresses []string
	// DefaultTitle is the title of notifications for services
	// supporting a title and without one set in their address.
	DefaultTitle string
	Logger       Erroer
}

func (s *Settings) setDefaults() {
	s.Addresses = gosettings.DefaultSlice(s.Addresses, []string{})
	s.DefaultTitle = gosettings.DefaultComparable(s.DefaultTitle, "Route53 Updater")
	if s.Logger == nil {
		s.Logger = noopLogger{}
	}
}

func (s Settings) validate() (err error) {
	_, err = shoutrrr.CreateSender(s.Addresses...)
	if err != nil {
		return fmt.Errorf("shoutrrr addresses: %w", err)
	}
	return nil
}

type noopLogger struct{}

func (noopLogger) Error(string) {}
