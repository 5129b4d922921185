package config

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/qdm12/gosettings"
	"github.com/qdm12/gosettings/reader"
	"github.com/qdm12/gotree"
)

type PubIP struct {
	// CheckURL is the HTTP(S) endpoint responding
	// with the public IPv4 address in its body.
	CheckURL string
}

func (p *PubIP) setDefaults() {
	p.CheckURL = gosettings.DefaultComparable(p.CheckURL, "https://checkip.amazonaws.com")
}

var ErrCheckURLNotValid = errors.New("IP check URL is not valid")

func (p PubIP) Validate() (err error) {
	u, err := url.Parse(p.CheckURL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCheckURLNotValid, err)
	}

	switch {
	case u.Scheme != "http" && u.Scheme != "https":
		return fmt.Errorf("%w: scheme %q must be http or https", ErrCheckURLNotValid, u.Scheme)
	case u.Host == "":
		return fmt.Errorf("%w: host is empty in %q", ErrCheckURLNotValid, p.CheckURL)
	}

	return nil
}

func (p PubIP) String() string {
	return p.toLinesNode().String()
}

func (p PubIP) toLinesNode() *gotree.Node {
	node := gotree.New("Public IP fetching")
	node.Appendf("Check URL: %s", p.CheckURL)
	return node
}

func (p *PubIP) read(reader *reader.Reader, file fileSettings, warner Warner) {
	p.CheckURL = reader.String("IP_CHECK_URL", readerCaseSensitive)
	p.CheckURL = gosettings.DefaultComparable(p.CheckURL, derefOrZero(file.IPCheck))

	u, err := url.Parse(p.CheckURL)
	if err == nil && u.Scheme == "http" {
		warner.Warnf("IP check URL %s uses plain HTTP, "+
			"its response could be tampered with to change your record", p.CheckURL)
	}
}
