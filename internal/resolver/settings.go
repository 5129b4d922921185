package resolver

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/qdm12/gosettings"
)

// Protocol is the transport carrying DNS queries.
type Protocol string

const (
	UDP Protocol = "udp"
	TCP Protocol = "tcp"
)

var ErrProtocolUnknown = errors.New("protocol is unknown")

// ParseProtocol parses s case insensitively.
func ParseProtocol(s string) (protocol Protocol, err error) {
	switch Protocol(strings.ToLower(s)) {
	case UDP:
		return UDP, nil
	case TCP:
		return TCP, nil
	default:
		return "", fmt.Errorf("%w: %q must be one of %s or %s",
			ErrProtocolUnknown, s, UDP, TCP)
	}
}

// Settings describe where and how to query for records.
type Settings struct {
	Host     string
	Port     uint16
	Protocol Protocol
	Timeout  time.Duration
}

func (s *Settings) SetDefaults() {
	s.Host = gosettings.DefaultComparable(s.Host, "1.1.1.1")
	const defaultPort = 53
	s.Port = gosettings.DefaultComparable(s.Port, defaultPort)
	s.Protocol = gosettings.DefaultComparable(s.Protocol, UDP)
	const defaultTimeout = 5 * time.Second
	s.Timeout = gosettings.DefaultComparable(s.Timeout, defaultTimeout)
}
