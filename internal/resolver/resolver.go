// Package resolver queries a configured DNS server for the A records
// of a hostname, over UDP or TCP.
package resolver

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/miekg/dns"
)

//go:generate mockgen -destination=mock_$GOPACKAGE/$GOFILE . Querier

// Querier sends a DNS query and returns the response.
// Both the UDP and TCP clients implement it.
type Querier interface {
	Query(ctx context.Context, request *dns.Msg) (response *dns.Msg, err error)
	Close() (err error)
}

type Resolver struct {
	querier Querier
	address string
}

// New resolves the settings host and port to a socket address and
// returns a resolver querying it over the settings protocol.
// No query is sent by this function.
func New(settings Settings) (resolver *Resolver, err error) {
	settings.SetDefaults()

	address, err := resolveAddress(settings.Host, settings.Port, settings.Protocol)
	if err != nil {
		return nil, err
	}

	client := &dns.Client{
		Net:     string(settings.Protocol),
		Timeout: settings.Timeout,
	}

	var querier Querier
	switch settings.Protocol {
	case UDP:
		querier = newUDPClient(client, address)
	case TCP:
		querier = newTCPClient(client, address)
	default:
		return nil, fmt.Errorf("%w: %s", ErrProtocolUnknown, settings.Protocol)
	}

	return &Resolver{
		querier: querier,
		address: address,
	}, nil
}

func resolveAddress(host string, port uint16, protocol Protocol) (
	address string, err error) {
	if host == "" {
		return "", fmt.Errorf("%w: host is empty", ErrAddressInvalid)
	}
	hostPort := net.JoinHostPort(host, strconv.Itoa(int(port)))

	var resolved net.Addr
	switch protocol {
	case UDP:
		resolved, err = net.ResolveUDPAddr("udp", hostPort)
	case TCP:
		resolved, err = net.ResolveTCPAddr("tcp", hostPort)
	default:
		return "", fmt.Errorf("%w: %s", ErrProtocolUnknown, protocol)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAddressInvalid, err)
	}
	return resolved.String(), nil
}

// Close releases the underlying connection, if any.
func (r *Resolver) Close() (err error) {
	return r.querier.Close()
}

func (r *Resolver) String() string {
	return "resolver " + r.address
}
