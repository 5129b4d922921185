package resolver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/netip"

	"github.com/miekg/dns"
)

// LookupA sends a single A record query of class IN for hostname
// and returns the addresses of the A answers, in answer order.
// Answers of other types, such as CNAME, are ignored.
// An empty slice is returned for a successful response without any A answer.
// Errors wrapping ErrResolution mean the hostname could not be resolved
// at all; any other error means the query or its response is faulty.
// Over UDP, a response with a mismatched id is discarded and the
// query ends in a timeout, which wraps ErrResolution.
func (r *Resolver) LookupA(ctx context.Context, hostname string) (
	addresses []netip.Addr, err error) {
	return lookupA(ctx, r.querier, hostname)
}

func lookupA(ctx context.Context, querier Querier, hostname string) (
	addresses []netip.Addr, err error) {
	if _, ok := dns.IsDomainName(hostname); !ok || hostname == "" {
		return nil, fmt.Errorf("%w: %q", ErrHostnameMalformed, hostname)
	}

	request := new(dns.Msg)
	request.SetQuestion(dns.Fqdn(hostname), dns.TypeA)

	response, err := querier.Query(ctx, request)
	if err != nil {
		return nil, classifyQueryError(ctx, hostname, err)
	}

	switch {
	case response.Id != request.Id:
		return nil, fmt.Errorf("%w: response id %d does not match query id %d",
			ErrResponseMalformed, response.Id, request.Id)
	case response.Rcode == dns.RcodeNameError:
		return nil, fmt.Errorf("%w: %s: %s", ErrResolution,
			hostname, dns.RcodeToString[response.Rcode])
	case response.Rcode != dns.RcodeSuccess:
		return nil, fmt.Errorf("%w: %s for %s", ErrResponseCode,
			rcodeToString(response.Rcode), hostname)
	}

	addresses = make([]netip.Addr, 0, len(response.Answer))
	for _, answer := range response.Answer {
		record, ok := answer.(*dns.A)
		if !ok {
			continue
		}
		address, ok := netip.AddrFromSlice(record.A)
		if !ok {
			return nil, fmt.Errorf("%w: A record answer has an invalid address %q",
				ErrResponseMalformed, record.A)
		}
		addresses = append(addresses, address.Unmap())
	}

	return addresses, nil
}

// classifyQueryError maps network and transport level errors to
// ErrResolution. Any other error, such as a response which cannot
// be unpacked, is treated as fatal.
func classifyQueryError(ctx context.Context, hostname string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("querying %s: %w", hostname, ctxErr)
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %s: %w", ErrResolution, hostname, err)
	}

	return fmt.Errorf("%w: querying %s: %w", ErrResponseMalformed, hostname, err)
}

func rcodeToString(rcode int) string {
	s, ok := dns.RcodeToString[rcode]
	if !ok {
		return fmt.Sprintf("RCODE%d", rcode)
	}
	return s
}
