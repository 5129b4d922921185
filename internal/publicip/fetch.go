package publicip

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/netip"
	"strings"
)

var (
	ErrUnreachable      = errors.New("public IP check is unreachable")
	ErrAddressMalformed = errors.New("public IP address is malformed")
)

// maxBodySize bounds the response body read, an echo
// service answer being a few bytes long only.
const maxBodySize = 1024

func fetch(ctx context.Context, client *http.Client, url string) (
	publicIP netip.Addr, err error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return publicIP, fmt.Errorf("%w: creating request: %w", ErrUnreachable, err)
	}

	response, err := client.Do(request)
	if err != nil {
		return publicIP, fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	defer response.Body.Close()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return publicIP, fmt.Errorf("%w: bad HTTP status %d %s from %q",
			ErrUnreachable, response.StatusCode, http.StatusText(response.StatusCode), url)
	}

	b, err := io.ReadAll(io.LimitReader(response.Body, maxBodySize))
	if err != nil {
		return publicIP, fmt.Errorf("%w: reading response body: %w", ErrUnreachable, err)
	}

	err = response.Body.Close()
	if err != nil {
		return publicIP, fmt.Errorf("%w: closing response body: %w", ErrUnreachable, err)
	}

	return parseIPv4(string(b))
}

func parseIPv4(body string) (ip netip.Addr, err error) {
	s := strings.TrimSpace(body)
	ip, err = netip.ParseAddr(s)
	switch {
	case err != nil:
		return netip.Addr{}, fmt.Errorf("%w: %w", ErrAddressMalformed, err)
	case !ip.Is4():
		return netip.Addr{}, fmt.Errorf("%w: %s is not an IPv4 address", ErrAddressMalformed, s)
	}
	return ip, nil
}
