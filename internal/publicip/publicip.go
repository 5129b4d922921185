// Package publicip obtains the public IPv4 address of the machine
// from an HTTP echo service.
package publicip

import (
	"context"
	"net/http"
	"net/netip"
)

type Fetcher struct {
	client *http.Client
	url    string
}

// New returns a fetcher querying the given url, which must answer
// with the caller IPv4 address as plaintext body.
func New(client *http.Client, url string) *Fetcher {
	return &Fetcher{
		client: client,
		url:    url,
	}
}

func (f *Fetcher) IP4(ctx context.Context) (publicIP netip.Addr, err error) {
	return fetch(ctx, f.client, f.url)
}

func (f *Fetcher) String() string {
	return "public IP check " + f.url
}
