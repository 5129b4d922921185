package update

import (
	"context"
	"net/netip"
	"time"

	"github.com/qdm12/dynroute53/internal/models"
)

//go:generate mockgen -destination=mock_$GOPACKAGE/$GOFILE . PublicIPFetcher,RecordLookuper,RecordStore,ShoutrrrClient,Logger

type PublicIPFetcher interface {
	IP4(ctx context.Context) (ip netip.Addr, err error)
}

type RecordLookuper interface {
	LookupA(ctx context.Context, hostname string) (ips []netip.Addr, err error)
	Close() (err error)
}

// LookuperFactory creates the DNS client used to look up the record.
// It is only called once the public IP address is discovered.
type LookuperFactory func() (lookuper RecordLookuper, err error)

type RecordStore interface {
	Upsert(ctx context.Context, record models.Record) (changeID string, err error)
	WaitForChange(ctx context.Context, changeID string, timeout time.Duration) (err error)
}

type ShoutrrrClient interface {
	Notify(message string)
}

type Logger interface {
	DebugLogger
	Info(s string)
	Warn(s string)
}
