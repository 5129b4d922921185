package models

import (
	"fmt"
	"net/netip"
)

// Record is the A record managed by the program.
// It is built once per run and never modified afterwards.
type Record struct {
	Name string
	TTL  uint32
	IP   netip.Addr
}

func (r Record) String() string {
	return fmt.Sprintf("%s A %s (ttl %ds)", r.Name, r.IP, r.TTL)
}
