package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/miekg/dns"
	"github.com/qdm12/gosettings"
	"github.com/qdm12/gosettings/reader"
	"github.com/qdm12/gotree"
)

type Record struct {
	// ZoneID is the Route 53 hosted zone identifier.
	ZoneID string
	Name   string
	TTL    *uint32
	// AlwaysUpdate updates the record without looking it up.
	AlwaysUpdate *bool
}

func (r *Record) setDefaults() {
	const defaultTTL = 300
	r.TTL = gosettings.DefaultPointer(r.TTL, defaultTTL)
	r.AlwaysUpdate = gosettings.DefaultPointer(r.AlwaysUpdate, false)
}

var (
	ErrZoneIDEmpty     = errors.New("hosted zone id is empty")
	ErrRecordNameEmpty = errors.New("record name is empty")
	ErrRecordNameBad   = errors.New("record name is not a valid domain name")
	ErrTTLOutOfRange   = errors.New("TTL is out of range")
)

func (r Record) Validate() (err error) {
	switch {
	case r.ZoneID == "":
		return fmt.Errorf("%w", ErrZoneIDEmpty)
	case r.Name == "":
		return fmt.Errorf("%w", ErrRecordNameEmpty)
	}

	_, ok := dns.IsDomainName(r.Name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrRecordNameBad, r.Name)
	}

	const minTTL, maxTTL = 1, math.MaxInt32
	if *r.TTL < minTTL || *r.TTL > maxTTL {
		return fmt.Errorf("%w: %d must be between %d and %d",
			ErrTTLOutOfRange, *r.TTL, minTTL, maxTTL)
	}

	return nil
}

func (r Record) String() string {
	return r.toLinesNode().String()
}

func (r Record) toLinesNode() *gotree.Node {
	node := gotree.New("Record")
	node.Appendf("Hosted zone id: %s", r.ZoneID)
	node.Appendf("Name: %s", r.Name)
	node.Appendf("TTL: %ds", *r.TTL)
	node.Appendf("Always update: %s", gosettings.BoolToYesNo(r.AlwaysUpdate))
	return node
}

func (r *Record) read(reader *reader.Reader, file fileSettings) (err error) {
	r.ZoneID = reader.String("HOSTED_ZONE_ID", readerCaseSensitive)
	r.Name = reader.String("RECORD_NAME")

	ttlString := reader.Get("RECORD_TTL")
	if ttlString != nil {
		ttl, err := strconv.ParseUint(*ttlString, 10, 32)
		if err != nil {
			return fmt.Errorf("environment variable RECORD_TTL: %w", err)
		}
		r.TTL = ptrTo(uint32(ttl))
	}

	r.AlwaysUpdate, err = reader.BoolPtr("ALWAYS_UPDATE_RECORD")
	if err != nil {
		return err
	}

	r.ZoneID = gosettings.DefaultComparable(r.ZoneID, derefOrZero(file.HostedZoneID))
	r.Name = gosettings.DefaultComparable(r.Name, derefOrZero(file.RecordName))
	r.TTL = defaultFromFile(r.TTL, file.TTL)
	r.AlwaysUpdate = defaultFromFile(r.AlwaysUpdate, file.AlwaysUpdateRecord)
	return nil
}
