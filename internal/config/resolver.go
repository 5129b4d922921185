package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/qdm12/dynroute53/internal/resolver"
	"github.com/qdm12/gosettings"
	"github.com/qdm12/gosettings/reader"
	"github.com/qdm12/gotree"
)

type Resolver struct {
	Host     string
	Port     *uint16
	Protocol string
	Timeout  time.Duration
}

func (r *Resolver) setDefaults() {
	r.Host = gosettings.DefaultComparable(r.Host, "1.1.1.1")
	const defaultPort = 53
	r.Port = gosettings.DefaultPointer(r.Port, defaultPort)
	r.Protocol = gosettings.DefaultComparable(r.Protocol, string(resolver.UDP))
	const defaultTimeout = 5 * time.Second
	r.Timeout = gosettings.DefaultComparable(r.Timeout, defaultTimeout)
}

var (
	ErrPortZero      = errors.New("port cannot be zero")
	ErrTimeoutTooLow = errors.New("timeout is too low")
)

func (r Resolver) Validate() (err error) {
	if *r.Port == 0 {
		return fmt.Errorf("%w", ErrPortZero)
	}

	_, err = resolver.ParseProtocol(r.Protocol)
	if err != nil {
		return err
	}

	const minTimeout = 10 * time.Millisecond
	if r.Timeout < minTimeout {
		return fmt.Errorf("%w: %s is below the minimum %s",
			ErrTimeoutTooLow, r.Timeout, minTimeout)
	}

	return nil
}

func (r Resolver) String() string {
	return r.toLinesNode().String()
}

func (r Resolver) toLinesNode() *gotree.Node {
	node := gotree.New("Resolver")
	node.Appendf("Host: %s", r.Host)
	node.Appendf("Port: %d", *r.Port)
	node.Appendf("Protocol: %s", r.Protocol)
	node.Appendf("Timeout: %s", r.Timeout)
	return node
}

// ToResolverSettings must be called on validated settings.
func (r Resolver) ToResolverSettings() resolver.Settings {
	protocol, _ := resolver.ParseProtocol(r.Protocol)
	return resolver.Settings{
		Host:     r.Host,
		Port:     *r.Port,
		Protocol: protocol,
		Timeout:  r.Timeout,
	}
}

func (r *Resolver) read(reader *reader.Reader, file fileSettings) (err error) {
	r.Host = reader.String("RESOLVER_HOST")
	r.Port, err = reader.Uint16Ptr("RESOLVER_PORT")
	if err != nil {
		return err
	}
	r.Protocol = reader.String("RESOLVER_PROTOCOL")
	r.Timeout, err = reader.Duration("RESOLVER_TIMEOUT")
	if err != nil {
		return err
	}

	if file.DNSServer == nil {
		return nil
	}
	fileServer := file.DNSServer
	r.Host = gosettings.DefaultComparable(r.Host, derefOrZero(fileServer.Host))
	r.Port = defaultFromFile(r.Port, fileServer.Port)
	r.Protocol = gosettings.DefaultComparable(r.Protocol, derefOrZero(fileServer.Protocol))
	r.Timeout = gosettings.DefaultComparable(r.Timeout,
		derefOrZero(fileServer.Timeout.durationPtr()))
	return nil
}
