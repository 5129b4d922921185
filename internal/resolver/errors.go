package resolver

import "errors"

var (
	// ErrAddressInvalid is returned when the resolver host and port
	// cannot be parsed or resolved to a socket address.
	ErrAddressInvalid = errors.New("resolver address is not valid")
	// ErrResolution is returned when the hostname cannot be resolved
	// at all, because of a transport error or a not found answer.
	// Callers may treat it as the record being absent.
	ErrResolution = errors.New("DNS resolution failed")
	// ErrHostnameMalformed is returned for hostnames which are not
	// valid domain names.
	ErrHostnameMalformed = errors.New("hostname is malformed")
	// ErrResponseMalformed is returned when the response cannot be
	// parsed or does not match the query sent.
	ErrResponseMalformed = errors.New("DNS response is malformed")
	// ErrResponseCode is returned for response codes other than
	// success or name error.
	ErrResponseCode = errors.New("DNS response code is not successful")
)
