package config

import "github.com/qdm12/gosettings/reader"

var readerCaseSensitive = reader.ForceLowercase(false) //nolint:gochecknoglobals

func ptrTo[T any](value T) *T { return &value }

func derefOrZero[T any](pointer *T) (value T) {
	if pointer != nil {
		value = *pointer
	}
	return value
}

// defaultFromFile returns existing if it is set, otherwise
// the value from the configuration file, which can be nil.
func defaultFromFile[T any](existing, fromFile *T) *T {
	if existing != nil {
		return existing
	}
	return fromFile
}
