package config

import (
	"errors"
	"fmt"

	"github.com/qdm12/gosettings/reader"
	"github.com/qdm12/gotree"
)

// AWS holds the credentials settings. If no key is set,
// credentials are obtained through the AWS default chain,
// optionally using the Profile of the shared configuration.
type AWS struct {
	Profile      string
	AccessKey    string
	SecretKey    string
	SessionToken string
}

var (
	ErrAccessKeyEmpty = errors.New("access key is empty")
	ErrSecretKeyEmpty = errors.New("secret key is empty")
)

func (a AWS) Validate() (err error) {
	switch {
	case a.AccessKey == "" && a.SecretKey != "":
		return fmt.Errorf("%w: but secret key is set", ErrAccessKeyEmpty)
	case a.AccessKey != "" && a.SecretKey == "":
		return fmt.Errorf("%w: but access key is set", ErrSecretKeyEmpty)
	}
	return nil
}

func (a AWS) String() string {
	return a.toLinesNode().String()
}

func (a AWS) toLinesNode() *gotree.Node {
	node := gotree.New("AWS credentials")
	switch {
	case a.AccessKey != "":
		node.Appendf("Access key: %s", obfuscate(a.AccessKey))
		node.Appendf("Secret key: %s", obfuscate(a.SecretKey))
		if a.SessionToken != "" {
			node.Appendf("Session token: %s", obfuscate(a.SessionToken))
		}
	case a.Profile != "":
		node.Appendf("Profile: %s", a.Profile)
	default:
		node.Appendf("Source: default chain")
	}
	return node
}

func (a *AWS) read(reader *reader.Reader) {
	a.Profile = reader.String("AWS_PROFILE", readerCaseSensitive)
	a.AccessKey = reader.String("ROUTE53_ACCESS_KEY", readerCaseSensitive)
	a.SecretKey = reader.String("ROUTE53_SECRET_KEY", readerCaseSensitive)
	a.SessionToken = reader.String("ROUTE53_SESSION_TOKEN", readerCaseSensitive)
}

func obfuscate(s string) string {
	const visible = 2
	if len(s) <= 2*visible {
		return "[set]"
	}
	return s[:visible] + "..." + s[len(s)-visible:]
}
