// Package config reads, defaults and validates the program settings
// from flags, environment variables and an optional configuration file.
package config

import (
	"fmt"

	"github.com/qdm12/gosettings/reader"
	"github.com/qdm12/gotree"
)

type Warner interface {
	Warnf(format string, a ...interface{})
}

type Config struct {
	Record      Record
	PubIP       PubIP
	Resolver    Resolver
	Propagation Propagation
	AWS         AWS
	Client      Client
	Health      Health
	Metrics     Metrics
	Logger      Logger
	Shoutrrr    Shoutrrr
	// File is the configuration file path read, if any.
	File string
}

func (c *Config) SetDefaults() {
	c.Record.setDefaults()
	c.PubIP.setDefaults()
	c.Resolver.setDefaults()
	c.Propagation.setDefaults()
	c.Client.setDefaults()
	c.Health.setDefaults()
	c.Metrics.setDefaults()
	c.Logger.setDefaults()
	c.Shoutrrr.setDefaults()
}

func (c Config) Validate() (err error) {
	type validator interface {
		Validate() (err error)
	}
	toValidate := []struct {
		name      string
		validator validator
	}{
		{"record", c.Record},
		{"public ip", c.PubIP},
		{"resolver", c.Resolver},
		{"propagation", c.Propagation},
		{"AWS", c.AWS},
		{"client", c.Client},
		{"health", c.Health},
		{"metrics", c.Metrics},
		{"logger", c.Logger},
		{"shoutrrr", c.Shoutrrr},
	}

	for _, v := range toValidate {
		err = v.validator.Validate()
		if err != nil {
			return fmt.Errorf("%s settings: %w", v.name, err)
		}
	}

	return nil
}

func (c Config) String() string {
	return c.toLinesNode().String()
}

func (c Config) toLinesNode() *gotree.Node {
	node := gotree.New("Settings summary:")
	if c.File != "" {
		node.Appendf("Configuration file: %s", c.File)
	}
	node.AppendNode(c.Record.toLinesNode())
	node.AppendNode(c.PubIP.toLinesNode())
	node.AppendNode(c.Resolver.toLinesNode())
	node.AppendNode(c.Propagation.toLinesNode())
	node.AppendNode(c.AWS.toLinesNode())
	node.AppendNode(c.Client.toLinesNode())
	node.AppendNode(c.Health.toLinesNode())
	node.AppendNode(c.Metrics.toLinesNode())
	node.AppendNode(c.Logger.toLinesNode())
	node.AppendNode(c.Shoutrrr.toLinesNode())
	return node
}

// Read reads the settings from the reader sources, and then from
// the configuration file given by CONFIG_FILE for unset settings.
func (c *Config) Read(reader *reader.Reader, warner Warner) (err error) {
	c.File = reader.String("CONFIG_FILE", readerCaseSensitive)
	var file fileSettings
	if c.File != "" {
		file, err = readFile(c.File)
		if err != nil {
			return fmt.Errorf("reading configuration file: %w", err)
		}
	}

	err = c.Record.read(reader, file)
	if err != nil {
		return fmt.Errorf("reading record settings: %w", err)
	}

	c.PubIP.read(reader, file, warner)

	err = c.Resolver.read(reader, file)
	if err != nil {
		return fmt.Errorf("reading resolver settings: %w", err)
	}

	err = c.Propagation.read(reader, file)
	if err != nil {
		return fmt.Errorf("reading propagation settings: %w", err)
	}

	c.AWS.read(reader)

	err = c.Client.read(reader)
	if err != nil {
		return fmt.Errorf("reading client settings: %w", err)
	}

	c.Health.read(reader)
	c.Metrics.read(reader)

	err = c.Logger.read(reader)
	if err != nil {
		return fmt.Errorf("reading logger settings: %w", err)
	}

	c.Shoutrrr.read(reader)

	return nil
}
