package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// fileSettings is the configuration file structure.
// Nil fields are not set in the file.
type fileSettings struct {
	HostedZoneID       *string          `yaml:"hosted_zone_id" toml:"hosted_zone_id"`
	RecordName         *string          `yaml:"record_name" toml:"record_name"`
	TTL                *uint32          `yaml:"ttl" toml:"ttl"`
	IPCheck            *string          `yaml:"ip_check" toml:"ip_check"`
	AlwaysUpdateRecord *bool            `yaml:"always_update_record" toml:"always_update_record"`
	DNSServer          *fileDNSServer   `yaml:"dns_server" toml:"dns_server"`
	Propagation        *filePropagation `yaml:"propagation" toml:"propagation"`
}

type fileDNSServer struct {
	Host     *string   `yaml:"host" toml:"host"`
	Port     *uint16   `yaml:"port" toml:"port"`
	Protocol *string   `yaml:"protocol" toml:"protocol"`
	Timeout  *duration `yaml:"timeout" toml:"timeout"`
}

type filePropagation struct {
	Wait       *bool     `yaml:"wait" toml:"wait"`
	Timeout    *duration `yaml:"timeout" toml:"timeout"`
	PollPeriod *duration `yaml:"poll_period" toml:"poll_period"`
}

// duration is a time.Duration written as a Go duration
// string such as "300s" in the configuration file.
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(parsed)
	return nil
}

func (d *duration) durationPtr() *time.Duration {
	if d == nil {
		return nil
	}
	value := time.Duration(*d)
	return &value
}

var (
	ErrFileExtensionUnknown = errors.New("configuration file extension is unknown")
	ErrFileKeysUnknown      = errors.New("configuration file has unknown keys")
)

func readFile(path string) (settings fileSettings, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return settings, err
	}
	data = interpolateEnv(data)

	switch extension := strings.ToLower(filepath.Ext(path)); extension {
	case ".yaml", ".yml":
		settings, err = decodeYAML(data)
	case ".toml":
		settings, err = decodeTOML(data)
	default:
		return settings, fmt.Errorf("%w: %q must be one of .yaml, .yml or .toml",
			ErrFileExtensionUnknown, extension)
	}
	if err != nil {
		return settings, fmt.Errorf("decoding %s: %w", path, err)
	}
	return settings, nil
}

func decodeYAML(data []byte) (settings fileSettings, err error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	err = decoder.Decode(&settings)
	if err != nil && !errors.Is(err, io.EOF) { // io.EOF for an empty file
		return settings, err
	}
	return settings, nil
}

func decodeTOML(data []byte) (settings fileSettings, err error) {
	metadata, err := toml.Decode(string(data), &settings)
	if err != nil {
		return settings, err
	}

	undecoded := metadata.Undecoded()
	if len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return settings, fmt.Errorf("%w: %s", ErrFileKeysUnknown, strings.Join(keys, ", "))
	}
	return settings, nil
}

// envVarPattern matches ${VAR} or ${VAR:-default}.
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func interpolateEnv(data []byte) []byte {
	return envVarPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		groups := envVarPattern.FindSubmatch(match)
		value := os.Getenv(string(groups[1]))
		if value == "" {
			return groups[2]
		}
		return []byte(value)
	})
}
