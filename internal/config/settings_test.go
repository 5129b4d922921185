package config

import (
	"testing"
	"time"

	"github.com/qdm12/dynroute53/internal/resolver"
	"github.com/qdm12/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Config_String(t *testing.T) {
	t.Parallel()

	settings := Config{
		Record: Record{
			ZoneID: "Z148QEXAMPLE8V",
			Name:   "home.example.com",
		},
	}
	settings.SetDefaults()

	s := settings.String()

	const expected = `Settings summary:
├── Record
|   ├── Hosted zone id: Z148QEXAMPLE8V
|   ├── Name: home.example.com
|   ├── TTL: 300s
|   └── Always update: no
├── Public IP fetching
|   └── Check URL: https://checkip.amazonaws.com
├── Resolver
|   ├── Host: 1.1.1.1
|   ├── Port: 53
|   ├── Protocol: udp
|   └── Timeout: 5s
├── Propagation wait: disabled
├── AWS credentials
|   └── Source: default chain
├── HTTP client
|   └── Timeout: 10s
├── Healthchecks.io: disabled
├── Metrics textfile: disabled
└── Logger
    ├── Level: INFO
    └── Caller: hidden`
	assert.Equal(t, expected, s)
}

func Test_Config_String_configured(t *testing.T) {
	t.Parallel()

	settings := Config{
		File: "/etc/dynroute53/config.yaml",
		Record: Record{
			ZoneID:       "Z148QEXAMPLE8V",
			Name:         "home.example.com",
			AlwaysUpdate: ptrTo(true),
		},
		Propagation: Propagation{Wait: ptrTo(true)},
		AWS: AWS{
			AccessKey: "AKIDEXAMPLE",
			SecretKey: "wJalrXUtnFEMI/K7MDENG+bPxRfiCYEXAMPLEKEY",
		},
		Health:   Health{HealthchecksioUUID: ptrTo("5ad4a4d4-5d0a-4b7e-8b7a-2d2b3e0a6c1f")},
		Metrics:  Metrics{Textfile: ptrTo("/var/lib/node_exporter/dynroute53.prom")},
		Shoutrrr: Shoutrrr{Addresses: []string{"gotify://gotify.example.com/token"}},
	}
	settings.SetDefaults()

	s := settings.String()

	const expected = `Settings summary:
├── Configuration file: /etc/dynroute53/config.yaml
├── Record
|   ├── Hosted zone id: Z148QEXAMPLE8V
|   ├── Name: home.example.com
|   ├── TTL: 300s
|   └── Always update: yes
├── Public IP fetching
|   └── Check URL: https://checkip.amazonaws.com
├── Resolver
|   ├── Host: 1.1.1.1
|   ├── Port: 53
|   ├── Protocol: udp
|   └── Timeout: 5s
├── Propagation wait
|   ├── Timeout: 5m0s
|   └── Poll period: 10s
├── AWS credentials
|   ├── Access key: AK...LE
|   └── Secret key: wJ...EY
├── HTTP client
|   └── Timeout: 10s
├── Healthchecks.io
|   ├── Base URL: https://hc-ping.com
|   └── UUID: 5ad4a4d4-5d0a-4b7e-8b7a-2d2b3e0a6c1f
├── Metrics textfile: /var/lib/node_exporter/dynroute53.prom
├── Logger
|   ├── Level: INFO
|   └── Caller: hidden
└── Shoutrrr
    ├── Default title: Route53 Updater
    └── Addresses
        └── gotify://gotify.example.com/token`
	assert.Equal(t, expected, s)
}

func Test_Config_Validate(t *testing.T) {
	t.Parallel()

	valid := func() Config {
		settings := Config{
			Record: Record{
				ZoneID: "Z148QEXAMPLE8V",
				Name:   "home.example.com",
			},
		}
		settings.SetDefaults()
		return settings
	}

	testCases := map[string]struct {
		modify     func(settings *Config)
		errWrapped error
		errMessage string
	}{
		"valid": {
			modify: func(*Config) {},
		},
		"empty zone id": {
			modify:     func(settings *Config) { settings.Record.ZoneID = "" },
			errWrapped: ErrZoneIDEmpty,
			errMessage: "record settings: hosted zone id is empty",
		},
		"empty record name": {
			modify:     func(settings *Config) { settings.Record.Name = "" },
			errWrapped: ErrRecordNameEmpty,
			errMessage: "record settings: record name is empty",
		},
		"malformed record name": {
			modify:     func(settings *Config) { settings.Record.Name = "home..example.com" },
			errWrapped: ErrRecordNameBad,
			errMessage: `record settings: record name is not a valid domain name: "home..example.com"`,
		},
		"zero TTL": {
			modify:     func(settings *Config) { settings.Record.TTL = ptrTo(uint32(0)) },
			errWrapped: ErrTTLOutOfRange,
			errMessage: "record settings: TTL is out of range: 0 must be between 1 and 2147483647",
		},
		"IP check URL without scheme": {
			modify:     func(settings *Config) { settings.PubIP.CheckURL = "checkip.amazonaws.com" },
			errWrapped: ErrCheckURLNotValid,
			errMessage: `public ip settings: IP check URL is not valid: scheme "" must be http or https`,
		},
		"unknown resolver protocol": {
			modify:     func(settings *Config) { settings.Resolver.Protocol = "quic" },
			errWrapped: resolver.ErrProtocolUnknown,
			errMessage: `resolver settings: protocol is unknown: "quic" must be one of udp or tcp`,
		},
		"zero resolver port": {
			modify:     func(settings *Config) { settings.Resolver.Port = ptrTo(uint16(0)) },
			errWrapped: ErrPortZero,
			errMessage: "resolver settings: port cannot be zero",
		},
		"negative propagation timeout": {
			modify:     func(settings *Config) { settings.Propagation.Timeout = -time.Second },
			errWrapped: ErrDurationNotPositive,
			errMessage: "propagation settings: timeout: duration must be positive: -1s",
		},
		"secret key without access key": {
			modify:     func(settings *Config) { settings.AWS.SecretKey = "secret" },
			errWrapped: ErrAccessKeyEmpty,
			errMessage: "AWS settings: access key is empty: but secret key is set",
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			settings := valid()
			testCase.modify(&settings)

			err := settings.Validate()

			if testCase.errMessage == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, testCase.errWrapped)
			assert.EqualError(t, err, testCase.errMessage)
		})
	}
}

func Test_Resolver_ToResolverSettings(t *testing.T) {
	t.Parallel()

	settings := Resolver{
		Host:     "9.9.9.9",
		Port:     ptrTo(uint16(5353)),
		Protocol: "TCP",
		Timeout:  time.Second,
	}

	expected := resolver.Settings{
		Host:     "9.9.9.9",
		Port:     5353,
		Protocol: resolver.TCP,
		Timeout:  time.Second,
	}
	assert.Equal(t, expected, settings.ToResolverSettings())
}

func Test_parseLogLevel(t *testing.T) {
	t.Parallel()

	level, err := parseLogLevel("WARNING")
	require.NoError(t, err)
	assert.Equal(t, log.LevelWarn, level)

	_, err = parseLogLevel("verbose")
	assert.ErrorIs(t, err, ErrLogLevelUnknown)
	assert.EqualError(t, err, `log level is unknown: "verbose" is not valid `+
		"and can be one of debug, info, warning or error")
}
