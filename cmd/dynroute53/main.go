package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	_ "github.com/breml/rootcerts"
	"github.com/qdm12/dynroute53/internal/config"
	"github.com/qdm12/dynroute53/internal/healthchecksio"
	"github.com/qdm12/dynroute53/internal/metrics"
	"github.com/qdm12/dynroute53/internal/models"
	"github.com/qdm12/dynroute53/internal/publicip"
	"github.com/qdm12/dynroute53/internal/resolver"
	"github.com/qdm12/dynroute53/internal/route53"
	"github.com/qdm12/dynroute53/internal/shoutrrr"
	"github.com/qdm12/dynroute53/internal/update"
	"github.com/qdm12/gosettings/reader"
	"github.com/qdm12/gosplash"
	"github.com/qdm12/log"
)

//nolint:gochecknoglobals
var (
	version = "unknown"
	commit  = "unknown"
	date    = "an unknown date"
)

func main() {
	buildInfo := models.BuildInformation{
		Version: version,
		Commit:  commit,
		Date:    date,
	}
	logger := log.New()

	reader := reader.New(reader.Settings{
		HandleDeprecatedKey: func(source, oldKey, newKey string) {
			logger.Warnf("%q key %s is deprecated, please use %q instead",
				source, oldKey, newKey)
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM, os.Interrupt)

	err := _main(ctx, reader, os.Args, logger, buildInfo, time.Now)
	stop()
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func _main(ctx context.Context, reader *reader.Reader, args []string, logger log.LoggerInterface,
	buildInfo models.BuildInformation, timeNow func() time.Time) (err error) {
	if len(args) > 1 {
		switch args[1] {
		case "version", "-version", "--version":
			fmt.Println(buildInfo.VersionString())
			return nil
		}
	}

	printSplash(buildInfo)

	config, err := readConfig(reader, logger)
	if err != nil {
		return err
	}

	shoutrrrClient, err := shoutrrr.New(shoutrrr.Settings{
		Addresses:    config.Shoutrrr.Addresses,
		DefaultTitle: config.Shoutrrr.DefaultTitle,
		Logger:       logger.New(log.SetComponent("shoutrrr")),
	})
	if err != nil {
		return fmt.Errorf("setting up Shoutrrr: %w", err)
	}

	client := &http.Client{Timeout: config.Client.Timeout}
	defer client.CloseIdleConnections()
	if *config.Logger.Level == log.LevelDebug {
		client = update.NewLogClient(client, logger.New(log.SetComponent("http")))
	}

	hioClient := healthchecksio.New(client, config.Health.HealthchecksioBaseURL,
		*config.Health.HealthchecksioUUID)
	pingHealthchecksio(ctx, hioClient, logger, healthchecksio.Start, "")

	var metricsWriter *metrics.Metrics
	if *config.Metrics.Textfile != "" {
		metricsWriter = metrics.New(buildInfo)
	}

	start := timeNow()
	result, err := run(ctx, config, client, shoutrrrClient, logger)
	runMetrics := metrics.Run{
		Start:                start,
		Duration:             timeNow().Sub(start),
		Success:              err == nil,
		UpToDate:             err == nil && result.Verdict == update.UpToDate,
		UpdateSubmitted:      result.Updated(),
		PropagationConfirmed: result.Updated() && *config.Propagation.Wait && result.PropagationErr == nil,
	}

	if err != nil {
		shoutrrrClient.Notify(err.Error())
		pingHealthchecksio(ctx, hioClient, logger, healthchecksio.Fail, err.Error())
	} else {
		pingHealthchecksio(ctx, hioClient, logger, healthchecksio.Ok,
			resultToMessage(config.Record.Name, result))
	}

	if metricsWriter != nil {
		metricsWriter.Record(runMetrics)
		writeErr := metricsWriter.WriteTextfile(*config.Metrics.Textfile)
		if writeErr != nil {
			logger.Error("writing metrics textfile: " + writeErr.Error())
		}
	}

	return err
}

func run(ctx context.Context, config config.Config, client *http.Client,
	shoutrrrClient *shoutrrr.Client, logger log.LoggerInterface) (
	result update.Result, err error) {
	route53Client, err := route53.New(ctx, client, route53.Settings{
		ZoneID: config.Record.ZoneID,
		Credentials: route53.Credentials{
			AccessKey:    config.AWS.AccessKey,
			SecretKey:    config.AWS.SecretKey,
			SessionToken: config.AWS.SessionToken,
			Profile:      config.AWS.Profile,
		},
		PollPeriod: config.Propagation.PollPeriod,
	}, logger.New(log.SetComponent("route53")))
	if err != nil {
		return result, fmt.Errorf("creating Route 53 client: %w", err)
	}

	ipGetter := publicip.New(client, config.PubIP.CheckURL)
	logger.Debug("using " + ipGetter.String())

	resolverSettings := config.Resolver.ToResolverSettings()
	newLookuper := func() (update.RecordLookuper, error) {
		dnsResolver, err := resolver.New(resolverSettings)
		if err != nil {
			return nil, err
		}
		logger.Debug("using " + dnsResolver.String())
		return dnsResolver, nil
	}

	runner := update.NewRunner(update.Settings{
		Hostname:           config.Record.Name,
		TTL:                *config.Record.TTL,
		Force:              *config.Record.AlwaysUpdate,
		WaitPropagation:    *config.Propagation.Wait,
		PropagationTimeout: config.Propagation.Timeout,
	}, ipGetter, newLookuper, route53Client, shoutrrrClient, logger)

	result, err = runner.Run(ctx)
	if err != nil && errors.Is(err, context.Canceled) {
		return result, fmt.Errorf("interrupted: %w", err)
	}
	return result, err
}

func resultToMessage(hostname string, result update.Result) string {
	switch {
	case !result.Updated():
		return fmt.Sprintf("%s is up to date with %s", hostname, result.PublicIP)
	case result.PropagationErr != nil:
		return fmt.Sprintf("%s changed to %s (change %s): %s", hostname,
			result.PublicIP, result.ChangeID, result.PropagationErr)
	default:
		return fmt.Sprintf("%s changed to %s (change %s)", hostname,
			result.PublicIP, result.ChangeID)
	}
}

func printSplash(buildInfo models.BuildInformation) {
	splashSettings := gosplash.Settings{
		User:       "qdm12",
		Repository: "dynroute53",
		Version:    buildInfo.Version,
		Commit:     buildInfo.Commit,
		BuildDate:  buildInfo.Date,
		// Sponsor information
		PaypalUser:    "qmcgaw",
		GithubSponsor: "qdm12",
	}
	for _, line := range gosplash.MakeLines(splashSettings) {
		fmt.Println(line)
	}
}

func readConfig(reader *reader.Reader, logger log.LoggerInterface) (
	config config.Config, err error) {
	err = config.Read(reader, logger)
	if err != nil {
		return config, fmt.Errorf("reading settings: %w", err)
	}
	config.SetDefaults()
	err = config.Validate()
	if err != nil {
		return config, fmt.Errorf("settings validation: %w", err)
	}

	logger.Patch(config.Logger.ToOptions()...)
	logger.Info(config.String())

	return config, nil
}

func pingHealthchecksio(ctx context.Context, hioClient *healthchecksio.Client,
	logger log.LoggerInterface, state healthchecksio.State, message string) {
	const timeout = 3 * time.Second
	// sent even if the run context is canceled
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()
	err := hioClient.Ping(ctx, state, message)
	if err != nil {
		logger.Error("pinging healthchecks.io: " + err.Error())
	}
}
