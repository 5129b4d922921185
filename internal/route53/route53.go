// Package route53 submits record changes to Amazon Route 53 and
// waits for them to propagate to its authoritative servers.
package route53

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsroute53 "github.com/aws/aws-sdk-go-v2/service/route53"
	"github.com/aws/aws-sdk-go-v2/service/route53/types"
	"github.com/aws/smithy-go"
	"github.com/qdm12/dynroute53/internal/models"
	"github.com/qdm12/gosettings"
)

// changeComment is the comment attached to each change batch.
const changeComment = "Update IP address"

// API is the subset of the Route 53 SDK client used.
type API interface {
	ChangeResourceRecordSets(ctx context.Context, params *awsroute53.ChangeResourceRecordSetsInput,
		optFns ...func(*awsroute53.Options)) (*awsroute53.ChangeResourceRecordSetsOutput, error)
	awsroute53.GetChangeAPIClient
}

type Logger interface {
	Debug(s string)
}

type Settings struct {
	// ZoneID is the hosted zone identifier, with or
	// without its "/hostedzone/" prefix.
	ZoneID      string
	Credentials Credentials
	// PollPeriod is the period between change status
	// requests when waiting for a change to propagate.
	PollPeriod  time.Duration
	// BaseURL overrides the Route 53 endpoint if set.
	BaseURL     string
}

func (s *Settings) SetDefaults() {
	const defaultPollPeriod = 10 * time.Second
	s.PollPeriod = gosettings.DefaultComparable(s.PollPeriod, defaultPollPeriod)
}

type Client struct {
	api        API
	zoneID     string
	pollPeriod time.Duration
	logger     Logger
}

// New creates a Route 53 client sending its requests with httpClient.
// Each API call is attempted once only.
func New(ctx context.Context, httpClient *http.Client,
	settings Settings, logger Logger) (client *Client, err error) {
	settings.SetDefaults()

	zoneID := trimResourcePrefix(settings.ZoneID)
	if zoneID == "" {
		return nil, fmt.Errorf("%w", ErrZoneIDEmpty)
	}

	cfg, err := loadConfig(ctx, httpClient, settings.Credentials)
	if err != nil {
		return nil, err
	}

	api := awsroute53.NewFromConfig(cfg, func(options *awsroute53.Options) {
		options.RetryMaxAttempts = 1
		if settings.BaseURL != "" {
			options.BaseEndpoint = aws.String(settings.BaseURL)
		}
	})

	return newClient(api, zoneID, settings.PollPeriod, logger), nil
}

func newClient(api API, zoneID string, pollPeriod time.Duration,
	logger Logger) *Client {
	return &Client{
		api:        api,
		zoneID:     zoneID,
		pollPeriod: pollPeriod,
		logger:     logger,
	}
}

// Upsert submits a change batch with a single UPSERT of the A record
// and returns the identifier of the change.
func (c *Client) Upsert(ctx context.Context, record models.Record) (
	changeID string, err error) {
	input := &awsroute53.ChangeResourceRecordSetsInput{
		HostedZoneId: aws.String(c.zoneID),
		ChangeBatch: &types.ChangeBatch{
			Comment: aws.String(changeComment),
			Changes: []types.Change{{
				Action: types.ChangeActionUpsert,
				ResourceRecordSet: &types.ResourceRecordSet{
					Name: aws.String(record.Name),
					Type: types.RRTypeA,
					TTL:  aws.Int64(int64(record.TTL)),
					ResourceRecords: []types.ResourceRecord{
						{Value: aws.String(record.IP.String())},
					},
				},
			}},
		},
	}

	output, err := c.api.ChangeResourceRecordSets(ctx, input)
	if err != nil {
		return "", wrapAPIError(err)
	}

	if output.ChangeInfo != nil {
		changeID = trimResourcePrefix(aws.ToString(output.ChangeInfo.Id))
	}
	if changeID == "" {
		return "", fmt.Errorf("%w: in response", ErrChangeIDEmpty)
	}
	c.logger.Debug("change " + changeID + " submitted with status " +
		string(output.ChangeInfo.Status))
	return changeID, nil
}

// WaitForChange polls the change status until it is INSYNC or until
// the timeout expires, in which case ErrPropagationTimeout is returned.
// The context error is returned as is if ctx is canceled.
func (c *Client) WaitForChange(ctx context.Context, changeID string,
	timeout time.Duration) (err error) {
	changeID = trimResourcePrefix(changeID)
	if changeID == "" {
		return fmt.Errorf("%w", ErrChangeIDEmpty)
	}

	waiter := awsroute53.NewResourceRecordSetsChangedWaiter(c.api,
		func(options *awsroute53.ResourceRecordSetsChangedWaiterOptions) {
			options.MinDelay = c.pollPeriod
			options.MaxDelay = c.pollPeriod
			options.Retryable = c.changeRetryable
		})

	input := &awsroute53.GetChangeInput{Id: aws.String(changeID)}
	err = waiter.Wait(ctx, input, timeout)
	switch {
	case err == nil:
		return nil
	case ctx.Err() != nil:
		return ctx.Err()
	case isWaitTimeout(err):
		return fmt.Errorf("%w: after %s", ErrPropagationTimeout, timeout)
	default:
		return fmt.Errorf("%w: %w", ErrPropagationFailed, err)
	}
}

func (c *Client) changeRetryable(_ context.Context, input *awsroute53.GetChangeInput,
	output *awsroute53.GetChangeOutput, err error) (bool, error) {
	if err != nil {
		return false, wrapAPIError(err)
	}

	var status types.ChangeStatus
	if output.ChangeInfo != nil {
		status = output.ChangeInfo.Status
	}

	switch status {
	case types.ChangeStatusInsync:
		return false, nil
	case types.ChangeStatusPending:
		c.logger.Debug("change " + aws.ToString(input.Id) + " is still " + string(status))
		return true, nil
	default:
		return false, fmt.Errorf("unknown change status %q", status)
	}
}

// isWaitTimeout returns true if err comes from the waiter running out of
// time, either between two attempts or during a GetChange request.
func isWaitTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) ||
		strings.HasPrefix(err.Error(), "exceeded max wait time")
}

// unknownErrorCode is the code given by the SDK to error
// responses without a Route 53 error body.
const unknownErrorCode = "UnknownError"

func wrapAPIError(err error) error {
	var responseErr *awshttp.ResponseError
	if !errors.As(err, &responseErr) {
		return err
	}
	statusCode := responseErr.HTTPStatusCode()

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() != unknownErrorCode {
		return fmt.Errorf("%w: %d %s: %s", ErrChangeRejected,
			statusCode, apiErr.ErrorCode(), apiErr.ErrorMessage())
	}

	return fmt.Errorf("%w: %d %s", ErrBadHTTPStatus,
		statusCode, http.StatusText(statusCode))
}

// trimResourcePrefix removes the "/hostedzone/" or "/change/" prefix
// Route 53 adds to its identifiers.
func trimResourcePrefix(id string) string {
	id = strings.TrimPrefix(id, "/hostedzone/")
	id = strings.TrimPrefix(id, "/change/")
	return id
}

// IsPropagationWarning returns true if err is a propagation wait error,
// meaning the change was accepted but its propagation is unconfirmed.
func IsPropagationWarning(err error) bool {
	return errors.Is(err, ErrPropagationTimeout) || errors.Is(err, ErrPropagationFailed)
}
