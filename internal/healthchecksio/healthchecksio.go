// Package healthchecksio pings healthchecks.io so a missed or
// failed run of the program raises an alert.
package healthchecksio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// New creates a new healthchecks.io client.
// If passed an empty uuid string, it acts as no-op implementation.
func New(httpClient *http.Client, baseURL, uuid string) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		uuid:       uuid,
	}
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	uuid       string
}

var ErrStatusCode = errors.New("bad status code")

type State string

const (
	Ok    State = "ok"
	Start State = "start"
	Fail  State = "fail"
)

// Ping signals the state to healthchecks.io, with the
// message as body shown in the check events, if not empty.
func (c *Client) Ping(ctx context.Context, state State, message string) (err error) {
	if c.uuid == "" {
		return nil
	}

	url := c.baseURL + "/" + c.uuid
	if state != Ok {
		url += "/" + string(state)
	}

	var body io.Reader
	method := http.MethodGet
	if message != "" {
		method = http.MethodPost
		body = strings.NewReader(message)
	}

	request, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		request.Header.Set("Content-Type", "text/plain; charset=utf-8")
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("doing http request: %w", err)
	}

	if response.StatusCode != http.StatusOK {
		_ = response.Body.Close()
		return fmt.Errorf("%w: %s", ErrStatusCode, response.Status)
	}

	err = response.Body.Close()
	if err != nil {
		return fmt.Errorf("closing response body: %w", err)
	}

	return nil
}
