package route53

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/qdm12/dynroute53/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Debug(string) {}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(context.Background(), server.Client(), Settings{
		ZoneID: "/hostedzone/Z148QEXAMPLE8V",
		Credentials: Credentials{
			AccessKey: "AKIDEXAMPLE",
			SecretKey: "secret",
		},
		PollPeriod: 5 * time.Millisecond,
		BaseURL:    server.URL,
	}, noopLogger{})
	require.NoError(t, err)
	return client
}

func Test_New(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), http.DefaultClient,
		Settings{ZoneID: "/hostedzone/"}, noopLogger{})

	assert.ErrorIs(t, err, ErrZoneIDEmpty)
}

func Test_Client_Upsert(t *testing.T) {
	t.Parallel()

	record := models.Record{
		Name: "home.example.com",
		TTL:  300,
		IP:   netip.MustParseAddr("203.0.113.9"),
	}

	t.Run("accepted", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/2013-04-01/hostedzone/Z148QEXAMPLE8V/rrset", r.URL.Path)
			assert.True(t, strings.HasPrefix(r.Header.Get("Authorization"),
				"AWS4-HMAC-SHA256 Credential=AKIDEXAMPLE/"))
			assert.Contains(t, r.Header.Get("Authorization"), "/us-east-1/route53/aws4_request")
			body, err := io.ReadAll(r.Body)
			assert.NoError(t, err)
			for _, expected := range []string{
				"<Comment>Update IP address</Comment>",
				"<Action>UPSERT</Action>",
				"<Name>home.example.com</Name>",
				"<Type>A</Type>",
				"<TTL>300</TTL>",
				"<Value>203.0.113.9</Value>",
			} {
				assert.Contains(t, string(body), expected)
			}

			w.Header().Set("Content-Type", "text/xml")
			_, _ = io.WriteString(w, `<?xml version="1.0"?>`+
				`<ChangeResourceRecordSetsResponse xmlns="https://route53.amazonaws.com/doc/2013-04-01/">`+
				`<ChangeInfo><Id>/change/C2682N5HXP0BZ4</Id><Status>PENDING</Status>`+
				`<SubmittedAt>2021-01-01T00:00:00.000Z</SubmittedAt></ChangeInfo>`+
				`</ChangeResourceRecordSetsResponse>`)
		}))

		changeID, err := client.Upsert(context.Background(), record)

		require.NoError(t, err)
		assert.Equal(t, "C2682N5HXP0BZ4", changeID)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("throttled is not retried", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.Header().Set("Content-Type", "text/xml")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `<?xml version="1.0"?>`+
				`<ErrorResponse xmlns="https://route53.amazonaws.com/doc/2013-04-01/">`+
				`<Error><Type>Sender</Type><Code>Throttling</Code><Message>Rate exceeded</Message></Error>`+
				`<RequestId>request-id</RequestId></ErrorResponse>`)
		}))

		changeID, err := client.Upsert(context.Background(), record)

		assert.ErrorIs(t, err, ErrChangeRejected)
		assert.EqualError(t, err, "change rejected: 400 Throttling: Rate exceeded")
		assert.Empty(t, changeID)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("missing change id", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/xml")
			_, _ = io.WriteString(w, `<ChangeResourceRecordSetsResponse><ChangeInfo>`+
				`<Status>PENDING</Status></ChangeInfo></ChangeResourceRecordSetsResponse>`)
		}))

		_, err := client.Upsert(context.Background(), record)

		assert.ErrorIs(t, err, ErrChangeIDEmpty)
	})
}

func changeStatusHandler(t *testing.T, statuses ...string) (
	handler http.Handler, calls *atomic.Int32) {
	t.Helper()
	calls = new(atomic.Int32)
	handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/2013-04-01/change/C2682N5HXP0BZ4", r.URL.Path)
		i := int(calls.Add(1)) - 1
		if i >= len(statuses) {
			i = len(statuses) - 1
		}
		w.Header().Set("Content-Type", "text/xml")
		_, _ = io.WriteString(w, `<GetChangeResponse xmlns="https://route53.amazonaws.com/doc/2013-04-01/">`+
			`<ChangeInfo><Id>/change/C2682N5HXP0BZ4</Id><Status>`+statuses[i]+`</Status>`+
			`</ChangeInfo></GetChangeResponse>`)
	})
	return handler, calls
}

func Test_Client_WaitForChange(t *testing.T) {
	t.Parallel()

	t.Run("in sync after polling", func(t *testing.T) {
		t.Parallel()

		handler, calls := changeStatusHandler(t, "PENDING", "PENDING", "INSYNC")
		client := newTestClient(t, handler)

		err := client.WaitForChange(context.Background(), "/change/C2682N5HXP0BZ4", time.Second)

		assert.NoError(t, err)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("timeout", func(t *testing.T) {
		t.Parallel()

		handler, _ := changeStatusHandler(t, "PENDING")
		client := newTestClient(t, handler)

		err := client.WaitForChange(context.Background(), "C2682N5HXP0BZ4", 30*time.Millisecond)

		assert.ErrorIs(t, err, ErrPropagationTimeout)
		assert.EqualError(t, err, "change propagation timed out: after 30ms")
		assert.True(t, IsPropagationWarning(err))
	})

	t.Run("unknown status", func(t *testing.T) {
		t.Parallel()

		handler, _ := changeStatusHandler(t, "FAILED")
		client := newTestClient(t, handler)

		err := client.WaitForChange(context.Background(), "C2682N5HXP0BZ4", time.Second)

		assert.ErrorIs(t, err, ErrPropagationFailed)
		assert.EqualError(t, err, `change propagation failed: unknown change status "FAILED"`)
	})

	t.Run("server error", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))

		err := client.WaitForChange(context.Background(), "C2682N5HXP0BZ4", time.Second)

		assert.ErrorIs(t, err, ErrPropagationFailed)
		assert.ErrorIs(t, err, ErrBadHTTPStatus)
		assert.EqualError(t, err, "change propagation failed: bad HTTP status: 500 Internal Server Error")
	})

	t.Run("canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		handler, calls := changeStatusHandler(t, "PENDING")
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handler.ServeHTTP(w, r)
			if calls.Load() == 2 {
				cancel()
			}
		}))

		err := client.WaitForChange(ctx, "C2682N5HXP0BZ4", time.Second)

		assert.ErrorIs(t, err, context.Canceled)
		assert.EqualError(t, err, "context canceled")
		assert.False(t, IsPropagationWarning(err))
	})
}
