package healthchecksio

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Client_Ping(t *testing.T) {
	t.Parallel()

	const uuid = "5ad4a4d4-5d0a-4b7e-8b7a-2d2b3e0a6c1f"

	testCases := map[string]struct {
		state      State
		message    string
		method     string
		path       string
		statusCode int
		errMessage string
	}{
		"start": {
			state:      Start,
			method:     http.MethodGet,
			path:       "/" + uuid + "/start",
			statusCode: http.StatusOK,
		},
		"ok with message": {
			state:      Ok,
			message:    "home.example.com is up to date with 203.0.113.9",
			method:     http.MethodPost,
			path:       "/" + uuid,
			statusCode: http.StatusOK,
		},
		"fail with message": {
			state:      Fail,
			message:    "discovering public IP address: public IP check is unreachable",
			method:     http.MethodPost,
			path:       "/" + uuid + "/fail",
			statusCode: http.StatusOK,
		},
		"bad status": {
			state:      Ok,
			method:     http.MethodGet,
			path:       "/" + uuid,
			statusCode: http.StatusNotFound,
			errMessage: "bad status code: 404 Not Found",
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, testCase.method, r.Method)
				assert.Equal(t, testCase.path, r.URL.Path)
				body, err := io.ReadAll(r.Body)
				assert.NoError(t, err)
				assert.Equal(t, testCase.message, string(body))
				w.WriteHeader(testCase.statusCode)
			}))
			t.Cleanup(server.Close)

			client := New(server.Client(), server.URL+"/", uuid)

			err := client.Ping(context.Background(), testCase.state, testCase.message)

			if testCase.errMessage != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrStatusCode)
				assert.EqualError(t, err, testCase.errMessage)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func Test_Client_Ping_disabled(t *testing.T) {
	t.Parallel()

	client := New(http.DefaultClient, "http://invalid", "")

	err := client.Ping(context.Background(), Fail, "ignored")

	assert.NoError(t, err)
}
