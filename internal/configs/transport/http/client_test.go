package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		baseURL    string
		opts       []Opt
		expectURL  string
		expectOpts func(client *resty.Client)
	}{
		{
			name:      "sets base URL without options",
			baseURL:   "http://example.com",
			expectURL: "http://example.com",
			expectOpts: func(client *resty.Client) {
				assert.Equal(t, 0, client.RetryCount)
				assert.Equal(t, time.Duration(0), client.GetClient().Timeout)
				assert.Equal(t, "application/json", client.Header.Get("Accept"))
			},
		},
		{
			name:      "trims trailing slash",
			baseURL:   "https://api.test/",
			expectURL: "https://api.test",
		},
		{
			name:    "applies timeout and user agent",
			baseURL: "https://api.test",
			opts: []Opt{
				WithTimeout(0, 3*time.Second),
				WithUserAgent("", "flagwatch-dashboard"),
				WithLogger(zap.NewNop()),
			},
			expectURL: "https://api.test",
			expectOpts: func(client *resty.Client) {
				assert.Equal(t, 3*time.Second, client.GetClient().Timeout)
				assert.Equal(t, "flagwatch-dashboard", client.Header.Get("User-Agent"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := New(tt.baseURL, tt.opts...)
			require.NotNil(t, client)
			assert.Equal(t, tt.expectURL, client.BaseURL)

			if tt.expectOpts != nil {
				tt.expectOpts(client)
			}
		})
	}
}

func TestNew_SendsConfiguredHeaders(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "ua-test", r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	client := New(ts.URL, WithUserAgent("ua-test"))
	resp, err := client.R().Get("/anything")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode())
}
