package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sbilibin2017/flagwatch/internal/configs"
	"github.com/sbilibin2017/flagwatch/internal/models"
)

func TestDashboardEndToEnd(t *testing.T) {
	var calls atomic.Int32
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/metrics/total-flags", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"total_flags": 7}`))
	}))
	defer backend.Close()

	cfg, err := configs.NewDashboardConfig(configs.WithAPIBase(backend.URL))
	require.NoError(t, err)

	p := newPoller(cfg, zap.NewNop())
	srv := httptest.NewServer(newRouter(p, cfg.TableName, zap.NewNop()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/snapshot")
	require.NoError(t, err)
	var s models.MetricSnapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&s))
	resp.Body.Close()
	assert.Equal(t, models.StatusIdle, s.Status)
	assert.Nil(t, s.Value)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/refresh", nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "application/json")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&s))
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, models.StatusReady, s.Status)
	require.NotNil(t, s.Value)
	assert.Equal(t, int64(7), *s.Value)
	assert.Equal(t, int32(1), calls.Load())

	resp, err = http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	body := new(bytes.Buffer)
	_, err = body.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, body.String(), ">7<")
	assert.Contains(t, body.String(), "Last updated: ")
}

func TestDashboardWithoutAPIBase(t *testing.T) {
	cfg, err := configs.NewDashboardConfig()
	require.NoError(t, err)

	p := newPoller(cfg, zap.NewNop())
	s := p.Refresh(context.Background())

	assert.Equal(t, models.StatusFailed, s.Status)
	require.NotNil(t, s.Value)
	assert.Equal(t, int64(0), *s.Value)
	assert.NotEmpty(t, s.ErrorMessage)
}

func TestRefreshRedirectsBrowsers(t *testing.T) {
	cfg, err := configs.NewDashboardConfig()
	require.NoError(t, err)

	srv := httptest.NewServer(newRouter(newPoller(cfg, zap.NewNop()), cfg.TableName, zap.NewNop()))
	defer srv.Close()

	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	resp, err := client.Post(srv.URL+"/refresh", "application/x-www-form-urlencoded", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}
