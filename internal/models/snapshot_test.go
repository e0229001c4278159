package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusIdle, "idle"},
		{StatusLoading, "loading"},
		{StatusReady, "ready"},
		{StatusFailed, "failed"},
		{Status(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.String())
		})
	}
}

func TestStatus_UnmarshalText(t *testing.T) {
	var s Status
	require.NoError(t, s.UnmarshalText([]byte("READY")))
	assert.Equal(t, StatusReady, s)

	require.NoError(t, s.UnmarshalText([]byte("bogus")))
	assert.Equal(t, StatusIdle, s)
}

func TestMetricSnapshot_JSON(t *testing.T) {
	v := int64(42)
	ts := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	s := MetricSnapshot{Value: &v, Status: StatusReady, LastUpdated: &ts}

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":42,"status":"ready","last_updated":"2024-01-15T10:00:00Z"}`, string(data))

	empty, err := json.Marshal(MetricSnapshot{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":null,"status":"idle"}`, string(empty))
}

func TestMetricSnapshot_Clone(t *testing.T) {
	v := int64(7)
	ts := time.Now()
	orig := MetricSnapshot{Value: &v, Status: StatusReady, LastUpdated: &ts}

	cp := orig.Clone()
	*cp.Value = 8
	*cp.LastUpdated = ts.Add(time.Hour)

	assert.Equal(t, int64(7), *orig.Value)
	assert.Equal(t, ts, *orig.LastUpdated)
}
