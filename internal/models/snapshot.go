package models

import (
	"strings"
	"time"
)

// Status describes the fetch lifecycle of a metric snapshot.
type Status int

// Snapshot statuses.
const (
	StatusIdle    Status = iota // Nothing has been requested yet.
	StatusLoading               // A read is in flight.
	StatusReady                 // The last applied read succeeded.
	StatusFailed                // The last applied read failed.
)

var statusNames = map[Status]string{
	StatusIdle:    "idle",
	StatusLoading: "loading",
	StatusReady:   "ready",
	StatusFailed:  "failed",
}

// String returns the lowercase status name.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// MarshalText encodes the status as its name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name. Unknown names decode to StatusIdle.
func (s *Status) UnmarshalText(text []byte) error {
	name := strings.ToLower(string(text))
	for st, n := range statusNames {
		if n == name {
			*s = st
			return nil
		}
	}
	*s = StatusIdle
	return nil
}

// MetricSnapshot is the best-known state of a polled metric.
type MetricSnapshot struct {
	Value        *int64     `json:"value"`                  // Last known good value, nil before the first read resolves.
	Status       Status     `json:"status"`                 // Fetch lifecycle status.
	LastUpdated  *time.Time `json:"last_updated,omitempty"` // Time of the last successful read.
	ErrorMessage string     `json:"error,omitempty"`        // Set only when Status is StatusFailed.
}

// Clone returns a deep copy so callers never share pointers with the owner.
func (s MetricSnapshot) Clone() MetricSnapshot {
	out := s
	if s.Value != nil {
		v := *s.Value
		out.Value = &v
	}
	if s.LastUpdated != nil {
		t := *s.LastUpdated
		out.LastUpdated = &t
	}
	return out
}
