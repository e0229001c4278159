package http

//go:generate mockgen -source=flags.go -destination=mock_flags.go -package=http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/flagwatch/internal/models"
)

// Recorder stores a new flag.
type Recorder interface {
	Record(ctx context.Context, entityType, source string) (*models.Flag, error)
}

// FlagCounter counts stored flags.
type FlagCounter interface {
	Count(ctx context.Context) (int64, error)
}

// Pinger checks storage connectivity.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type flagRequest struct {
	EntityType string `json:"entity_type"`
	Source     string `json:"source"`
}

// NewTotalFlagsHandler returns the number of stored flags.
//
// @Summary Total flags
// @Description Returns the count of rows in flagged_data
// @Tags flags
// @Produce json
// @Success 200 {object} models.TotalFlags
// @Failure 500 "Internal Server Error"
// @Router /metrics/total-flags [get]
func NewTotalFlagsHandler(counter FlagCounter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := counter.Count(r.Context())
		if err != nil {
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, models.TotalFlags{TotalFlags: &n})
	}
}

// NewFlagCreateHandler stores a flag sent as JSON.
//
// @Summary Create flag
// @Description Stores a flagged record and returns it with its id and creation time
// @Tags flags
// @Accept json
// @Produce json
// @Param flag body flagRequest true "Flag"
// @Success 201 {object} models.Flag
// @Failure 400 "Bad Request"
// @Failure 500 "Internal Server Error"
// @Router /flags [post]
func NewFlagCreateHandler(recorder Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req flagRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}

		flag, err := recorder.Record(r.Context(), req.EntityType, req.Source)
		if err != nil {
			if errors.Is(err, models.ErrInvalidFlag) {
				http.Error(w, "Bad request", http.StatusBadRequest)
				return
			}
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, flag)
	}
}

// NewPingHandler reports whether the store is reachable.
//
// @Summary Ping storage
// @Tags flags
// @Success 200 "OK"
// @Failure 500 "Internal Server Error"
// @Router /ping [get]
func NewPingHandler(pinger Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := pinger.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
