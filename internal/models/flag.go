package models

import (
	"errors"
	"time"
)

// ErrInvalidFlag reports a flag that cannot be stored, e.g. without an entity type.
var ErrInvalidFlag = errors.New("invalid flag")

// Flag is a single flagged record, one row of the flagged data table.
type Flag struct {
	ID         string    `json:"id" db:"id"`                   // Record identifier (uuid).
	EntityType string    `json:"entity_type" db:"entity_type"` // Kind of sensitive data detected, e.g. "SSN".
	Source     string    `json:"source" db:"source"`           // Where the data was seen.
	CreatedAt  time.Time `json:"created_at" db:"created_at"`   // Detection timestamp (UTC).
}

// TotalFlags is the response body of the total flags endpoint.
type TotalFlags struct {
	TotalFlags *int64 `json:"total_flags"`
}
