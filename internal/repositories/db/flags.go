package db

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/flagwatch/internal/models"
)

// FlagWriteRepository stores flags in the flagged_data table.
type FlagWriteRepository struct {
	db *sqlx.DB
}

// NewFlagWriteRepository creates a new FlagWriteRepository with the given database connection.
func NewFlagWriteRepository(db *sqlx.DB) *FlagWriteRepository {
	return &FlagWriteRepository{db: db}
}

// Save inserts a flag.
func (r *FlagWriteRepository) Save(ctx context.Context, flag *models.Flag) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO flagged_data (id, entity_type, source, created_at)
		VALUES (:id, :entity_type, :source, :created_at)
	`, flag)
	return err
}

// FlagReadRepository reads flags from the flagged_data table.
type FlagReadRepository struct {
	db *sqlx.DB
}

// NewFlagReadRepository creates a new FlagReadRepository with the given database connection.
func NewFlagReadRepository(db *sqlx.DB) *FlagReadRepository {
	return &FlagReadRepository{db: db}
}

// Count returns the number of stored flags.
func (r *FlagReadRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) AS total_flags FROM flagged_data`); err != nil {
		return 0, err
	}
	return n, nil
}

// PingContext checks that the database is reachable.
func (r *FlagReadRepository) PingContext(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
