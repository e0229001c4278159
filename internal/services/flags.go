package services

//go:generate mockgen -source=flags.go -destination=mock_flags.go -package=services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sbilibin2017/flagwatch/internal/models"
)

// Writer defines the interface for saving flags.
type Writer interface {
	// Save persists the given flag.
	Save(ctx context.Context, flag *models.Flag) error
}

// Reader defines the interface for counting flags.
type Reader interface {
	// Count returns the number of stored flags.
	Count(ctx context.Context) (int64, error)
}

// FlagServiceOpt configures a FlagService.
type FlagServiceOpt func(*FlagService)

// WithIDGenerator replaces the uuid generator.
func WithIDGenerator(newID func() string) FlagServiceOpt {
	return func(svc *FlagService) {
		if newID != nil {
			svc.newID = newID
		}
	}
}

// WithClock replaces the clock used for CreatedAt.
func WithClock(now func() time.Time) FlagServiceOpt {
	return func(svc *FlagService) {
		if now != nil {
			svc.now = now
		}
	}
}

// FlagService records and counts flagged data.
type FlagService struct {
	writer Writer
	reader Reader
	newID  func() string
	now    func() time.Time
}

// NewFlagService creates a new FlagService with the given writer and reader.
func NewFlagService(writer Writer, reader Reader, opts ...FlagServiceOpt) *FlagService {
	svc := &FlagService{
		writer: writer,
		reader: reader,
		newID:  uuid.NewString,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Record stores a new flag with a fresh id and UTC creation time.
func (svc *FlagService) Record(ctx context.Context, entityType, source string) (*models.Flag, error) {
	entityType = strings.TrimSpace(entityType)
	if entityType == "" {
		return nil, fmt.Errorf("%w: entity type is required", models.ErrInvalidFlag)
	}

	flag := &models.Flag{
		ID:         svc.newID(),
		EntityType: entityType,
		Source:     strings.TrimSpace(source),
		CreatedAt:  svc.now().UTC(),
	}
	if err := svc.writer.Save(ctx, flag); err != nil {
		return nil, fmt.Errorf("save flag: %w", err)
	}
	return flag, nil
}

// Count returns the number of stored flags.
func (svc *FlagService) Count(ctx context.Context) (int64, error) {
	return svc.reader.Count(ctx)
}
