package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/sbilibin2017/flagwatch/internal/models"
)

// ErrDuplicateID is returned when a flag with the same id is already stored.
var ErrDuplicateID = errors.New("flag with this id already exists")

// FlagStore holds flags in memory. It is shared by the read and write repositories.
type FlagStore struct {
	mu    sync.RWMutex
	flags map[string]models.Flag
}

// NewFlagStore creates an empty FlagStore.
func NewFlagStore() *FlagStore {
	return &FlagStore{flags: make(map[string]models.Flag)}
}

// FlagWriteRepository provides write access to in-memory flags.
type FlagWriteRepository struct {
	store *FlagStore
}

// NewFlagWriteRepository creates a new FlagWriteRepository.
func NewFlagWriteRepository(store *FlagStore) *FlagWriteRepository {
	return &FlagWriteRepository{store: store}
}

// Save adds a flag to the store.
func (r *FlagWriteRepository) Save(ctx context.Context, flag *models.Flag) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.flags[flag.ID]; ok {
		return ErrDuplicateID
	}
	r.store.flags[flag.ID] = *flag
	return nil
}

// FlagReadRepository provides read access to in-memory flags.
type FlagReadRepository struct {
	store *FlagStore
}

// NewFlagReadRepository creates a new FlagReadRepository.
func NewFlagReadRepository(store *FlagStore) *FlagReadRepository {
	return &FlagReadRepository{store: store}
}

// Count returns the number of stored flags.
func (r *FlagReadRepository) Count(ctx context.Context) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return int64(len(r.store.flags)), nil
}

// PingContext always succeeds.
func (r *FlagReadRepository) PingContext(ctx context.Context) error {
	return nil
}
