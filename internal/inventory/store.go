// Package inventory owns the fridge's item collection and every mutation of it.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"fridge-service/internal/domain"
	"fridge-service/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MutationKind names a store operation
type MutationKind string

const (
	MutationAdd     MutationKind = "add"
	MutationAdjust  MutationKind = "adjust"
	MutationTrash   MutationKind = "trash"
	MutationRestore MutationKind = "restore"
	MutationPurge   MutationKind = "purge"
)

// Mutation describes one applied change. Item is the item after the change;
// for a purge it is the item as it was just before removal.
type Mutation struct {
	Kind  MutationKind
	Item  domain.Item
	Delta int
	At    time.Time
}

// Hook runs after every applied mutation with the complete resulting
// collection. Hooks must not return errors to the mutating caller.
type Hook func(ctx context.Context, m Mutation, items domain.Collection)

// Status reports the health of the persistence mirror
type Status struct {
	Items         int
	LastSavedAt   time.Time
	LastSaveError string
}

// Store is the single writer of the item collection. Every method runs to
// completion under one lock, hooks included.
type Store struct {
	mu     sync.Mutex
	items  domain.Collection
	hooks  []Hook
	logger *zap.Logger

	gateway        repository.Gateway
	persistRetries int
	retryDelay     time.Duration
	lastSavedAt    time.Time
	lastSaveErr    error
	loaded         bool

	now   func() time.Time
	newID func() uuid.UUID
}

// Option configures a Store
type Option func(*Store)

// WithClock replaces the wall clock used for AddedDate and mutation times
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces uuid.New for new item ids
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(s *Store) { s.newID = newID }
}

// WithHooks appends post-mutation hooks; they run after persistence
func WithHooks(hooks ...Hook) Option {
	return func(s *Store) { s.hooks = append(s.hooks, hooks...) }
}

// WithPersistRetries sets how many save attempts a mutation gets and the
// base delay of the exponential backoff between them. The same budget covers
// loading in Initialize. Retries sleep while the store lock is held, so every
// other caller waits up to baseDelay*(2^(attempts-1)-1) plus the gateway
// timeouts before its own operation starts.
func WithPersistRetries(attempts int, baseDelay time.Duration) Option {
	return func(s *Store) {
		if attempts < 1 {
			attempts = 1
		}
		s.persistRetries = attempts
		s.retryDelay = baseDelay
	}
}

// NewStore creates an empty store. A nil gateway disables persistence.
func NewStore(gateway repository.Gateway, logger *zap.Logger, opts ...Option) *Store {
	s := &Store{
		items:          domain.Collection{},
		logger:         logger,
		gateway:        gateway,
		persistRetries: 3,
		retryDelay:     50 * time.Millisecond,
		now:            func() time.Time { return time.Now().UTC() },
		newID:          uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	// persistence always runs first
	if gateway != nil {
		s.hooks = append([]Hook{s.persist}, s.hooks...)
	}
	return s
}

// Initialize adopts the stored collection, or the seed collection when nothing
// is stored or the stored state cannot be used. Other load errors are retried
// and then returned; the store stays empty and does not save until a later
// Initialize succeeds, so a stored collection is never overwritten with seed
// data because of a transient outage.
func (s *Store) Initialize(ctx context.Context) (domain.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.loadOrSeed(ctx)
	if err != nil {
		return nil, err
	}
	s.items = items
	s.loaded = true
	return s.items.Clone(), nil
}

func (s *Store) loadOrSeed(ctx context.Context) (domain.Collection, error) {
	if s.gateway == nil {
		return SeedCollection(s.now()), nil
	}

	items, err := s.load(ctx)
	switch {
	case errors.Is(err, repository.ErrNoSnapshot):
		s.logger.Info("No stored fridge state, starting from seed data")
		return SeedCollection(s.now()), nil
	case errors.Is(err, repository.ErrCorruptSnapshot):
		s.logger.Warn("Stored fridge state is corrupt, starting from seed data", zap.Error(err))
		return SeedCollection(s.now()), nil
	case err != nil:
		return nil, fmt.Errorf("load fridge state: %w", err)
	}

	if err := items.Validate(); err != nil {
		s.logger.Warn("Stored fridge state is invalid, starting from seed data", zap.Error(err))
		return SeedCollection(s.now()), nil
	}
	if items == nil {
		items = domain.Collection{}
	}

	s.logger.Info("Loaded stored fridge state", zap.Int("items", len(items)))
	return items, nil
}

// load retries gateway errors other than a missing or corrupt snapshot
func (s *Store) load(ctx context.Context) (domain.Collection, error) {
	var (
		items domain.Collection
		err   error
	)
	for attempt := 0; attempt < s.persistRetries; attempt++ {
		items, err = s.gateway.Load(ctx)
		if err == nil || errors.Is(err, repository.ErrNoSnapshot) || errors.Is(err, repository.ErrCorruptSnapshot) {
			return items, err
		}

		s.logger.Warn("Failed to load fridge state, retrying",
			zap.Error(err),
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", s.persistRetries),
		)

		if attempt < s.persistRetries-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.retryDelay * time.Duration(1<<uint(attempt))):
			}
		}
	}
	return nil, err
}

// Add creates a new active item from draft and puts it at the front of the
// collection. Drafts that would not survive a reload are refused with the
// domain validation error.
func (s *Store) Add(ctx context.Context, draft domain.Draft) (domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	for s.items.IndexOf(id) >= 0 {
		id = s.newID()
	}

	item, err := domain.NewItem(id, draft, s.now())
	if err != nil {
		return domain.Item{}, err
	}

	s.items = append(domain.Collection{*item}, s.items...)
	s.afterMutation(ctx, Mutation{Kind: MutationAdd, Item: *item, At: item.AddedDate})
	return *item, nil
}

// AdjustQuantity changes an active item's quantity by delta unless the result
// would be zero or less. It reports whether the change was applied.
func (s *Store) AdjustQuantity(ctx context.Context, id uuid.UUID, delta int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.items.IndexOf(id)
	if idx < 0 || s.items[idx].IsDeleted {
		return false
	}
	if err := s.items[idx].AdjustQuantity(delta); err != nil {
		s.logger.Debug("Quantity adjustment rejected",
			zap.String("item_id", id.String()),
			zap.Int("quantity", s.items[idx].Quantity),
			zap.Int("delta", delta),
		)
		return false
	}

	s.afterMutation(ctx, Mutation{Kind: MutationAdjust, Item: s.items[idx], Delta: delta, At: s.now()})
	return true
}

// SoftDelete moves an item to the trash. It reports whether the item exists.
func (s *Store) SoftDelete(ctx context.Context, id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.items.IndexOf(id)
	if idx < 0 {
		return false
	}
	s.items[idx].MoveToTrash()
	s.afterMutation(ctx, Mutation{Kind: MutationTrash, Item: s.items[idx], At: s.now()})
	return true
}

// Restore takes an item out of the trash. It reports whether the item exists.
func (s *Store) Restore(ctx context.Context, id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.items.IndexOf(id)
	if idx < 0 {
		return false
	}
	s.items[idx].Restore()
	s.afterMutation(ctx, Mutation{Kind: MutationRestore, Item: s.items[idx], At: s.now()})
	return true
}

// Purge removes a trashed item for good. Active items are left alone; they
// have to be soft-deleted first.
func (s *Store) Purge(ctx context.Context, id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.items.IndexOf(id)
	if idx < 0 || !s.items[idx].IsDeleted {
		return false
	}
	removed := s.items[idx]
	s.items = append(s.items[:idx:idx], s.items[idx+1:]...)
	s.afterMutation(ctx, Mutation{Kind: MutationPurge, Item: removed, At: s.now()})
	return true
}

// Snapshot returns a copy of the current collection
func (s *Store) Snapshot() domain.Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.Clone()
}

// Get returns a copy of one item, trashed or not
func (s *Store) Get(id uuid.UUID) (domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.items.IndexOf(id)
	if idx < 0 {
		return domain.Item{}, domain.ErrItemNotFound
	}
	return s.items[idx], nil
}

// Now returns the store's notion of the current time
func (s *Store) Now() time.Time {
	return s.now()
}

// Status reports the outcome of the most recent save
func (s *Store) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{Items: len(s.items), LastSavedAt: s.lastSavedAt}
	if s.lastSaveErr != nil {
		st.LastSaveError = s.lastSaveErr.Error()
	}
	return st
}

func (s *Store) afterMutation(ctx context.Context, m Mutation) {
	for _, hook := range s.hooks {
		hook(ctx, m, s.items.Clone())
	}
}

// persist mirrors the collection to the gateway, retrying with exponential
// backoff. Failures are logged and kept for Status. A cancelled request does
// not cancel the save.
func (s *Store) persist(ctx context.Context, m Mutation, items domain.Collection) {
	if !s.loaded {
		s.logger.Warn("Fridge state was never loaded, skipping save",
			zap.String("mutation", string(m.Kind)),
		)
		return
	}
	ctx = context.WithoutCancel(ctx)

	var err error
	for attempt := 0; attempt < s.persistRetries; attempt++ {
		if err = s.gateway.Save(ctx, items); err == nil {
			s.lastSavedAt = s.now()
			s.lastSaveErr = nil
			return
		}

		s.logger.Warn("Failed to save fridge state, retrying",
			zap.String("mutation", string(m.Kind)),
			zap.String("item_id", m.Item.ID.String()),
			zap.Error(err),
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", s.persistRetries),
		)

		if attempt < s.persistRetries-1 {
			time.Sleep(s.retryDelay * time.Duration(1<<uint(attempt)))
		}
	}

	s.lastSaveErr = err
	s.logger.Error("Giving up saving fridge state",
		zap.String("mutation", string(m.Kind)),
		zap.Error(err),
	)
}
