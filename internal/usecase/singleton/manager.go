// Package singleton implements get-or-create semantics for resources owned one per user.
package singleton

import (
	"context"
	"strconv"

	"cosmiccraft/internal/domain/repository"
	"cosmiccraft/internal/domain/service"
	"cosmiccraft/internal/errors"
)

// Store is the persistence contract a per-owner resource must satisfy.
// FindByOwner returns repository.ErrOwnedResourceNotFound when the owner has nothing yet;
// CreateEmpty returns repository.ErrOwnedResourceExists when another creator won.
type Store[T any] interface {
	FindByOwner(ctx context.Context, ownerID int64) (T, error)
	CreateEmpty(ctx context.Context, ownerID int64) (T, error)
	Save(ctx context.Context, resource T) error
}

// Mode selects what Mutate does for an owner without a resource.
type Mode int

const (
	// RequireExisting fails with repository.ErrOwnedResourceNotFound.
	RequireExisting Mode = iota
	// CreateIfAbsent creates an empty resource first.
	CreateIfAbsent
)

// Manager serialises creation and mutation per owner so that at most one
// resource exists for any owner, and concurrent mutations never lose updates.
type Manager[T any] struct {
	kind   string
	store  Store[T]
	locker service.KeyedLocker
}

// NewManager builds a manager. kind namespaces lock keys, e.g. "cart".
func NewManager[T any](kind string, store Store[T], locker service.KeyedLocker) *Manager[T] {
	return &Manager[T]{
		kind:   kind,
		store:  store,
		locker: locker,
	}
}

// Get returns the resource of ownerID without creating it.
func (m *Manager[T]) Get(ctx context.Context, ownerID int64) (T, error) {
	return m.store.FindByOwner(ctx, ownerID)
}

// GetOrCreate returns the resource of ownerID, creating an empty one on first access.
func (m *Manager[T]) GetOrCreate(ctx context.Context, ownerID int64) (T, error) {
	resource, err := m.store.FindByOwner(ctx, ownerID)
	if err == nil {
		return resource, nil
	}
	if !errors.Is(err, repository.ErrOwnedResourceNotFound) {
		var zero T

		return zero, err
	}

	unlock, err := m.lock(ctx, ownerID)
	if err != nil {
		var zero T

		return zero, err
	}
	defer unlock()

	return m.loadOrCreate(ctx, ownerID)
}

// Mutate loads the resource of ownerID, applies fn and saves the result while holding
// the owner's lock. When fn returns an error nothing is saved.
func (m *Manager[T]) Mutate(ctx context.Context, ownerID int64, mode Mode, fn func(T) error) (T, error) {
	var zero T

	unlock, err := m.lock(ctx, ownerID)
	if err != nil {
		return zero, err
	}
	defer unlock()

	var resource T
	switch mode {
	case CreateIfAbsent:
		resource, err = m.loadOrCreate(ctx, ownerID)
	default:
		resource, err = m.store.FindByOwner(ctx, ownerID)
	}
	if err != nil {
		return zero, err
	}

	if err := fn(resource); err != nil {
		return zero, err
	}

	if err := m.store.Save(ctx, resource); err != nil {
		return zero, errors.Wrapf(err, "failed to save %s of owner %d", m.kind, ownerID)
	}

	return resource, nil
}

// loadOrCreate must run under the owner's lock. The store's insert-if-absent still guards
// against creators in other processes: a lost insert falls back to reading the winner.
func (m *Manager[T]) loadOrCreate(ctx context.Context, ownerID int64) (T, error) {
	resource, err := m.store.FindByOwner(ctx, ownerID)
	if err == nil || !errors.Is(err, repository.ErrOwnedResourceNotFound) {
		return resource, err
	}

	resource, err = m.store.CreateEmpty(ctx, ownerID)
	if errors.Is(err, repository.ErrOwnedResourceExists) {
		return m.store.FindByOwner(ctx, ownerID)
	}
	if err != nil {
		var zero T

		return zero, errors.Wrapf(err, "failed to create %s of owner %d", m.kind, ownerID)
	}

	return resource, nil
}

func (m *Manager[T]) lock(ctx context.Context, ownerID int64) (func(), error) {
	unlock, err := m.locker.Lock(ctx, m.kind+":"+strconv.FormatInt(ownerID, 10))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to lock %s of owner %d", m.kind, ownerID)
	}

	return unlock, nil
}
