// Package lock provides per-key mutual exclusion for the singleton resource managers.
package lock

import (
	"context"
	"sync"

	"cosmiccraft/internal/domain/service"

	"github.com/pkg/errors"
)

// keyedMutex is an in-process KeyedLocker. Entries are reference counted and removed
// once no goroutine holds or waits for the key, so the map does not grow with the user base.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedEntry
}

type keyedEntry struct {
	sem  chan struct{}
	refs int
}

// NewKeyedMutex creates an in-process KeyedLocker.
func NewKeyedMutex() service.KeyedLocker {
	return newKeyedMutex()
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*keyedEntry)}
}

// Lock acquires key, giving up when ctx is done.
func (k *keyedMutex) Lock(ctx context.Context, key string) (func(), error) {
	k.mu.Lock()
	entry, ok := k.locks[key]
	if !ok {
		entry = &keyedEntry{sem: make(chan struct{}, 1)}
		k.locks[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	select {
	case entry.sem <- struct{}{}:
	case <-ctx.Done():
		k.release(key, entry)

		return nil, errors.WithStack(ctx.Err())
	}

	var once sync.Once

	return func() {
		once.Do(func() {
			<-entry.sem
			k.release(key, entry)
		})
	}, nil
}

func (k *keyedMutex) release(key string, entry *keyedEntry) {
	k.mu.Lock()
	defer k.mu.Unlock()

	entry.refs--
	if entry.refs == 0 {
		delete(k.locks, key)
	}
}
