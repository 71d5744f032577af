package singleton

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"cosmiccraft/internal/domain/repository"
	"cosmiccraft/internal/infra/lock"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bag struct {
	ID      int64
	OwnerID int64
	Items   []int
}

// memoryStore emulates the Postgres store. With uniqueOwner unset, CreateEmpty never
// detects an existing row, like a table without the unique user_id index.
type memoryStore struct {
	mu          sync.Mutex
	rows        []*bag
	nextID      int64
	creates     atomic.Int32
	saves       atomic.Int32
	uniqueOwner bool
	readDelay   time.Duration
}

func (s *memoryStore) FindByOwner(_ context.Context, ownerID int64) (*bag, error) {
	time.Sleep(s.readDelay)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.rows {
		if row.OwnerID == ownerID {
			clone := *row
			clone.Items = append([]int(nil), row.Items...)

			return &clone, nil
		}
	}

	return nil, repository.ErrOwnedResourceNotFound
}

func (s *memoryStore) CreateEmpty(_ context.Context, ownerID int64) (*bag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.uniqueOwner {
		for _, row := range s.rows {
			if row.OwnerID == ownerID {
				return nil, repository.ErrOwnedResourceExists
			}
		}
	}

	s.creates.Add(1)
	s.nextID++
	row := &bag{ID: s.nextID, OwnerID: ownerID}
	s.rows = append(s.rows, row)
	clone := *row

	return &clone, nil
}

func (s *memoryStore) Save(_ context.Context, b *bag) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.rows {
		if row.ID == b.ID {
			row.Items = append([]int(nil), b.Items...)
			s.saves.Add(1)

			return nil
		}
	}

	return repository.ErrOwnedResourceNotFound
}

func (s *memoryStore) countFor(ownerID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, row := range s.rows {
		if row.OwnerID == ownerID {
			n++
		}
	}

	return n
}

func runConcurrently(n int, fn func()) {
	var wg sync.WaitGroup
	start := make(chan struct{})
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			fn()
		}()
	}
	close(start)
	wg.Wait()
}

func TestManager_GetOrCreate_ConcurrentCallsCreateOnce(t *testing.T) {
	store := &memoryStore{readDelay: 2 * time.Millisecond}
	m := NewManager[*bag]("cart", store, lock.NewKeyedMutex())

	ids := make(chan int64, 32)
	runConcurrently(32, func() {
		b, err := m.GetOrCreate(context.Background(), 7)
		assert.NoError(t, err)
		if b != nil {
			ids <- b.ID
		}
	})
	close(ids)

	assert.Equal(t, 1, store.countFor(7))
	assert.EqualValues(t, 1, store.creates.Load())
	for id := range ids {
		assert.EqualValues(t, 1, id)
	}
}

func TestManager_GetOrCreate_ReplicasRelyOnInsertIfAbsent(t *testing.T) {
	store := &memoryStore{uniqueOwner: true, readDelay: 2 * time.Millisecond}
	// Separate lockers model two processes that cannot see each other's mutex.
	replicaA := NewManager[*bag]("cart", store, lock.NewKeyedMutex())
	replicaB := NewManager[*bag]("cart", store, lock.NewKeyedMutex())

	var calls atomic.Int32
	runConcurrently(16, func() {
		m := replicaA
		if calls.Add(1)%2 == 0 {
			m = replicaB
		}
		b, err := m.GetOrCreate(context.Background(), 9)
		assert.NoError(t, err)
		assert.NotNil(t, b)
	})

	assert.Equal(t, 1, store.countFor(9))
}

func TestManager_Get_DoesNotCreate(t *testing.T) {
	store := &memoryStore{}
	m := NewManager[*bag]("wishlist", store, lock.NewKeyedMutex())

	_, err := m.Get(context.Background(), 3)
	assert.True(t, errors.Is(err, repository.ErrOwnedResourceNotFound))
	assert.Zero(t, store.countFor(3))
}

func TestManager_Mutate_RequireExisting(t *testing.T) {
	store := &memoryStore{}
	m := NewManager[*bag]("cart", store, lock.NewKeyedMutex())
	ctx := context.Background()

	_, err := m.Mutate(ctx, 7, RequireExisting, func(b *bag) error {
		b.Items = append(b.Items, 1)

		return nil
	})
	require.True(t, errors.Is(err, repository.ErrOwnedResourceNotFound))
	assert.Zero(t, store.countFor(7))
	assert.Zero(t, store.saves.Load())

	_, err = m.GetOrCreate(ctx, 7)
	require.NoError(t, err)

	b, err := m.Mutate(ctx, 7, RequireExisting, func(b *bag) error {
		b.Items = append(b.Items, 1)

		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, b.Items)
}

func TestManager_Mutate_CreateIfAbsent(t *testing.T) {
	store := &memoryStore{}
	m := NewManager[*bag]("wishlist", store, lock.NewKeyedMutex())

	b, err := m.Mutate(context.Background(), 5, CreateIfAbsent, func(b *bag) error {
		b.Items = append(b.Items, 10)

		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{10}, b.Items)
	assert.Equal(t, 1, store.countFor(5))
}

func TestManager_Mutate_FnErrorSkipsSave(t *testing.T) {
	store := &memoryStore{}
	m := NewManager[*bag]("cart", store, lock.NewKeyedMutex())
	ctx := context.Background()
	_, err := m.GetOrCreate(ctx, 1)
	require.NoError(t, err)

	sentinel := errors.New("item missing")
	_, err = m.Mutate(ctx, 1, RequireExisting, func(b *bag) error {
		b.Items = append(b.Items, 99)

		return sentinel
	})
	assert.True(t, errors.Is(err, sentinel))
	assert.Zero(t, store.saves.Load())

	b, err := m.Get(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, b.Items)
}

func TestManager_Mutate_ConcurrentUpdatesAreNotLost(t *testing.T) {
	store := &memoryStore{readDelay: time.Millisecond}
	m := NewManager[*bag]("cart", store, lock.NewKeyedMutex())

	runConcurrently(20, func() {
		_, err := m.Mutate(context.Background(), 4, CreateIfAbsent, func(b *bag) error {
			b.Items = append(b.Items, 1)

			return nil
		})
		assert.NoError(t, err)
	})

	b, err := m.Get(context.Background(), 4)
	require.NoError(t, err)
	assert.Len(t, b.Items, 20)
}
