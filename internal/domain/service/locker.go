package service

import "context"

// KeyedLocker provides mutual exclusion scoped to a single key.
// Holders of different keys never block each other.
type KeyedLocker interface {
	// Lock blocks until key is held or ctx is done. The returned function releases the key
	// and must be called exactly once.
	Lock(ctx context.Context, key string) (unlock func(), err error)
}
