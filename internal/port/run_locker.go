package port

import "context"

// RunLocker serializes batch runs across processes. Acquire returns
// false if another run already holds the lock.
type RunLocker interface {
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}
