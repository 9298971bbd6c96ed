package ports

import "context"

// Read-through cache for one session's server-owned list (cart or tickets).
// A miss is reported with ok == false and a nil error.
type ListCache[T any] interface {
	Get(ctx context.Context, key string) (items []T, ok bool, err error)
	Set(ctx context.Context, key string, items []T) error
	Invalidate(ctx context.Context, keys ...string) error
}
