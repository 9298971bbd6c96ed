package services

import (
	"context"
	"log/slog"
	"sync"
	"vendepass-client/internal/domain"
	"vendepass-client/internal/ports"

	"github.com/google/uuid"
)

// Namespace for per-session cache keys. Tokens never appear in keys.
var sessionKeySpace = uuid.MustParse("6f1c2f5e-3a0b-4c55-9d7e-2b8f0a4e1c11")

// CacheKey derives the list-cache key for one session's list.
func CacheKey(list string, session domain.Session) string {
	return list + ":" + uuid.NewSHA1(sessionKeySpace, []byte(session.Token)).String()
}

// Fetch attempts per list call when mutations keep racing the fetch.
const maxListAttempts = 3

// syncedList is the local copy of a server-owned list. It is replaced
// wholesale on fetch and only shrinks after the server confirms a mutation.
//
// epoch counts confirmed mutations and invalidations. A fetch that started
// in an older epoch may predate the mutation, so it neither fills the cache
// nor replaces local state.
type syncedList[T domain.Keyed] struct {
	name   string
	cache  ports.ListCache[T]
	logger *slog.Logger

	mu    sync.Mutex
	items []T
	epoch uint64
}

func newSyncedList[T domain.Keyed](name string, cache ports.ListCache[T], logger *slog.Logger) *syncedList[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &syncedList[T]{name: name, cache: cache, logger: logger}
}

func (l *syncedList[T]) key(session domain.Session) string {
	return CacheKey(l.name, session)
}

// list serves from the cache when possible and otherwise calls fetch. A
// failed fetch leaves local state untouched. Cache errors are logged and
// treated as misses.
func (l *syncedList[T]) list(ctx context.Context, session domain.Session, fetch func(context.Context) ([]T, error)) ([]T, error) {
	key := l.key(session)

	for range maxListAttempts {
		epoch := l.currentEpoch()

		if l.cache != nil && session.Valid() {
			cached, ok, err := l.cache.Get(ctx, key)
			if err != nil {
				l.logger.WarnContext(ctx, "list cache get failed", "list", l.name, "err", err)
			} else if ok {
				if items, ok := l.store(ctx, session, epoch, cached, false); ok {
					return items, nil
				}
				continue
			}
		}

		items, err := fetch(ctx)
		if err != nil {
			return nil, err
		}

		if stored, ok := l.store(ctx, session, epoch, items, true); ok {
			return stored, nil
		}
		l.logger.DebugContext(ctx, "list fetch raced a mutation", "list", l.name)
	}

	// Local state already reflects every confirmed mutation.
	return l.snapshot(), nil
}

// store replaces local state with items, and writes them to the cache when
// fill is set, unless the epoch moved on since the read began.
func (l *syncedList[T]) store(ctx context.Context, session domain.Session, epoch uint64, items []T, fill bool) ([]T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.epoch != epoch {
		return nil, false
	}

	// Set runs under mu, ordered against invalidate's epoch bump.
	if fill && l.cache != nil && session.Valid() {
		if err := l.cache.Set(ctx, l.key(session), items); err != nil {
			l.logger.WarnContext(ctx, "list cache set failed", "list", l.name, "err", err)
		}
	}

	l.items = append(make([]T, 0, len(items)), items...)
	return append([]T(nil), l.items...), true
}

// remove runs mutate and, only if it succeeds, drops id from the local list
// and invalidates the cached copy.
func (l *syncedList[T]) remove(ctx context.Context, session domain.Session, id string, mutate func(context.Context) error) error {
	if err := mutate(ctx); err != nil {
		return err
	}

	l.mu.Lock()
	l.epoch++
	l.items, _ = domain.RemoveByKey(l.items, id)
	l.mu.Unlock()

	l.invalidate(ctx, session)
	return nil
}

func (l *syncedList[T]) invalidate(ctx context.Context, session domain.Session) {
	l.mu.Lock()
	l.epoch++
	l.mu.Unlock()

	if l.cache == nil {
		return
	}
	if err := l.cache.Invalidate(ctx, l.key(session)); err != nil {
		l.logger.WarnContext(ctx, "list cache invalidate failed", "list", l.name, "err", err)
	}
}

func (l *syncedList[T]) currentEpoch() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.epoch
}

func (l *syncedList[T]) snapshot() []T {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]T(nil), l.items...)
}

func (l *syncedList[T]) clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.epoch++
	l.items = nil
}
