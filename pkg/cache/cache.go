// Package cache deduplicates fetches of the same URL within a single aggregation run.
package cache

import (
	"context"
	"net/url"

	logging "github.com/KonishchevDmitry/go-easy-logging"
	cache "github.com/go-pkgz/expirable-cache/v3"
	"golang.org/x/sync/singleflight"
)

type Cache[T any] struct {
	cache    cache.Cache[string, T]
	inflight singleflight.Group
}

func New[T any]() *Cache[T] {
	return &Cache[T]{
		cache: cache.NewCache[string, T](),
	}
}

// Cached returns the value fetched earlier for the URL or fetches it. Concurrent calls for the same URL share a
// single fetch. Failures aren't cached.
func (c *Cache[T]) Cached(
	ctx context.Context, url *url.URL,
	fetch func(ctx context.Context, url *url.URL) (T, error),
) (T, error) {
	key := url.String()

	if value, ok := c.cache.Get(key); ok {
		logging.L(ctx).Debugf("Got %s from cache.", url)
		return value, nil
	}

	result, err, shared := c.inflight.Do(key, func() (any, error) {
		if value, ok := c.cache.Get(key); ok {
			return value, nil
		}

		value, err := fetch(ctx, url)
		if err != nil {
			return nil, err
		}

		logging.L(ctx).Debugf("Add %s to cache.", url)
		c.cache.Add(key, value)

		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	if shared {
		logging.L(ctx).Debugf("%s fetch has been shared between concurrent callers.", url)
	}

	return result.(T), nil
}

func (c *Cache[T]) Len() int {
	return c.cache.Len()
}

func (c *Cache[T]) Hits() int {
	return c.cache.Stat().Hits
}
