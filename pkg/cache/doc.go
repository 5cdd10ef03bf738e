// Package cache stores named lists of strings for the Postmark lookup caches.
//
// The sender signature list, the verified domain list and the suppression
// list are each kept under a single key as a whole []string. The [Store]
// interface is deliberately small:
//
//   - Get(ctx, key) ([]string, bool, error): the bool reports a hit
//   - Save(ctx, key, list) error: replaces the stored list
//
// An empty list that has been saved is a hit. Expiry is a backend concern
// configured through options and is invisible to callers: an expired entry
// simply reads as a miss.
//
// # In-Memory Store
//
// Use [NewMemory] for single-process deployments and tests:
//
//	s := cache.NewMemory(cache.WithTTL(time.Hour))
//
// Lists are copied on the way in and on the way out, so callers may mutate
// the slices they pass or receive.
//
// # Redis Store
//
// Use [NewRedis] to share the lists between processes. The client should be
// obtained from pkg/redis.Open. Lists are stored as JSON arrays:
//
//	client, err := redis.Open(ctx, os.Getenv("REDIS_URL"))
//	s := cache.NewRedis(client,
//	    cache.WithPrefix("postmark"),
//	    cache.WithRedisTTL(24 * time.Hour),
//	)
//
// # Loading on miss
//
// [Loader] wraps a Store and fills a missing key from a load function.
// Concurrent misses for the same key within one Loader share a single call
// to the load function:
//
//	l := cache.NewLoader(s)
//	list, err := l.GetOrLoad(ctx, "PostmarkDomains", fetchDomains)
//
// Unlike a best-effort cache, a failed Save is returned to the caller.
package cache
