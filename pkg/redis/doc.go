// Package redis opens the go-redis client backing the shared list cache.
//
// [Open] parses a redis:// or rediss:// URL, applies pool and timeout
// options and pings the server with a bounded number of retries:
//
//	client, err := redis.Open(ctx, cfg.Redis.URL,
//		redis.WithRetry(5, time.Second),
//		redis.WithLogger(log),
//	)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	store := cache.NewRedis(client, cache.WithPrefix("postmarkit"))
//
// [Healthcheck] wraps a ping for readiness probes.
package redis
