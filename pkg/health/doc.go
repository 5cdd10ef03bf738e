// Package health aggregates dependency probes (Redis, the Postmark API)
// for the long-running postmarkit process.
//
//	checks := health.Checks{
//		"redis":    redis.Healthcheck(client),
//		"postmark": postmark.Healthcheck(server),
//	}
//	http.Handle("/health/", http.StripPrefix("/health", health.Handler(checks)))
//
// [Run] returns the same [Report] for use outside HTTP.
package health
