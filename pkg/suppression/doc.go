// Package suppression answers whether Postmark will refuse to deliver to an
// address because of a bounce, spam complaint or unsubscribe.
//
// The cached list lives under [ListCacheKey]. A lookup checks the cache
// first and only asks Postmark about that single address on a miss. When
// Postmark confirms the suppression the address is appended to the cached
// list, so the next lookup is local:
//
//	list, err := suppression.New(serverClient, store)
//	suppressed, err := list.IsSuppressed(ctx, "someone@example.com")
//
// A missing cache entry is treated as an empty list, not as a reason to
// download everything. [List.SeedSuppressionListCache] downloads the whole
// suppression dump and replaces the cached list; [SeedTask] runs it on a
// cron schedule (see pkg/schedule).
//
// Appends are last-writer-wins: two processes confirming different
// addresses at the same time may drop one of them until the next seed.
package suppression
