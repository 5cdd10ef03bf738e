// Package senders decides whether an address may be used as a Postmark sender.
//
// Postmark accepts mail from verified sender signatures and from any address
// on a verified domain. [Permitted] fetches both lists from the account API
// the first time they are needed, stores them in a [cache.Store] under
// [SenderListCacheKey] and [DomainListCacheKey], and answers every later
// question from the cache:
//
//	p, err := senders.New(accountClient, cache.NewMemory())
//	ok, err := p.IsPermittedSender(ctx, "Me@Example.com")
//
// An email address matches when it is a sender signature or its domain is
// verified; the sender list is consulted first and a match there skips the
// domain list. A bare hostname only consults the domain list. Matching is
// case-insensitive because both the lists and the candidate are lower-cased.
//
// There is no invalidation: a list stays cached until the store expires it.
// Concurrent first lookups within one process share a single fetch.
package senders
