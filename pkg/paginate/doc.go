// Package paginate collects a string field from every record of a paginated
// Postmark list endpoint.
//
// Postmark list endpoints (/domains, /senders) accept count and offset query
// parameters and answer with a JSON object holding a TotalCount and a list
// of records:
//
//	{"TotalCount": 2, "Domains": [{"Name": "example.com"}, ...]}
//
// [FetchAll] requests pages of [PageSize] records, offsetting each request by
// the number of items collected so far, until it holds at least TotalCount
// items:
//
//	names, err := paginate.FetchAll(ctx, client.ListDomains, "Domains", "Name")
//
// Every page is checked before it is used. TotalCount must be present and
// integer-coercible, the list field must be a JSON array (non-empty while
// items remain), and every record must carry a non-empty string in the item
// field. Collected values are lower-cased and kept in encounter order.
// A TotalCount of zero ends the walk after the first request.
//
// Contract violations are reported with [ErrMissingTotalCount],
// [ErrMalformedListField] and [ErrMalformedListItem] and are not retried.
// Errors from the page function are joined with [ErrFetchFailed].
//
// [WithMaxPages] bounds the number of requests for upstreams that keep
// raising their TotalCount. The default is unbounded.
package paginate
