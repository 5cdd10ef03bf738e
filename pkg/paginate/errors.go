package paginate

import "errors"

var (
	// ErrMissingTotalCount is returned when a page has no integer TotalCount.
	ErrMissingTotalCount = errors.New("paginate: expected a numeric TotalCount in the response")

	// ErrMalformedListField is returned when the list field is absent, not a list,
	// or empty while more items are expected.
	ErrMalformedListField = errors.New("paginate: list field is missing or is not a list")

	// ErrMalformedListItem is returned when a record lacks a non-empty string item field.
	ErrMalformedListItem = errors.New("paginate: list record does not contain the expected string field")

	// ErrFetchFailed wraps errors returned by the page function.
	ErrFetchFailed = errors.New("paginate: failed to fetch page")

	// ErrTooManyPages is returned when the configured page limit is reached
	// before all items were collected.
	ErrTooManyPages = errors.New("paginate: page limit reached before the list was complete")
)
