package dnsverify

import "errors"

var (
	ErrInvalidDomain  = errors.New("dnsverify: invalid domain")
	ErrLookupFailed   = errors.New("dnsverify: dns lookup failed")
	ErrRecordNotFound = errors.New("dnsverify: record not found")
	ErrMismatch       = errors.New("dnsverify: record does not match")
)
