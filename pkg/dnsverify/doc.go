// Package dnsverify checks the DNS records a domain must publish before
// Postmark accepts mail from it: SPF including spf.mtasv.net, the
// Return-Path CNAME to pm.mtasv.net and the DKIM key.
//
//	v := dnsverify.New()
//	if err := v.SPF(ctx, "example.com"); errors.Is(err, dnsverify.ErrMismatch) {
//		// SPF exists but does not include Postmark
//	}
package dnsverify
