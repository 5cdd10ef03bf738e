// Package postmark is a minimal client for the Postmark HTTP API.
//
// Two clients mirror Postmark's two token scopes:
//
//   - [Client] uses the server token (X-Postmark-Server-Token) to send mail
//     (POST /email) and to read the suppression dump of a message stream
//     (GET /message-streams/{stream}/suppressions/dump).
//   - [AccountClient] uses the account token (X-Postmark-Account-Token) to
//     page through verified domains (GET /domains) and sender signatures
//     (GET /senders).
//
// [Client] implements transport.Sender and suppression.API; [AccountClient]
// implements senders.AccountAPI:
//
//	cfg := postmark.Config{ServerToken: "...", AccountToken: "..."}
//	server := postmark.New(cfg, postmark.WithLogger(log))
//	account := postmark.NewAccount(cfg)
//
// List and suppression responses are decoded into generic maps with
// json.Number values so the callers can validate the shape themselves.
//
// Non-2xx responses become an [*APIError] joined with [ErrRequestFailed].
// Requests are never retried.
package postmark
