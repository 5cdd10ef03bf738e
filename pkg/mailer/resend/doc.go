// Package resend implements transport.Sender on top of the Resend API,
// as an alternative delivery path for messages validated against
// Postmark's rules.
//
// The Postmark tag becomes a Resend tag named "tag" and every metadata
// pair becomes a Resend tag of the same name. Tracking directives are
// dropped.
//
//	sender, err := resend.New(resend.Config{APIKey: os.Getenv("RESEND_API_KEY")})
//	if err != nil {
//		return err
//	}
//	tr, err := transport.New(sender)
package resend
