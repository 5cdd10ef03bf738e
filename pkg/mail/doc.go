// Package mail models an outbound email as seen by the Postmark transport.
//
// A [Message] holds address lists, a subject, an ordered list of extra
// headers and a [Body]. The body is either empty, flat text, or a list of
// MIME [Part] values (text, HTML and attachments).
//
// # Capabilities
//
// Postmark extensions (tag, metadata, open tracking, link tracking) are
// described by an explicit [Capabilities] value attached to the message.
// A nil descriptor means a plain message; a nil field inside it means that
// single extension is absent:
//
//	msg := mail.NewPostmarkMessage().
//	    AddFrom("me@example.com", "Me").
//	    AddTo("you@example.com").
//	    SetSubject("Hello").
//	    SetTag("welcome").
//	    SetMetadata("user_id", 42)
//
// [NewCapabilities] enables every extension with Postmark's defaults: opens
// are tracked and links are tracked in HTML only ([LinkTrackingHTMLOnly]).
//
// # Parsing
//
// [Parse] reads an RFC 5322 message with [github.com/emersion/go-message].
// Address headers and the subject populate the structured fields; nested
// multiparts are flattened into a single list of parts in encounter order.
package mail
