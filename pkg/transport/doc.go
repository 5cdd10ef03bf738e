// Package transport turns a [mail.Message] into a Postmark send call.
//
// [Translate] maps a message onto the fourteen fields of a [Payload]:
//
//   - From is the first From address; a message without one fails with
//     [ErrMissingFromAddress]
//   - To, Cc and Bcc are comma-joined "<email>" or "Name <email>" strings;
//     empty Cc and Bcc are absent
//   - ReplyTo is the first Reply-To address only
//   - a flat text body becomes TextBody; a MIME body contributes its first
//     non-attachment text/html and text/plain parts
//   - attachment parts become base64 encoded Attachments, in order
//   - headers other than Bcc, Cc, From, Reply-To, Sender, Subject, To, Date
//     and Content-Type are kept; when a name repeats the last value wins
//   - Tag, Metadata and TrackLinks come from the message capabilities and are
//     absent without them; TrackOpens defaults to true
//
// [Transport] runs the validation chain, translates and calls a [Sender]:
//
//	t, err := transport.New(postmarkClient,
//	    transport.WithValidator(validate.NewMessageValidator(
//	        validate.FromAddress(permittedSenders),
//	    )),
//	)
//	err = t.Send(ctx, msg)
//
// A message that fails validation is never handed to the sender; the
// returned error is a *validate.Failure. Sender errors are joined with
// [ErrSendFailed].
package transport
