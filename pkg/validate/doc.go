// Package validate checks outbound messages against Postmark's rules before
// anything is sent.
//
// A [Chain] is a literal, ordered slice of [MessageCheck] functions. It runs
// them in order and stops at the first check that reports violations,
// returning them as a [*Failure]:
//
//	v := validate.NewMessageValidator(
//	    validate.FromAddress(permittedSenders),
//	    validate.Recipients(suppressionList),
//	)
//	if err := v.Validate(ctx, msg); err != nil {
//	    if f, ok := validate.AsFailure(err); ok {
//	        log.Println(f.Codes())
//	    }
//	}
//
// [NewMessageValidator] starts with the standard Postmark checks:
//
//  1. HasFromAddress
//  2. MaxFromCount(1)
//  3. HasSubject
//  4. HasToRecipient
//  5. MaxRecipientCount(50), counting To, Cc and Bcc
//  6. MaxReplyToCount(1)
//  7. MetaData: keys up to 20 bytes, scalar values up to 80 bytes
//
// Checks that need remote lookups ([FromAddress], [Recipients]) are not part
// of the default chain and are appended by the application. When a lookup
// fails the chain returns that error unchanged instead of a *Failure.
//
// Single values are validated with [StringCheck] functions and
// [ValidateString]:
//
//	err := validate.ValidateString(ctx, "someone@example.com",
//	    validate.NotSuppressed(suppressionList))
//
// Every *Failure matches [ErrValidationFailed] with errors.Is.
package validate
