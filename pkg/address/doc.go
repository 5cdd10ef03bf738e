// Package address classifies strings as email addresses or DNS hostnames.
//
// Postmark authorises senders either by a verified sender signature (a full
// email address) or by a verified sending domain. Callers that accept "an
// email or a domain" use [Classify] to find out which one they were given:
//
//	res, err := address.Classify("Team@Example.com")
//	// res.Email    == "team@example.com"
//	// res.Hostname == "example.com"
//
//	res, err = address.Classify("example.com")
//	// res.Email    == "" (res.HasEmail() == false)
//	// res.Hostname == "example.com"
//
// Results are always lower-cased. Input is trimmed before classification.
//
// # Validation rules
//
// [IsEmail] accepts the common local-part@domain form: the format check is
// delegated to [github.com/badoux/checkmail], the local part is limited to 64
// octets and may not start, end or repeat a dot, and the domain part must
// itself pass [IsHostname].
//
// [IsHostname] applies the DNS hostname rules through the IDNA lookup profile
// from [golang.org/x/net/idna]: letters, digits and hyphens only, labels of
// 1-63 octets, 253 octets in total, no leading or trailing hyphen, at least
// two labels and an alphabetic (or punycode) top-level label. Internationalised
// names are accepted in either Unicode or punycode form.
//
// # Errors
//
//   - [ErrEmptyInput]: the input was empty after trimming
//   - [ErrNeitherEmailNorHostname]: the input is not an email nor a hostname
//   - [ErrNotAnEmailAddress]: returned by callers that require an email
package address
