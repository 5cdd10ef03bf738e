// Package mailer turns markdown templates into Postmark-ready messages.
//
// A template is a markdown file rendered with text/template, optionally
// preceded by a YAML [Frontmatter] block that sets the subject and the
// Postmark extensions of the message:
//
//	---
//	Subject: Welcome, {{.Name}}
//	Tag: welcome
//	TrackLinks: HtmlAndText
//	Metadata:
//	  campaign: onboarding
//	---
//	Hello **{{.Name}}**, thanks for signing up.
//
// [Composer] renders the markdown to HTML with goldmark and wraps it in an
// html/template layout that receives .Subject, .Content and .Data. The
// executed markdown becomes the text/plain part.
//
// [Mailer] builds a mail.Message from a template and [SendParams] and sends
// it through a transport.Transport, so every message is checked by the
// validation chain before it reaches the provider:
//
//	composer := mailer.NewComposer(templates.FS, mailer.WithDefaultLayout("base.html"))
//	m := mailer.New(composer, tr, mailer.WithFrom("Team <team@example.com>"))
//	res, err := m.Send(ctx, mailer.SendParams{
//		To:       "jane@example.com",
//		Template: "welcome.md",
//		Data:     map[string]any{"Name": "Jane"},
//	})
//
// Subject resolution order: SendParams.Subject, the frontmatter subject,
// then the fallback subject.
package mailer
