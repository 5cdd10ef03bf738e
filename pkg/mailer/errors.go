package mailer

import "errors"

var (
	ErrNoRecipient        = errors.New("mailer: message has no recipient")
	ErrNoFromAddress      = errors.New("mailer: no from address configured")
	ErrTemplateNotFound   = errors.New("mailer: template not found")
	ErrLayoutNotFound     = errors.New("mailer: layout not found")
	ErrInvalidFrontmatter = errors.New("mailer: invalid frontmatter")
	ErrRenderFailed       = errors.New("mailer: render failed")
)
