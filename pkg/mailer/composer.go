package mailer

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sync"
	texttemplate "text/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/dmitrymomot/postmarkit/pkg/mail"
)

// ComposerOption configures a Composer.
type ComposerOption func(*composerOptions)

type composerOptions struct {
	templateDir   string
	layoutDir     string
	defaultLayout string
	markdown      goldmark.Markdown
	sanitizer     *bluemonday.Policy
}

func defaultComposerOptions() *composerOptions {
	return &composerOptions{
		templateDir: ".",
		layoutDir:   "layouts",
		markdown:    goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// WithTemplateDir sets the directory holding markdown templates.
// Default: "."
func WithTemplateDir(dir string) ComposerOption {
	return func(o *composerOptions) {
		if dir != "" {
			o.templateDir = dir
		}
	}
}

// WithLayoutDir sets the directory holding HTML layouts.
// Default: "layouts"
func WithLayoutDir(dir string) ComposerOption {
	return func(o *composerOptions) {
		if dir != "" {
			o.layoutDir = dir
		}
	}
}

// WithDefaultLayout sets the layout used when a template names none.
// Without one, such templates render to bare HTML fragments.
func WithDefaultLayout(name string) ComposerOption {
	return func(o *composerOptions) {
		o.defaultLayout = name
	}
}

// WithMarkdown replaces the markdown converter.
// Default: goldmark with GitHub Flavored Markdown.
func WithMarkdown(md goldmark.Markdown) ComposerOption {
	return func(o *composerOptions) {
		if md != nil {
			o.markdown = md
		}
	}
}

// WithSanitizer filters the rendered markdown through policy before it is
// placed in the layout. Use it when templates embed raw HTML, e.g. with a
// goldmark converter configured with html.WithUnsafe. See EmailPolicy.
func WithSanitizer(policy *bluemonday.Policy) ComposerOption {
	return func(o *composerOptions) {
		o.sanitizer = policy
	}
}

// Composer renders markdown templates into message content.
// Parsed templates and layouts are cached; rendering is safe for concurrent use.
type Composer struct {
	fsys fs.FS
	opts *composerOptions

	mu        sync.RWMutex
	templates map[string]*parsedTemplate
	layouts   map[string]*template.Template
}

type parsedTemplate struct {
	frontmatter Frontmatter
	subject     *texttemplate.Template
	body        *texttemplate.Template
}

// NewComposer creates a Composer reading from fsys.
func NewComposer(fsys fs.FS, opts ...ComposerOption) *Composer {
	o := defaultComposerOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Composer{
		fsys:      fsys,
		opts:      o,
		templates: make(map[string]*parsedTemplate),
		layouts:   make(map[string]*template.Template),
	}
}

// Composition is a rendered template.
type Composition struct {
	Frontmatter Frontmatter
	Subject     string
	Text        string // markdown after template execution
	HTML        string
}

// Compose executes the named template with data, converts the result to
// HTML and wraps it in the layout.
func (c *Composer) Compose(name string, data any) (*Composition, error) {
	tpl, err := c.template(name)
	if err != nil {
		return nil, err
	}

	var subject, text bytes.Buffer
	if err := tpl.subject.Execute(&subject, data); err != nil {
		return nil, fmt.Errorf("%w: %s subject: %w", ErrRenderFailed, name, err)
	}
	if err := tpl.body.Execute(&text, data); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRenderFailed, name, err)
	}

	var fragment bytes.Buffer
	if err := c.opts.markdown.Convert(text.Bytes(), &fragment); err != nil {
		return nil, fmt.Errorf("%w: %s markdown: %w", ErrRenderFailed, name, err)
	}

	html := fragment.String()
	if c.opts.sanitizer != nil {
		html = c.opts.sanitizer.Sanitize(html)
	}

	out := &Composition{
		Frontmatter: tpl.frontmatter,
		Subject:     subject.String(),
		Text:        text.String(),
		HTML:        html,
	}

	layoutName := tpl.frontmatter.Layout
	if layoutName == "" {
		layoutName = c.opts.defaultLayout
	}
	if layoutName == "" {
		return out, nil
	}

	layout, err := c.layout(layoutName)
	if err != nil {
		return nil, err
	}
	var page bytes.Buffer
	err = layout.Execute(&page, map[string]any{
		"Subject": out.Subject,
		"Content": template.HTML(html), //nolint:gosec // produced by the markdown converter
		"Data":    data,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: layout %s: %w", ErrRenderFailed, layoutName, err)
	}
	out.HTML = page.String()
	return out, nil
}

// Apply writes the composition into msg: subject, a text/plain and a
// text/html part, and the Postmark extensions named in the frontmatter.
func (c *Composition) Apply(msg *mail.Message) error {
	fm := c.Frontmatter
	if fm.TrackLinks != "" {
		mode, err := mail.ParseLinkTracking(fm.TrackLinks)
		if err != nil {
			return errors.Join(ErrInvalidFrontmatter, err)
		}
		msg.SetTrackLinks(mode)
	}
	if fm.Tag != "" {
		msg.SetTag(fm.Tag)
	}
	if fm.TrackOpens != nil {
		msg.SetTrackOpens(*fm.TrackOpens)
	}
	for k, v := range fm.Metadata {
		msg.SetMetadata(k, v)
	}

	if c.Subject != "" {
		msg.SetSubject(c.Subject)
	}
	msg.Body = mail.NewMultipartBody(mail.NewTextPart(c.Text), mail.NewHTMLPart(c.HTML))
	return nil
}

func (c *Composer) template(name string) (*parsedTemplate, error) {
	c.mu.RLock()
	tpl, ok := c.templates[name]
	c.mu.RUnlock()
	if ok {
		return tpl, nil
	}

	raw, err := fs.ReadFile(c.fsys, path.Join(c.opts.templateDir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTemplateNotFound, name, err)
	}
	fm, body, err := SplitFrontmatter(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	tpl = &parsedTemplate{frontmatter: fm}
	if tpl.subject, err = texttemplate.New(name + ":subject").Parse(fm.Subject); err != nil {
		return nil, fmt.Errorf("%w: %s subject: %w", ErrRenderFailed, name, err)
	}
	if tpl.body, err = texttemplate.New(name).Parse(string(body)); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRenderFailed, name, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.templates[name]; ok {
		return cached, nil
	}
	c.templates[name] = tpl
	return tpl, nil
}

func (c *Composer) layout(name string) (*template.Template, error) {
	c.mu.RLock()
	l, ok := c.layouts[name]
	c.mu.RUnlock()
	if ok {
		return l, nil
	}

	raw, err := fs.ReadFile(c.fsys, path.Join(c.opts.layoutDir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLayoutNotFound, name, err)
	}
	if l, err = template.New(name).Parse(string(raw)); err != nil {
		return nil, fmt.Errorf("%w: layout %s: %w", ErrRenderFailed, name, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.layouts[name]; ok {
		return cached, nil
	}
	c.layouts[name] = l
	return l, nil
}
