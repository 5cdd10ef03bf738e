package mailer

import "github.com/microcosm-cc/bluemonday"

// EmailPolicy returns a sanitizer policy for template HTML: basic text
// formatting, headings, lists, tables, links and images. Scripts, styles,
// event handlers and non-http(s)/mailto URLs are removed.
func EmailPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowURLSchemes("http", "https", "mailto")
	p.AllowElements(
		"p", "br", "hr",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"strong", "b", "em", "i", "del", "s",
		"ul", "ol", "li",
		"code", "pre", "blockquote",
		"table", "thead", "tbody", "tr", "th", "td",
	)
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("src", "alt", "width", "height").OnElements("img")
	p.AllowAttrs("align").OnElements("th", "td")
	return p
}
