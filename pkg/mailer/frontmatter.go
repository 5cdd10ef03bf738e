package mailer

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Frontmatter is the YAML header of a template. Every field is optional.
//
//	---
//	Subject: Welcome, {{.Name}}
//	Tag: welcome
//	TrackOpens: false
//	TrackLinks: HtmlAndText
//	Metadata:
//	  campaign: onboarding
//	Layout: base.html
//	---
type Frontmatter struct {
	Subject    string         `yaml:"Subject"`
	Tag        string         `yaml:"Tag"`
	TrackOpens *bool          `yaml:"TrackOpens"`
	TrackLinks string         `yaml:"TrackLinks"`
	Metadata   map[string]any `yaml:"Metadata"`
	Layout     string         `yaml:"Layout"`
}

var fence = []byte("---")

// SplitFrontmatter separates the YAML header from the markdown body.
// Content without an opening fence has an empty header. Unknown keys are
// rejected.
func SplitFrontmatter(content []byte) (Frontmatter, []byte, error) {
	var fm Frontmatter

	first, rest, ok := cutLine(content)
	if !ok || !bytes.Equal(bytes.TrimSpace(first), fence) {
		return fm, content, nil
	}

	var header []byte
	for {
		var line []byte
		line, rest, ok = cutLine(rest)
		if !ok {
			return fm, nil, fmt.Errorf("%w: closing fence not found", ErrInvalidFrontmatter)
		}
		if bytes.Equal(bytes.TrimSpace(line), fence) {
			break
		}
		header = append(header, line...)
		header = append(header, '\n')
	}

	dec := yaml.NewDecoder(bytes.NewReader(header))
	dec.KnownFields(true)
	if err := dec.Decode(&fm); err != nil && !errors.Is(err, io.EOF) {
		return Frontmatter{}, nil, fmt.Errorf("%w: %w", ErrInvalidFrontmatter, err)
	}
	return fm, rest, nil
}

// cutLine returns the first line of b without its terminator. ok is false
// when b is empty.
func cutLine(b []byte) (line, rest []byte, ok bool) {
	if len(b) == 0 {
		return nil, nil, false
	}
	line, rest, found := bytes.Cut(b, []byte("\n"))
	if !found {
		rest = nil
	}
	return bytes.TrimSuffix(line, []byte("\r")), rest, true
}
