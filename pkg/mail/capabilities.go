package mail

import "maps"

// Capabilities describes the Postmark extensions a message carries.
// A nil field means the message does not support that extension.
type Capabilities struct {
	Tag        *string
	Metadata   map[string]any
	TrackOpens *bool
	TrackLinks *LinkTracking
}

// NewCapabilities returns a descriptor with every extension enabled:
// no tag, empty metadata, open tracking on and links tracked in HTML only.
func NewCapabilities() *Capabilities {
	trackOpens := true
	trackLinks := DefaultLinkTracking
	return &Capabilities{
		Metadata:   map[string]any{},
		TrackOpens: &trackOpens,
		TrackLinks: &trackLinks,
	}
}

// Clone returns a deep copy of c. A nil receiver returns nil.
func (c *Capabilities) Clone() *Capabilities {
	if c == nil {
		return nil
	}
	out := &Capabilities{Metadata: maps.Clone(c.Metadata)}
	if c.Tag != nil {
		v := *c.Tag
		out.Tag = &v
	}
	if c.TrackOpens != nil {
		v := *c.TrackOpens
		out.TrackOpens = &v
	}
	if c.TrackLinks != nil {
		v := *c.TrackLinks
		out.TrackLinks = &v
	}
	return out
}
