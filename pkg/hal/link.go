package hal

// Rel names used by the catalog.
const (
	RelSelf     = "self"
	RelFirst    = "first"
	RelLast     = "last"
	RelPrevious = "previous"
	RelNext     = "next"
)

// Link is a relation from a resource to a URL.
type Link struct {
	Rel  string
	Href string
}

// NewLink returns a link for rel pointing at href.
func NewLink(rel, href string) Link {
	return Link{Rel: rel, Href: href}
}

// ToMap returns the link in its serialized form: {rel: {"href": href}}.
func (l Link) ToMap() map[string]any {
	return map[string]any{l.Rel: map[string]any{"href": l.Href}}
}
