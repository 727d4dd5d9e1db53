// Package hal builds Hypertext Application Language resources: a set of
// links, a flat data map, and named lists of embedded child resources.
//
// The serialized shape is
//
//	{"_links": {rel: {"href": url}}, <data keys>, "_embedded": {key: [child]}}
//
// "_embedded" appears only once a key has been set, even if its list is empty.
// Embedding must stay acyclic; the type does not check it.
package hal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// Reserved top-level keys.
const (
	KeyLinks    = "_links"
	KeyEmbedded = "_embedded"
)

// Resource is a HAL resource. The zero value is not usable; use NewResource.
type Resource struct {
	links    []Link
	data     map[string]any
	embedded map[string][]*Resource
	keys     []string // embedded keys in the order they were first set
}

// NewResource returns a resource with a self link to selfURL and a copy of data.
func NewResource(selfURL string, data map[string]any) *Resource {
	r := &Resource{embedded: map[string][]*Resource{}}
	r.AddLink(NewLink(RelSelf, selfURL))
	r.SetData(data)
	return r
}

// AddLink appends a link. Relations are not deduplicated; when two links share
// a relation the later one wins on serialization.
func (r *Resource) AddLink(l Link) *Resource {
	r.links = append(r.links, l)
	return r
}

// SetLinks appends every link in order.
func (r *Resource) SetLinks(links []Link) *Resource {
	for _, l := range links {
		r.AddLink(l)
	}
	return r
}

// Links returns the links in the order they were added.
func (r *Resource) Links() []Link {
	return slices.Clone(r.links)
}

// Link returns the href of the last link with relation rel.
func (r *Resource) Link(rel string) (string, bool) {
	for i := len(r.links) - 1; i >= 0; i-- {
		if r.links[i].Rel == rel {
			return r.links[i].Href, true
		}
	}
	return "", false
}

// SetData replaces the data map with a copy of data. Keys named "_links" or
// "_embedded" are kept but never serialized.
func (r *Resource) SetData(data map[string]any) *Resource {
	r.data = maps.Clone(data)
	if r.data == nil {
		r.data = map[string]any{}
	}
	return r
}

// Data returns a copy of the data map.
func (r *Resource) Data() map[string]any {
	return maps.Clone(r.data)
}

// AddEmbedded appends child to the list under key.
func (r *Resource) AddEmbedded(key string, child *Resource) *Resource {
	r.touch(key)
	r.embedded[key] = append(r.embedded[key], child)
	return r
}

// SetEmbedded replaces the list under key. An empty list still marks the key
// as set.
func (r *Resource) SetEmbedded(key string, children []*Resource) *Resource {
	r.touch(key)
	r.embedded[key] = append([]*Resource{}, children...)
	return r
}

// Embedded returns the list under key and whether the key was ever set.
func (r *Resource) Embedded(key string) ([]*Resource, bool) {
	children, ok := r.embedded[key]
	if !ok {
		return nil, false
	}
	return slices.Clone(children), true
}

func (r *Resource) touch(key string) {
	if _, ok := r.embedded[key]; !ok {
		r.keys = append(r.keys, key)
	}
}

// ToMap returns the serialized form of the resource as nested maps. It does
// not modify r; repeated calls return equal maps.
func (r *Resource) ToMap() map[string]any {
	out := make(map[string]any, len(r.data)+2)
	links := map[string]any{}
	for _, l := range r.links {
		maps.Copy(links, l.ToMap())
	}
	out[KeyLinks] = links
	for k, v := range r.data {
		if k == KeyLinks || k == KeyEmbedded {
			continue
		}
		out[k] = v
	}
	if len(r.keys) > 0 {
		embedded := make(map[string]any, len(r.keys))
		for _, key := range r.keys {
			children := make([]any, 0, len(r.embedded[key]))
			for _, child := range r.embedded[key] {
				children = append(children, child.ToMap())
			}
			embedded[key] = children
		}
		out[KeyEmbedded] = embedded
	}
	return out
}

// MarshalJSON writes "_links" first with relations in first-seen order, then
// the data keys sorted, then "_embedded" with keys in first-set order.
func (r *Resource) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	buf.WriteString(`"` + KeyLinks + `":{`)
	hrefs := map[string]string{}
	var rels []string
	for _, l := range r.links {
		if _, ok := hrefs[l.Rel]; !ok {
			rels = append(rels, l.Rel)
		}
		hrefs[l.Rel] = l.Href
	}
	for i, rel := range rels {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, rel, map[string]string{"href": hrefs[rel]}); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')

	for _, k := range slices.Sorted(maps.Keys(r.data)) {
		if k == KeyLinks || k == KeyEmbedded {
			continue
		}
		buf.WriteByte(',')
		if err := writeMember(&buf, k, r.data[k]); err != nil {
			return nil, err
		}
	}

	if len(r.keys) > 0 {
		buf.WriteString(`,"` + KeyEmbedded + `":{`)
		for i, key := range r.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			children := r.embedded[key]
			if children == nil {
				children = []*Resource{}
			}
			if err := writeMember(&buf, key, children); err != nil {
				return nil, err
			}
		}
		buf.WriteByte('}')
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeMember(buf *bytes.Buffer, key string, value any) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	v, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", key, err)
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}
