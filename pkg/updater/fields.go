package updater

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
)

// ErrNotAnObject is returned by DecodeFields when the input is not a JSON object.
var ErrNotAnObject = errors.New("update data must be a JSON object")

// Field is one raw field update: a property name and an untyped value as it
// came from the caller.
type Field struct {
	Name  string
	Value any
}

// Fields is an ordered set of field updates. Updaters apply them in order.
type Fields []Field

// FieldsFromMap builds Fields from a map, ordered by field name so the
// application order is deterministic.
func FieldsFromMap(m map[string]any) Fields {
	fields := make(Fields, 0, len(m))
	for _, name := range slices.Sorted(maps.Keys(m)) {
		fields = append(fields, Field{Name: name, Value: m[name]})
	}
	return fields
}

// DecodeFields reads one JSON object from r and returns its members in
// document order. Anything after the object is an error. Numbers are kept as json.Number; nested objects decode to
// map[string]any.
func DecodeFields(r io.Reader) (Fields, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("reading update data: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, ErrNotAnObject
	}

	fields := Fields{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading field name: %w", err)
		}
		name, _ := tok.(string)

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("reading field %q: %w", name, err)
		}
		fields = append(fields, Field{Name: name, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("reading update data: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after the object", ErrNotAnObject)
	}
	return fields, nil
}

// Names returns the field names in order.
func (fs Fields) Names() []string {
	names := make([]string, len(fs))
	for i, f := range fs {
		names[i] = f.Name
	}
	return names
}
