// Package updater applies partial field updates from untyped input onto
// catalog entities. Each entity type has a closed table of recognized fields;
// every field carries a shape check and a typed setter. Failures are reported
// as *Error values of a closed set of kinds.
//
// Updates are applied field by field and are not transactional: when field N
// fails, fields 1..N-1 stay applied. Set Options.ValidateFirst to check every
// name and shape before the first mutation.
package updater

import (
	"encoding/json"
	"fmt"
	"maps"
	"reflect"
	"slices"
)

// actionUpdate is the action named in error messages.
const actionUpdate = "update"

// ObjectUpdater updates an object in place from raw field values.
type ObjectUpdater interface {
	Update(object any, fields Fields, opts Options) error
}

// Options tunes an Update call.
type Options struct {
	// ValidateFirst checks every field name and value shape before applying
	// any field. Reference resolution still happens during application.
	ValidateFirst bool
}

// checkFunc validates the shape of a raw value for a property.
type checkFunc func(property, target string, value any) error

// fieldRule is the shape check and setter for one recognized field.
type fieldRule[T any] struct {
	check checkFunc
	apply func(obj T, value any) error
}

// fieldTable maps recognized field names of one entity type to their rules.
// Tables are built by updater constructors and never modified afterwards.
type fieldTable[T any] struct {
	target string
	rules  map[string]fieldRule[T]
}

func (t fieldTable[T]) validate(f Field) (fieldRule[T], error) {
	rule, ok := t.rules[f.Name]
	if !ok {
		return rule, UnknownPropertyError(f.Name, nil)
	}
	if err := rule.check(f.Name, t.target, f.Value); err != nil {
		return rule, err
	}
	return rule, nil
}

func (t fieldTable[T]) update(obj T, fields Fields, opts Options) error {
	if opts.ValidateFirst {
		for _, f := range fields {
			if _, err := t.validate(f); err != nil {
				return err
			}
		}
	}
	for _, f := range fields {
		rule, err := t.validate(f)
		if err != nil {
			return err
		}
		if err := rule.apply(obj, f.Value); err != nil {
			return err
		}
	}
	return nil
}

// names returns the recognized field names, sorted.
func (t fieldTable[T]) names() []string {
	return slices.Sorted(maps.Keys(t.rules))
}

func expectScalar(property, target string, value any) error {
	if !isScalar(value) {
		return ScalarExpected(property, actionUpdate, target, value)
	}
	return nil
}

func expectScalarOrNull(property, target string, value any) error {
	if value == nil {
		return nil
	}
	return expectScalar(property, target, value)
}

// expectScalarMap accepts an object whose members are scalars or null. An
// empty list is accepted as an empty object.
func expectScalarMap(because string) checkFunc {
	return func(property, target string, value any) error {
		if l, ok := asList(value); ok {
			if len(l) == 0 {
				return nil
			}
			return ValidArrayStructureExpected(property, "it must be indexed by code", actionUpdate, target, value)
		}
		m, ok := asMap(value)
		if !ok {
			return ArrayExpected(property, actionUpdate, target, value)
		}
		for _, v := range m {
			if v != nil && !isScalar(v) {
				return ValidArrayStructureExpected(property, because, actionUpdate, target, value)
			}
		}
		return nil
	}
}

// expectScalarList accepts a list of scalars.
func expectScalarList(because string) checkFunc {
	return func(property, target string, value any) error {
		l, ok := asList(value)
		if !ok {
			return ArrayExpected(property, actionUpdate, target, value)
		}
		for _, v := range l {
			if !isScalar(v) {
				return ValidArrayStructureExpected(property, because, actionUpdate, target, value)
			}
		}
		return nil
	}
}

// isScalar reports whether v is a string, boolean or number. nil is not a scalar.
func isScalar(v any) bool {
	switch v.(type) {
	case string, bool, json.Number:
		return true
	}
	if v == nil {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// scalarString renders a scalar the way it would appear in a query string.
func scalarString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out, true
	}
	return nil, false
}

func asList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []string:
		out := make([]any, len(l))
		for i, s := range l {
			out[i] = s
		}
		return out, true
	}
	return nil, false
}
