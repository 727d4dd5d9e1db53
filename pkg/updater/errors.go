package updater

import "fmt"

// Kind classifies an update failure. The set is closed.
type Kind int

const (
	// InvalidObjectType: the updater was given an object of the wrong type.
	InvalidObjectType Kind = iota + 1
	// UnknownProperty: the field name is not recognized for the target type.
	UnknownProperty
	// InvalidPropertyType: the raw value does not have the expected shape.
	InvalidPropertyType
	// InvalidPropertyValue: the value has the right shape but cannot be
	// applied, e.g. a reference to an entity that does not exist.
	InvalidPropertyValue
)

func (k Kind) String() string {
	switch k {
	case InvalidObjectType:
		return "invalid_object_type"
	case UnknownProperty:
		return "unknown_property"
	case InvalidPropertyType:
		return "invalid_property_type"
	case InvalidPropertyValue:
		return "invalid_property_value"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// TypeReason refines an InvalidPropertyType error.
type TypeReason int

const (
	ReasonScalarExpected TypeReason = iota + 1
	ReasonArrayExpected
	ReasonStructureExpected
)

func (r TypeReason) String() string {
	switch r {
	case ReasonScalarExpected:
		return "scalar_expected"
	case ReasonArrayExpected:
		return "array_expected"
	case ReasonStructureExpected:
		return "structure_expected"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// Numeric codes reported for InvalidPropertyType errors.
const (
	CodeTypeExpected      = 100
	CodeScalarExpected    = 101
	CodeArrayExpected     = 102
	CodeStructureExpected = 103
)

// Error is the failure returned by object updaters. Which payload fields are
// set depends on Kind; build values with the factory functions below.
type Error struct {
	Kind     Kind
	Reason   TypeReason // InvalidPropertyType only.
	Property string     // Field name that failed.
	Value    any        // Offending raw value; the given type name for InvalidObjectType.
	Action   string     // Operation being performed, e.g. "update".
	Target   string     // Entity type name, e.g. "category".
	Because  string     // Structure or value explanation.
	Key      string     // What a valid value designates, e.g. "category code".
	Expected string     // Expected type name for InvalidObjectType.
	Err      error      // Underlying cause, if any.
}

// Sentinels for errors.Is. A sentinel matches any *Error of the same Kind,
// and of the same Reason when the sentinel sets one.
var (
	ErrInvalidObjectType    = &Error{Kind: InvalidObjectType}
	ErrUnknownProperty      = &Error{Kind: UnknownProperty}
	ErrInvalidPropertyType  = &Error{Kind: InvalidPropertyType}
	ErrScalarExpected       = &Error{Kind: InvalidPropertyType, Reason: ReasonScalarExpected}
	ErrArrayExpected        = &Error{Kind: InvalidPropertyType, Reason: ReasonArrayExpected}
	ErrStructureExpected    = &Error{Kind: InvalidPropertyType, Reason: ReasonStructureExpected}
	ErrInvalidPropertyValue = &Error{Kind: InvalidPropertyValue}
)

// ObjectExpected reports that got is not of the expected type.
func ObjectExpected(got any, expected string) *Error {
	return &Error{Kind: InvalidObjectType, Value: fmt.Sprintf("%T", got), Expected: expected}
}

// UnknownPropertyError reports a field name the target does not recognize.
func UnknownPropertyError(property string, cause error) *Error {
	return &Error{Kind: UnknownProperty, Property: property, Err: cause}
}

// ScalarExpected reports a value that should have been a scalar.
func ScalarExpected(property, action, target string, value any) *Error {
	return &Error{Kind: InvalidPropertyType, Reason: ReasonScalarExpected, Property: property, Value: value, Action: action, Target: target}
}

// ArrayExpected reports a value that should have been an array or object.
func ArrayExpected(property, action, target string, value any) *Error {
	return &Error{Kind: InvalidPropertyType, Reason: ReasonArrayExpected, Property: property, Value: value, Action: action, Target: target}
}

// ValidArrayStructureExpected reports an array whose elements do not have the
// expected structure.
func ValidArrayStructureExpected(property, because, action, target string, value any) *Error {
	return &Error{Kind: InvalidPropertyType, Reason: ReasonStructureExpected, Property: property, Because: because, Value: value, Action: action, Target: target}
}

// ValidEntityCodeExpected reports a code that does not resolve to an entity.
func ValidEntityCodeExpected(property, key, because, action, target string, value any) *Error {
	return &Error{Kind: InvalidPropertyValue, Property: property, Key: key, Because: because, Value: value, Action: action, Target: target}
}

func (e *Error) Error() string {
	switch e.Kind {
	case InvalidObjectType:
		return fmt.Sprintf("Expects a %q, %q given.", e.Expected, e.Value)
	case UnknownProperty:
		return fmt.Sprintf("Property %q does not exist.", e.Property)
	case InvalidPropertyType:
		switch e.Reason {
		case ReasonScalarExpected:
			return fmt.Sprintf("Property %q expects a scalar (for %s %s).", e.Property, e.Action, e.Target)
		case ReasonArrayExpected:
			return fmt.Sprintf("Property %q expects an array (for %s %s).", e.Property, e.Action, e.Target)
		case ReasonStructureExpected:
			return fmt.Sprintf("Property %q expects a valid array, %s (for %s %s).", e.Property, e.Because, e.Action, e.Target)
		}
		return fmt.Sprintf("Property %q has an invalid type (for %s %s).", e.Property, e.Action, e.Target)
	case InvalidPropertyValue:
		return fmt.Sprintf("Property %q expects a valid %s. %s, \"%v\" given (for %s %s).", e.Property, e.Key, e.Because, e.Value, e.Action, e.Target)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches sentinels by Kind and, when the target sets one, Reason.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Reason == 0 || t.Reason == e.Reason
}

// Code returns the numeric code of an InvalidPropertyType error, or 0 for
// other kinds.
func (e *Error) Code() int {
	if e.Kind != InvalidPropertyType {
		return 0
	}
	switch e.Reason {
	case ReasonScalarExpected:
		return CodeScalarExpected
	case ReasonArrayExpected:
		return CodeArrayExpected
	case ReasonStructureExpected:
		return CodeStructureExpected
	default:
		return CodeTypeExpected
	}
}
