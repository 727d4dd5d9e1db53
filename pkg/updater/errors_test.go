package updater

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "object expected",
			err:  ObjectExpected(&struct{}{}, "*types.Category"),
			want: `Expects a "*types.Category", "*struct {}" given.`,
		},
		{
			name: "unknown property",
			err:  UnknownPropertyError("colour", nil),
			want: `Property "colour" does not exist.`,
		},
		{
			name: "scalar expected",
			err:  ScalarExpected("code", "update", "category", []any{"a"}),
			want: `Property "code" expects a scalar (for update category).`,
		},
		{
			name: "array expected",
			err:  ArrayExpected("labels", "update", "category", "hello"),
			want: `Property "labels" expects an array (for update category).`,
		},
		{
			name: "structure expected",
			err:  ValidArrayStructureExpected("labels", "a label is not a scalar", "update", "category", map[string]any{}),
			want: `Property "labels" expects a valid array, a label is not a scalar (for update category).`,
		},
		{
			name: "entity code expected",
			err:  ValidEntityCodeExpected("parent", "category code", "The category does not exist", "update", "category", "ghost"),
			want: `Property "parent" expects a valid category code. The category does not exist, "ghost" given (for update category).`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrorIsMatchesKindAndReason(t *testing.T) {
	scalar := ScalarExpected("code", "update", "category", nil)
	wrapped := fmt.Errorf("saving: %w", scalar)

	assert.ErrorIs(t, wrapped, ErrInvalidPropertyType)
	assert.ErrorIs(t, wrapped, ErrScalarExpected)
	assert.NotErrorIs(t, wrapped, ErrArrayExpected)
	assert.NotErrorIs(t, wrapped, ErrUnknownProperty)

	var uerr *Error
	assert.True(t, errors.As(wrapped, &uerr))
	assert.Equal(t, "code", uerr.Property)
	assert.Equal(t, CodeScalarExpected, uerr.Code())
}

func TestErrorCodes(t *testing.T) {
	assert.Equal(t, CodeArrayExpected, ArrayExpected("p", "update", "t", 1).Code())
	assert.Equal(t, CodeStructureExpected, ValidArrayStructureExpected("p", "b", "update", "t", nil).Code())
	assert.Equal(t, 0, UnknownPropertyError("p", nil).Code())
}

func TestUnknownPropertyUnwrapsCause(t *testing.T) {
	cause := errors.New("no such setter")
	err := UnknownPropertyError("p", cause)
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrUnknownProperty)
}
