package updater

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFieldsKeepsDocumentOrder(t *testing.T) {
	fields, err := DecodeFields(strings.NewReader(`{"parent": null, "code": "shoes", "labels": {"en_US": "Shoes"}, "rank": 3}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"parent", "code", "labels", "rank"}, fields.Names())
	assert.Nil(t, fields[0].Value)
	assert.Equal(t, "shoes", fields[1].Value)
	assert.Equal(t, map[string]any{"en_US": "Shoes"}, fields[2].Value)
	assert.Equal(t, json.Number("3"), fields[3].Value)
}

func TestDecodeFieldsRejectsNonObjects(t *testing.T) {
	for _, input := range []string{
		`[]`,
		`"code"`,
		`12`,
		`{"code":"shoes"} {"parent":"ghost"}`,
		`{"code":"shoes"} garbage`,
		`{"code":"shoes"}]`,
	} {
		_, err := DecodeFields(strings.NewReader(input))
		assert.ErrorIs(t, err, ErrNotAnObject, input)
	}

	_, err := DecodeFields(strings.NewReader(`{"code": `))
	assert.Error(t, err)

	fields, err := DecodeFields(strings.NewReader("{\"code\":\"shoes\"}\n\t "))
	require.NoError(t, err, "trailing whitespace is allowed")
	assert.Equal(t, []string{"code"}, fields.Names())
}

func TestFieldsFromMapSortsByName(t *testing.T) {
	fields := FieldsFromMap(map[string]any{"parent": "a", "code": "b", "labels": nil})
	assert.Equal(t, []string{"code", "labels", "parent"}, fields.Names())
}

func TestIsScalar(t *testing.T) {
	for _, v := range []any{"x", "", true, 1, int64(2), uint8(3), 1.5, json.Number("4")} {
		assert.True(t, isScalar(v), "%#v", v)
	}
	for _, v := range []any{nil, []any{}, map[string]any{}, struct{}{}} {
		assert.False(t, isScalar(v), "%#v", v)
	}
}
