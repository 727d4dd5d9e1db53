package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParameterValidatorErrors(t *testing.T) {
	tests := []struct {
		name    string
		params  map[string]string
		wantErr error
		wantMsg string
	}{
		{name: "page missing", params: map[string]string{"limit": "10"}, wantErr: ErrPageMissing, wantMsg: "Page number is missing."},
		{name: "limit missing", params: map[string]string{"page": "1"}, wantErr: ErrLimitMissing, wantMsg: "Limit number is missing."},
		{name: "both missing reports page", params: map[string]string{}, wantErr: ErrPageMissing, wantMsg: "Page number is missing."},
		{name: "page zero", params: map[string]string{"page": "0", "limit": "10"}, wantErr: ErrInvalidPage, wantMsg: `"0" is not a valid page number.`},
		{name: "page not a number", params: map[string]string{"page": "two", "limit": "10"}, wantErr: ErrInvalidPage, wantMsg: `"two" is not a valid page number.`},
		{name: "page checked before limit", params: map[string]string{"page": "-1", "limit": "x"}, wantErr: ErrInvalidPage, wantMsg: `"-1" is not a valid page number.`},
		{name: "page with sign", params: map[string]string{"page": "+2", "limit": "10"}, wantErr: ErrInvalidPage, wantMsg: `"+2" is not a valid page number.`},
		{name: "page with leading zeros", params: map[string]string{"page": "002", "limit": "10"}, wantErr: ErrInvalidPage, wantMsg: `"002" is not a valid page number.`},
		{name: "limit with leading zero", params: map[string]string{"page": "1", "limit": "05"}, wantErr: ErrInvalidLimit, wantMsg: `"05" is not a valid limit number.`},
		{name: "limit zero", params: map[string]string{"page": "1", "limit": "0"}, wantErr: ErrInvalidLimit, wantMsg: `"0" is not a valid limit number.`},
		{name: "limit float", params: map[string]string{"page": "1", "limit": "1.5"}, wantErr: ErrInvalidLimit, wantMsg: `"1.5" is not a valid limit number.`},
		{name: "limit too large", params: map[string]string{"page": "1", "limit": "10000"}, wantErr: ErrLimitExceeded, wantMsg: "You cannot request more than 100 items."},
	}

	v := NewParameterValidator(100)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Validate(tt.params)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrParameters)
			assert.EqualError(t, err, tt.wantMsg)
		})
	}
}

func TestParameterValidatorValid(t *testing.T) {
	v := NewParameterValidator(100)

	opts, err := v.Validate(map[string]string{"page": "3", "limit": "100", "parent": "master"})
	require.NoError(t, err)
	assert.Equal(t, Options{Page: 3, Limit: 100, Query: map[string]string{"parent": "master"}}, opts)

	opts, err = v.Validate(map[string]string{"page": "1", "limit": "1"})
	require.NoError(t, err)
	assert.Nil(t, opts.Query)
}

func TestDefaults(t *testing.T) {
	in := map[string]string{"limit": "abc"}
	got := Defaults(in, 1, 10)

	assert.Equal(t, map[string]string{"page": "1", "limit": "abc"}, got)
	assert.Equal(t, map[string]string{"limit": "abc"}, in)
	assert.Equal(t, map[string]string{"page": "1", "limit": "10"}, Defaults(nil, 1, 10))
}
