package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/catalog/pkg/pagination"
	"github.com/mesh-intelligence/catalog/pkg/types"
	"github.com/mesh-intelligence/catalog/pkg/updater"
)

func TestStatusCode(t *testing.T) {
	var syntaxErr error = &json.SyntaxError{}
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: http.StatusOK},
		{name: "updater error", err: updater.UnknownPropertyError("color", nil), want: http.StatusUnprocessableEntity},
		{name: "wrapped updater error", err: fmt.Errorf("x: %w", updater.ScalarExpected("code", "update", "category", []any{})), want: http.StatusUnprocessableEntity},
		{name: "pagination parameters", err: &pagination.ParametersError{Reason: pagination.LimitExceeded, Max: 100}, want: http.StatusBadRequest},
		{name: "malformed json", err: syntaxErr, want: http.StatusBadRequest},
		{name: "not an object", err: updater.ErrNotAnObject, want: http.StatusBadRequest},
		{name: "invalid filter", err: types.ErrInvalidFilter, want: http.StatusBadRequest},
		{name: "not found", err: fmt.Errorf("category %q: %w", "x", types.ErrNotFound), want: http.StatusNotFound},
		{name: "group not found", err: types.ErrGroupNotFound, want: http.StatusNotFound},
		{name: "already exists", err: types.ErrAlreadyExists, want: http.StatusConflict},
		{name: "duplicate code", err: types.ErrDuplicateCode, want: http.StatusConflict},
		{name: "invalid code", err: types.ErrInvalidCode, want: http.StatusUnprocessableEntity},
		{name: "anything else", err: errors.New("disk full"), want: http.StatusInternalServerError},
		{name: "detached catalog", err: types.ErrCatalogDetached, want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCode(tt.err))
		})
	}
}

func TestIsUserError(t *testing.T) {
	assert.True(t, IsUserError(types.ErrNotFound))
	assert.False(t, IsUserError(errors.New("disk full")))
	assert.False(t, IsUserError(nil))
}

func TestNewErrorBody(t *testing.T) {
	body := NewErrorBody(&pagination.ParametersError{Reason: pagination.PageMissing})
	assert.Equal(t, ErrorBody{Code: http.StatusBadRequest, Message: "Page number is missing."}, body)

	b, err := json.Marshal(body)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"code":400,"message":"Page number is missing."}`, string(b))
}
