package catalog

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mesh-intelligence/catalog/pkg/pagination"
	"github.com/mesh-intelligence/catalog/pkg/types"
	"github.com/mesh-intelligence/catalog/pkg/updater"
)

// StatusCode maps an error returned by Service to an HTTP status code.
func StatusCode(err error) int {
	var updateErr *updater.Error
	var paramsErr *pagination.ParametersError
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &updateErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &paramsErr),
		errors.As(err, &syntaxErr),
		errors.As(err, &typeErr),
		errors.Is(err, updater.ErrNotAnObject),
		errors.Is(err, types.ErrInvalidFilter):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrNotFound),
		errors.Is(err, types.ErrGroupNotFound),
		errors.Is(err, types.ErrFieldNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrAlreadyExists),
		errors.Is(err, types.ErrDuplicateCode):
		return http.StatusConflict
	case errors.Is(err, types.ErrInvalidCode),
		errors.Is(err, types.ErrInvalidAttributeType),
		errors.Is(err, types.ErrInvalidData):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// IsUserError reports whether err was caused by the caller's input rather
// than by the system.
func IsUserError(err error) bool {
	code := StatusCode(err)
	return code >= 400 && code < 500
}

// ErrorBody is the JSON representation of a failed operation.
type ErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewErrorBody returns the body reported for err.
func NewErrorBody(err error) ErrorBody {
	return ErrorBody{Code: StatusCode(err), Message: err.Error()}
}
