package pagination

import (
	"maps"
	"strconv"
)

// Query parameter names read by the validator.
const (
	ParamPage  = "page"
	ParamLimit = "limit"
)

// ParameterValidator checks raw page and limit parameters against a maximum
// limit.
type ParameterValidator struct {
	limitMax int
}

func NewParameterValidator(limitMax int) *ParameterValidator {
	return &ParameterValidator{limitMax: limitMax}
}

// LimitMax returns the configured maximum limit.
func (v *ParameterValidator) LimitMax() int {
	return v.limitMax
}

// Validate checks params and returns the parsed options. Checks run in order
// and the first failure is returned: page missing, limit missing, page not a
// positive integer, limit not a positive integer, limit above the maximum.
// Parameters other than page and limit are returned in Options.Query.
func (v *ParameterValidator) Validate(params map[string]string) (Options, error) {
	rawPage, ok := params[ParamPage]
	if !ok {
		return Options{}, &ParametersError{Reason: PageMissing}
	}
	rawLimit, ok := params[ParamLimit]
	if !ok {
		return Options{}, &ParametersError{Reason: LimitMissing}
	}

	page, ok := positiveInt(rawPage)
	if !ok {
		return Options{}, &ParametersError{Reason: InvalidPage, Value: rawPage}
	}
	limit, ok := positiveInt(rawLimit)
	if !ok {
		return Options{}, &ParametersError{Reason: InvalidLimit, Value: rawLimit}
	}
	if limit > v.limitMax {
		return Options{}, &ParametersError{Reason: LimitExceeded, Value: rawLimit, Max: v.limitMax}
	}

	query := maps.Clone(params)
	delete(query, ParamPage)
	delete(query, ParamLimit)
	if len(query) == 0 {
		query = nil
	}
	return Options{Page: page, Limit: limit, Query: query}, nil
}

// positiveInt accepts only the canonical decimal form: no sign, no leading
// zeros.
func positiveInt(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || strconv.Itoa(n) != s {
		return 0, false
	}
	return n, true
}

// Defaults returns a copy of params with page set to page and limit set to
// limit where they are absent. Present values are kept even if invalid.
func Defaults(params map[string]string, page, limit int) map[string]string {
	out := maps.Clone(params)
	if out == nil {
		out = map[string]string{}
	}
	if _, ok := out[ParamPage]; !ok {
		out[ParamPage] = strconv.Itoa(page)
	}
	if _, ok := out[ParamLimit]; !ok {
		out[ParamLimit] = strconv.Itoa(limit)
	}
	return out
}
