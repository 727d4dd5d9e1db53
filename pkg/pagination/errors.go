package pagination

import "fmt"

// Reason identifies which pagination parameter check failed.
type Reason int

const (
	PageMissing Reason = iota + 1
	LimitMissing
	InvalidPage
	InvalidLimit
	LimitExceeded
)

// ParametersError reports invalid pagination parameters. Value holds the
// rejected raw value; Max is the configured limit maximum.
type ParametersError struct {
	Reason Reason
	Value  string
	Max    int
}

// Sentinels for errors.Is. ErrParameters matches every ParametersError; the
// others match on Reason.
var (
	ErrParameters    = &ParametersError{}
	ErrPageMissing   = &ParametersError{Reason: PageMissing}
	ErrLimitMissing  = &ParametersError{Reason: LimitMissing}
	ErrInvalidPage   = &ParametersError{Reason: InvalidPage}
	ErrInvalidLimit  = &ParametersError{Reason: InvalidLimit}
	ErrLimitExceeded = &ParametersError{Reason: LimitExceeded}
)

func (e *ParametersError) Error() string {
	switch e.Reason {
	case PageMissing:
		return "Page number is missing."
	case LimitMissing:
		return "Limit number is missing."
	case InvalidPage:
		return fmt.Sprintf("%q is not a valid page number.", e.Value)
	case InvalidLimit:
		return fmt.Sprintf("%q is not a valid limit number.", e.Value)
	case LimitExceeded:
		return fmt.Sprintf("You cannot request more than %d items.", e.Max)
	default:
		return "invalid pagination parameters"
	}
}

func (e *ParametersError) Is(target error) bool {
	t, ok := target.(*ParametersError)
	if !ok {
		return false
	}
	return t.Reason == 0 || t.Reason == e.Reason
}
