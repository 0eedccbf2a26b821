// Package apperr holds the sentinel errors shared across peaklog layers.
package apperr

import "errors"

// ErrValidation is wrapped by every user-input validation failure.
var ErrValidation = errors.New("validation failed")

// Validation failures. Their text is shown to the user as-is.
var (
	ErrMissingSelection = validationError("please select a peak")
	ErrNotInCatalog     = validationError("peak name must be in the list")
	ErrMissingDate      = validationError("please select a date")
	ErrDateOutOfRange   = validationError("date must be today or earlier and within the last 100 years")
)

var (
	// ErrUnknownPeak means a log entry was built for a peak that is not in
	// the catalog. Callers that validated first never see it.
	ErrUnknownPeak      = errors.New("unknown peak")
	ErrUnknownSortOrder = errors.New("unknown sort order")
)

type valErr struct{ msg string }

func (e *valErr) Error() string        { return e.msg }
func (e *valErr) Is(target error) bool { return target == ErrValidation }

func validationError(msg string) error { return &valErr{msg: msg} }

// IsValidation reports whether err is (or wraps) a validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// Code returns a stable machine-readable code for known sentinels, or "".
func Code(err error) string {
	switch {
	case errors.Is(err, ErrMissingSelection):
		return "missing_selection"
	case errors.Is(err, ErrNotInCatalog):
		return "not_in_catalog"
	case errors.Is(err, ErrMissingDate):
		return "missing_date"
	case errors.Is(err, ErrDateOutOfRange):
		return "out_of_range"
	case errors.Is(err, ErrUnknownPeak):
		return "unknown_peak"
	case errors.Is(err, ErrUnknownSortOrder):
		return "unknown_sort_order"
	}
	return ""
}
