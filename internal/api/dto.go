package api

import (
	"errors"

	"github.com/starford/peaklog/internal/apperr"
	"github.com/starford/peaklog/internal/models"
)

// LogClimbRequest is the request body for logging a climb.
type LogClimbRequest struct {
	PeakName    string `json:"peak_name" example:"Longs Peak" validate:"required"`
	DateClimbed string `json:"date_climbed" example:"2024-07-04" validate:"required"`
	Notes       string `json:"notes,omitempty" example:"Keyhole route"`
}

// PeakListResponse wraps the catalog.
type PeakListResponse struct {
	Peaks []models.CatalogPeak `json:"peaks" validate:"required"`
	Total int                  `json:"total" example:"58" validate:"required"`
}

// PeakNamesResponse wraps the sorted catalog names.
type PeakNamesResponse struct {
	Names []string `json:"names" validate:"required"`
}

// ClimbListResponse wraps the peak log in the requested order.
type ClimbListResponse struct {
	Climbs []models.LogEntry `json:"climbs" validate:"required"`
	Sort   string            `json:"sort" example:"date-climbed" validate:"required"`
}

// RemoveClimbResponse reports how many entries were removed.
type RemoveClimbResponse struct {
	Removed int `json:"removed" example:"1"`
}

// MapResponse wraps the consolidated map markers.
type MapResponse struct {
	Markers []models.MapMarker `json:"markers" validate:"required"`
}

// FieldError describes one failed input check.
type FieldError struct {
	Field   string `json:"field" example:"date_climbed"`
	Code    string `json:"code" example:"out_of_range"`
	Message string `json:"message" example:"date must be today or earlier and within the last 100 years"`
}

// ValidationErrorResponse is returned with 422 when input is rejected.
type ValidationErrorResponse struct {
	Error  string       `json:"error" validate:"required"`
	Errors []FieldError `json:"errors" validate:"required"`
}

// fieldErrors flattens a (possibly joined) validation error.
func fieldErrors(err error) []FieldError {
	var leaves []error
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		leaves = joined.Unwrap()
	} else {
		leaves = []error{err}
	}

	out := make([]FieldError, 0, len(leaves))
	for _, e := range leaves {
		field := "date_climbed"
		if errors.Is(e, apperr.ErrMissingSelection) || errors.Is(e, apperr.ErrNotInCatalog) {
			field = "peak_name"
		}
		msg := e.Error()
		for _, s := range []error{apperr.ErrMissingSelection, apperr.ErrNotInCatalog, apperr.ErrMissingDate, apperr.ErrDateOutOfRange} {
			if errors.Is(e, s) {
				msg = s.Error()
				break
			}
		}
		out = append(out, FieldError{Field: field, Code: apperr.Code(e), Message: msg})
	}
	return out
}
