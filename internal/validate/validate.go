// Package validate checks candidate climbs against the catalog and the
// accepted date window. Validators have no side effects.
package validate

import (
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/peaklog/internal/apperr"
	"github.com/starford/peaklog/internal/catalog"
	"github.com/starford/peaklog/internal/models"
)

// MaxAgeYears bounds how far back a climb may be dated.
const MaxAgeYears = 100

// Validator holds the catalog and clock used by the checks.
type Validator struct {
	names []any
	now   func() time.Time
	loc   *time.Location
}

// Option configures a Validator.
type Option func(*Validator)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) { v.now = now }
}

// WithLocation sets the zone in which "today" is evaluated.
func WithLocation(loc *time.Location) Option {
	return func(v *Validator) { v.loc = loc }
}

// New creates a Validator for cat.
func New(cat *catalog.Catalog, opts ...Option) *Validator {
	v := &Validator{now: time.Now, loc: time.Local}
	for _, name := range cat.AllNames() {
		v.names = append(v.names, name)
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// ValidateSelection checks that name is present and names a catalog peak.
func (v *Validator) ValidateSelection(name string) error {
	if err := validation.Validate(name, validation.Required); err != nil {
		return apperr.ErrMissingSelection
	}
	if err := validation.Validate(name, validation.In(v.names...)); err != nil {
		return apperr.ErrNotInCatalog
	}
	return nil
}

// ValidateDate checks that candidate is a YYYY-MM-DD date within
// [today-100y, today], both ends inclusive. Time of day plays no part.
func (v *Validator) ValidateDate(candidate string) error {
	candidate = strings.TrimSpace(candidate)
	if err := validation.Validate(candidate, validation.Required); err != nil {
		return apperr.ErrMissingDate
	}
	lo, hi := v.Window()
	rule := validation.Date(models.DateLayout).
		Min(lo.In(time.UTC)).
		Max(hi.In(time.UTC))
	if err := validation.Validate(candidate, rule); err != nil {
		return apperr.ErrDateOutOfRange
	}
	return nil
}

// Validate runs both checks and joins their failures.
func (v *Validator) Validate(name, date string) error {
	return errors.Join(v.ValidateSelection(name), v.ValidateDate(date))
}

// Window returns the inclusive date bounds as of now.
func (v *Validator) Window() (lo, hi models.Date) {
	hi = models.DateOf(v.now().In(v.loc))
	return hi.AddYears(-MaxAgeYears), hi
}
