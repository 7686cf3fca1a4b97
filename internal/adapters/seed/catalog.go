// Package seed serves a static event catalog from YAML.
package seed

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"eventdiscovery/internal/domain"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type catalogFile struct {
	Events []domain.Event `yaml:"events"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(validateEventDates, domain.Event{})
	return v
}

// validateEventDates requires a parseable date and, when present, an end date
// that is not before it.
func validateEventDates(sl validator.StructLevel) {
	e := sl.Current().Interface().(domain.Event)
	start, err := e.StartsAt()
	if err != nil {
		sl.ReportError(e.Date, "Date", "date", "iso8601", "")
		return
	}
	end, ok, err := e.EndsAt()
	if err != nil {
		sl.ReportError(e.EndDate, "EndDate", "endDate", "iso8601", "")
		return
	}
	if ok && end.Before(start) {
		sl.ReportError(e.EndDate, "EndDate", "endDate", "gtedate", "")
	}
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() ([]domain.Event, error) {
	return Parse(defaultCatalog)
}

// LoadFile reads and validates a catalog file.
func LoadFile(path string) ([]domain.Event, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(b)
}

// Parse decodes a YAML catalog and validates every record. Event ids must be
// unique. Tags default to an empty list.
func Parse(data []byte) ([]domain.Event, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	seen := make(map[string]struct{}, len(f.Events))
	for i := range f.Events {
		e := &f.Events[i]
		if e.Tags == nil {
			e.Tags = []string{}
		}
		if err := validate.Struct(e); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				return nil, fmt.Errorf("event %d (%s): %w: %s", i, e.ID, domain.ErrInvalidInput, verrs.Error())
			}
			return nil, fmt.Errorf("validate event %d: %w", i, err)
		}
		if _, dup := seen[e.ID]; dup {
			return nil, fmt.Errorf("duplicate event id %q: %w", e.ID, domain.ErrInvalidInput)
		}
		seen[e.ID] = struct{}{}
	}
	return f.Events, nil
}
