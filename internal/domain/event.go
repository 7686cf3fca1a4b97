package domain

import (
	"context"
	"fmt"
	"regexp"
	"time"
)

var eventIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,49}$`)

// ValidEventID reports whether id is well formed. Malformed ids are treated as
// not found rather than as errors.
func ValidEventID(id string) bool {
	return eventIDPattern.MatchString(id)
}

// Location is where an event takes place.
type Location struct {
	Name    string `json:"name" yaml:"name"`
	Address string `json:"address" yaml:"address"`
	City    string `json:"city" yaml:"city"`
	Country string `json:"country" yaml:"country"`
}

// Price is the ticket price of an event.
type Price struct {
	Amount   float64 `json:"amount" yaml:"amount" validate:"gte=0"`
	Currency string  `json:"currency" yaml:"currency" validate:"required"`
}

// Event is a catalog record. Dates are kept in their ISO-8601 wire form; use
// StartsAt and EndsAt to get instants.
// swagger:model Event
type Event struct {
	ID              string   `json:"id" yaml:"id" validate:"required"`
	Title           string   `json:"title" yaml:"title" validate:"required"`
	Description     string   `json:"description" yaml:"description"`
	Date            string   `json:"date" yaml:"date" validate:"required"`
	EndDate         string   `json:"endDate,omitempty" yaml:"endDate,omitempty"`
	Location        Location `json:"location" yaml:"location"`
	EventType       string   `json:"eventType" yaml:"eventType"`
	Organizer       string   `json:"organizer" yaml:"organizer"`
	ImageURL        string   `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
	Price           *Price   `json:"price,omitempty" yaml:"price,omitempty" validate:"omitempty"`
	RegistrationURL string   `json:"registrationUrl,omitempty" yaml:"registrationUrl,omitempty"`
	Tags            []string `json:"tags" yaml:"tags"`
	Capacity        *int     `json:"capacity,omitempty" yaml:"capacity,omitempty" validate:"omitempty,gte=0"`
	AttendeesCount  *int     `json:"attendeesCount,omitempty" yaml:"attendeesCount,omitempty" validate:"omitempty,gte=0"`
}

// StartsAt parses Date.
func (e Event) StartsAt() (time.Time, error) {
	return ParseInstant(e.Date)
}

// EndsAt parses EndDate. ok is false when the event has no end date.
func (e Event) EndsAt() (t time.Time, ok bool, err error) {
	if e.EndDate == "" {
		return time.Time{}, false, nil
	}
	t, err = ParseInstant(e.EndDate)
	return t, err == nil, err
}

// ParseInstant accepts RFC 3339 timestamps and bare YYYY-MM-DD dates (midnight UTC).
func ParseInstant(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("parse instant %q: %w", s, ErrInvalidInput)
}

// EventSource is the read-only catalog the service queries.
type EventSource interface {
	ListEvents(ctx context.Context) ([]Event, error)
	// GetEvent returns ErrNotFound when no event has the given id.
	GetEvent(ctx context.Context, id string) (*Event, error)
}

// EventService is the data access façade used by delivery code.
type EventService interface {
	FetchEvents(ctx context.Context, filters Filters) ([]Event, error)
	GetEventByID(ctx context.Context, id string) (*Event, error)
	ClearCache()
}
