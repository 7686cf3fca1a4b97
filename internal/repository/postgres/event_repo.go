package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"eventdiscovery/internal/domain"
)

const eventColumns = `id, title, description, date, end_date,
		location_name, location_address, location_city, location_country,
		event_type, organizer, image_url, price_amount, price_currency,
		registration_url, tags, capacity, attendees_count`

type eventRepository struct {
	DB *sql.DB
}

// NewEventRepository returns a read-only EventSource over the events table.
func NewEventRepository(db *sql.DB) domain.EventSource {
	return &eventRepository{
		DB: db,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (domain.Event, error) {
	var (
		e                                   domain.Event
		date                                time.Time
		endDate                             sql.NullTime
		description, organizer, eventType   sql.NullString
		locName, locAddress, locCity, locCC sql.NullString
		imageURL, currency, registrationURL sql.NullString
		amount                              sql.NullFloat64
		capacity, attendees                 sql.NullInt64
		tags                                []string
	)
	err := row.Scan(
		&e.ID, &e.Title, &description, &date, &endDate,
		&locName, &locAddress, &locCity, &locCC,
		&eventType, &organizer, &imageURL, &amount, &currency,
		&registrationURL, pq.Array(&tags), &capacity, &attendees,
	)
	if err != nil {
		return domain.Event{}, err
	}

	e.Description = description.String
	e.Date = date.UTC().Format(time.RFC3339)
	if endDate.Valid {
		e.EndDate = endDate.Time.UTC().Format(time.RFC3339)
	}
	e.Location = domain.Location{
		Name:    locName.String,
		Address: locAddress.String,
		City:    locCity.String,
		Country: locCC.String,
	}
	e.EventType = eventType.String
	e.Organizer = organizer.String
	e.ImageURL = imageURL.String
	if amount.Valid {
		e.Price = &domain.Price{Amount: amount.Float64, Currency: currency.String}
	}
	e.RegistrationURL = registrationURL.String
	e.Tags = tags
	if e.Tags == nil {
		e.Tags = []string{}
	}
	if capacity.Valid {
		v := int(capacity.Int64)
		e.Capacity = &v
	}
	if attendees.Valid {
		v := int(attendees.Int64)
		e.AttendeesCount = &v
	}
	return e, nil
}

func (r *eventRepository) ListEvents(ctx context.Context) ([]domain.Event, error) {
	query := `SELECT ` + eventColumns + `
		FROM events
		ORDER BY date ASC, id ASC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	events := []domain.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

func (r *eventRepository) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + `
		FROM events
		WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &e, nil
}
