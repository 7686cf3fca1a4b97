// Package graphql reads the event catalog from a remote GraphQL endpoint.
package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"eventdiscovery/internal/domain"
)

const (
	AuthBearer = "bearer"
	AuthAPIKey = "api-key"

	DefaultTimeout = 10 * time.Second
)

const eventFields = `
      id
      title
      description
      date
      endDate
      location { name address city country }
      eventType
      organizer
      imageUrl
      price { amount currency }
      registrationUrl
      tags
      capacity
      attendeesCount`

const listEventsQuery = `query ListEvents {
  eventList(sort: "date_ASC") {
    items {` + eventFields + `
    }
  }
}`

const getEventQuery = `query GetEvent($id: ID!) {
  event(id: $id) {` + eventFields + `
  }
}`

// Options configures the client. AuthType selects which credential is sent.
type Options struct {
	Endpoint  string
	APIKey    string
	AuthToken string
	AuthType  string
	Timeout   time.Duration
}

type client struct {
	http *http.Client
	opts Options
}

// NewClient returns an EventSource backed by a GraphQL endpoint. A nil
// httpClient gets a fresh client with opts.Timeout.
func NewClient(opts Options, httpClient *http.Client) domain.EventSource {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.AuthType == "" {
		opts.AuthType = AuthBearer
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	return &client{http: httpClient, opts: opts}
}

type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type responseError struct {
	Message    string         `json:"message"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []responseError `json:"errors"`
}

func (c *client) setAuthHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	switch {
	case c.opts.AuthType == AuthBearer && c.opts.AuthToken != "":
		req.Header.Set("Authorization", "Bearer "+c.opts.AuthToken)
	case c.opts.AuthType == AuthAPIKey && c.opts.APIKey != "":
		req.Header.Set("X-API-Key", c.opts.APIKey)
	}
}

// do posts one operation and decodes its data into out.
func (c *client) do(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(request{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to encode graphql request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setAuthHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call graphql endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("graphql endpoint returned status: %d", resp.StatusCode)
	}

	var result response
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("%w: decode graphql response: %w", domain.ErrMalformedResponse, err)
	}
	if len(result.Errors) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrMalformedResponse, result.Errors[0].Message)
	}
	if len(result.Data) == 0 || string(result.Data) == "null" {
		return fmt.Errorf("%w: no data returned from graphql query", domain.ErrMalformedResponse)
	}
	if err := json.Unmarshal(result.Data, out); err != nil {
		return fmt.Errorf("%w: decode graphql data: %w", domain.ErrMalformedResponse, err)
	}
	return nil
}

func (c *client) ListEvents(ctx context.Context) ([]domain.Event, error) {
	var data struct {
		EventList *struct {
			Items []domain.Event `json:"items"`
		} `json:"eventList"`
	}
	if err := c.do(ctx, listEventsQuery, nil, &data); err != nil {
		return nil, err
	}
	if data.EventList == nil {
		return nil, fmt.Errorf("%w: eventList missing from response", domain.ErrMalformedResponse)
	}
	events := data.EventList.Items
	if events == nil {
		events = []domain.Event{}
	}
	for i := range events {
		if events[i].Tags == nil {
			events[i].Tags = []string{}
		}
	}
	return events, nil
}

func (c *client) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	var data struct {
		Event *domain.Event `json:"event"`
	}
	if err := c.do(ctx, getEventQuery, map[string]any{"id": id}, &data); err != nil {
		return nil, err
	}
	if data.Event == nil {
		return nil, domain.ErrNotFound
	}
	if data.Event.Tags == nil {
		data.Event.Tags = []string{}
	}
	return data.Event, nil
}
