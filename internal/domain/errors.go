package domain

import "errors"

var (
	// ErrNotFound is returned when an event does not exist or its id is malformed.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned for unusable caller input (e.g. an unknown date range).
	ErrInvalidInput = errors.New("invalid input")
	// ErrSourceUnavailable wraps any failure obtaining the event collection.
	ErrSourceUnavailable = errors.New("event source unavailable")
	// ErrMalformedResponse is returned when a remote source answers with errors or without data.
	ErrMalformedResponse = errors.New("malformed source response")
)
