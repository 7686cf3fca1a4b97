package controllers

import (
	"log/slog"
	"net/http"

	"eventdiscovery/internal/delivery/http/helpers"
	"eventdiscovery/internal/delivery/http/middleware"
	"eventdiscovery/internal/domain"
)

// ListEventsResponse is the data of a paginated event listing.
type ListEventsResponse struct {
	Events     []domain.Event         `json:"events"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListEventsSuccessResponse is the success response envelope for event listings (200).
type ListEventsSuccessResponse struct {
	Data  ListEventsResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// GetEventSuccessResponse is the success response envelope for GET /events/{eventID} (200).
type GetEventSuccessResponse struct {
	Data  domain.Event      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// SearchEventsRequest is the request body for POST /events/search.
type SearchEventsRequest struct {
	DateRange   string                  `json:"dateRange" validate:"max=20"`
	Location    string                  `json:"location" validate:"max=200"`
	EventType   string                  `json:"eventType" validate:"max=100"`
	SearchQuery string                  `json:"searchQuery" validate:"max=200"`
	CustomRange *domain.CustomDateRange `json:"customDateRange"`
}

// Validate implements Validator.
func (s SearchEventsRequest) Validate() []string {
	var errs []string
	if err := s.filters().Validate(); err != nil {
		errs = append(errs, "dateRange must be one of all, today, this-week, this-month, custom")
	}
	return errs
}

func (s SearchEventsRequest) filters() domain.Filters {
	f := domain.Filters{
		DateRange:   domain.DateRange(s.DateRange),
		Location:    helpers.SanitizeInput(s.Location),
		EventType:   helpers.SanitizeInput(s.EventType),
		SearchQuery: helpers.SanitizeInput(s.SearchQuery),
	}
	if s.CustomRange != nil {
		f.CustomRange = &domain.CustomDateRange{
			Start: helpers.SanitizeInput(s.CustomRange.Start),
			End:   helpers.SanitizeInput(s.CustomRange.End),
		}
	}
	return domain.NormalizeFilters(f)
}

// HealthResponse is the data of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// filtersFromQuery reads list filters from the query string.
func filtersFromQuery(r *http.Request) SearchEventsRequest {
	q := r.URL.Query()
	req := SearchEventsRequest{
		DateRange:   q.Get("dateRange"),
		Location:    q.Get("location"),
		EventType:   q.Get("eventType"),
		SearchQuery: q.Get("q"),
	}
	if start, end := q.Get("start"), q.Get("end"); start != "" || end != "" {
		req.CustomRange = &domain.CustomDateRange{Start: start, End: end}
	}
	return req
}

// ListEvents godoc
// @Summary List events
// @Description Returns the events matching the filters, sorted by date ascending. Results are cached per filter set.
// @Tags events
// @Produce json
// @Param dateRange query string false "all, today, this-week, this-month or custom" default(all)
// @Param location query string false "City, country or venue; a custom: prefix marks free text"
// @Param eventType query string false "Exact event type, e.g. Conference"
// @Param q query string false "Case-insensitive search over title, description and tags"
// @Param start query string false "Custom range start (inclusive, ISO 8601)"
// @Param end query string false "Custom range end (exclusive, ISO 8601)"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size (max 100)" default(20)
// @Success 200 {object} controllers.ListEventsSuccessResponse "data contains events and pagination"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 502 {object} helpers.APIResponse "error.code: source_unavailable"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	req := filtersFromQuery(r)
	if !helpers.WriteValidationErrors(w, helpers.ValidateRequest(&req)) {
		return
	}
	c.respondWithEvents(w, r, req.filters())
}

// SearchEvents godoc
// @Summary Search events
// @Description Same as GET /events with the filters given as a JSON body.
// @Tags events
// @Accept json
// @Produce json
// @Param filters body SearchEventsRequest true "Filters"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size (max 100)" default(20)
// @Success 200 {object} controllers.ListEventsSuccessResponse "data contains events and pagination"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 502 {object} helpers.APIResponse "error.code: source_unavailable"
// @Router /events/search [post]
func (c *EventController) SearchEvents(w http.ResponseWriter, r *http.Request) {
	var req SearchEventsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	c.respondWithEvents(w, r, req.filters())
}

func (c *EventController) respondWithEvents(w http.ResponseWriter, r *http.Request, filters domain.Filters) {
	events, err := c.Service.FetchEvents(r.Context(), filters)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	params := helpers.ParsePagination(r)
	page := helpers.Paginate(events, params)
	out := make([]domain.Event, len(page))
	for i, e := range page {
		out[i] = present(e)
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListEventsResponse{
		Events:     out,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, len(events)),
	})
}

// GetEvent godoc
// @Summary Get an event by ID
// @Description Returns a single event. Malformed ids are reported as not found.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.GetEventSuccessResponse "data contains the event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 502 {object} helpers.APIResponse "error.code: source_unavailable"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := c.Service.GetEventByID(r.Context(), r.PathValue("eventID"))
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, present(*event))
}

// ClearCache godoc
// @Summary Clear the event cache
// @Description Drops every cached query result. The next listing reads from the event source.
// @Tags cache
// @Success 204 "cache cleared"
// @Router /cache [delete]
func (c *EventController) ClearCache(w http.ResponseWriter, r *http.Request) {
	c.Service.ClearCache()
	w.WriteHeader(http.StatusNoContent)
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse "data.status: ok"
// @Router /healthz [get]
func (c *EventController) Health(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (c *EventController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := helpers.StatusForError(err)
	message := err.Error()
	switch code {
	case helpers.ErrCodeNotFound:
		message = "event not found"
	case helpers.ErrCodeSourceUnavailable:
		message = domain.ErrSourceUnavailable.Error()
	}
	if status >= http.StatusInternalServerError {
		c.Logger.ErrorContext(r.Context(), "request failed",
			"path", r.URL.Path,
			"method", r.Method,
			"request_id", middleware.RequestIDFromContext(r.Context()),
			"err", err,
		)
	}
	helpers.WriteJSONError(w, status, code, message)
}

// present prepares an event for the wire.
func present(e domain.Event) domain.Event {
	e.ImageURL = helpers.SanitizeImageURL(e.ImageURL)
	return e
}
