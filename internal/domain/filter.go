package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DateRange selects a date bucket relative to the current time.
type DateRange string

const (
	DateRangeAll       DateRange = "all"
	DateRangeToday     DateRange = "today"
	DateRangeThisWeek  DateRange = "this-week"
	DateRangeThisMonth DateRange = "this-month"
	DateRangeCustom    DateRange = "custom"
)

// Valid reports whether r is one of the known date ranges.
func (r DateRange) Valid() bool {
	switch r {
	case DateRangeAll, DateRangeToday, DateRangeThisWeek, DateRangeThisMonth, DateRangeCustom:
		return true
	}
	return false
}

// CustomLocationPrefix marks a free-text location typed by the user.
const CustomLocationPrefix = "custom:"

// CacheKeyPrefix prefixes every event query cache key.
const CacheKeyPrefix = "events-"

// CustomDateRange bounds a custom date filter. Only meaningful with DateRangeCustom.
type CustomDateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Filters are the user-selected constraints on the catalog. An empty Location,
// EventType or SearchQuery means no constraint.
type Filters struct {
	DateRange   DateRange        `json:"dateRange"`
	Location    string           `json:"location"`
	EventType   string           `json:"eventType"`
	SearchQuery string           `json:"searchQuery"`
	CustomRange *CustomDateRange `json:"customDateRange,omitempty"`
}

// legacy "no constraint" spellings used by older clients
var unconstrained = map[string]struct{}{
	"all":           {},
	"all-locations": {},
	"all-types":     {},
}

func normalizeConstraint(s string) string {
	s = strings.TrimSpace(s)
	if _, ok := unconstrained[strings.ToLower(s)]; ok {
		return ""
	}
	return s
}

// NormalizeFilters maps every "no constraint" spelling to the empty string and
// an empty date range to DateRangeAll. It does not validate the date range.
func NormalizeFilters(f Filters) Filters {
	out := Filters{
		DateRange:   DateRange(strings.ToLower(strings.TrimSpace(string(f.DateRange)))),
		Location:    normalizeConstraint(f.Location),
		EventType:   normalizeConstraint(f.EventType),
		SearchQuery: strings.TrimSpace(f.SearchQuery),
	}
	if out.DateRange == "" {
		out.DateRange = DateRangeAll
	}
	if f.CustomRange != nil {
		cr := CustomDateRange{
			Start: strings.TrimSpace(f.CustomRange.Start),
			End:   strings.TrimSpace(f.CustomRange.End),
		}
		out.CustomRange = &cr
	}
	return out
}

// Validate checks normalized filters.
func (f Filters) Validate() error {
	if !f.DateRange.Valid() {
		return fmt.Errorf("unknown date range %q: %w", f.DateRange, ErrInvalidInput)
	}
	return nil
}

// cacheKeyFields fixes the serialization order of a filter set.
type cacheKeyFields struct {
	DateRange   DateRange `json:"dateRange"`
	Location    string    `json:"location"`
	EventType   string    `json:"eventType"`
	SearchQuery string    `json:"searchQuery"`
	CustomStart string    `json:"customStart"`
	CustomEnd   string    `json:"customEnd"`
}

// CacheKey derives the cache key for f. Logically equal filters, including
// different spellings of "no constraint", produce the same key. Custom bounds
// only count under DateRangeCustom.
func CacheKey(f Filters) string {
	n := NormalizeFilters(f)
	k := cacheKeyFields{
		DateRange:   n.DateRange,
		Location:    n.Location,
		EventType:   n.EventType,
		SearchQuery: n.SearchQuery,
	}
	if n.DateRange == DateRangeCustom && n.CustomRange != nil {
		k.CustomStart = n.CustomRange.Start
		k.CustomEnd = n.CustomRange.End
	}
	b, _ := json.Marshal(k)
	return CacheKeyPrefix + string(b)
}
