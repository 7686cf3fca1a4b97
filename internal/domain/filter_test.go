package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFilters(t *testing.T) {
	tests := []struct {
		name string
		in   Filters
		want Filters
	}{
		{
			name: "legacy sentinels collapse to empty",
			in:   Filters{DateRange: "all", Location: "all-locations", EventType: "all-types"},
			want: Filters{DateRange: DateRangeAll},
		},
		{
			name: "empty date range means all",
			in:   Filters{SearchQuery: "  React  "},
			want: Filters{DateRange: DateRangeAll, SearchQuery: "React"},
		},
		{
			name: "event type keeps case",
			in:   Filters{DateRange: "TODAY", EventType: " Conference "},
			want: Filters{DateRange: DateRangeToday, EventType: "Conference"},
		},
		{
			name: "custom location kept verbatim",
			in:   Filters{Location: "custom:London"},
			want: Filters{DateRange: DateRangeAll, Location: "custom:London"},
		},
		{
			name: "custom range trimmed",
			in:   Filters{DateRange: DateRangeCustom, CustomRange: &CustomDateRange{Start: " 2024-06-01 ", End: "2024-07-01"}},
			want: Filters{DateRange: DateRangeCustom, CustomRange: &CustomDateRange{Start: "2024-06-01", End: "2024-07-01"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeFilters(tt.in))
		})
	}
}

func TestFilters_Validate(t *testing.T) {
	require.NoError(t, NormalizeFilters(Filters{}).Validate())
	require.NoError(t, Filters{DateRange: DateRangeThisWeek}.Validate())

	err := Filters{DateRange: "next-year"}.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCacheKey(t *testing.T) {
	a := CacheKey(Filters{DateRange: "all", Location: "all-locations", EventType: "all-types", SearchQuery: "React"})
	b := CacheKey(Filters{SearchQuery: " React"})
	assert.Equal(t, a, b)
	assert.Equal(t, `events-{"dateRange":"all","location":"","eventType":"","searchQuery":"React","customStart":"","customEnd":""}`, a)

	c := CacheKey(Filters{SearchQuery: "react"})
	assert.NotEqual(t, a, c)

	withRange := CacheKey(Filters{DateRange: DateRangeCustom, CustomRange: &CustomDateRange{Start: "2024-06-01", End: "2024-07-01"}})
	assert.Contains(t, withRange, `"customStart":"2024-06-01","customEnd":"2024-07-01"`)

	bounds := &CustomDateRange{Start: "2024-01-01", End: "2024-02-01"}
	tests := []struct {
		name string
		f    Filters
		want Filters
	}{
		{"bounds ignored without custom range", Filters{DateRange: DateRangeAll, CustomRange: bounds}, Filters{DateRange: DateRangeAll}},
		{"bounds ignored for this-week", Filters{DateRange: DateRangeThisWeek, CustomRange: bounds}, Filters{DateRange: DateRangeThisWeek}},
		{"empty date range with bounds", Filters{CustomRange: bounds}, Filters{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, CacheKey(tt.want), CacheKey(tt.f))
		})
	}
	assert.NotEqual(t, CacheKey(Filters{DateRange: DateRangeCustom}), CacheKey(Filters{DateRange: DateRangeCustom, CustomRange: bounds}))
}

func TestPaginationParams_Bounds(t *testing.T) {
	tests := []struct {
		name      string
		params    PaginationParams
		total     int
		wantStart int
		wantEnd   int
	}{
		{"first page", PaginationParams{Page: 1, PageSize: 2}, 5, 0, 2},
		{"last partial page", PaginationParams{Page: 3, PageSize: 2}, 5, 4, 5},
		{"past the end", PaginationParams{Page: 9, PageSize: 2}, 5, 5, 5},
		{"no page size", PaginationParams{Page: 1}, 5, 0, 5},
		{"zero page", PaginationParams{Page: 0, PageSize: 10}, 3, 0, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := tt.params.Bounds(tt.total)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestEvent_StartsAt(t *testing.T) {
	e := Event{Date: "2024-07-15T09:00:00Z", EndDate: "2024-07-17T18:00:00Z"}
	start, err := e.StartsAt()
	require.NoError(t, err)
	assert.Equal(t, 15, start.Day())

	end, ok, err := e.EndsAt()
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, end.After(start))

	_, ok, err = Event{Date: "2024-07-15"}.EndsAt()
	require.NoError(t, err)
	assert.False(t, ok)

	dateOnly, err := Event{Date: "2024-07-15"}.StartsAt()
	require.NoError(t, err)
	assert.Equal(t, 0, dateOnly.Hour())

	_, err = Event{Date: "someday"}.StartsAt()
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestValidEventID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"1", true},
		{"react-conf_2024", true},
		{"", false},
		{"../etc/passwd", false},
		{"id with spaces", false},
		{"<script>", false},
		{strings.Repeat("a", 49), true},
		{strings.Repeat("a", 50), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidEventID(tt.id), "id %q", tt.id)
	}
}
