package query

import (
	"time"

	"eventdiscovery/internal/domain"
)

// Bucket returns the half-open window [start, end) for a relative date range,
// computed in now's location. ok is false for ranges that are not relative
// buckets (all, custom, unknown).
func Bucket(r domain.DateRange, now time.Time) (start, end time.Time, ok bool) {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	switch r {
	case domain.DateRangeToday:
		return today, today.AddDate(0, 0, 1), true
	case domain.DateRangeThisWeek:
		// weeks start on Sunday
		start = today.AddDate(0, 0, -int(today.Weekday()))
		return start, start.AddDate(0, 0, 7), true
	case domain.DateRangeThisMonth:
		start = time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, 0), true
	}
	return time.Time{}, time.Time{}, false
}

// customWindow parses the custom bounds. ok is false when the range is absent
// or either bound is unusable, in which case nothing is filtered.
func customWindow(cr *domain.CustomDateRange) (start, end time.Time, ok bool) {
	if cr == nil || cr.Start == "" || cr.End == "" {
		return time.Time{}, time.Time{}, false
	}
	start, err := domain.ParseInstant(cr.Start)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err = domain.ParseInstant(cr.End)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func datePredicate(f domain.Filters, now time.Time) predicate {
	var start, end time.Time
	var ok bool
	if f.DateRange == domain.DateRangeCustom {
		start, end, ok = customWindow(f.CustomRange)
	} else {
		start, end, ok = Bucket(f.DateRange, now)
	}
	if !ok {
		return nil
	}
	return func(e domain.Event) bool {
		at, err := e.StartsAt()
		if err != nil {
			return true
		}
		return !at.Before(start) && at.Before(end)
	}
}
