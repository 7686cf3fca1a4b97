// Package query filters and orders an event collection.
//
// Apply is pure: it never mutates its input and, for a fixed current time,
// always returns the same result. Each filter is applied only when active and
// all active filters must match. Unparseable dates never exclude an event.
package query

import (
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"eventdiscovery/internal/domain"
)

// Apply returns the events matching f, ordered by ascending date. now anchors
// the relative date ranges (today, this week, this month) in now's location.
func Apply(events []domain.Event, f domain.Filters, now time.Time) []domain.Event {
	f = domain.NormalizeFilters(f)
	preds := predicates(f, now)

	out := make([]domain.Event, 0, len(events))
	for _, e := range events {
		if matchesAll(e, preds) {
			out = append(out, e)
		}
	}
	sortByDate(out)
	return out
}

type predicate func(domain.Event) bool

func matchesAll(e domain.Event, preds []predicate) bool {
	for _, p := range preds {
		if !p(e) {
			return false
		}
	}
	return true
}

func predicates(f domain.Filters, now time.Time) []predicate {
	var preds []predicate
	// cases.Caser is stateful; one per Apply call.
	fold := cases.Fold()

	if f.SearchQuery != "" {
		preds = append(preds, searchPredicate(fold, f.SearchQuery))
	}
	if f.EventType != "" {
		eventType := f.EventType
		preds = append(preds, func(e domain.Event) bool { return e.EventType == eventType })
	}
	if f.Location != "" {
		preds = append(preds, locationPredicate(fold, f.Location))
	}
	if p := datePredicate(f, now); p != nil {
		preds = append(preds, p)
	}
	return preds
}

func searchPredicate(fold cases.Caser, q string) predicate {
	needle := fold.String(q)
	return func(e domain.Event) bool {
		if strings.Contains(fold.String(e.Title), needle) ||
			strings.Contains(fold.String(e.Description), needle) {
			return true
		}
		for _, tag := range e.Tags {
			if strings.Contains(fold.String(tag), needle) {
				return true
			}
		}
		return false
	}
}

// locationPredicate matches city, country or venue name. A "custom:" prefix
// only marks user-typed text and is stripped before matching.
func locationPredicate(fold cases.Caser, loc string) predicate {
	needle := fold.String(strings.TrimPrefix(loc, domain.CustomLocationPrefix))
	return func(e domain.Event) bool {
		return strings.Contains(fold.String(e.Location.City), needle) ||
			strings.Contains(fold.String(e.Location.Country), needle) ||
			strings.Contains(fold.String(e.Location.Name), needle)
	}
}

// sortByDate orders events by start instant, keeping catalog order for ties.
// Events with unparseable dates go last.
func sortByDate(events []domain.Event) {
	type item struct {
		e  domain.Event
		at time.Time
		ok bool
	}
	items := make([]item, len(events))
	for i, e := range events {
		at, err := e.StartsAt()
		items[i] = item{e: e, at: at, ok: err == nil}
	}
	slices.SortStableFunc(items, func(a, b item) int {
		switch {
		case a.ok && b.ok:
			return a.at.Compare(b.at)
		case a.ok:
			return -1
		case b.ok:
			return 1
		}
		return 0
	})
	for i := range items {
		events[i] = items[i].e
	}
}
