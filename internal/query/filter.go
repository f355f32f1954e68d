package query

import "eventrsvp/internal/domain"

// whenColumn is the scheduled time of the event row aliased "e".
const whenColumn = "e.scheduled_at"

// Time windows are computed from the database clock so every request sees the
// same boundaries regardless of when it reached the store. date_trunc('week')
// starts ISO weeks on Monday.
var whenPredicates = map[domain.WhenFilter]string{
	domain.WhenToday: whenColumn + " >= CURRENT_DATE AND " +
		whenColumn + " < CURRENT_DATE + INTERVAL '1 day'",
	domain.WhenTomorrow: whenColumn + " >= CURRENT_DATE + INTERVAL '1 day' AND " +
		whenColumn + " < CURRENT_DATE + INTERVAL '2 days'",
	domain.WhenThisWeek: whenColumn + " >= date_trunc('week', CURRENT_DATE) AND " +
		whenColumn + " < date_trunc('week', CURRENT_DATE) + INTERVAL '1 week'",
	domain.WhenNextWeek: whenColumn + " >= date_trunc('week', CURRENT_DATE) + INTERVAL '1 week' AND " +
		whenColumn + " < date_trunc('week', CURRENT_DATE) + INTERVAL '2 weeks'",
}

// WhenPredicate returns the predicate for a time window. It reports false for
// WhenAll and for values outside the known range, which add no predicate.
func WhenPredicate(when domain.WhenFilter) (string, bool) {
	p, ok := whenPredicates[when]
	return p, ok
}

// ApplyFilter narrows q by the filter's time window. A nil filter, WhenAll and
// unknown windows return q unchanged.
func ApplyFilter[T any](q domain.Query[T], filter *domain.EventsFilter) domain.Query[T] {
	if filter == nil {
		return q
	}
	if p, ok := WhenPredicate(filter.When); ok {
		return q.Where(p)
	}
	return q
}
