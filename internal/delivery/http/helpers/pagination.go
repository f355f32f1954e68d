package helpers

import (
	"net/http"
	"strconv"

	"eventrsvp/internal/domain"
)

// ParsePage reads the page query parameter. Missing, malformed and
// non-positive values fall back to page 1.
func ParsePage(r *http.Request) int {
	if s := r.URL.Query().Get("page"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 1 {
			return v
		}
	}
	return 1
}

// ParseEventsFilter builds the listing filter from the when and page query
// parameters. An unknown or malformed when lists everything.
func ParseEventsFilter(r *http.Request) domain.EventsFilter {
	filter := domain.DefaultEventsFilter()
	filter.Page = ParsePage(r)
	if s := r.URL.Query().Get("when"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= int(domain.WhenAll) && v <= int(domain.WhenNextWeek) {
			filter.When = domain.WhenFilter(v)
		}
	}
	return filter
}

// PathID parses the named path value as a positive id. On failure it writes a
// 400 response and returns false.
func PathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id < 1 {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}
