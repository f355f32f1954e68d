package query

import "eventrsvp/internal/domain"

// Projection aliases of the attendee row carried by AttendedBy.
const (
	AliasAttendeeID     = "attendee_id"
	AliasAttendeeUserID = "attendee_user_id"
	AliasAttendeeAnswer = "attendee_answer"
)

// EventSource provides the base query over events aliased "e".
type EventSource interface {
	Query() domain.Query[*domain.Event]
}

// Assembler builds the event listing variants. Each variant starts from the
// same base (newest id first) and adds one predicate source.
type Assembler struct {
	source EventSource
}

// NewAssembler returns an Assembler over the given event source.
func NewAssembler(source EventSource) *Assembler {
	return &Assembler{source: source}
}

func (a *Assembler) base() domain.Query[*domain.Event] {
	return a.source.Query().OrderBy("e.id DESC")
}

// All lists every event with attendee counts, narrowed by the filter's time window.
func (a *Assembler) All(filter *domain.EventsFilter) domain.Query[*domain.Event] {
	return ApplyFilter(WithAttendeeCounts(a.base()), filter)
}

// One selects a single event by id with attendee counts.
func (a *Assembler) One(id int64) domain.Query[*domain.Event] {
	return WithAttendeeCounts(a.base()).Where("e.id = ?", id)
}

// OrganizedBy lists the events organized by a user. Counts are not attached.
func (a *Assembler) OrganizedBy(organizerID int64) domain.Query[*domain.Event] {
	return a.base().Where("e.organizer_id = ?", organizerID)
}

// AttendedBy lists the events a user has answered, carrying that user's
// attendee row so the caller can read the answer.
func (a *Assembler) AttendedBy(userID int64) domain.Query[*domain.Event] {
	return a.base().
		Join("JOIN attendees a ON a.event_id = e.id").
		Select("a.id", AliasAttendeeID).
		Select("a.user_id", AliasAttendeeUserID).
		Select("a.answer", AliasAttendeeAnswer).
		Where("a.user_id = ?", userID)
}
