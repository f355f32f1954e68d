package query

import "eventrsvp/internal/domain"

// Projection aliases read back by the store when scanning event rows.
const (
	AliasAttendeeCount    = "attendee_count"
	AliasAttendeeAccepted = "attendee_accepted"
	AliasAttendeeMaybe    = "attendee_maybe"
	AliasAttendeeRejected = "attendee_rejected"
)

const attendeeCountExpr = "SELECT COUNT(*) FROM attendees att WHERE att.event_id = e.id"

var answerAliases = map[domain.AttendeeAnswer]string{
	domain.AnswerAccepted: AliasAttendeeAccepted,
	domain.AnswerMaybe:    AliasAttendeeMaybe,
	domain.AnswerRejected: AliasAttendeeRejected,
}

// WithAttendeeCounts attaches the total attendee count and one count per
// answer as correlated scalar subqueries. Nothing is joined, so each event is
// still returned once and the query's ordering is untouched.
func WithAttendeeCounts(q domain.Query[*domain.Event]) domain.Query[*domain.Event] {
	q = q.Select(attendeeCountExpr, AliasAttendeeCount)
	for _, answer := range domain.AttendeeAnswers {
		q = q.Select(attendeeCountExpr+" AND att.answer = ?", answerAliases[answer], string(answer))
	}
	return q
}
