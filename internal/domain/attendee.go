package domain

import (
	"context"
)

// AttendeeAnswer is a user's RSVP answer for an event.
type AttendeeAnswer string

const (
	AnswerAccepted AttendeeAnswer = "accepted"
	AnswerMaybe    AttendeeAnswer = "maybe"
	AnswerRejected AttendeeAnswer = "rejected"
)

// AttendeeAnswers lists every answer in display order.
var AttendeeAnswers = []AttendeeAnswer{AnswerAccepted, AnswerMaybe, AnswerRejected}

// Valid reports whether a is one of the known answers.
func (a AttendeeAnswer) Valid() bool {
	switch a {
	case AnswerAccepted, AnswerMaybe, AnswerRejected:
		return true
	}
	return false
}

// Attendee represents one user's answer for one event.
// swagger:model Attendee
type Attendee struct {
	ID      int64          `json:"id"`
	EventID int64          `json:"event_id"`
	UserID  int64          `json:"user_id"`
	Answer  AttendeeAnswer `json:"answer"`
}

// NewAttendee creates a new Attendee. ID is set by the repository on save.
func NewAttendee(eventID, userID int64, answer AttendeeAnswer) *Attendee {
	return &Attendee{
		EventID: eventID,
		UserID:  userID,
		Answer:  answer,
	}
}

// AttendeeRepository defines storage operations for attendees.
type AttendeeRepository interface {
	GetByEventAndUser(ctx context.Context, eventID, userID int64) (*Attendee, error)
	ListByEventID(ctx context.Context, eventID int64) ([]*Attendee, error)
	// Save inserts the attendee when ID is zero and updates it by ID otherwise.
	Save(ctx context.Context, attendee *Attendee) error
}

// AttendeeService defines attendee-facing operations.
type AttendeeService interface {
	ListByEvent(ctx context.Context, eventID int64) ([]*Attendee, error)
	GetForUser(ctx context.Context, eventID, userID int64) (*Attendee, error)
	CreateOrUpdate(ctx context.Context, answer AttendeeAnswer, eventID, userID int64) (*Attendee, error)
}
