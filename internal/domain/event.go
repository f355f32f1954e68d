package domain

import (
	"context"
	"time"
)

// Event represents a scheduled event owned by its organizer.
// The attendee counts are derived per query and are nil when the listing did not attach them.
// swagger:model Event
type Event struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	When        time.Time `json:"when"`
	OrganizerID int64     `json:"organizer_id"`

	AttendeeCount    *int `json:"attendee_count,omitempty"`
	AttendeeAccepted *int `json:"attendee_accepted,omitempty"`
	AttendeeMaybe    *int `json:"attendee_maybe,omitempty"`
	AttendeeRejected *int `json:"attendee_rejected,omitempty"`

	// Attendees is only filled by the attended-by-user listing, with that user's row.
	Attendees []*Attendee `json:"attendees,omitempty"`
}

// NewEvent returns a new Event with the given fields. ID is set by the repository on create.
func NewEvent(name, description string, when time.Time, organizerID int64) *Event {
	return &Event{
		Name:        name,
		Description: description,
		When:        when,
		OrganizerID: organizerID,
	}
}

// WhenFilter selects a time window for event listings.
type WhenFilter int

const (
	WhenAll WhenFilter = iota + 1
	WhenToday
	WhenTomorrow
	WhenThisWeek
	WhenNextWeek
)

// EventsFilter is built per request from the listing query string.
type EventsFilter struct {
	When WhenFilter
	Page int
}

// DefaultEventsFilter returns the filter used when the request carries none.
func DefaultEventsFilter() EventsFilter {
	return EventsFilter{When: WhenAll, Page: 1}
}

// CreateEventInput holds the fields accepted when creating an event.
type CreateEventInput struct {
	Name        string
	Description string
	When        time.Time
}

// UpdateEventInput holds optional fields; nil fields are left unchanged.
type UpdateEventInput struct {
	Name        *string
	Description *string
	When        *time.Time
}

// Apply copies the set fields onto e. The organizer is never changed.
func (in UpdateEventInput) Apply(e *Event) {
	if in.Name != nil {
		e.Name = *in.Name
	}
	if in.Description != nil {
		e.Description = *in.Description
	}
	if in.When != nil {
		e.When = *in.When
	}
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	// Query returns the base query over events, aliased "e", with no ordering.
	Query() Query[*Event]
	GetByID(ctx context.Context, id int64) (*Event, error)
	Create(ctx context.Context, event *Event) error
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id int64) error
}

// EventService defines event listing and organizer operations.
type EventService interface {
	ListEvents(ctx context.Context, filter EventsFilter) (*Page[*Event], error)
	ListOrganizedBy(ctx context.Context, organizerID int64, page int) (*Page[*Event], error)
	ListAttendedBy(ctx context.Context, userID int64, page int) (*Page[*Event], error)
	GetEvent(ctx context.Context, id int64) (*Event, error)
	CreateEvent(ctx context.Context, input CreateEventInput, organizerID int64) (*Event, error)
	UpdateEvent(ctx context.Context, id int64, input UpdateEventInput, userID int64) (*Event, error)
	DeleteEvent(ctx context.Context, id int64, userID int64) error
}
