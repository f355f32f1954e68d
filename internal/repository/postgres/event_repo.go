package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventrsvp/internal/domain"
	"eventrsvp/internal/metrics"
	"eventrsvp/internal/query"
)

var eventColumns = []string{"e.id", "e.name", "e.description", "e.scheduled_at", "e.organizer_id"}

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Query() domain.Query[*domain.Event] {
	return newSelectQuery[*domain.Event](r.DB, "events", "events e", eventColumns, scanEvent)
}

// scanEvent maps result columns by name so optional projections (attendee
// counts, the joined attendee row) are picked up when present.
func scanEvent(cols []string, rows *sql.Rows) (*domain.Event, error) {
	e := &domain.Event{}
	var attendeeID, attendeeUserID sql.NullInt64
	var attendeeAnswer sql.NullString

	dest := make([]any, len(cols))
	for i, col := range cols {
		switch col {
		case "id":
			dest[i] = &e.ID
		case "name":
			dest[i] = &e.Name
		case "description":
			dest[i] = &e.Description
		case "scheduled_at":
			dest[i] = &e.When
		case "organizer_id":
			dest[i] = &e.OrganizerID
		case query.AliasAttendeeCount:
			e.AttendeeCount = new(int)
			dest[i] = e.AttendeeCount
		case query.AliasAttendeeAccepted:
			e.AttendeeAccepted = new(int)
			dest[i] = e.AttendeeAccepted
		case query.AliasAttendeeMaybe:
			e.AttendeeMaybe = new(int)
			dest[i] = e.AttendeeMaybe
		case query.AliasAttendeeRejected:
			e.AttendeeRejected = new(int)
			dest[i] = e.AttendeeRejected
		case query.AliasAttendeeID:
			dest[i] = &attendeeID
		case query.AliasAttendeeUserID:
			dest[i] = &attendeeUserID
		case query.AliasAttendeeAnswer:
			dest[i] = &attendeeAnswer
		default:
			dest[i] = new(any)
		}
	}
	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}
	if attendeeID.Valid {
		e.Attendees = []*domain.Attendee{{
			ID:      attendeeID.Int64,
			EventID: e.ID,
			UserID:  attendeeUserID.Int64,
			Answer:  domain.AttendeeAnswer(attendeeAnswer.String),
		}}
	}
	return e, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (e *domain.Event, err error) {
	done := metrics.ObserveDB("events_get")
	defer func() { done(err) }()

	q := `
		SELECT id, name, description, scheduled_at, organizer_id
		FROM events
		WHERE id = $1
	`
	e = &domain.Event{}
	err = r.DB.QueryRowContext(ctx, q, id).Scan(&e.ID, &e.Name, &e.Description, &e.When, &e.OrganizerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) (err error) {
	done := metrics.ObserveDB("events_create")
	defer func() { done(err) }()

	q := `
		INSERT INTO events (name, description, scheduled_at, organizer_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, q, e.Name, e.Description, e.When, e.OrganizerID).Scan(&e.ID)
}

// Update saves name, description and time. The organizer column is never written.
func (r *eventRepository) Update(ctx context.Context, e *domain.Event) (err error) {
	done := metrics.ObserveDB("events_update")
	defer func() { done(err) }()

	q := `
		UPDATE events SET name = $1, description = $2, scheduled_at = $3
		WHERE id = $4
	`
	result, err := r.DB.ExecContext(ctx, q, e.Name, e.Description, e.When, e.ID)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the event; its attendees go with it through the foreign key cascade.
func (r *eventRepository) Delete(ctx context.Context, id int64) (err error) {
	done := metrics.ObserveDB("events_delete")
	defer func() { done(err) }()

	result, err := r.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
