package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventrsvp/internal/domain"
	"eventrsvp/internal/metrics"
)

type attendeeRepository struct {
	DB *sql.DB
}

func NewAttendeeRepository(db *sql.DB) domain.AttendeeRepository {
	return &attendeeRepository{
		DB: db,
	}
}

func (r *attendeeRepository) GetByEventAndUser(ctx context.Context, eventID, userID int64) (a *domain.Attendee, err error) {
	done := metrics.ObserveDB("attendees_get")
	defer func() { done(err) }()

	q := `
		SELECT id, event_id, user_id, answer
		FROM attendees
		WHERE event_id = $1 AND user_id = $2
	`
	a = &domain.Attendee{}
	err = r.DB.QueryRowContext(ctx, q, eventID, userID).Scan(&a.ID, &a.EventID, &a.UserID, &a.Answer)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *attendeeRepository) ListByEventID(ctx context.Context, eventID int64) (out []*domain.Attendee, err error) {
	done := metrics.ObserveDB("attendees_list")
	defer func() { done(err) }()

	q := `
		SELECT id, event_id, user_id, answer
		FROM attendees
		WHERE event_id = $1
		ORDER BY id
	`
	rows, err := r.DB.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out = make([]*domain.Attendee, 0)
	for rows.Next() {
		a := &domain.Attendee{}
		if err := rows.Scan(&a.ID, &a.EventID, &a.UserID, &a.Answer); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Save inserts a new attendee or updates an existing one by id. Inserts
// resolve a concurrent insert for the same (event, user) pair against the
// unique index instead of creating a second row.
func (r *attendeeRepository) Save(ctx context.Context, a *domain.Attendee) (err error) {
	done := metrics.ObserveDB("attendees_save")
	defer func() { done(err) }()

	if a.ID == 0 {
		q := `
			INSERT INTO attendees (event_id, user_id, answer)
			VALUES ($1, $2, $3)
			ON CONFLICT (event_id, user_id) DO UPDATE SET answer = EXCLUDED.answer
			RETURNING id
		`
		err = r.DB.QueryRowContext(ctx, q, a.EventID, a.UserID, a.Answer).Scan(&a.ID)
		if isPQCode(err, pqForeignKeyViolation) {
			return domain.ErrNotFound
		}
		return err
	}

	q := `
		UPDATE attendees SET event_id = $1, user_id = $2, answer = $3
		WHERE id = $4
	`
	result, err := r.DB.ExecContext(ctx, q, a.EventID, a.UserID, a.Answer, a.ID)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
