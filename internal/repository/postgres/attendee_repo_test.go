package postgres

import (
	"context"
	"database/sql"
	"testing"

	"eventrsvp/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendeeRepository_GetByEventAndUser(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, event_id, user_id, answer\s+FROM attendees\s+WHERE event_id = \$1 AND user_id = \$2`).
			WithArgs(int64(1), int64(2)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "user_id", "answer"}).
				AddRow(int64(10), int64(1), int64(2), "maybe"))

		got, err := NewAttendeeRepository(db).GetByEventAndUser(ctx, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, &domain.Attendee{ID: 10, EventID: 1, UserID: 2, Answer: domain.AnswerMaybe}, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM attendees`).WithArgs(int64(1), int64(2)).WillReturnError(sql.ErrNoRows)

		got, err := NewAttendeeRepository(db).GetByEventAndUser(ctx, 1, 2)
		require.ErrorIs(t, err, domain.ErrNotFound)
		assert.Nil(t, got)
	})
}

func TestAttendeeRepository_ListByEventID(t *testing.T) {
	ctx := context.Background()

	t.Run("rows", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`WHERE event_id = \$1\s+ORDER BY id`).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "user_id", "answer"}).
				AddRow(int64(1), int64(1), int64(5), "accepted").
				AddRow(int64(2), int64(1), int64(6), "rejected"))

		got, err := NewAttendeeRepository(db).ListByEventID(ctx, 1)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, domain.AnswerRejected, got[1].Answer)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty is not nil", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM attendees`).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "user_id", "answer"}))

		got, err := NewAttendeeRepository(db).ListByEventID(ctx, 1)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestAttendeeRepository_Save(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		attendee *domain.Attendee
		mock     func(mock sqlmock.Sqlmock)
		wantID   int64
		wantErr  error
	}{
		{
			name:     "insert upserts on the event and user pair",
			attendee: domain.NewAttendee(1, 2, domain.AnswerAccepted),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO attendees \(event_id, user_id, answer\)\s+VALUES \(\$1, \$2, \$3\)\s+ON CONFLICT \(event_id, user_id\) DO UPDATE SET answer = EXCLUDED\.answer\s+RETURNING id`).
					WithArgs(int64(1), int64(2), "accepted").
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(33)))
			},
			wantID: 33,
		},
		{
			name:     "insert for a missing event",
			attendee: domain.NewAttendee(404, 2, domain.AnswerMaybe),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO attendees`).
					WillReturnError(&pq.Error{Code: "23503"})
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name:     "update by id",
			attendee: &domain.Attendee{ID: 8, EventID: 1, UserID: 2, Answer: domain.AnswerRejected},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE attendees SET event_id = \$1, user_id = \$2, answer = \$3\s+WHERE id = \$4`).
					WithArgs(int64(1), int64(2), "rejected", int64(8)).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantID: 8,
		},
		{
			name:     "update of a vanished row",
			attendee: &domain.Attendee{ID: 8, EventID: 1, UserID: 2, Answer: domain.AnswerRejected},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE attendees`).WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			err = NewAttendeeRepository(db).Save(ctx, tt.attendee)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, tt.attendee.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
