package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eventrsvp/internal/delivery/http/helpers"
	"eventrsvp/internal/delivery/http/middleware"
	"eventrsvp/internal/domain"

	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

var caller = domain.Identity{ID: 7, Username: "ada"}

// serve routes req through a ServeMux so path values are populated.
func serve(t *testing.T, pattern string, handler http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc(pattern, handler)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func newRequest(method, target, body string, authed bool) *http.Request {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if authed {
		req = req.WithContext(middleware.SetIdentity(req.Context(), caller))
	}
	return req
}

// decodeEnvelope decodes the response envelope, unmarshalling data into dest when given.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, dest any) *helpers.APIError {
	t.Helper()
	var raw struct {
		Data  json.RawMessage   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&raw))
	if dest != nil {
		require.NoError(t, json.Unmarshal(raw.Data, dest))
	}
	return raw.Error
}

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	page  *domain.Page[*domain.Event]
	event *domain.Event
	err   error

	lastFilter      domain.EventsFilter
	lastPage        int
	lastUserID      int64
	lastID          int64
	lastCreate      domain.CreateEventInput
	lastUpdate      domain.UpdateEventInput
	lastOrganizerID int64
}

func (f *fakeEventService) ListEvents(_ context.Context, filter domain.EventsFilter) (*domain.Page[*domain.Event], error) {
	f.lastFilter = filter
	return f.page, f.err
}

func (f *fakeEventService) ListOrganizedBy(_ context.Context, organizerID int64, page int) (*domain.Page[*domain.Event], error) {
	f.lastOrganizerID, f.lastPage = organizerID, page
	return f.page, f.err
}

func (f *fakeEventService) ListAttendedBy(_ context.Context, userID int64, page int) (*domain.Page[*domain.Event], error) {
	f.lastUserID, f.lastPage = userID, page
	return f.page, f.err
}

func (f *fakeEventService) GetEvent(_ context.Context, id int64) (*domain.Event, error) {
	f.lastID = id
	return f.event, f.err
}

func (f *fakeEventService) CreateEvent(_ context.Context, input domain.CreateEventInput, organizerID int64) (*domain.Event, error) {
	f.lastCreate, f.lastUserID = input, organizerID
	if f.err != nil {
		return nil, f.err
	}
	e := domain.NewEvent(input.Name, input.Description, input.When, organizerID)
	e.ID = 1
	return e, nil
}

func (f *fakeEventService) UpdateEvent(_ context.Context, id int64, input domain.UpdateEventInput, userID int64) (*domain.Event, error) {
	f.lastID, f.lastUpdate, f.lastUserID = id, input, userID
	return f.event, f.err
}

func (f *fakeEventService) DeleteEvent(_ context.Context, id int64, userID int64) error {
	f.lastID, f.lastUserID = id, userID
	return f.err
}

// fakeAttendeeService implements domain.AttendeeService for handler tests.
type fakeAttendeeService struct {
	attendees []*domain.Attendee
	err       error

	lastEventID int64
	lastUserID  int64
	lastAnswer  domain.AttendeeAnswer
}

func (f *fakeAttendeeService) ListByEvent(_ context.Context, eventID int64) ([]*domain.Attendee, error) {
	f.lastEventID = eventID
	return f.attendees, f.err
}

func (f *fakeAttendeeService) GetForUser(_ context.Context, eventID, userID int64) (*domain.Attendee, error) {
	f.lastEventID, f.lastUserID = eventID, userID
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Attendee{ID: 3, EventID: eventID, UserID: userID, Answer: domain.AnswerMaybe}, nil
}

func (f *fakeAttendeeService) CreateOrUpdate(_ context.Context, answer domain.AttendeeAnswer, eventID, userID int64) (*domain.Attendee, error) {
	f.lastAnswer, f.lastEventID, f.lastUserID = answer, eventID, userID
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Attendee{ID: 3, EventID: eventID, UserID: userID, Answer: answer}, nil
}

// fakeAuthService implements domain.AuthService for handler tests.
type fakeAuthService struct {
	user *domain.User
	err  error

	lastSignUp   domain.SignUpInput
	lastUsername string
	lastPassword string
	lastUserID   int64
}

func (f *fakeAuthService) SignUp(_ context.Context, input domain.SignUpInput) (*domain.User, string, error) {
	f.lastSignUp = input
	if f.err != nil {
		return nil, "", f.err
	}
	return f.user, "signed-token", nil
}

func (f *fakeAuthService) Login(_ context.Context, username, password string) (*domain.User, string, error) {
	f.lastUsername, f.lastPassword = username, password
	if f.err != nil {
		return nil, "", f.err
	}
	return f.user, "signed-token", nil
}

func (f *fakeAuthService) Profile(_ context.Context, userID int64) (*domain.User, error) {
	f.lastUserID = userID
	return f.user, f.err
}
