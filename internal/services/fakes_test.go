package services

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sort"
	"time"

	"eventrsvp/internal/domain"
	"eventrsvp/internal/query"
)

const testTimeout = 5 * time.Second

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeEventRepo is an in-memory EventRepository for tests. Its Query understands
// the predicates the assembler emits; time-window predicates are recorded only.
type fakeEventRepo struct {
	byID      map[int64]*domain.Event
	attendees *fakeAttendeeRepo
	nextID    int64
	err       error // if set, every call returns this error

	updates int
	deletes int
	wheres  []string
}

func newFakeEventRepo(attendees *fakeAttendeeRepo) *fakeEventRepo {
	return &fakeEventRepo{
		byID:      make(map[int64]*domain.Event),
		attendees: attendees,
		nextID:    1,
	}
}

func (f *fakeEventRepo) seed(organizerID int64, n int) {
	for i := 0; i < n; i++ {
		_ = f.Create(context.Background(), domain.NewEvent("event", "", time.Now(), organizerID))
	}
}

func (f *fakeEventRepo) Query() domain.Query[*domain.Event] {
	return &memQuery{repo: f, limit: -1}
}

func (f *fakeEventRepo) GetByID(_ context.Context, id int64) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	if e, ok := f.byID[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) Create(_ context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	e.ID = f.nextID
	f.nextID++
	cp := *e
	f.byID[e.ID] = &cp
	return nil
}

func (f *fakeEventRepo) Update(_ context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	f.updates++
	if _, ok := f.byID[e.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *e
	f.byID[e.ID] = &cp
	return nil
}

func (f *fakeEventRepo) Delete(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	f.deletes++
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	if f.attendees != nil {
		for key, a := range f.attendees.byKey {
			if a.EventID == id {
				delete(f.attendees.byKey, key)
			}
		}
	}
	return nil
}

type memWhere struct {
	sql  string
	args []any
}

type memQuery struct {
	repo    *fakeEventRepo
	wheres  []memWhere
	aliases []string
	desc    bool
	limit   int
	offset  int
}

func (q *memQuery) clone() *memQuery {
	cp := *q
	cp.wheres = slices.Clone(q.wheres)
	cp.aliases = slices.Clone(q.aliases)
	return &cp
}

func (q *memQuery) Where(pred string, args ...any) domain.Query[*domain.Event] {
	cp := q.clone()
	cp.wheres = append(cp.wheres, memWhere{sql: pred, args: args})
	return cp
}

func (q *memQuery) Join(string, ...any) domain.Query[*domain.Event] {
	return q.clone()
}

func (q *memQuery) Select(_ string, alias string, _ ...any) domain.Query[*domain.Event] {
	cp := q.clone()
	cp.aliases = append(cp.aliases, alias)
	return cp
}

func (q *memQuery) OrderBy(expr string) domain.Query[*domain.Event] {
	cp := q.clone()
	cp.desc = expr == "e.id DESC"
	return cp
}

func (q *memQuery) Limit(n int) domain.Query[*domain.Event] {
	cp := q.clone()
	cp.limit = n
	return cp
}

func (q *memQuery) Offset(n int) domain.Query[*domain.Event] {
	cp := q.clone()
	cp.offset = n
	return cp
}

func (q *memQuery) match() ([]*domain.Event, error) {
	if q.repo.err != nil {
		return nil, q.repo.err
	}
	var out []*domain.Event
	for _, stored := range q.repo.byID {
		e := *stored
		ok := true
		for _, w := range q.wheres {
			q.repo.wheres = append(q.repo.wheres, w.sql)
			switch w.sql {
			case "e.id = ?":
				ok = ok && e.ID == w.args[0].(int64)
			case "e.organizer_id = ?":
				ok = ok && e.OrganizerID == w.args[0].(int64)
			case "a.user_id = ?":
				a, err := q.repo.attendees.GetByEventAndUser(context.Background(), e.ID, w.args[0].(int64))
				if err != nil {
					ok = false
					break
				}
				e.Attendees = []*domain.Attendee{a}
			}
		}
		if !ok {
			continue
		}
		if slices.Contains(q.aliases, query.AliasAttendeeCount) {
			q.attachCounts(&e)
		}
		out = append(out, &e)
	}
	sort.Slice(out, func(i, j int) bool {
		if q.desc {
			return out[i].ID > out[j].ID
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (q *memQuery) attachCounts(e *domain.Event) {
	counts := map[domain.AttendeeAnswer]int{}
	total := 0
	for _, a := range q.repo.attendees.byKey {
		if a.EventID == e.ID {
			counts[a.Answer]++
			total++
		}
	}
	accepted, maybe, rejected := counts[domain.AnswerAccepted], counts[domain.AnswerMaybe], counts[domain.AnswerRejected]
	e.AttendeeCount, e.AttendeeAccepted, e.AttendeeMaybe, e.AttendeeRejected = &total, &accepted, &maybe, &rejected
}

func (q *memQuery) Find(_ context.Context) ([]*domain.Event, error) {
	rows, err := q.match()
	if err != nil {
		return nil, err
	}
	if q.offset >= len(rows) {
		return []*domain.Event{}, nil
	}
	rows = rows[q.offset:]
	if q.limit >= 0 && q.limit < len(rows) {
		rows = rows[:q.limit]
	}
	return rows, nil
}

func (q *memQuery) Count(_ context.Context) (int, error) {
	rows, err := q.match()
	return len(rows), err
}

type attendeeKey struct{ eventID, userID int64 }

// fakeAttendeeRepo is an in-memory AttendeeRepository keyed like the unique index.
type fakeAttendeeRepo struct {
	byKey  map[attendeeKey]*domain.Attendee
	nextID int64
	saves  int
	err    error
}

func newFakeAttendeeRepo() *fakeAttendeeRepo {
	return &fakeAttendeeRepo{byKey: make(map[attendeeKey]*domain.Attendee), nextID: 1}
}

func (f *fakeAttendeeRepo) GetByEventAndUser(_ context.Context, eventID, userID int64) (*domain.Attendee, error) {
	if f.err != nil {
		return nil, f.err
	}
	a, ok := f.byKey[attendeeKey{eventID, userID}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAttendeeRepo) ListByEventID(_ context.Context, eventID int64) ([]*domain.Attendee, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Attendee
	for _, a := range f.byKey {
		if a.EventID == eventID {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeAttendeeRepo) Save(_ context.Context, a *domain.Attendee) error {
	if f.err != nil {
		return f.err
	}
	f.saves++
	key := attendeeKey{a.EventID, a.UserID}
	if a.ID == 0 {
		if existing, ok := f.byKey[key]; ok {
			a.ID = existing.ID
		} else {
			a.ID = f.nextID
			f.nextID++
		}
	}
	cp := *a
	f.byKey[key] = &cp
	return nil
}

// fakeUserRepo is an in-memory UserRepository for tests.
type fakeUserRepo struct {
	byID   map[int64]*domain.User
	nextID int64
	err    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[int64]*domain.User), nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	if f.err != nil {
		return f.err
	}
	u.ID = f.nextID
	f.nextID++
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range f.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, u := range f.byID {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// fakeHasher prefixes instead of hashing.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return domain.ErrInvalidCredentials
	}
	return nil
}

type fakeIssuer struct {
	issued []domain.Identity
}

func (f *fakeIssuer) Issue(id domain.Identity, _ time.Duration) (string, error) {
	f.issued = append(f.issued, id)
	return "token-" + id.Username, nil
}
