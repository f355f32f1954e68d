package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"eventrsvp/internal/domain"
	"eventrsvp/internal/query"
)

type eventService struct {
	eventRepo      domain.EventRepository
	assembler      *query.Assembler
	limits         domain.PageLimits
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewEventService creates an EventService. Listings are assembled over the
// repository's base query and paged with the given limits.
func NewEventService(eventRepo domain.EventRepository, limits domain.PageLimits, logger *slog.Logger, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		assembler:      query.NewAssembler(eventRepo),
		limits:         limits,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *eventService) ListEvents(ctx context.Context, filter domain.EventsFilter) (*domain.Page[*domain.Event], error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	s.logger.DebugContext(ctx, "list events", "when", int(filter.When), "page", filter.Page)
	page, err := query.Paginate(ctx, s.assembler.All(&filter), domain.PaginateOptions{
		Limit:       s.limits.Events,
		CurrentPage: filter.Page,
		CountTotal:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return page, nil
}

func (s *eventService) ListOrganizedBy(ctx context.Context, organizerID int64, page int) (*domain.Page[*domain.Event], error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	s.logger.DebugContext(ctx, "list organized events", "organizer_id", organizerID, "page", page)
	out, err := query.Paginate(ctx, s.assembler.OrganizedBy(organizerID), domain.PaginateOptions{
		Limit:       s.limits.Organizer,
		CurrentPage: page,
		CountTotal:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("list organized events: %w", err)
	}
	return out, nil
}

func (s *eventService) ListAttendedBy(ctx context.Context, userID int64, page int) (*domain.Page[*domain.Event], error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	s.logger.DebugContext(ctx, "list attended events", "user_id", userID, "page", page)
	out, err := query.Paginate(ctx, s.assembler.AttendedBy(userID), domain.PaginateOptions{
		Limit:       s.limits.Attendance,
		CurrentPage: page,
		CountTotal:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("list attended events: %w", err)
	}
	return out, nil
}

func (s *eventService) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.assembler.One(id).Limit(1).Find(ctx)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	if len(events) == 0 {
		return nil, domain.ErrNotFound
	}
	return events[0], nil
}

func (s *eventService) CreateEvent(ctx context.Context, input domain.CreateEventInput, organizerID int64) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	name := strings.TrimSpace(input.Name)
	if name == "" || input.When.IsZero() {
		return nil, fmt.Errorf("%w: name and when are required", domain.ErrInvalidInput)
	}

	event := domain.NewEvent(name, input.Description, input.When, organizerID)
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, id int64, input domain.UpdateEventInput, userID int64) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrInvalidInput)
	}

	event, err := s.ownedEvent(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	input.Apply(event)
	if err := s.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id int64, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.ownedEvent(ctx, id, userID); err != nil {
		return err
	}
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

// ownedEvent loads the event and checks that userID organizes it. Callers
// must not write anything when it returns an error.
func (s *eventService) ownedEvent(ctx context.Context, id, userID int64) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.OrganizerID != userID {
		return nil, domain.ErrForbidden
	}
	return event, nil
}
