package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventrsvp/internal/domain"
)

type attendeeService struct {
	eventRepo      domain.EventRepository
	attendeeRepo   domain.AttendeeRepository
	contextTimeout time.Duration
}

// NewAttendeeService creates an AttendeeService with the given repositories.
func NewAttendeeService(
	eventRepo domain.EventRepository,
	attendeeRepo domain.AttendeeRepository,
	timeout time.Duration,
) domain.AttendeeService {
	return &attendeeService{
		eventRepo:      eventRepo,
		attendeeRepo:   attendeeRepo,
		contextTimeout: timeout,
	}
}

func (s *attendeeService) ListByEvent(ctx context.Context, eventID int64) ([]*domain.Attendee, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.ensureEvent(ctx, eventID); err != nil {
		return nil, err
	}
	attendees, err := s.attendeeRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	if attendees == nil {
		attendees = []*domain.Attendee{}
	}
	return attendees, nil
}

func (s *attendeeService) GetForUser(ctx context.Context, eventID, userID int64) (*domain.Attendee, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	attendee, err := s.attendeeRepo.GetByEventAndUser(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get attendee: %w", err)
	}
	return attendee, nil
}

// CreateOrUpdate records the user's answer for the event. Repeating the call
// with the same arguments leaves a single row holding the latest answer.
func (s *attendeeService) CreateOrUpdate(ctx context.Context, answer domain.AttendeeAnswer, eventID, userID int64) (*domain.Attendee, error) {
	if !answer.Valid() {
		return nil, fmt.Errorf("%w: answer must be one of accepted, maybe, rejected", domain.ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.ensureEvent(ctx, eventID); err != nil {
		return nil, err
	}

	attendee, err := s.attendeeRepo.GetByEventAndUser(ctx, eventID, userID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		attendee = domain.NewAttendee(eventID, userID, answer)
	case err != nil:
		return nil, fmt.Errorf("get attendee: %w", err)
	default:
		attendee.EventID = eventID
		attendee.UserID = userID
		attendee.Answer = answer
	}

	if err := s.attendeeRepo.Save(ctx, attendee); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("save attendee: %w", err)
	}
	return attendee, nil
}

func (s *attendeeService) ensureEvent(ctx context.Context, eventID int64) error {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	return nil
}
