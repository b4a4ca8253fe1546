package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alekpstro/UGEvents/internal/domain"
)

type eventService struct {
	eventRepo domain.EventRepository
}

// NewEventService creates an EventService with the given repository.
func NewEventService(eventRepo domain.EventRepository) domain.EventService {
	return &eventService{eventRepo: eventRepo}
}

func validateEventFields(title string, date time.Time, location string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(location) == "" {
		return fmt.Errorf("%w: location is required", domain.ErrInvalidInput)
	}
	return nil
}

func (s *eventService) CreateEvent(ctx context.Context, creatorID int64, title, description string, date time.Time, location string, labels []string) (*domain.Event, error) {
	if err := validateEventFields(title, date, location); err != nil {
		return nil, err
	}
	if labels == nil {
		labels = []string{}
	}

	now := time.Now()
	event := &domain.Event{
		Title:       strings.TrimSpace(title),
		Description: description,
		Date:        date,
		Location:    strings.TrimSpace(location),
		Labels:      labels,
		CreatorID:   creatorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: creator does not exist", domain.ErrInvalidInput)
		}
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetEventByID(ctx context.Context, id int64) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	if filter.Order == "" {
		filter.Order = domain.SortAsc
	}
	events, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

// UpdateEvent edits the event's mutable fields. Only the creator may edit;
// anyone else gets ErrForbidden regardless of what the client UI shows.
func (s *eventService) UpdateEvent(ctx context.Context, eventID, userID int64, upd domain.EventUpdate) (*domain.Event, error) {
	if err := validateEventFields(upd.Title, upd.Date, upd.Location); err != nil {
		return nil, err
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !event.CanMutate(userID) {
		return nil, domain.ErrForbidden
	}

	upd.Title = strings.TrimSpace(upd.Title)
	upd.Location = strings.TrimSpace(upd.Location)
	updated, err := s.eventRepo.Update(ctx, eventID, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

// DeleteEvent removes the event and, through the repository transaction, all
// of its memberships. Only the creator may delete.
func (s *eventService) DeleteEvent(ctx context.Context, eventID, userID int64) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !event.CanMutate(userID) {
		return nil, domain.ErrForbidden
	}

	deleted, err := s.eventRepo.Delete(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("delete event: %w", err)
	}
	return deleted, nil
}
