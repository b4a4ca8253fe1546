package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/alekpstro/UGEvents/internal/domain"
)

type profileService struct {
	userRepo       domain.UserRepository
	eventRepo      domain.EventRepository
	membershipRepo domain.MembershipRepository
}

// NewProfileService creates a ProfileService with the given repositories.
func NewProfileService(userRepo domain.UserRepository, eventRepo domain.EventRepository, membershipRepo domain.MembershipRepository) domain.ProfileService {
	return &profileService{
		userRepo:       userRepo,
		eventRepo:      eventRepo,
		membershipRepo: membershipRepo,
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID int64) (*domain.Profile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	created, err := s.eventRepo.ListByCreatorID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list created events: %w", err)
	}
	if created == nil {
		created = []*domain.Event{}
	}

	memberships, err := s.membershipRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}

	joined := make([]*domain.MembershipWithEvent, 0, len(memberships))
	for _, m := range memberships {
		event, err := s.eventRepo.GetByID(ctx, m.EventID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// membership cascade and this read raced; skip the row
				continue
			}
			return nil, fmt.Errorf("get event for membership: %w", err)
		}
		joined = append(joined, &domain.MembershipWithEvent{Membership: m, Event: event})
	}

	return &domain.Profile{
		User:          user,
		CreatedEvents: created,
		JoinedEvents:  joined,
	}, nil
}
