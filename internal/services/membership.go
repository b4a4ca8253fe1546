package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alekpstro/UGEvents/internal/domain"
)

type membershipService struct {
	eventRepo      domain.EventRepository
	membershipRepo domain.MembershipRepository
	userRepo       domain.UserRepository
	emailService   domain.EmailService
	logger         *slog.Logger
}

// NewMembershipService creates a MembershipService with the given
// repositories. emailService may be nil; join confirmations are then skipped.
func NewMembershipService(
	eventRepo domain.EventRepository,
	membershipRepo domain.MembershipRepository,
	userRepo domain.UserRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
) domain.MembershipService {
	return &membershipService{
		eventRepo:      eventRepo,
		membershipRepo: membershipRepo,
		userRepo:       userRepo,
		emailService:   emailService,
		logger:         logger,
	}
}

// JoinEvent adds the user as a participant. The duplicate check is delegated
// to the storage unique index, so concurrent joins for the same pair cannot
// produce two memberships; the loser gets ErrAlreadyJoined.
func (s *membershipService) JoinEvent(ctx context.Context, eventID, userID int64) (*domain.Membership, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	m := domain.NewMembership(userID, eventID, time.Now())
	if err := s.membershipRepo.Create(ctx, m); err != nil {
		if errors.Is(err, domain.ErrAlreadyJoined) || errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("create membership: %w", err)
	}

	if s.emailService != nil {
		if user, err := s.userRepo.GetByID(ctx, userID); err == nil {
			data := &domain.EventJoinedEmailData{
				Email:      user.Email,
				Name:       user.Name,
				EventTitle: event.Title,
				EventDate:  event.Date.Format("2006-01-02 15:04"),
				Location:   event.Location,
			}
			if err := s.emailService.SendEventJoined(ctx, data); err != nil {
				s.logger.WarnContext(ctx, "join confirmation email failed", "event_id", eventID, "user_id", userID, "err", err)
			}
		}
	}

	return m, nil
}

// ListParticipants returns the event's participants in join order. An event
// with no participants (or no longer existing) yields an empty list.
func (s *membershipService) ListParticipants(ctx context.Context, eventID int64) ([]*domain.Participant, error) {
	participants, err := s.membershipRepo.ListParticipantsByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	if participants == nil {
		participants = []*domain.Participant{}
	}
	return participants, nil
}
