package domain

import (
	"context"
	"time"
)

// Membership records a user's participation in an event. At most one
// membership exists per (user, event) pair, enforced by a unique index in
// the store. There is no leave operation; memberships are removed only when
// their event is deleted.
// swagger:model Membership
type Membership struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	EventID   int64     `json:"event_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewMembership returns a new Membership. ID is set by the repository on create.
func NewMembership(userID, eventID int64, createdAt time.Time) *Membership {
	return &Membership{
		UserID:    userID,
		EventID:   eventID,
		CreatedAt: createdAt,
	}
}

// MembershipWithEvent bundles a membership with its event.
type MembershipWithEvent struct {
	Membership *Membership `json:"membership"`
	Event      *Event      `json:"event"`
}

// Participant is a user identity row in an event's participant listing.
type Participant struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// MembershipRepository defines storage for memberships. Create returns
// ErrAlreadyJoined when a membership for the pair already exists and
// ErrNotFound when the event does not exist; the unique index is the source
// of truth, so concurrent duplicate joins cannot both succeed.
type MembershipRepository interface {
	Create(ctx context.Context, m *Membership) error
	ListByUserID(ctx context.Context, userID int64) ([]*Membership, error)
	ListParticipantsByEventID(ctx context.Context, eventID int64) ([]*Participant, error)
}

// MembershipService defines joining events and listing participants.
type MembershipService interface {
	JoinEvent(ctx context.Context, eventID, userID int64) (*Membership, error)
	ListParticipants(ctx context.Context, eventID int64) ([]*Participant, error)
}
