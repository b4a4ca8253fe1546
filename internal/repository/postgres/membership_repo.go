package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/alekpstro/UGEvents/internal/domain"
)

type membershipRepository struct {
	DB *sql.DB
}

func NewMembershipRepository(db *sql.DB) domain.MembershipRepository {
	return &membershipRepository{DB: db}
}

// Create inserts the membership. The unique index on (user_id, event_id) is
// the source of truth for the one-membership-per-pair invariant, so two
// concurrent joins for the same pair cannot both succeed.
func (r *membershipRepository) Create(ctx context.Context, m *domain.Membership) error {
	query := `
		INSERT INTO memberships (user_id, event_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, m.UserID, m.EventID, m.CreatedAt).Scan(&m.ID)
	if err != nil {
		var perr *pq.Error
		if errors.As(err, &perr) {
			switch perr.Code {
			case "23505":
				return domain.ErrAlreadyJoined
			case "23503":
				// user or event vanished between check and insert
				return domain.ErrNotFound
			}
		}
		return err
	}
	return nil
}

func (r *membershipRepository) ListByUserID(ctx context.Context, userID int64) ([]*domain.Membership, error) {
	query := `
		SELECT id, user_id, event_id, created_at
		FROM memberships
		WHERE user_id = $1
		ORDER BY id ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	memberships := make([]*domain.Membership, 0)
	for rows.Next() {
		m := &domain.Membership{}
		if err := rows.Scan(&m.ID, &m.UserID, &m.EventID, &m.CreatedAt); err != nil {
			return nil, err
		}
		memberships = append(memberships, m)
	}
	return memberships, rows.Err()
}

// ListParticipantsByEventID returns user identity rows for the event's
// memberships in join insertion order. A missing event yields an empty list.
func (r *membershipRepository) ListParticipantsByEventID(ctx context.Context, eventID int64) ([]*domain.Participant, error) {
	query := `
		SELECT u.id, u.name, u.email
		FROM memberships m
		JOIN users u ON u.id = m.user_id
		WHERE m.event_id = $1
		ORDER BY m.id ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participants := make([]*domain.Participant, 0)
	for rows.Next() {
		p := &domain.Participant{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Email); err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}
