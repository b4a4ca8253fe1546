package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/alekpstro/UGEvents/internal/domain"
)

const eventColumns = "id, title, description, date, location, labels, creator_id, created_at, updated_at"

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

func scanEvent(row interface{ Scan(dest ...any) error }) (*domain.Event, error) {
	e := &domain.Event{}
	var labels pq.StringArray
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.Location, &labels, &e.CreatorID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e.Labels = []string(labels)
	if e.Labels == nil {
		e.Labels = []string{}
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, description, date, location, labels, creator_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		e.Title, e.Description, e.Date, e.Location, pq.Array(e.Labels), e.CreatorID, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	if err != nil {
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == "23503" {
			// creator_id does not reference an existing user
			return domain.ErrUserNotFound
		}
		return err
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events WHERE id = $1`, eventColumns)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// List applies the optional label and calendar-day filters and sorts by date.
// The day filter is inclusive end-of-day: [00:00, 24:00) of the given day.
// Equal dates keep insertion order via the id tiebreak.
func (r *eventRepository) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	whereClauses := []string{}
	args := []any{}
	n := 1
	if filter.Label != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("$%d = ANY(labels)", n))
		args = append(args, filter.Label)
		n++
	}
	if filter.Day != nil {
		y, m, d := filter.Day.Date()
		dayStart := time.Date(y, m, d, 0, 0, 0, 0, filter.Day.Location())
		dayEnd := dayStart.Add(24*time.Hour - time.Nanosecond)
		whereClauses = append(whereClauses, fmt.Sprintf("date >= $%d AND date <= $%d", n, n+1))
		args = append(args, dayStart, dayEnd)
		n += 2
	}
	direction := "ASC"
	if filter.Order == domain.SortDesc {
		direction = "DESC"
	}
	query := fmt.Sprintf(`SELECT %s FROM events`, eventColumns)
	if len(whereClauses) > 0 {
		query += " WHERE " + strings.Join(whereClauses, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY date %s, id ASC", direction)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) ListByCreatorID(ctx context.Context, creatorID int64) ([]*domain.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events WHERE creator_id = $1 ORDER BY id ASC`, eventColumns)
	rows, err := r.DB.QueryContext(ctx, query, creatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, id int64, upd domain.EventUpdate) (*domain.Event, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []any{}
	n := 1
	setClauses = append(setClauses, fmt.Sprintf("title = $%d", n))
	args = append(args, upd.Title)
	n++
	setClauses = append(setClauses, fmt.Sprintf("date = $%d", n))
	args = append(args, upd.Date)
	n++
	setClauses = append(setClauses, fmt.Sprintf("location = $%d", n))
	args = append(args, upd.Location)
	n++
	if upd.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", n))
		args = append(args, *upd.Description)
		n++
	}
	if upd.Labels != nil {
		setClauses = append(setClauses, fmt.Sprintf("labels = $%d", n))
		args = append(args, pq.Array(upd.Labels))
		n++
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), n, eventColumns)

	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// Delete removes the event's memberships and the event row in one
// transaction so no membership can outlive its event.
func (r *eventRepository) Delete(ctx context.Context, id int64) (*domain.Event, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM memberships WHERE event_id = $1`, id); err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`DELETE FROM events WHERE id = $1 RETURNING %s`, eventColumns)
	e, err := scanEvent(tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return e, nil
}
