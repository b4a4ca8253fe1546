package domain

import (
	"context"
	"time"
)

// Event represents a bulletin-board event. Description holds an opaque
// serialized rich-text payload; Labels is treated as an unordered set in
// queries even though it is stored as an ordered array.
// swagger:model Event
type Event struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	Labels      []string  `json:"labels"`
	CreatorID   int64     `json:"creator_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CanMutate reports whether the given user may edit or delete the event.
// Only the creator may mutate.
func (e *Event) CanMutate(userID int64) bool {
	return e.CreatorID == userID
}

// SortOrder is the sort direction for event listings.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// EventFilter narrows and orders an event listing. Label matches by set
// membership over Event.Labels. Day restricts to a single calendar day,
// inclusive of its entire last second (events at exactly the next midnight
// fall outside). Order sorts by date; ties keep insertion order (id).
type EventFilter struct {
	Label string
	Day   *time.Time
	Order SortOrder
}

// EventUpdate carries the mutable event fields for an edit.
// Nil Description/Labels leave the stored values untouched.
type EventUpdate struct {
	Title       string
	Description *string
	Date        time.Time
	Location    string
	Labels      []string
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id int64) (*Event, error)
	List(ctx context.Context, filter EventFilter) ([]*Event, error)
	ListByCreatorID(ctx context.Context, creatorID int64) ([]*Event, error)
	Update(ctx context.Context, id int64, upd EventUpdate) (*Event, error)
	// Delete removes the event and all its memberships in one transaction
	// and returns the deleted event.
	Delete(ctx context.Context, id int64) (*Event, error)
}

// EventService defines the business logic around events.
type EventService interface {
	CreateEvent(ctx context.Context, creatorID int64, title, description string, date time.Time, location string, labels []string) (*Event, error)
	GetEventByID(ctx context.Context, id int64) (*Event, error)
	ListEvents(ctx context.Context, filter EventFilter) ([]*Event, error)
	UpdateEvent(ctx context.Context, eventID, userID int64, upd EventUpdate) (*Event, error)
	DeleteEvent(ctx context.Context, eventID, userID int64) (*Event, error)
}
