package entity

import (
	"time"

	"github.com/google/uuid"
)

// Note is a single text note belonging to exactly one user. The owner
// reference is set at creation and never changes afterwards.
type Note struct {
	ID        uuid.UUID // The unique identifier for the note, generated by the store.
	UserID    uuid.UUID // The owning user. Immutable after creation.
	Title     string    // Short note title. Non-empty.
	Content   string    // Note body. Non-empty.
	Category  string    // Free-text label (e.g. "Personal", "Work"). Non-empty, not an enum.
	CreatedAt time.Time
	UpdatedAt time.Time
}
