package repository

import (
	"context"
	"errors"

	"notevault/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrNoteNotFound is a domain-specific error returned when a note is not found.
var ErrNoteNotFound = errors.New("note not found")

// NoteRepository defines the standard operations for note persistence.
// Ownership checks live in the usecase layer; FindByUser/Search are the
// only queries that scope by owner at the store.
type NoteRepository interface {
	// FindByID retrieves a single note by its unique ID, regardless of owner.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Note, error)

	// FindByUser retrieves the notes owned by userID. When search is
	// non-empty, only notes whose title, content or category contain it
	// as a case-insensitive substring are returned.
	FindByUser(ctx context.Context, userID uuid.UUID, search string) ([]*entity.Note, error)

	// Create persists a new note entity to the storage.
	Create(ctx context.Context, note *entity.Note) error

	// Update modifies an existing note entity in the storage.
	Update(ctx context.Context, note *entity.Note) error

	// Delete permanently removes a note by its ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
