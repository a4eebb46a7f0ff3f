package usecase

import (
	"context"

	"notevault/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateNoteInput defines the data required to create a new note.
type CreateNoteInput struct {
	Title    string
	Content  string
	Category string
}

// UpdateNoteInput defines the replacement data for an existing note.
// All three fields are required; updates replace the full note body.
type UpdateNoteInput struct {
	Title    string
	Content  string
	Category string
}

// NoteUsecase defines the interface for note-related business operations.
// Every operation is scoped to the calling user: reads and writes against
// notes owned by someone else fail, they are never silently filtered.
type NoteUsecase interface {
	// List returns the caller's notes, optionally narrowed by a
	// case-insensitive substring search across title, content and category.
	List(ctx context.Context, userID uuid.UUID, search string) ([]*entity.Note, error)
	Get(ctx context.Context, userID, noteID uuid.UUID) (*entity.Note, error)
	Create(ctx context.Context, userID uuid.UUID, input *CreateNoteInput) (*entity.Note, error)
	Update(ctx context.Context, userID, noteID uuid.UUID, input *UpdateNoteInput) (*entity.Note, error)
	Delete(ctx context.Context, userID, noteID uuid.UUID) error
}
