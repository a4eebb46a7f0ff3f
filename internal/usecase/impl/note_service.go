package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "notevault/internal/delivery/context"
	"notevault/internal/domain/entity"
	domainerrors "notevault/internal/domain/errors"
	"notevault/internal/domain/repository"
	"notevault/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// noteService implements the NoteUsecase interface.
type noteService struct {
	txManager repository.TransactionManager
	noteRepo  repository.NoteRepository
	logger    *slog.Logger
}

// NoteServiceParams holds dependencies for noteService, injected by Fx.
type NoteServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	NoteRepo  repository.NoteRepository
	Logger    *slog.Logger
}

// NewNoteService is the constructor for noteService.
func NewNoteService(params NoteServiceParams) usecase.NoteUsecase {
	return &noteService{
		txManager: params.TxManager,
		noteRepo:  params.NoteRepo,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *noteService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List returns the caller's notes, optionally filtered by a case-insensitive
// substring search over title, content and category.
func (srv *noteService) List(ctx context.Context, userID uuid.UUID, search string) ([]*entity.Note, error) {
	notes, err := srv.noteRepo.FindByUser(ctx, userID, strings.TrimSpace(search))
	if err != nil {
		srv.log(ctx).Error("Failed to list notes", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list notes")
	}

	return notes, nil
}

// Get returns a single note after checking the caller owns it.
// A missing note and a foreign note are reported as distinct errors.
func (srv *noteService) Get(ctx context.Context, userID, noteID uuid.UUID) (*entity.Note, error) {
	note, err := srv.loadOwnedNote(ctx, srv.noteRepo, userID, noteID)
	if err != nil {
		srv.log(ctx).Warn("Failed to get note", slog.Any("userID", userID), slog.Any("noteID", noteID), slog.Any("error", err))

		return nil, err
	}

	return note, nil
}

// Create validates the input and persists a new note owned by the caller.
func (srv *noteService) Create(ctx context.Context, userID uuid.UUID, input *usecase.CreateNoteInput) (*entity.Note, error) {
	if err := validateNoteInput(input.Title, input.Content, input.Category); err != nil {
		srv.log(ctx).Warn("Note validation failed during create", slog.Any("userID", userID), slog.Any("error", err))

		return nil, err
	}

	note := &entity.Note{
		UserID:   userID,
		Title:    input.Title,
		Content:  input.Content,
		Category: input.Category,
	}

	// Single insert - use direct repository instance
	if err := srv.noteRepo.Create(ctx, note); err != nil {
		srv.log(ctx).Error("Failed to create note", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create note")
	}

	srv.log(ctx).Debug("Note created", slog.Any("userID", userID), slog.Any("noteID", note.ID))

	return note, nil
}

// Update replaces the body of an existing note after checking ownership.
func (srv *noteService) Update(ctx context.Context, userID, noteID uuid.UUID, input *usecase.UpdateNoteInput) (*entity.Note, error) {
	if err := validateNoteInput(input.Title, input.Content, input.Category); err != nil {
		srv.log(ctx).Warn("Note validation failed during update", slog.Any("userID", userID), slog.Any("noteID", noteID), slog.Any("error", err))

		return nil, err
	}

	var updatedNote *entity.Note
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		noteRepo := repoFactory.NoteRepo()

		note, loadErr := srv.loadOwnedNote(ctx, noteRepo, userID, noteID)
		if loadErr != nil {
			return loadErr
		}

		note.Title = input.Title
		note.Content = input.Content
		note.Category = input.Category

		if updateErr := noteRepo.Update(ctx, note); updateErr != nil {
			return errors.Wrap(updateErr, "failed to update note")
		}

		updatedNote = note

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to execute note update transaction", slog.Any("userID", userID), slog.Any("noteID", noteID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Note updated", slog.Any("userID", userID), slog.Any("noteID", noteID))

	return updatedNote, nil
}

// Delete removes an existing note after checking ownership.
func (srv *noteService) Delete(ctx context.Context, userID, noteID uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		noteRepo := repoFactory.NoteRepo()

		if _, loadErr := srv.loadOwnedNote(ctx, noteRepo, userID, noteID); loadErr != nil {
			return loadErr
		}

		if deleteErr := noteRepo.Delete(ctx, noteID); deleteErr != nil {
			return errors.Wrap(deleteErr, "failed to delete note")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to execute note delete transaction", slog.Any("userID", userID), slog.Any("noteID", noteID), slog.Any("error", err))

		return err
	}

	srv.log(ctx).Debug("Note deleted", slog.Any("userID", userID), slog.Any("noteID", noteID))

	return nil
}

// loadOwnedNote fetches a note and verifies the caller owns it.
func (srv *noteService) loadOwnedNote(ctx context.Context, noteRepo repository.NoteRepository, userID, noteID uuid.UUID) (*entity.Note, error) {
	note, err := noteRepo.FindByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNoteNotFound, "note lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find note by id")
	}

	if note.UserID != userID {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "note does not belong to user")
	}

	return note, nil
}

// validateNoteInput rejects notes with blank title, content or category.
func validateNoteInput(title, content, category string) error {
	if strings.TrimSpace(title) == "" {
		return errors.Wrap(domainerrors.ErrValidationFailed, "title is required")
	}
	if strings.TrimSpace(content) == "" {
		return errors.Wrap(domainerrors.ErrValidationFailed, "content is required")
	}
	if strings.TrimSpace(category) == "" {
		return errors.Wrap(domainerrors.ErrValidationFailed, "category is required")
	}

	return nil
}
