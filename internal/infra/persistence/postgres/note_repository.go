package postgres

import (
	"context"
	"strings"

	"notevault/internal/domain/entity"
	domainerrors "notevault/internal/domain/errors"
	"notevault/internal/domain/repository"
	"notevault/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// noteRepository implements the domain.NoteRepository interface using GORM.
type noteRepository struct {
	db *gorm.DB
}

// NewNoteRepository is the constructor for noteRepository.
func NewNoteRepository(db *gorm.DB) repository.NoteRepository {
	return &noteRepository{db: db}
}

// FindByID retrieves a single note by its unique ID.
func (repo *noteRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Note, error) {
	var noteM model.NoteModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&noteM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNoteNotFound
		}

		return nil, errors.Wrap(err, "failed to find note by id")
	}

	return toNoteDomain(&noteM), nil
}

// FindByUser retrieves all notes owned by userID, newest first. A non-empty
// search term narrows the result to notes whose title, content or category
// contain it as a case-insensitive substring.
func (repo *noteRepository) FindByUser(ctx context.Context, userID uuid.UUID, search string) ([]*entity.Note, error) {
	query := repo.db.WithContext(ctx).
		Where("user_id = ?", userID)

	if search != "" {
		pattern := "%" + escapeLikePattern(search) + "%"
		query = query.Where(
			"title ILIKE ? OR content ILIKE ? OR category ILIKE ?",
			pattern, pattern, pattern,
		)
	}

	var noteMs []model.NoteModel
	if err := query.Order("created_at DESC").Find(&noteMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list notes")
	}

	notes := make([]*entity.Note, 0, len(noteMs))
	for i := range noteMs {
		notes = append(notes, toNoteDomain(&noteMs[i]))
	}

	return notes, nil
}

// Create persists a new note entity to the database.
func (repo *noteRepository) Create(ctx context.Context, note *entity.Note) error {
	noteM := fromNoteDomain(note)

	if err := repo.db.WithContext(ctx).Create(noteM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("note owner does not exist")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required note information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create note")
	}

	note.ID = noteM.ID
	note.CreatedAt = noteM.CreatedAt
	note.UpdatedAt = noteM.UpdatedAt

	return nil
}

// Update modifies an existing note entity in the database.
func (repo *noteRepository) Update(ctx context.Context, note *entity.Note) error {
	noteM := fromNoteDomain(note)

	if err := repo.db.WithContext(ctx).Save(noteM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required note information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update note")
	}

	note.UpdatedAt = noteM.UpdatedAt

	return nil
}

// Delete permanently removes a note by its ID.
func (repo *noteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.NoteModel{})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete note")
	}
	if result.RowsAffected == 0 {
		return repository.ErrNoteNotFound
	}

	return nil
}

// escapeLikePattern escapes the LIKE wildcard characters so a user-supplied
// search term matches literally.
func escapeLikePattern(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

	return replacer.Replace(s)
}

// toNoteDomain converts a GORM NoteModel to a domain Note entity.
func toNoteDomain(data *model.NoteModel) *entity.Note {
	if data == nil {
		return nil
	}

	return &entity.Note{
		ID:        data.ID,
		UserID:    data.UserID,
		Title:     data.Title,
		Content:   data.Content,
		Category:  data.Category,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromNoteDomain converts a domain Note entity to a GORM NoteModel for persistence.
func fromNoteDomain(data *entity.Note) *model.NoteModel {
	if data == nil {
		return nil
	}

	return &model.NoteModel{
		ID:        data.ID,
		UserID:    data.UserID,
		Title:     data.Title,
		Content:   data.Content,
		Category:  data.Category,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
