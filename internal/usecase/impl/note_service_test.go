package impl

import (
	"context"
	"testing"

	"notevault/internal/domain/entity"
	domainerrors "notevault/internal/domain/errors"
	"notevault/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noteServiceFixture struct {
	service  usecase.NoteUsecase
	noteRepo *fakeNoteRepo
}

func newNoteServiceFixture() *noteServiceFixture {
	userRepo := newFakeUserRepo()
	noteRepo := newFakeNoteRepo()

	service := NewNoteService(NoteServiceParams{
		TxManager: &fakeTxManager{userRepo: userRepo, noteRepo: noteRepo},
		NoteRepo:  noteRepo,
		Logger:    discardLogger(),
	})

	return &noteServiceFixture{service: service, noteRepo: noteRepo}
}

func (f *noteServiceFixture) mustCreate(t *testing.T, userID uuid.UUID, title, content, category string) *entity.Note {
	t.Helper()

	note, err := f.service.Create(context.Background(), userID, &usecase.CreateNoteInput{
		Title:    title,
		Content:  content,
		Category: category,
	})
	require.NoError(t, err)

	return note
}

func TestNoteService_Create(t *testing.T) {
	t.Run("persists a note owned by the caller", func(t *testing.T) {
		fixture := newNoteServiceFixture()
		userID := uuid.New()

		note := fixture.mustCreate(t, userID, "Groceries", "Milk and eggs", "Personal")

		assert.NotEqual(t, uuid.Nil, note.ID)
		assert.Equal(t, userID, note.UserID)
		assert.Equal(t, "Groceries", note.Title)
		assert.False(t, note.CreatedAt.IsZero())
	})

	t.Run("rejects blank fields", func(t *testing.T) {
		fixture := newNoteServiceFixture()
		userID := uuid.New()

		cases := []struct {
			name  string
			input *usecase.CreateNoteInput
		}{
			{"blank title", &usecase.CreateNoteInput{Title: "  ", Content: "body", Category: "Work"}},
			{"blank content", &usecase.CreateNoteInput{Title: "Title", Content: "", Category: "Work"}},
			{"blank category", &usecase.CreateNoteInput{Title: "Title", Content: "body", Category: "\t"}},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				note, err := fixture.service.Create(context.Background(), userID, tc.input)
				require.Error(t, err)
				assert.Nil(t, note)
				assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
			})
		}
	})
}

func TestNoteService_List(t *testing.T) {
	t.Run("returns only the caller's notes", func(t *testing.T) {
		fixture := newNoteServiceFixture()
		alice := uuid.New()
		bob := uuid.New()

		fixture.mustCreate(t, alice, "Alice note", "hers", "Personal")
		fixture.mustCreate(t, bob, "Bob note", "his", "Personal")

		notes, err := fixture.service.List(context.Background(), alice, "")
		require.NoError(t, err)
		require.Len(t, notes, 1)
		assert.Equal(t, "Alice note", notes[0].Title)
	})

	t.Run("search matches case-insensitively across fields", func(t *testing.T) {
		fixture := newNoteServiceFixture()
		userID := uuid.New()

		fixture.mustCreate(t, userID, "Quarterly report", "numbers", "Work")
		fixture.mustCreate(t, userID, "Holiday plans", "pack sunscreen", "Personal")
		fixture.mustCreate(t, userID, "Standup", "discuss workload", "Meetings")

		// "WORK" matches "Work" category and "workload" content, not the holiday note.
		notes, err := fixture.service.List(context.Background(), userID, "WORK")
		require.NoError(t, err)
		require.Len(t, notes, 2)
		for _, note := range notes {
			assert.NotEqual(t, "Holiday plans", note.Title)
		}
	})

	t.Run("empty search returns everything", func(t *testing.T) {
		fixture := newNoteServiceFixture()
		userID := uuid.New()

		fixture.mustCreate(t, userID, "One", "first", "A")
		fixture.mustCreate(t, userID, "Two", "second", "B")

		notes, err := fixture.service.List(context.Background(), userID, "")
		require.NoError(t, err)
		assert.Len(t, notes, 2)
	})
}

func TestNoteService_Get(t *testing.T) {
	t.Run("returns an owned note", func(t *testing.T) {
		fixture := newNoteServiceFixture()
		userID := uuid.New()

		created := fixture.mustCreate(t, userID, "Mine", "body", "Personal")

		note, err := fixture.service.Get(context.Background(), userID, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, note.ID)
	})

	t.Run("reports a missing note", func(t *testing.T) {
		fixture := newNoteServiceFixture()

		note, err := fixture.service.Get(context.Background(), uuid.New(), uuid.New())
		require.Error(t, err)
		assert.Nil(t, note)
		assert.True(t, errors.Is(err, domainerrors.ErrNoteNotFound))
	})

	t.Run("refuses another user's note", func(t *testing.T) {
		fixture := newNoteServiceFixture()
		owner := uuid.New()
		intruder := uuid.New()

		created := fixture.mustCreate(t, owner, "Private", "secret", "Personal")

		note, err := fixture.service.Get(context.Background(), intruder, created.ID)
		require.Error(t, err)
		assert.Nil(t, note)
		assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
	})
}

func TestNoteService_Update(t *testing.T) {
	t.Run("replaces the note body and keeps the owner", func(t *testing.T) {
		fixture := newNoteServiceFixture()
		userID := uuid.New()

		created := fixture.mustCreate(t, userID, "Old title", "old body", "Personal")

		updated, err := fixture.service.Update(context.Background(), userID, created.ID, &usecase.UpdateNoteInput{
			Title:    "New title",
			Content:  "new body",
			Category: "Work",
		})
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, userID, updated.UserID)
		assert.Equal(t, "New title", updated.Title)
		assert.Equal(t, "new body", updated.Content)
		assert.Equal(t, "Work", updated.Category)
	})

	t.Run("refuses another user's note", func(t *testing.T) {
		fixture := newNoteServiceFixture()
		owner := uuid.New()
		intruder := uuid.New()

		created := fixture.mustCreate(t, owner, "Private", "secret", "Personal")

		updated, err := fixture.service.Update(context.Background(), intruder, created.ID, &usecase.UpdateNoteInput{
			Title:    "Hijacked",
			Content:  "nope",
			Category: "Work",
		})
		require.Error(t, err)
		assert.Nil(t, updated)
		assert.True(t, errors.Is(err, domainerrors.ErrForbidden))

		// The note must be untouched.
		stored, err := fixture.service.Get(context.Background(), owner, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Private", stored.Title)
	})

	t.Run("reports a missing note", func(t *testing.T) {
		fixture := newNoteServiceFixture()

		updated, err := fixture.service.Update(context.Background(), uuid.New(), uuid.New(), &usecase.UpdateNoteInput{
			Title:    "Title",
			Content:  "body",
			Category: "Work",
		})
		require.Error(t, err)
		assert.Nil(t, updated)
		assert.True(t, errors.Is(err, domainerrors.ErrNoteNotFound))
	})

	t.Run("rejects blank replacement fields", func(t *testing.T) {
		fixture := newNoteServiceFixture()
		userID := uuid.New()

		created := fixture.mustCreate(t, userID, "Title", "body", "Work")

		updated, err := fixture.service.Update(context.Background(), userID, created.ID, &usecase.UpdateNoteInput{
			Title:    "",
			Content:  "body",
			Category: "Work",
		})
		require.Error(t, err)
		assert.Nil(t, updated)
		assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	})
}

func TestNoteService_Delete(t *testing.T) {
	t.Run("removes an owned note", func(t *testing.T) {
		fixture := newNoteServiceFixture()
		userID := uuid.New()

		created := fixture.mustCreate(t, userID, "Disposable", "body", "Personal")

		require.NoError(t, fixture.service.Delete(context.Background(), userID, created.ID))

		_, err := fixture.service.Get(context.Background(), userID, created.ID)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerrors.ErrNoteNotFound))
	})

	t.Run("refuses another user's note", func(t *testing.T) {
		fixture := newNoteServiceFixture()
		owner := uuid.New()
		intruder := uuid.New()

		created := fixture.mustCreate(t, owner, "Private", "secret", "Personal")

		err := fixture.service.Delete(context.Background(), intruder, created.ID)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerrors.ErrForbidden))

		_, err = fixture.service.Get(context.Background(), owner, created.ID)
		assert.NoError(t, err)
	})

	t.Run("reports a missing note", func(t *testing.T) {
		fixture := newNoteServiceFixture()

		err := fixture.service.Delete(context.Background(), uuid.New(), uuid.New())
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerrors.ErrNoteNotFound))
	})
}
