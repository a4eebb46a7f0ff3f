package impl

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"notevault/internal/domain/entity"
	domainerrors "notevault/internal/domain/errors"
	"notevault/internal/domain/repository"
	"notevault/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// In-memory doubles for the repository and service interfaces. They mimic
// the behavior of the real PostgreSQL-backed implementations closely enough
// for usecase tests: not-found sentinels, unique email enforcement and
// case-insensitive substring search.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cloned := *user

	return &cloned, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			cloned := *user

			return &cloned, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return domainerrors.ErrEmailTaken.WrapMessage("email already registered")
		}
	}

	user.ID = uuid.New()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	cloned := *user
	r.users[user.ID] = &cloned

	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}

	for id, existing := range r.users {
		if id != user.ID && existing.Email == user.Email {
			return domainerrors.ErrEmailTaken.WrapMessage("email already registered")
		}
	}

	user.UpdatedAt = time.Now()
	cloned := *user
	r.users[user.ID] = &cloned

	return nil
}

type fakeNoteRepo struct {
	mu    sync.Mutex
	notes map[uuid.UUID]*entity.Note
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{notes: make(map[uuid.UUID]*entity.Note)}
}

func (r *fakeNoteRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	note, ok := r.notes[id]
	if !ok {
		return nil, repository.ErrNoteNotFound
	}
	cloned := *note

	return &cloned, nil
}

func (r *fakeNoteRepo) FindByUser(_ context.Context, userID uuid.UUID, search string) ([]*entity.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	needle := strings.ToLower(search)
	var result []*entity.Note
	for _, note := range r.notes {
		if note.UserID != userID {
			continue
		}
		if needle != "" && !noteMatches(note, needle) {
			continue
		}
		cloned := *note
		result = append(result, &cloned)
	}

	return result, nil
}

func noteMatches(note *entity.Note, needle string) bool {
	return strings.Contains(strings.ToLower(note.Title), needle) ||
		strings.Contains(strings.ToLower(note.Content), needle) ||
		strings.Contains(strings.ToLower(note.Category), needle)
}

func (r *fakeNoteRepo) Create(_ context.Context, note *entity.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	note.ID = uuid.New()
	now := time.Now()
	note.CreatedAt = now
	note.UpdatedAt = now

	cloned := *note
	r.notes[note.ID] = &cloned

	return nil
}

func (r *fakeNoteRepo) Update(_ context.Context, note *entity.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notes[note.ID]; !ok {
		return repository.ErrNoteNotFound
	}

	note.UpdatedAt = time.Now()
	cloned := *note
	r.notes[note.ID] = &cloned

	return nil
}

func (r *fakeNoteRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notes[id]; !ok {
		return repository.ErrNoteNotFound
	}
	delete(r.notes, id)

	return nil
}

// fakeTxManager runs the callback directly against the shared fakes, so
// tests observe every intermediate write.
type fakeTxManager struct {
	userRepo *fakeUserRepo
	noteRepo *fakeNoteRepo
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(&fakeRepoFactory{userRepo: m.userRepo, noteRepo: m.noteRepo})
}

type fakeRepoFactory struct {
	userRepo *fakeUserRepo
	noteRepo *fakeNoteRepo
}

func (f *fakeRepoFactory) UserRepo() repository.UserRepository {
	return f.userRepo
}

func (f *fakeRepoFactory) NoteRepo() repository.NoteRepository {
	return f.noteRepo
}

// stubHasher hashes deterministically so tests can assert the plaintext
// never reaches storage.
type stubHasher struct {
	failHash bool
}

func (h *stubHasher) Hash(password string) (string, error) {
	if h.failHash {
		return "", errors.New("hash failure")
	}

	return "hashed:" + password, nil
}

func (h *stubHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

type stubTokenService struct {
	failGenerate bool
}

func (s *stubTokenService) Generate(userID uuid.UUID) (string, error) {
	if s.failGenerate {
		return "", errors.New("signing failure")
	}

	return "token-for-" + userID.String(), nil
}

func (s *stubTokenService) Validate(tokenString string) (*service.Claims, error) {
	id, err := uuid.Parse(strings.TrimPrefix(tokenString, "token-for-"))
	if err != nil {
		return nil, errors.New("invalid token")
	}

	return &service.Claims{UserID: id}, nil
}

func (s *stubTokenService) TokenDuration() time.Duration {
	return 30 * 24 * time.Hour
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
