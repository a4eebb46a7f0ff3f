package handler

import (
	"log/slog"
	"net/http"
	"time"

	"notevault/internal/delivery/http/middleware"
	"notevault/internal/delivery/http/response"
	"notevault/internal/domain/entity"
	domainerrors "notevault/internal/domain/errors"
	"notevault/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// NoteHandler holds dependencies for note-related handlers.
type NoteHandler struct {
	uc     usecase.NoteUsecase
	logger *slog.Logger
}

// NewNoteHandler is the constructor for NoteHandler, injected by Fx.
func NewNoteHandler(uc usecase.NoteUsecase, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{
		uc:     uc,
		logger: logger,
	}
}

type noteRequest struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
	Category string `json:"category" validate:"required"`
}

type noteResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toNoteResponse(note *entity.Note) noteResponse {
	return noteResponse{
		ID:        note.ID,
		UserID:    note.UserID,
		Title:     note.Title,
		Content:   note.Content,
		Category:  note.Category,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

func toNoteResponses(notes []*entity.Note) []noteResponse {
	result := make([]noteResponse, 0, len(notes))
	for _, note := range notes {
		result = append(result, toNoteResponse(note))
	}

	return result
}

// noteIDParam parses the :id path parameter.
func noteIDParam(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WrapMessage("invalid note id")
	}

	return id, nil
}

// List handles listing the caller's notes, with an optional ?search= filter.
func (h *NoteHandler) List(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return errors.Wrap(domainerrors.ErrUnauthenticated, "no authenticated user on request")
	}

	notes, err := h.uc.List(c.Request().Context(), user.ID, c.QueryParam("search"))
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, toNoteResponses(notes))
}

// Get handles fetching a single note by ID.
func (h *NoteHandler) Get(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return errors.Wrap(domainerrors.ErrUnauthenticated, "no authenticated user on request")
	}

	noteID, err := noteIDParam(c)
	if err != nil {
		return err
	}

	note, err := h.uc.Get(c.Request().Context(), user.ID, noteID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, toNoteResponse(note))
}

// Create handles creating a new note for the caller.
func (h *NoteHandler) Create(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return errors.Wrap(domainerrors.ErrUnauthenticated, "no authenticated user on request")
	}

	var req noteRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("invalid note input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	note, err := h.uc.Create(c.Request().Context(), user.ID, &usecase.CreateNoteInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusCreated, toNoteResponse(note))
}

// Update handles replacing an existing note's body.
func (h *NoteHandler) Update(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return errors.Wrap(domainerrors.ErrUnauthenticated, "no authenticated user on request")
	}

	noteID, err := noteIDParam(c)
	if err != nil {
		return err
	}

	var req noteRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("invalid note input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	note, err := h.uc.Update(c.Request().Context(), user.ID, noteID, &usecase.UpdateNoteInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, toNoteResponse(note))
}

// Delete handles removing an existing note.
func (h *NoteHandler) Delete(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return errors.Wrap(domainerrors.ErrUnauthenticated, "no authenticated user on request")
	}

	noteID, err := noteIDParam(c)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), user.ID, noteID); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusOK, "Note removed")
}
