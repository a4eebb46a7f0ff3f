package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "notevault/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func newErrorTestServer(handlerErr error) *echo.Echo {
	e := echo.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e.HTTPErrorHandler = NewErrorMiddleware(logger).HandleHTTPError
	e.GET("/fail", func(c echo.Context) error {
		return handlerErr
	})

	return e
}

func performFailingRequest(e *echo.Echo) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/fail", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestErrorMiddleware_HandleHTTPError(t *testing.T) {
	t.Run("maps AppError to its status and message", func(t *testing.T) {
		e := newErrorTestServer(domainerrors.ErrNoteNotFound)

		rec := performFailingRequest(e)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"message":"Note not found"}`, rec.Body.String())
	})

	t.Run("unwraps a wrapped AppError", func(t *testing.T) {
		e := newErrorTestServer(errors.Wrap(domainerrors.ErrForbidden, "note does not belong to user"))

		rec := performFailingRequest(e)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.JSONEq(t, `{"message":"You do not have access to this note"}`, rec.Body.String())
	})

	t.Run("passes through echo HTTP errors", func(t *testing.T) {
		e := newErrorTestServer(echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"))

		rec := performFailingRequest(e)

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.JSONEq(t, `{"message":"Method Not Allowed"}`, rec.Body.String())
	})

	t.Run("hides unknown errors behind a generic 500", func(t *testing.T) {
		e := newErrorTestServer(errors.New("pq: connection reset by peer"))

		rec := performFailingRequest(e)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"message":"Internal server error"}`, rec.Body.String())
		assert.NotContains(t, rec.Body.String(), "pq:")
	})
}
