package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "notevault/internal/delivery/context"
	"notevault/internal/domain/entity"
	domainerrors "notevault/internal/domain/errors"
	"notevault/internal/domain/repository"
	"notevault/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// keyAuthUser is the echo.Context key holding the authenticated user.
const keyAuthUser = "authUser"

// AuthMiddleware validates bearer tokens and resolves them to stored users.
// Missing header, malformed token, failed verification and a stale subject
// all produce the same 401; the distinction only reaches the logs.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, userRepo repository.UserRepository, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, userRepo: userRepo, logger: logger}
}

// Authenticate is the core middleware function that validates the bearer token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)

		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return errors.Wrap(domainerrors.ErrUnauthenticated, "authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			return errors.Wrap(domainerrors.ErrUnauthenticated, "authorization header is not a bearer token")
		}

		claims, err := m.tokenSvc.Validate(tokenString)
		if err != nil {
			log.Warn("Token validation failed", slog.Any("error", err))

			return errors.Wrap(domainerrors.ErrUnauthenticated, "invalid or expired token")
		}

		// Resolve the subject to a stored account; a valid token for a
		// deleted user must not authenticate.
		user, err := m.userRepo.FindByID(c.Request().Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				log.Warn("Token subject no longer exists", slog.Any("userID", claims.UserID))

				return errors.Wrap(domainerrors.ErrUnauthenticated, "token subject not found")
			}

			return errors.Wrap(err, "failed to resolve token subject")
		}

		c.Set(keyAuthUser, user)

		return next(c)
	}
}

// CurrentUser returns the authenticated user attached by Authenticate.
func CurrentUser(c echo.Context) (*entity.User, bool) {
	user, ok := c.Get(keyAuthUser).(*entity.User)

	return user, ok
}
