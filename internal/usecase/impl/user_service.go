// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "notevault/internal/delivery/context"
	"notevault/internal/domain/entity"
	domainerrors "notevault/internal/domain/errors"
	"notevault/internal/domain/repository"
	"notevault/internal/domain/service"
	"notevault/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// normalizeEmail trims surrounding whitespace and lower-cases the address.
// Emails are compared and stored lower-cased so uniqueness is case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register orchestrates the complete user registration process.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	email := normalizeEmail(input.Email)
	srv.log(ctx).Info("Starting registration", slog.String("email", email))

	if input.Password != input.ConfirmPassword {
		srv.log(ctx).Warn("Password confirmation mismatch during registration", slog.String("email", email))

		return nil, errors.Wrap(domainerrors.ErrPasswordMismatch, "registration failed")
	}

	// Hash outside the transaction (bcrypt is CPU-bound).
	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "registration failed")
	}

	newUser := &entity.User{
		Name:         input.Name,
		Email:        email,
		PasswordHash: hashedPassword,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		_, findErr := userRepo.FindByEmail(ctx, email)
		if findErr == nil {
			return errors.Wrap(domainerrors.ErrEmailTaken, "registration failed")
		}
		if !errors.Is(findErr, repository.ErrUserNotFound) {
			return errors.Wrap(findErr, "failed to check existing email")
		}

		// The unique index on email still backstops concurrent registrations.
		if createErr := userRepo.Create(ctx, newUser); createErr != nil {
			return errors.Wrap(createErr, "failed to create user during registration")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to execute registration transaction", slog.String("email", email), slog.Any("error", err))

		return nil, err
	}

	token, err := srv.tokenService.Generate(newUser.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to generate token after registration", slog.Any("userID", newUser.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate token after registration")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", newUser.ID))

	return &usecase.AuthOutput{User: newUser, Token: token}, nil
}

// Login verifies credentials and issues a fresh bearer token.
// An unknown email and a wrong password are reported as distinct errors.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	email := normalizeEmail(input.Email)
	srv.log(ctx).Debug("Starting user login", slog.String("email", email))

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.Any("error", err))

		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "login failed")
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	// Check password outside transaction (bcrypt is CPU-bound).
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	token, err := srv.tokenService.Generate(user.ID)
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate token")
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", user.ID))

	return &usecase.AuthOutput{User: user, Token: token}, nil
}

// GetProfile returns the account of the authenticated user.
func (srv *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		srv.log(ctx).Warn("Failed to load profile", slog.Any("userID", userID), slog.Any("error", err))

		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "failed to load profile")
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return user, nil
}

// UpdateProfile applies the provided changes to the caller's own account.
// Nil input fields are left untouched.
func (srv *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, input *usecase.UpdateProfileInput) (*entity.User, error) {
	srv.log(ctx).Info("Updating profile", slog.Any("userID", userID))

	newPasswordHash, err := srv.prepareNewPasswordHash(ctx, input)
	if err != nil {
		return nil, err
	}

	var updatedUser *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, findErr := userRepo.FindByID(ctx, userID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "profile update failed")
			}

			return errors.Wrap(findErr, "failed to find user by id")
		}

		if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
			user.Name = strings.TrimSpace(*input.Name)
		}

		if input.Email != nil {
			newEmail := normalizeEmail(*input.Email)
			if newEmail != "" && newEmail != user.Email {
				if conflictErr := srv.ensureEmailAvailable(ctx, userRepo, newEmail); conflictErr != nil {
					return conflictErr
				}
				user.Email = newEmail
			}
		}

		if newPasswordHash != "" {
			user.PasswordHash = newPasswordHash
		}

		if updateErr := userRepo.Update(ctx, user); updateErr != nil {
			return errors.Wrap(updateErr, "failed to update user profile")
		}

		updatedUser = user

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to execute profile update transaction", slog.Any("userID", userID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Profile updated", slog.Any("userID", userID))

	return updatedUser, nil
}

// prepareNewPasswordHash validates the optional password change and returns
// the replacement hash, or the empty string when the password is unchanged.
func (srv *userService) prepareNewPasswordHash(ctx context.Context, input *usecase.UpdateProfileInput) (string, error) {
	if input.Password == nil || *input.Password == "" {
		return "", nil
	}

	if input.ConfirmPassword != nil && *input.Password != *input.ConfirmPassword {
		srv.log(ctx).Warn("Password confirmation mismatch during profile update")

		return "", errors.Wrap(domainerrors.ErrPasswordMismatch, "profile update failed")
	}

	hashed, err := srv.hasher.Hash(*input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during profile update", slog.Any("error", err))

		return "", errors.Wrap(domainerrors.ErrPasswordHashFailed, "profile update failed")
	}

	return hashed, nil
}

func (srv *userService) ensureEmailAvailable(ctx context.Context, userRepo repository.UserRepository, email string) error {
	_, err := userRepo.FindByEmail(ctx, email)
	if err == nil {
		return errors.Wrap(domainerrors.ErrEmailTaken, "profile update failed")
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return errors.Wrap(err, "failed to check email availability")
	}

	return nil
}
