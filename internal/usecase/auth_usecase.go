package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"postboard/internal/entity"
	"postboard/internal/repo/persistent"
	"postboard/pkg/jwt"
	"postboard/pkg/lifecycle"
	"postboard/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

type UpdateAccountInput struct {
	Email    *string
	Password *string
}

type AuthUseCase interface {
	Register(ctx context.Context, username, email, password string) (*entity.User, string, error)
	Login(ctx context.Context, username, password string) (*entity.User, string, error)
	GetAccount(ctx context.Context, userID uint) (*entity.User, error)
	UpdateAccount(ctx context.Context, userID uint, input UpdateAccountInput) (*entity.User, error)
	DeleteAccount(ctx context.Context, userID uint) error
}

type authUseCase struct {
	userRepo   persistent.UserRepository
	jwtService *jwt.Service
	notifier   *lifecycle.Notifier
	logger     *logger.Logger
}

func NewAuthUseCase(
	userRepo persistent.UserRepository,
	jwtService *jwt.Service,
	notifier *lifecycle.Notifier,
	logger *logger.Logger,
) AuthUseCase {
	return &authUseCase{
		userRepo:   userRepo,
		jwtService: jwtService,
		notifier:   notifier,
		logger:     logger,
	}
}

// Register creates the account and raises the created event. If a subscriber
// fails, the account is removed again so no account exists without its
// dependants.
func (uc *authUseCase) Register(ctx context.Context, username, email, password string) (*entity.User, string, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" {
		return nil, "", fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if email == "" {
		return nil, "", fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return nil, "", fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	if err := uc.ensureFree(uc.userRepo.GetByUsername(ctx, username)); err != nil {
		return nil, "", err
	}
	if err := uc.ensureFree(uc.userRepo.GetByEmail(ctx, email)); err != nil {
		return nil, "", err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, "", fmt.Errorf("failed to process registration")
	}

	user := &entity.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
		IsActive: true,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, entity.ErrDuplicate) {
			return nil, "", ErrAccountExists
		}
		uc.logger.Error("Failed to create user: %v", err)
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	event := lifecycle.Event{Type: lifecycle.EventCreated, AccountID: user.ID, Username: user.Username}
	if err := uc.notifier.Notify(ctx, event); err != nil {
		uc.logger.Error("Account %d created but lifecycle handling failed, removing it: %v", user.ID, err)
		if _, delErr := uc.userRepo.Delete(ctx, user.ID); delErr != nil {
			uc.logger.Error("Failed to remove account %d: %v", user.ID, delErr)
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := uc.jwtService.GenerateToken(user.ID, user.Username)
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", fmt.Errorf("failed to generate token")
	}

	uc.logger.Info("Registered user %d (%s)", user.ID, user.Username)
	user.Password = ""
	return user, token, nil
}

func (uc *authUseCase) Login(ctx context.Context, username, password string) (*entity.User, string, error) {
	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, "", ErrAccountInactive
	}

	token, err := uc.jwtService.GenerateToken(user.ID, user.Username)
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", fmt.Errorf("failed to generate token")
	}

	user.Password = ""
	return user, token, nil
}

func (uc *authUseCase) GetAccount(ctx context.Context, userID uint) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

// UpdateAccount saves the account and raises the updated event. Subscriber
// failures are logged; the saved change stands.
func (uc *authUseCase) UpdateAccount(ctx context.Context, userID uint, input UpdateAccountInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if email == "" {
			return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
		}
		if email != user.Email {
			if err := uc.ensureFree(uc.userRepo.GetByEmail(ctx, email)); err != nil {
				return nil, err
			}
		}
		user.Email = email
	}
	if input.Password != nil {
		if len(*input.Password) < minPasswordLength {
			return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
		}
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			uc.logger.Error("Failed to hash password: %v", err)
			return nil, fmt.Errorf("failed to update user")
		}
		user.Password = string(hashedPassword)
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, entity.ErrDuplicate) {
			return nil, ErrAccountExists
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	event := lifecycle.Event{Type: lifecycle.EventUpdated, AccountID: user.ID, Username: user.Username}
	if err := uc.notifier.Notify(ctx, event); err != nil {
		uc.logger.Error("Account %d updated but lifecycle handling failed: %v", user.ID, err)
	}

	user.Password = ""
	return user, nil
}

// DeleteAccount removes the account; its profile and posts go with it.
func (uc *authUseCase) DeleteAccount(ctx context.Context, userID uint) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	postIDs, err := uc.userRepo.Delete(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	event := lifecycle.Event{Type: lifecycle.EventDeleted, AccountID: user.ID, Username: user.Username, PostIDs: postIDs}
	if err := uc.notifier.Notify(ctx, event); err != nil {
		uc.logger.Error("Account %d deleted but lifecycle handling failed: %v", user.ID, err)
	}

	uc.logger.Info("Deleted user %d (%s)", user.ID, user.Username)
	return nil
}

// ensureFree turns the result of a username or email lookup into
// ErrAccountExists when the value is taken. Lookup failures other than not
// found are returned as is.
func (uc *authUseCase) ensureFree(_ *entity.User, err error) error {
	if err == nil {
		return ErrAccountExists
	}
	if errors.Is(err, entity.ErrUserNotFound) {
		return nil
	}
	uc.logger.Error("Failed to look up account: %v", err)
	return fmt.Errorf("failed to look up account: %w", err)
}
