package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	apperrors "finboard/internal/errors"
	"finboard/internal/models"
	"finboard/internal/store"
	"finboard/internal/uuid"
)

// Lockout policy for the built-in provider.
const (
	MaxFailedLogins = 5
	LockoutDuration = 15 * time.Minute
	minPasswordLen  = 8
)

// accountService handles credential records.
type accountService struct {
	accounts store.Accounts
	now      func() time.Time
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(accounts store.Accounts) AccountServicer {
	return &accountService{accounts: accounts, now: time.Now}
}

// Register creates a credential record with a bcrypt password hash.
func (s *accountService) Register(ctx context.Context, email, password, displayName string) (*models.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "email and password are required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "email is not valid")
	}
	if len(password) < minPasswordLen {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "password must be at least 8 characters")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	account := &models.Account{
		UID:          uuid.New(),
		Email:        email,
		PasswordHash: string(hashedPassword),
		DisplayName:  strings.TrimSpace(displayName),
	}
	if err := s.accounts.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperrors.ErrDuplicateEmail
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return account, nil
}

// AttemptLogin checks a password and maintains the lockout counters. Unknown
// emails and wrong passwords both return ErrInvalidCredentials.
func (s *accountService) AttemptLogin(ctx context.Context, email, password string) (*models.Account, error) {
	account, err := s.accounts.GetAccountByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	now := s.now()
	if account.LockedUntil != nil && account.LockedUntil.After(now) {
		return nil, apperrors.ErrAccountLocked
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		attempts := account.FailedLoginAttempts + 1
		var lockedUntil *time.Time
		if attempts >= MaxFailedLogins {
			until := now.Add(LockoutDuration)
			lockedUntil = &until
			attempts = 0
		}
		if err := s.accounts.RecordLoginAttempt(ctx, account.UID, attempts, lockedUntil, nil); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.accounts.RecordLoginAttempt(ctx, account.UID, 0, nil, &now); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	account.FailedLoginAttempts = 0
	account.LockedUntil = nil
	account.LastLoginAt = &now
	return account, nil
}
