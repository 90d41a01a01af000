// Package store defines the per-user document store used by the services.
// Every read and write is scoped by the owning user's uid.
package store

import (
	"context"
	"errors"
	"time"

	"finboard/internal/models"
)

var (
	// ErrNotFound is returned when no document matches the uid-scoped lookup.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate is returned when a unique key is already taken.
	ErrDuplicate = errors.New("duplicate document")
)

// Accounts holds the built-in auth provider's credential records.
type Accounts interface {
	CreateAccount(ctx context.Context, account *models.Account) error
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)
	RecordLoginAttempt(ctx context.Context, uid string, failedAttempts int, lockedUntil, lastLoginAt *time.Time) error
}

// Profiles holds the per-user profile documents.
type Profiles interface {
	GetProfile(ctx context.Context, uid string) (*models.UserProfile, error)
	// CreateProfileIfAbsent writes profile only when no document exists for
	// its uid. An existing document is left untouched and false is returned.
	CreateProfileIfAbsent(ctx context.Context, profile *models.UserProfile) (bool, error)
	SaveProfile(ctx context.Context, profile *models.UserProfile) error
}

// Goals holds savings goal sub-documents.
type Goals interface {
	ListGoals(ctx context.Context, uid string) ([]models.SavingsGoal, error)
	GetGoal(ctx context.Context, uid, goalID string) (*models.SavingsGoal, error)
	CreateGoal(ctx context.Context, goal *models.SavingsGoal) error
	UpdateGoal(ctx context.Context, goal *models.SavingsGoal) error
	DeleteGoal(ctx context.Context, uid, goalID string) error
}

// Expenses holds expense sub-documents, newest first.
type Expenses interface {
	// ListExpenses returns one window of a user's expenses and the total
	// count. A limit of zero returns every expense from offset onwards.
	ListExpenses(ctx context.Context, uid string, offset, limit int) ([]models.Expense, int64, error)
	CreateExpense(ctx context.Context, expense *models.Expense) error
}

// AuditLogs appends audit entries.
type AuditLogs interface {
	AppendAudit(ctx context.Context, entry *models.AuditLog) error
}

// Store is the full document store contract.
type Store interface {
	Accounts
	Profiles
	Goals
	Expenses
	AuditLogs
	Close(ctx context.Context) error
}
