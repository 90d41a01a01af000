package services

import (
	"context"
	"time"

	"finboard/internal/models"
	"finboard/internal/pagination"
	"finboard/internal/session"
)

// AccountServicer defines the contract for the built-in credential provider.
type AccountServicer interface {
	Register(ctx context.Context, email, password, displayName string) (*models.Account, error)
	AttemptLogin(ctx context.Context, email, password string) (*models.Account, error)
}

// ProfileUpdate holds the profile fields a user may change. Nil fields are
// left as they are.
type ProfileUpdate struct {
	Name      *string
	Salary    *float64
	TaxRegime *models.TaxRegime
	Budget    *models.BudgetSplit
}

// ProfileServicer defines the contract for profile documents.
type ProfileServicer interface {
	Bootstrap(ctx context.Context, id session.Identity) (*models.UserProfile, bool, error)
	GetProfile(ctx context.Context, uid string) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, uid string, update ProfileUpdate) (*models.UserProfile, error)
}

// GoalInput holds the editable fields of a savings goal.
type GoalInput struct {
	Name          string
	Category      string
	TargetAmount  float64
	CurrentAmount float64
}

// GoalServicer defines the contract for savings goal documents.
type GoalServicer interface {
	ListGoals(ctx context.Context, uid string) ([]models.SavingsGoal, error)
	GetGoal(ctx context.Context, uid, goalID string) (*models.SavingsGoal, error)
	CreateGoal(ctx context.Context, uid string, input GoalInput) (*models.SavingsGoal, error)
	UpdateGoal(ctx context.Context, uid, goalID string, input GoalInput) (*models.SavingsGoal, error)
	DeleteGoal(ctx context.Context, uid, goalID string) error
}

// ExpenseInput holds the fields of a new expense. A nil Date means now.
type ExpenseInput struct {
	Amount      float64
	Category    string
	Description string
	Date        *time.Time
}

// ExpenseServicer defines the contract for expense documents.
type ExpenseServicer interface {
	ListExpenses(ctx context.Context, uid string, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error)
	AllExpenses(ctx context.Context, uid string) ([]models.Expense, error)
	CreateExpense(ctx context.Context, uid string, input ExpenseInput) (*models.Expense, error)
}

// AnalysisView is what the advice view is built from. Both fields may be
// nil: a missing profile or a skipped analysis is a valid state.
type AnalysisView struct {
	Profile  *models.UserProfile    `json:"profile"`
	Analysis *models.AnalysisResult `json:"analysis"`
}

// AnalysisServicer defines the contract for the derived analysis pipeline.
type AnalysisServicer interface {
	Recompute(ctx context.Context, profile *models.UserProfile, expenses []models.Expense) *models.AnalysisResult
	Analyze(ctx context.Context, uid string) *AnalysisView
	Advise(ctx context.Context, uid, question string) (*models.Advice, error)
	AdviseFrom(ctx context.Context, view *AnalysisView, question string) (*models.Advice, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(ctx context.Context, userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
