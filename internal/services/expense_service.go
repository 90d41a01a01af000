package services

import (
	"context"
	"strings"
	"time"

	apperrors "finboard/internal/errors"
	"finboard/internal/models"
	"finboard/internal/pagination"
	"finboard/internal/store"
)

// expenseService handles expense documents.
type expenseService struct {
	expenses store.Expenses
	now      func() time.Time
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(expenses store.Expenses) ExpenseServicer {
	return &expenseService{expenses: expenses, now: time.Now}
}

// ListExpenses returns one page of uid's expenses, newest first.
func (s *expenseService) ListExpenses(ctx context.Context, uid string, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
	page.Normalize()
	expenses, total, err := s.expenses.ListExpenses(ctx, uid, page.Offset(), page.PageSize)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	resp := pagination.NewPageResponse(expenses, page, total)
	return &resp, nil
}

// AllExpenses returns every expense of uid, newest first.
func (s *expenseService) AllExpenses(ctx context.Context, uid string) ([]models.Expense, error) {
	expenses, _, err := s.expenses.ListExpenses(ctx, uid, 0, 0)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

// CreateExpense records an expense. The date defaults to the server time.
func (s *expenseService) CreateExpense(ctx context.Context, uid string, input ExpenseInput) (*models.Expense, error) {
	if input.Amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
	}
	category := strings.TrimSpace(input.Category)
	if category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}

	date := s.now().UTC()
	if input.Date != nil {
		date = input.Date.UTC()
	}

	expense := &models.Expense{
		UserID:      uid,
		Date:        date,
		Amount:      input.Amount,
		Category:    category,
		Description: strings.TrimSpace(input.Description),
	}
	if err := s.expenses.CreateExpense(ctx, expense); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}
