package services

import (
	"context"
	"errors"
	"strings"

	apperrors "finboard/internal/errors"
	"finboard/internal/models"
	"finboard/internal/store"
)

// goalService handles savings goal documents.
type goalService struct {
	goals store.Goals
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(goals store.Goals) GoalServicer {
	return &goalService{goals: goals}
}

func validateGoalInput(input GoalInput) (GoalInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Category = strings.TrimSpace(input.Category)
	if input.Name == "" {
		return input, apperrors.WithMessage(apperrors.ErrInvalidInput, "goal name is required")
	}
	if input.TargetAmount < 0 || input.CurrentAmount < 0 {
		return input, apperrors.ErrInvalidGoalAmount
	}
	return input, nil
}

func goalError(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.ErrGoalNotFound
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}

// ListGoals returns every goal of uid.
func (s *goalService) ListGoals(ctx context.Context, uid string) ([]models.SavingsGoal, error) {
	goals, err := s.goals.ListGoals(ctx, uid)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goals, nil
}

// GetGoal returns one goal of uid.
func (s *goalService) GetGoal(ctx context.Context, uid, goalID string) (*models.SavingsGoal, error) {
	goal, err := s.goals.GetGoal(ctx, uid, goalID)
	if err != nil {
		return nil, goalError(err)
	}
	return goal, nil
}

// CreateGoal stores a new goal for uid and returns it with its id.
func (s *goalService) CreateGoal(ctx context.Context, uid string, input GoalInput) (*models.SavingsGoal, error) {
	input, err := validateGoalInput(input)
	if err != nil {
		return nil, err
	}

	goal := &models.SavingsGoal{
		UserID:        uid,
		Name:          input.Name,
		Category:      input.Category,
		TargetAmount:  input.TargetAmount,
		CurrentAmount: input.CurrentAmount,
	}
	if err := s.goals.CreateGoal(ctx, goal); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goal, nil
}

// UpdateGoal replaces the editable fields of a goal and returns the result.
func (s *goalService) UpdateGoal(ctx context.Context, uid, goalID string, input GoalInput) (*models.SavingsGoal, error) {
	input, err := validateGoalInput(input)
	if err != nil {
		return nil, err
	}

	goal, err := s.goals.GetGoal(ctx, uid, goalID)
	if err != nil {
		return nil, goalError(err)
	}
	goal.Name = input.Name
	goal.Category = input.Category
	goal.TargetAmount = input.TargetAmount
	goal.CurrentAmount = input.CurrentAmount

	if err := s.goals.UpdateGoal(ctx, goal); err != nil {
		return nil, goalError(err)
	}
	return goal, nil
}

// DeleteGoal removes a goal of uid.
func (s *goalService) DeleteGoal(ctx context.Context, uid, goalID string) error {
	if err := s.goals.DeleteGoal(ctx, uid, goalID); err != nil {
		return goalError(err)
	}
	return nil
}
