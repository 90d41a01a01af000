// Package dashboard holds the view logic behind the dashboard pages: goal
// cards, amount formatting and the delete-then-refresh flow of the goal list.
package dashboard

import (
	"context"
	"errors"

	apperrors "finboard/internal/errors"
	"finboard/internal/logger"
)

// Notice texts.
const (
	GoalDeletedMessage    = "Savings goal deleted."
	GoalUpdatedMessage    = "Savings goal updated."
	GoalCreatedMessage    = "Savings goal added."
	deleteFallbackMessage = "Failed to delete goal."
)

// GoalDeleter removes one goal of a user.
type GoalDeleter interface {
	DeleteGoal(ctx context.Context, uid, goalID string) error
}

// RefreshFunc re-pulls the goal list after a successful mutation.
type RefreshFunc func(ctx context.Context) error

// GoalList runs goal mutations and refreshes the caller's list afterwards.
// The list is never patched locally: every successful mutation is followed by
// a refresh, and a failed one never is.
type GoalList struct {
	deleter GoalDeleter
	refresh RefreshFunc
}

// NewGoalList returns a GoalList that calls refresh after each success.
func NewGoalList(deleter GoalDeleter, refresh RefreshFunc) *GoalList {
	if refresh == nil {
		refresh = func(context.Context) error { return nil }
	}
	return &GoalList{deleter: deleter, refresh: refresh}
}

// Delete removes goalID once the user has confirmed. Without confirmation it
// does nothing and returns ErrConfirmationRequired with no notice. A failed
// delete yields a destructive notice carrying the error message and is not
// retried.
func (l *GoalList) Delete(ctx context.Context, uid, goalID string, confirmed bool) (*Notice, error) {
	if !confirmed {
		return nil, apperrors.ErrConfirmationRequired
	}

	if err := l.deleter.DeleteGoal(ctx, uid, goalID); err != nil {
		logger.Get().Warnw("failed to delete goal", "error", err, "user_id", uid, "goal_id", goalID)
		return Failure(noticeMessage(err, deleteFallbackMessage)), err
	}

	l.runRefresh(ctx, uid)
	return Success(GoalDeletedMessage), nil
}

// Saved is called when a create or edit succeeded; it refreshes the list.
func (l *GoalList) Saved(ctx context.Context, uid, message string) *Notice {
	l.runRefresh(ctx, uid)
	return Success(message)
}

func (l *GoalList) runRefresh(ctx context.Context, uid string) {
	if err := l.refresh(ctx); err != nil {
		logger.Get().Warnw("failed to refresh goals", "error", err, "user_id", uid)
	}
}

// noticeMessage returns the user-facing message of err. Only AppError
// messages are shown; anything else could carry internal detail.
func noticeMessage(err error, fallback string) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}
