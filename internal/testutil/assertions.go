package testutil

import (
	"errors"
	"testing"

	apperrors "finboard/internal/errors"
)

// AssertAppError fails unless err unwraps to an *AppError carrying code. The
// matched error is returned for further checks.
func AssertAppError(t *testing.T, err error, code string) *apperrors.AppError {
	t.Helper()

	var appErr *apperrors.AppError
	switch {
	case err == nil:
		t.Fatalf("expected %s, got nil", code)
	case !errors.As(err, &appErr):
		t.Fatalf("expected %s, got %T: %v", code, err, err)
	case appErr.Code != code:
		t.Errorf("expected %s, got %s (%s)", code, appErr.Code, appErr.Message)
	}
	return appErr
}

// AssertAppStatus fails unless err is an *AppError rendered with status.
func AssertAppStatus(t *testing.T, err error, status int) {
	t.Helper()

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected an AppError with status %d, got %v", status, err)
	}
	if appErr.StatusCode != status {
		t.Errorf("expected status %d, got %d for %s", status, appErr.StatusCode, appErr.Code)
	}
}

// AssertNoError fails the test immediately on a non-nil err.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
