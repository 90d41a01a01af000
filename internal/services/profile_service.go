package services

import (
	"context"
	"errors"
	"strings"

	apperrors "finboard/internal/errors"
	"finboard/internal/logger"
	"finboard/internal/models"
	"finboard/internal/session"
	"finboard/internal/store"
)

// profileService handles user profile documents.
type profileService struct {
	profiles store.Profiles
}

// NewProfileService creates a new ProfileServicer.
func NewProfileService(profiles store.Profiles) ProfileServicer {
	return &profileService{profiles: profiles}
}

// Bootstrap makes sure a profile exists for id. An existing profile is
// returned untouched; otherwise the defaults are written with create-if-absent
// semantics and the stored document is read back, so a profile written
// concurrently by another request wins over the defaults. The bool reports
// whether this call created the profile.
func (s *profileService) Bootstrap(ctx context.Context, id session.Identity) (*models.UserProfile, bool, error) {
	if id.UID == "" {
		return nil, false, apperrors.ErrUnauthorized
	}

	existing, err := s.profiles.GetProfile(ctx, id.UID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	defaults := models.NewDefaultProfile(id.UID, id.Email, id.Name, id.PhotoURL)
	created, err := s.profiles.CreateProfileIfAbsent(ctx, defaults)
	if err != nil {
		return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if created {
		logger.Get().Infow("created default profile", "user_id", id.UID)
		return defaults, true, nil
	}

	stored, err := s.profiles.GetProfile(ctx, id.UID)
	if err != nil {
		return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return stored, false, nil
}

// GetProfile returns the profile of uid.
func (s *profileService) GetProfile(ctx context.Context, uid string) (*models.UserProfile, error) {
	profile, err := s.profiles.GetProfile(ctx, uid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return profile, nil
}

// UpdateProfile applies update to the profile of uid.
func (s *profileService) UpdateProfile(ctx context.Context, uid string, update ProfileUpdate) (*models.UserProfile, error) {
	profile, err := s.GetProfile(ctx, uid)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		profile.Name = strings.TrimSpace(*update.Name)
	}
	if update.Salary != nil {
		if *update.Salary < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "salary must not be negative")
		}
		profile.Salary = *update.Salary
	}
	if update.TaxRegime != nil {
		switch *update.TaxRegime {
		case models.TaxRegimeNew, models.TaxRegimeOld:
			profile.TaxRegime = *update.TaxRegime
		default:
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "tax regime must be new or old")
		}
	}
	if update.Budget != nil {
		if !ValidBudget(*update.Budget) {
			return nil, apperrors.ErrInvalidBudget
		}
		profile.Budget = *update.Budget
	}

	if err := s.profiles.SaveProfile(ctx, profile); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return profile, nil
}

// ValidBudget reports whether every share is non-negative and the shares add
// up to 100.
func ValidBudget(b models.BudgetSplit) bool {
	if b.Needs < 0 || b.Wants < 0 || b.Savings < 0 {
		return false
	}
	total := b.Total()
	return total > 99.999 && total < 100.001
}
