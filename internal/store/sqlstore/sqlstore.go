// Package sqlstore implements the document store on a relational database
// through GORM. Each document kind is a table keyed by id with a user_id
// column that scopes every query.
package sqlstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"finboard/internal/models"
	"finboard/internal/store"
)

// Models lists every table the store needs, for AutoMigrate.
var Models = []interface{}{
	&models.Account{},
	&models.UserProfile{},
	&models.SavingsGoal{},
	&models.Expense{},
	&models.AuditLog{},
}

// Store is a GORM-backed store.Store.
type Store struct {
	db *gorm.DB
}

var _ store.Store = (*Store)(nil)

// New wraps an open GORM connection.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying connection for migrations and tests.
func (s *Store) DB() *gorm.DB {
	return s.db
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return store.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return store.ErrDuplicate
	}
	return err
}

// window applies OFFSET and LIMIT; a zero limit means no limit.
func window(offset, limit int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if offset > 0 {
			db = db.Offset(offset)
		}
		if limit > 0 {
			db = db.Limit(limit)
		}
		return db
	}
}

// CreateAccount inserts a credential record.
func (s *Store) CreateAccount(ctx context.Context, account *models.Account) error {
	return translate(s.db.WithContext(ctx).Create(account).Error)
}

// GetAccountByEmail looks an account up by its (lower-cased) email.
func (s *Store) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&account).Error; err != nil {
		return nil, translate(err)
	}
	return &account, nil
}

// RecordLoginAttempt stores the lockout counters after a login attempt.
func (s *Store) RecordLoginAttempt(ctx context.Context, uid string, failedAttempts int, lockedUntil, lastLoginAt *time.Time) error {
	updates := map[string]interface{}{
		"failed_login_attempts": failedAttempts,
		"locked_until":          lockedUntil,
		"updated_at":            time.Now(),
	}
	if lastLoginAt != nil {
		updates["last_login_at"] = lastLoginAt
	}
	res := s.db.WithContext(ctx).Model(&models.Account{}).Where("uid = ?", uid).Updates(updates)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// GetProfile returns the profile document for uid.
func (s *Store) GetProfile(ctx context.Context, uid string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.db.WithContext(ctx).Where("uid = ?", uid).First(&profile).Error; err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

// CreateProfileIfAbsent inserts profile with ON CONFLICT DO NOTHING so a row
// created concurrently by another writer is kept as is.
func (s *Store) CreateProfileIfAbsent(ctx context.Context, profile *models.UserProfile) (bool, error) {
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "uid"}}, DoNothing: true}).
		Create(profile)
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected == 1, nil
}

// SaveProfile writes the mutable profile fields.
func (s *Store) SaveProfile(ctx context.Context, profile *models.UserProfile) error {
	profile.UpdatedAt = time.Now()
	res := s.db.WithContext(ctx).Model(&models.UserProfile{}).
		Where("uid = ?", profile.UID).
		Updates(map[string]interface{}{
			"name":           profile.Name,
			"photo_url":      profile.PhotoURL,
			"salary":         profile.Salary,
			"tax_regime":     profile.TaxRegime,
			"budget_needs":   profile.Budget.Needs,
			"budget_wants":   profile.Budget.Wants,
			"budget_savings": profile.Budget.Savings,
			"updated_at":     profile.UpdatedAt,
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ListGoals returns the user's goals, oldest first.
func (s *Store) ListGoals(ctx context.Context, uid string) ([]models.SavingsGoal, error) {
	goals := []models.SavingsGoal{}
	if err := s.db.WithContext(ctx).Where("user_id = ?", uid).Order("created_at ASC, id ASC").Find(&goals).Error; err != nil {
		return nil, translate(err)
	}
	return goals, nil
}

// GetGoal returns one goal owned by uid.
func (s *Store) GetGoal(ctx context.Context, uid, goalID string) (*models.SavingsGoal, error) {
	var goal models.SavingsGoal
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", goalID, uid).First(&goal).Error; err != nil {
		return nil, translate(err)
	}
	return &goal, nil
}

// CreateGoal inserts a goal.
func (s *Store) CreateGoal(ctx context.Context, goal *models.SavingsGoal) error {
	return translate(s.db.WithContext(ctx).Create(goal).Error)
}

// UpdateGoal writes the editable goal fields.
func (s *Store) UpdateGoal(ctx context.Context, goal *models.SavingsGoal) error {
	goal.UpdatedAt = time.Now()
	res := s.db.WithContext(ctx).Model(&models.SavingsGoal{}).
		Where("id = ? AND user_id = ?", goal.ID, goal.UserID).
		Updates(map[string]interface{}{
			"name":           goal.Name,
			"category":       goal.Category,
			"target_amount":  goal.TargetAmount,
			"current_amount": goal.CurrentAmount,
			"updated_at":     goal.UpdatedAt,
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteGoal removes a goal. Deleting a goal that does not exist, or that
// belongs to another user, returns store.ErrNotFound.
func (s *Store) DeleteGoal(ctx context.Context, uid, goalID string) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", goalID, uid).Delete(&models.SavingsGoal{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ListExpenses returns the user's expenses, newest first.
func (s *Store) ListExpenses(ctx context.Context, uid string, offset, limit int) ([]models.Expense, int64, error) {
	base := s.db.WithContext(ctx).Model(&models.Expense{}).Where("user_id = ?", uid).Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	expenses := []models.Expense{}
	if err := base.Order("date DESC, id DESC").Scopes(window(offset, limit)).Find(&expenses).Error; err != nil {
		return nil, 0, translate(err)
	}
	return expenses, total, nil
}

// CreateExpense inserts an expense.
func (s *Store) CreateExpense(ctx context.Context, expense *models.Expense) error {
	return translate(s.db.WithContext(ctx).Create(expense).Error)
}

// AppendAudit inserts an audit entry.
func (s *Store) AppendAudit(ctx context.Context, entry *models.AuditLog) error {
	return translate(s.db.WithContext(ctx).Create(entry).Error)
}

// Close releases the connection pool.
func (s *Store) Close(_ context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
