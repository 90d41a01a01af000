package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"finboard/internal/models"
	"finboard/internal/uuid"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plain-text password of accounts made by CreateTestAccount.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// NewUID returns a fresh user id.
func NewUID() string {
	return fmt.Sprintf("uid-%d", nextID())
}

// CreateTestAccount creates a credential record with a unique email.
func CreateTestAccount(t *testing.T, db *gorm.DB) *models.Account {
	t.Helper()
	return CreateTestAccountWithEmail(t, db, fmt.Sprintf("user%d@test.com", nextID()))
}

// CreateTestAccountWithEmail creates a credential record for email.
func CreateTestAccountWithEmail(t *testing.T, db *gorm.DB, email string) *models.Account {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	account := &models.Account{
		UID:          uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  "Test User",
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestProfile creates a default profile for uid.
func CreateTestProfile(t *testing.T, db *gorm.DB, uid string) *models.UserProfile {
	t.Helper()

	profile := models.NewDefaultProfile(uid, uid+"@test.com", "Test User", "")
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create test profile: %v", err)
	}
	return profile
}

// CreateTestGoal creates a savings goal for uid.
func CreateTestGoal(t *testing.T, db *gorm.DB, uid string, current, target float64) *models.SavingsGoal {
	t.Helper()

	goal := &models.SavingsGoal{
		UserID:        uid,
		Name:          fmt.Sprintf("Test Goal %d", nextID()),
		Category:      "Travel",
		TargetAmount:  target,
		CurrentAmount: current,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}

// CreateTestExpense creates an expense for uid dated at date.
func CreateTestExpense(t *testing.T, db *gorm.DB, uid string, amount float64, category string, date time.Time) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		UserID:      uid,
		Date:        date,
		Amount:      amount,
		Category:    category,
		Description: fmt.Sprintf("Test Expense %d", nextID()),
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}
