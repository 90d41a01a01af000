package models

import "time"

// TaxRegime is the income-tax regime a user files under.
type TaxRegime string

const (
	TaxRegimeNew TaxRegime = "new"
	TaxRegimeOld TaxRegime = "old"
)

// Profile defaults written on first login.
const (
	DefaultSalary    = 50000
	DefaultTaxRegime = TaxRegimeNew
)

// BudgetSplit holds the needs/wants/savings percentages of monthly income.
type BudgetSplit struct {
	Needs   float64 `bson:"needs" json:"needs"`
	Wants   float64 `bson:"wants" json:"wants"`
	Savings float64 `bson:"savings" json:"savings"`
}

// DefaultBudget is the 50/30/20 rule.
func DefaultBudget() BudgetSplit {
	return BudgetSplit{Needs: 50, Wants: 30, Savings: 20}
}

// Total returns the sum of the three percentages.
func (b BudgetSplit) Total() float64 {
	return b.Needs + b.Wants + b.Savings
}

// UserProfile is the per-user profile document, keyed by the auth uid.
type UserProfile struct {
	UID       string      `gorm:"primaryKey;size:128" bson:"_id" json:"uid"`
	Email     string      `bson:"email" json:"email"`
	Name      string      `bson:"name" json:"name"`
	PhotoURL  string      `bson:"photo_url" json:"photo_url"`
	Salary    float64     `gorm:"not null" bson:"salary" json:"salary"`
	TaxRegime TaxRegime   `gorm:"not null" bson:"tax_regime" json:"tax_regime"`
	Budget    BudgetSplit `gorm:"embedded;embeddedPrefix:budget_" bson:"budget" json:"budget"`
	CreatedAt time.Time   `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time   `bson:"updated_at" json:"updated_at"`
}

// NewDefaultProfile builds the profile written for a user on first login.
func NewDefaultProfile(uid, email, name, photoURL string) *UserProfile {
	return &UserProfile{
		UID:       uid,
		Email:     email,
		Name:      name,
		PhotoURL:  photoURL,
		Salary:    DefaultSalary,
		TaxRegime: DefaultTaxRegime,
		Budget:    DefaultBudget(),
	}
}
