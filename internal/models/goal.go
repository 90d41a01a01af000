package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// SavingsGoal is a user's savings target. Progress is derived and never stored.
type SavingsGoal struct {
	Base          `bson:",inline"`
	UserID        string  `gorm:"not null;index" bson:"user_id" json:"user_id"`
	Name          string  `gorm:"not null" bson:"name" json:"name"`
	Category      string  `bson:"category" json:"category"`
	TargetAmount  float64 `gorm:"not null" bson:"target_amount" json:"target_amount"`
	CurrentAmount float64 `gorm:"not null;default:0" bson:"current_amount" json:"current_amount"`
}

// Progress returns the completion percentage clamped to [0, 100]. A zero
// target yields 0.
func (g SavingsGoal) Progress() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	pct := decimal.NewFromFloat(g.CurrentAmount).
		Div(decimal.NewFromFloat(g.TargetAmount)).
		Mul(hundred)
	if pct.IsNegative() {
		return 0
	}
	if pct.GreaterThan(hundred) {
		return 100
	}
	f, _ := pct.Float64()
	return f
}

// ProgressLabel formats Progress as a whole percentage, e.g. "25%".
func (g SavingsGoal) ProgressLabel() string {
	rounded := decimal.NewFromFloat(g.Progress()).Round(0)
	return fmt.Sprintf("%s%%", rounded.String())
}
