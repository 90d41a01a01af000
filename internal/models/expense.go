package models

import "time"

// isoLayout matches the millisecond UTC form used on the analysis wire.
const isoLayout = "2006-01-02T15:04:05.000Z"

// Expense is a single spend record. Expenses are immutable after creation.
type Expense struct {
	Base        `bson:",inline"`
	UserID      string    `gorm:"not null;index" bson:"user_id" json:"user_id"`
	Date        time.Time `gorm:"not null;index" bson:"date" json:"date"`
	Amount      float64   `gorm:"not null" bson:"amount" json:"amount"`
	Category    string    `gorm:"not null" bson:"category" json:"category"`
	Description string    `bson:"description" json:"description"`
}

// ToAnalysis converts the expense to the analysis wire shape. The timestamp
// becomes an ISO-8601 string only here.
func (e Expense) ToAnalysis() AnalysisExpense {
	return AnalysisExpense{
		ID:          e.ID,
		Amount:      e.Amount,
		Category:    e.Category,
		Description: e.Description,
		Date:        FormatISO(e.Date),
	}
}

// FormatISO renders t in UTC with millisecond precision.
func FormatISO(t time.Time) string {
	return t.UTC().Format(isoLayout)
}
