package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"finboard/internal/models"
)

func TestFormatINR(t *testing.T) {
	tests := map[float64]string{
		0:         "₹0",
		999:       "₹999",
		1000:      "₹1,000",
		100000:    "₹1,00,000",
		1234567:   "₹12,34,567",
		123456789: "₹12,34,56,789",
		2500.5:    "₹2,500.5",
		10.256:    "₹10.26",
		-45000:    "-₹45,000",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatINR(in), "FormatINR(%v)", in)
	}
}

func TestNewGoalCards(t *testing.T) {
	cards := NewGoalCards([]models.SavingsGoal{
		{Base: models.Base{ID: "g1"}, Name: "Vacation", Category: "Travel", CurrentAmount: 2500, TargetAmount: 10000},
		{Base: models.Base{ID: "g2"}, Name: "Someday", TargetAmount: 0, CurrentAmount: 300},
		{Base: models.Base{ID: "g3"}, Name: "Done", TargetAmount: 100, CurrentAmount: 250},
	})

	assert.Len(t, cards, 3)
	assert.Equal(t, "25%", cards[0].ProgressLabel)
	assert.Equal(t, "₹2,500", cards[0].Current)
	assert.Equal(t, "₹10,000", cards[0].Target)
	assert.Equal(t, 0.0, cards[1].Progress)
	assert.Equal(t, "0%", cards[1].ProgressLabel)
	assert.Equal(t, 100.0, cards[2].Progress)
}

func TestBudgetBreakdown(t *testing.T) {
	p := models.NewDefaultProfile("u1", "", "", "")
	lines := BudgetBreakdown(p)
	assert.Equal(t, []BudgetLine{
		{Label: "Needs", Percent: 50, Amount: "₹25,000"},
		{Label: "Wants", Percent: 30, Amount: "₹15,000"},
		{Label: "Savings", Percent: 20, Amount: "₹10,000"},
	}, lines)

	assert.Nil(t, BudgetBreakdown(nil))
}

func TestExpenseTotal(t *testing.T) {
	assert.Equal(t, 0.3, ExpenseTotal([]models.Expense{{Amount: 0.1}, {Amount: 0.2}}))
	assert.Equal(t, 0.0, ExpenseTotal(nil))
}
