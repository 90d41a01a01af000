package dashboard

import (
	"github.com/shopspring/decimal"

	"finboard/internal/models"
)

// GoalCard is a goal prepared for display.
type GoalCard struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Progress      float64 `json:"progress"`
	ProgressLabel string  `json:"progress_label"`
	Current       string  `json:"current"`
	Target        string  `json:"target"`
	CurrentAmount float64 `json:"current_amount"`
	TargetAmount  float64 `json:"target_amount"`
}

// NewGoalCards builds cards for goals in order.
func NewGoalCards(goals []models.SavingsGoal) []GoalCard {
	cards := make([]GoalCard, 0, len(goals))
	for _, g := range goals {
		cards = append(cards, GoalCard{
			ID:            g.ID,
			Name:          g.Name,
			Category:      g.Category,
			Progress:      g.Progress(),
			ProgressLabel: g.ProgressLabel(),
			Current:       FormatINR(g.CurrentAmount),
			Target:        FormatINR(g.TargetAmount),
			CurrentAmount: g.CurrentAmount,
			TargetAmount:  g.TargetAmount,
		})
	}
	return cards
}

// BudgetLine is one bucket of the monthly budget split.
type BudgetLine struct {
	Label   string  `json:"label"`
	Percent float64 `json:"percent"`
	Amount  string  `json:"amount"`
}

// BudgetBreakdown splits the profile salary by its needs/wants/savings
// percentages.
func BudgetBreakdown(p *models.UserProfile) []BudgetLine {
	if p == nil {
		return nil
	}
	salary := decimal.NewFromFloat(p.Salary)
	line := func(label string, pct float64) BudgetLine {
		amount, _ := salary.Mul(decimal.NewFromFloat(pct)).Div(decimal.NewFromInt(100)).Float64()
		return BudgetLine{Label: label, Percent: pct, Amount: FormatINR(amount)}
	}
	return []BudgetLine{
		line("Needs", p.Budget.Needs),
		line("Wants", p.Budget.Wants),
		line("Savings", p.Budget.Savings),
	}
}

// ExpenseTotal sums expense amounts.
func ExpenseTotal(expenses []models.Expense) float64 {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(decimal.NewFromFloat(e.Amount))
	}
	f, _ := total.Float64()
	return f
}
