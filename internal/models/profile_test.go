package models

import "testing"

func TestNewDefaultProfile(t *testing.T) {
	p := NewDefaultProfile("u1", "u1@example.com", "Asha", "https://img/a.png")
	if p.Salary != 50000 {
		t.Errorf("expected salary 50000, got %v", p.Salary)
	}
	if p.TaxRegime != TaxRegimeNew {
		t.Errorf("expected tax regime new, got %s", p.TaxRegime)
	}
	if p.Budget != (BudgetSplit{Needs: 50, Wants: 30, Savings: 20}) {
		t.Errorf("expected 50/30/20, got %+v", p.Budget)
	}
	if p.Budget.Total() != 100 {
		t.Errorf("expected default budget to total 100, got %v", p.Budget.Total())
	}
}
