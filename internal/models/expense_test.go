package models

import (
	"testing"
	"time"
)

func TestExpenseToAnalysis(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	e := Expense{
		Base:        Base{ID: "e1"},
		UserID:      "u1",
		Date:        time.Date(2024, 3, 5, 15, 0, 0, 123456789, ist),
		Amount:      420,
		Category:    "Food",
		Description: "Dinner",
	}

	got := e.ToAnalysis()
	if got.Date != "2024-03-05T09:30:00.123Z" {
		t.Errorf("expected UTC millisecond ISO date, got %s", got.Date)
	}
	if got.ID != "e1" || got.Amount != 420 || got.Category != "Food" || got.Description != "Dinner" {
		t.Errorf("unexpected wire expense %+v", got)
	}
}

func TestNewAnalysisRequest(t *testing.T) {
	req := NewAnalysisRequest(nil, 50000)
	if req.Expenses == nil || len(req.Expenses) != 0 {
		t.Errorf("expected empty non-nil expenses, got %v", req.Expenses)
	}
	if req.Income != 50000 {
		t.Errorf("expected income 50000, got %v", req.Income)
	}
}
