package models

// AnalysisExpense is an expense as sent to the analysis service.
type AnalysisExpense struct {
	ID          string  `json:"id"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description,omitempty"`
	Date        string  `json:"date"`
}

// AnalysisRequest is the input of the spending analysis call.
type AnalysisRequest struct {
	Expenses []AnalysisExpense `json:"expenses"`
	Income   float64           `json:"income"`
}

// NewAnalysisRequest maps stored expenses to the wire shape.
func NewAnalysisRequest(expenses []Expense, income float64) AnalysisRequest {
	wire := make([]AnalysisExpense, 0, len(expenses))
	for _, e := range expenses {
		wire = append(wire, e.ToAnalysis())
	}
	return AnalysisRequest{Expenses: wire, Income: income}
}

// CategorySpend is the analysed share of spending in one category.
type CategorySpend struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// AnalysisResult is the structured output of the spending analysis. It is
// derived on demand and never persisted.
type AnalysisResult struct {
	SpendingSummary     string          `json:"spendingSummary"`
	CategoryBreakdown   []CategorySpend `json:"categoryBreakdown,omitempty"`
	AreasForImprovement []string        `json:"areasForImprovement,omitempty"`
	PotentialSavings    float64         `json:"potentialSavings"`
}

// AdviceRequest is the input of the personalised advice call.
type AdviceRequest struct {
	Salary           float64         `json:"salary"`
	TaxRegime        TaxRegime       `json:"taxRegime"`
	Budget           BudgetSplit     `json:"budget"`
	SpendingAnalysis *AnalysisResult `json:"spendingAnalysis"`
	Question         string          `json:"question,omitempty"`
}

// Advice is the advice text returned by the AI service.
type Advice struct {
	Advice string `json:"advice"`
}
