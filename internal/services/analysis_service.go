package services

import (
	"context"
	"time"

	"finboard/internal/analyzer"
	apperrors "finboard/internal/errors"
	"finboard/internal/logger"
	"finboard/internal/models"
)

// analysisService derives the spending analysis and advice. Results are
// computed per call and never stored.
type analysisService struct {
	profiles ProfileServicer
	expenses ExpenseServicer
	analyzer analyzer.Analyzer
	timeout  time.Duration
}

// NewAnalysisService creates a new AnalysisServicer. Every analyzer call is
// bounded by timeout on top of the caller's context.
func NewAnalysisService(profiles ProfileServicer, expenses ExpenseServicer, a analyzer.Analyzer, timeout time.Duration) AnalysisServicer {
	return &analysisService{profiles: profiles, expenses: expenses, analyzer: a, timeout: timeout}
}

func (s *analysisService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// Recompute runs the spending analysis. It returns nil without calling the
// analyzer unless profile is present and expenses is non-empty, and nil when
// the analyzer fails; there are no partial results.
func (s *analysisService) Recompute(ctx context.Context, profile *models.UserProfile, expenses []models.Expense) *models.AnalysisResult {
	if profile == nil || len(expenses) == 0 {
		return nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	result, err := s.analyzer.AnalyzeSpending(ctx, models.NewAnalysisRequest(expenses, profile.Salary))
	if err != nil {
		logger.Get().Errorw("failed to run analysis", "error", err, "user_id", profile.UID, "expenses", len(expenses))
		return nil
	}
	return result
}

// Analyze loads the profile and expenses of uid and recomputes the analysis.
// A profile that cannot be loaded degrades the whole view to nulls.
func (s *analysisService) Analyze(ctx context.Context, uid string) *AnalysisView {
	view, err := s.load(ctx, uid)
	if err != nil {
		logger.Get().Warnw("failed to load profile for analysis", "error", err, "user_id", uid)
		return &AnalysisView{}
	}
	return view
}

// load is Analyze with the profile error kept. Missing expenses only leave
// the analysis empty.
func (s *analysisService) load(ctx context.Context, uid string) (*AnalysisView, error) {
	profile, err := s.profiles.GetProfile(ctx, uid)
	if err != nil {
		return nil, err
	}

	expenses, err := s.expenses.AllExpenses(ctx, uid)
	if err != nil {
		logger.Get().Warnw("failed to load expenses for analysis", "error", err, "user_id", uid)
		return &AnalysisView{Profile: profile}, nil
	}

	return &AnalysisView{Profile: profile, Analysis: s.Recompute(ctx, profile, expenses)}, nil
}

// Advise analyses uid's spending and generates advice from it. Profile load
// errors are returned as the profile service reported them.
func (s *analysisService) Advise(ctx context.Context, uid, question string) (*models.Advice, error) {
	view, err := s.load(ctx, uid)
	if err != nil {
		return nil, err
	}
	return s.AdviseFrom(ctx, view, question)
}

// AdviseFrom generates advice from an analysis the caller already holds, so
// the advice and the analysis shown next to it are the same run.
func (s *analysisService) AdviseFrom(ctx context.Context, view *AnalysisView, question string) (*models.Advice, error) {
	if view == nil || view.Profile == nil {
		return nil, apperrors.ErrProfileNotFound
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	advice, err := s.analyzer.GenerateAdvice(ctx, models.AdviceRequest{
		Salary:           view.Profile.Salary,
		TaxRegime:        view.Profile.TaxRegime,
		Budget:           view.Profile.Budget,
		SpendingAnalysis: view.Analysis,
		Question:         question,
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrAdviceUnavailable, err)
	}
	return advice, nil
}
