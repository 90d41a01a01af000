package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"finboard/internal/middleware"
	"finboard/internal/models"
	"finboard/internal/pagination"
	"finboard/internal/services"
	"finboard/internal/session"
	"finboard/internal/validator"
)

// --- mock services ---

type mockAccountService struct {
	registerFn     func(email, password, displayName string) (*models.Account, error)
	attemptLoginFn func(email, password string) (*models.Account, error)
}

func (m *mockAccountService) Register(_ context.Context, email, password, displayName string) (*models.Account, error) {
	if m.registerFn != nil {
		return m.registerFn(email, password, displayName)
	}
	return &models.Account{UID: testUID, Email: email, DisplayName: displayName}, nil
}

func (m *mockAccountService) AttemptLogin(_ context.Context, email, password string) (*models.Account, error) {
	if m.attemptLoginFn != nil {
		return m.attemptLoginFn(email, password)
	}
	return &models.Account{UID: testUID, Email: email}, nil
}

type mockProfileService struct {
	bootstrapFn     func(id session.Identity) (*models.UserProfile, bool, error)
	getProfileFn    func(uid string) (*models.UserProfile, error)
	updateProfileFn func(uid string, update services.ProfileUpdate) (*models.UserProfile, error)

	mu         sync.Mutex
	bootstraps []string
}

func (m *mockProfileService) Bootstrap(_ context.Context, id session.Identity) (*models.UserProfile, bool, error) {
	m.mu.Lock()
	m.bootstraps = append(m.bootstraps, id.UID)
	m.mu.Unlock()
	if m.bootstrapFn != nil {
		return m.bootstrapFn(id)
	}
	return models.NewDefaultProfile(id.UID, id.Email, id.Name, id.PhotoURL), true, nil
}

func (m *mockProfileService) GetProfile(_ context.Context, uid string) (*models.UserProfile, error) {
	if m.getProfileFn != nil {
		return m.getProfileFn(uid)
	}
	return models.NewDefaultProfile(uid, "alice@example.com", "Alice", ""), nil
}

func (m *mockProfileService) UpdateProfile(_ context.Context, uid string, update services.ProfileUpdate) (*models.UserProfile, error) {
	if m.updateProfileFn != nil {
		return m.updateProfileFn(uid, update)
	}
	return models.NewDefaultProfile(uid, "", "", ""), nil
}

type mockGoalService struct {
	listGoalsFn  func(uid string) ([]models.SavingsGoal, error)
	getGoalFn    func(uid, goalID string) (*models.SavingsGoal, error)
	createGoalFn func(uid string, input services.GoalInput) (*models.SavingsGoal, error)
	updateGoalFn func(uid, goalID string, input services.GoalInput) (*models.SavingsGoal, error)
	deleteGoalFn func(uid, goalID string) error

	listCalls   int
	deleteCalls int
}

func (m *mockGoalService) ListGoals(_ context.Context, uid string) ([]models.SavingsGoal, error) {
	m.listCalls++
	if m.listGoalsFn != nil {
		return m.listGoalsFn(uid)
	}
	return []models.SavingsGoal{}, nil
}

func (m *mockGoalService) GetGoal(_ context.Context, uid, goalID string) (*models.SavingsGoal, error) {
	if m.getGoalFn != nil {
		return m.getGoalFn(uid, goalID)
	}
	return &models.SavingsGoal{Base: models.Base{ID: goalID}, UserID: uid}, nil
}

func (m *mockGoalService) CreateGoal(_ context.Context, uid string, input services.GoalInput) (*models.SavingsGoal, error) {
	if m.createGoalFn != nil {
		return m.createGoalFn(uid, input)
	}
	return &models.SavingsGoal{Base: models.Base{ID: testGoalID}, UserID: uid, Name: input.Name}, nil
}

func (m *mockGoalService) UpdateGoal(_ context.Context, uid, goalID string, input services.GoalInput) (*models.SavingsGoal, error) {
	if m.updateGoalFn != nil {
		return m.updateGoalFn(uid, goalID, input)
	}
	return &models.SavingsGoal{Base: models.Base{ID: goalID}, UserID: uid, Name: input.Name}, nil
}

func (m *mockGoalService) DeleteGoal(_ context.Context, uid, goalID string) error {
	m.deleteCalls++
	if m.deleteGoalFn != nil {
		return m.deleteGoalFn(uid, goalID)
	}
	return nil
}

type mockExpenseService struct {
	listExpensesFn  func(uid string, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error)
	allExpensesFn   func(uid string) ([]models.Expense, error)
	createExpenseFn func(uid string, input services.ExpenseInput) (*models.Expense, error)
}

func (m *mockExpenseService) ListExpenses(_ context.Context, uid string, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
	if m.listExpensesFn != nil {
		return m.listExpensesFn(uid, page)
	}
	resp := pagination.NewPageResponse([]models.Expense{}, page, 0)
	return &resp, nil
}

func (m *mockExpenseService) AllExpenses(_ context.Context, uid string) ([]models.Expense, error) {
	if m.allExpensesFn != nil {
		return m.allExpensesFn(uid)
	}
	return []models.Expense{}, nil
}

func (m *mockExpenseService) CreateExpense(_ context.Context, uid string, input services.ExpenseInput) (*models.Expense, error) {
	if m.createExpenseFn != nil {
		return m.createExpenseFn(uid, input)
	}
	return &models.Expense{Base: models.Base{ID: testGoalID}, UserID: uid, Amount: input.Amount, Category: input.Category}, nil
}

type mockAnalysisService struct {
	analyzeFn func(uid string) *services.AnalysisView
	adviseFn     func(uid, question string) (*models.Advice, error)
	adviseFromFn func(view *services.AnalysisView, question string) (*models.Advice, error)

	analyzeCalls int
}

func (m *mockAnalysisService) Recompute(context.Context, *models.UserProfile, []models.Expense) *models.AnalysisResult {
	return nil
}

func (m *mockAnalysisService) Analyze(_ context.Context, uid string) *services.AnalysisView {
	m.analyzeCalls++
	if m.analyzeFn != nil {
		return m.analyzeFn(uid)
	}
	return &services.AnalysisView{}
}

func (m *mockAnalysisService) Advise(_ context.Context, uid, question string) (*models.Advice, error) {
	if m.adviseFn != nil {
		return m.adviseFn(uid, question)
	}
	return &models.Advice{Advice: "Save more."}, nil
}

func (m *mockAnalysisService) AdviseFrom(_ context.Context, view *services.AnalysisView, question string) (*models.Advice, error) {
	if m.adviseFromFn != nil {
		return m.adviseFromFn(view, question)
	}
	return &models.Advice{Advice: "Save more."}, nil
}

type auditEntry struct {
	UserID, Action, ResourceType, ResourceID string
}

type mockAuditService struct {
	mu      sync.Mutex
	entries []auditEntry
}

func (m *mockAuditService) Log(_ context.Context, userID, action, resourceType, resourceID, _ string, _ map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, auditEntry{userID, action, resourceType, resourceID})
}

func (m *mockAuditService) actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.Action)
	}
	return out
}

type stubTokens struct {
	err error
}

func (s stubTokens) Issue(id session.Identity) (string, time.Time, error) {
	if s.err != nil {
		return "", time.Time{}, s.err
	}
	return "token-for-" + id.UID, time.Now().Add(time.Hour), nil
}

var (
	_ services.AccountServicer  = (*mockAccountService)(nil)
	_ services.ProfileServicer  = (*mockProfileService)(nil)
	_ services.GoalServicer     = (*mockGoalService)(nil)
	_ services.ExpenseServicer  = (*mockExpenseService)(nil)
	_ services.AnalysisServicer = (*mockAnalysisService)(nil)
	_ services.AuditServicer    = (*mockAuditService)(nil)

	errStore = errors.New("store unavailable")
)

// --- test helpers ---

const (
	testUID    = "uid-alice"
	testGoalID = "0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func injectUserID(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := session.Identity{UID: uid, Email: "alice@example.com", Name: "Alice"}
		c.Set(middleware.SessionKey, session.NewAuthenticated(id))
		c.Set(middleware.UserIDKey, uid)
		c.Set(middleware.IdentityKey, id)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func doForm(r *gin.Engine, path, form string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}
