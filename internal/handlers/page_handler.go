package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"finboard/internal/dashboard"
	apperrors "finboard/internal/errors"
	"finboard/internal/logger"
	"finboard/internal/models"
	"finboard/internal/pagination"
	"finboard/internal/services"
	"finboard/internal/session"
)

const (
	recentExpenses = 5
	maxQuestionLen = 500
)

// PageHandler renders the server-side pages of the dashboard.
type PageHandler struct {
	accountService  services.AccountServicer
	profileService  services.ProfileServicer
	goalService     services.GoalServicer
	expenseService  services.ExpenseServicer
	analysisService services.AnalysisServicer
	auditService    services.AuditServicer
	tokens          TokenIssuer
	secureCookie    bool
}

// PageDeps groups what the pages need.
type PageDeps struct {
	Accounts     services.AccountServicer
	Profiles     services.ProfileServicer
	Goals        services.GoalServicer
	Expenses     services.ExpenseServicer
	Analysis     services.AnalysisServicer
	Audit        services.AuditServicer
	Tokens       TokenIssuer
	SecureCookie bool
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(deps PageDeps) *PageHandler {
	return &PageHandler{
		accountService:  deps.Accounts,
		profileService:  deps.Profiles,
		goalService:     deps.Goals,
		expenseService:  deps.Expenses,
		analysisService: deps.Analysis,
		auditService:    deps.Audit,
		tokens:          deps.Tokens,
		secureCookie:    deps.SecureCookie,
	}
}

// pageBase is shared by every page template.
type pageBase struct {
	Title  string
	User   *session.Identity
	Notice *dashboard.Notice
}

func (h *PageHandler) base(c *gin.Context, title string) pageBase {
	return pageBase{Title: title, User: getSession(c).Identity}
}

// userMessage returns the text shown for err on a page.
func userMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return apperrors.ErrInternalServer.Message
}

// Loading is shown while the session cannot be resolved yet. The page
// reloads itself.
func (h *PageHandler) Loading(c *gin.Context) {
	c.HTML(http.StatusServiceUnavailable, "loading.html", nil)
}

// Home sends visitors to the dashboard; the guard there decides the rest.
func (h *PageHandler) Home(c *gin.Context) {
	c.Redirect(http.StatusFound, "/dashboard")
}

type loginPage struct {
	pageBase
	Email string
	Error string
}

// LoginForm renders the sign-in form. Signed-in users go to the dashboard.
func (h *PageHandler) LoginForm(c *gin.Context) {
	if getSession(c).Status == session.Authenticated {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.HTML(http.StatusOK, "login.html", loginPage{pageBase: h.base(c, "Sign in")})
}

// Login checks the submitted credentials and sets the session cookie.
func (h *PageHandler) Login(c *gin.Context) {
	email := c.PostForm("email")
	account, err := h.accountService.AttemptLogin(c.Request.Context(), email, c.PostForm("password"))
	if err != nil {
		status := http.StatusUnauthorized
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			status = appErr.StatusCode
		}
		c.HTML(status, "login.html", loginPage{pageBase: h.base(c, "Sign in"), Email: email, Error: userMessage(err)})
		return
	}

	resp, err := signIn(c.Request.Context(), h.tokens, h.profileService, account)
	if err != nil {
		logger.Get().Errorw("failed to issue session token", "error", err, "user_id", account.UID)
		c.HTML(http.StatusInternalServerError, "login.html", loginPage{pageBase: h.base(c, "Sign in"), Email: email, Error: userMessage(err)})
		return
	}

	h.auditService.Log(c.Request.Context(), account.UID, "LOGIN", "account", account.UID, c.ClientIP(), nil)

	maxAge := int(time.Until(resp.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, resp.Token, maxAge, "/", "", h.secureCookie, true)
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

// Logout clears the session cookie.
func (h *PageHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, "", -1, "/", "", h.secureCookie, true)
	c.Redirect(http.StatusSeeOther, session.LoginPath)
}

type dashboardPage struct {
	pageBase
	Profile      *models.UserProfile
	ProfileError string
	Budget       []dashboard.BudgetLine
	Goals        []dashboard.GoalCard
	Expenses     []models.Expense
	ExpenseTotal float64
}

// Dashboard renders the profile, goals and recent expenses. Each section is
// fetched on its own; a failed fetch leaves its section empty.
func (h *PageHandler) Dashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.Redirect(http.StatusFound, session.LoginPath)
		return
	}
	ctx := c.Request.Context()
	data := dashboardPage{pageBase: h.base(c, "Dashboard")}

	if profile, err := h.profileService.GetProfile(ctx, userID); err != nil {
		logger.Get().Warnw("dashboard: failed to load profile", "error", err, "user_id", userID)
		data.ProfileError = userMessage(err)
	} else {
		data.Profile = profile
		data.Budget = dashboard.BudgetBreakdown(profile)
	}

	if goals, err := h.goalService.ListGoals(ctx, userID); err != nil {
		logger.Get().Warnw("dashboard: failed to load goals", "error", err, "user_id", userID)
	} else {
		data.Goals = dashboard.NewGoalCards(goals)
	}

	if recent, err := h.expenseService.ListExpenses(ctx, userID, pagination.PageRequest{Page: 1, PageSize: recentExpenses}); err != nil {
		logger.Get().Warnw("dashboard: failed to load expenses", "error", err, "user_id", userID)
	} else {
		data.Expenses = recent.Data
	}
	if all, err := h.expenseService.AllExpenses(ctx, userID); err == nil {
		data.ExpenseTotal = dashboard.ExpenseTotal(all)
	}

	c.HTML(http.StatusOK, "dashboard.html", data)
}

type goalsPage struct {
	pageBase
	Goals     []dashboard.GoalCard
	ConfirmID string
	Error     string
}

// GoalForm is the add/edit goal form.
type GoalForm struct {
	Name          string  `form:"name" binding:"required,not_blank,max=100"`
	Category      string  `form:"category" binding:"max=50"`
	TargetAmount  float64 `form:"target_amount" binding:"gte=0"`
	CurrentAmount float64 `form:"current_amount" binding:"gte=0"`
}

func (f GoalForm) input() services.GoalInput {
	return services.GoalInput{
		Name:          f.Name,
		Category:      f.Category,
		TargetAmount:  f.TargetAmount,
		CurrentAmount: f.CurrentAmount,
	}
}

// goalList binds a dashboard.GoalList to the page: its refresh re-reads the
// user's goals into *goals.
func (h *PageHandler) goalList(userID string, goals *[]models.SavingsGoal, refreshed *bool) *dashboard.GoalList {
	return dashboard.NewGoalList(h.goalService, func(ctx context.Context) error {
		list, err := h.goalService.ListGoals(ctx, userID)
		if err != nil {
			return err
		}
		*goals, *refreshed = list, true
		return nil
	})
}

// renderGoals renders the goals page. When no refresh produced a list the
// page reads one itself.
func (h *PageHandler) renderGoals(c *gin.Context, status int, userID string, data goalsPage, goals []models.SavingsGoal, refreshed bool) {
	if !refreshed {
		list, err := h.goalService.ListGoals(c.Request.Context(), userID)
		if err != nil {
			logger.Get().Warnw("goals page: failed to load goals", "error", err, "user_id", userID)
			if data.Error == "" {
				data.Error = userMessage(err)
			}
		}
		goals = list
	}
	data.Goals = dashboard.NewGoalCards(goals)
	c.HTML(status, "goals.html", data)
}

// Goals renders the goal list with add, edit and delete forms.
func (h *PageHandler) Goals(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.Redirect(http.StatusFound, session.LoginPath)
		return
	}
	h.renderGoals(c, http.StatusOK, userID, goalsPage{pageBase: h.base(c, "Savings goals")}, nil, false)
}

// CreateGoal handles the add form.
func (h *PageHandler) CreateGoal(c *gin.Context) {
	h.saveGoal(c, "")
}

// UpdateGoal handles the edit form of one goal.
func (h *PageHandler) UpdateGoal(c *gin.Context) {
	goalID, err := parsePathID(c, "id")
	if err != nil {
		userID, _ := getUserID(c)
		data := goalsPage{pageBase: h.base(c, "Savings goals"), Error: userMessage(err)}
		h.renderGoals(c, http.StatusBadRequest, userID, data, nil, false)
		return
	}
	h.saveGoal(c, goalID)
}

func (h *PageHandler) saveGoal(c *gin.Context, goalID string) {
	userID, err := getUserID(c)
	if err != nil {
		c.Redirect(http.StatusFound, session.LoginPath)
		return
	}
	ctx := c.Request.Context()
	data := goalsPage{pageBase: h.base(c, "Savings goals")}

	var form GoalForm
	if err := c.ShouldBind(&form); err != nil {
		data.Notice = dashboard.Failure("Please check the goal details.")
		h.renderGoals(c, http.StatusBadRequest, userID, data, nil, false)
		return
	}

	var (
		goal    *models.SavingsGoal
		action  = "CREATE_GOAL"
		message = dashboard.GoalCreatedMessage
	)
	if goalID == "" {
		goal, err = h.goalService.CreateGoal(ctx, userID, form.input())
	} else {
		goal, err = h.goalService.UpdateGoal(ctx, userID, goalID, form.input())
		action, message = "UPDATE_GOAL", dashboard.GoalUpdatedMessage
	}
	if err != nil {
		data.Notice = dashboard.Failure(userMessage(err))
		h.renderGoals(c, statusOf(err), userID, data, nil, false)
		return
	}

	h.auditService.Log(ctx, userID, action, "savings_goal", goal.ID, c.ClientIP(),
		map[string]interface{}{"name": goal.Name, "target_amount": goal.TargetAmount, "current_amount": goal.CurrentAmount})

	var (
		goals     []models.SavingsGoal
		refreshed bool
	)
	data.Notice = h.goalList(userID, &goals, &refreshed).Saved(ctx, userID, message)
	h.renderGoals(c, http.StatusOK, userID, data, goals, refreshed)
}

// DeleteGoal handles the delete form. The first submit asks for
// confirmation; only a submit carrying confirm=yes deletes.
func (h *PageHandler) DeleteGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.Redirect(http.StatusFound, session.LoginPath)
		return
	}
	ctx := c.Request.Context()
	data := goalsPage{pageBase: h.base(c, "Savings goals")}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		data.Notice = dashboard.Failure(userMessage(err))
		h.renderGoals(c, http.StatusBadRequest, userID, data, nil, false)
		return
	}

	var (
		goals     []models.SavingsGoal
		refreshed bool
	)
	notice, err := h.goalList(userID, &goals, &refreshed).Delete(ctx, userID, goalID, c.PostForm("confirm") == "yes")
	switch {
	case notice == nil && errors.Is(err, apperrors.ErrConfirmationRequired):
		data.ConfirmID = goalID
		h.renderGoals(c, http.StatusOK, userID, data, nil, false)
		return
	case err != nil:
		data.Notice = notice
		h.renderGoals(c, statusOf(err), userID, data, nil, false)
		return
	}

	h.auditService.Log(ctx, userID, "DELETE_GOAL", "savings_goal", goalID, c.ClientIP(), nil)

	data.Notice = notice
	h.renderGoals(c, http.StatusOK, userID, data, goals, refreshed)
}

type advicePage struct {
	pageBase
	Profile  *models.UserProfile
	Analysis *models.AnalysisResult
	Question string
	Advice   *models.Advice
	Error    string
}

// Advice renders the spending analysis of the current expenses.
func (h *PageHandler) Advice(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.Redirect(http.StatusFound, session.LoginPath)
		return
	}
	view := h.analysisService.Analyze(c.Request.Context(), userID)
	c.HTML(http.StatusOK, "advice.html", advicePage{
		pageBase: h.base(c, "Advice"),
		Profile:  view.Profile,
		Analysis: view.Analysis,
	})
}

// AskAdvice renders the analysis together with generated advice.
func (h *PageHandler) AskAdvice(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.Redirect(http.StatusFound, session.LoginPath)
		return
	}
	ctx := c.Request.Context()
	question := []rune(c.PostForm("question"))
	if len(question) > maxQuestionLen {
		question = question[:maxQuestionLen]
	}

	view := h.analysisService.Analyze(ctx, userID)
	data := advicePage{
		pageBase: h.base(c, "Advice"),
		Profile:  view.Profile,
		Analysis: view.Analysis,
		Question: string(question),
	}
	if view.Profile != nil {
		advice, err := h.analysisService.AdviseFrom(ctx, view, string(question))
		if err != nil {
			logger.Get().Warnw("advice page: failed to generate advice", "error", err, "user_id", userID)
			data.Error = userMessage(err)
		}
		data.Advice = advice
	}
	c.HTML(http.StatusOK, "advice.html", data)
}

func statusOf(err error) int {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
