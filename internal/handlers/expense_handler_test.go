package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"finboard/internal/models"
	"finboard/internal/pagination"
	"finboard/internal/services"
)

func setupExpenseRouter(handler *ExpenseHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUID))
	auth.GET("/expenses", handler.ListExpenses)
	auth.POST("/expenses", handler.CreateExpense)
	return r
}

func TestExpenseHandler_ListExpenses(t *testing.T) {
	t.Run("passes pagination through", func(t *testing.T) {
		var got pagination.PageRequest
		svc := &mockExpenseService{
			listExpensesFn: func(_ string, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
				got = page
				resp := pagination.NewPageResponse([]models.Expense{{Amount: 120, Category: "Food"}}, page, 11)
				return &resp, nil
			},
		}
		rec := doRequest(setupExpenseRouter(NewExpenseHandler(svc, &mockAuditService{})), "GET", "/expenses?page=2&page_size=10", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got.Page != 2 || got.PageSize != 10 {
			t.Errorf("unexpected page request %+v", got)
		}
		result := parseJSON(t, rec)
		if result["total_pages"].(float64) != 2 {
			t.Errorf("expected 2 pages, got %v", result["total_pages"])
		}
		if result["has_next"].(bool) {
			t.Error("expected page 2 of 2 to have no next page")
		}
	})

	t.Run("returns 400 on oversized page", func(t *testing.T) {
		rec := doRequest(setupExpenseRouter(NewExpenseHandler(&mockExpenseService{}, &mockAuditService{})), "GET", "/expenses?page_size=1000", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestExpenseHandler_CreateExpense(t *testing.T) {
	t.Run("returns 201 and keeps an explicit date", func(t *testing.T) {
		var got services.ExpenseInput
		svc := &mockExpenseService{
			createExpenseFn: func(uid string, input services.ExpenseInput) (*models.Expense, error) {
				got = input
				return &models.Expense{Base: models.Base{ID: testGoalID}, UserID: uid, Amount: input.Amount, Category: input.Category, Date: *input.Date}, nil
			},
		}
		audit := &mockAuditService{}
		rec := doRequest(setupExpenseRouter(NewExpenseHandler(svc, audit)), "POST", "/expenses",
			`{"amount":250.5,"category":"Food","description":"Lunch","date":"2024-03-01T12:00:00Z"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Date == nil || !got.Date.Equal(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)) {
			t.Errorf("unexpected date %v", got.Date)
		}
		if actions := audit.actions(); len(actions) != 1 || actions[0] != "CREATE_EXPENSE" {
			t.Errorf("expected CREATE_EXPENSE audit entry, got %v", actions)
		}
	})

	for _, body := range []string{
		`{"amount":0,"category":"Food"}`,
		`{"amount":-3,"category":"Food"}`,
		`{"amount":10}`,
	} {
		t.Run("returns 400 for "+body, func(t *testing.T) {
			rec := doRequest(setupExpenseRouter(NewExpenseHandler(&mockExpenseService{}, &mockAuditService{})), "POST", "/expenses", body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
		})
	}
}
