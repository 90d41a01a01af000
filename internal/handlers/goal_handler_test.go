package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "finboard/internal/errors"
	"finboard/internal/models"
	"finboard/internal/services"
)

func setupGoalRouter(handler *GoalHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUID))
	auth.GET("/goals", handler.ListGoals)
	auth.POST("/goals", handler.CreateGoal)
	auth.GET("/goals/:id", handler.GetGoal)
	auth.PUT("/goals/:id", handler.UpdateGoal)
	auth.DELETE("/goals/:id", handler.DeleteGoal)
	return r
}

func TestGoalHandler_ListGoals(t *testing.T) {
	svc := &mockGoalService{
		listGoalsFn: func(uid string) ([]models.SavingsGoal, error) {
			if uid != testUID {
				t.Errorf("expected uid %s, got %s", testUID, uid)
			}
			return []models.SavingsGoal{
				{Base: models.Base{ID: testGoalID}, UserID: uid, Name: "Car", TargetAmount: 10000, CurrentAmount: 2500},
			}, nil
		},
	}
	rec := doRequest(setupGoalRouter(NewGoalHandler(svc, &mockAuditService{})), "GET", "/goals", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	goals := parseJSON(t, rec)["goals"].([]interface{})
	if len(goals) != 1 {
		t.Fatalf("expected 1 goal, got %d", len(goals))
	}
	goal := goals[0].(map[string]interface{})
	if goal["progress_label"] != "25%" || goal["progress"].(float64) != 25 {
		t.Errorf("unexpected progress %v / %v", goal["progress"], goal["progress_label"])
	}
	if goal["name"] != "Car" {
		t.Errorf("expected embedded goal fields, got %v", goal)
	}
}

func TestGoalHandler_GetGoal(t *testing.T) {
	t.Run("returns 400 on invalid id", func(t *testing.T) {
		rec := doRequest(setupGoalRouter(NewGoalHandler(&mockGoalService{}, &mockAuditService{})), "GET", "/goals/abc", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 404 for another user's goal", func(t *testing.T) {
		svc := &mockGoalService{
			getGoalFn: func(string, string) (*models.SavingsGoal, error) { return nil, apperrors.ErrGoalNotFound },
		}
		rec := doRequest(setupGoalRouter(NewGoalHandler(svc, &mockAuditService{})), "GET", "/goals/"+testGoalID, "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "GOAL_NOT_FOUND")
	})
}

func TestGoalHandler_CreateGoal(t *testing.T) {
	t.Run("returns the created record", func(t *testing.T) {
		var got services.GoalInput
		svc := &mockGoalService{
			createGoalFn: func(uid string, input services.GoalInput) (*models.SavingsGoal, error) {
				got = input
				return &models.SavingsGoal{Base: models.Base{ID: testGoalID}, UserID: uid, Name: input.Name,
					TargetAmount: input.TargetAmount, CurrentAmount: input.CurrentAmount}, nil
			},
		}
		audit := &mockAuditService{}
		rec := doRequest(setupGoalRouter(NewGoalHandler(svc, audit)), "POST", "/goals",
			`{"name":"Trip","category":"Travel","target_amount":50000,"current_amount":5000}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		goal := parseJSON(t, rec)["goal"].(map[string]interface{})
		if goal["id"] != testGoalID || goal["progress_label"] != "10%" {
			t.Errorf("unexpected goal %v", goal)
		}
		if got.Category != "Travel" {
			t.Errorf("expected category to be passed through, got %q", got.Category)
		}
		if svc.listCalls != 0 {
			t.Error("create must not refetch the list")
		}
		if actions := audit.actions(); len(actions) != 1 || actions[0] != "CREATE_GOAL" {
			t.Errorf("expected CREATE_GOAL audit entry, got %v", actions)
		}
	})

	for _, body := range []string{
		`{"target_amount":100}`,
		`{"name":"   ","target_amount":100}`,
		`{"name":"Car","target_amount":-5}`,
	} {
		t.Run("returns 400 for "+body, func(t *testing.T) {
			rec := doRequest(setupGoalRouter(NewGoalHandler(&mockGoalService{}, &mockAuditService{})), "POST", "/goals", body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
		})
	}
}

func TestGoalHandler_UpdateGoal(t *testing.T) {
	svc := &mockGoalService{
		updateGoalFn: func(uid, goalID string, input services.GoalInput) (*models.SavingsGoal, error) {
			return &models.SavingsGoal{Base: models.Base{ID: goalID}, UserID: uid, Name: input.Name,
				TargetAmount: input.TargetAmount, CurrentAmount: input.CurrentAmount}, nil
		},
	}
	rec := doRequest(setupGoalRouter(NewGoalHandler(svc, &mockAuditService{})), "PUT", "/goals/"+testGoalID,
		`{"name":"Car","target_amount":1000,"current_amount":1500}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	goal := parseJSON(t, rec)["goal"].(map[string]interface{})
	if goal["progress_label"] != "100%" {
		t.Errorf("expected progress to clamp at 100%%, got %v", goal["progress_label"])
	}
}

func TestGoalHandler_DeleteGoal(t *testing.T) {
	t.Run("without confirmation nothing is deleted or refreshed", func(t *testing.T) {
		svc := &mockGoalService{}
		rec := doRequest(setupGoalRouter(NewGoalHandler(svc, &mockAuditService{})), "DELETE", "/goals/"+testGoalID, "")

		if rec.Code != http.StatusPreconditionRequired {
			t.Fatalf("expected 428, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "CONFIRMATION_REQUIRED")
		if svc.deleteCalls != 0 || svc.listCalls != 0 {
			t.Errorf("expected no delete and no refresh, got %d deletes, %d lists", svc.deleteCalls, svc.listCalls)
		}
	})

	t.Run("confirmed delete returns the refreshed list", func(t *testing.T) {
		svc := &mockGoalService{
			listGoalsFn: func(uid string) ([]models.SavingsGoal, error) {
				return []models.SavingsGoal{{Base: models.Base{ID: "other"}, UserID: uid, Name: "House"}}, nil
			},
		}
		audit := &mockAuditService{}
		rec := doRequest(setupGoalRouter(NewGoalHandler(svc, audit)), "DELETE", "/goals/"+testGoalID+"?confirm=true", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["message"] != "Savings goal deleted." {
			t.Errorf("unexpected message %v", result["message"])
		}
		if goals := result["goals"].([]interface{}); len(goals) != 1 {
			t.Errorf("expected refreshed list of 1, got %d", len(goals))
		}
		if svc.deleteCalls != 1 || svc.listCalls != 1 {
			t.Errorf("expected one delete and one refresh, got %d deletes, %d lists", svc.deleteCalls, svc.listCalls)
		}
		if actions := audit.actions(); len(actions) != 1 || actions[0] != "DELETE_GOAL" {
			t.Errorf("expected DELETE_GOAL audit entry, got %v", actions)
		}
	})

	t.Run("failed refresh after delete leaves the list out", func(t *testing.T) {
		svc := &mockGoalService{
			listGoalsFn: func(string) ([]models.SavingsGoal, error) { return nil, errors.New("connection reset") },
		}
		audit := &mockAuditService{}
		rec := doRequest(setupGoalRouter(NewGoalHandler(svc, audit)), "DELETE", "/goals/"+testGoalID+"?confirm=true", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 for the completed delete, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["message"] != "Savings goal deleted." {
			t.Errorf("unexpected message %v", result["message"])
		}
		if goals, ok := result["goals"]; ok {
			t.Errorf("expected no goals field when the refresh failed, got %v", goals)
		}
		if svc.deleteCalls != 1 || svc.listCalls != 1 {
			t.Errorf("expected one delete and one refresh attempt, got %d deletes, %d lists", svc.deleteCalls, svc.listCalls)
		}
		if actions := audit.actions(); len(actions) != 1 || actions[0] != "DELETE_GOAL" {
			t.Errorf("expected DELETE_GOAL audit entry, got %v", actions)
		}
	})

	t.Run("missing goal reports the error and does not refresh", func(t *testing.T) {
		svc := &mockGoalService{
			deleteGoalFn: func(string, string) error { return apperrors.ErrGoalNotFound },
		}
		audit := &mockAuditService{}
		rec := doRequest(setupGoalRouter(NewGoalHandler(svc, audit)), "DELETE", "/goals/"+testGoalID+"?confirm=true", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "GOAL_NOT_FOUND")
		if svc.listCalls != 0 {
			t.Error("refresh must not run after a failed delete")
		}
		if len(audit.actions()) != 0 {
			t.Error("failed delete must not be audited")
		}
	})
}
