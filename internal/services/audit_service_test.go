package services

import (
	"context"
	"errors"
	"testing"

	"finboard/internal/models"
	"finboard/internal/testutil"
)

func TestAuditLog(t *testing.T) {
	t.Run("persists_and_publishes", func(t *testing.T) {
		st, db := testutil.SetupTestStore(t)
		defer testutil.TeardownTestDB(t, db)
		pub := &recordingPublisher{}
		svc := NewAuditService(st, pub)

		svc.Log(context.Background(), "u1", "DELETE_GOAL", "savings_goal", "g1", "127.0.0.1", map[string]interface{}{"name": "Car"})

		var entries []models.AuditLog
		db.Find(&entries)
		if len(entries) != 1 {
			t.Fatalf("expected 1 audit entry, got %d", len(entries))
		}
		if entries[0].Changes != `{"name":"Car"}` {
			t.Errorf("unexpected changes %q", entries[0].Changes)
		}
		if len(pub.events) != 1 || pub.events[0].Action != "DELETE_GOAL" || pub.events[0].ResourceID != "g1" {
			t.Errorf("unexpected events %+v", pub.events)
		}
	})

	t.Run("publish_failure_is_swallowed", func(t *testing.T) {
		st, db := testutil.SetupTestStore(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuditService(st, &recordingPublisher{err: errors.New("broker down")})

		svc.Log(context.Background(), "u1", "UPDATE_PROFILE", "user_profile", "u1", "", nil)

		var count int64
		db.Model(&models.AuditLog{}).Count(&count)
		if count != 1 {
			t.Errorf("expected entry to be stored despite publish failure, got %d", count)
		}
	})

	t.Run("nil_publisher_defaults_to_nop", func(t *testing.T) {
		st, db := testutil.SetupTestStore(t)
		defer testutil.TeardownTestDB(t, db)

		NewAuditService(st, nil).Log(context.Background(), "u1", "CREATE_GOAL", "savings_goal", "g1", "", nil)
	})
}
