package services

import (
	"context"
	"testing"

	"finboard/internal/models"
	"finboard/internal/session"
	"finboard/internal/testutil"
)

func TestBootstrap(t *testing.T) {
	ctx := context.Background()

	t.Run("creates_defaults_once", func(t *testing.T) {
		st, db := testutil.SetupTestStore(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProfileService(st)
		id := session.Identity{UID: "u1", Email: "u1@example.com", Name: "Asha"}

		first, created, err := svc.Bootstrap(ctx, id)
		testutil.AssertNoError(t, err)
		if !created {
			t.Error("expected first bootstrap to create the profile")
		}

		second, created, err := svc.Bootstrap(ctx, id)
		testutil.AssertNoError(t, err)
		if created {
			t.Error("expected second bootstrap not to create a profile")
		}

		var count int64
		db.Model(&models.UserProfile{}).Where("uid = ?", "u1").Count(&count)
		if count != 1 {
			t.Fatalf("expected exactly 1 profile, got %d", count)
		}

		for _, p := range []*models.UserProfile{first, second} {
			if p.Salary != 50000 {
				t.Errorf("expected salary 50000, got %v", p.Salary)
			}
			if p.TaxRegime != models.TaxRegimeNew {
				t.Errorf("expected tax regime new, got %s", p.TaxRegime)
			}
			if p.Budget != (models.BudgetSplit{Needs: 50, Wants: 30, Savings: 20}) {
				t.Errorf("expected 50/30/20 budget, got %+v", p.Budget)
			}
		}
		if second.Email != "u1@example.com" || second.Name != "Asha" {
			t.Errorf("expected identity fields to be stored, got %+v", second)
		}
	})

	t.Run("never_downgrades_existing_profile", func(t *testing.T) {
		st, db := testutil.SetupTestStore(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProfileService(st)

		existing := testutil.CreateTestProfile(t, db, "u2")
		db.Model(existing).Updates(map[string]interface{}{"salary": 120000, "tax_regime": "old"})

		profile, created, err := svc.Bootstrap(ctx, session.Identity{UID: "u2"})
		testutil.AssertNoError(t, err)
		if created {
			t.Error("expected existing profile to be kept")
		}
		if profile.Salary != 120000 || profile.TaxRegime != models.TaxRegimeOld {
			t.Errorf("expected stored values to survive, got salary %v regime %s", profile.Salary, profile.TaxRegime)
		}
	})

	t.Run("concurrent_writer_wins", func(t *testing.T) {
		st, db := testutil.SetupTestStore(t)
		defer testutil.TeardownTestDB(t, db)

		// The profile appears between the read and the create-if-absent write.
		racing := &racingProfiles{Profiles: st, onFirstMiss: func() {
			p := models.NewDefaultProfile("u3", "", "", "")
			p.Salary = 99000
			db.Create(p)
		}}
		svc := NewProfileService(racing)

		profile, created, err := svc.Bootstrap(ctx, session.Identity{UID: "u3"})
		testutil.AssertNoError(t, err)
		if created {
			t.Error("expected the concurrent document to be kept")
		}
		if profile.Salary != 99000 {
			t.Errorf("expected concurrent salary 99000, got %v", profile.Salary)
		}
	})

	t.Run("empty_uid", func(t *testing.T) {
		st, db := testutil.SetupTestStore(t)
		defer testutil.TeardownTestDB(t, db)

		_, _, err := NewProfileService(st).Bootstrap(ctx, session.Identity{})
		testutil.AssertAppError(t, err, "UNAUTHORIZED")
	})
}

func TestGetProfile(t *testing.T) {
	st, db := testutil.SetupTestStore(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewProfileService(st)

	_, err := svc.GetProfile(context.Background(), "missing")
	testutil.AssertAppError(t, err, "PROFILE_NOT_FOUND")

	testutil.CreateTestProfile(t, db, "u1")
	profile, err := svc.GetProfile(context.Background(), "u1")
	testutil.AssertNoError(t, err)
	if profile.UID != "u1" {
		t.Errorf("expected uid u1, got %s", profile.UID)
	}
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		st, db := testutil.SetupTestStore(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProfileService(st)
		testutil.CreateTestProfile(t, db, "u1")

		salary := 80000.0
		regime := models.TaxRegimeOld
		budget := models.BudgetSplit{Needs: 40, Wants: 30, Savings: 30}
		_, err := svc.UpdateProfile(ctx, "u1", ProfileUpdate{Salary: &salary, TaxRegime: &regime, Budget: &budget})
		testutil.AssertNoError(t, err)

		stored, err := svc.GetProfile(ctx, "u1")
		testutil.AssertNoError(t, err)
		if stored.Salary != 80000 || stored.TaxRegime != models.TaxRegimeOld || stored.Budget != budget {
			t.Errorf("update was not persisted: %+v", stored)
		}
	})

	t.Run("budget_must_total_100", func(t *testing.T) {
		st, db := testutil.SetupTestStore(t)
		defer testutil.TeardownTestDB(t, db)
		testutil.CreateTestProfile(t, db, "u1")

		budget := models.BudgetSplit{Needs: 50, Wants: 30, Savings: 30}
		_, err := NewProfileService(st).UpdateProfile(ctx, "u1", ProfileUpdate{Budget: &budget})
		testutil.AssertAppError(t, err, "INVALID_BUDGET")
	})

	t.Run("negative_salary", func(t *testing.T) {
		st, db := testutil.SetupTestStore(t)
		defer testutil.TeardownTestDB(t, db)
		testutil.CreateTestProfile(t, db, "u1")

		salary := -1.0
		_, err := NewProfileService(st).UpdateProfile(ctx, "u1", ProfileUpdate{Salary: &salary})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unknown_regime", func(t *testing.T) {
		st, db := testutil.SetupTestStore(t)
		defer testutil.TeardownTestDB(t, db)
		testutil.CreateTestProfile(t, db, "u1")

		regime := models.TaxRegime("flat")
		_, err := NewProfileService(st).UpdateProfile(ctx, "u1", ProfileUpdate{TaxRegime: &regime})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("missing_profile", func(t *testing.T) {
		st, db := testutil.SetupTestStore(t)
		defer testutil.TeardownTestDB(t, db)

		name := "x"
		_, err := NewProfileService(st).UpdateProfile(ctx, "ghost", ProfileUpdate{Name: &name})
		testutil.AssertAppError(t, err, "PROFILE_NOT_FOUND")
	})
}
