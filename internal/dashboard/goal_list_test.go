package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "finboard/internal/errors"
)

type fakeDeleter struct {
	calls int
	err   error
}

func (f *fakeDeleter) DeleteGoal(context.Context, string, string) error {
	f.calls++
	return f.err
}

type refreshCounter struct{ calls int }

func (r *refreshCounter) refresh(context.Context) error {
	r.calls++
	return nil
}

func TestGoalList_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("unconfirmed does nothing", func(t *testing.T) {
		deleter, counter := &fakeDeleter{}, &refreshCounter{}
		list := NewGoalList(deleter, counter.refresh)

		notice, err := list.Delete(ctx, "u1", "g1", false)
		assert.Nil(t, notice)
		assert.ErrorIs(t, err, apperrors.ErrConfirmationRequired)
		assert.Zero(t, deleter.calls)
		assert.Zero(t, counter.calls)
	})

	t.Run("success refreshes once", func(t *testing.T) {
		deleter, counter := &fakeDeleter{}, &refreshCounter{}
		list := NewGoalList(deleter, counter.refresh)

		notice, err := list.Delete(ctx, "u1", "g1", true)
		require.NoError(t, err)
		assert.Equal(t, 1, deleter.calls)
		assert.Equal(t, 1, counter.calls)
		assert.Equal(t, &Notice{Title: "Success", Description: "Savings goal deleted.", Variant: VariantDefault}, notice)
	})

	t.Run("missing goal does not refresh", func(t *testing.T) {
		deleter, counter := &fakeDeleter{err: apperrors.ErrGoalNotFound}, &refreshCounter{}
		list := NewGoalList(deleter, counter.refresh)

		notice, err := list.Delete(ctx, "u1", "nope", true)
		assert.ErrorIs(t, err, apperrors.ErrGoalNotFound)
		assert.Equal(t, 1, deleter.calls)
		assert.Zero(t, counter.calls)
		require.NotNil(t, notice)
		assert.Equal(t, VariantDestructive, notice.Variant)
		assert.Equal(t, "Savings goal not found", notice.Description)
	})

	t.Run("unexpected error uses fallback text", func(t *testing.T) {
		deleter, counter := &fakeDeleter{err: errors.New("dial tcp 10.0.0.1:5432: refused")}, &refreshCounter{}
		list := NewGoalList(deleter, counter.refresh)

		notice, err := list.Delete(ctx, "u1", "g1", true)
		assert.Error(t, err)
		assert.Zero(t, counter.calls)
		assert.Equal(t, "Failed to delete goal.", notice.Description)
	})

	t.Run("refresh failure keeps success notice", func(t *testing.T) {
		list := NewGoalList(&fakeDeleter{}, func(context.Context) error { return errors.New("offline") })

		notice, err := list.Delete(ctx, "u1", "g1", true)
		require.NoError(t, err)
		assert.Equal(t, GoalDeletedMessage, notice.Description)
	})
}

func TestGoalList_Saved(t *testing.T) {
	counter := &refreshCounter{}
	list := NewGoalList(&fakeDeleter{}, counter.refresh)

	notice := list.Saved(context.Background(), "u1", GoalUpdatedMessage)
	assert.Equal(t, 1, counter.calls)
	assert.Equal(t, GoalUpdatedMessage, notice.Description)
}
