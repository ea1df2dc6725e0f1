package memstore

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"dancefusion/internal/shared/model"
	"dancefusion/internal/shared/storage"
)

func TestClassLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()

	res, err := s.InsertClass(ctx, &model.Class{Name: "Ballet", AvailableSeats: 10, Price: 49.99})
	require.NoError(t, err)
	assert.True(t, res.Acknowledged)

	view, err := s.GetClassView(ctx, res.InsertedID)
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Equal(t, "Ballet", view.Name)

	classes, err := s.ListClasses(ctx)
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, model.ClassStatusPending, classes[0].Status)

	seats := model.FlexInt(5)
	upd, err := s.UpdateClass(ctx, res.InsertedID, &model.ClassUpdate{AvailableSeats: &seats})
	require.NoError(t, err)
	assert.Equal(t, int64(1), upd.MatchedCount)
	assert.Equal(t, int64(1), upd.ModifiedCount)

	// 相同值不计入 modified
	upd, err = s.UpdateClass(ctx, res.InsertedID, &model.ClassUpdate{AvailableSeats: &seats})
	require.NoError(t, err)
	assert.Equal(t, int64(0), upd.ModifiedCount)

	upd, err = s.SetClassStatus(ctx, res.InsertedID, model.ClassStatusDenied)
	require.NoError(t, err)
	assert.Equal(t, int64(1), upd.ModifiedCount)
}

func TestClassUpsert(t *testing.T) {
	s := New()
	ctx := context.Background()
	id := bson.NewObjectID().Hex()

	res, err := s.SetClassFeedback(ctx, id, "great")
	require.NoError(t, err)
	require.NotNil(t, res.UpsertedID)
	assert.Equal(t, id, *res.UpsertedID)

	classes, _ := s.ListClasses(ctx)
	require.Len(t, classes, 1)
	assert.Equal(t, model.ClassStatusPending, classes[0].Status)
	assert.Equal(t, "great", *classes[0].Feedback)

	// 状态接口不 upsert
	res, err = s.SetClassStatus(ctx, bson.NewObjectID().Hex(), model.ClassStatusApproved)
	require.NoError(t, err)
	assert.Zero(t, res.MatchedCount)
	assert.Nil(t, res.UpsertedID)
}

func TestInvalidIDs(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.GetClassView(ctx, "nope")
	assert.ErrorIs(t, err, storage.ErrInvalidID)
	_, err = s.UpdateClass(ctx, "nope", &model.ClassUpdate{})
	assert.ErrorIs(t, err, storage.ErrInvalidID)
	_, err = s.SetUserRole(ctx, "nope", model.UserRoleAdmin)
	assert.ErrorIs(t, err, storage.ErrInvalidID)
	_, err = s.DeleteSelectedClass(ctx, "nope")
	assert.ErrorIs(t, err, storage.ErrInvalidID)

	_, err = s.UpdateClass(ctx, bson.NewObjectID().Hex(), &model.ClassUpdate{})
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestInsertUserIfAbsent_Concurrent(t *testing.T) {
	s := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok, err := s.InsertUserIfAbsent(ctx, &model.User{Email: "same@x.io"})
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	users, _ := s.ListUsers(ctx)
	assert.Len(t, users, 1)
}

func TestSelectedClassDelete(t *testing.T) {
	s := New()
	ctx := context.Background()

	res, err := s.InsertSelectedClass(ctx, &model.SelectedClass{ClassID: bson.NewObjectID().Hex()})
	require.NoError(t, err)

	del, err := s.DeleteSelectedClass(ctx, bson.NewObjectID().Hex())
	require.NoError(t, err)
	assert.Zero(t, del.DeletedCount)

	del, err = s.DeleteSelectedClass(ctx, res.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), del.DeletedCount)

	items, _ := s.ListSelectedClasses(ctx)
	assert.Empty(t, items)
}

func TestReturnedDocumentsAreIsolated(t *testing.T) {
	s := New()
	ctx := context.Background()

	fb := "great"
	res, err := s.InsertClass(ctx, &model.Class{Name: "Ballet", Feedback: &fb})
	require.NoError(t, err)
	fb = "changed by caller"

	classes, err := s.ListClasses(ctx)
	require.NoError(t, err)
	require.Len(t, classes, 1)
	require.NotNil(t, classes[0].Feedback)
	assert.Equal(t, "great", *classes[0].Feedback)
	*classes[0].Feedback = "mutated"

	view, err := s.GetClassView(ctx, res.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, "great", *view.Feedback)

	meta := map[string]any{"level": "beginner", "tags": []any{"a"}, "extra": map[string]any{"k": "v"}}
	_, err = s.InsertSelectedClass(ctx, &model.SelectedClass{ClassID: res.InsertedID, Metadata: meta})
	require.NoError(t, err)
	meta["level"] = "advanced"

	selected, err := s.ListSelectedClasses(ctx)
	require.NoError(t, err)
	require.Len(t, selected, 1)
	selected[0].Metadata["level"] = "mutated"
	selected[0].Metadata["tags"].([]any)[0] = "mutated"
	selected[0].Metadata["extra"].(map[string]any)["k"] = "mutated"

	selected, err = s.ListSelectedClasses(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"level": "beginner", "tags": []any{"a"}, "extra": map[string]any{"k": "v"}}, selected[0].Metadata)
}
