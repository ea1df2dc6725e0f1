package mongostore

import (
	"context"

	"dancefusion/internal/shared/model"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ============================================================================
// SelectedClassStore
// ============================================================================

func (s *Store) ListSelectedClasses(ctx context.Context) (items []*model.SelectedClass, err error) {
	defer s.track(ctx, "find", ColSelectedClasses)(&err)
	return findMany[model.SelectedClass](ctx, s.col(ColSelectedClasses), bson.D{})
}

func (s *Store) InsertSelectedClass(ctx context.Context, sc *model.SelectedClass) (res *model.InsertResult, err error) {
	defer s.track(ctx, "insertOne", ColSelectedClasses)(&err)
	sc.ID = bson.NewObjectID()
	return insertOne(ctx, s.col(ColSelectedClasses), sc.ID, sc)
}

func (s *Store) DeleteSelectedClass(ctx context.Context, id string) (res *model.DeleteResult, err error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	defer s.track(ctx, "deleteOne", ColSelectedClasses)(&err)
	return deleteByID(ctx, s.col(ColSelectedClasses), oid)
}
