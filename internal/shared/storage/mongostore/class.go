package mongostore

import (
	"context"

	"dancefusion/internal/shared/model"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ============================================================================
// ClassStore
// ============================================================================

func (s *Store) ListClasses(ctx context.Context) (classes []*model.Class, err error) {
	defer s.track(ctx, "find", ColClasses)(&err)
	return findMany[model.Class](ctx, s.col(ColClasses), bson.D{})
}

func (s *Store) GetClassView(ctx context.Context, id string) (view *model.ClassView, err error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	defer s.track(ctx, "findOne", ColClasses)(&err)

	projection := bson.D{}
	for _, f := range model.ClassViewFields {
		projection = append(projection, bson.E{Key: f, Value: 1})
	}
	opts := options.FindOne().SetProjection(projection)
	return findOne[model.ClassView](ctx, s.col(ColClasses), byID(oid), opts)
}

func (s *Store) InsertClass(ctx context.Context, class *model.Class) (res *model.InsertResult, err error) {
	defer s.track(ctx, "insertOne", ColClasses)(&err)
	class.ID = bson.NewObjectID()
	class.Normalize()
	return insertOne(ctx, s.col(ColClasses), class.ID, class)
}

func (s *Store) UpdateClass(ctx context.Context, id string, update *model.ClassUpdate) (res *model.UpdateResult, err error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	set := classSetFields(update)
	if len(set) == 0 {
		return nil, model.ErrValidation
	}
	defer s.track(ctx, "updateOne", ColClasses)(&err)
	return updateByID(ctx, s.col(ColClasses), oid, classUpsertDoc(set), true)
}

func (s *Store) SetClassFeedback(ctx context.Context, id, feedback string) (res *model.UpdateResult, err error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	defer s.track(ctx, "updateOne", ColClasses)(&err)
	set := bson.D{{Key: "feedback", Value: feedback}}
	return updateByID(ctx, s.col(ColClasses), oid, classUpsertDoc(set), true)
}

func (s *Store) SetClassStatus(ctx context.Context, id string, status model.ClassStatus) (res *model.UpdateResult, err error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	defer s.track(ctx, "updateOne", ColClasses)(&err)
	set := bson.D{{Key: "$set", Value: bson.D{{Key: "status", Value: string(status)}}}}
	return updateByID(ctx, s.col(ColClasses), oid, set, false)
}

// classSetFields 只包含请求中出现的字段，数值字段写入前已转换为 int64/float64
func classSetFields(u *model.ClassUpdate) bson.D {
	set := bson.D{}
	if u.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *u.Name})
	}
	if u.Image != nil {
		set = append(set, bson.E{Key: "image", Value: *u.Image})
	}
	if u.AvailableSeats != nil {
		set = append(set, bson.E{Key: "available_seats", Value: int64(*u.AvailableSeats)})
	}
	if u.Price != nil {
		set = append(set, bson.E{Key: "price", Value: float64(*u.Price)})
	}
	if u.Feedback != nil {
		set = append(set, bson.E{Key: "feedback", Value: *u.Feedback})
	}
	return set
}

// classUpsertDoc upsert 新建的课程默认 pending 状态
func classUpsertDoc(set bson.D) bson.D {
	return bson.D{
		{Key: "$set", Value: set},
		{Key: "$setOnInsert", Value: bson.D{{Key: "status", Value: string(model.ClassStatusPending)}}},
	}
}
