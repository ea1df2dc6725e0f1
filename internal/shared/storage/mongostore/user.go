package mongostore

import (
	"context"
	"errors"

	"dancefusion/internal/shared/model"
	"dancefusion/internal/shared/storage"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ============================================================================
// UserStore
// ============================================================================

func (s *Store) ListUsers(ctx context.Context) (users []*model.User, err error) {
	defer s.track(ctx, "find", ColUsers)(&err)
	return findMany[model.User](ctx, s.col(ColUsers), bson.D{})
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (user *model.User, err error) {
	defer s.track(ctx, "findOne", ColUsers)(&err)
	return findOne[model.User](ctx, s.col(ColUsers), bson.D{{Key: "email", Value: email}})
}

// InsertUserIfAbsent 以 email 为条件的 $setOnInsert upsert
//
// 存在性检查与插入在同一条命令中完成；并发插入同一邮箱时
// 唯一索引拒绝后到者，同样视为已存在。
func (s *Store) InsertUserIfAbsent(ctx context.Context, user *model.User) (res *model.InsertResult, inserted bool, err error) {
	defer s.track(ctx, "upsert", ColUsers)(&err)

	user.ID = bson.NewObjectID()
	filter := bson.D{{Key: "email", Value: user.Email}}
	update := bson.D{{Key: "$setOnInsert", Value: user}}
	opts := options.UpdateOne().SetUpsert(true)

	r, err := s.col(ColUsers).UpdateOne(ctx, filter, update, opts)
	if err != nil {
		err = wrapError(err)
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if r.UpsertedCount == 0 {
		return nil, false, nil
	}
	return &model.InsertResult{Acknowledged: r.Acknowledged, InsertedID: user.ID.Hex()}, true, nil
}

func (s *Store) SetUserRole(ctx context.Context, id string, role model.UserRole) (res *model.UpdateResult, err error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	defer s.track(ctx, "updateOne", ColUsers)(&err)
	set := bson.D{{Key: "$set", Value: bson.D{{Key: "role", Value: string(role)}}}}
	return updateByID(ctx, s.col(ColUsers), oid, set, false)
}
