package mongostore

import (
	"context"
	"errors"
	"fmt"

	"dancefusion/internal/shared/model"
	"dancefusion/internal/shared/storage"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// wrapError 将 MongoDB 错误转换为领域错误
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return storage.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return storage.ErrDuplicate
	}
	return fmt.Errorf("mongostore: %w", err)
}

// parseID 将路径参数解析为 ObjectID
func parseID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.NilObjectID, storage.ErrInvalidID
	}
	return oid, nil
}

// byID _id 过滤条件
func byID(oid bson.ObjectID) bson.D {
	return bson.D{{Key: "_id", Value: oid}}
}

// findOne 查找单个文档并解码到 result
// 文档不存在时返回 (nil, nil)
func findOne[T any](ctx context.Context, col *mongo.Collection, filter bson.D, opts ...options.Lister[options.FindOneOptions]) (*T, error) {
	var result T
	err := col.FindOne(ctx, filter, opts...).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, wrapError(err)
	}
	return &result, nil
}

// findMany 查找多个文档，按存储返回顺序，不分页
func findMany[T any](ctx context.Context, col *mongo.Collection, filter bson.D, opts ...options.Lister[options.FindOptions]) ([]*T, error) {
	cursor, err := col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, wrapError(err)
	}
	defer cursor.Close(ctx)

	var results []*T
	for cursor.Next(ctx) {
		var item T
		if err := cursor.Decode(&item); err != nil {
			return nil, err
		}
		results = append(results, &item)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	if results == nil {
		results = []*T{}
	}
	return results, nil
}

// insertOne 插入单个文档，oid 由调用方预先生成
func insertOne(ctx context.Context, col *mongo.Collection, oid bson.ObjectID, doc any) (*model.InsertResult, error) {
	res, err := col.InsertOne(ctx, doc)
	if err != nil {
		return nil, wrapError(err)
	}
	return &model.InsertResult{Acknowledged: res.Acknowledged, InsertedID: oid.Hex()}, nil
}

// updateByID 按 _id 执行更新
func updateByID(ctx context.Context, col *mongo.Collection, oid bson.ObjectID, update bson.D, upsert bool) (*model.UpdateResult, error) {
	opts := options.UpdateOne().SetUpsert(upsert)
	res, err := col.UpdateOne(ctx, byID(oid), update, opts)
	if err != nil {
		return nil, wrapError(err)
	}
	return toUpdateResult(res), nil
}

// deleteByID 按 _id 删除，不存在时 DeletedCount=0
func deleteByID(ctx context.Context, col *mongo.Collection, oid bson.ObjectID) (*model.DeleteResult, error) {
	res, err := col.DeleteOne(ctx, byID(oid))
	if err != nil {
		return nil, wrapError(err)
	}
	return &model.DeleteResult{Acknowledged: res.Acknowledged, DeletedCount: res.DeletedCount}, nil
}

func toUpdateResult(res *mongo.UpdateResult) *model.UpdateResult {
	out := &model.UpdateResult{
		Acknowledged:  res.Acknowledged,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
	}
	if oid, ok := res.UpsertedID.(bson.ObjectID); ok {
		hex := oid.Hex()
		out.UpsertedID = &hex
	}
	return out
}
