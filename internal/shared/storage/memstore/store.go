// Package memstore 基于内存的 PersistentStore 实现
//
// 行为与 mongostore 保持一致（ObjectID 校验、upsert、投影、邮箱唯一），
// 用于处理器测试和不依赖 MongoDB 的本地运行（database.driver: memory）。
package memstore

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"

	"dancefusion/internal/shared/model"
	"dancefusion/internal/shared/storage"
)

// Store 内存存储，按插入顺序保存文档
type Store struct {
	mu       sync.RWMutex
	classes  []*model.Class
	users    []*model.User
	selected []*model.SelectedClass
	pingErr  error
}

var _ storage.PersistentStore = (*Store)(nil)

// New 创建空的内存存储
func New() *Store {
	return &Store{}
}

func (s *Store) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pingErr
}

// SetPingErr 设置 Ping 的返回值，用于模拟数据库不可达
func (s *Store) SetPingErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pingErr = err
}

func (s *Store) Close() error {
	return nil
}

func parseID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.NilObjectID, storage.ErrInvalidID
	}
	return oid, nil
}

func inserted(oid bson.ObjectID) *model.InsertResult {
	return &model.InsertResult{Acknowledged: true, InsertedID: oid.Hex()}
}

func matched(modified bool) *model.UpdateResult {
	res := &model.UpdateResult{Acknowledged: true, MatchedCount: 1}
	if modified {
		res.ModifiedCount = 1
	}
	return res
}

func upserted(oid bson.ObjectID) *model.UpdateResult {
	hex := oid.Hex()
	return &model.UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: &hex}
}

// clone 用 copyFn 逐个深拷贝切片元素，返回值与内部状态不共享任何指针或 map
func clone[T any](items []*T, copyFn func(*T) *T) []*T {
	out := make([]*T, 0, len(items))
	for _, item := range items {
		out = append(out, copyFn(item))
	}
	return out
}

func copyClass(c *model.Class) *model.Class {
	cp := *c
	if c.Feedback != nil {
		fb := *c.Feedback
		cp.Feedback = &fb
	}
	return &cp
}

func copyUser(u *model.User) *model.User {
	cp := *u
	return &cp
}

func copySelectedClass(sc *model.SelectedClass) *model.SelectedClass {
	cp := *sc
	if sc.Metadata != nil {
		cp.Metadata = copyValue(sc.Metadata).(map[string]any)
	}
	return &cp
}

// copyValue 深拷贝 JSON 解码得到的值（map、切片、标量）
func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = copyValue(e)
		}
		return m
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = copyValue(e)
		}
		return out
	default:
		return v
	}
}
