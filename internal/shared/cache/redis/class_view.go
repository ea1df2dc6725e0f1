// Package redis 课程投影视图缓存操作
package redis

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"dancefusion/internal/shared/cache"
	"dancefusion/internal/shared/model"
)

// GetClassView 读取课程投影视图
func (s *Store) GetClassView(ctx context.Context, id string) (*model.ClassView, error) {
	data, err := s.client.Get(ctx, cache.KeyClassView+id).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var view model.ClassView
	if err := json.Unmarshal(data, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// SetClassView 写入课程投影视图
func (s *Store) SetClassView(ctx context.Context, id string, view *model.ClassView) error {
	data, err := json.Marshal(view)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, cache.KeyClassView+id, data, s.ttl).Err()
}

// DeleteClassView 删除课程投影视图（课程写操作后调用）
func (s *Store) DeleteClassView(ctx context.Context, id string) error {
	return s.client.Del(ctx, cache.KeyClassView+id).Err()
}
