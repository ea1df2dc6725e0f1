// Package cache 缓存层抽象接口
//
// 提供课程投影视图的读缓存，当前由 Redis 实现；未配置 Redis 时使用 NoOpCache。
// 缓存只是加速 GET /classes/{id}，所有课程写操作都必须调用 DeleteClassView。
package cache

import (
	"context"

	"dancefusion/internal/shared/model"
)

// ClassViewCache 课程投影视图缓存接口
type ClassViewCache interface {
	// GetClassView 未命中时返回 (nil, nil)
	GetClassView(ctx context.Context, id string) (*model.ClassView, error)
	SetClassView(ctx context.Context, id string, view *model.ClassView) error
	DeleteClassView(ctx context.Context, id string) error
}

// Cache 缓存组合接口
type Cache interface {
	ClassViewCache
	Close() error
}
