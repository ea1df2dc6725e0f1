// Package cache 缓存层 mock 实现
package cache

import (
	"context"

	"dancefusion/internal/shared/model"
)

// ============================================================================
// NoOpCache - 空操作的 Cache 实现（未配置 Redis 或测试时使用）
// ============================================================================

// NoOpCache 是一个不做任何操作的 Cache 实现，每次读取都未命中
type NoOpCache struct{}

// NewNoOpCache 创建 NoOpCache 实例
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

// Close 关闭缓存
func (c *NoOpCache) Close() error {
	return nil
}

func (c *NoOpCache) GetClassView(ctx context.Context, id string) (*model.ClassView, error) {
	return nil, nil
}
func (c *NoOpCache) SetClassView(ctx context.Context, id string, view *model.ClassView) error {
	return nil
}
func (c *NoOpCache) DeleteClassView(ctx context.Context, id string) error {
	return nil
}

// 确保 NoOpCache 实现了 Cache 接口
var _ Cache = (*NoOpCache)(nil)
