// Package storage 定义持久化存储层抽象接口
//
// 设计原则：依赖倒置 (DIP)
//   - 调用方（HTTP 处理器）只依赖接口，不知道具体实现
//   - 具体实现在子包中：mongostore/（生产）、memstore/（测试与本地开发）
//   - 初始化时通过依赖注入传入实现，连接由调用方管理生命周期
package storage

import (
	"context"

	"dancefusion/internal/shared/model"
)

// ClassStore 课程存储接口
type ClassStore interface {
	ListClasses(ctx context.Context) ([]*model.Class, error)
	// GetClassView 按 ID 查询投影视图；不存在时返回 (nil, nil)
	GetClassView(ctx context.Context, id string) (*model.ClassView, error)
	InsertClass(ctx context.Context, class *model.Class) (*model.InsertResult, error)
	// UpdateClass upsert：ID 不存在时以该 ID 新建
	UpdateClass(ctx context.Context, id string, update *model.ClassUpdate) (*model.UpdateResult, error)
	SetClassFeedback(ctx context.Context, id, feedback string) (*model.UpdateResult, error)
	// SetClassStatus 只更新 status 字段，不校验状态迁移是否合法
	SetClassStatus(ctx context.Context, id string, status model.ClassStatus) (*model.UpdateResult, error)
}

// UserStore 用户存储接口
type UserStore interface {
	ListUsers(ctx context.Context) ([]*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	// InsertUserIfAbsent 邮箱已存在时返回 (nil, false, nil)
	InsertUserIfAbsent(ctx context.Context, user *model.User) (*model.InsertResult, bool, error)
	SetUserRole(ctx context.Context, id string, role model.UserRole) (*model.UpdateResult, error)
}

// SelectedClassStore 选课存储接口
type SelectedClassStore interface {
	ListSelectedClasses(ctx context.Context) ([]*model.SelectedClass, error)
	InsertSelectedClass(ctx context.Context, sc *model.SelectedClass) (*model.InsertResult, error)
	// DeleteSelectedClass 记录不存在时返回 DeletedCount=0，不报错
	DeleteSelectedClass(ctx context.Context, id string) (*model.DeleteResult, error)
}

// PersistentStore 持久化存储组合接口
type PersistentStore interface {
	ClassStore
	UserStore
	SelectedClassStore

	Ping(ctx context.Context) error
	Close() error
}
