// Package storage 定义存储层领域错误
//
// 这些错误用于隔离业务层与底层存储引擎的错误类型，
// mongostore 负责将驱动错误转换为这些领域错误。错误类别取自 errdefs，
// HTTP 层按类别映射状态码。
package storage

import "github.com/containerd/errdefs"

var (
	// ErrNotFound 实体不存在
	// 替代 mongo.ErrNoDocuments
	ErrNotFound = errdefs.ErrNotFound.WithMessage("entity not found")

	// ErrInvalidID 路径参数不是合法的 ObjectID
	ErrInvalidID = errdefs.ErrInvalidArgument.WithMessage("invalid id")

	// ErrDuplicate 唯一键冲突（users.email 唯一索引）
	ErrDuplicate = errdefs.ErrAlreadyExists.WithMessage("duplicate: entity already exists")
)
