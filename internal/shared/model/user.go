package model

import "go.mongodb.org/mongo-driver/v2/bson"

// UserRole 用户角色
type UserRole string

const (
	UserRoleStudent    UserRole = "student"
	UserRoleInstructor UserRole = "instructor"
	UserRoleAdmin      UserRole = "admin"
)

// User 用户，首次登录时创建，邮箱唯一
type User struct {
	ID    bson.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name  string        `json:"name,omitempty" bson:"name,omitempty"`
	Email string        `json:"email" bson:"email" validate:"required,email"`
	Photo string        `json:"photo,omitempty" bson:"photo,omitempty"`
	Role  UserRole      `json:"role,omitempty" bson:"role,omitempty" validate:"omitempty,oneof=student instructor admin"`
}

// Normalize 注册时只接受 student 角色，admin/instructor 只能通过提升接口授予
func (u *User) Normalize() {
	if u.Role != UserRoleStudent {
		u.Role = ""
	}
}

// IsAdmin 是否为管理员
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == UserRoleAdmin
}
