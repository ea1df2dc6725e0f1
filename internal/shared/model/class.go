package model

import "go.mongodb.org/mongo-driver/v2/bson"

// ClassStatus 课程审核状态
type ClassStatus string

const (
	ClassStatusPending  ClassStatus = "pending"
	ClassStatusApproved ClassStatus = "approved"
	ClassStatusDenied   ClassStatus = "deny"
)

// Class 舞蹈课程
type Class struct {
	ID              bson.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name            string        `json:"name" bson:"name" validate:"required"`
	Image           string        `json:"image,omitempty" bson:"image,omitempty"`
	AvailableSeats  FlexInt       `json:"available_seats" bson:"available_seats" validate:"min=0"`
	Price           FlexFloat     `json:"price" bson:"price" validate:"min=0"`
	Feedback        *string       `json:"feedback,omitempty" bson:"feedback,omitempty"`
	Status          ClassStatus   `json:"status" bson:"status" validate:"omitempty,oneof=pending approved deny"`
	InstructorName  string        `json:"instructor_name,omitempty" bson:"instructor_name,omitempty"`
	InstructorEmail string        `json:"instructor_email,omitempty" bson:"instructor_email,omitempty" validate:"omitempty,email"`
}

// Normalize 填充默认值：新课程默认待审核
func (c *Class) Normalize() {
	if c.Status == "" {
		c.Status = ClassStatusPending
	}
}

// ClassView 单个课程查询的投影视图，不含 status 和讲师信息
type ClassView struct {
	ID             bson.ObjectID `json:"_id" bson:"_id"`
	Image          string        `json:"image,omitempty" bson:"image,omitempty"`
	Name           string        `json:"name" bson:"name"`
	AvailableSeats FlexInt       `json:"available_seats" bson:"available_seats"`
	Price          FlexFloat     `json:"price" bson:"price"`
	Feedback       *string       `json:"feedback,omitempty" bson:"feedback,omitempty"`
}

// ClassViewFields 投影包含的字段
var ClassViewFields = []string{"image", "name", "available_seats", "price", "feedback"}

// ClassUpdate PUT /classes/{id} 的部分更新
//
// 只写入请求中出现的字段；数值字段接受数字或数字字符串。
type ClassUpdate struct {
	Name           *string    `json:"name,omitempty" validate:"omitempty,min=1"`
	Image          *string    `json:"image,omitempty"`
	AvailableSeats *FlexInt   `json:"available_seats,omitempty" validate:"omitempty,min=0"`
	Price          *FlexFloat `json:"price,omitempty" validate:"omitempty,min=0"`
	Feedback       *string    `json:"feedback,omitempty"`
}

// Empty 是否没有任何待更新字段
func (u *ClassUpdate) Empty() bool {
	return u.Name == nil && u.Image == nil && u.AvailableSeats == nil && u.Price == nil && u.Feedback == nil
}

// FeedbackUpdate PUT /classes/feedback/{id} 请求体
type FeedbackUpdate struct {
	Feedback string `json:"feedback"`
}
