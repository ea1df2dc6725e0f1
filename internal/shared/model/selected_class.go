package model

import "go.mongodb.org/mongo-driver/v2/bson"

// SelectedClass 学生选课记录
//
// ClassID 引用 classes 集合，但不做存在性校验。
type SelectedClass struct {
	ID             bson.ObjectID  `json:"_id" bson:"_id,omitempty"`
	ClassID        string         `json:"class_id" bson:"class_id" validate:"required,len=24,hexadecimal"`
	Email          string         `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	Name           string         `json:"name,omitempty" bson:"name,omitempty"`
	Image          string         `json:"image,omitempty" bson:"image,omitempty"`
	Price          FlexFloat      `json:"price" bson:"price" validate:"min=0"`
	InstructorName string         `json:"instructor_name,omitempty" bson:"instructor_name,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty" bson:"metadata,omitempty"`
}
