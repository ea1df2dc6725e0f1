// Package model 定义舞蹈课程预约平台的数据模型
//
// 所有记录类型同时携带 json、bson 和 validate tag：
// HTTP 边界用 Validate 校验请求体，mongostore 直接按 bson tag 持久化。
package model

import (
	"errors"
	"reflect"
	"slices"
	"strings"

	"github.com/containerd/errdefs"
	"github.com/go-playground/validator/v10"
)

// ErrValidation 请求体校验失败
var ErrValidation = errdefs.ErrInvalidArgument.WithMessage("validation failed")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// 错误信息中使用 JSON 字段名
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate 校验记录，失败时返回包装了 ErrValidation 的错误
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{Fields: map[string]string{"": err.Error()}}
	}
	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fe.Field()] = fe.Tag()
	}
	return &ValidationError{Fields: fields}
}

// ValidationError 字段级校验错误，字段名 → 失败的规则
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, tag := range e.Fields {
		if field == "" {
			parts = append(parts, tag)
			continue
		}
		parts = append(parts, field+" "+describeTag(tag))
	}
	slices.Sort(parts)
	return "validation failed: " + strings.Join(parts, ", ")
}

// Unwrap 使 errors.Is(err, ErrValidation) 成立
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func describeTag(tag string) string {
	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return "is below the minimum"
	case "oneof":
		return "has an unsupported value"
	case "len", "hexadecimal":
		return "must be a 24 character hex id"
	default:
		return "is invalid (" + tag + ")"
	}
}
