package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/containerd/errdefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexInt_Unmarshal(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    FlexInt
		wantErr bool
	}{
		{"数字", `5`, 5, false},
		{"数字字符串", `"5"`, 5, false},
		{"带空格字符串", `" 12 "`, 12, false},
		{"小数截断", `"7.9"`, 7, false},
		{"负小数向零截断", `-3.7`, -3, false},
		{"空字符串", `""`, 0, false},
		{"非数字", `"five"`, 0, true},
		{"布尔值", `true`, 0, true},
		{"超出 int64 上限", `1e19`, 0, true},
		{"超出 int64 下限", `"-1e19"`, 0, true},
		{"2^63 越界", `9223372036854775808`, 0, true},
		{"int64 最大值", `9223372036854775807`, 9223372036854775807, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got FlexInt
			err := json.Unmarshal([]byte(tt.body), &got)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFlexFloat_Unmarshal(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    FlexFloat
		wantErr bool
	}{
		{"数字", `49.99`, 49.99, false},
		{"数字字符串", `"12.5"`, 12.5, false},
		{"整数字符串", `"20"`, 20, false},
		{"非数字", `"abc"`, 0, true},
		{"NaN 字符串", `"NaN"`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got FlexFloat
			err := json.Unmarshal([]byte(tt.body), &got)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, float64(tt.want), float64(got), 1e-9)
		})
	}
}

func TestClassUpdate_PartialFields(t *testing.T) {
	var u ClassUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"available_seats":"5","price":"12.5"}`), &u))

	require.NotNil(t, u.AvailableSeats)
	require.NotNil(t, u.Price)
	assert.Equal(t, FlexInt(5), *u.AvailableSeats)
	assert.Equal(t, FlexFloat(12.5), *u.Price)
	assert.Nil(t, u.Name)
	assert.Nil(t, u.Feedback)
	assert.False(t, u.Empty())

	var empty ClassUpdate
	require.NoError(t, json.Unmarshal([]byte(`{}`), &empty))
	assert.True(t, empty.Empty())
}

func TestClass_NormalizeDefaultsToPending(t *testing.T) {
	c := Class{Name: "Ballet"}
	c.Normalize()
	assert.Equal(t, ClassStatusPending, c.Status)

	c = Class{Name: "Salsa", Status: ClassStatusApproved}
	c.Normalize()
	assert.Equal(t, ClassStatusApproved, c.Status)
}

func TestClassView_OmitsStatus(t *testing.T) {
	fb := "great"
	data, err := json.Marshal(ClassView{Name: "Ballet", AvailableSeats: 10, Price: 49.99, Feedback: &fb})
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.NotContains(t, got, "status")
	assert.NotContains(t, got, "instructor_email")
	assert.Equal(t, "Ballet", got["name"])
	assert.Equal(t, "great", got["feedback"])
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		record  any
		wantErr string
	}{
		{"合法课程", &Class{Name: "Ballet", AvailableSeats: 10, Price: 49.99}, ""},
		{"课程缺少名称", &Class{AvailableSeats: 1}, "name is required"},
		{"座位为负", &Class{Name: "Tap", AvailableSeats: -1}, "available_seats is below the minimum"},
		{"非法状态", &Class{Name: "Tap", Status: "archived"}, "status has an unsupported value"},
		{"合法用户", &User{Email: "a@example.com"}, ""},
		{"用户邮箱非法", &User{Email: "not-an-email"}, "email must be a valid email"},
		{"用户缺少邮箱", &User{Name: "x"}, "email is required"},
		{"选课缺少课程", &SelectedClass{Email: "a@example.com"}, "class_id is required"},
		{"选课课程 ID 非法", &SelectedClass{ClassID: "xyz"}, "class_id must be a 24 character hex id"},
		{"合法选课", &SelectedClass{ClassID: "64b7f1f2a1b2c3d4e5f60718", Price: 20}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.record)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.True(t, errors.Is(err, ErrValidation))
			assert.True(t, errdefs.IsInvalidArgument(err))
		})
	}
}

func TestUser_NormalizeDropsPrivilegedRoles(t *testing.T) {
	u := User{Email: "a@example.com", Role: UserRoleAdmin}
	u.Normalize()
	assert.Empty(t, u.Role)
	assert.False(t, u.IsAdmin())

	u = User{Email: "b@example.com", Role: UserRoleStudent}
	u.Normalize()
	assert.Equal(t, UserRoleStudent, u.Role)

	var nilUser *User
	assert.False(t, nilUser.IsAdmin())
}
