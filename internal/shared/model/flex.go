package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// int64Bound 2^63，float64 可精确表示
const int64Bound = float64(1 << 63)

// FlexInt 整数字段，JSON 中接受数字或数字字符串（"5" → 5，"7.9" → 7）
type FlexInt int64

// UnmarshalJSON 解析数字或数字字符串，小数向零截断
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	s, err := flexText(data)
	if err != nil {
		return err
	}
	if s == "" {
		*f = 0
		return nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*f = FlexInt(n)
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %q is not an integer", ErrValidation, s)
	}
	v = math.Trunc(v)
	if v < -int64Bound || v >= int64Bound {
		return fmt.Errorf("%w: %q is out of range", ErrValidation, s)
	}
	*f = FlexInt(v)
	return nil
}

// FlexFloat 小数字段，JSON 中接受数字或数字字符串（"12.5" → 12.5）
type FlexFloat float64

// UnmarshalJSON 解析数字或数字字符串
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	s, err := flexText(data)
	if err != nil {
		return err
	}
	if s == "" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %q is not a number", ErrValidation, s)
	}
	*f = FlexFloat(v)
	return nil
}

// flexText 取出 JSON 数字或字符串的文本，null 视为空
func flexText(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return "", nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", fmt.Errorf("%w: %v", ErrValidation, err)
		}
		return strings.TrimSpace(s), nil
	}
	return string(data), nil
}
