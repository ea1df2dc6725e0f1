// Package httpapi HTTP 层公共工具：JSON 读写与统一错误映射
//
// 所有处理器的失败都经由 WriteError 输出，保证错误响应统一为
// {"error": true, "message": "..."}，状态码按 errdefs 错误类别决定。
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/containerd/errdefs"

	"dancefusion/pkg/logging"
)

// maxBodyBytes 请求体上限
const maxBodyBytes = 1 << 20

// ErrBadBody 请求体不是合法 JSON
var ErrBadBody = errdefs.ErrInvalidArgument.WithMessage("invalid request body")

// ErrorBody 统一错误响应体
type ErrorBody struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// Guard 路由守卫（如 Bearer Token 校验）
type Guard func(http.HandlerFunc) http.HandlerFunc

// Open 不做任何校验的守卫
func Open(h http.HandlerFunc) http.HandlerFunc {
	return h
}

// WriteJSON 将数据以 JSON 格式写入 HTTP 响应
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// WriteError 按错误类别写入统一错误响应
//
// 4xx 直接返回错误文本；5xx 只返回通用文本，详情写日志。
func WriteError(w http.ResponseWriter, r *http.Request, log *logging.Logger, err error) {
	status := StatusFor(err)
	message := err.Error()
	switch status {
	case http.StatusBadGateway:
		message = "upstream service unavailable"
	case http.StatusInternalServerError:
		message = "internal error"
	}
	if status >= http.StatusInternalServerError && log != nil {
		log.WithContext(r.Context()).WithError(err).Error("request failed",
			"method", r.Method, "path", r.URL.Path, "status", status)
	}
	WriteJSON(w, status, ErrorBody{Error: true, Message: message})
}

// StatusFor 错误类别 → HTTP 状态码
func StatusFor(err error) int {
	switch {
	case errdefs.IsInvalidArgument(err):
		return http.StatusBadRequest
	case errors.Is(err, errdefs.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errdefs.IsNotFound(err):
		return http.StatusNotFound
	case errdefs.IsAlreadyExists(err):
		return http.StatusConflict
	case errdefs.IsUnavailable(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// DecodeJSON 解析 JSON 请求体
//
// 解析阶段产生的校验错误（如数字字符串转换失败）原样返回，其余统一为 ErrBadBody。
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errdefs.IsInvalidArgument(err) {
			return err
		}
		return ErrBadBody
	}
	return nil
}
