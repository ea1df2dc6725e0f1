package auth

import (
	"net/http"

	"dancefusion/internal/apiserver/httpapi"
	"dancefusion/pkg/logging"
)

// Handler 令牌签发 HTTP 处理器
type Handler struct {
	tokens *TokenService
	log    *logging.Logger
}

// NewHandler 创建认证处理器
func NewHandler(tokens *TokenService, log *logging.Logger) *Handler {
	return &Handler{tokens: tokens, log: log}
}

// RegisterRoutes 注册认证相关路由
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /jwt", h.IssueToken)
}

type tokenResponse struct {
	Token string `json:"token"`
}

// IssueToken 签发令牌
// POST /jwt
//
// 请求体为任意 JSON 对象（通常是 {"email": "..."}），原样写入令牌。
func (h *Handler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var payload Payload
	if err := httpapi.DecodeJSON(w, r, &payload); err != nil {
		httpapi.WriteError(w, r, h.log, err)
		return
	}
	if payload == nil {
		httpapi.WriteError(w, r, h.log, httpapi.ErrBadBody)
		return
	}

	token, err := h.tokens.Issue(payload)
	if err != nil {
		httpapi.WriteError(w, r, h.log, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, tokenResponse{Token: token})
}
