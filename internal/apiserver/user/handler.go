// Package user 用户领域 - HTTP 处理
package user

import (
	"net/http"

	"dancefusion/internal/apiserver/auth"
	"dancefusion/internal/apiserver/httpapi"
	"dancefusion/internal/shared/model"
	"dancefusion/internal/shared/storage"
	"dancefusion/pkg/logging"
)

// MessageUserExists 邮箱已注册时的响应文本
const MessageUserExists = "user already exists"

// Handler 用户领域 HTTP 处理器
type Handler struct {
	store storage.UserStore
	log   *logging.Logger
}

// NewHandler 创建用户处理器
func NewHandler(store storage.UserStore, log *logging.Logger) *Handler {
	return &Handler{store: store, log: log}
}

// RegisterRoutes 注册用户相关路由
//
// requireToken 始终作用于管理员检查；protect 作用于角色提升路由。
func (h *Handler) RegisterRoutes(mux *http.ServeMux, requireToken, protect httpapi.Guard) {
	mux.HandleFunc("GET /users", h.List)
	mux.HandleFunc("POST /users", h.Create)
	mux.HandleFunc("GET /users/admin/{email}", requireToken(h.IsAdmin))
	mux.HandleFunc("PATCH /users/admin/{id}", protect(h.PromoteAdmin))
	mux.HandleFunc("PATCH /users/instructor/{id}", protect(h.PromoteInstructor))
}

type messageResponse struct {
	Message string `json:"message"`
}

type adminResponse struct {
	Admin bool `json:"admin"`
}

// List 列出全部用户
// GET /users
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		httpapi.WriteError(w, r, h.log, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, users)
}

// Create 首次登录时登记用户，邮箱已存在则不插入
// POST /users
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var u model.User
	if err := httpapi.DecodeJSON(w, r, &u); err != nil {
		httpapi.WriteError(w, r, h.log, err)
		return
	}
	if err := model.Validate(&u); err != nil {
		httpapi.WriteError(w, r, h.log, err)
		return
	}
	u.Normalize()

	res, inserted, err := h.store.InsertUserIfAbsent(r.Context(), &u)
	if err != nil {
		httpapi.WriteError(w, r, h.log, err)
		return
	}
	if !inserted {
		httpapi.WriteJSON(w, http.StatusOK, messageResponse{Message: MessageUserExists})
		return
	}
	h.log.WithContext(r.Context()).Info("user registered", "user_id", res.InsertedID)
	httpapi.WriteJSON(w, http.StatusOK, res)
}

// IsAdmin 查询调用方是否为管理员
// GET /users/admin/{email}
//
// 只能查询令牌中的邮箱本人；查询他人时直接返回 false，不访问存储。
func (h *Handler) IsAdmin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	email := r.PathValue("email")

	if auth.PayloadFrom(ctx).Email() != email {
		httpapi.WriteJSON(w, http.StatusOK, adminResponse{Admin: false})
		return
	}

	u, err := h.store.GetUserByEmail(ctx, email)
	if err != nil {
		httpapi.WriteError(w, r, h.log, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, adminResponse{Admin: u.IsAdmin()})
}

// PromoteAdmin 设为管理员
// PATCH /users/admin/{id}
func (h *Handler) PromoteAdmin(w http.ResponseWriter, r *http.Request) {
	h.setRole(w, r, model.UserRoleAdmin)
}

// PromoteInstructor 设为讲师
// PATCH /users/instructor/{id}
func (h *Handler) PromoteInstructor(w http.ResponseWriter, r *http.Request) {
	h.setRole(w, r, model.UserRoleInstructor)
}

func (h *Handler) setRole(w http.ResponseWriter, r *http.Request, role model.UserRole) {
	id := r.PathValue("id")
	res, err := h.store.SetUserRole(r.Context(), id, role)
	if err != nil {
		httpapi.WriteError(w, r, h.log, err)
		return
	}
	h.log.WithContext(r.Context()).Info("user role changed", "user_id", id, "role", string(role), "matched", res.MatchedCount)
	httpapi.WriteJSON(w, http.StatusOK, res)
}
