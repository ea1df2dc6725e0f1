// Package selection 选课领域 - HTTP 处理
package selection

import (
	"net/http"

	"dancefusion/internal/apiserver/httpapi"
	"dancefusion/internal/shared/model"
	"dancefusion/internal/shared/storage"
	"dancefusion/pkg/logging"
)

// Handler 选课领域 HTTP 处理器
type Handler struct {
	store storage.SelectedClassStore
	log   *logging.Logger
}

// NewHandler 创建选课处理器
func NewHandler(store storage.SelectedClassStore, log *logging.Logger) *Handler {
	return &Handler{store: store, log: log}
}

// RegisterRoutes 注册选课相关路由
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /selected-classes", h.List)
	mux.HandleFunc("POST /selected-classes", h.Create)
	mux.HandleFunc("DELETE /selected-classes/{id}", h.Delete)
}

// List 列出全部选课记录
// GET /selected-classes
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListSelectedClasses(r.Context())
	if err != nil {
		httpapi.WriteError(w, r, h.log, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, items)
}

// Create 新增选课记录，不校验 class_id 指向的课程是否存在
// POST /selected-classes
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var sc model.SelectedClass
	if err := httpapi.DecodeJSON(w, r, &sc); err != nil {
		httpapi.WriteError(w, r, h.log, err)
		return
	}
	if err := model.Validate(&sc); err != nil {
		httpapi.WriteError(w, r, h.log, err)
		return
	}

	res, err := h.store.InsertSelectedClass(r.Context(), &sc)
	if err != nil {
		httpapi.WriteError(w, r, h.log, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, res)
}

// Delete 删除选课记录，记录不存在时 deletedCount 为 0
// DELETE /selected-classes/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	res, err := h.store.DeleteSelectedClass(r.Context(), r.PathValue("id"))
	if err != nil {
		httpapi.WriteError(w, r, h.log, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, res)
}
