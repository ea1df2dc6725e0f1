// Package class 课程领域 - HTTP 处理
package class

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/v2/bson"

	"dancefusion/internal/apiserver/httpapi"
	"dancefusion/internal/shared/cache"
	"dancefusion/internal/shared/model"
	"dancefusion/internal/shared/storage"
	"dancefusion/pkg/logging"
)

// Handler 课程领域 HTTP 处理器
type Handler struct {
	store storage.ClassStore
	cache cache.ClassViewCache
	log   *logging.Logger
}

// NewHandler 创建课程处理器
// viewCache 可为 nil，此时不缓存投影视图
func NewHandler(store storage.ClassStore, viewCache cache.ClassViewCache, log *logging.Logger) *Handler {
	if viewCache == nil {
		viewCache = cache.NewNoOpCache()
	}
	return &Handler{store: store, cache: viewCache, log: log}
}

// RegisterRoutes 注册课程相关路由
// protect 作用于审核状态变更路由
func (h *Handler) RegisterRoutes(mux *http.ServeMux, protect httpapi.Guard) {
	mux.HandleFunc("GET /classes", h.List)
	mux.HandleFunc("POST /classes", h.Create)
	mux.HandleFunc("GET /classes/{id}", h.Get)
	mux.HandleFunc("PUT /classes/{id}", h.Update)
	mux.HandleFunc("PUT /classes/feedback/{id}", h.Feedback)
	mux.HandleFunc("PATCH /classes/approved/{id}", protect(h.Approve))
	mux.HandleFunc("PATCH /classes/deny/{id}", protect(h.Deny))
}

// List 列出全部课程
// GET /classes
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	classes, err := h.store.ListClasses(r.Context())
	if err != nil {
		httpapi.WriteError(w, r, h.log, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, classes)
}

// Create 新建课程，status 缺省为 pending
// POST /classes
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var c model.Class
	if err := httpapi.DecodeJSON(w, r, &c); err != nil {
		httpapi.WriteError(w, r, h.log, err)
		return
	}
	if err := model.Validate(&c); err != nil {
		httpapi.WriteError(w, r, h.log, err)
		return
	}

	res, err := h.store.InsertClass(r.Context(), &c)
	if err != nil {
		httpapi.WriteError(w, r, h.log, err)
		return
	}
	h.log.WithContext(r.Context()).Info("class created", "class_id", res.InsertedID, "name", c.Name)
	httpapi.WriteJSON(w, http.StatusOK, res)
}

// Get 查询单个课程的投影视图，不存在时返回 null
// GET /classes/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := classID(r)
	if err != nil {
		httpapi.WriteError(w, r, h.log, err)
		return
	}

	if view, err := h.cache.GetClassView(ctx, id); err != nil {
		h.log.WithContext(ctx).Warn("class view cache read failed", "class_id", id, "error", err.Error())
	} else if view != nil {
		httpapi.WriteJSON(w, http.StatusOK, view)
		return
	}

	view, err := h.store.GetClassView(ctx, id)
	if err != nil {
		httpapi.WriteError(w, r, h.log, err)
		return
	}
	if view != nil {
		if err := h.cache.SetClassView(ctx, id, view); err != nil {
			h.log.WithContext(ctx).Warn("class view cache write failed", "class_id", id, "error", err.Error())
		}
	}
	httpapi.WriteJSON(w, http.StatusOK, view)
}

// Update 部分更新课程（upsert），只写入请求中出现的字段
// PUT /classes/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var u model.ClassUpdate
	if err := httpapi.DecodeJSON(w, r, &u); err != nil {
		httpapi.WriteError(w, r, h.log, err)
		return
	}
	if err := model.Validate(&u); err != nil {
		httpapi.WriteError(w, r, h.log, err)
		return
	}
	h.write(w, r, func(ctx context.Context, id string) (*model.UpdateResult, error) {
		return h.store.UpdateClass(ctx, id, &u)
	})
}

// Feedback 写入管理员反馈（upsert）
// PUT /classes/feedback/{id}
func (h *Handler) Feedback(w http.ResponseWriter, r *http.Request) {
	var body model.FeedbackUpdate
	if err := httpapi.DecodeJSON(w, r, &body); err != nil {
		httpapi.WriteError(w, r, h.log, err)
		return
	}
	h.write(w, r, func(ctx context.Context, id string) (*model.UpdateResult, error) {
		return h.store.SetClassFeedback(ctx, id, body.Feedback)
	})
}

// Approve 审核通过
// PATCH /classes/approved/{id}
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, model.ClassStatusApproved)
}

// Deny 审核拒绝
// PATCH /classes/deny/{id}
func (h *Handler) Deny(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, model.ClassStatusDenied)
}

// setStatus 只修改 status 字段，不校验当前状态
func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request, status model.ClassStatus) {
	h.write(w, r, func(ctx context.Context, id string) (*model.UpdateResult, error) {
		return h.store.SetClassStatus(ctx, id, status)
	})
}

// classID 解析路径中的课程 ID，返回规范化的小写十六进制形式
//
// 缓存键与存储查询都使用该形式，大小写不同的同一 ID 指向同一缓存项。
func classID(r *http.Request) (string, error) {
	oid, err := bson.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		return "", storage.ErrInvalidID
	}
	return oid.Hex(), nil
}

// write 执行课程写操作并使对应投影缓存失效
func (h *Handler) write(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id string) (*model.UpdateResult, error)) {
	ctx := r.Context()
	id, err := classID(r)
	if err != nil {
		httpapi.WriteError(w, r, h.log, err)
		return
	}
	res, err := op(ctx, id)
	if err != nil {
		httpapi.WriteError(w, r, h.log, err)
		return
	}
	if err := h.cache.DeleteClassView(ctx, id); err != nil {
		h.log.WithContext(ctx).Warn("class view cache invalidation failed", "class_id", id, "error", err.Error())
	}
	httpapi.WriteJSON(w, http.StatusOK, res)
}
