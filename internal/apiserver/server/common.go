// Package server 路由配置与核心基础设施
//
// 文件组织：
//   - common.go: Handler 定义与系统接口（存活、健康检查）
//   - handler.go: 路由表与中间件链
//   - middleware.go: 请求 ID、访问日志、CORS
//   - metrics.go: Prometheus 指标
//   - openapi.go: OpenAPI 文档加载与输出
package server

import (
	"context"
	"net/http"
	"time"

	"dancefusion/internal/apiserver/auth"
	"dancefusion/internal/apiserver/checkout"
	"dancefusion/internal/apiserver/httpapi"
	"dancefusion/internal/shared/cache"
	"dancefusion/internal/shared/storage"
	"dancefusion/pkg/logging"
)

// LivenessMessage GET / 的响应文本
const LivenessMessage = "The server is running"

// healthTimeout 健康检查中数据库 Ping 的超时
const healthTimeout = 2 * time.Second

// Deps Handler 依赖
type Deps struct {
	Store    storage.PersistentStore
	Cache    cache.ClassViewCache  // 可选，nil 时不缓存
	Tokens   *auth.TokenService
	Payments checkout.IntentGateway
	Metrics  *Metrics // 可选，nil 时内部创建
	APIDoc   *APIDoc  // 可选，nil 时不注册 /openapi.yaml
	Logger   *logging.Logger

	// ProtectMutations 为角色提升与课程审核路由启用 Bearer Token 校验
	ProtectMutations bool
}

// Handler API 处理器
//
// Handler 是所有 HTTP API 的入口，负责组装各领域处理器与公共中间件。
type Handler struct {
	deps    Deps
	metrics *Metrics
	log     *logging.Logger
}

// NewHandler 创建 Handler 实例
func NewHandler(deps Deps) *Handler {
	if deps.Logger == nil {
		deps.Logger = logging.Discard()
	}
	if deps.Metrics == nil {
		deps.Metrics = NewMetrics("dancefusion")
	}
	return &Handler{deps: deps, metrics: deps.Metrics, log: deps.Logger}
}

// GetMetrics 返回指标实例
func (h *Handler) GetMetrics() *Metrics {
	return h.metrics
}

// Root 存活检查
// GET /
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(LivenessMessage))
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

// Health 健康检查接口
// GET /health
//
// 数据库不可达时返回 503。
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.deps.Store.Ping(ctx); err != nil {
		h.log.WithContext(r.Context()).WithError(err).Warn("health check failed")
		httpapi.WriteJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Database: "unreachable"})
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, healthResponse{Status: "ok", Database: "ok"})
}
