package server

import (
	"net/http"

	"dancefusion/internal/apiserver/auth"
	"dancefusion/internal/apiserver/checkout"
	"dancefusion/internal/apiserver/class"
	"dancefusion/internal/apiserver/httpapi"
	"dancefusion/internal/apiserver/selection"
	"dancefusion/internal/apiserver/user"
)

// Router 返回配置好的 HTTP 路由
//
// 路由规则：
//
// 系统:
//   - GET    /                        - 存活检查（纯文本）
//   - GET    /health                  - 健康检查
//   - GET    /metrics                 - Prometheus 指标
//   - GET    /openapi.yaml            - OpenAPI 文档
//
// 认证:
//   - POST   /jwt                     - 签发令牌
//
// 课程 (Class):
//   - GET    /classes                 - 列出课程
//   - POST   /classes                 - 创建课程
//   - GET    /classes/{id}            - 课程投影视图
//   - PUT    /classes/{id}            - 部分更新（upsert）
//   - PUT    /classes/feedback/{id}   - 写入反馈（upsert）
//   - PATCH  /classes/approved/{id}   - 审核通过 *
//   - PATCH  /classes/deny/{id}       - 审核拒绝 *
//
// 用户 (User):
//   - GET    /users                   - 列出用户
//   - POST   /users                   - 登记用户
//   - GET    /users/admin/{email}     - 管理员检查（Bearer Token）
//   - PATCH  /users/admin/{id}        - 设为管理员 *
//   - PATCH  /users/instructor/{id}   - 设为讲师 *
//
// 选课 (SelectedClass):
//   - GET    /selected-classes        - 列出选课
//   - POST   /selected-classes        - 新增选课
//   - DELETE /selected-classes/{id}   - 删除选课
//
// 支付:
//   - POST   /create-payment-intent   - 创建 PaymentIntent
//
// * ProtectMutations 开启时需要 Bearer Token
func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()

	// 系统接口
	mux.HandleFunc("GET /{$}", h.Root)
	mux.HandleFunc("GET /health", h.Health)
	mux.Handle("GET /metrics", h.metrics.Handler())
	if h.deps.APIDoc != nil {
		mux.Handle("GET /openapi.yaml", h.deps.APIDoc)
	}

	requireToken := auth.RequireToken(h.deps.Tokens, h.log)
	protect := httpapi.Guard(httpapi.Open)
	if h.deps.ProtectMutations {
		protect = requireToken
	}

	// 认证
	auth.NewHandler(h.deps.Tokens, h.log).RegisterRoutes(mux)

	// 课程
	class.NewHandler(h.deps.Store, h.deps.Cache, h.log).RegisterRoutes(mux, protect)

	// 用户
	user.NewHandler(h.deps.Store, h.log).RegisterRoutes(mux, requireToken, protect)

	// 选课
	selection.NewHandler(h.deps.Store, h.log).RegisterRoutes(mux)

	// 支付
	checkout.NewHandler(h.deps.Payments, h.metrics, h.log).RegisterRoutes(mux)

	// 中间件链（由内到外）：指标 → 访问日志 → 请求 ID → CORS
	var handler http.Handler = h.metrics.MetricsMiddleware(mux)
	handler = loggingMiddleware(h.log)(handler)
	handler = requestIDMiddleware(handler)
	return corsMiddleware(handler)
}
