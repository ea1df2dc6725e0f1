// Package checkout 支付领域 - HTTP 处理
package checkout

import (
	"context"
	"net/http"

	"dancefusion/internal/apiserver/httpapi"
	"dancefusion/internal/shared/model"
	"dancefusion/internal/shared/payment"
	"dancefusion/pkg/logging"
)

// 支付结果标签
const (
	ResultSuccess  = "success"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// IntentGateway 创建 PaymentIntent（payment.Gateway 实现）
type IntentGateway interface {
	CreatePaymentIntent(ctx context.Context, price float64) (*payment.Intent, error)
}

// Recorder 记录支付结果（由 Prometheus 指标实现）
type Recorder interface {
	RecordPaymentIntent(result string)
}

// Handler 支付领域 HTTP 处理器
type Handler struct {
	gateway  IntentGateway
	recorder Recorder
	log      *logging.Logger
}

// NewHandler 创建支付处理器，recorder 可为 nil
func NewHandler(gateway IntentGateway, recorder Recorder, log *logging.Logger) *Handler {
	return &Handler{gateway: gateway, recorder: recorder, log: log}
}

// RegisterRoutes 注册支付相关路由
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /create-payment-intent", h.CreateIntent)
}

type intentRequest struct {
	Price model.FlexFloat `json:"price"`
}

type intentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// CreateIntent 按课程价格创建 PaymentIntent
// POST /create-payment-intent
func (h *Handler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body intentRequest
	if err := httpapi.DecodeJSON(w, r, &body); err != nil {
		h.record(ResultRejected)
		httpapi.WriteError(w, r, h.log, err)
		return
	}

	intent, err := h.gateway.CreatePaymentIntent(ctx, float64(body.Price))
	if err != nil {
		if httpapi.StatusFor(err) < http.StatusInternalServerError {
			h.record(ResultRejected)
		} else {
			h.record(ResultError)
		}
		httpapi.WriteError(w, r, h.log, err)
		return
	}

	h.record(ResultSuccess)
	h.log.WithContext(ctx).Info("payment intent created",
		"intent_id", intent.ID, "amount", intent.Amount, "currency", intent.Currency)
	httpapi.WriteJSON(w, http.StatusOK, intentResponse{ClientSecret: intent.ClientSecret})
}

func (h *Handler) record(result string) {
	if h.recorder != nil {
		h.recorder.RecordPaymentIntent(result)
	}
}
