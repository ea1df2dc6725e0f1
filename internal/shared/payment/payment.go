// Package payment 支付网关适配器
//
// 将课程价格（主货币单位）转换为最小货币单位，向支付处理方创建仅限银行卡的
// PaymentIntent，并返回前端完成支付所需的 client secret。
package payment

import (
	"context"
	"fmt"
	"math"

	"github.com/containerd/errdefs"
)

var (
	// ErrGateway 支付处理方调用失败（网络错误、拒绝请求等）
	ErrGateway = errdefs.ErrUnavailable.WithMessage("payment gateway error")

	// ErrInvalidAmount 价格不是正的有限数
	ErrInvalidAmount = errdefs.ErrInvalidArgument.WithMessage("invalid amount")
)

const (
	DefaultCurrency = "usd"
	MethodCard      = "card"
)

// IntentRequest 创建 PaymentIntent 的参数
type IntentRequest struct {
	Amount             int64 // 最小货币单位
	Currency           string
	PaymentMethodTypes []string
}

// Intent 支付处理方返回的 PaymentIntent
type Intent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
}

// IntentCreator 支付处理方接口（StripeCreator 为生产实现）
type IntentCreator interface {
	CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error)
}

// Gateway 支付网关
type Gateway struct {
	creator  IntentCreator
	currency string
	methods  []string
}

// NewGateway 创建支付网关；currency 为空时使用 usd，methods 为空时仅允许 card
func NewGateway(creator IntentCreator, currency string, methods []string) *Gateway {
	if currency == "" {
		currency = DefaultCurrency
	}
	if len(methods) == 0 {
		methods = []string{MethodCard}
	}
	return &Gateway{creator: creator, currency: currency, methods: methods}
}

// Currency 返回固定币种
func (g *Gateway) Currency() string {
	return g.currency
}

// CreatePaymentIntent 按价格创建 PaymentIntent，返回 client secret
func (g *Gateway) CreatePaymentIntent(ctx context.Context, price float64) (*Intent, error) {
	amount, err := ToMinorUnits(price)
	if err != nil {
		return nil, err
	}
	intent, err := g.creator.CreateIntent(ctx, IntentRequest{
		Amount:             amount,
		Currency:           g.currency,
		PaymentMethodTypes: g.methods,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	if intent == nil || intent.ClientSecret == "" {
		return nil, fmt.Errorf("%w: empty client secret", ErrGateway)
	}
	return intent, nil
}

// ToMinorUnits 主货币单位 × 100 后截断为整数
//
// 先在 1e-6 精度上取整以消除二进制浮点误差（49.99 × 100 = 4998.999…）。
func ToMinorUnits(price float64) (int64, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return 0, ErrInvalidAmount
	}
	cents := math.Round(price*100*1e6) / 1e6
	if math.IsInf(cents, 0) || cents >= 1<<63 {
		return 0, ErrInvalidAmount
	}
	amount := int64(math.Trunc(cents))
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	return amount, nil
}
