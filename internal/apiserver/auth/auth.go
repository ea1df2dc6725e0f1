// Package auth 用户认证：JWT 令牌签发与校验、HTTP 中间件
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/containerd/errdefs"
	"github.com/golang-jwt/jwt/v5"
)

// contextKey context 键类型
type contextKey string

const ctxKeyPayload contextKey = "token_payload"

// ErrUnauthorized 缺少、无效或过期的令牌
var ErrUnauthorized = errdefs.ErrUnauthenticated.WithMessage("unauthorized access")

// ErrReservedClaim payload 中包含由服务端写入的 iat/exp
var ErrReservedClaim = errdefs.ErrInvalidArgument.WithMessage("payload must not set iat or exp")

// Config 认证配置
type Config struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// DefaultConfig 返回默认认证配置
func DefaultConfig() Config {
	return Config{
		TokenTTL: time.Hour,
	}
}

// ============================================================================
// Payload
// ============================================================================

// Payload 令牌中携带的调用方声明，内容由客户端决定，至少包含 email
type Payload map[string]any

// Email 返回 payload 中的 email 字段
func (p Payload) Email() string {
	email, _ := p["email"].(string)
	return email
}

// ============================================================================
// JWT Token
// ============================================================================

// 签发时由服务端写入、校验后从 payload 中剥离的声明，客户端不得提供
var registeredClaims = []string{"iat", "exp"}

// TokenService 无状态令牌服务，HS256 共享密钥签名
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService 创建令牌服务，TTL 未配置时为 1 小时
func NewTokenService(cfg Config) *TokenService {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = DefaultConfig().TokenTTL
	}
	return &TokenService{
		secret: []byte(cfg.JWTSecret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock 替换时钟（测试用）
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	cp := *s
	cp.now = now
	return &cp
}

// TTL 返回令牌有效期
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue 签发令牌，payload 原样写入声明并附加 iat/exp
// payload 自带 iat 或 exp 时返回 ErrReservedClaim
func (s *TokenService) Issue(payload Payload) (string, error) {
	for _, k := range registeredClaims {
		if _, ok := payload[k]; ok {
			return "", ErrReservedClaim
		}
	}
	now := s.now()
	claims := jwt.MapClaims{}
	for k, v := range payload {
		claims[k] = v
	}
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(s.ttl).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify 校验签名与过期时间，返回签发时的 payload
func (s *TokenService) Verify(tokenString string) (Payload, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	claims := jwt.MapClaims{}
	_, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	payload := make(Payload, len(claims))
	for k, v := range claims {
		payload[k] = v
	}
	for _, k := range registeredClaims {
		delete(payload, k)
	}
	return payload, nil
}

// ============================================================================
// Context 辅助函数
// ============================================================================

// WithPayload 将已校验的 payload 注入 context
func WithPayload(ctx context.Context, p Payload) context.Context {
	return context.WithValue(ctx, ctxKeyPayload, p)
}

// PayloadFrom 从 context 获取 payload，未认证时返回 nil
func PayloadFrom(ctx context.Context) Payload {
	p, _ := ctx.Value(ctxKeyPayload).(Payload)
	return p
}
