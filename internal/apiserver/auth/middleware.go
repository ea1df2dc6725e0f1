package auth

import (
	"net/http"
	"strings"

	"dancefusion/internal/apiserver/httpapi"
	"dancefusion/pkg/logging"
)

// RequireToken 创建 Bearer Token 守卫
//
// 缺少 Authorization 头、格式错误、签名无效或已过期都返回 401
// {"error": true, "message": "unauthorized access"}；通过后 payload 注入 context。
func RequireToken(tokens *TokenService, log *logging.Logger) httpapi.Guard {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			// 提取 Bearer Token
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				httpapi.WriteError(w, r, log, ErrUnauthorized)
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				httpapi.WriteError(w, r, log, ErrUnauthorized)
				return
			}

			payload, err := tokens.Verify(strings.TrimSpace(parts[1]))
			if err != nil {
				log.WithContext(r.Context()).Debug("token rejected", "error", err.Error())
				httpapi.WriteError(w, r, log, ErrUnauthorized)
				return
			}

			ctx := WithPayload(r.Context(), payload)
			if email := payload.Email(); email != "" {
				ctx = logging.WithUserEmail(ctx, email)
			}
			next(w, r.WithContext(ctx))
		}
	}
}

// Middleware 将 RequireToken 适配为 http.Handler 中间件
func Middleware(tokens *TokenService, log *logging.Logger) func(http.Handler) http.Handler {
	guard := RequireToken(tokens, log)
	return func(next http.Handler) http.Handler {
		return guard(next.ServeHTTP)
	}
}
