package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTokenService_RoundTrip(t *testing.T) {
	ts := NewTokenService(Config{JWTSecret: "test-secret"})

	token, err := ts.Issue(Payload{"email": "a@x.io", "name": "Ada"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	payload, err := ts.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.io", payload.Email())
	assert.Equal(t, "Ada", payload["name"])
	assert.NotContains(t, payload, "iat")
	assert.NotContains(t, payload, "exp")
}

func TestTokenService_RejectsReservedClaims(t *testing.T) {
	ts := NewTokenService(Config{JWTSecret: "test-secret"})
	for _, p := range []Payload{
		{"email": "a@x.io", "exp": 1},
		{"email": "a@x.io", "iat": 1},
		{"exp": nil},
	} {
		token, err := ts.Issue(p)
		assert.ErrorIs(t, err, ErrReservedClaim, p)
		assert.Empty(t, token)
	}
}

func TestTokenService_DefaultTTL(t *testing.T) {
	ts := NewTokenService(Config{JWTSecret: "s"})
	assert.Equal(t, time.Hour, ts.TTL())

	ts = NewTokenService(Config{JWTSecret: "s", TokenTTL: 10 * time.Minute})
	assert.Equal(t, 10*time.Minute, ts.TTL())
}

func TestTokenService_Expiry(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewTokenService(Config{JWTSecret: "s"}).WithClock(fixedClock(issuedAt))
	token, err := issuer.Issue(Payload{"email": "a@x.io"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		elapsed time.Duration
		wantErr bool
	}{
		{"刚签发", 0, false},
		{"59 分钟", 59 * time.Minute, false},
		{"恰好 1 小时", time.Hour, true},
		{"超过 1 小时", 2 * time.Hour, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := issuer.WithClock(fixedClock(issuedAt.Add(tt.elapsed)))
			_, err := verifier.Verify(token)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnauthorized)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTokenService_Rejects(t *testing.T) {
	ts := NewTokenService(Config{JWTSecret: "right"})
	other := NewTokenService(Config{JWTSecret: "wrong"})

	foreign, err := other.Issue(Payload{"email": "a@x.io"})
	require.NoError(t, err)

	// 无 exp 声明
	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"email": "a@x.io"}).SignedString([]byte("right"))
	require.NoError(t, err)

	// 非 HS256 算法
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"email": "a@x.io",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("right"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"其他密钥签名", foreign},
		{"格式错误", "not-a-token"},
		{"空字符串", ""},
		{"缺少 exp", noExp},
		{"算法不匹配", hs512},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ts.Verify(tt.token)
			assert.ErrorIs(t, err, ErrUnauthorized)
		})
	}
}

func TestPayloadFrom(t *testing.T) {
	ctx := WithPayload(t.Context(), Payload{"email": "a@x.io"})
	assert.Equal(t, "a@x.io", PayloadFrom(ctx).Email())
	assert.Nil(t, PayloadFrom(t.Context()))
	assert.Equal(t, "", Payload(nil).Email())
}
