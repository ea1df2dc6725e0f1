// Package user 用户领域 - Handler 单元测试
package user

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"dancefusion/internal/apiserver/auth"
	"dancefusion/internal/apiserver/httpapi"
	"dancefusion/internal/shared/model"
	"dancefusion/internal/shared/storage/memstore"
	"dancefusion/pkg/logging"
)

type fixture struct {
	store  *memstore.Store
	tokens *auth.TokenService
	mux    *http.ServeMux
}

func newFixture(t *testing.T, protectMutations bool) *fixture {
	t.Helper()
	f := &fixture{
		store:  memstore.New(),
		tokens: auth.NewTokenService(auth.Config{JWTSecret: "test-secret"}),
		mux:    http.NewServeMux(),
	}
	requireToken := auth.RequireToken(f.tokens, logging.Discard())
	protect := httpapi.Open
	if protectMutations {
		protect = requireToken
	}
	NewHandler(f.store, logging.Discard()).RegisterRoutes(f.mux, requireToken, protect)
	return f
}

func (f *fixture) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) token(t *testing.T, email string) string {
	t.Helper()
	tok, err := f.tokens.Issue(auth.Payload{"email": email})
	require.NoError(t, err)
	return tok
}

func (f *fixture) register(t *testing.T, email string) string {
	t.Helper()
	rec := f.do(t, http.MethodPost, "/users", `{"name":"N","email":"`+email+`"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res model.InsertResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	require.NotEmpty(t, res.InsertedID)
	return res.InsertedID
}

// ============================================================================
// 注册
// ============================================================================

func TestCreate_DuplicateEmail(t *testing.T) {
	f := newFixture(t, false)
	f.register(t, "a@x.io")

	rec := f.do(t, http.MethodPost, "/users", `{"name":"Again","email":"a@x.io"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, map[string]any{"message": MessageUserExists}, body)

	users, err := f.store.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestCreate_DropsPrivilegedRole(t *testing.T) {
	f := newFixture(t, false)
	rec := f.do(t, http.MethodPost, "/users", `{"email":"sneaky@x.io","role":"admin"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	u, err := f.store.GetUserByEmail(context.Background(), "sneaky@x.io")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.False(t, u.IsAdmin())
}

func TestCreate_Invalid(t *testing.T) {
	f := newFixture(t, false)
	for _, body := range []string{`{"name":"no email"}`, `{"email":"not-an-email"}`, `[]`} {
		rec := f.do(t, http.MethodPost, "/users", body, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestList(t *testing.T) {
	f := newFixture(t, false)
	f.register(t, "a@x.io")
	f.register(t, "b@x.io")

	rec := f.do(t, http.MethodGet, "/users", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var users []model.User
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&users))
	assert.Len(t, users, 2)
}

// ============================================================================
// 管理员检查
// ============================================================================

func TestIsAdmin(t *testing.T) {
	f := newFixture(t, false)
	adminID := f.register(t, "boss@x.io")
	f.register(t, "student@x.io")
	_, err := f.store.SetUserRole(context.Background(), adminID, model.UserRoleAdmin)
	require.NoError(t, err)

	tests := []struct {
		name       string
		path       string
		token      string
		wantStatus int
		wantAdmin  bool
	}{
		{"管理员查询自己", "/users/admin/boss@x.io", f.token(t, "boss@x.io"), http.StatusOK, true},
		{"学生查询自己", "/users/admin/student@x.io", f.token(t, "student@x.io"), http.StatusOK, false},
		{"查询他人", "/users/admin/boss@x.io", f.token(t, "student@x.io"), http.StatusOK, false},
		{"未注册邮箱", "/users/admin/ghost@x.io", f.token(t, "ghost@x.io"), http.StatusOK, false},
		{"缺少令牌", "/users/admin/boss@x.io", "", http.StatusUnauthorized, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, http.MethodGet, tt.path, "", tt.token)
			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				var body httpapi.ErrorBody
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
				assert.Equal(t, httpapi.ErrorBody{Error: true, Message: "unauthorized access"}, body)
				return
			}
			var body adminResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantAdmin, body.Admin)
		})
	}
}

// ============================================================================
// 角色提升
// ============================================================================

func TestPromote(t *testing.T) {
	f := newFixture(t, false)
	id := f.register(t, "a@x.io")

	rec := f.do(t, http.MethodPatch, "/users/instructor/"+id, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	u, _ := f.store.GetUserByEmail(context.Background(), "a@x.io")
	assert.Equal(t, model.UserRoleInstructor, u.Role)

	rec = f.do(t, http.MethodPatch, "/users/admin/"+id, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var res model.UpdateResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, int64(1), res.MatchedCount)
	u, _ = f.store.GetUserByEmail(context.Background(), "a@x.io")
	assert.True(t, u.IsAdmin())

	// 不存在的用户：零匹配，不报错
	rec = f.do(t, http.MethodPatch, "/users/admin/"+bson.NewObjectID().Hex(), "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPatch, "/users/admin/bad-id", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPromote_ProtectedMutations(t *testing.T) {
	f := newFixture(t, true)
	id := f.register(t, "a@x.io")

	rec := f.do(t, http.MethodPatch, "/users/admin/"+id, "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, http.MethodPatch, "/users/admin/"+id, "", f.token(t, "a@x.io"))
	assert.Equal(t, http.StatusOK, rec.Code)
}
