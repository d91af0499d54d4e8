package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finlearn_backend/internal/config"
	"finlearn_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = testSecret
	return cfg
}

func identityEcho(c *gin.Context) {
	user := util.GetUserFromContext(c)
	if user == nil {
		c.String(http.StatusOK, "anonymous")
		return
	}
	c.String(http.StatusOK, user.UserID())
}

func newAuthRouter(t *testing.T, optional bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	if optional {
		router.GET("/echo", TryAuthMiddleware(testConfig()), identityEcho)
	} else {
		router.GET("/echo", AuthMiddleware(testConfig()), identityEcho)
	}
	return router
}

func signToken(t *testing.T, userID, secret string) string {
	t.Helper()
	token, err := util.GenerateJWT(userID, "Ada", "/ada.png", secret, time.Hour)
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware_RejectsMissingOrBadToken(t *testing.T) {
	router := newAuthRouter(t, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/echo", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/echo", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "user_1", "wrong-secret"))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_AcceptsBearerAndQueryToken(t *testing.T) {
	router := newAuthRouter(t, false)
	token := signToken(t, "user_1", testSecret)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/echo", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user_1", w.Body.String())

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/echo?token="+token, nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user_1", w.Body.String())
}

func TestTryAuthMiddleware_AnonymousContinues(t *testing.T) {
	router := newAuthRouter(t, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/echo", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String())

	// 坏 token 不报错，按匿名处理
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/echo", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String())
}

func TestAdminMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	policy := NewAdminPolicy([]string{"user_admin"})

	router := gin.New()
	router.GET("/admin", TryAuthMiddleware(testConfig()), AdminMiddleware(policy), identityEcho)

	// 未登录
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 登录但不在白名单
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "user_1", testSecret))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// 白名单内
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "user_admin", testSecret))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminPolicy_UpdateReplacesAllowlist(t *testing.T) {
	policy := NewAdminPolicy([]string{"user_a"})
	assert.True(t, policy.Allow("user_a"))
	assert.False(t, policy.Allow("user_b"))

	policy.Update([]string{"user_b"})
	assert.False(t, policy.Allow("user_a"))
	assert.True(t, policy.Allow("user_b"))
}
