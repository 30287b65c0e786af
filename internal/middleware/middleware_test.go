package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-payroll/internal/domain"
	"go-payroll/internal/shared/contextutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	router := gin.New()
	router.GET("/me", AuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"employee_id": c.GetString("employee_id"),
			"company_id":  c.GetString("company_id"),
		})
	})

	valid := jwt.MapClaims{
		"user_id":     "user-1",
		"employee_id": "emp-1",
		"company_id":  "company-1",
		"exp":         time.Now().Add(time.Hour).Unix(),
	}

	t.Run("valid bearer token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", valid))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"employee_id":"emp-1"`)
	})

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "UNAUTHORIZED", decode(t, w).Error.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "other", valid))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid or malformed token")
	})

	t.Run("expired token", func(t *testing.T) {
		expired := jwt.MapClaims{
			"user_id":     "user-1",
			"employee_id": "emp-1",
			"company_id":  "company-1",
			"exp":         time.Now().Add(-time.Hour).Unix(),
		}
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", expired))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Token has expired")
	})

	t.Run("missing company claim", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", jwt.MapClaims{
			"user_id":     "user-1",
			"employee_id": "emp-1",
		}))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Company ID not found")
	})
}

type fakeRBAC struct {
	allowed bool
	err     error
	got     domain.EnforceRequest
}

func (f *fakeRBAC) Enforce(ctx context.Context, req domain.EnforceRequest) (bool, error) {
	f.got = req
	return f.allowed, f.err
}

func rbacRouter(svc RBACService, withAuth bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/runs", func(c *gin.Context) {
		if withAuth {
			c.Set("employee_id", "emp-1")
			c.Set("company_id", "company-1")
		}
		c.Next()
	}, RBACAuthorize(svc, "payroll_run", "read"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func TestRBACAuthorize(t *testing.T) {
	t.Run("allowed", func(t *testing.T) {
		svc := &fakeRBAC{allowed: true}
		w := httptest.NewRecorder()
		rbacRouter(svc, true).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/runs", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, domain.EnforceRequest{
			EmployeeID: "emp-1", CompanyID: "company-1", Resource: "payroll_run", Action: "read",
		}, svc.got)
	})

	t.Run("denied", func(t *testing.T) {
		w := httptest.NewRecorder()
		rbacRouter(&fakeRBAC{}, true).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/runs", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "FORBIDDEN", decode(t, w).Error.Code)
	})

	t.Run("no auth context", func(t *testing.T) {
		w := httptest.NewRecorder()
		rbacRouter(&fakeRBAC{allowed: true}, false).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/runs", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("enforcer error", func(t *testing.T) {
		w := httptest.NewRecorder()
		rbacRouter(&fakeRBAC{err: errors.New("casbin")}, true).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/runs", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestIdempotency(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	router := gin.New()
	router.POST("/runs", func(c *gin.Context) {
		c.Set("user_id", "user-1")
		c.Next()
	}, Idempotency(rdb), func(c *gin.Context) {
		cacheKey := c.GetString("idempotency_cache_key")
		lockKey := c.GetString("idempotency_lock_key")
		require.NotEmpty(t, cacheKey)
		require.NoError(t, rdb.Set(c.Request.Context(), cacheKey, `{"run_number":"PR-1"}`, time.Hour).Err())
		require.NoError(t, rdb.Del(c.Request.Context(), lockKey).Err())
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})

	post := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/runs", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	first := post()
	assert.Equal(t, http.StatusCreated, first.Code)

	replay := post()
	assert.Equal(t, http.StatusOK, replay.Code)
	env := decode(t, replay)
	assert.True(t, env.Ok)
	assert.JSONEq(t, `{"run_number":"PR-1"}`, string(env.Data))
}

func TestIdempotency_InProgress(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	require.NoError(t, mr.Set("idemp:/runs:user-1:key-1:lock", "locked"))

	router := gin.New()
	router.POST("/runs", func(c *gin.Context) {
		c.Set("user_id", "user-1")
		c.Next()
	}, Idempotency(rdb), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/runs", nil)
	req.Header.Set("Idempotency-Key", "key-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "PROCESSING", decode(t, w).Error.Code)
}

func TestRequestIDAndContextLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)
	var gotRID string

	router := gin.New()
	router.Use(RequestID(), ContextLogger(zap.New(core)))
	router.GET("/ping", func(c *gin.Context) {
		ctx := c.Request.Context()
		gotRID = contextutil.GetRequestID(ctx)
		contextutil.GetLogger(ctx, nil).Info("handled")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "rid-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "rid-123", gotRID)
	assert.Equal(t, "rid-123", w.Header().Get(HeaderRequestID))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "rid-123", logs.All()[0].ContextMap()["request_id"])
}

func TestRateLimitByIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/ping", RateLimitByIP(1, 1), func(c *gin.Context) { c.Status(http.StatusOK) })

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/ping", nil))
	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "TOO_MANY_REQUESTS", decode(t, second).Error.Code)
}
