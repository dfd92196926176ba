package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mittirang/mittirang-backend/internal/models"
)

func TestExtractResource(t *testing.T) {
	assert.Equal(t, "products", extractResourceType("/v1/admin/products/12"))
	assert.Equal(t, "auth", extractResourceType("/v1/auth/login"))
	assert.Equal(t, "health", extractResourceType("/health"))
	assert.Equal(t, "unknown", extractResourceType("/"))

	id := extractResourceID("/v1/admin/products/12")
	require.NotNil(t, id)
	assert.Equal(t, uint(12), *id)
	assert.Nil(t, extractResourceID("/v1/admin/uploads"))
}

func TestRedact(t *testing.T) {
	v := redact([]byte(`{"email":"a@b.c","password":"secret"}`))
	assert.Equal(t, "[REDACTED]", v["password"])
	assert.Equal(t, "a@b.c", v["email"])

	assert.Nil(t, redact(nil))
	assert.Nil(t, redact([]byte("[1,2]")))
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Body.String(), 36)
	assert.Equal(t, w.Body.String(), w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "upstream-1")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "upstream-1", w.Body.String())
}

func TestAuditLogMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.AuditLog{}))

	r := gin.New()
	r.Use(RequestID(), func(c *gin.Context) {
		c.Set("admin_id", uint(4))
		c.Next()
	}, AuditLogMiddleware(db))
	r.PUT("/v1/admin/products/:id", func(c *gin.Context) {
		var body map[string]interface{}
		require.NoError(t, c.ShouldBindJSON(&body))
		c.JSON(http.StatusOK, body)
	})
	r.GET("/v1/products", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPut, "/v1/admin/products/9", strings.NewReader(`{"name":"Desert Boot","price":2000}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"name":"Desert Boot","price":2000}`, w.Body.String(), "body must still reach the handler")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/products", nil))

	var entry models.AuditLog
	assert.Eventually(t, func() bool {
		return db.First(&entry).Error == nil
	}, 2*time.Second, 20*time.Millisecond)

	assert.Equal(t, "PUT /v1/admin/products/9", entry.Action)
	assert.Equal(t, "products", entry.ResourceType)
	require.NotNil(t, entry.ResourceID)
	assert.Equal(t, uint(9), *entry.ResourceID)
	require.NotNil(t, entry.AdminID)
	assert.Equal(t, uint(4), *entry.AdminID)
	assert.Equal(t, "Desert Boot", entry.NewValues["name"])
	assert.Equal(t, http.StatusOK, entry.StatusCode)

	var count int64
	db.Model(&models.AuditLog{}).Count(&count)
	assert.Equal(t, int64(1), count, "GET requests are not audited")
}

func TestAuditLogMiddleware_SkipsAnonymousAndUnknownRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.AuditLog{}))

	r := gin.New()
	r.Use(AuditLogMiddleware(db))
	r.POST("/v1/auth/login", func(c *gin.Context) { c.Status(http.StatusUnauthorized) })
	r.POST("/v1/admin/products", func(c *gin.Context) {
		c.Set("admin_id", uint(2))
		c.Status(http.StatusCreated)
	})

	for _, path := range []string{"/v1/auth/login", "/v1/nowhere", "/v1/auth/login"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, nil))
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/admin/products", nil))
	assert.Equal(t, http.StatusCreated, w.Code)

	assert.Eventually(t, func() bool {
		var count int64
		db.Model(&models.AuditLog{}).Count(&count)
		return count == 1
	}, 2*time.Second, 20*time.Millisecond)

	// give stray writes a chance to land before checking the total again
	time.Sleep(50 * time.Millisecond)
	var logs []models.AuditLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "POST /v1/admin/products", logs[0].Action)
}
