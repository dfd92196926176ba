package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mittirang/mittirang-backend/internal/i18n"
)

func TestPreferredLanguage(t *testing.T) {
	require.NoError(t, i18n.Initialize("../i18n/locales", "en"))

	tests := []struct {
		header string
		want   string
	}{
		{"", "en"},
		{"hi-IN,hi;q=0.9,en;q=0.8", "hi"},
		{"fr-FR, en-GB;q=0.8", "en"},
		{"de, fr", "en"},
		{"*, -, hi_IN", "hi"},
		{"EN-us", "en"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, preferredLanguage(tt.header, "en"), tt.header)
	}
}

func TestI18nMiddleware(t *testing.T) {
	require.NoError(t, i18n.Initialize("../i18n/locales", "en"))
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(I18nMiddleware("en"))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("lang")) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "hi-IN")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "hi", w.Body.String())
}
