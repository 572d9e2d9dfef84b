package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSetupCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)

	preflight := func(router *gin.Engine, origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/migrations/batch-to-individual", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("restricted origins", func(t *testing.T) {
		router := gin.New()
		router.Use(SetupCORS([]string{"https://farm.example.com"}))

		w := preflight(router, "https://farm.example.com")
		assert.Equal(t, "https://farm.example.com", w.Header().Get("Access-Control-Allow-Origin"))

		w = preflight(router, "https://elsewhere.example.com")
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("no origins configured allows all", func(t *testing.T) {
		router := gin.New()
		router.Use(SetupCORS(nil))

		w := preflight(router, "https://anywhere.example.com")
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})
}
