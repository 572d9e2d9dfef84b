package server

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/porcinet/herdbook/internal/api/middleware"
	"github.com/porcinet/herdbook/internal/metrics"
	"github.com/porcinet/herdbook/internal/mocks"
)

func publicKeyPEM(t *testing.T) string {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	return string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))
}

func TestRouter(t *testing.T) {
	ctrl := gomock.NewController(t)
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	m.ObserveWeighing("recorded")

	s := New(Config{Auth: middleware.AuthConfig{JWTPublicKey: publicKeyPEM(t)}},
		mocks.NewMockWeighingService(ctrl), mocks.NewMockMigrationService(ctrl), reg)
	router, err := s.Router()
	require.NoError(t, err)

	t.Run("health", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("metrics", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `herdbook_weighings_total{outcome="recorded"} 1`)
	})

	t.Run("cors preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/migrations/individual-to-batch", nil)
		req.Header.Set("Origin", "https://app.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("api requires a token", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/projects/p-1/migrations", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRouter_RequiresPublicKey(t *testing.T) {
	s := New(Config{}, nil, nil, prometheus.NewRegistry())
	_, err := s.Router()
	assert.ErrorContains(t, err, "JWT public key not configured")
}
