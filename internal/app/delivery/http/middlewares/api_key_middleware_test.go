package middlewares

import (
	"doctor-appointment-service/internal/app/config"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/utils"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRequireAdminAPIKey(t *testing.T) {
	logger := zap.NewNop()

	testAPIKey := "test-admin-api-key-12345"
	hash, err := utils.HashAPIKey(testAPIKey)
	require.NoError(t, err)

	middlewares := &Middlewares{
		Log: logger,
		InternalConfig: &config.InternalConfig{
			App: config.App{AdminAPIKeyHash: hash},
		},
	}

	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKeyAuth, ok := r.Context().Value(constvars.CONTEXT_ADMIN_API_KEY_AUTH).(bool)
		assert.True(t, ok, "admin api key flag should be set")
		assert.True(t, apiKeyAuth, "admin api key flag should be true")

		w.WriteHeader(http.StatusOK)
		w.Write([]byte("success"))
	})

	t.Run("Valid API Key", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/doctors", nil)
		req.Header.Set(constvars.HeaderAPIKey, testAPIKey)

		rr := httptest.NewRecorder()
		middlewares.RequireAdminAPIKey(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, "should return 200 OK for valid API key")
		assert.Equal(t, "success", rr.Body.String())
	})

	t.Run("Missing API Key", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/doctors", nil)

		rr := httptest.NewRecorder()
		middlewares.RequireAdminAPIKey(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "should return 401 Unauthorized for missing API key")
	})

	t.Run("Invalid API Key", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/doctors/1", nil)
		req.Header.Set(constvars.HeaderAPIKey, "invalid-api-key")

		rr := httptest.NewRecorder()
		middlewares.RequireAdminAPIKey(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "should return 401 Unauthorized for invalid API key")
	})

	t.Run("Case Sensitivity", func(t *testing.T) {
		req := httptest.NewRequest("PUT", "/blogs/1", nil)
		req.Header.Set(constvars.HeaderAPIKey, "TEST-ADMIN-API-KEY-12345")

		rr := httptest.NewRecorder()
		middlewares.RequireAdminAPIKey(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "should return 401 Unauthorized for case-mismatched API key")
	})
}

func TestRequireAdminAPIKey_Disabled(t *testing.T) {
	middlewares := &Middlewares{
		Log:            zap.NewNop(),
		InternalConfig: &config.InternalConfig{},
	}

	req := httptest.NewRequest("POST", "/doctors", nil)
	rr := httptest.NewRecorder()
	middlewares.RequireAdminAPIKey(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code, "guard should be open when no hash is configured")
}
