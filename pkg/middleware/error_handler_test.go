package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "fridge-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newErrorRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	router := gin.New()
	router.Use(RecoveryHandler(logger))
	router.Use(ErrorHandler(logger))
	router.GET("/standard", func(c *gin.Context) {
		_ = c.Error(apperrors.NewInvalidCategory("DAIRY"))
	})
	router.GET("/plain", func(c *gin.Context) {
		_ = c.Error(errors.New("boom"))
	})
	router.GET("/panic", func(c *gin.Context) {
		panic("fridge exploded")
	})
	router.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) apperrors.StandardError {
	t.Helper()
	var body apperrors.StandardError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestErrorHandler_StandardError(t *testing.T) {
	w := httptest.NewRecorder()
	newErrorRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/standard", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "InvalidCategory", body.Code)
	assert.Contains(t, body.Details, "DAIRY")
}

func TestErrorHandler_PlainError(t *testing.T) {
	w := httptest.NewRecorder()
	newErrorRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/plain", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "InternalError", body.Code)
	assert.Equal(t, "boom", body.Details)
}

func TestErrorHandler_NoError(t *testing.T) {
	w := httptest.NewRecorder()
	newErrorRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRecoveryHandler(t *testing.T) {
	w := httptest.NewRecorder()
	newErrorRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "InternalError", decodeError(t, w).Code)
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORSMiddleware())
	router.GET("/items", func(c *gin.Context) { c.Status(http.StatusOK) })

	preflight := httptest.NewRecorder()
	router.ServeHTTP(preflight, httptest.NewRequest(http.MethodOptions, "/items", nil))
	assert.Equal(t, http.StatusNoContent, preflight.Code)
	assert.Equal(t, "*", preflight.Header().Get("Access-Control-Allow-Origin"))

	get := httptest.NewRecorder()
	router.ServeHTTP(get, httptest.NewRequest(http.MethodGet, "/items", nil))
	assert.Equal(t, http.StatusOK, get.Code)
	assert.Contains(t, get.Header().Get("Access-Control-Expose-Headers"), ReplayHeader)
}
