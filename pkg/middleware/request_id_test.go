package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRequestIDMiddleware_GenerateID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestIDMiddleware(zap.NewNop()))

	var fromContext string
	router.GET("/test", func(c *gin.Context) {
		fromContext = RequestIDFromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"request_id": GetRequestID(c)})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	responseID := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(responseID)
	assert.NoError(t, err)
	assert.Equal(t, responseID, fromContext)
}

func TestRequestIDMiddleware_UseProvidedID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestIDMiddleware(zap.NewNop()))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": GetRequestID(c)})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(RequestIDHeader, "fridge-door-42")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "fridge-door-42", w.Header().Get(RequestIDHeader))
	assert.JSONEq(t, `{"request_id":"fridge-door-42"}`, w.Body.String())
}

func TestRequestIDFromContext_Missing(t *testing.T) {
	assert.Empty(t, RequestIDFromContext(context.Background()))
}

func TestContextWithRequestID(t *testing.T) {
	ctx := ContextWithRequestID(context.Background(), "fridge-door-7")

	assert.Equal(t, "fridge-door-7", RequestIDFromContext(ctx))
}

func TestGetRequestID_Missing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Empty(t, GetRequestID(c))
}
