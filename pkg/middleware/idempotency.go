package middleware

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReplayHeader marks a response served from the idempotency cache
const ReplayHeader = "X-Idempotent-Replay"

var ErrRequestIDNotFound = errors.New("request ID not found")

// CachedResponse is a stored write response
type CachedResponse struct {
	Status int    `json:"status"`
	Body   []byte `json:"body"`
}

// RequestIDStore stores processed write responses for idempotency
type RequestIDStore interface {
	Store(ctx context.Context, key string, response CachedResponse, ttl time.Duration) error
	// Get returns ErrRequestIDNotFound for unknown or expired keys
	Get(ctx context.Context, key string) (CachedResponse, error)
}

// InMemoryRequestIDStore is an in-memory implementation of RequestIDStore
type InMemoryRequestIDStore struct {
	mu      sync.Mutex
	entries map[string]requestIDEntry
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

type requestIDEntry struct {
	response  CachedResponse
	expiresAt time.Time
}

// NewInMemoryRequestIDStore creates the store and starts a sweeper that drops
// expired entries every cleanupInterval. Call Close to stop it.
func NewInMemoryRequestIDStore(cleanupInterval time.Duration) *InMemoryRequestIDStore {
	s := &InMemoryRequestIDStore{
		entries: make(map[string]requestIDEntry),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go s.sweep(cleanupInterval)
	return s
}

func (s *InMemoryRequestIDStore) Store(ctx context.Context, key string, response CachedResponse, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = requestIDEntry{response: response, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *InMemoryRequestIDStore) Get(ctx context.Context, key string) (CachedResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return CachedResponse{}, ErrRequestIDNotFound
	}
	if s.now().After(entry.expiresAt) {
		delete(s.entries, key)
		return CachedResponse{}, ErrRequestIDNotFound
	}
	return entry.response, nil
}

// Close stops the sweeper
func (s *InMemoryRequestIDStore) Close() error {
	s.once.Do(func() { close(s.stop) })
	return nil
}

func (s *InMemoryRequestIDStore) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			now := s.now()
			for key, entry := range s.entries {
				if now.After(entry.expiresAt) {
					delete(s.entries, key)
				}
			}
			s.mu.Unlock()
		}
	}
}

func isWrite(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	return true
}

// idempotencyKey scopes a request id to one endpoint so a reused id on a
// different route is not answered with an unrelated response
func idempotencyKey(c *gin.Context, requestID string) string {
	return requestID + " " + c.Request.Method + " " + c.Request.URL.Path
}

// IdempotencyMiddleware replays the stored response of a write request whose
// X-Request-ID was already processed successfully
func IdempotencyMiddleware(store RequestIDStore, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := GetRequestID(c)
		if !isWrite(c.Request.Method) || requestID == "" {
			c.Next()
			return
		}

		cached, err := store.Get(c.Request.Context(), idempotencyKey(c, requestID))
		switch {
		case errors.Is(err, ErrRequestIDNotFound):
			c.Next()
			return
		case err != nil:
			// fail open
			logger.Warn("Error checking request ID",
				zap.String("request_id", requestID),
				zap.Error(err),
			)
			c.Next()
			return
		}

		logger.Info("Duplicate request detected, returning cached response",
			zap.String("request_id", requestID),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.Header(ReplayHeader, "true")
		c.Data(cached.Status, "application/json; charset=utf-8", cached.Body)
		c.Abort()
	}
}

// StoreResponseMiddleware records 2xx write responses for IdempotencyMiddleware
func StoreResponseMiddleware(store RequestIDStore, logger *zap.Logger, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := GetRequestID(c)
		if !isWrite(c.Request.Method) || requestID == "" {
			c.Next()
			return
		}

		writer := &responseWriter{ResponseWriter: c.Writer}
		c.Writer = writer

		c.Next()

		// errors are rendered later by ErrorHandler and are never cached
		status := writer.Status()
		if len(c.Errors) > 0 || !writer.Written() || status < 200 || status >= 300 {
			return
		}

		response := CachedResponse{Status: status, Body: writer.body}
		if err := store.Store(c.Request.Context(), idempotencyKey(c, requestID), response, ttl); err != nil {
			logger.Warn("Failed to store response for idempotency",
				zap.String("request_id", requestID),
				zap.Error(err),
			)
			return
		}
		logger.Debug("Stored response for idempotency",
			zap.String("request_id", requestID),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
		)
	}
}

// responseWriter captures the response body
type responseWriter struct {
	gin.ResponseWriter
	body []byte
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body = append(w.body, b...)
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body = append(w.body, s...)
	return w.ResponseWriter.WriteString(s)
}
