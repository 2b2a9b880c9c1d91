// Package testutil provides testing utilities for the help-center export.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
)

// MockResponse defines the behavior for a mock help-center endpoint.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
}

// MockHelpCenter is a configurable mock help-center API server.
type MockHelpCenter struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]http.HandlerFunc

	// Tracking
	RequestCount int
	LastAuth     string
}

// NewMockHelpCenter creates a new mock server.
func NewMockHelpCenter() *MockHelpCenter {
	mock := &MockHelpCenter{
		handlers: make(map[string]http.HandlerFunc),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.LastAuth = r.Header.Get("Authorization")
		mock.mu.Unlock()

		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "RecordNotFound"}`))
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockHelpCenter) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockHelpCenter) Close() {
	m.server.Close()
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockHelpCenter) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// SetHandler sets a custom handler for a specific path.
func (m *MockHelpCenter) SetHandler(path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a fixed response for a path.
func (m *MockHelpCenter) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}
		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
		}
		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// SetJSON configures a 200 response with the given object as body.
func (m *MockHelpCenter) SetJSON(path string, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("marshal mock body: %v", err))
	}
	m.SetResponse(path, MockResponse{
		StatusCode: http.StatusOK,
		Body:       string(body),
	})
}

// SetListing registers a cursor-paginated listing at path. Each page's
// items appear under itemsKey and all pages but the last point at the
// next one via next_page.
func (m *MockHelpCenter) SetListing(path, itemsKey string, pages [][]map[string]any) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		page := 1
		if value := r.URL.Query().Get("page"); value != "" {
			if n, err := strconv.Atoi(value); err == nil && n >= 1 {
				page = n
			}
		}
		if page > len(pages) {
			page = len(pages)
		}

		body := map[string]any{
			itemsKey:    pages[page-1],
			"next_page": nil,
		}
		if page < len(pages) {
			body["next_page"] = fmt.Sprintf("%s%s?page=%d", m.URL(), path, page+1)
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(body)
	})
}

// NewRateLimitResponse creates a 429 response with a Retry-After header.
func NewRateLimitResponse(retryAfterSeconds int) MockResponse {
	return MockResponse{
		StatusCode: http.StatusTooManyRequests,
		Body:       `{"error": "RateLimited"}`,
		Headers: map[string]string{
			"Retry-After": strconv.Itoa(retryAfterSeconds),
		},
	}
}

// RateLimitThenSucceed returns a handler that responds 429 with the given
// Retry-After for the first failures requests, then serves body.
func RateLimitThenSucceed(failures, retryAfterSeconds int, body string) http.HandlerFunc {
	var mu sync.Mutex
	calls := 0
	return func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()

		if n <= failures {
			w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error": "RateLimited"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(body))
	}
}
