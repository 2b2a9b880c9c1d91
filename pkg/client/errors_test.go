package client

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestFetchError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *FetchError
		want []string
	}{
		{
			name: "status error",
			err: &FetchError{
				URL:         "https://acme.zendesk.com/api/v2/help_center/articles.json",
				StatusCode:  404,
				ErrorClass:  ErrorClassClient,
				BodyExcerpt: `{"error": "RecordNotFound"}`,
			},
			want: []string{"client", "404", "RecordNotFound"},
		},
		{
			name: "wrapped transport error",
			err: &FetchError{
				URL:        "https://acme.zendesk.com/x",
				ErrorClass: ErrorClassNetwork,
				Err:        errors.New("connection refused"),
			},
			want: []string{"network", "connection refused"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, fragment := range tt.want {
				if !strings.Contains(msg, fragment) {
					t.Errorf("Error() = %q, missing %q", msg, fragment)
				}
			}
		})
	}
}

func TestFetchError_Unwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &FetchError{URL: "u", ErrorClass: ErrorClassNetwork, Err: inner}

	if !errors.Is(err, inner) {
		t.Error("errors.Is should find the wrapped error")
	}

	var fe *FetchError
	wrapped := fmt.Errorf("outer: %w", err)
	if !errors.As(wrapped, &fe) {
		t.Error("errors.As should find the FetchError through wrapping")
	}
}

func TestShouldRetry(t *testing.T) {
	tests := []struct {
		class ErrorClass
		want  bool
	}{
		{ErrorClassRateLimit, true},
		{ErrorClassNetwork, true},
		{ErrorClassClient, false},
		{ErrorClassServer, false},
		{ErrorClass(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.class), func(t *testing.T) {
			if got := shouldRetry(tt.class); got != tt.want {
				t.Errorf("shouldRetry(%q) = %v, want %v", tt.class, got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorClass
	}{
		{"fetch error", &FetchError{ErrorClass: ErrorClassRateLimit}, ErrorClassRateLimit},
		{"wrapped fetch error", fmt.Errorf("x: %w", &FetchError{ErrorClass: ErrorClassServer}), ErrorClassServer},
		{"plain error", errors.New("dial tcp: timeout"), ErrorClassNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify(tt.err); got != tt.want {
				t.Errorf("classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExcerpt(t *testing.T) {
	long := strings.Repeat("x", bodyExcerptLimit+100)
	if got := excerpt([]byte(long)); len(got) != bodyExcerptLimit {
		t.Errorf("excerpt length = %d, want %d", len(got), bodyExcerptLimit)
	}
	if got := excerpt([]byte("short")); got != "short" {
		t.Errorf("excerpt = %q, want %q", got, "short")
	}
}
