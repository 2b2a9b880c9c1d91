package client

import (
	"errors"
	"fmt"
)

// Common errors returned by the client.
var (
	// ErrRetryExhausted is returned when all retry attempts are exhausted.
	ErrRetryExhausted = errors.New("retry attempts exhausted")

	// ErrContextCancelled is returned when the context is cancelled during retry.
	ErrContextCancelled = errors.New("context cancelled")
)

// ErrorClass represents a classification of fetch errors.
type ErrorClass string

const (
	// ErrorClassClient represents 4xx client errors (other than 429).
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx server errors.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassRateLimit represents 429 rate limit errors.
	ErrorClassRateLimit ErrorClass = "rate_limit"

	// ErrorClassNetwork represents network/timeout errors.
	ErrorClassNetwork ErrorClass = "network"
)

// bodyExcerptLimit bounds the response body excerpt carried by a FetchError.
const bodyExcerptLimit = 300

// FetchError represents a failed help-center API request.
type FetchError struct {
	URL         string
	StatusCode  int
	ErrorClass  ErrorClass
	BodyExcerpt string
	Err         error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s error (GET %s): %v", e.ErrorClass, e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s error (GET %s -> %d): %s",
		e.ErrorClass, e.URL, e.StatusCode, e.BodyExcerpt)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the error is worth another attempt.
func (e *FetchError) Retryable() bool {
	return shouldRetry(e.ErrorClass)
}

// shouldRetry determines if an error should be retried based on its classification.
// Only rate limit cool-downs and transport-level failures are transient; any
// other non-success status is treated as permanent and surfaces immediately.
func shouldRetry(errorClass ErrorClass) bool {
	switch errorClass {
	case ErrorClassRateLimit:
		return true
	case ErrorClassNetwork:
		return true
	default:
		return false
	}
}

// classify maps an error to its class for retry dispatch and metrics.
// Errors that are not FetchErrors are treated as network-level failures.
func classify(err error) ErrorClass {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.ErrorClass
	}
	return ErrorClassNetwork
}

// excerpt truncates a response body for inclusion in a FetchError.
func excerpt(body []byte) string {
	if len(body) > bodyExcerptLimit {
		return string(body[:bodyExcerptLimit])
	}
	return string(body)
}
