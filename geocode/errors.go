// Copyright 2026 The Community Groups Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNotFound is wrapped by geocoders when a query has no match.
var ErrNotFound = errors.New("location not found")

// Error represents a geocoding specific failure.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// ErrorKind classifies geocoding failures.
type ErrorKind int

const (
	// KindUnknown unknown failure.
	KindUnknown ErrorKind = iota
	// KindRateLimit rate limit reached.
	KindRateLimit
	// KindQuotaExceeded quota exceeded or access denied.
	KindQuotaExceeded
	// KindTimeout the request timed out.
	KindTimeout
	// KindNotFound no match for the query.
	KindNotFound
	// KindInvalidRequest the service rejected the request.
	KindInvalidRequest
	// KindNetwork transport or upstream availability problem.
	KindNetwork
)

func (k ErrorKind) String() string {
	switch k {
	case KindRateLimit:
		return "rate_limit"
	case KindQuotaExceeded:
		return "quota_exceeded"
	case KindTimeout:
		return "timeout"
	case KindNotFound:
		return "not_found"
	case KindInvalidRequest:
		return "invalid_request"
	case KindNetwork:
		return "network"
	default:
		return "unknown"
	}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func kindOf(err error) (ErrorKind, bool) {
	var geoErr *Error
	if errors.As(err, &geoErr) {
		return geoErr.Kind, true
	}

	return KindUnknown, false
}

// IsRateLimitError reports whether err is caused by rate limiting.
func IsRateLimitError(err error) bool {
	if err == nil {
		return false
	}

	if kind, ok := kindOf(err); ok {
		return kind == KindRateLimit
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests") ||
		strings.Contains(errStr, "429")
}

// IsQuotaExceededError reports whether err is caused by an exhausted quota.
func IsQuotaExceededError(err error) bool {
	if err == nil {
		return false
	}

	if kind, ok := kindOf(err); ok {
		return kind == KindQuotaExceeded
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "over_query_limit") ||
		strings.Contains(errStr, "quota exceeded")
}

// IsTimeoutError reports whether err is caused by a timeout.
func IsTimeoutError(err error) bool {
	if err == nil {
		return false
	}

	if kind, ok := kindOf(err); ok {
		return kind == KindTimeout
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded")
}

// ClassifyHTTPStatus maps an HTTP status code to a geocoding error.
func ClassifyHTTPStatus(statusCode int) *Error {
	switch statusCode {
	case http.StatusTooManyRequests:
		return &Error{Kind: KindRateLimit, Message: "rate limit reached"}
	case http.StatusForbidden, http.StatusUnauthorized:
		return &Error{Kind: KindQuotaExceeded, Message: "quota exceeded or access denied"}
	case http.StatusBadRequest:
		return &Error{Kind: KindInvalidRequest, Message: "invalid request"}
	case http.StatusNotFound:
		return &Error{Kind: KindNotFound, Message: "location not found", Err: ErrNotFound}
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return &Error{
			Kind:    KindNetwork,
			Message: fmt.Sprintf("service unavailable (status %d)", statusCode),
		}
	default:
		return &Error{
			Kind:    KindUnknown,
			Message: fmt.Sprintf("HTTP error %d", statusCode),
		}
	}
}
