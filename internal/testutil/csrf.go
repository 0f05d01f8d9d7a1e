package testutil

import (
	"context"
	"net/http"
)

// gorilla/csrf stores the masked token under this context key. Tests set
// it directly so csrf.Token(r) returns a value without running csrf.Protect.
const csrfTokenKey = "gorilla.csrf.Token"

// TestCSRFToken is the token value WithCSRFToken places in the context.
const TestCSRFToken = "test-csrf-token"

// WithCSRFToken returns r carrying TestCSRFToken.
func WithCSRFToken(r *http.Request) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), csrfTokenKey, TestCSRFToken))
}

// NewAuthenticatedRequestWithCSRF builds a request for user that can render
// forms.
func NewAuthenticatedRequestWithCSRF(method, target string, user TestUser) *http.Request {
	return WithCSRFToken(NewAuthenticatedRequest(method, target, user))
}
