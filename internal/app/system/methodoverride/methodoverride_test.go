package methodoverride

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func seenMethod(t *testing.T, req *http.Request) string {
	t.Helper()
	var got string
	Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Method
	})).ServeHTTP(httptest.NewRecorder(), req)
	return got
}

func formPost(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/jobs/1", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestMiddleware(t *testing.T) {
	tests := []struct {
		name string
		req  *http.Request
		want string
	}{
		{"patch field", formPost(url.Values{"_method": {"PATCH"}, "title": {"x"}}), http.MethodPatch},
		{"delete lowercase", formPost(url.Values{"_method": {"delete"}}), http.MethodDelete},
		{"no field", formPost(url.Values{"title": {"x"}}), http.MethodPost},
		{"disallowed value", formPost(url.Values{"_method": {"GET"}}), http.MethodPost},
		{"get is never rewritten", httptest.NewRequest(http.MethodGet, "/jobs/1?_method=DELETE", nil), http.MethodGet},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := seenMethod(t, tt.req); got != tt.want {
				t.Errorf("method = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMiddleware_Header(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/jobs/1", nil)
	req.Header.Set(HeaderName, "DELETE")
	if got := seenMethod(t, req); got != http.MethodDelete {
		t.Errorf("method = %s, want DELETE", got)
	}
}

func TestMiddleware_FormStillReadable(t *testing.T) {
	req := formPost(url.Values{"_method": {"PATCH"}, "title": {"Designer"}})
	var title string
	Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		title = r.FormValue("title")
	})).ServeHTTP(httptest.NewRecorder(), req)
	if title != "Designer" {
		t.Errorf("title = %q, want Designer", title)
	}
}
