// Package methodoverride lets HTML forms issue PATCH and DELETE.
//
// Browsers only submit GET and POST. A POST form carrying a hidden
// _method field of PATCH, PUT or DELETE is rewritten to that method before
// routing:
//
//	<form method="POST" action="/jobs/{{.ID}}">
//	  <input type="hidden" name="_method" value="PATCH">
package methodoverride

import (
	"net/http"
	"strings"
)

// FieldName is the form field that carries the override.
const FieldName = "_method"

// HeaderName is accepted as well, for scripted clients.
const HeaderName = "X-HTTP-Method-Override"

var allowed = map[string]struct{}{
	http.MethodPut:    {},
	http.MethodPatch:  {},
	http.MethodDelete: {},
}

// Middleware rewrites POST requests whose _method field (or override
// header) names PUT, PATCH or DELETE. Other methods and values pass through.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			m := r.Header.Get(HeaderName)
			if m == "" && isForm(r) {
				m = r.PostFormValue(FieldName)
			}
			m = strings.ToUpper(strings.TrimSpace(m))
			if _, ok := allowed[m]; ok {
				r.Method = m
			}
		}
		next.ServeHTTP(w, r)
	})
}

func isForm(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return strings.HasPrefix(ct, "application/x-www-form-urlencoded") ||
		strings.HasPrefix(ct, "multipart/form-data")
}
