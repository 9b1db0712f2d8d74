package middlewares

import (
	"net/http"
	"strings"
)

const (
	MethodOverrideField  = "_method"
	MethodOverrideHeader = "X-HTTP-Method-Override"

	// MaxRequestBytes bounds form bodies, cover uploads included.
	MaxRequestBytes = 8 << 20
	maxFormMemory   = 4 << 20
)

var overridable = map[string]bool{
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// MethodOverride lets HTML forms, which can only POST, reach PUT, PATCH and
// DELETE routes through a _method field or the override header.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			next.ServeHTTP(w, r)
			return
		}

		override := r.Header.Get(MethodOverrideHeader)
		if override == "" && isForm(r) {
			r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBytes)
			if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
				_ = r.ParseMultipartForm(maxFormMemory)
			}
			override = r.PostFormValue(MethodOverrideField)
		}

		if m := strings.ToUpper(strings.TrimSpace(override)); overridable[m] {
			r.Method = m
		}
		next.ServeHTTP(w, r)
	})
}

func isForm(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return strings.HasPrefix(ct, "multipart/form-data") ||
		strings.HasPrefix(ct, "application/x-www-form-urlencoded")
}
