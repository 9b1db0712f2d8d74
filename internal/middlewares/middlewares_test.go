package middlewares_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/taskflow/internal/middlewares"
)

func newRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middlewares.MethodOverride)
	r.Put("/todos/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("put " + chi.URLParam(r, "id") + " " + r.FormValue("title")))
	})
	r.Post("/todos", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("post"))
	})
	return r
}

func TestMethodOverride(t *testing.T) {
	router := newRouter()

	t.Run("Multipart", func(t *testing.T) {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		mw.WriteField("_method", "PUT")
		mw.WriteField("title", "Buy milk")
		mw.Close()

		req := httptest.NewRequest(http.MethodPost, "/todos/42", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK || rec.Body.String() != "put 42 Buy milk" {
			t.Errorf("expected PUT route, got %d %q", rec.Code, rec.Body.String())
		}
	})

	t.Run("URLEncoded", func(t *testing.T) {
		form := url.Values{"_method": {"put"}, "title": {"x"}}
		req := httptest.NewRequest(http.MethodPost, "/todos/7", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Body.String() != "put 7 x" {
			t.Errorf("expected PUT route, got %q", rec.Body.String())
		}
	})

	t.Run("Header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/todos/9", nil)
		req.Header.Set(middlewares.MethodOverrideHeader, "PUT")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if !strings.HasPrefix(rec.Body.String(), "put 9") {
			t.Errorf("expected PUT route, got %q", rec.Body.String())
		}
	})

	t.Run("IgnoresUnknownMethods", func(t *testing.T) {
		form := url.Values{"_method": {"TRACE"}}
		req := httptest.NewRequest(http.MethodPost, "/todos", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Body.String() != "post" {
			t.Errorf("expected POST route, got %q", rec.Body.String())
		}
	})
}

func TestCors(t *testing.T) {
	h := middlewares.Cors("https://app.example.com/")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/todos/1", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
		req.Header.Set("Access-Control-Request-Headers", "X-Inertia")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	t.Run("AllowedPreflight", func(t *testing.T) {
		rec := preflight("https://app.example.com")
		if rec.Header().Get("Access-Control-Allow-Origin") != "https://app.example.com" {
			t.Errorf("expected origin to be allowed, got %v", rec.Header())
		}
		if rec.Header().Get("Access-Control-Allow-Credentials") != "true" {
			t.Errorf("expected credentials to be allowed")
		}
		if rec.Code == http.StatusTeapot {
			t.Errorf("preflight must not reach the handler")
		}
	})

	t.Run("ForeignPreflight", func(t *testing.T) {
		rec := preflight("https://evil.example.com")
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("foreign origin must not be allowed, got %q", got)
		}
	})

	t.Run("SimpleRequest", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://app.example.com")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusTeapot {
			t.Errorf("expected the handler to run, got %d", rec.Code)
		}
		if rec.Header().Get("Access-Control-Expose-Headers") == "" {
			t.Errorf("expected exposed Inertia headers")
		}
	})

	t.Run("NoOrigins", func(t *testing.T) {
		closed := middlewares.Cors()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://app.example.com")
		rec := httptest.NewRecorder()
		closed.ServeHTTP(rec, req)
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("no origin may be allowed, got %q", got)
		}
	})
}
