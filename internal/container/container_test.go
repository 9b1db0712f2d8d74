package container_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/saulo-duarte/taskflow/internal/auth"
	"github.com/saulo-duarte/taskflow/internal/config"
	"github.com/saulo-duarte/taskflow/internal/container"
	"github.com/saulo-duarte/taskflow/internal/inertia"
	"github.com/saulo-duarte/taskflow/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type stubProvider struct{}

func (stubProvider) AuthCodeURL(state string) string { return "https://accounts.example.com/?state=" + state }

func (stubProvider) Exchange(context.Context, string) (*oauth2.Token, error) {
	return &oauth2.Token{AccessToken: "a"}, nil
}

func (stubProvider) Profile(context.Context, *oauth2.Token) (*user.GoogleProfile, error) {
	return &user.GoogleProfile{ID: "g-1", Email: "ana@example.com", Name: "Ana"}, nil
}

func newApp(t *testing.T) (*container.Container, http.Handler) {
	t.Helper()
	t.Setenv("JWT_SECRET", "container-secret")
	t.Setenv("CRYPTO_KEY", "01234567890123456789012345678901")

	db, err := config.Open(context.Background(), config.DriverSQLite,
		fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	require.NoError(t, container.Migrate(db))

	settings := &config.Settings{
		Env:          config.EnvLocal,
		LogLevel:     "warn",
		StorageDir:   t.TempDir(),
		AssetVersion: "test",
		PageSize:     10,
	}
	c, err := container.New(context.Background(), settings,
		container.WithDB(db), container.WithGoogleProvider(stubProvider{}))
	require.NoError(t, err)
	return c, c.Router()
}

func login(t *testing.T, h http.Handler) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"code":"x"}`)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	t.Fatal("no session cookie")
	return nil
}

func TestRouter(t *testing.T) {
	_, h := newApp(t)

	t.Run("HomeRequiresSession", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("BrowserWithoutSessionGoesToLogin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept", "text/html")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/auth/google", rec.Header().Get("Location"))
	})

	session := login(t, h)

	t.Run("FirstLoadIsHTML", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(session)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, rec.Body.String(), `data-page="`)
		assert.Contains(t, rec.Body.String(), "No tasks found.")
	})

	t.Run("CreateThroughOverrideForm", func(t *testing.T) {
		form := url.Values{"title": {"From form"}}
		req := httptest.NewRequest(http.MethodPost, "/todos", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(session)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
	})

	t.Run("StaleVersion", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?status=finished", nil)
		req.Header.Set(inertia.HeaderInertia, "true")
		req.Header.Set(inertia.HeaderVersion, "old")
		req.AddCookie(session)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "/?status=finished", rec.Header().Get(inertia.HeaderLocation))
	})

	t.Run("CurrentUser", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		req.AddCookie(session)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "ana@example.com")
	})

	t.Run("SwaggerDoc", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "/todos/{id}/status")
	})

	t.Run("MissingCover", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/storage/covers/../../etc/passwd", nil))
		assert.NotEqual(t, http.StatusOK, rec.Code)
	})
}
