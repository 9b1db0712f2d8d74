package client_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/saulo-duarte/taskflow/internal/auth"
	"github.com/saulo-duarte/taskflow/internal/client"
	"github.com/saulo-duarte/taskflow/internal/config"
	"github.com/saulo-duarte/taskflow/internal/filtersync"
	"github.com/saulo-duarte/taskflow/internal/inertia"
	"github.com/saulo-duarte/taskflow/internal/middlewares"
	"github.com/saulo-duarte/taskflow/internal/storage"
	"github.com/saulo-duarte/taskflow/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "client-secret")
	os.Setenv("CRYPTO_KEY", "01234567890123456789012345678901")
	auth.Init()
	config.InitCrypto()
	os.Exit(m.Run())
}

type server struct {
	*httptest.Server
	db       *gorm.DB
	owner    uuid.UUID
	requests atomic.Int64
}

func newServer(t *testing.T) *server {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := config.Open(context.Background(), config.DriverSQLite, dsn)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&task.Task{}))

	covers, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	flash := inertia.NewFlashStore(false)
	renderer := inertia.NewRenderer("v1", flash)
	tasks := task.NewTaskContainer(db, covers, renderer, flash, 5)

	s := &server{db: db, owner: uuid.New()}
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			s.requests.Add(1)
			next.ServeHTTP(w, req)
		})
	})
	r.Use(middlewares.MethodOverride)
	r.Use(renderer.VersionMiddleware)
	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)
		r.Get("/", tasks.Handler.Home)
		r.Mount("/todos", task.Routes(tasks.Handler))
	})
	s.Server = httptest.NewServer(r)
	t.Cleanup(func() {
		s.Close()
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return s
}

func (s *server) client(t *testing.T) *client.Client {
	t.Helper()
	token, err := auth.GenerateJWTWithName(s.owner.String(), "user", "Ana", auth.SessionDuration)
	require.NoError(t, err)
	c, err := client.New(s.URL, client.WithVersion("v1"), client.WithSession(token))
	require.NoError(t, err)
	return c
}

func rows(t *testing.T, page *inertia.Page) []map[string]interface{} {
	t.Helper()
	todos, ok := page.Props["todos"].(map[string]interface{})
	require.True(t, ok, "todos prop missing")
	var out []map[string]interface{}
	for _, r := range todos["data"].([]interface{}) {
		out = append(out, r.(map[string]interface{}))
	}
	return out
}

func TestClientLifecycle(t *testing.T) {
	s := newServer(t)
	c := s.client(t)
	ctx := context.Background()

	page, err := c.Create(ctx, client.Draft{
		Title:       "Buy milk",
		Description: "2%",
		Cover:       &client.Attachment{Filename: "c.png", Content: []byte("\x89PNG\r\n\x1a\n0000")},
	})
	require.NoError(t, err)
	assert.Equal(t, task.HomeComponent, page.Component)
	assert.Equal(t, "Task created successfully.", client.FlashSuccess(page))

	list := rows(t, page)
	require.Len(t, list, 1)
	id := list[0]["id"].(string)
	assert.Contains(t, list[0]["cover_url"], storage.CoversURLPrefix)

	t.Run("ToggleSendsOnlyTheFlag", func(t *testing.T) {
		s.db.Model(&task.Task{}).Where("id = ?", id).Update("title", "Buy oat milk")

		page, err := c.Toggle(ctx, task.TaskResponse{ID: uuid.MustParse(id), Title: "Buy milk", Description: "2%"})
		require.NoError(t, err)
		assert.Equal(t, "Task marked as finished.", client.FlashSuccess(page))

		var stored task.Task
		require.NoError(t, s.db.First(&stored, "id = ?", id).Error)
		assert.True(t, stored.IsFinished)
		assert.Equal(t, "Buy oat milk", stored.Title, "a stale cached title is never written back")
		assert.Equal(t, "2%", stored.Description)
	})

	t.Run("UpdateValidation", func(t *testing.T) {
		page, err := c.Update(ctx, id, client.Draft{Title: "", Description: "keep"})
		var verr *client.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "The title field is required.", verr.Fields["title"])
		assert.NotNil(t, page)
	})

	t.Run("DeclinedDeleteSendsNothing", func(t *testing.T) {
		before := s.requests.Load()
		_, err := c.Delete(ctx, id, client.ConfirmFunc(func(context.Context, string) bool { return false }))
		assert.ErrorIs(t, err, client.ErrDeleteDeclined)
		assert.Equal(t, before, s.requests.Load())
	})

	t.Run("ConfirmedDelete", func(t *testing.T) {
		var asked string
		page, err := c.Delete(ctx, id, client.ConfirmFunc(func(_ context.Context, msg string) bool {
			asked = msg
			return true
		}))
		require.NoError(t, err)
		assert.Equal(t, client.DeleteConfirmation, asked)
		assert.Empty(t, rows(t, page))
	})
}

func TestClientNavigate(t *testing.T) {
	s := newServer(t)
	c := s.client(t)
	ctx := context.Background()

	for _, title := range []string{"milk", "bread", "milkshake"} {
		_, err := c.Create(ctx, client.Draft{Title: title})
		require.NoError(t, err)
	}

	var last *inertia.Page
	ctrl := filtersync.New(c, task.Filters{Status: task.StatusAll}, filtersync.Options{
		OnPage: func(p *inertia.Page) { last = p },
	})
	defer ctrl.Close()

	require.NoError(t, ctrl.SetStatus(ctx, task.StatusUnfinished))
	require.NotNil(t, last)
	assert.Len(t, rows(t, last), 3)
	filters := last.Props["filters"].(map[string]interface{})
	assert.Equal(t, "unfinished", filters["status"])

	page, err := c.Navigate(ctx, filtersync.Visit{URL: "/?search=milk"})
	require.NoError(t, err)
	assert.Len(t, rows(t, page), 2)
}

func TestClientVersionConflict(t *testing.T) {
	s := newServer(t)
	token, err := auth.GenerateJWT(s.owner.String(), "user", auth.SessionDuration)
	require.NoError(t, err)

	c, err := client.New(s.URL, client.WithVersion("old"), client.WithSession(token))
	require.NoError(t, err)

	_, err = c.Navigate(context.Background(), filtersync.Visit{URL: "/?page=2"})
	var conflict *client.VersionConflictError
	require.True(t, errors.As(err, &conflict))
	assert.ErrorIs(t, err, client.ErrVersionConflict)
	assert.Equal(t, "/?page=2", conflict.Location)
}

func TestClientUnauthenticated(t *testing.T) {
	s := newServer(t)
	c, err := client.New(s.URL)
	require.NoError(t, err)

	_, err = c.Navigate(context.Background(), filtersync.Visit{})
	var conflict *client.VersionConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, auth.LoginPath, conflict.Location)

	_, err = c.Delete(context.Background(), uuid.NewString(), client.ConfirmFunc(func(context.Context, string) bool { return true }))
	var status *client.StatusError
	require.True(t, errors.As(err, &status))
	assert.Equal(t, http.StatusUnauthorized, status.Code)
}
