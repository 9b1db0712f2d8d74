package task_test

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/taskflow/internal/auth"
	"github.com/saulo-duarte/taskflow/internal/config"
	"github.com/saulo-duarte/taskflow/internal/storage"
	"github.com/saulo-duarte/taskflow/internal/task"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := config.Open(context.Background(), config.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&task.Task{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func ctxFor(userID uuid.UUID) context.Context {
	return auth.WithClaims(context.Background(), &auth.Claims{UserID: userID.String(), Role: "user", Name: "Ana"})
}

func seedTask(t *testing.T, db *gorm.DB, userID uuid.UUID, title string, finished bool, createdAt time.Time) *task.Task {
	t.Helper()
	tk := &task.Task{
		ID:         uuid.New(),
		UserID:     userID,
		Title:      title,
		IsFinished: finished,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
	if err := db.Create(tk).Error; err != nil {
		t.Fatalf("seed task: %v", err)
	}
	return tk
}

type memCoverStore struct {
	mu      sync.Mutex
	objects map[string]string
	saveErr error
}

func newMemCoverStore() *memCoverStore {
	return &memCoverStore{objects: map[string]string{}}
}

func (m *memCoverStore) Save(_ context.Context, owner, filename string, r io.Reader) (string, error) {
	if m.saveErr != nil {
		return "", m.saveErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	key := owner + "/" + uuid.NewString() + "-" + filename
	m.mu.Lock()
	m.objects[key] = string(b)
	m.mu.Unlock()
	return key, nil
}

func (m *memCoverStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.objects[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return io.NopCloser(strings.NewReader(v)), nil
}

func (m *memCoverStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.objects, key)
	m.mu.Unlock()
	return nil
}

func (m *memCoverStore) URL(key string) string {
	return storage.CoversURLPrefix + key
}

func (m *memCoverStore) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}
