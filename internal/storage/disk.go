package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/saulo-duarte/taskflow/internal/config"
)

const CoversURLPrefix = "/storage/covers/"

var allowedExt = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

type DiskStore struct {
	root string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	root := filepath.Join(dir, "covers")
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create cover dir: %w", err)
	}
	return &DiskStore{root: root}, nil
}

func (s *DiskStore) resolve(key string) (string, error) {
	if key == "" || strings.Contains(key, "\\") {
		return "", ErrInvalidKey
	}
	clean := path.Clean("/" + key)[1:]
	if clean != key || strings.HasPrefix(clean, "..") {
		return "", ErrInvalidKey
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}

func (s *DiskStore) Save(ctx context.Context, owner, filename string, r io.Reader) (string, error) {
	log := config.WithContext(ctx)

	if _, err := uuid.Parse(owner); err != nil {
		return "", ErrInvalidKey
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExt[ext] {
		ext = ".img"
	}
	key := owner + "/" + uuid.NewString() + ext

	full, err := s.resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create owner dir: %w", err)
	}

	f, err := os.OpenFile(full, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create cover file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(full)
		log.WithError(err).Error("Failed to write cover file")
		return "", fmt.Errorf("write cover file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(full)
		return "", err
	}

	log.WithField("cover_key", key).Debug("Cover stored")
	return key, nil
}

func (s *DiskStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	full, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	return f, err
}

func (s *DiskStore) Delete(_ context.Context, key string) error {
	full, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *DiskStore) URL(key string) string {
	if key == "" {
		return ""
	}
	return CoversURLPrefix + key
}

// Handler serves stored covers under CoversURLPrefix.
func (s *DiskStore) Handler() http.Handler {
	return http.StripPrefix(CoversURLPrefix, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		full, err := s.resolve(r.URL.Path)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		http.ServeFile(w, r, full)
	}))
}
