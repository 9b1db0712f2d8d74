package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrInvalidKey = errors.New("invalid storage key")
	ErrNotFound   = errors.New("object not found")
)

// CoverStore keeps task cover images. Keys are opaque to callers.
type CoverStore interface {
	Save(ctx context.Context, owner, filename string, r io.Reader) (string, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
}
