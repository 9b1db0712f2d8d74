package client

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/saulo-duarte/taskflow/internal/inertia"
)

var (
	ErrVersionConflict  = errors.New("asset version changed, full reload required")
	ErrNotInertia       = errors.New("response is not an inertia page")
	ErrDeleteDeclined   = errors.New("delete not confirmed")
	ErrSubmitInProgress = errors.New("form submission already in progress")
)

// VersionConflictError carries the location the server wants loaded with a
// full page visit, after an asset version change or a lost session.
type VersionConflictError struct {
	Location string
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("%s: %s", ErrVersionConflict, e.Location)
}

func (e *VersionConflictError) Unwrap() error {
	return ErrVersionConflict
}

type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, strings.TrimSpace(e.Body))
}

// ValidationError holds field-keyed messages returned in the page errors prop,
// or produced locally before any request.
type ValidationError struct {
	Fields map[string]string
	Page   *inertia.Page
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
