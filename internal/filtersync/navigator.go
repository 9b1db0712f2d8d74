package filtersync

import (
	"context"

	"github.com/saulo-duarte/taskflow/internal/inertia"
)

// Visit describes one Inertia navigation.
type Visit struct {
	URL string
	// Replace overwrites the current history entry instead of pushing one.
	Replace bool
	// PreserveState keeps client-only UI state such as scroll position.
	PreserveState bool
}

type Navigator interface {
	Navigate(ctx context.Context, v Visit) (*inertia.Page, error)
}

type NavigatorFunc func(ctx context.Context, v Visit) (*inertia.Page, error)

func (f NavigatorFunc) Navigate(ctx context.Context, v Visit) (*inertia.Page, error) {
	return f(ctx, v)
}
