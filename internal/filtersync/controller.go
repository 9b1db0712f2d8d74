// Package filtersync keeps the search box and status selector of the task
// list in step with the server, debouncing keystrokes into navigations.
package filtersync

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"time"

	"github.com/saulo-duarte/taskflow/internal/inertia"
	"github.com/saulo-duarte/taskflow/internal/task"
)

const DefaultDebounce = 300 * time.Millisecond

var (
	ErrClosed = errors.New("filter controller closed")
	// ErrSuperseded is returned when a newer navigation was issued before
	// this one completed; its response was discarded.
	ErrSuperseded = errors.New("navigation superseded by a newer one")
)

type Options struct {
	Debounce time.Duration
	Path     string
	Timers   TimerFunc
	// OnPage receives every page the controller accepts. It must not call
	// SetStatus or Visit synchronously.
	OnPage func(*inertia.Page)
	// OnError receives failures of debounced navigations, which have no caller.
	OnError func(error)
}

type Controller struct {
	nav  Navigator
	opts Options

	ctx    context.Context
	cancel context.CancelFunc

	mu              sync.Mutex
	query           string
	status          task.StatusFilter
	lastSyncedQuery string
	// issuedQuery is the query of the latest filter navigation, answered or not.
	issuedQuery string
	timer           Timer
	timerGen        uint64
	token           uint64
	closed          bool

	deliver sync.Mutex
}

func New(nav Navigator, initial task.Filters, opts Options) *Controller {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Path == "" {
		opts.Path = task.HomePath
	}
	if opts.Timers == nil {
		opts.Timers = afterFunc
	}
	status := initial.Status
	if !status.IsValid() {
		status = task.StatusAll
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		nav:             nav,
		opts:            opts,
		ctx:             ctx,
		cancel:          cancel,
		query:           initial.Search,
		status:          status,
		lastSyncedQuery: initial.Search,
		issuedQuery:     initial.Search,
	}
}

func (c *Controller) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

func (c *Controller) Status() task.StatusFilter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *Controller) LastSyncedQuery() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSyncedQuery
}

// SetQuery echoes text locally and (re)starts the debounce window.
func (c *Controller) SetQuery(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	c.query = text
	c.stopTimerLocked()
	gen := c.timerGen
	c.timer = c.opts.Timers(c.opts.Debounce, func() { c.onTimer(gen) })
}

func (c *Controller) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.timerGen++
}

func (c *Controller) onTimer(gen uint64) {
	c.mu.Lock()
	if c.closed || gen != c.timerGen {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	if c.query == c.issuedQuery {
		c.mu.Unlock()
		return
	}
	visit, token, query := c.filterVisitLocked()
	c.mu.Unlock()

	if _, err := c.navigate(c.ctx, token, visit, &query); err != nil && !errors.Is(err, ErrSuperseded) && !errors.Is(err, ErrClosed) {
		if c.opts.OnError != nil {
			c.opts.OnError(err)
		}
	}
}

// SetStatus cancels any pending debounce and navigates right away with the
// current query.
func (c *Controller) SetStatus(ctx context.Context, status task.StatusFilter) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if !status.IsValid() {
		status = task.StatusAll
	}
	c.status = status
	c.stopTimerLocked()
	visit, token, query := c.filterVisitLocked()
	c.mu.Unlock()

	_, err := c.navigate(ctx, token, visit, &query)
	return err
}

// Visit follows a pagination link. Links without a URL are disabled and
// produce no navigation.
func (c *Controller) Visit(ctx context.Context, link task.Link) error {
	if link.URL == nil {
		return nil
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.token++
	token := c.token
	// Link targets carry the filters the server last answered for.
	c.issuedQuery = c.lastSyncedQuery
	c.mu.Unlock()

	_, err := c.navigate(ctx, token, Visit{URL: *link.URL, PreserveState: true}, nil)
	return err
}

// Close cancels the pending debounce and in-flight debounced navigation.
// Responses arriving afterwards are dropped. Close is idempotent.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.stopTimerLocked()
	c.cancel()
}

func (c *Controller) filterVisitLocked() (Visit, uint64, string) {
	q := url.Values{}
	q.Set("search", c.query)
	q.Set("status", string(c.status))

	c.token++
	c.issuedQuery = c.query
	return Visit{
		URL:           c.opts.Path + "?" + q.Encode(),
		Replace:       true,
		PreserveState: true,
	}, c.token, c.query
}

func (c *Controller) navigate(ctx context.Context, token uint64, v Visit, syncedQuery *string) (*inertia.Page, error) {
	page, err := c.nav.Navigate(ctx, v)
	if err != nil {
		c.mu.Lock()
		if token == c.token {
			c.issuedQuery = c.lastSyncedQuery
		}
		c.mu.Unlock()
		return nil, err
	}

	c.deliver.Lock()
	defer c.deliver.Unlock()

	c.mu.Lock()
	switch {
	case c.closed:
		c.mu.Unlock()
		return nil, ErrClosed
	case token != c.token:
		c.mu.Unlock()
		return nil, ErrSuperseded
	}
	if syncedQuery != nil {
		c.lastSyncedQuery = *syncedQuery
	}
	c.mu.Unlock()

	if c.opts.OnPage != nil {
		c.opts.OnPage(page)
	}
	return page, nil
}
