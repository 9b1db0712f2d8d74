// Package client is the Go side of the task list UI: it talks to the server
// with Inertia visits the way the browser bundle does.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/saulo-duarte/taskflow/internal/auth"
	"github.com/saulo-duarte/taskflow/internal/config"
	"github.com/saulo-duarte/taskflow/internal/filtersync"
	"github.com/saulo-duarte/taskflow/internal/inertia"
	"github.com/saulo-duarte/taskflow/internal/middlewares"
	"github.com/saulo-duarte/taskflow/internal/task"
)

const DeleteConfirmation = "Are you sure you want to delete this task?"

type Confirmer interface {
	Confirm(ctx context.Context, message string) bool
}

type ConfirmFunc func(ctx context.Context, message string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, message string) bool {
	return f(ctx, message)
}

// Attachment is a cover image picked by the user.
type Attachment struct {
	Filename string
	Content  []byte
}

type Draft struct {
	Title       string
	Description string
	IsFinished  bool
	Cover       *Attachment
}

type Client struct {
	base    *url.URL
	http    *http.Client
	version string
}

type Option func(*Client)

// WithHTTPClient replaces the transport settings; a nil Jar is filled in
// because redirects carry the flash cookie.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		cp := *hc
		if cp.Jar == nil {
			cp.Jar = c.http.Jar
		}
		c.http = &cp
	}
}

func WithVersion(v string) Option {
	return func(c *Client) { c.version = v }
}

// WithSession attaches the jwt session cookie to every request.
func WithSession(token string) Option {
	return func(c *Client) {
		c.http.Jar.SetCookies(c.base, []*http.Cookie{{Name: auth.CookieName, Value: token, Path: "/"}})
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	c := &Client{base: base, http: &http.Client{Jar: jar}}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) Version() string {
	return c.version
}

var _ filtersync.Navigator = (*Client)(nil)

// Navigate performs a GET visit. Replace and PreserveState only affect
// client-side history and are not sent.
func (c *Client) Navigate(ctx context.Context, v filtersync.Visit) (*inertia.Page, error) {
	target := v.URL
	if target == "" {
		target = task.HomePath
	}
	req, err := c.newRequest(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) Create(ctx context.Context, d Draft) (*inertia.Page, error) {
	return c.submitDraft(ctx, "/todos", "", d)
}

// Update sends the whole draft through POST with a PUT override, since cover
// uploads need a multipart body.
func (c *Client) Update(ctx context.Context, id string, d Draft) (*inertia.Page, error) {
	return c.submitDraft(ctx, "/todos/"+url.PathEscape(id), http.MethodPut, d)
}

// SetFinished changes only the completion flag.
func (c *Client) SetFinished(ctx context.Context, id string, finished bool) (*inertia.Page, error) {
	form := url.Values{"is_finished": {boolField(finished)}}
	req, err := c.newRequest(ctx, http.MethodPatch, "/todos/"+url.PathEscape(id)+"/status", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.expectValid(c.do(req))
}

// Toggle flips the completion flag of a listed task.
func (c *Client) Toggle(ctx context.Context, t task.TaskResponse) (*inertia.Page, error) {
	return c.SetFinished(ctx, t.ID.String(), !t.IsFinished)
}

func (c *Client) Delete(ctx context.Context, id string, confirm Confirmer) (*inertia.Page, error) {
	if confirm == nil || !confirm.Confirm(ctx, DeleteConfirmation) {
		return nil, ErrDeleteDeclined
	}
	req, err := c.newRequest(ctx, http.MethodDelete, "/todos/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) submitDraft(ctx context.Context, path, override string, d Draft) (*inertia.Page, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fields := [][2]string{
		{"title", d.Title},
		{"description", d.Description},
		{"is_finished", boolField(d.IsFinished)},
	}
	if override != "" {
		fields = append(fields, [2]string{middlewares.MethodOverrideField, override})
	}
	for _, f := range fields {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return nil, err
		}
	}
	if d.Cover != nil {
		fw, err := mw.CreateFormFile("cover", d.Cover.Filename)
		if err != nil {
			return nil, err
		}
		if _, err := fw.Write(d.Cover.Content); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.expectValid(c.do(req))
}

func (c *Client) newRequest(ctx context.Context, method, target string, body io.Reader) (*http.Request, error) {
	ref, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("parse target: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base.ResolveReference(ref).String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set(inertia.HeaderInertia, "true")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("Accept", "text/html, application/xhtml+xml")
	if c.version != "" {
		req.Header.Set(inertia.HeaderVersion, c.version)
	}
	return req, nil
}

func (c *Client) do(req *http.Request) (*inertia.Page, error) {
	log := config.WithContext(req.Context()).WithField("url", req.URL.RequestURI())

	resp, err := c.http.Do(req)
	if err != nil {
		log.WithError(err).Warn("Inertia visit failed")
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusConflict {
		if loc := resp.Header.Get(inertia.HeaderLocation); loc != "" {
			log.Info("Server asked for a full reload")
			return nil, &VersionConflictError{Location: loc}
		}
	}
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, &StatusError{Code: resp.StatusCode, Body: string(b)}
	}
	if resp.Header.Get(inertia.HeaderInertia) != "true" {
		return nil, ErrNotInertia
	}

	var page inertia.Page
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode page: %w", err)
	}
	if page.Version != "" {
		c.version = page.Version
	}
	return &page, nil
}

func (c *Client) expectValid(page *inertia.Page, err error) (*inertia.Page, error) {
	if err != nil {
		return nil, err
	}
	if fields := PageErrors(page); len(fields) > 0 {
		return page, &ValidationError{Fields: fields, Page: page}
	}
	return page, nil
}

// PageErrors extracts the shared errors prop of a page.
func PageErrors(page *inertia.Page) map[string]string {
	if page == nil {
		return nil
	}
	raw, ok := page.Props["errors"].(map[string]interface{})
	if !ok || len(raw) == 0 {
		return nil
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		out[k] = fmt.Sprint(v)
	}
	return out
}

// FlashSuccess returns the success message flashed by the last mutation.
func FlashSuccess(page *inertia.Page) string {
	if page == nil {
		return ""
	}
	flash, _ := page.Props["flash"].(map[string]interface{})
	s, _ := flash["success"].(string)
	return s
}

func boolField(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
