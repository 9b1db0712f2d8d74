// Package inertia implements the server side of the Inertia page protocol:
// full HTML responses on first load, JSON page objects on X-Inertia visits.
package inertia

import (
	"bytes"
	"encoding/json"
	"html/template"
	"io"
	"net/http"
	"strings"

	"github.com/saulo-duarte/taskflow/internal/config"
)

const (
	HeaderInertia          = "X-Inertia"
	HeaderVersion          = "X-Inertia-Version"
	HeaderLocation         = "X-Inertia-Location"
	HeaderPartialData      = "X-Inertia-Partial-Data"
	HeaderPartialComponent = "X-Inertia-Partial-Component"
)

type Props map[string]interface{}

type Page struct {
	Component string `json:"component"`
	Props     Props  `json:"props"`
	URL       string `json:"url"`
	Version   string `json:"version"`
}

// ViewFunc renders the server-side body of a component for non-Inertia loads.
type ViewFunc func(w io.Writer, props Props) error

type Renderer struct {
	version string
	shell   *template.Template
	views   map[string]ViewFunc
	flash   *FlashStore
}

func NewRenderer(version string, flash *FlashStore) *Renderer {
	return &Renderer{
		version: version,
		shell:   template.Must(template.New("shell").Parse(shellTemplate)),
		views:   make(map[string]ViewFunc),
		flash:   flash,
	}
}

func (rd *Renderer) Version() string {
	return rd.version
}

func (rd *Renderer) Register(component string, fn ViewFunc) {
	rd.views[component] = fn
}

func IsInertia(r *http.Request) bool {
	return r.Header.Get(HeaderInertia) == "true"
}

func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, component string, props Props) {
	log := config.WithContext(r.Context())

	page := Page{
		Component: component,
		Props:     rd.withShared(w, r, props),
		URL:       r.URL.RequestURI(),
		Version:   rd.version,
	}

	if IsInertia(r) {
		page.Props = partialProps(r, component, page.Props)
		w.Header().Set(HeaderInertia, "true")
		w.Header().Set("Vary", HeaderInertia)
		config.JSON(w, http.StatusOK, page)
		return
	}

	pageJSON, err := json.Marshal(page)
	if err != nil {
		log.WithError(err).Error("Failed to encode page object")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var body bytes.Buffer
	if view, ok := rd.views[component]; ok {
		if err := view(&body, page.Props); err != nil {
			log.WithError(err).WithField("component", component).Error("Failed to render view")
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Vary", HeaderInertia)
	if err := rd.shell.Execute(w, shellData{
		PageJSON: string(pageJSON),
		Body:     template.HTML(body.String()),
	}); err != nil {
		log.WithError(err).Error("Failed to write HTML shell")
	}
}

func (rd *Renderer) withShared(w http.ResponseWriter, r *http.Request, props Props) Props {
	out := make(Props, len(props)+2)
	for k, v := range props {
		out[k] = v
	}

	f := rd.flash.Pop(w, r)
	if _, ok := out["flash"]; !ok {
		flash := map[string]interface{}{}
		if f.Success != "" {
			flash["success"] = f.Success
		}
		if f.Error != "" {
			flash["error"] = f.Error
		}
		out["flash"] = flash
	}
	if _, ok := out["errors"]; !ok {
		errs := f.Errors
		if errs == nil {
			errs = map[string]string{}
		}
		out["errors"] = errs
	}
	return out
}

func partialProps(r *http.Request, component string, props Props) Props {
	if r.Header.Get(HeaderPartialComponent) != component {
		return props
	}
	only := r.Header.Get(HeaderPartialData)
	if only == "" {
		return props
	}
	out := Props{}
	for _, key := range strings.Split(only, ",") {
		key = strings.TrimSpace(key)
		if v, ok := props[key]; ok {
			out[key] = v
		}
	}
	if _, ok := out["errors"]; !ok {
		out["errors"] = props["errors"]
	}
	return out
}

// Redirect sends 303 so the follow-up request is always a GET, whatever the
// method of the original visit.
func Redirect(w http.ResponseWriter, r *http.Request, url string) {
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// Back redirects to the referring page, or to fallback without one.
func Back(w http.ResponseWriter, r *http.Request, fallback string) {
	target := r.Referer()
	if target == "" {
		target = fallback
	}
	Redirect(w, r, target)
}

// Location asks an Inertia client to leave the app and load url with a full
// page visit.
func Location(w http.ResponseWriter, url string) {
	w.Header().Set(HeaderLocation, url)
	w.WriteHeader(http.StatusConflict)
}

// VersionMiddleware forces a full reload when an Inertia GET was built
// against a different asset version.
func (rd *Renderer) VersionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IsInertia(r) && r.Method == http.MethodGet {
			if v := r.Header.Get(HeaderVersion); v != "" && v != rd.version {
				config.WithContext(r.Context()).
					WithField("client_version", v).
					Info("Asset version mismatch, forcing reload")
				Location(w, r.URL.RequestURI())
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

type shellData struct {
	PageJSON string
	Body     template.HTML
}

const shellTemplate = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>TaskFlow</title>
<link rel="stylesheet" href="/build/app.css">
<script type="module" src="/build/app.js" defer></script>
</head>
<body>
<div id="app" data-page="{{.PageJSON}}">{{.Body}}</div>
</body>
</html>
`
