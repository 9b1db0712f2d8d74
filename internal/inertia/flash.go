package inertia

import (
	"encoding/json"
	"net/http"

	"github.com/saulo-duarte/taskflow/internal/config"
)

const FlashCookie = "taskflow_flash"

// Flash carries messages and field errors across exactly one redirect.
type Flash struct {
	Success string            `json:"success,omitempty"`
	Error   string            `json:"error,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func (f Flash) empty() bool {
	return f.Success == "" && f.Error == "" && len(f.Errors) == 0
}

type FlashStore struct {
	secure bool
}

func NewFlashStore(secure bool) *FlashStore {
	return &FlashStore{secure: secure}
}

func (s *FlashStore) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     FlashCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (s *FlashStore) Set(w http.ResponseWriter, r *http.Request, f Flash) {
	if f.empty() {
		return
	}
	log := config.WithContext(r.Context())

	raw, err := json.Marshal(f)
	if err != nil {
		log.WithError(err).Error("Failed to encode flash")
		return
	}
	sealed, err := config.Encrypt(string(raw))
	if err != nil {
		log.WithError(err).Error("Failed to seal flash")
		return
	}
	http.SetCookie(w, s.cookie(sealed, 60))
}

// Pop returns the pending flash and clears its cookie.
func (s *FlashStore) Pop(w http.ResponseWriter, r *http.Request) Flash {
	var f Flash
	if s == nil {
		return f
	}
	c, err := r.Cookie(FlashCookie)
	if err != nil || c.Value == "" {
		return f
	}
	http.SetCookie(w, s.cookie("", -1))

	raw, err := config.Decrypt(c.Value)
	if err != nil {
		config.WithContext(r.Context()).WithError(err).Warn("Discarding unreadable flash cookie")
		return f
	}
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		config.WithContext(r.Context()).WithError(err).Warn("Discarding malformed flash cookie")
		return Flash{}
	}
	return f
}
