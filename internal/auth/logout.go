package auth

import (
	"net/http"
	"time"

	"github.com/saulo-duarte/taskflow/internal/config"
)

const SessionDuration = 7 * 24 * time.Hour

type Handler struct {
	settings *config.Settings
}

func NewHandler(settings *config.Settings) *Handler {
	return &Handler{settings: settings}
}

func (h *Handler) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Domain:   h.settings.CookieDomain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.settings.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

// SetSession writes the jwt cookie for a freshly issued token.
func (h *Handler) SetSession(w http.ResponseWriter, token string) {
	http.SetCookie(w, h.cookie(token, int(SessionDuration.Seconds())))
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.cookie("", -1))

	if r.Method == http.MethodGet {
		http.Redirect(w, r, LoginPath, http.StatusSeeOther)
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{
		"message": "logout successful",
	})
}
