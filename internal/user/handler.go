package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/saulo-duarte/taskflow/internal/auth"
	"github.com/saulo-duarte/taskflow/internal/config"
)

const (
	StateCookie = "oauth_state"
	homePath    = "/"
)

type Handler struct {
	service  UserService
	sessions *auth.Handler
	secure   bool
}

func NewHandler(service UserService, sessions *auth.Handler, secure bool) *Handler {
	return &Handler{service: service, sessions: sessions, secure: secure}
}

func (h *Handler) stateCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     StateCookie,
		Value:    value,
		Path:     "/auth",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// GoogleRedirect godoc
// @Summary Start the Google sign-in flow
// @Tags auth
// @Success 303
// @Router /auth/google [get]
func (h *Handler) GoogleRedirect(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()
	http.SetCookie(w, h.stateCookie(state, 600))
	http.Redirect(w, r, h.service.AuthCodeURL(state), http.StatusSeeOther)
}

// GoogleCallback godoc
// @Summary Finish the Google sign-in flow
// @Tags auth
// @Param code query string true "Authorization code"
// @Param state query string true "State echoed from /auth/google"
// @Success 303
// @Failure 400 {string} string
// @Router /auth/google/callback [get]
func (h *Handler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	c, err := r.Cookie(StateCookie)
	if err != nil || c.Value == "" || c.Value != r.URL.Query().Get("state") {
		log.Warn("OAuth state mismatch")
		http.Error(w, "invalid oauth state", http.StatusBadRequest)
		return
	}
	http.SetCookie(w, h.stateCookie("", -1))

	resp, err := h.service.LoginWithCode(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		h.writeLoginError(w, r, err)
		return
	}

	h.sessions.SetSession(w, resp.Token)
	http.Redirect(w, r, homePath, http.StatusSeeOther)
}

// GoogleLogin godoc
// @Summary Exchange a Google authorization code for a session
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Authorization code"
// @Success 200 {object} LoginResponse
// @Failure 400 {string} string
// @Router /auth/login [post]
func (h *Handler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.LoginWithCode(r.Context(), req.Code)
	if err != nil {
		h.writeLoginError(w, r, err)
		return
	}

	h.sessions.SetSession(w, resp.Token)
	config.JSON(w, http.StatusOK, resp)
}

// GetUser godoc
// @Summary Current user
// @Tags users
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 401 {string} string
// @Router /users/me [get]
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	resp, err := h.service.GetCurrent(r.Context())
	switch {
	case err == nil:
		config.JSON(w, http.StatusOK, resp)
	case errors.Is(err, auth.ErrNoClaims):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, ErrUserNotFound):
		http.Error(w, "user not found", http.StatusNotFound)
	default:
		log.WithError(err).Error("Failed to get user")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeLoginError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrInvalidAuthCode) {
		http.Error(w, "invalid authorization code", http.StatusBadRequest)
		return
	}
	config.WithContext(r.Context()).WithError(err).Error("Google login failed")
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
