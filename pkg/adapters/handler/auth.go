package handler

import (
	"crypto/rand"
	"encoding/base64"
	"log"
	"net/http"
	"slices"
	"time"

	"github.com/wadjakorntonsri/go-linkmaker/pkg/config"
	"github.com/wadjakorntonsri/go-linkmaker/pkg/core/domain"
	"github.com/wadjakorntonsri/go-linkmaker/pkg/ports"
)

type AuthHandler struct {
	provider      ports.AuthProvider
	profiles      ports.ProfileStore
	jwtSecret     []byte
	frontendURL   string
	allowedEmails []string
	isProduction  bool
	now           func() time.Time
}

func NewAuthHandler(cfg *config.Config, provider ports.AuthProvider, profiles ports.ProfileStore) *AuthHandler {
	return &AuthHandler{
		provider:      provider,
		profiles:      profiles,
		jwtSecret:     []byte(cfg.JWTSecret),
		frontendURL:   cfg.FrontendURL,
		allowedEmails: cfg.AllowedEmails,
		isProduction:  cfg.AppEnv == "production",
		now:           time.Now,
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	state := h.generateStateOauthCookie(w)
	http.Redirect(w, r, h.provider.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	oauthState, err := r.Cookie("oauthstate")
	if err != nil {
		log.Printf("Callback error: missing oauthstate cookie: %v", err)
		http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
		return
	}

	if r.FormValue("state") != oauthState.Value {
		log.Printf("Callback error: invalid oauth state")
		http.Error(w, "invalid oauth google state", http.StatusBadRequest)
		return
	}

	identity, err := h.provider.Exchange(r.Context(), r.FormValue("code"))
	if err != nil {
		log.Printf("Callback error: %v", err)
		http.Error(w, "sign-in failed", http.StatusInternalServerError)
		return
	}

	// Email Allowlist Check
	if len(h.allowedEmails) > 0 && !slices.Contains(h.allowedEmails, identity.Email) {
		log.Printf("Callback error: email %s not in allowlist", identity.Email)
		http.Error(w, "Access denied: your email is not in the allowlist", http.StatusForbidden)
		return
	}

	now := h.now()
	tokenString, expires, err := issueSession(h.jwtSecret, identity, now)
	if err != nil {
		log.Printf("Callback error: failed signing JWT: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	// the profile is a convenience copy, a failed save does not block sign-in
	if h.profiles != nil {
		profile := &domain.Profile{Identity: *identity, LastLogin: now}
		if err := h.profiles.SaveProfile(r.Context(), profile); err != nil {
			log.Printf("Could not save profile for %s: %v", identity.Email, err)
		}
	}

	h.setSessionCookie(w, tokenString, expires)

	log.Printf("Login successful for user: %s", identity.Email)
	http.Redirect(w, r, h.frontendURL, http.StatusTemporaryRedirect)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.setSessionCookie(w, "", h.now().Add(-1*time.Hour))
	http.Redirect(w, r, h.frontendURL, http.StatusTemporaryRedirect)
}

// Me reports the signed-in user
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	identity, err := parseSession(h.jwtSecret, cookie.Value)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if h.profiles != nil {
		if p, err := h.profiles.GetProfile(r.Context(), identity.Email); err == nil && p != nil {
			identity = &p.Identity
		}
	}
	writeJSON(w, http.StatusOK, identity)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, value string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    value,
		Expires:  expires,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) generateStateOauthCookie(w http.ResponseWriter) string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	state := base64.URLEncoding.EncodeToString(b)
	http.SetCookie(w, &http.Cookie{
		Name:     "oauthstate",
		Value:    state,
		Expires:  h.now().Add(20 * time.Minute),
		Path:     "/",
		HttpOnly: true,
		Secure:   h.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
	return state
}
