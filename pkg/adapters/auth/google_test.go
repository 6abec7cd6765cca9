package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wadjakorntonsri/go-linkmaker/pkg/config"
	"golang.org/x/oauth2"
)

func newTestProvider(t *testing.T, user GoogleUser, userStatus int) *GoogleProvider {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "auth-code", r.PostForm.Get("code"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "test-access-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("GET /userinfo", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-access-token", r.Header.Get("Authorization"))
		if userStatus != http.StatusOK {
			http.Error(w, "nope", userStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(user)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	p := NewGoogleProvider(&config.Config{
		GoogleClientID:     "client-id",
		GoogleClientSecret: "client-secret",
		GoogleRedirectURL:  "http://localhost:8080/auth/google/callback",
	})
	p.oauthConfig.Endpoint = oauth2.Endpoint{
		AuthURL:   srv.URL + "/auth",
		TokenURL:  srv.URL + "/token",
		AuthStyle: oauth2.AuthStyleInParams,
	}
	p.userInfoURL = srv.URL + "/userinfo"
	return p
}

func TestExchange(t *testing.T) {
	p := newTestProvider(t, GoogleUser{
		Email:   "ada@example.com",
		Name:    "Ada",
		Picture: "https://example.com/ada.png",
	}, http.StatusOK)

	id, err := p.Exchange(context.Background(), "auth-code")
	require.NoError(t, err)
	assert.Equal(t, "Ada", id.Name)
	assert.Equal(t, "ada@example.com", id.Email)
	assert.Equal(t, "https://example.com/ada.png", id.Photo)
}

func TestExchangeDefaultName(t *testing.T) {
	p := newTestProvider(t, GoogleUser{Email: "anon@example.com"}, http.StatusOK)

	id, err := p.Exchange(context.Background(), "auth-code")
	require.NoError(t, err)
	assert.Equal(t, "User", id.Name)
	assert.Equal(t, "anon@example.com", id.Email)
}

func TestExchangeUserInfoError(t *testing.T) {
	p := newTestProvider(t, GoogleUser{}, http.StatusUnauthorized)

	_, err := p.Exchange(context.Background(), "auth-code")
	assert.Error(t, err)
}

func TestAuthCodeURL(t *testing.T) {
	p := NewGoogleProvider(&config.Config{GoogleClientID: "client-id"})

	u, err := url.Parse(p.AuthCodeURL("state-123"))
	require.NoError(t, err)
	assert.Equal(t, "state-123", u.Query().Get("state"))
	assert.Equal(t, "select_account", u.Query().Get("prompt"))
	assert.Equal(t, "client-id", u.Query().Get("client_id"))
}
