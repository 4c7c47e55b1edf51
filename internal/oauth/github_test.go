package oauth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"showcase/internal/oauth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeGithub(t *testing.T, emailsStatus int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/login/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "the-code", r.Form.Get("code"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"bearer"}`))
	})
	mux.HandleFunc("/api/user", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":583231,"login":"octocat","name":"The Octocat","email":"public@example.com","avatar_url":"https://avatars.example.com/u/583231"}`))
	})
	mux.HandleFunc("/api/user/emails", func(w http.ResponseWriter, r *http.Request) {
		if emailsStatus != http.StatusOK {
			w.WriteHeader(emailsStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"email":"other@example.com","primary":false},{"email":"primary@example.com","primary":true}]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newProvider(t *testing.T, srv *httptest.Server) *oauth.GithubProvider {
	t.Helper()
	p, err := oauth.NewGithubProvider(oauth.GithubConfig{
		ClientID:     "client",
		ClientSecret: "secret",
		CallbackURL:  "http://localhost/api/auth/github/callback",
		AuthURL:      srv.URL + "/login/oauth/authorize",
		TokenURL:     srv.URL + "/login/oauth/access_token",
		APIBaseURL:   srv.URL + "/api",
	})
	require.NoError(t, err)
	return p
}

func TestGithubProvider_AuthCodeURL(t *testing.T) {
	srv := fakeGithub(t, http.StatusOK)
	p := newProvider(t, srv)

	u, err := url.Parse(p.AuthCodeURL("state-123"))
	require.NoError(t, err)
	assert.Equal(t, "/login/oauth/authorize", u.Path)
	assert.Equal(t, "state-123", u.Query().Get("state"))
	assert.Equal(t, "client", u.Query().Get("client_id"))
	assert.Equal(t, "user:email", u.Query().Get("scope"))
}

func TestGithubProvider_FetchProfile(t *testing.T) {
	srv := fakeGithub(t, http.StatusOK)
	p := newProvider(t, srv)

	profile, err := p.FetchProfile(context.Background(), "the-code")
	require.NoError(t, err)
	assert.Equal(t, "583231", profile.ID)
	assert.Equal(t, "octocat", profile.Login)
	assert.Equal(t, "The Octocat", profile.DisplayName)
	assert.Equal(t, "primary@example.com", profile.Email)
	assert.Equal(t, "https://avatars.example.com/u/583231", profile.ProfileImageURL)
}

func TestGithubProvider_FetchProfile_EmailsForbidden(t *testing.T) {
	srv := fakeGithub(t, http.StatusForbidden)
	p := newProvider(t, srv)

	profile, err := p.FetchProfile(context.Background(), "the-code")
	require.NoError(t, err)
	assert.Equal(t, "public@example.com", profile.Email)
}
