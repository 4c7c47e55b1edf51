package oauth

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"showcase/internal/models"

	"github.com/google/go-github/github"
	"golang.org/x/oauth2"
)

const (
	githubAuthorizeURL = "https://github.com/login/oauth/authorize"
	githubTokenURL     = "https://github.com/login/oauth/access_token"
)

// GithubConfig holds the OAuth application credentials.
type GithubConfig struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
	// Overrides for tests; empty means github.com.
	AuthURL    string
	TokenURL   string
	APIBaseURL string
}

// GithubProvider runs the GitHub authorization-code flow.
type GithubProvider struct {
	oauthCfg   *oauth2.Config
	apiBaseURL *url.URL
}

// NewGithubProvider creates a GithubProvider.
func NewGithubProvider(cfg GithubConfig) (*GithubProvider, error) {
	authURL, tokenURL := githubAuthorizeURL, githubTokenURL
	if cfg.AuthURL != "" {
		authURL = cfg.AuthURL
	}
	if cfg.TokenURL != "" {
		tokenURL = cfg.TokenURL
	}

	p := &GithubProvider{
		oauthCfg: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.CallbackURL,
			Endpoint: oauth2.Endpoint{
				AuthURL:  authURL,
				TokenURL: tokenURL,
			},
			Scopes: []string{"user:email"},
		},
	}
	if cfg.APIBaseURL != "" {
		u, err := url.Parse(cfg.APIBaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid github api url: %w", err)
		}
		if u.Path == "" || u.Path[len(u.Path)-1] != '/' {
			u.Path += "/"
		}
		p.apiBaseURL = u
	}
	return p, nil
}

// AuthCodeURL is where the browser is sent to start the login.
func (p *GithubProvider) AuthCodeURL(state string) string {
	return p.oauthCfg.AuthCodeURL(state)
}

// FetchProfile exchanges the authorization code and reads the caller's
// GitHub profile. The primary email wins, else the first listed one.
func (p *GithubProvider) FetchProfile(ctx context.Context, code string) (*models.OAuthProfile, error) {
	token, err := p.oauthCfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	client := github.NewClient(p.oauthCfg.Client(ctx, token))
	if p.apiBaseURL != nil {
		client.BaseURL = p.apiBaseURL
	}

	user, _, err := client.Users.Get(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to get github user: %w", err)
	}
	if user.GetID() == 0 {
		return nil, fmt.Errorf("github user has no id")
	}

	profile := &models.OAuthProfile{
		ID:              strconv.FormatInt(user.GetID(), 10),
		Login:           user.GetLogin(),
		DisplayName:     user.GetName(),
		Email:           user.GetEmail(),
		ProfileImageURL: user.GetAvatarURL(),
	}

	// The emails endpoint needs the user:email scope; a failure here is not fatal.
	emails, _, err := client.Users.ListEmails(ctx, nil)
	if err == nil {
		if email := pickEmail(emails); email != "" {
			profile.Email = email
		}
	}
	return profile, nil
}

func pickEmail(emails []*github.UserEmail) string {
	for _, e := range emails {
		if e.GetPrimary() && e.GetEmail() != "" {
			return e.GetEmail()
		}
	}
	for _, e := range emails {
		if e.GetEmail() != "" {
			return e.GetEmail()
		}
	}
	return ""
}
