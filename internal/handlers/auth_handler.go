package handlers

import (
	"context"
	"net/url"

	"showcase/internal/middleware"
	"showcase/internal/models"
	"showcase/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const sessionStateKey = "oauth_state"

// OAuthProvider runs an external authorization-code login.
type OAuthProvider interface {
	AuthCodeURL(state string) string
	FetchProfile(ctx context.Context, code string) (*models.OAuthProfile, error)
}

// AuthHandler handles the login handshake, logout and token issuance.
type AuthHandler struct {
	authService *services.AuthService
	provider    OAuthProvider
	sessions    *session.Store
	logger      zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler. A nil provider means OAuth is not configured.
func NewAuthHandler(authService *services.AuthService, provider OAuthProvider, sessions *session.Store) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		provider:    provider,
		sessions:    sessions,
		logger:      log.With().Str("handler", "auth").Logger(),
	}
}

// RegisterRoutes registers the authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	router.Get("/login", h.HandleLogin)
	router.Get("/logout", h.HandleLogout)
	router.Get("/auth/github/callback", h.HandleCallback)
	router.Get("/auth/user", auth, h.HandleCurrentUser)
	router.Post("/auth/token", auth, h.HandleIssueToken)
}

// HandleLogin redirects to the provider with a fresh state stored in the session.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	if h.provider == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"message": "GitHub OAuth not configured. Please set GITHUB_CLIENT_ID and GITHUB_CLIENT_SECRET.",
		})
	}

	sess, err := h.sessions.Get(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	state := uuid.NewString()
	sess.Set(sessionStateKey, state)
	if err := sess.Save(); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Redirect(h.provider.AuthCodeURL(state), fiber.StatusFound)
}

// HandleCallback completes the handshake, upserts the account and logs it in.
func (h *AuthHandler) HandleCallback(c *fiber.Ctx) error {
	if h.provider == nil {
		return redirectWithError(c, "oauth_not_configured")
	}
	if providerErr := c.Query("error"); providerErr != "" {
		return redirectWithError(c, providerErr)
	}

	sess, err := h.sessions.Get(c)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load session")
		return redirectWithError(c, "session_error")
	}
	expected, _ := sess.Get(sessionStateKey).(string)
	if expected == "" || expected != c.Query("state") {
		h.logger.Warn().Msg("oauth state mismatch")
		return redirectWithError(c, "invalid_state")
	}

	profile, err := h.provider.FetchProfile(c.UserContext(), c.Query("code"))
	if err != nil {
		h.logger.Error().Err(err).Msg("oauth exchange failed")
		return redirectWithError(c, "oauth_failed")
	}
	account, err := h.authService.UpsertFromProfile(c.UserContext(), *profile)
	if err != nil {
		h.logger.Error().Err(err).Str("account_id", profile.ID).Msg("failed to upsert account")
		return redirectWithError(c, "login_failed")
	}

	if err := sess.Regenerate(); err != nil {
		h.logger.Error().Err(err).Msg("failed to regenerate session")
		return redirectWithError(c, "session_error")
	}
	sess.Delete(sessionStateKey)
	sess.Set(middleware.SessionAccountKey, account.ID)
	if err := sess.Save(); err != nil {
		h.logger.Error().Err(err).Msg("failed to save session")
		return redirectWithError(c, "session_error")
	}

	h.logger.Info().Str("account_id", account.ID).Msg("login succeeded")
	return c.Redirect("/", fiber.StatusFound)
}

// HandleLogout destroys the session.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	sess, err := h.sessions.Get(c)
	if err == nil {
		if err := sess.Destroy(); err != nil {
			h.logger.Warn().Err(err).Msg("failed to destroy session")
		}
	}
	return c.Redirect("/", fiber.StatusFound)
}

// HandleCurrentUser returns the authenticated account.
func (h *AuthHandler) HandleCurrentUser(c *fiber.Ctx) error {
	return c.JSON(middleware.CurrentAccount(c))
}

// HandleIssueToken issues a bearer token for the authenticated account.
func (h *AuthHandler) HandleIssueToken(c *fiber.Ctx) error {
	token, err := h.authService.IssueToken(middleware.CurrentAccountID(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{
		"token":     token,
		"expiresIn": int64(h.authService.TokenTTL().Seconds()),
	})
}

func redirectWithError(c *fiber.Ctx, reason string) error {
	return c.Redirect("/?error="+url.QueryEscape(reason), fiber.StatusFound)
}
