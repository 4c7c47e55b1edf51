package middleware

import (
	"strings"

	"showcase/internal/errs"
	"showcase/internal/models"
	"showcase/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/rs/zerolog/log"
)

const (
	// SessionAccountKey is the session field holding the logged-in account id.
	SessionAccountKey = "account_id"

	localAccount = "account"
)

// AuthRequired resolves the caller from a bearer token or, failing that,
// the session cookie, loads the account and stores it for later handlers.
// Missing or unknown callers get 401.
func AuthRequired(authService *services.AuthService, sessions *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accountID, err := callerID(c, authService, sessions)
		if err != nil || accountID == "" {
			if err != nil {
				log.Debug().Err(err).Str("path", c.Path()).Msg("authentication failed")
			}
			return unauthorized(c)
		}

		account, err := authService.GetAccount(c.UserContext(), accountID)
		if err != nil {
			if errs.IsNotFound(err) {
				return unauthorized(c)
			}
			log.Error().Err(err).Str("account_id", accountID).Msg("failed to load account")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Internal server error",
			})
		}

		c.Locals(localAccount, account)
		return c.Next()
	}
}

// CurrentAccount returns the account stored by AuthRequired, or nil.
func CurrentAccount(c *fiber.Ctx) *models.Account {
	account, _ := c.Locals(localAccount).(*models.Account)
	return account
}

// CurrentAccountID returns the caller's id, or "" when unauthenticated.
func CurrentAccountID(c *fiber.Ctx) string {
	if account := CurrentAccount(c); account != nil {
		return account.ID
	}
	return ""
}

func callerID(c *fiber.Ctx, authService *services.AuthService, sessions *session.Store) (string, error) {
	if authHeader := c.Get(fiber.HeaderAuthorization); authHeader != "" {
		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", errs.ErrUnauthenticated
		}
		return authService.ValidateToken(strings.TrimSpace(parts[1]))
	}

	if sessions == nil {
		return "", nil
	}
	sess, err := sessions.Get(c)
	if err != nil {
		return "", err
	}
	accountID, _ := sess.Get(SessionAccountKey).(string)
	return accountID, nil
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": "Unauthorized",
	})
}
