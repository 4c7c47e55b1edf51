package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"showcase/internal/errs"
	"showcase/internal/models"
	"showcase/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/rs/zerolog/log"
)

// AuthService handles account identity and API tokens.
type AuthService struct {
	accounts  repositories.AccountRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(accounts repositories.AccountRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		accounts:  accounts,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// TokenTTL is the lifetime of tokens issued by IssueToken.
func (s *AuthService) TokenTTL() time.Duration {
	return s.tokenTTL
}

// UpsertFromProfile records a successful login and returns the stored account.
// The display name is split into a first word and the remainder.
func (s *AuthService) UpsertFromProfile(ctx context.Context, profile models.OAuthProfile) (*models.Account, error) {
	if profile.ID == "" {
		return nil, errs.NewValidationError("id", "is required")
	}
	first, last := splitDisplayName(profile.DisplayName, profile.Login)

	account := &models.Account{
		ID:              profile.ID,
		Email:           optional(profile.Email),
		FirstName:       optional(first),
		LastName:        optional(last),
		ProfileImageURL: optional(profile.ProfileImageURL),
	}
	if err := s.accounts.Upsert(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to upsert account %s: %w", profile.ID, err)
	}
	return s.accounts.GetByID(ctx, profile.ID)
}

// GetAccount loads an account by id.
func (s *AuthService) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	return s.accounts.GetByID(ctx, id)
}

// SetAdmin grants or revokes the admin flag.
func (s *AuthService) SetAdmin(ctx context.Context, id string, isAdmin bool) error {
	return s.accounts.SetAdmin(ctx, id, isAdmin)
}

// IssueToken signs a bearer token for accountID.
func (s *AuthService) IssueToken(accountID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"account_id": accountID,
		"exp":        now.Add(s.tokenTTL).Unix(),
		"iat":        now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a bearer token and returns the account id it carries.
func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Debug().Err(err).Msg("token validation failed")
		return "", fmt.Errorf("invalid token: %w", errs.ErrUnauthenticated)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token: %w", errs.ErrUnauthenticated)
	}
	accountID, ok := claims["account_id"].(string)
	if !ok || accountID == "" {
		return "", fmt.Errorf("token has no account_id: %w", errs.ErrUnauthenticated)
	}
	return accountID, nil
}

func splitDisplayName(displayName, login string) (string, string) {
	parts := strings.Fields(displayName)
	if len(parts) == 0 {
		return login, ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
