package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"showcase/internal/errs"
	"showcase/internal/models"
	"showcase/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test_jwt_secret"

func TestAuthService_UpsertFromProfile(t *testing.T) {
	mockRepo := new(MockAccountRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour)
	ctx := context.Background()

	profile := models.OAuthProfile{
		ID:              "12345",
		Login:           "ada",
		DisplayName:     "Ada King Lovelace",
		Email:           "ada@example.com",
		ProfileImageURL: "https://avatars.example.com/ada.png",
	}

	mockRepo.On("Upsert", ctx, mock.MatchedBy(func(a *models.Account) bool {
		return a.ID == "12345" &&
			*a.FirstName == "Ada" &&
			*a.LastName == "King Lovelace" &&
			*a.Email == "ada@example.com" &&
			!a.IsAdmin
	})).Return(nil).Once()
	stored := &models.Account{ID: "12345", FirstName: strPtr("Ada"), IsAdmin: true}
	mockRepo.On("GetByID", ctx, "12345").Return(stored, nil).Once()

	account, err := authService.UpsertFromProfile(ctx, profile)
	assert.NoError(t, err)
	assert.Equal(t, stored, account)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_UpsertFromProfile_LoginFallback(t *testing.T) {
	mockRepo := new(MockAccountRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour)
	ctx := context.Background()

	mockRepo.On("Upsert", ctx, mock.MatchedBy(func(a *models.Account) bool {
		return *a.FirstName == "octocat" && a.LastName == nil && a.Email == nil
	})).Return(nil).Once()
	mockRepo.On("GetByID", ctx, "1").Return(member("1"), nil).Once()

	_, err := authService.UpsertFromProfile(ctx, models.OAuthProfile{ID: "1", Login: "octocat"})
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Missing id never reaches the store.
	_, err = authService.UpsertFromProfile(ctx, models.OAuthProfile{Login: "x"})
	assert.True(t, errs.IsValidation(err))

	mockRepo.On("Upsert", ctx, mock.Anything).Return(fmt.Errorf("database error")).Once()
	_, err = authService.UpsertFromProfile(ctx, models.OAuthProfile{ID: "2", Login: "y"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_IssueAndValidateToken(t *testing.T) {
	mockRepo := new(MockAccountRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour)

	token, err := authService.IssueToken("user-123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, "user-123", claims["account_id"])

	accountID, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", accountID)
}

func TestAuthService_ValidateToken_Invalid(t *testing.T) {
	mockRepo := new(MockAccountRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour)

	sign := func(secret string, claims jwt.MapClaims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return s
	}

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "invalid.token.string"},
		{"wrong secret", sign("other", jwt.MapClaims{"account_id": "u", "exp": time.Now().Add(time.Hour).Unix()})},
		{"expired", sign(testJWTSecret, jwt.MapClaims{"account_id": "u", "exp": time.Now().Add(-time.Hour).Unix()})},
		{"no account", sign(testJWTSecret, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := authService.ValidateToken(tt.token)
			assert.Error(t, err)
			assert.True(t, errs.IsUnauthenticated(err))
		})
	}
}

func TestAuthService_SetAdmin(t *testing.T) {
	mockRepo := new(MockAccountRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour)
	ctx := context.Background()

	mockRepo.On("SetAdmin", ctx, "gh-1", true).Return(nil).Once()
	mockRepo.On("SetAdmin", ctx, "nobody", false).Return(errs.NotFound("account", "nobody")).Once()

	assert.NoError(t, authService.SetAdmin(ctx, "gh-1", true))
	assert.True(t, errs.IsNotFound(authService.SetAdmin(ctx, "nobody", false)))
	mockRepo.AssertExpectations(t)
}
