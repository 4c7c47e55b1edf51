package services_test

import (
	"context"
	"testing"

	"showcase/internal/errs"
	"showcase/internal/models"
	"showcase/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestStatsService(t *testing.T) {
	repo := new(MockStatsRepository)
	accounts := new(MockAccountRepository)
	service := services.NewStatsService(repo, services.NewAdminGate(accounts))
	ctx := context.Background()

	expected := &models.Stats{TotalProjects: 2, TotalUsers: 5, TotalViews: 40}

	repo.On("GetStats", ctx).Return(expected, nil).Twice()
	stats, err := service.GetStats(ctx)
	assert.NoError(t, err)
	assert.Equal(t, expected, stats)

	accounts.On("GetByID", ctx, "admin").Return(admin("admin"), nil).Once()
	stats, err = service.GetAdminStats(ctx, "admin")
	assert.NoError(t, err)
	assert.Equal(t, expected, stats)

	accounts.On("GetByID", ctx, "user").Return(member("user"), nil).Once()
	_, err = service.GetAdminStats(ctx, "user")
	assert.True(t, errs.IsForbidden(err))

	repo.AssertExpectations(t)
	accounts.AssertExpectations(t)
}

func TestAdminGate_IsAdmin(t *testing.T) {
	accounts := new(MockAccountRepository)
	gate := services.NewAdminGate(accounts)
	ctx := context.Background()

	accounts.On("GetByID", ctx, "admin").Return(admin("admin"), nil).Once()
	accounts.On("GetByID", ctx, "ghost").Return(nil, errs.NotFound("account", "ghost")).Once()

	ok, err := gate.IsAdmin(ctx, "admin")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = gate.IsAdmin(ctx, "ghost")
	assert.NoError(t, err)
	assert.False(t, ok)

	ok, err = gate.IsAdmin(ctx, "")
	assert.NoError(t, err)
	assert.False(t, ok)

	accounts.AssertExpectations(t)
}
