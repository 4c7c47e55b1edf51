package services_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"showcase/internal/errs"
	"showcase/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestLikeService_Toggle(t *testing.T) {
	repo := new(MockLikeRepository)
	pub := new(MockEventPublisher)
	service := services.NewLikeService(repo, pub)
	ctx := context.Background()

	repo.On("Toggle", ctx, uint(1), "u1").Return(true, nil).Once()
	pub.On("Publish", services.EventProjectLiked, mock.MatchedBy(func(body []byte) bool {
		var fields map[string]interface{}
		if json.Unmarshal(body, &fields) != nil {
			return false
		}
		_, hasAt := fields["at"]
		return fields["projectId"] == float64(1) && fields["accountId"] == "u1" && hasAt && len(fields) == 3
	})).Return(nil).Once()
	state, err := service.Toggle(ctx, 1, "u1")
	assert.NoError(t, err)
	assert.True(t, state.Liked)

	repo.On("Toggle", ctx, uint(1), "u1").Return(false, nil).Once()
	pub.On("Publish", services.EventProjectUnliked, mock.Anything).Return(nil).Once()
	state, err = service.Toggle(ctx, 1, "u1")
	assert.NoError(t, err)
	assert.False(t, state.Liked)

	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestLikeService_ToggleConflictIsBenign(t *testing.T) {
	repo := new(MockLikeRepository)
	service := services.NewLikeService(repo, nil)
	ctx := context.Background()

	conflict := fmt.Errorf("failed to toggle like: %w", errs.ErrConflict)
	repo.On("Toggle", ctx, uint(1), "u1").Return(false, conflict).Once()

	state, err := service.Toggle(ctx, 1, "u1")
	assert.NoError(t, err)
	assert.True(t, state.Liked)
	repo.AssertExpectations(t)
}

func TestLikeService_ToggleErrors(t *testing.T) {
	repo := new(MockLikeRepository)
	service := services.NewLikeService(repo, nil)
	ctx := context.Background()

	_, err := service.Toggle(ctx, 1, "")
	assert.True(t, errs.IsUnauthenticated(err))

	repo.On("Toggle", ctx, uint(9), "u1").Return(false, errs.NotFound("project", 9)).Once()
	_, err = service.Toggle(ctx, 9, "u1")
	assert.True(t, errs.IsNotFound(err))
	repo.AssertExpectations(t)
}

func TestLikeService_IsLiked(t *testing.T) {
	repo := new(MockLikeRepository)
	service := services.NewLikeService(repo, nil)
	ctx := context.Background()

	repo.On("Exists", ctx, uint(1), "u1").Return(true, nil).Once()
	state, err := service.IsLiked(ctx, 1, "u1")
	assert.NoError(t, err)
	assert.True(t, state.Liked)

	repo.On("Exists", ctx, uint(2), "u1").Return(false, nil).Once()
	state, err = service.IsLiked(ctx, 2, "u1")
	assert.NoError(t, err)
	assert.False(t, state.Liked)

	_, err = service.IsLiked(ctx, 1, "")
	assert.True(t, errs.IsUnauthenticated(err))
	repo.AssertExpectations(t)
}
