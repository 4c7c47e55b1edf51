package services

import (
	"context"

	"showcase/internal/errs"
	"showcase/internal/models"
	"showcase/internal/repositories"

	"github.com/rs/zerolog/log"
)

// LikeService toggles like-memberships.
type LikeService struct {
	repo   repositories.LikeRepository
	events EventPublisher
}

// NewLikeService creates a new LikeService. events may be nil.
func NewLikeService(repo repositories.LikeRepository, events EventPublisher) *LikeService {
	return &LikeService{repo: repo, events: events}
}

// Toggle likes the project if accountID does not like it yet, otherwise unlikes it.
func (s *LikeService) Toggle(ctx context.Context, projectID uint, accountID string) (*models.LikeState, error) {
	if accountID == "" {
		return nil, errs.ErrUnauthenticated
	}
	liked, err := s.repo.Toggle(ctx, projectID, accountID)
	if err != nil {
		if errs.IsConflict(err) {
			// A concurrent toggle inserted the same membership first.
			log.Debug().Uint("project_id", projectID).Str("account_id", accountID).Msg("like toggle lost insert race")
			return &models.LikeState{Liked: true}, nil
		}
		return nil, err
	}

	event := EventProjectUnliked
	if liked {
		event = EventProjectLiked
	}
	publishEvent(s.events, event, ProjectEvent{ProjectID: projectID, AccountID: accountID})
	return &models.LikeState{Liked: liked}, nil
}

// IsLiked reports whether accountID likes the project. No side effects.
func (s *LikeService) IsLiked(ctx context.Context, projectID uint, accountID string) (*models.LikeState, error) {
	if accountID == "" {
		return nil, errs.ErrUnauthenticated
	}
	liked, err := s.repo.Exists(ctx, projectID, accountID)
	if err != nil {
		return nil, err
	}
	return &models.LikeState{Liked: liked}, nil
}
