package repositories

import (
	"context"

	"showcase/internal/models"
)

// ProjectRepository defines the interface for project data access.
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	List(ctx context.Context, filter models.ProjectFilter) ([]models.Project, error)
	GetByID(ctx context.Context, id uint) (*models.Project, error)
	GetWithAuthor(ctx context.Context, id uint) (*models.Project, error)
	Update(ctx context.Context, id uint, columns map[string]interface{}) (*models.Project, error)
	Delete(ctx context.Context, id uint) error
	IncrementViews(ctx context.Context, id uint) error
}

// LikeRepository defines the interface for like-membership data access.
type LikeRepository interface {
	// Toggle flips the membership of (projectID, accountID) and adjusts the
	// project's like counter in the same transaction. It returns the new state.
	Toggle(ctx context.Context, projectID uint, accountID string) (bool, error)
	Exists(ctx context.Context, projectID uint, accountID string) (bool, error)
}

// StatsRepository defines the interface for catalog aggregates.
type StatsRepository interface {
	GetStats(ctx context.Context) (*models.Stats, error)
}
