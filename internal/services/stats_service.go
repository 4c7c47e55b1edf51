package services

import (
	"context"

	"showcase/internal/models"
	"showcase/internal/repositories"
)

// StatsService exposes catalog aggregates.
type StatsService struct {
	repo repositories.StatsRepository
	gate *AdminGate
}

// NewStatsService creates a new StatsService.
func NewStatsService(repo repositories.StatsRepository, gate *AdminGate) *StatsService {
	return &StatsService{repo: repo, gate: gate}
}

// GetStats is the public aggregate view.
func (s *StatsService) GetStats(ctx context.Context) (*models.Stats, error) {
	return s.repo.GetStats(ctx)
}

// GetAdminStats returns the same aggregates behind the admin gate.
func (s *StatsService) GetAdminStats(ctx context.Context, callerID string) (*models.Stats, error) {
	if err := s.gate.Require(ctx, callerID); err != nil {
		return nil, err
	}
	return s.repo.GetStats(ctx)
}
