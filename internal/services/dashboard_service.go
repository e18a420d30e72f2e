package services

import (
	"context"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

type DashboardService struct {
	repo repositories.StatsRepository
}

func NewDashboardService(repo repositories.StatsRepository) *DashboardService {
	return &DashboardService{repo: repo}
}

func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	return s.repo.DashboardStats(ctx)
}
