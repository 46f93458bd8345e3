package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"sweetshop/internal/caching"
	"sweetshop/internal/models"
	"sweetshop/internal/repositories"
)

// cacheTTL bounds how stale a cached aggregate can get between writes; the
// refresh job usually repopulates sooner.
const cacheTTL = time.Minute

type DashboardServiceInterface interface {
	GetStats(ctx context.Context, userID string) (*models.DashboardStats, error)
	Refresh(ctx context.Context, userID string) error
}

// dashboardService serves the read-only aggregates, read-through cached.
// Cache failures degrade to direct queries; correctness never depends on
// Redis being up.
type dashboardService struct {
	statsRepo repositories.StatsRepository
	cache     caching.CacheService
}

func NewDashboardService(statsRepo repositories.StatsRepository, cache caching.CacheService) DashboardServiceInterface {
	return &dashboardService{
		statsRepo: statsRepo,
		cache:     cache,
	}
}

func (s *dashboardService) GetStats(ctx context.Context, userID string) (*models.DashboardStats, error) {
	if s.cache != nil {
		stats, err := s.cache.GetStats(ctx, userID)
		if err != nil {
			log.Printf("stats cache read failed for %s: %v", userID, err)
		} else if stats != nil {
			return stats, nil
		}
	}

	stats, err := s.statsRepo.GetStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load dashboard stats: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetStats(ctx, userID, stats, cacheTTL); err != nil {
			log.Printf("stats cache write failed for %s: %v", userID, err)
		}
	}
	return stats, nil
}

// Refresh recomputes and caches one identity's aggregates, bypassing any
// cached copy. Used by the stats refresh job.
func (s *dashboardService) Refresh(ctx context.Context, userID string) error {
	stats, err := s.statsRepo.GetStats(ctx, userID)
	if err != nil {
		return fmt.Errorf("recompute dashboard stats: %w", err)
	}
	if s.cache == nil {
		return nil
	}
	return s.cache.SetStats(ctx, userID, stats, cacheTTL)
}
