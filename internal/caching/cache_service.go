package caching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sweetshop/internal/models"

	"github.com/redis/go-redis/v9"
)

// CacheService holds short-lived copies of the dashboard aggregates and
// category lists per owner identity. A miss is (nil, nil) / (nil, nil);
// callers fall back to the database.
type CacheService interface {
	GetStats(ctx context.Context, userID string) (*models.DashboardStats, error)
	SetStats(ctx context.Context, userID string, stats *models.DashboardStats, ttl time.Duration) error
	GetCategories(ctx context.Context, userID string) ([]string, error)
	SetCategories(ctx context.Context, userID string, categories []string, ttl time.Duration) error
	InvalidateUser(ctx context.Context, userID string) error
	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &redisCacheService{client: client}
}

func statsKey(userID string) string      { return fmt.Sprintf("dashboard:stats:%s", userID) }
func categoriesKey(userID string) string { return fmt.Sprintf("dashboard:categories:%s", userID) }

func (s *redisCacheService) GetStats(ctx context.Context, userID string) (*models.DashboardStats, error) {
	data, err := s.client.Get(ctx, statsKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	stats := &models.DashboardStats{}
	if err := json.Unmarshal(data, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *redisCacheService) SetStats(ctx context.Context, userID string, stats *models.DashboardStats, ttl time.Duration) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, statsKey(userID), data, ttl).Err()
}

func (s *redisCacheService) GetCategories(ctx context.Context, userID string) ([]string, error) {
	data, err := s.client.Get(ctx, categoriesKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var categories []string
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *redisCacheService) SetCategories(ctx context.Context, userID string, categories []string, ttl time.Duration) error {
	data, err := json.Marshal(categories)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, categoriesKey(userID), data, ttl).Err()
}

// InvalidateUser drops every cached aggregate for one identity. Called after
// any write under that identity.
func (s *redisCacheService) InvalidateUser(ctx context.Context, userID string) error {
	return s.client.Del(ctx, statsKey(userID), categoriesKey(userID)).Err()
}

func (s *redisCacheService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
