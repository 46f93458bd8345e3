package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"sweetshop/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) GetStats(ctx context.Context, userID string) (*models.DashboardStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DashboardStats), args.Error(1)
}

func (m *MockStatsRepository) ListIdentities(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetStats(ctx context.Context, userID string) (*models.DashboardStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DashboardStats), args.Error(1)
}

func (m *MockCacheService) SetStats(ctx context.Context, userID string, stats *models.DashboardStats, ttl time.Duration) error {
	args := m.Called(ctx, userID, stats, ttl)
	return args.Error(0)
}

func (m *MockCacheService) GetCategories(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCacheService) SetCategories(ctx context.Context, userID string, categories []string, ttl time.Duration) error {
	args := m.Called(ctx, userID, categories, ttl)
	return args.Error(0)
}

func (m *MockCacheService) InvalidateUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type DashboardServiceTestSuite struct {
	suite.Suite
	statsRepo *MockStatsRepository
	cache     *MockCacheService
	userA     string
	context   context.Context
}

func (suite *DashboardServiceTestSuite) SetupTest() {
	suite.statsRepo = &MockStatsRepository{}
	suite.cache = &MockCacheService{}
	suite.userA = "user-a"
	suite.context = context.Background()

	suite.statsRepo.Test(suite.T())
	suite.cache.Test(suite.T())
}

func (suite *DashboardServiceTestSuite) TearDownTest() {
	suite.statsRepo.AssertExpectations(suite.T())
	suite.cache.AssertExpectations(suite.T())
}

func TestDashboardServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DashboardServiceTestSuite))
}

func (suite *DashboardServiceTestSuite) TestGetStats_CacheHit() {
	cached := &models.DashboardStats{TotalSweets: 4, TotalRevenue: 42.50}
	suite.cache.On("GetStats", suite.context, suite.userA).Return(cached, nil)

	service := NewDashboardService(suite.statsRepo, suite.cache)
	stats, err := service.GetStats(suite.context, suite.userA)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), cached, stats)
}

func (suite *DashboardServiceTestSuite) TestGetStats_CacheMissFallsThrough() {
	fresh := &models.DashboardStats{TotalSweets: 4, TotalOrders: 3, PendingOrders: 1, TotalRevenue: 42.50}
	suite.cache.On("GetStats", suite.context, suite.userA).Return(nil, nil)
	suite.statsRepo.On("GetStats", suite.context, suite.userA).Return(fresh, nil)
	suite.cache.On("SetStats", suite.context, suite.userA, fresh, cacheTTL).Return(nil)

	service := NewDashboardService(suite.statsRepo, suite.cache)
	stats, err := service.GetStats(suite.context, suite.userA)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), fresh, stats)
}

func (suite *DashboardServiceTestSuite) TestGetStats_CacheErrorDegrades() {
	fresh := &models.DashboardStats{TotalSweets: 2}
	suite.cache.On("GetStats", suite.context, suite.userA).Return(nil, errors.New("redis down"))
	suite.statsRepo.On("GetStats", suite.context, suite.userA).Return(fresh, nil)
	suite.cache.On("SetStats", suite.context, suite.userA, fresh, cacheTTL).Return(errors.New("redis down"))

	service := NewDashboardService(suite.statsRepo, suite.cache)
	stats, err := service.GetStats(suite.context, suite.userA)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), fresh, stats)
}

func (suite *DashboardServiceTestSuite) TestGetStats_NoCache() {
	fresh := &models.DashboardStats{TotalCustomers: 2}
	suite.statsRepo.On("GetStats", suite.context, suite.userA).Return(fresh, nil)

	service := NewDashboardService(suite.statsRepo, nil)
	stats, err := service.GetStats(suite.context, suite.userA)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), fresh, stats)
}

func (suite *DashboardServiceTestSuite) TestRefresh_RepopulatesCache() {
	fresh := &models.DashboardStats{TotalOrders: 9}
	suite.statsRepo.On("GetStats", suite.context, suite.userA).Return(fresh, nil)
	suite.cache.On("SetStats", suite.context, suite.userA, fresh, cacheTTL).Return(nil)

	service := NewDashboardService(suite.statsRepo, suite.cache)
	err := service.Refresh(suite.context, suite.userA)
	assert.NoError(suite.T(), err)
}
