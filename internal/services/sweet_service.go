package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"sweetshop/internal/caching"
	"sweetshop/internal/common"
	"sweetshop/internal/models"
	"sweetshop/internal/repositories"

	"github.com/jackc/pgx/v5"
)

// SweetInput is the create-sweet request after the handler has resolved the
// legacy stock/quantity key precedence.
type SweetInput struct {
	Name        string
	Description string
	Price       float64
	Quantity    int
	Category    string
	ImageURL    string
}

// SweetPatch is a partial update; nil fields keep their current value.
type SweetPatch struct {
	Name        *string
	Description *string
	Price       *float64
	Quantity    *int
	Category    *string
	ImageURL    *string
}

type SweetServiceInterface interface {
	ListSweets(ctx context.Context, userID, category string) ([]*models.Sweet, error)
	GetSweet(ctx context.Context, userID string, id int64) (*models.Sweet, error)
	CreateSweet(ctx context.Context, userID string, input *SweetInput) (*models.Sweet, error)
	UpdateSweet(ctx context.Context, userID string, id int64, patch *SweetPatch) (*models.Sweet, error)
	DeleteSweet(ctx context.Context, userID string, id int64) error
	Categories(ctx context.Context, userID string) ([]string, error)
}

type sweetService struct {
	sweetRepo     repositories.SweetRepository
	orderItemRepo repositories.OrderItemRepository
	cache         caching.CacheService
}

func NewSweetService(sweetRepo repositories.SweetRepository, orderItemRepo repositories.OrderItemRepository, cache caching.CacheService) SweetServiceInterface {
	return &sweetService{
		sweetRepo:     sweetRepo,
		orderItemRepo: orderItemRepo,
		cache:         cache,
	}
}

func (s *sweetService) ListSweets(ctx context.Context, userID, category string) ([]*models.Sweet, error) {
	sweets, err := s.sweetRepo.List(ctx, userID, category)
	if err != nil {
		return nil, fmt.Errorf("list sweets: %w", err)
	}
	if sweets == nil {
		sweets = []*models.Sweet{}
	}
	return sweets, nil
}

func (s *sweetService) GetSweet(ctx context.Context, userID string, id int64) (*models.Sweet, error) {
	sweet, err := s.sweetRepo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: sweet %d", common.ErrNotFound, id)
		}
		return nil, fmt.Errorf("get sweet: %w", err)
	}
	return sweet, nil
}

func (s *sweetService) CreateSweet(ctx context.Context, userID string, input *SweetInput) (*models.Sweet, error) {
	if err := validateSweet(input.Name, input.Price, input.Quantity); err != nil {
		return nil, err
	}

	sweet := &models.Sweet{
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Quantity:    input.Quantity,
		Category:    input.Category,
		ImageURL:    input.ImageURL,
	}
	if err := s.sweetRepo.Create(ctx, sweet); err != nil {
		return nil, fmt.Errorf("create sweet: %w", err)
	}

	s.invalidateCache(ctx, userID)
	return sweet, nil
}

// UpdateSweet applies a partial update: unspecified fields retain their
// previous value.
func (s *sweetService) UpdateSweet(ctx context.Context, userID string, id int64, patch *SweetPatch) (*models.Sweet, error) {
	sweet, err := s.GetSweet(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		sweet.Name = *patch.Name
	}
	if patch.Description != nil {
		sweet.Description = *patch.Description
	}
	if patch.Price != nil {
		sweet.Price = *patch.Price
	}
	if patch.Quantity != nil {
		sweet.Quantity = *patch.Quantity
	}
	if patch.Category != nil {
		sweet.Category = *patch.Category
	}
	if patch.ImageURL != nil {
		sweet.ImageURL = *patch.ImageURL
	}

	if err := validateSweet(sweet.Name, sweet.Price, sweet.Quantity); err != nil {
		return nil, err
	}
	if err := s.sweetRepo.Update(ctx, sweet); err != nil {
		return nil, fmt.Errorf("update sweet: %w", err)
	}

	s.invalidateCache(ctx, userID)
	return sweet, nil
}

// DeleteSweet refuses to remove a sweet still referenced by any order line
// item; the price snapshot alone does not free the referential link.
func (s *sweetService) DeleteSweet(ctx context.Context, userID string, id int64) error {
	if _, err := s.GetSweet(ctx, userID, id); err != nil {
		return err
	}

	inUse, err := s.orderItemRepo.ExistsBySweetID(ctx, id)
	if err != nil {
		return fmt.Errorf("check sweet references: %w", err)
	}
	if inUse {
		return common.ErrSweetInUse
	}

	if err := s.sweetRepo.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("delete sweet: %w", err)
	}

	s.invalidateCache(ctx, userID)
	return nil
}

func (s *sweetService) Categories(ctx context.Context, userID string) ([]string, error) {
	if s.cache != nil {
		categories, err := s.cache.GetCategories(ctx, userID)
		if err != nil {
			log.Printf("category cache read failed for %s: %v", userID, err)
		} else if categories != nil {
			return categories, nil
		}
	}

	categories, err := s.sweetRepo.Categories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if categories == nil {
		categories = []string{}
	}

	if s.cache != nil {
		if err := s.cache.SetCategories(ctx, userID, categories, cacheTTL); err != nil {
			log.Printf("category cache write failed for %s: %v", userID, err)
		}
	}
	return categories, nil
}

func (s *sweetService) invalidateCache(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateUser(ctx, userID); err != nil {
		log.Printf("cache invalidation failed for %s: %v", userID, err)
	}
}

func validateSweet(name string, price float64, quantity int) error {
	if err := common.ValidateRequiredString(name, "name"); err != nil {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	if err := common.ValidateNonNegativeFloat(price, "price"); err != nil {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	if quantity < 0 {
		return fmt.Errorf("%w: quantity cannot be negative", common.ErrValidation)
	}
	return nil
}
