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

// CustomerInput is the create-customer request.
type CustomerInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// CustomerPatch is a partial update; nil fields keep their current value.
type CustomerPatch struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
}

type CustomerServiceInterface interface {
	ListCustomers(ctx context.Context, userID string) ([]*models.Customer, error)
	GetCustomer(ctx context.Context, userID string, id int64) (*models.Customer, error)
	CreateCustomer(ctx context.Context, userID string, input *CustomerInput) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, userID string, id int64, patch *CustomerPatch) (*models.Customer, error)
	DeleteCustomer(ctx context.Context, userID string, id int64) error
}

type customerService struct {
	customerRepo repositories.CustomerRepository
	orderRepo    repositories.OrderRepository
	cache        caching.CacheService
}

func NewCustomerService(customerRepo repositories.CustomerRepository, orderRepo repositories.OrderRepository, cache caching.CacheService) CustomerServiceInterface {
	return &customerService{
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
		cache:        cache,
	}
}

func (s *customerService) ListCustomers(ctx context.Context, userID string) ([]*models.Customer, error) {
	customers, err := s.customerRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	if customers == nil {
		customers = []*models.Customer{}
	}
	return customers, nil
}

func (s *customerService) GetCustomer(ctx context.Context, userID string, id int64) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: customer %d", common.ErrNotFound, id)
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return customer, nil
}

func (s *customerService) CreateCustomer(ctx context.Context, userID string, input *CustomerInput) (*models.Customer, error) {
	if err := validateCustomer(input.Name, input.Email); err != nil {
		return nil, err
	}

	customer := &models.Customer{
		UserID:  userID,
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Address: input.Address,
	}
	// A (user_id, email) collision surfaces as common.ErrDuplicateEmail.
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("create customer: %w", err)
	}

	s.invalidateCache(ctx, userID)
	return customer, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, userID string, id int64, patch *CustomerPatch) (*models.Customer, error) {
	customer, err := s.GetCustomer(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		customer.Name = *patch.Name
	}
	if patch.Email != nil {
		customer.Email = *patch.Email
	}
	if patch.Phone != nil {
		customer.Phone = *patch.Phone
	}
	if patch.Address != nil {
		customer.Address = *patch.Address
	}

	if err := validateCustomer(customer.Name, customer.Email); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Update(ctx, customer); err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("update customer: %w", err)
	}

	s.invalidateCache(ctx, userID)
	return customer, nil
}

// DeleteCustomer refuses to remove a customer that still has orders.
func (s *customerService) DeleteCustomer(ctx context.Context, userID string, id int64) error {
	if _, err := s.GetCustomer(ctx, userID, id); err != nil {
		return err
	}

	hasOrders, err := s.orderRepo.ExistsByCustomerID(ctx, id)
	if err != nil {
		return fmt.Errorf("check customer references: %w", err)
	}
	if hasOrders {
		return common.ErrCustomerInUse
	}

	if err := s.customerRepo.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}

	s.invalidateCache(ctx, userID)
	return nil
}

func (s *customerService) invalidateCache(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateUser(ctx, userID); err != nil {
		log.Printf("cache invalidation failed for %s: %v", userID, err)
	}
}

func validateCustomer(name, email string) error {
	if err := common.ValidateRequiredString(name, "name"); err != nil {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	if err := common.ValidateRequiredString(email, "email"); err != nil {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	return nil
}
