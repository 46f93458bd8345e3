package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"sweetshop/internal/caching"
	"sweetshop/internal/common"
	"sweetshop/internal/inventory"
	"sweetshop/internal/models"
	"sweetshop/internal/repositories"

	"github.com/jackc/pgx/v5"
)

// OrderItemInput is one requested (sweet, quantity) pair.
type OrderItemInput struct {
	SweetID  int64 `json:"sweet_id"`
	Quantity int   `json:"quantity"`
}

// OrderInput is the create-order request.
type OrderInput struct {
	CustomerID int64
	Status     string
	Items      []OrderItemInput
}

type OrderServiceInterface interface {
	CreateOrder(ctx context.Context, userID string, input *OrderInput) (*models.Order, error)
	GetOrder(ctx context.Context, userID string, id int64) (*models.Order, error)
	ListOrders(ctx context.Context, userID string, customerID *int64) ([]*models.Order, error)
	UpdateStatus(ctx context.Context, userID string, id int64, status *string) (*models.Order, error)
	DeleteOrder(ctx context.Context, userID string, id int64) error
}

// orderService owns the order transaction: header, line items and inventory
// effects commit together or not at all. It holds the pool itself so it can
// open transaction scopes and bind repositories to them.
type orderService struct {
	db            repositories.DB
	orderRepo     repositories.OrderRepository
	orderItemRepo repositories.OrderItemRepository
	sweetRepo     repositories.SweetRepository
	customerRepo  repositories.CustomerRepository
	cache         caching.CacheService
}

func NewOrderService(db repositories.DB, cache caching.CacheService) OrderServiceInterface {
	return &orderService{
		db:            db,
		orderRepo:     repositories.NewOrderRepo(db),
		orderItemRepo: repositories.NewOrderItemRepo(db),
		sweetRepo:     repositories.NewSweetRepo(db),
		customerRepo:  repositories.NewCustomerRepo(db),
		cache:         cache,
	}
}

// CreateOrder atomically creates the order header, its line items and the
// matching inventory decrements. Any missing sweet or insufficient stock
// rolls back everything done so far, including decrements already applied
// to earlier items of the same request.
func (s *orderService) CreateOrder(ctx context.Context, userID string, input *OrderInput) (*models.Order, error) {
	if err := validateOrderInput(input); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.GetByID(ctx, userID, input.CustomerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: customer %d", common.ErrNotFound, input.CustomerID)
		}
		return nil, fmt.Errorf("resolve customer: %w", err)
	}

	status := input.Status
	if status == "" {
		status = models.DefaultStatus
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin order transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	txOrders := repositories.NewOrderRepo(tx)
	txItems := repositories.NewOrderItemRepo(tx)
	txSweets := repositories.NewSweetRepo(tx)

	order := &models.Order{
		UserID:     userID,
		CustomerID: input.CustomerID,
		Status:     status,
		Items:      []*models.OrderItem{},
	}
	if err := txOrders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	var total float64
	for _, req := range input.Items {
		sweet, err := txSweets.GetByID(ctx, userID, req.SweetID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("%w: sweet %d", common.ErrNotFound, req.SweetID)
			}
			return nil, fmt.Errorf("resolve sweet %d: %w", req.SweetID, err)
		}

		if err := inventory.Reserve(sweet, req.Quantity); err != nil {
			return nil, err
		}
		if err := txSweets.UpdateQuantity(ctx, userID, sweet.ID, sweet.Quantity); err != nil {
			return nil, fmt.Errorf("persist reservation for sweet %d: %w", sweet.ID, err)
		}

		// Price is snapshotted here; later sweet price edits never touch it.
		item := &models.OrderItem{
			OrderID:  order.ID,
			SweetID:  sweet.ID,
			Quantity: req.Quantity,
			Price:    sweet.Price,
			Sweet:    sweet,
		}
		if err := txItems.Create(ctx, item); err != nil {
			return nil, fmt.Errorf("create order item: %w", err)
		}

		order.Items = append(order.Items, item)
		total += sweet.Price * float64(req.Quantity)
	}

	if err := txOrders.UpdateTotal(ctx, userID, order.ID, total); err != nil {
		return nil, fmt.Errorf("set order total: %w", err)
	}
	order.TotalAmount = total

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit order transaction: %w", err)
	}

	order.Customer = customer
	s.invalidateCache(ctx, userID)
	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, userID string, id int64) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: order %d", common.ErrNotFound, id)
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := s.hydrate(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, userID string, customerID *int64) ([]*models.Order, error) {
	orders, err := s.orderRepo.List(ctx, userID, customerID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	for _, order := range orders {
		if err := s.hydrate(ctx, order); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// UpdateStatus replaces the order status. Status is free-form: any value
// may replace any other, nil or empty keeps the current one.
func (s *orderService) UpdateStatus(ctx context.Context, userID string, id int64, status *string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: order %d", common.ErrNotFound, id)
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	if status != nil && *status != "" {
		order.Status = *status
		if err := s.orderRepo.UpdateStatus(ctx, userID, id, order.Status); err != nil {
			return nil, fmt.Errorf("update order status: %w", err)
		}
		s.invalidateCache(ctx, userID)
	}

	if err := s.hydrate(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// DeleteOrder restores stock for every line item and removes the order in
// one transaction. A sweet deleted since the order was placed is tolerated
// silently; its stock is simply gone.
func (s *orderService) DeleteOrder(ctx context.Context, userID string, id int64) error {
	if _, err := s.orderRepo.GetByID(ctx, userID, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: order %d", common.ErrNotFound, id)
		}
		return fmt.Errorf("get order: %w", err)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	txOrders := repositories.NewOrderRepo(tx)
	txItems := repositories.NewOrderItemRepo(tx)
	txSweets := repositories.NewSweetRepo(tx)

	items, err := txItems.ListByOrderID(ctx, id)
	if err != nil {
		return fmt.Errorf("list order items: %w", err)
	}

	for _, item := range items {
		sweet, err := txSweets.GetByID(ctx, userID, item.SweetID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}
			return fmt.Errorf("resolve sweet %d: %w", item.SweetID, err)
		}
		if err := inventory.Release(sweet, item.Quantity); err != nil {
			return err
		}
		if err := txSweets.UpdateQuantity(ctx, userID, sweet.ID, sweet.Quantity); err != nil {
			return fmt.Errorf("persist restock for sweet %d: %w", sweet.ID, err)
		}
	}

	if err := txOrders.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit delete transaction: %w", err)
	}

	s.invalidateCache(ctx, userID)
	return nil
}

// hydrate loads the embedded customer, line items and their sweets.
func (s *orderService) hydrate(ctx context.Context, order *models.Order) error {
	customer, err := s.customerRepo.GetByID(ctx, order.UserID, order.CustomerID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("load customer: %w", err)
	}
	order.Customer = customer

	items, err := s.orderItemRepo.ListByOrderID(ctx, order.ID)
	if err != nil {
		return fmt.Errorf("load order items: %w", err)
	}
	if items == nil {
		items = []*models.OrderItem{}
	}
	for _, item := range items {
		sweet, err := s.sweetRepo.GetByID(ctx, order.UserID, item.SweetID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("load sweet %d: %w", item.SweetID, err)
		}
		item.Sweet = sweet
	}
	order.Items = items
	return nil
}

func (s *orderService) invalidateCache(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateUser(ctx, userID); err != nil {
		log.Printf("cache invalidation failed for %s: %v", userID, err)
	}
}

func validateOrderInput(input *OrderInput) error {
	if input == nil {
		return fmt.Errorf("%w: request body is required", common.ErrValidation)
	}
	if input.CustomerID <= 0 {
		return fmt.Errorf("%w: customer_id is required", common.ErrValidation)
	}
	if len(input.Items) == 0 {
		return fmt.Errorf("%w: at least one item is required", common.ErrValidation)
	}
	for _, item := range input.Items {
		if item.SweetID <= 0 {
			return fmt.Errorf("%w: sweet_id is required", common.ErrValidation)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: item quantity must be positive", common.ErrValidation)
		}
	}
	return nil
}
