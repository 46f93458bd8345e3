package services

import (
	"context"
	"testing"
	"time"

	"sweetshop/internal/common"

	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type OrderServiceTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	service OrderServiceInterface
	userA   string
	context context.Context
}

func (suite *OrderServiceTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.service = NewOrderService(mock, nil)
	suite.userA = "user-a"
	suite.context = context.Background()
}

func (suite *OrderServiceTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}

func (suite *OrderServiceTestSuite) expectCustomerLookup(customerID int64) {
	now := time.Now()
	suite.mock.ExpectQuery(`
			SELECT id, user_id, name, email, phone, address, created_at
			FROM customers
			WHERE user_id = \$1 AND id = \$2
		`).WithArgs(suite.userA, customerID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "name", "email", "phone", "address", "created_at"}).
			AddRow(customerID, suite.userA, "Asha Patel", "asha@example.com", "", "", now))
}

func (suite *OrderServiceTestSuite) expectSweetLookup(sweetID int64, name string, price float64, quantity int) {
	now := time.Now()
	suite.mock.ExpectQuery(`
			SELECT id, user_id, name, description, price, quantity, category, image_url, created_at, updated_at
			FROM sweets
			WHERE user_id = \$1 AND id = \$2
		`).WithArgs(suite.userA, sweetID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "name", "description", "price", "quantity", "category", "image_url", "created_at", "updated_at"}).
			AddRow(sweetID, suite.userA, name, "", price, quantity, "", "", now, now))
}

// Two line items: 2 x 2.50 plus 2 x 1.50 must commit a total of 8.00 and
// decrement both stocks inside the same transaction.
func (suite *OrderServiceTestSuite) TestCreateOrder_Success() {
	suite.expectCustomerLookup(5)
	suite.mock.ExpectBegin()

	now := time.Now()
	suite.mock.ExpectQuery(`
			INSERT INTO orders \(user_id, customer_id, total_amount, status, order_date\)
			VALUES \(\$1, \$2, \$3, \$4, NOW\(\)\)
			RETURNING id, order_date
		`).WithArgs(suite.userA, int64(5), 0.0, "pending").
		WillReturnRows(pgxmock.NewRows([]string{"id", "order_date"}).AddRow(int64(11), now))

	suite.expectSweetLookup(7, "Gulab Jamun", 2.50, 10)
	suite.mock.ExpectExec(`
			UPDATE sweets
			SET quantity = \$1, updated_at = NOW\(\)
			WHERE user_id = \$2 AND id = \$3
		`).WithArgs(8, suite.userA, int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectQuery(`
			INSERT INTO order_items \(order_id, sweet_id, quantity, price\)
			VALUES \(\$1, \$2, \$3, \$4\)
			RETURNING id
		`).WithArgs(int64(11), int64(7), 2, 2.50).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(21)))

	suite.expectSweetLookup(8, "Ladoo", 1.50, 4)
	suite.mock.ExpectExec(`
			UPDATE sweets
			SET quantity = \$1, updated_at = NOW\(\)
			WHERE user_id = \$2 AND id = \$3
		`).WithArgs(2, suite.userA, int64(8)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectQuery(`
			INSERT INTO order_items \(order_id, sweet_id, quantity, price\)
			VALUES \(\$1, \$2, \$3, \$4\)
			RETURNING id
		`).WithArgs(int64(11), int64(8), 2, 1.50).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(22)))

	suite.mock.ExpectExec(`UPDATE orders SET total_amount = \$1 WHERE user_id = \$2 AND id = \$3`).
		WithArgs(8.00, suite.userA, int64(11)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()

	order, err := suite.service.CreateOrder(suite.context, suite.userA, &OrderInput{
		CustomerID: 5,
		Items: []OrderItemInput{
			{SweetID: 7, Quantity: 2},
			{SweetID: 8, Quantity: 2},
		},
	})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(11), order.ID)
	assert.Equal(suite.T(), 8.00, order.TotalAmount)
	assert.Equal(suite.T(), "pending", order.Status)
	assert.Len(suite.T(), order.Items, 2)
	assert.Equal(suite.T(), 2.50, order.Items[0].Price)
	assert.Equal(suite.T(), 5.00, order.Items[0].Subtotal())
	assert.NotNil(suite.T(), order.Customer)
	assert.Equal(suite.T(), "Asha Patel", order.Customer.Name)
}

// A later item running out of stock must roll back the order header and the
// decrement already applied to the first item.
func (suite *OrderServiceTestSuite) TestCreateOrder_InsufficientStockRollsBack() {
	suite.expectCustomerLookup(5)
	suite.mock.ExpectBegin()

	now := time.Now()
	suite.mock.ExpectQuery(`
			INSERT INTO orders \(user_id, customer_id, total_amount, status, order_date\)
			VALUES \(\$1, \$2, \$3, \$4, NOW\(\)\)
			RETURNING id, order_date
		`).WithArgs(suite.userA, int64(5), 0.0, "pending").
		WillReturnRows(pgxmock.NewRows([]string{"id", "order_date"}).AddRow(int64(11), now))

	suite.expectSweetLookup(7, "Gulab Jamun", 2.50, 10)
	suite.mock.ExpectExec(`
			UPDATE sweets
			SET quantity = \$1, updated_at = NOW\(\)
			WHERE user_id = \$2 AND id = \$3
		`).WithArgs(8, suite.userA, int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectQuery(`
			INSERT INTO order_items \(order_id, sweet_id, quantity, price\)
			VALUES \(\$1, \$2, \$3, \$4\)
			RETURNING id
		`).WithArgs(int64(11), int64(7), 2, 2.50).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(21)))

	suite.expectSweetLookup(8, "Ladoo", 1.50, 1)
	suite.mock.ExpectRollback()

	order, err := suite.service.CreateOrder(suite.context, suite.userA, &OrderInput{
		CustomerID: 5,
		Items: []OrderItemInput{
			{SweetID: 7, Quantity: 2},
			{SweetID: 8, Quantity: 5},
		},
	})
	assert.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, common.ErrInsufficientStock)
	assert.Contains(suite.T(), err.Error(), "Ladoo")
	assert.Nil(suite.T(), order)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_UnknownSweet() {
	suite.expectCustomerLookup(5)
	suite.mock.ExpectBegin()

	now := time.Now()
	suite.mock.ExpectQuery(`
			INSERT INTO orders \(user_id, customer_id, total_amount, status, order_date\)
			VALUES \(\$1, \$2, \$3, \$4, NOW\(\)\)
			RETURNING id, order_date
		`).WithArgs(suite.userA, int64(5), 0.0, "pending").
		WillReturnRows(pgxmock.NewRows([]string{"id", "order_date"}).AddRow(int64(11), now))

	suite.mock.ExpectQuery(`
			SELECT id, user_id, name, description, price, quantity, category, image_url, created_at, updated_at
			FROM sweets
			WHERE user_id = \$1 AND id = \$2
		`).WithArgs(suite.userA, int64(99)).
		WillReturnError(pgx.ErrNoRows)
	suite.mock.ExpectRollback()

	order, err := suite.service.CreateOrder(suite.context, suite.userA, &OrderInput{
		CustomerID: 5,
		Items:      []OrderItemInput{{SweetID: 99, Quantity: 1}},
	})
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
	assert.Nil(suite.T(), order)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_UnknownCustomer() {
	suite.mock.ExpectQuery(`
			SELECT id, user_id, name, email, phone, address, created_at
			FROM customers
			WHERE user_id = \$1 AND id = \$2
		`).WithArgs(suite.userA, int64(42)).
		WillReturnError(pgx.ErrNoRows)

	order, err := suite.service.CreateOrder(suite.context, suite.userA, &OrderInput{
		CustomerID: 42,
		Items:      []OrderItemInput{{SweetID: 7, Quantity: 1}},
	})
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
	assert.Nil(suite.T(), order)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_RejectsEmptyItems() {
	order, err := suite.service.CreateOrder(suite.context, suite.userA, &OrderInput{
		CustomerID: 5,
		Items:      []OrderItemInput{},
	})
	assert.ErrorIs(suite.T(), err, common.ErrValidation)
	assert.Nil(suite.T(), order)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_RejectsNonPositiveQuantity() {
	order, err := suite.service.CreateOrder(suite.context, suite.userA, &OrderInput{
		CustomerID: 5,
		Items:      []OrderItemInput{{SweetID: 7, Quantity: 0}},
	})
	assert.ErrorIs(suite.T(), err, common.ErrValidation)
	assert.Nil(suite.T(), order)
}

func (suite *OrderServiceTestSuite) expectOrderLookup(orderID int64) {
	now := time.Now()
	suite.mock.ExpectQuery(`
			SELECT id, user_id, customer_id, total_amount, status, order_date
			FROM orders
			WHERE user_id = \$1 AND id = \$2
		`).WithArgs(suite.userA, orderID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "customer_id", "total_amount", "status", "order_date"}).
			AddRow(orderID, suite.userA, int64(5), 8.00, "pending", now))
}

// Deleting an order returns every reserved unit to stock before the order
// row goes away.
func (suite *OrderServiceTestSuite) TestDeleteOrder_RestoresStock() {
	suite.expectOrderLookup(11)
	suite.mock.ExpectBegin()

	suite.mock.ExpectQuery(`
			SELECT id, order_id, sweet_id, quantity, price
			FROM order_items
			WHERE order_id = \$1
			ORDER BY id
		`).WithArgs(int64(11)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "order_id", "sweet_id", "quantity", "price"}).
			AddRow(int64(21), int64(11), int64(7), 2, 2.50))

	suite.expectSweetLookup(7, "Gulab Jamun", 2.50, 8)
	suite.mock.ExpectExec(`
			UPDATE sweets
			SET quantity = \$1, updated_at = NOW\(\)
			WHERE user_id = \$2 AND id = \$3
		`).WithArgs(10, suite.userA, int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	suite.mock.ExpectExec(`DELETE FROM orders WHERE user_id = \$1 AND id = \$2`).
		WithArgs(suite.userA, int64(11)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	suite.mock.ExpectCommit()

	err := suite.service.DeleteOrder(suite.context, suite.userA, 11)
	assert.NoError(suite.T(), err)
}

// A sweet removed since the order was placed cannot be restocked; the
// deletion still goes through.
func (suite *OrderServiceTestSuite) TestDeleteOrder_ToleratesMissingSweet() {
	suite.expectOrderLookup(11)
	suite.mock.ExpectBegin()

	suite.mock.ExpectQuery(`
			SELECT id, order_id, sweet_id, quantity, price
			FROM order_items
			WHERE order_id = \$1
			ORDER BY id
		`).WithArgs(int64(11)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "order_id", "sweet_id", "quantity", "price"}).
			AddRow(int64(21), int64(11), int64(7), 2, 2.50))

	suite.mock.ExpectQuery(`
			SELECT id, user_id, name, description, price, quantity, category, image_url, created_at, updated_at
			FROM sweets
			WHERE user_id = \$1 AND id = \$2
		`).WithArgs(suite.userA, int64(7)).
		WillReturnError(pgx.ErrNoRows)

	suite.mock.ExpectExec(`DELETE FROM orders WHERE user_id = \$1 AND id = \$2`).
		WithArgs(suite.userA, int64(11)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	suite.mock.ExpectCommit()

	err := suite.service.DeleteOrder(suite.context, suite.userA, 11)
	assert.NoError(suite.T(), err)
}

func (suite *OrderServiceTestSuite) TestDeleteOrder_NotFound() {
	suite.mock.ExpectQuery(`
			SELECT id, user_id, customer_id, total_amount, status, order_date
			FROM orders
			WHERE user_id = \$1 AND id = \$2
		`).WithArgs(suite.userA, int64(99)).
		WillReturnError(pgx.ErrNoRows)

	err := suite.service.DeleteOrder(suite.context, suite.userA, 99)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

func (suite *OrderServiceTestSuite) TestUpdateStatus_NilKeepsCurrent() {
	suite.expectOrderLookup(11)

	// hydrate only: no status update statement expected
	suite.expectCustomerLookup(5)
	suite.mock.ExpectQuery(`
			SELECT id, order_id, sweet_id, quantity, price
			FROM order_items
			WHERE order_id = \$1
			ORDER BY id
		`).WithArgs(int64(11)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "order_id", "sweet_id", "quantity", "price"}))

	order, err := suite.service.UpdateStatus(suite.context, suite.userA, 11, nil)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "pending", order.Status)
	assert.NotNil(suite.T(), order.Items)
}

func (suite *OrderServiceTestSuite) TestUpdateStatus_ReplacesValue() {
	suite.expectOrderLookup(11)

	suite.mock.ExpectExec(`UPDATE orders SET status = \$1 WHERE user_id = \$2 AND id = \$3`).
		WithArgs("completed", suite.userA, int64(11)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	suite.expectCustomerLookup(5)
	suite.mock.ExpectQuery(`
			SELECT id, order_id, sweet_id, quantity, price
			FROM order_items
			WHERE order_id = \$1
			ORDER BY id
		`).WithArgs(int64(11)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "order_id", "sweet_id", "quantity", "price"}))

	status := "completed"
	order, err := suite.service.UpdateStatus(suite.context, suite.userA, 11, &status)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "completed", order.Status)
}
