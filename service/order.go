package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"food-marketplace-api/models"
	"food-marketplace-api/notify"
	"food-marketplace-api/repository"
	"food-marketplace-api/sheets"
	"food-marketplace-api/statemachine"
)

// DefaultReadyTime is the preparation estimate, in minutes, of a new order
const DefaultReadyTime = 45

// OrderLine is one requested food and quantity. Prices are never taken
// from the request.
type OrderLine struct {
	FoodID string `json:"foodId" binding:"required"`
	Unit   int    `json:"unit" binding:"required,min=1"`
}

// StatusUpdate is a vendor's change to an order. Nil fields are left as they are.
type StatusUpdate struct {
	Status    models.OrderStatus
	Remarks   *string
	ReadyTime *int
}

type OrderService struct {
	customers *repository.CustomerRepo
	orders    *repository.OrderRepo
	catalog   FoodLookup
	notify    *notify.Dispatcher
	policy    statemachine.Policy
	readyTime int
	displayID func() string
	now       func() time.Time
}

func NewOrderService(customers *repository.CustomerRepo, orders *repository.OrderRepo, catalog FoodLookup,
	dispatcher *notify.Dispatcher, policy statemachine.Policy, readyTime int) *OrderService {
	if readyTime <= 0 {
		readyTime = DefaultReadyTime
	}
	return &OrderService{
		customers: customers,
		orders:    orders,
		catalog:   catalog,
		notify:    dispatcher,
		policy:    policy,
		readyTime: readyTime,
		displayID: randomDisplayID,
		now:       time.Now,
	}
}

// randomDisplayID returns a 5 digit human readable order number. It is not
// unique; the order's primary key is.
func randomDisplayID() string {
	return strconv.Itoa(10000 + rand.IntN(90000))
}

// CreateOrder prices the requested lines against the catalog, stores the
// order, links it to the customer and empties the customer's cart.
// Lines whose food no longer exists are dropped.
func (s *OrderService) CreateOrder(ctx context.Context, who Identity, lines []OrderLine, readyTime *int) (*models.Order, error) {
	c, err := s.customers.ByID(ctx, who.ActorID)
	if err != nil {
		return nil, notFound(err, "customer")
	}

	ids := make([]string, len(lines))
	for i, l := range lines {
		ids[i] = l.FoodID
	}
	foods, err := s.catalog.Foods(ctx, ids)
	if err != nil {
		return nil, err
	}

	var (
		items    models.OrderItems
		total    = decimal.Zero
		vendorID string
	)
	for _, l := range lines {
		food, ok := foods[l.FoodID]
		if !ok || l.Unit <= 0 {
			continue
		}
		total = total.Add(food.Price.Mul(decimal.NewFromInt(int64(l.Unit))))
		items = append(items, models.OrderItem{Food: food.Snapshot(), Unit: l.Unit})
		// mixed vendor requests are not rejected; the last line wins
		vendorID = food.VendorID
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: none of the requested foods are available", ErrValidation)
	}

	order := &models.Order{
		OrderID:     s.displayID(),
		VendorID:    vendorID,
		CustomerID:  c.ID,
		Items:       items,
		TotalAmount: total,
		OrderDate:   s.now(),
		PaidThrough: models.PaidCOD,
		OrderStatus: models.StatusWaiting,
		ReadyTime:   s.readyTime,
	}
	if readyTime != nil && *readyTime > 0 {
		order.ReadyTime = *readyTime
	}

	err = s.orders.PlaceForCustomer(ctx, order, c.CartVersion)
	if errors.Is(err, repository.ErrStaleCart) {
		return nil, fmt.Errorf("%w: cart changed while the order was being placed, try again", ErrConflict)
	}
	if err != nil {
		return nil, err
	}
	s.notify.OrderEvent(notify.RKOrderCreated, orderEvent(order))
	return order, nil
}

// ProcessOrder applies a vendor's status update to one of its orders.
// Items are never touched.
func (s *OrderService) ProcessOrder(ctx context.Context, who Identity, id string, u StatusUpdate) (*models.Order, error) {
	order, err := s.orders.ByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "order "+id)
	}
	if order.VendorID != who.ActorID {
		return nil, fmt.Errorf("%w: order does not belong to your restaurant", ErrForbidden)
	}
	if err := s.policy.CanTransition(order.OrderStatus, u.Status); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	prev := order.OrderStatus
	order.OrderStatus = u.Status
	if u.Remarks != nil {
		order.Remarks = *u.Remarks
	}
	if u.ReadyTime != nil && *u.ReadyTime > 0 {
		order.ReadyTime = *u.ReadyTime
	}
	if err := s.orders.UpdateStatus(ctx, order, prev, who.ActorID, order.Remarks); err != nil {
		return nil, err
	}
	s.notify.OrderEvent(notify.RKOrderStatusChanged, orderEvent(order))
	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.orders.ByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "order "+id)
	}
	return order, nil
}

// OrderFor returns the order when the caller is its customer or its vendor
func (s *OrderService) OrderFor(ctx context.Context, who Identity, id string) (*models.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	switch {
	case who.Role == models.RoleAdmin,
		who.Role == models.RoleCustomer && order.CustomerID == who.ActorID,
		who.Role == models.RoleVendor && order.VendorID == who.ActorID:
		return order, nil
	}
	return nil, fmt.Errorf("%w: this order does not belong to you", ErrForbidden)
}

func (s *OrderService) ListForVendor(ctx context.Context, vendorID string, status models.OrderStatus) ([]models.Order, error) {
	return s.orders.ByVendor(ctx, vendorID, status)
}

func (s *OrderService) ListForCustomer(ctx context.Context, customerID string) ([]models.Order, error) {
	return s.orders.ByCustomer(ctx, customerID)
}

// ExportForVendor writes the vendor's orders as a spreadsheet
func (s *OrderService) ExportForVendor(ctx context.Context, vendorID string, w io.Writer) error {
	orders, err := s.orders.ByVendor(ctx, vendorID, "")
	if err != nil {
		return err
	}
	return sheets.WriteOrders(w, orders)
}

func orderEvent(o *models.Order) notify.OrderEvent {
	return notify.OrderEvent{
		OrderID:     o.ID,
		DisplayID:   o.OrderID,
		VendorID:    o.VendorID,
		CustomerID:  o.CustomerID,
		Status:      string(o.OrderStatus),
		TotalAmount: o.TotalAmount.StringFixed(2),
		ReadyTime:   o.ReadyTime,
	}
}
