package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/dmitrijs2005/crownstore/internal/client/models"
	"github.com/dmitrijs2005/crownstore/internal/client/repositories/cart"
	"github.com/dmitrijs2005/crownstore/internal/client/repositories/users"
	"github.com/dmitrijs2005/crownstore/internal/client/store"
	"github.com/dmitrijs2005/crownstore/internal/common"
	"github.com/dmitrijs2005/crownstore/internal/logging"
)

const defaultRecentOrders = 10

// OrderService is the order ledger. Orders live inside their user's
// record and only their status ever changes.
type OrderService interface {
	PlaceOrder(ctx context.Context, userID string, items []models.CartItem, total int64) (*models.Order, error)

	// OrdersFor returns orders in insertion order; an unknown user has none.
	OrdersFor(ctx context.Context, userID string) ([]models.Order, error)

	// Checkout places an order for the whole cart and empties it in the
	// same store write.
	Checkout(ctx context.Context, userID string) (*models.Order, error)

	UpdateStatus(ctx context.Context, userID, orderID string, status models.OrderStatus) (*models.Order, error)

	// RecentOrders lists orders of every customer, newest first. A
	// non-positive limit means the default of 10.
	RecentOrders(ctx context.Context, limit int) ([]models.CustomerOrder, error)
}

type orderService struct {
	kv    store.Repository
	users users.Repository
	cart  cart.Repository
	log   logging.Logger
	now   func() time.Time
}

func NewOrderService(kv store.Repository, repo users.Repository, c cart.Repository, log logging.Logger) OrderService {
	if log == nil {
		log = logging.Nop()
	}
	return &orderService{kv: kv, users: repo, cart: c, log: log.With("component", "orders"), now: time.Now}
}

func indexUser(all []models.User, id string) int {
	return slices.IndexFunc(all, func(u models.User) bool { return u.ID == id })
}

// appendOrder builds the order and appends it to all[idx].
func (s *orderService) appendOrder(all []models.User, idx int, items []models.CartItem, total int64) models.Order {
	o := models.Order{
		ID:        newID(orderIDPrefix),
		Items:     append([]models.CartItem{}, items...),
		Total:     total,
		Status:    models.OrderPending,
		CreatedAt: s.now().UTC(),
	}
	all[idx].Orders = append(all[idx].Orders, o)
	return o
}

func (s *orderService) PlaceOrder(ctx context.Context, userID string, items []models.CartItem, total int64) (*models.Order, error) {
	all, err := s.users.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	idx := indexUser(all, userID)
	if idx < 0 {
		return nil, common.ErrUserNotFound
	}

	o := s.appendOrder(all, idx, items, total)
	if err := s.users.Save(ctx, all); err != nil {
		return nil, fmt.Errorf("save users: %w", err)
	}

	s.log.Info(ctx, "order placed", "user_id", userID, "order_id", o.ID, "total", o.Total)
	return &o, nil
}

func (s *orderService) OrdersFor(ctx context.Context, userID string) ([]models.Order, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if u == nil || u.Orders == nil {
		return []models.Order{}, nil
	}
	return u.Orders, nil
}

func (s *orderService) Checkout(ctx context.Context, userID string) (*models.Order, error) {
	all, err := s.users.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	idx := indexUser(all, userID)
	if idx < 0 {
		return nil, common.ErrUserNotFound
	}

	c, err := s.cart.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if len(c) == 0 {
		return nil, common.ErrEmptyCart
	}

	o := s.appendOrder(all, idx, c, c.Subtotal())
	m, err := s.users.SaveMutation(all)
	if err != nil {
		return nil, err
	}
	if err := s.kv.Apply(ctx, m, s.cart.ClearMutation()); err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}

	s.log.Info(ctx, "checkout complete", "user_id", userID, "order_id", o.ID, "lines", len(o.Items), "total", o.Total)
	return &o, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, userID, orderID string, status models.OrderStatus) (*models.Order, error) {
	if _, err := models.ParseOrderStatus(string(status)); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnknownOrderStatus, err)
	}

	all, err := s.users.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	idx := indexUser(all, userID)
	if idx < 0 {
		return nil, common.ErrUserNotFound
	}
	oi := all[idx].FindOrder(orderID)
	if oi < 0 {
		return nil, common.ErrOrderNotFound
	}

	o := &all[idx].Orders[oi]
	if !o.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s -> %s", common.ErrInvalidTransition, o.Status, status)
	}
	from := o.Status
	o.Status = status
	o.UpdatedAt = s.now().UTC()

	if err := s.users.Save(ctx, all); err != nil {
		return nil, fmt.Errorf("save users: %w", err)
	}

	s.log.Info(ctx, "order status changed", "order_id", orderID, "from", from, "to", status)
	updated := *o
	return &updated, nil
}

func (s *orderService) RecentOrders(ctx context.Context, limit int) ([]models.CustomerOrder, error) {
	if limit <= 0 {
		limit = defaultRecentOrders
	}
	all, err := s.users.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}

	var out []models.CustomerOrder
	for _, u := range all {
		for _, o := range u.Orders {
			out = append(out, models.CustomerOrder{
				Order:         o,
				UserID:        u.ID,
				CustomerName:  u.FullName,
				CustomerEmail: u.Email,
			})
		}
	}
	slices.SortStableFunc(out, func(a, b models.CustomerOrder) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	if out == nil {
		out = []models.CustomerOrder{}
	}
	return out, nil
}
