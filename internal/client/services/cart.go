package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/crownstore/internal/client/models"
	"github.com/dmitrijs2005/crownstore/internal/client/repositories/cart"
	"github.com/dmitrijs2005/crownstore/internal/common"
	"github.com/dmitrijs2005/crownstore/internal/logging"
)

// CartService is the browser cart. Every operation reads the stored cart,
// changes it and writes it back.
type CartService interface {
	AddItem(ctx context.Context, item models.CartItem) (models.Cart, error)
	UpdateQuantity(ctx context.Context, id string, delta int) (models.Cart, error)
	RemoveItem(ctx context.Context, id string) (models.Cart, error)

	// Clear is destructive; callers confirm with the user first.
	Clear(ctx context.Context) error

	Items(ctx context.Context) (models.Cart, error)
	Subtotal(ctx context.Context) (int64, error)
	ItemCount(ctx context.Context) (int, error)
	TotalUnits(ctx context.Context) (int, error)
}

type cartService struct {
	repo cart.Repository
	log  logging.Logger
}

func NewCartService(repo cart.Repository, log logging.Logger) CartService {
	if log == nil {
		log = logging.Nop()
	}
	return &cartService{repo: repo, log: log.With("component", "cart")}
}

func normalizeCartItem(item models.CartItem) (models.CartItem, error) {
	item.ID = strings.TrimSpace(item.ID)
	if item.Qty == 0 {
		item.Qty = 1
	}
	if item.ID == "" || item.Price < 0 || item.Qty < 0 {
		return item, common.ErrInvalidCartItem
	}
	if item.Qty > models.MaxLineQty {
		return item, common.ErrCartLimit
	}
	return item, nil
}

// update loads the cart, applies fn and saves the result. A change fn
// refuses leaves the stored cart untouched.
func (s *cartService) update(ctx context.Context, fn func(models.Cart) (models.Cart, bool)) (models.Cart, error) {
	c, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	c, ok := fn(c)
	if !ok {
		return nil, common.ErrCartLimit
	}
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return c, nil
}

func (s *cartService) AddItem(ctx context.Context, item models.CartItem) (models.Cart, error) {
	item, err := normalizeCartItem(item)
	if err != nil {
		return nil, err
	}
	c, err := s.update(ctx, func(c models.Cart) (models.Cart, bool) { return c.Add(item) })
	if err != nil {
		return nil, err
	}
	s.log.Debug(ctx, "cart item added", "id", item.ID, "qty", item.Qty)
	return c, nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, id string, delta int) (models.Cart, error) {
	return s.update(ctx, func(c models.Cart) (models.Cart, bool) { return c.UpdateQuantity(id, delta) })
}

func (s *cartService) RemoveItem(ctx context.Context, id string) (models.Cart, error) {
	return s.update(ctx, func(c models.Cart) (models.Cart, bool) { return c.Remove(id), true })
}

func (s *cartService) Clear(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	s.log.Info(ctx, "cart cleared")
	return nil
}

func (s *cartService) Items(ctx context.Context) (models.Cart, error) {
	c, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return c, nil
}

func (s *cartService) Subtotal(ctx context.Context) (int64, error) {
	c, err := s.Items(ctx)
	if err != nil {
		return 0, err
	}
	return c.Subtotal(), nil
}

func (s *cartService) ItemCount(ctx context.Context) (int, error) {
	c, err := s.Items(ctx)
	if err != nil {
		return 0, err
	}
	return c.ItemCount(), nil
}

func (s *cartService) TotalUnits(ctx context.Context) (int, error) {
	c, err := s.Items(ctx)
	if err != nil {
		return 0, err
	}
	return c.TotalUnits(), nil
}
