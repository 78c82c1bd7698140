package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/crownstore/internal/client/models"
)

func (a *App) AddToCart(ctx context.Context) error {
	var item models.CartItem
	var err error

	if item.ID, err = getSimpleText(a.reader, "Product id", a.out); err != nil {
		return err
	}
	if item.Name, err = getSimpleText(a.reader, "Product name", a.out); err != nil {
		return err
	}
	if item.Variant, err = getSimpleText(a.reader, "Variant (optional)", a.out); err != nil {
		return err
	}
	if item.Price, err = getInt(a.reader, "Unit price", 0, a.out); err != nil {
		return err
	}
	qty, err := getInt(a.reader, "Quantity", 1, a.out)
	if err != nil {
		return err
	}
	item.Qty = int(qty)

	c, err := a.engine.Cart.AddItem(ctx, item)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Added. Cart: %d item(s), subtotal %s\n", c.ItemCount(), formatPrice(c.Subtotal()))
	return nil
}

func (a *App) printCart(c models.Cart) {
	if len(c) == 0 {
		fmt.Fprintln(a.out, "Your cart is empty")
		return
	}
	for _, it := range c {
		name := it.Name
		if it.Variant != "" {
			name = fmt.Sprintf("%s (%s)", name, it.Variant)
		}
		fmt.Fprintf(a.out, "%-12s %-30s %4d x %12s = %s\n", it.ID, name, it.Qty, formatPrice(it.Price), formatPrice(it.Price*int64(it.Qty)))
	}
	fmt.Fprintf(a.out, "%d item(s), %d unit(s), subtotal %s\n", c.ItemCount(), c.TotalUnits(), formatPrice(c.Subtotal()))
}

func (a *App) ShowCart(ctx context.Context) error {
	c, err := a.engine.Cart.Items(ctx)
	if err != nil {
		return err
	}
	a.printCart(c)
	return nil
}

func (a *App) UpdateQty(ctx context.Context, args []string) error {
	delta, err := strconv.Atoi(args[1])
	if err != nil {
		return inputErrorf("%q is not a number", args[1])
	}

	c, err := a.engine.Cart.UpdateQuantity(ctx, args[0], delta)
	if err != nil {
		return err
	}
	a.printCart(c)
	return nil
}

func (a *App) RemoveFromCart(ctx context.Context, args []string) error {
	c, err := a.engine.Cart.RemoveItem(ctx, args[0])
	if err != nil {
		return err
	}
	a.printCart(c)
	return nil
}

func (a *App) ClearCart(ctx context.Context) error {
	ok, err := getConfirmation(a.reader, "Remove every item from the cart?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cart kept")
		return nil
	}

	if err := a.engine.Cart.Clear(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Cart cleared")
	return nil
}
