package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/crownstore/internal/client/models"
)

func (a *App) Checkout(ctx context.Context) error {
	u, err := a.engine.Auth.CurrentUser(ctx)
	if err != nil {
		return err
	}

	o, err := a.engine.Orders.Checkout(ctx, u.ID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Order %s placed: %d line(s), total %s, status %s\n", o.ID, len(o.Items), formatPrice(o.Total), o.Status)
	return nil
}

// Orders lists the customer's orders, newest first.
func (a *App) Orders(ctx context.Context) error {
	u, err := a.engine.Auth.CurrentUser(ctx)
	if err != nil {
		return err
	}

	orders, err := a.engine.Orders.OrdersFor(ctx, u.ID)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Fprintln(a.out, "No orders yet")
		return nil
	}

	orders = slices.Clone(orders)
	slices.SortStableFunc(orders, func(x, y models.Order) int { return y.CreatedAt.Compare(x.CreatedAt) })
	for _, o := range orders {
		fmt.Fprintf(a.out, "%s  %s  %-10s %s\n", o.ID, formatDate(o.CreatedAt), o.Status, formatPrice(o.Total))
	}
	return nil
}

// Overview prints store totals and the latest orders across customers.
func (a *App) Overview(ctx context.Context) error {
	ov, err := a.engine.Overview(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Customers: %d (%d this month)\n", ov.TotalCustomers, ov.CustomersThisMonth)
	fmt.Fprintf(a.out, "Orders: %d\n", ov.TotalOrders)
	fmt.Fprintf(a.out, "Subscribers: %d\n", ov.TotalSubscribers)

	recent, err := a.engine.Orders.RecentOrders(ctx, 0)
	if err != nil {
		return err
	}
	if len(recent) == 0 {
		return nil
	}
	fmt.Fprintln(a.out, "Recent orders:")
	for _, o := range recent {
		fmt.Fprintf(a.out, "  %s  %s  %-20s %-10s %s\n", o.ID, formatDate(o.CreatedAt), o.CustomerName, o.Status, formatPrice(o.Total))
	}
	return nil
}
