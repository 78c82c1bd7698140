package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/crownstore/internal/client/models"
	"github.com/dmitrijs2005/crownstore/internal/client/repositories/subscribers"
	"github.com/dmitrijs2005/crownstore/internal/client/repositories/users"
)

// Overview aggregates the store for the admin dashboard. "This month" is
// the calendar month of now in now's location.
func Overview(ctx context.Context, u users.Repository, s subscribers.Repository, now time.Time) (models.Overview, error) {
	all, err := u.All(ctx)
	if err != nil {
		return models.Overview{}, fmt.Errorf("load users: %w", err)
	}
	subs, err := s.All(ctx)
	if err != nil {
		return models.Overview{}, fmt.Errorf("load subscribers: %w", err)
	}

	ov := models.Overview{TotalCustomers: len(all), TotalSubscribers: len(subs)}
	for _, user := range all {
		ov.TotalOrders += len(user.Orders)
		if sameMonth(user.CreatedAt, now) {
			ov.CustomersThisMonth++
		}
	}
	return ov, nil
}

func sameMonth(t, now time.Time) bool {
	t = t.In(now.Location())
	return t.Year() == now.Year() && t.Month() == now.Month()
}
