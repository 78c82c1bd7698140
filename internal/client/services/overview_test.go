package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/crownstore/internal/client/models"
)

func TestOverview(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ada := f.registerAda(t)
	_, err := f.orders.PlaceOrder(ctx, ada.ID, []models.CartItem{{ID: "a", Price: 1, Qty: 1}}, 1)
	require.NoError(t, err)

	f.clock.Advance(40 * 24 * time.Hour)
	other := adaInput()
	other.Email = "b@x.com"
	other.Phone = "08033334444"
	grace, err := f.identity.Register(ctx, other)
	require.NoError(t, err)
	_, err = f.orders.PlaceOrder(ctx, grace.ID, []models.CartItem{{ID: "a", Price: 1, Qty: 1}}, 1)
	require.NoError(t, err)

	_, err = f.subscr.Subscribe(ctx, "c@x.com")
	require.NoError(t, err)

	ov, err := Overview(ctx, f.users, f.subs, f.clock.Now())
	require.NoError(t, err)
	assert.Equal(t, models.Overview{
		TotalCustomers:     2,
		TotalSubscribers:   1,
		TotalOrders:        2,
		CustomersThisMonth: 1,
	}, ov)
}
