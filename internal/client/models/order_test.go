package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatus_Transitions(t *testing.T) {
	allowed := map[[2]OrderStatus]bool{
		{OrderPending, OrderProcessing}:   true,
		{OrderProcessing, OrderShipped}:   true,
		{OrderShipped, OrderDelivered}:    true,
		{OrderPending, OrderCancelled}:    true,
		{OrderProcessing, OrderCancelled}: true,
		{OrderShipped, OrderCancelled}:    true,
	}
	all := []OrderStatus{OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled}

	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[[2]OrderStatus{from, to}], from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestOrderStatus_Terminal(t *testing.T) {
	assert.True(t, OrderDelivered.Terminal())
	assert.True(t, OrderCancelled.Terminal())
	assert.False(t, OrderPending.Terminal())
}

func TestParseOrderStatus(t *testing.T) {
	st, err := ParseOrderStatus("shipped")
	require.NoError(t, err)
	assert.Equal(t, OrderShipped, st)

	_, err = ParseOrderStatus("lost")
	require.Error(t, err)
}
