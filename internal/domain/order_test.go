package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOrderStatus(t *testing.T) {
	status, ok := ParseOrderStatus("Shipped")
	assert.True(t, ok)
	assert.Equal(t, OrderStatusShipped, status)

	_, ok = ParseOrderStatus("Cancelled")
	assert.False(t, ok)

	_, ok = ParseOrderStatus("shipped")
	assert.False(t, ok)
}

func TestOrderStatusCanTransitionTo(t *testing.T) {
	assert.True(t, OrderStatusProcessing.CanTransitionTo(OrderStatusShipped))
	assert.True(t, OrderStatusProcessing.CanTransitionTo(OrderStatusDelivered))
	assert.True(t, OrderStatusShipped.CanTransitionTo(OrderStatusDelivered))

	assert.True(t, OrderStatusShipped.CanTransitionTo(OrderStatusShipped))

	assert.False(t, OrderStatusShipped.CanTransitionTo(OrderStatusProcessing))
	assert.False(t, OrderStatusDelivered.CanTransitionTo(OrderStatusShipped))
	assert.False(t, OrderStatusDelivered.CanTransitionTo(OrderStatusProcessing))
}
