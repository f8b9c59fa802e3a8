package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"Pending", "Approved", "Shipped", "Rejected"} {
		got, err := ParseStatus(s)
		assert.NoError(t, err)
		assert.Equal(t, OrderStatus(s), got)
	}

	_, err := ParseStatus("Delivered")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = ParseStatus("pending")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusShipped, true},
		{StatusPending, StatusRejected, true},
		{StatusApproved, StatusShipped, true},
		{StatusApproved, StatusRejected, true},
		{StatusApproved, StatusPending, false},
		{StatusShipped, StatusRejected, false},
		{StatusShipped, StatusPending, false},
		{StatusRejected, StatusApproved, false},
		{StatusRejected, StatusShipped, false},
		{StatusPending, StatusPending, false},
	}

	for _, c := range cases {
		assert.Equal(t, c.allowed, c.from.CanTransitionTo(c.to),
			"%s -> %s", c.from, c.to)
	}
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusApproved.IsTerminal())
	assert.True(t, StatusShipped.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
}
