package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCollectPaymentCommandIsNotConstructed = errors.New(
	"CollectPaymentCommand must be created via NewCollectPaymentCommand constructor",
)

// CollectPaymentCommand records that the payment for an order has been
// collected. For cash-on-delivery orders this is the prerequisite for the
// DELIVERED transition.
type CollectPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCollectPaymentCommand creates a command marking the order's payment collected.
func NewCollectPaymentCommand(orderID kernel.UUID) (CollectPaymentCommand, error) {
	cmd := CollectPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := orderID.Validate(); err != nil {
		return CollectPaymentCommand{}, err
	}
	cmd.orderID = orderID

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CollectPaymentCommand) Validate() error {
	return c.guard.Validate(ErrCollectPaymentCommandIsNotConstructed)
}

// OrderID returns the order whose payment was collected.
func (c CollectPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}
