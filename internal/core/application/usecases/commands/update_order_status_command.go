package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var (
	ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
		"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
	)
	// ErrStatusIsNotReachable is returned when the target status cannot be
	// requested through a transition. PLACED is the initial status and
	// ASSIGNED is entered only through assignment.
	ErrStatusIsNotReachable = errors.New(
		"target status must be PICKED_UP, OUT_FOR_DELIVERY, DELIVERED or CANCELLED",
	)
)

// UpdateOrderStatusCommand advances an order along its delivery lifecycle
// on behalf of the assigned courier.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID
	newStatus order.Status

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a command to move the order into
// newStatus. Only PICKED_UP, OUT_FOR_DELIVERY, DELIVERED and CANCELLED are
// valid targets.
func NewUpdateOrderStatusCommand(
	orderID kernel.UUID,
	courierID kernel.UUID,
	newStatus order.Status,
) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCourierID(courierID),
		cmd.setNewStatus(newStatus),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order being moved.
func (c UpdateOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the courier requesting the transition.
func (c UpdateOrderStatusCommand) CourierID() kernel.UUID {
	return c.courierID
}

// NewStatus returns the requested target status.
func (c UpdateOrderStatusCommand) NewStatus() order.Status {
	return c.newStatus
}

func (c *UpdateOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateOrderStatusCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}

func (c *UpdateOrderStatusCommand) setNewStatus(newStatus order.Status) error {
	switch newStatus {
	case order.PickedUp, order.OutForDelivery, order.Delivered, order.Cancelled:
		c.newStatus = newStatus
		return nil
	default:
		return ErrStatusIsNotReachable
	}
}
