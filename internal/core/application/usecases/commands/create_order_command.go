package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to place a new order. The order
// enters the system in PLACED status and waits for the dispatch loop or an
// explicit assignment.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	zone          kernel.Zone
	totalAmount   float64
	paymentMethod order.PaymentMethod

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place an order.
// Generates a unique ID for the order; read it back via OrderID.
func NewCreateOrderCommand(
	zone kernel.Zone,
	totalAmount float64,
	paymentMethod order.PaymentMethod,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		orderID: kernel.NewUUID(),
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setZone(zone),
		cmd.setTotalAmount(totalAmount),
		cmd.setPaymentMethod(paymentMethod),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the generated order ID.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Zone returns the delivery zone for the order.
func (c CreateOrderCommand) Zone() kernel.Zone {
	return c.zone
}

// TotalAmount returns the order amount.
func (c CreateOrderCommand) TotalAmount() float64 {
	return c.totalAmount
}

// PaymentMethod returns how the order will be paid.
func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

func (c *CreateOrderCommand) setZone(zone kernel.Zone) error {
	if err := zone.Validate(); err != nil {
		return err
	}

	c.zone = zone
	return nil
}

func (c *CreateOrderCommand) setTotalAmount(amount float64) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidError("totalAmount")
	}

	c.totalAmount = amount
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(method order.PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}

	c.paymentMethod = method
	return nil
}
