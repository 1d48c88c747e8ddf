package services

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/order"
)

// Eligibility errors returned by OrderDispatcher.Dispatch. All three mean
// "this courier cannot take this order"; the order itself is untouched and
// the caller may try another courier.
var (
	// ErrZoneMismatch is returned when the courier's home zone differs from the order's zone.
	ErrZoneMismatch = errors.New("courier zone does not match order zone")
	// ErrCourierNotVerified is returned when the courier has not passed the document check.
	ErrCourierNotVerified = errors.New("courier is not verified")
	// ErrCourierAtCapacity is returned when the courier already carries the maximum number of active orders.
	ErrCourierAtCapacity = errors.New("courier is at maximum active order capacity")
)

// OrderDispatcher is a domain service responsible for deciding whether a
// courier may take an order, and for executing the assignment with the
// fee and earning locked in.
//
// Eligibility is checked in a fixed sequence so that callers observe a
// deterministic failure reason:
//  1. The order must still be in Placed status
//  2. The courier's home zone must match the order's zone
//  3. The courier must be verified
//  4. The courier must carry fewer than MaxActiveOrders active orders
//
// Only after all checks pass is the order mutated. A failed check leaves
// both aggregates untouched.
type OrderDispatcher struct {
	tariff Tariff
}

// NewOrderDispatcher creates a new OrderDispatcher instance.
func NewOrderDispatcher() OrderDispatcher {
	return OrderDispatcher{tariff: NewTariff()}
}

// Dispatch assigns the order to the courier if every eligibility check
// passes. activeOrders is the courier's current count of active orders as
// reported by storage; the dispatcher itself holds no courier load state.
//
// Returns:
//   - order.ErrOrderNotAvailable if the order left Placed status
//   - ErrZoneMismatch, ErrCourierNotVerified or ErrCourierAtCapacity if
//     the courier fails an eligibility check
//   - nil on success, with the order assigned and priced
func (d OrderDispatcher) Dispatch(ord *order.Order, c *courier.Courier, activeOrders int, now time.Time) error {
	if err := ord.Validate(); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}

	if ord.Status() != order.Placed {
		return order.ErrOrderNotAvailable
	}
	if !ord.Zone().IsEqual(c.Zone()) {
		return ErrZoneMismatch
	}
	if !c.IsVerified() {
		return ErrCourierNotVerified
	}
	if activeOrders >= MaxActiveOrders {
		return ErrCourierAtCapacity
	}

	fee, earning := d.tariff.Quote(ord.TotalAmount())
	return ord.Assign(c.ID(), fee, earning, now)
}

// IsCourierIneligible reports whether err only disqualifies the candidate
// courier. The caller may skip to the next courier; the order is still
// assignable.
func IsCourierIneligible(err error) bool {
	return errors.Is(err, ErrZoneMismatch) ||
		errors.Is(err, ErrCourierNotVerified) ||
		errors.Is(err, ErrCourierAtCapacity)
}
