package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct delivery workflow.
//
// State transitions:
//
//	Placed ──> Assigned ──> PickedUp ──> OutForDelivery ──> Delivered
//	              │            │               │
//	              └────────────┴───────────────┴──> Cancelled
//
// Assigned is only entered through the assignment workflow, never through a
// plain status update. Delivered and Cancelled are terminal; terminal orders
// are retained for history and stats, never deleted.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// Placed is the initial status when an order is created.
	// Orders in this status are waiting to be assigned to a courier.
	Placed

	// Assigned indicates the order has been assigned to a courier.
	Assigned

	// PickedUp indicates the assigned courier has collected the order.
	PickedUp

	// OutForDelivery indicates the courier is en route to the customer.
	OutForDelivery

	// Delivered indicates the order reached the customer.
	// This is a terminal state.
	Delivered

	// Cancelled indicates the order was cancelled while active.
	// This is a terminal state.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:  "UNKNOWN",
		Placed:         "PLACED",
		Assigned:       "ASSIGNED",
		PickedUp:       "PICKED_UP",
		OutForDelivery: "OUT_FOR_DELIVERY",
		Delivered:      "DELIVERED",
		Cancelled:      "CANCELLED",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation and parsing.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		Placed:         "PLACED",
		Assigned:       "ASSIGNED",
		PickedUp:       "PICKED_UP",
		OutForDelivery: "OUT_FOR_DELIVERY",
		Delivered:      "DELIVERED",
		Cancelled:      "CANCELLED",
	}
}

// StatusFromString parses a status from its wire representation.
// Unknown values are rejected at the boundary rather than defaulted silently.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a known order status", s),
	)
}

// Validate checks if the Status value is valid.
// StatusUnknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, e.g. "OUT_FOR_DELIVERY".
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsActive reports whether the status counts toward a courier's active-order
// load. Active statuses are Assigned, PickedUp, and OutForDelivery.
func (s Status) IsActive() bool {
	return s == Assigned || s == PickedUp || s == OutForDelivery
}

// IsTerminal reports whether the status is final (Delivered or Cancelled).
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// Assign transitions the status to Assigned.
//
// Valid transitions:
//   - Placed -> Assigned
//
// Any other source status returns ErrOrderNotAvailable: the order was
// already taken, completed, or cancelled. Callers racing for the same order
// treat this as an expected outcome, not a fault.
func (s Status) Assign() (Status, error) {
	if s != Placed {
		return 0, ErrOrderNotAvailable
	}
	return Assigned, nil
}

// PickUp transitions the status to PickedUp.
//
// Valid transitions:
//   - Assigned -> PickedUp
func (s Status) PickUp() (Status, error) {
	if s != Assigned {
		return 0, ErrCannotPickUp
	}
	return PickedUp, nil
}

// StartDelivery transitions the status to OutForDelivery.
//
// Valid transitions:
//   - PickedUp -> OutForDelivery
func (s Status) StartDelivery() (Status, error) {
	if s != PickedUp {
		return 0, ErrCannotStartDelivery
	}
	return OutForDelivery, nil
}

// Deliver transitions the status to Delivered.
//
// Valid transitions:
//   - OutForDelivery -> Delivered
//
// The payment gate is enforced by Order.Deliver, not here: this method only
// validates the status edge.
func (s Status) Deliver() (Status, error) {
	if s != OutForDelivery {
		return 0, ErrCannotDeliver
	}
	return Delivered, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Assigned, PickedUp, OutForDelivery -> Cancelled
func (s Status) Cancel() (Status, error) {
	if !s.IsActive() {
		return 0, ErrCannotCancel
	}
	return Cancelled, nil
}
