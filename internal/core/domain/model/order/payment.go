package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// PaymentMethod represents how an order is paid for.
//
// PaymentMethodUnknown (the zero value) means the payment method was never
// recorded. Historical orders predate the payment fields, so absence is
// deliberately treated as cash on delivery everywhere behavior depends on
// the method. This default-fallback rule is what keeps the delivery payment
// gate conservative: an order with no payment data cannot be delivered while
// its payment is uncollected.
type PaymentMethod int

const (
	// PaymentMethodUnknown means no payment method was recorded.
	// Behaves as CashOnDelivery.
	PaymentMethodUnknown PaymentMethod = iota

	// CashOnDelivery means the courier collects payment at the door.
	CashOnDelivery

	// Online means the order was paid through the payment gateway at
	// placement time.
	Online
)

// PaymentMethodFromString parses a payment method from its wire representation.
// An empty string maps to PaymentMethodUnknown (absent, behaves as COD);
// any other unrecognized value is rejected.
func PaymentMethodFromString(s string) (PaymentMethod, error) {
	switch s {
	case "":
		return PaymentMethodUnknown, nil
	case "COD":
		return CashOnDelivery, nil
	case "ONLINE":
		return Online, nil
	default:
		return PaymentMethodUnknown, errs.NewValueIsInvalidErrorWithCause(
			"paymentMethod",
			fmt.Errorf("%q is not a known payment method", s),
		)
	}
}

// String returns the wire name of the payment method.
// PaymentMethodUnknown renders as the empty string.
func (m PaymentMethod) String() string {
	switch m {
	case CashOnDelivery:
		return "COD"
	case Online:
		return "ONLINE"
	default:
		return ""
	}
}

// Validate checks the payment method is one of the known values.
// PaymentMethodUnknown is valid: it encodes absence.
func (m PaymentMethod) Validate() error {
	if m < PaymentMethodUnknown || m > Online {
		return errs.NewValueIsInvalidErrorWithCause(
			"paymentMethod",
			fmt.Errorf("%d is not a valid payment method", m),
		)
	}
	return nil
}

// IsCashOnDelivery reports whether the order requires payment collection at
// the door. Absent payment methods count as cash on delivery.
func (m PaymentMethod) IsCashOnDelivery() bool {
	return m != Online
}

// PaymentStatus represents whether payment for an order has been collected.
//
// PaymentStatusUnknown (the zero value) means the status was never recorded
// and is treated as Pending wherever behavior depends on it, mirroring the
// PaymentMethod fallback.
type PaymentStatus int

const (
	// PaymentStatusUnknown means no payment status was recorded.
	// Behaves as Pending.
	PaymentStatusUnknown PaymentStatus = iota

	// Pending means payment has not been collected yet.
	Pending

	// Collected means payment has been received.
	Collected
)

// PaymentStatusFromString parses a payment status from its wire representation.
// An empty string maps to PaymentStatusUnknown (absent, behaves as Pending);
// any other unrecognized value is rejected.
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	switch s {
	case "":
		return PaymentStatusUnknown, nil
	case "PENDING":
		return Pending, nil
	case "COLLECTED":
		return Collected, nil
	default:
		return PaymentStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
			"paymentStatus",
			fmt.Errorf("%q is not a known payment status", s),
		)
	}
}

// String returns the wire name of the payment status.
// PaymentStatusUnknown renders as the empty string.
func (s PaymentStatus) String() string {
	switch s {
	case Pending:
		return "PENDING"
	case Collected:
		return "COLLECTED"
	default:
		return ""
	}
}

// Validate checks the payment status is one of the known values.
// PaymentStatusUnknown is valid: it encodes absence.
func (s PaymentStatus) Validate() error {
	if s < PaymentStatusUnknown || s > Collected {
		return errs.NewValueIsInvalidErrorWithCause(
			"paymentStatus",
			fmt.Errorf("%d is not a valid payment status", s),
		)
	}
	return nil
}

// IsPending reports whether payment is still outstanding.
// Absent payment statuses count as pending.
func (s PaymentStatus) IsPending() bool {
	return s != Collected
}
