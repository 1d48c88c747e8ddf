package order

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for order operations.
var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrOrderNotAvailable is returned when attempting to assign an order that is
	// no longer in Placed status. Racing dispatch attempts expect this outcome
	// and move on to another order; it is a soft failure, not a fault.
	ErrOrderNotAvailable = errors.New("order is no longer available for assignment")

	// ErrNotAssignedCourier is returned when a courier attempts to update an
	// order that is assigned to someone else (or to nobody).
	ErrNotAssignedCourier = errors.New("courier is not assigned to this order")

	// ErrCannotPickUp is returned when picking up an order that is not in Assigned status.
	ErrCannotPickUp = errors.New("can only pick up assigned orders")

	// ErrCannotStartDelivery is returned when starting delivery before pickup.
	ErrCannotStartDelivery = errors.New("can only start delivery after pickup")

	// ErrCannotDeliver is returned when delivering an order that is not out for delivery.
	ErrCannotDeliver = errors.New("can only deliver orders that are out for delivery")

	// ErrCannotCancel is returned when cancelling an order that is not active.
	ErrCannotCancel = errors.New("can only cancel active orders")

	// ErrPaymentNotCollected is returned when delivering a cash-on-delivery order
	// whose payment is still pending. This gate must never be bypassed: a COD
	// order cannot reach Delivered while payment is outstanding, regardless of
	// caller identity or retries.
	ErrPaymentNotCollected = errors.New("cannot deliver COD order before payment is collected")
)

// Order represents a customer order moving through the delivery lifecycle.
// It is the aggregate root that owns the order's status state machine, its
// payment-safety gate, and its pricing fields.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and delivery zone
//   - Total amount must be positive
//   - Status transitions follow the rules encoded in Status
//   - Delivery fee and courier earning are set exactly once, at assignment
//     time (backfill of historical delivered orders being the one idempotent
//     exception)
//   - A COD order with pending payment can never become Delivered
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// zone is the delivery zone the order was placed in
	zone kernel.Zone

	// totalAmount is the order value used for fee and earning calculation
	totalAmount float64

	// status is the current state in the order lifecycle
	status Status

	// courierID is the assigned courier's ID (nil while unassigned);
	// a weak reference: the order never owns the courier lifecycle
	courierID *kernel.UUID

	// paymentMethod is how the order is paid (absent behaves as COD)
	paymentMethod PaymentMethod

	// paymentStatus is whether payment was collected (absent behaves as Pending)
	paymentStatus PaymentStatus

	// deliveryFee is the fee charged for delivery, set at assignment
	deliveryFee *float64

	// courierEarning is the courier's cut, set at assignment
	courierEarning *float64

	// placedAt is when the order was created
	placedAt time.Time

	// lifecycle timestamps, each set exactly once by its transition
	assignedAt  *time.Time
	pickedUpAt  *time.Time
	deliveredAt *time.Time
	cancelledAt *time.Time

	// guard ensures the order was created via a constructor
	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in Placed status.
//
// Parameters:
//   - id: unique identifier (must be valid)
//   - zone: delivery zone (must be valid)
//   - totalAmount: order value (must be positive)
//   - paymentMethod: how the order is paid; PaymentMethodUnknown is accepted
//     and behaves as cash on delivery
//   - placedAt: placement instant
//
// Payment status starts Pending for every new order; online payments are
// flipped to Collected by the payment gateway's collected signal.
func NewOrder(
	id kernel.UUID,
	zone kernel.Zone,
	totalAmount float64,
	paymentMethod PaymentMethod,
	placedAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Placed,
		paymentStatus: Pending,
		placedAt:      placedAt,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setZone(zone),
		o.setTotalAmount(totalAmount),
		o.setPaymentMethod(paymentMethod),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrderParams carries the persisted state of an order for restoration.
// Optional fields are nil when the corresponding event never happened (or,
// for the payment fields, zero-valued when the record predates them).
type RestoreOrderParams struct {
	ID             kernel.UUID
	Zone           kernel.Zone
	TotalAmount    float64
	Status         Status
	CourierID      *kernel.UUID
	PaymentMethod  PaymentMethod
	PaymentStatus  PaymentStatus
	DeliveryFee    *float64
	CourierEarning *float64
	PlacedAt       time.Time
	AssignedAt     *time.Time
	PickedUpAt     *time.Time
	DeliveredAt    *time.Time
	CancelledAt    *time.Time
}

// RestoreOrder reconstructs an Order aggregate from persistent storage.
// Unlike NewOrder, it accepts any valid status and the full timestamp set,
// restoring the order to its previously persisted state. The restored order
// behaves identically to one that reached the same state through domain
// operations.
func RestoreOrder(params RestoreOrderParams) (*Order, error) {
	o := &Order{
		paymentMethod:  params.PaymentMethod,
		paymentStatus:  params.PaymentStatus,
		deliveryFee:    params.DeliveryFee,
		courierEarning: params.CourierEarning,
		placedAt:       params.PlacedAt,
		assignedAt:     params.AssignedAt,
		pickedUpAt:     params.PickedUpAt,
		deliveredAt:    params.DeliveredAt,
		cancelledAt:    params.CancelledAt,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(params.ID),
		o.setZone(params.Zone),
		o.setTotalAmount(params.TotalAmount),
		o.setStatus(params.Status),
		o.setCourierID(params.CourierID),
		params.PaymentMethod.Validate(),
		params.PaymentStatus.Validate(),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
// Returns ErrOrderIsNotConstructed for zero-value or hand-built instances.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Zone returns the delivery zone the order was placed in.
func (o *Order) Zone() kernel.Zone {
	return o.zone
}

// TotalAmount returns the order value.
func (o *Order) TotalAmount() float64 {
	return o.totalAmount
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Courier returns the assigned courier's ID, or nil if unassigned.
func (o *Order) Courier() *kernel.UUID {
	return o.courierID
}

// PaymentMethod returns how the order is paid.
func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

// PaymentStatus returns whether payment has been collected.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// DeliveryFee returns the delivery fee, or nil if not set yet.
func (o *Order) DeliveryFee() *float64 {
	return o.deliveryFee
}

// CourierEarning returns the courier's earning, or nil if not set yet.
func (o *Order) CourierEarning() *float64 {
	return o.courierEarning
}

// PlacedAt returns when the order was placed.
func (o *Order) PlacedAt() time.Time {
	return o.placedAt
}

// AssignedAt returns when the order was assigned, or nil.
func (o *Order) AssignedAt() *time.Time {
	return o.assignedAt
}

// PickedUpAt returns when the order was picked up, or nil.
func (o *Order) PickedUpAt() *time.Time {
	return o.pickedUpAt
}

// DeliveredAt returns when the order was delivered, or nil.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// CancelledAt returns when the order was cancelled, or nil.
func (o *Order) CancelledAt() *time.Time {
	return o.cancelledAt
}

// IsAssignedTo reports whether the order is currently assigned to the given courier.
func (o *Order) IsAssignedTo(courierID kernel.UUID) bool {
	return o.courierID != nil && o.courierID.IsEqual(courierID)
}

// Assign assigns the order to a courier, pricing it in the same step.
//
// Business rules:
//   - The courier ID must be valid
//   - The order must be in Placed status, otherwise ErrOrderNotAvailable
//     (soft failure: the order was taken by someone else)
//   - Delivery fee and courier earning are recorded here and nowhere else
//     during the normal lifecycle
//
// On success the order is Assigned, assignedAt is set to now, and the
// pricing fields are fixed.
func (o *Order) Assign(courierID kernel.UUID, deliveryFee, courierEarning float64, now time.Time) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.courierID = &courierID
	o.deliveryFee = &deliveryFee
	o.courierEarning = &courierEarning
	o.assignedAt = &now
	return nil
}

// PickUp marks the order as collected by its assigned courier.
// Fails with ErrNotAssignedCourier if the caller is not the assigned courier,
// or ErrCannotPickUp if the order is not in Assigned status.
func (o *Order) PickUp(courierID kernel.UUID, now time.Time) error {
	if !o.IsAssignedTo(courierID) {
		return ErrNotAssignedCourier
	}

	newStatus, err := o.status.PickUp()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.pickedUpAt = &now
	return nil
}

// StartDelivery marks the order as out for delivery.
// No timestamp is recorded for this transition, matching the lifecycle
// model: only assignment, pickup, delivery, and cancellation are stamped.
func (o *Order) StartDelivery(courierID kernel.UUID) error {
	if !o.IsAssignedTo(courierID) {
		return ErrNotAssignedCourier
	}

	newStatus, err := o.status.StartDelivery()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Deliver marks the order as delivered.
//
// The payment gate runs before the transition: if the order is cash on
// delivery (or its payment method was never recorded) and payment is still
// pending (or never recorded), Deliver fails with ErrPaymentNotCollected and
// leaves status and deliveredAt untouched.
func (o *Order) Deliver(courierID kernel.UUID, now time.Time) error {
	if !o.IsAssignedTo(courierID) {
		return ErrNotAssignedCourier
	}

	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	if o.paymentMethod.IsCashOnDelivery() && o.paymentStatus.IsPending() {
		return ErrPaymentNotCollected
	}

	o.status = newStatus
	o.deliveredAt = &now
	return nil
}

// Cancel cancels the order from any active status.
func (o *Order) Cancel(courierID kernel.UUID, now time.Time) error {
	if !o.IsAssignedTo(courierID) {
		return ErrNotAssignedCourier
	}

	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.cancelledAt = &now
	return nil
}

// CollectPayment records that payment for the order has been received.
// This is the payment gateway's "payment collected" signal applied to the
// aggregate. Idempotent: collecting an already collected payment is a no-op.
func (o *Order) CollectPayment() {
	o.paymentStatus = Collected
}

// BackfillEarnings fills in missing pricing on a historical delivered order.
//
// Only delivered orders with no recorded courier earning are touched, which
// makes the operation idempotent: a second run finds the earning present and
// changes nothing. A missing deliveredAt is defaulted to fallbackDeliveredAt.
//
// Returns true if the order was modified.
func (o *Order) BackfillEarnings(deliveryFee, courierEarning float64, fallbackDeliveredAt time.Time) bool {
	if o.status != Delivered || o.courierEarning != nil {
		return false
	}

	o.deliveryFee = &deliveryFee
	o.courierEarning = &courierEarning
	if o.deliveredAt == nil {
		o.deliveredAt = &fallbackDeliveredAt
	}
	return true
}

// setID validates and sets the order's unique identifier.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setZone validates and sets the order's delivery zone.
func (o *Order) setZone(zone kernel.Zone) error {
	if err := zone.Validate(); err != nil {
		return err
	}
	o.zone = zone
	return nil
}

// setTotalAmount validates and sets the order value.
// The amount must be positive.
func (o *Order) setTotalAmount(amount float64) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"totalAmount",
			fmt.Errorf("%v is not greater than 0", amount),
		)
	}
	o.totalAmount = amount
	return nil
}

// setStatus validates and sets the order status during restoration.
func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

// setCourierID validates and sets the courier reference during restoration.
// Active and delivered orders must have a courier; placed orders must not.
func (o *Order) setCourierID(courierID *kernel.UUID) error {
	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return err
		}
	}

	if courierID == nil && (o.status.IsActive() || o.status == Delivered) {
		return errs.NewValueIsRequiredError("courierId")
	}

	o.courierID = courierID
	return nil
}

// setPaymentMethod validates and sets the payment method.
func (o *Order) setPaymentMethod(method PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.paymentMethod = method
	return nil
}
