package services

// MaxActiveOrders is the number of orders a courier may carry at the same
// time. A courier at this cap is skipped until one of their orders reaches
// a terminal status.
const MaxActiveOrders = 2

// Pricing constants for delivery fee and courier earning calculation.
const (
	baseDeliveryFee       = 30.0
	feeSurchargeThreshold = 500.0
	feeSurchargeRate      = 0.02
	baseEarning           = 10.0
	earningFeeShare       = 0.8
	bulkBonusThreshold    = 1000.0
	bulkBonus             = 20.0
)

// Tariff computes the delivery fee charged to the customer and the earning
// credited to the courier for a single order. Both values are derived from
// the order's total amount at assignment time and frozen on the order.
type Tariff struct{}

// NewTariff creates a new Tariff instance.
func NewTariff() Tariff {
	return Tariff{}
}

// DeliveryFee returns the fee charged for delivering an order with the
// given total amount. Orders above the surcharge threshold pay a
// percentage of the amount on top of the base fee.
func (t Tariff) DeliveryFee(totalAmount float64) float64 {
	fee := baseDeliveryFee
	if totalAmount > feeSurchargeThreshold {
		fee += totalAmount * feeSurchargeRate
	}
	return fee
}

// CourierEarning returns the earning credited to the courier for an order
// with the given total amount. The earning is a base payout plus a share
// of the delivery fee, with a flat bonus for bulk orders.
func (t Tariff) CourierEarning(totalAmount float64) float64 {
	earning := baseEarning + t.DeliveryFee(totalAmount)*earningFeeShare
	if totalAmount > bulkBonusThreshold {
		earning += bulkBonus
	}
	return earning
}

// Quote returns both the delivery fee and the courier earning for an order
// with the given total amount.
func (t Tariff) Quote(totalAmount float64) (fee float64, earning float64) {
	return t.DeliveryFee(totalAmount), t.CourierEarning(totalAmount)
}
