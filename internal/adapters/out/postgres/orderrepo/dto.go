// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Statuses and payment fields are stored as their wire strings so the raw
// read queries stay legible. Pricing and event timestamps are nullable:
// they exist only once the corresponding lifecycle event happened.
type OrderDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Zone           string     `gorm:"type:varchar(16);index"`
	TotalAmount    float64    `gorm:"type:numeric"`
	Status         string     `gorm:"type:varchar(32);index"`
	CourierID      *uuid.UUID `gorm:"type:uuid;index"`
	PaymentMethod  string     `gorm:"type:varchar(16)"`
	PaymentStatus  string     `gorm:"type:varchar(16)"`
	DeliveryFee    *float64   `gorm:"type:numeric"`
	CourierEarning *float64   `gorm:"type:numeric"`
	PlacedAt       time.Time  `gorm:"index"`
	AssignedAt     *time.Time
	PickedUpAt     *time.Time
	DeliveredAt    *time.Time
	CancelledAt    *time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := aggregate.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	return OrderDTO{
		ID:             aggregate.ID().Bytes(),
		Zone:           aggregate.Zone().Code(),
		TotalAmount:    aggregate.TotalAmount(),
		Status:         aggregate.Status().String(),
		CourierID:      courierID,
		PaymentMethod:  aggregate.PaymentMethod().String(),
		PaymentStatus:  aggregate.PaymentStatus().String(),
		DeliveryFee:    aggregate.DeliveryFee(),
		CourierEarning: aggregate.CourierEarning(),
		PlacedAt:       aggregate.PlacedAt(),
		AssignedAt:     aggregate.AssignedAt(),
		PickedUpAt:     aggregate.PickedUpAt(),
		DeliveredAt:    aggregate.DeliveredAt(),
		CancelledAt:    aggregate.CancelledAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	zone, err := kernel.NewZone(dto.Zone)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	paymentMethod, err := order.PaymentMethodFromString(dto.PaymentMethod)
	if err != nil {
		return nil, err
	}

	paymentStatus, err := order.PaymentStatusFromString(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:             id,
		Zone:           zone,
		TotalAmount:    dto.TotalAmount,
		Status:         status,
		CourierID:      courierID,
		PaymentMethod:  paymentMethod,
		PaymentStatus:  paymentStatus,
		DeliveryFee:    dto.DeliveryFee,
		CourierEarning: dto.CourierEarning,
		PlacedAt:       dto.PlacedAt,
		AssignedAt:     dto.AssignedAt,
		PickedUpAt:     dto.PickedUpAt,
		DeliveredAt:    dto.DeliveredAt,
		CancelledAt:    dto.CancelledAt,
	})
}
