// Package courierrepo provides data transfer objects and mapping functions
// for courier persistence, including the courier_roster read table.
package courierrepo

import (
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO represents the database structure for persisting courier aggregates.
type CourierDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName           string    `gorm:"type:varchar(255)"`
	Zone               string    `gorm:"type:varchar(16);index"`
	VerificationStatus string    `gorm:"type:varchar(32);index"`
	AccountStatus      string    `gorm:"type:varchar(32)"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName specifies the database table name for courier entities.
func (CourierDTO) TableName() string {
	return "couriers"
}

// CourierRosterDTO is a row of the courier_roster read table: a flattened
// projection of verified couriers refreshed by the roster sync.
type CourierRosterDTO struct {
	CourierID uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName  string    `gorm:"type:varchar(255)"`
	Zone      string    `gorm:"type:varchar(16);index"`
	SyncedAt  time.Time
}

// TableName specifies the database table name for roster rows.
func (CourierRosterDTO) TableName() string {
	return "courier_roster"
}

// fromDomain converts a courier domain aggregate to its database representation.
func fromDomain(aggregate *courier.Courier) CourierDTO {
	return CourierDTO{
		ID:                 aggregate.ID().Bytes(),
		FullName:           aggregate.FullName(),
		Zone:               aggregate.Zone().Code(),
		VerificationStatus: aggregate.VerificationStatus().String(),
		AccountStatus:      aggregate.AccountStatus().String(),
		CreatedAt:          aggregate.CreatedAt(),
		UpdatedAt:          aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to a courier domain aggregate using RestoreCourier.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	zone, err := kernel.NewZone(dto.Zone)
	if err != nil {
		return nil, err
	}

	verification, err := courier.VerificationStatusFromString(dto.VerificationStatus)
	if err != nil {
		return nil, err
	}

	account, err := courier.AccountStatusFromString(dto.AccountStatus)
	if err != nil {
		return nil, err
	}

	return courier.RestoreCourier(
		id,
		dto.FullName,
		zone,
		verification,
		account,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
