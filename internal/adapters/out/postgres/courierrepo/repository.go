package courierrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormCourierRepository implements ports.CourierRepository using GORM.
type GormCourierRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormCourierRepository creates a new GORM courier repository.
func NewGormCourierRepository(db *gorm.DB, tracker aggregateTracker) *GormCourierRepository {
	return &GormCourierRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new courier to the database.
func (r *GormCourierRepository) Add(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing courier to the database.
func (r *GormCourierRepository) Update(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&CourierDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a courier by ID.
func (r *GormCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CourierDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("courier", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllVerified retrieves every courier that passed the document check.
func (r *GormCourierRepository) GetAllVerified(ctx context.Context) ([]*courier.Courier, error) {
	var dtos []CourierDTO
	err := r.db.WithContext(ctx).
		Where("verification_status = ?", courier.Verified.String()).
		Order("full_name").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	couriers := make([]*courier.Courier, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		couriers = append(couriers, c)
	}

	return couriers, nil
}

// GormCourierRosterRepository implements ports.CourierRosterRepository.
// Rows are upserted on the courier ID so repeated syncs of the same roster
// leave the table unchanged apart from the sync timestamp.
type GormCourierRosterRepository struct {
	db *gorm.DB
}

// NewGormCourierRosterRepository creates a repository for the courier_roster read table.
func NewGormCourierRosterRepository(db *gorm.DB) *GormCourierRosterRepository {
	return &GormCourierRosterRepository{db: db}
}

// UpsertAll writes the couriers into the roster, inserting new rows and
// overwriting existing ones in a single statement.
func (r *GormCourierRosterRepository) UpsertAll(ctx context.Context, couriers []*courier.Courier) error {
	if len(couriers) == 0 {
		return nil
	}

	now := time.Now()
	dtos := make([]CourierRosterDTO, 0, len(couriers))
	for _, c := range couriers {
		if err := c.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, CourierRosterDTO{
			CourierID: c.ID().Bytes(),
			FullName:  c.FullName(),
			Zone:      c.Zone().Code(),
			SyncedAt:  now,
		})
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "courier_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"full_name", "zone", "synced_at"}),
		}).
		Create(&dtos).Error
}
