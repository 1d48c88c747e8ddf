package courier

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("fullName")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier or RestoreCourier constructor")
)

// Courier represents a delivery courier registered in one delivery zone.
// It is an aggregate root that manages courier identity, the verification
// lifecycle, and the account state.
//
// The core reads the courier's zone and verification status when deciding
// order assignments; it never owns the courier's registration flow, which
// happens outside this engine. Availability is not part of this aggregate:
// it lives in the in-memory availability registry, keyed by courier ID.
//
// Business rules:
//   - Courier must have a valid UUID, non-empty name, and valid home zone
//   - Only Verified couriers are eligible for order assignment
//   - New couriers start Unverified with an Active account
type Courier struct {
	// id uniquely identifies the courier
	id kernel.UUID
	// fullName is the courier's display name
	fullName string
	// zone is the courier's home delivery zone
	zone kernel.Zone
	// verificationStatus is the outcome of the document check
	verificationStatus VerificationStatus
	// accountStatus is whether the account is operational
	accountStatus AccountStatus
	// createdAt is when the courier registered
	createdAt time.Time
	// updatedAt is bumped on every persisted mutation
	updatedAt time.Time
	// guard ensures the courier was properly constructed
	guard guard.ConstructorGuard
}

// NewCourier creates a new Courier in Unverified status with an Active account.
//
// Parameters:
//   - id: unique identifier (must be valid)
//   - fullName: display name (must be non-empty)
//   - zone: home delivery zone (must be valid)
//   - now: registration instant, recorded as createdAt and updatedAt
func NewCourier(id kernel.UUID, fullName string, zone kernel.Zone, now time.Time) (*Courier, error) {
	c := &Courier{
		verificationStatus: Unverified,
		accountStatus:      Active,
		createdAt:          now,
		updatedAt:          now,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setFullName(fullName),
		c.setZone(zone),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCourier reconstructs a Courier aggregate from persistent storage.
// Accepts any valid verification and account status so historical couriers
// are restored to their exact persisted state.
func RestoreCourier(
	id kernel.UUID,
	fullName string,
	zone kernel.Zone,
	verificationStatus VerificationStatus,
	accountStatus AccountStatus,
	createdAt time.Time,
	updatedAt time.Time,
) (*Courier, error) {
	c := &Courier{
		createdAt: createdAt,
		updatedAt: updatedAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setFullName(fullName),
		c.setZone(zone),
		c.setVerificationStatus(verificationStatus),
		c.setAccountStatus(accountStatus),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks the Courier was properly constructed through a constructor.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// IsEqual compares two couriers by their unique identifiers.
func (c *Courier) IsEqual(other *Courier) bool {
	if other == nil {
		return false
	}
	return c.id.IsEqual(other.id)
}

// ID returns the unique identifier of the courier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// FullName returns the courier's display name.
func (c *Courier) FullName() string {
	return c.fullName
}

// Zone returns the courier's home delivery zone.
func (c *Courier) Zone() kernel.Zone {
	return c.zone
}

// VerificationStatus returns the courier's verification status.
func (c *Courier) VerificationStatus() VerificationStatus {
	return c.verificationStatus
}

// AccountStatus returns the courier's account status.
func (c *Courier) AccountStatus() AccountStatus {
	return c.accountStatus
}

// CreatedAt returns when the courier registered.
func (c *Courier) CreatedAt() time.Time {
	return c.createdAt
}

// UpdatedAt returns the last persisted mutation instant.
func (c *Courier) UpdatedAt() time.Time {
	return c.updatedAt
}

// IsVerified reports whether the courier passed the document check.
// Only verified couriers are eligible for availability and assignment.
func (c *Courier) IsVerified() bool {
	return c.verificationStatus == Verified
}

// Verify marks the courier as having passed the document check.
func (c *Courier) Verify(now time.Time) {
	c.verificationStatus = Verified
	c.updatedAt = now
}

// Reject marks the courier as having failed the document check.
func (c *Courier) Reject(now time.Time) {
	c.verificationStatus = Rejected
	c.updatedAt = now
}

// Touch bumps the courier's updatedAt. Availability toggles persist this so
// the record reflects the courier's latest activity.
func (c *Courier) Touch(now time.Time) {
	c.updatedAt = now
}

// setID validates and sets the courier's unique identifier.
func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

// setFullName validates and sets the courier's name.
func (c *Courier) setFullName(fullName string) error {
	if fullName == "" {
		return ErrNameIsRequired
	}
	c.fullName = fullName
	return nil
}

// setZone validates and sets the courier's home zone.
func (c *Courier) setZone(zone kernel.Zone) error {
	if err := zone.Validate(); err != nil {
		return err
	}
	c.zone = zone
	return nil
}

// setVerificationStatus validates and sets the verification status during restoration.
func (c *Courier) setVerificationStatus(status VerificationStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.verificationStatus = status
	return nil
}

// setAccountStatus validates and sets the account status during restoration.
func (c *Courier) setAccountStatus(status AccountStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.accountStatus = status
	return nil
}
