package kernel

import (
	"strings"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// zoneMaxLength bounds the zone code length; real codes are short postal-style strings.
const zoneMaxLength = 16

// ErrZoneIsNotConstructed is returned when attempting to use an improperly initialized Zone.
// Zones must be created using the NewZone constructor to ensure validity.
var ErrZoneIsNotConstructed = errs.NewValueIsRequiredError("zone must be created via NewZone constructor")

// Zone identifies a delivery zone, the geographic unit orders and couriers
// are matched within. A courier can only be assigned orders placed in the
// courier's own zone.
//
// Zone is an immutable value object wrapping an opaque zone code (for
// example a postal/pincode string). The zero value is invalid and will fail
// validation - use NewZone to create instances.
//
// Example:
//
//	zone, err := kernel.NewZone("110001")
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(zone.Code()) // "110001"
type Zone struct {
	code  string
	guard guard.ConstructorGuard
}

// NewZone creates a Zone from a zone code.
// The code is trimmed of surrounding whitespace and must be non-empty and
// at most 16 characters. Returns an error for blank or oversized codes.
func NewZone(code string) (Zone, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Zone{}, errs.NewValueIsRequiredError("zone code")
	}
	if len(code) > zoneMaxLength {
		return Zone{}, errs.NewValueIsInvalidError("zone code")
	}

	return Zone{
		code:  code,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Code returns the zone code.
func (z Zone) Code() string {
	return z.code
}

// String implements fmt.Stringer and returns the zone code.
func (z Zone) String() string {
	return z.code
}

// IsEqual compares two zones by their codes.
func (z Zone) IsEqual(other Zone) bool {
	return z.code == other.code
}

// Validate checks that the Zone was created through NewZone.
// Returns ErrZoneIsNotConstructed for zero-value instances.
func (z Zone) Validate() error {
	return z.guard.Validate(ErrZoneIsNotConstructed)
}
