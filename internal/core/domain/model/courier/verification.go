package courier

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// VerificationStatus represents the outcome of a courier's document check.
// Only verified couriers may take availability shifts or receive orders.
type VerificationStatus int

const (
	// VerificationUnknown represents an invalid or undefined status.
	VerificationUnknown VerificationStatus = iota

	// Unverified means the courier's documents have not been reviewed yet.
	Unverified

	// Verified means the courier passed the document check.
	Verified

	// Rejected means the courier failed the document check.
	Rejected
)

// getVerificationStrings returns a map of all VerificationStatus values to
// their string representations.
func getVerificationStrings() map[VerificationStatus]string {
	return map[VerificationStatus]string{
		VerificationUnknown: "UNKNOWN",
		Unverified:          "UNVERIFIED",
		Verified:            "VERIFIED",
		Rejected:            "REJECTED",
	}
}

// getValidVerificationStrings returns a map of only valid VerificationStatus values.
func getValidVerificationStrings() map[VerificationStatus]string {
	//nolint:exhaustive // VerificationUnknown is intentionally excluded as it's invalid
	return map[VerificationStatus]string{
		Unverified: "UNVERIFIED",
		Verified:   "VERIFIED",
		Rejected:   "REJECTED",
	}
}

// VerificationStatusFromString parses a verification status from its wire
// representation, rejecting unknown values at the boundary.
func VerificationStatusFromString(s string) (VerificationStatus, error) {
	for status, str := range getValidVerificationStrings() {
		if str == s {
			return status, nil
		}
	}
	return VerificationUnknown, errs.NewValueIsInvalidErrorWithCause(
		"verificationStatus",
		fmt.Errorf("%q is not a known verification status", s),
	)
}

// Validate checks the verification status is one of the known values.
func (s VerificationStatus) Validate() error {
	if _, ok := getValidVerificationStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"verificationStatus",
			fmt.Errorf("%d is not a valid verification status", s),
		)
	}
	return nil
}

// String returns the wire name of the verification status.
func (s VerificationStatus) String() string {
	if str, ok := getVerificationStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// AccountStatus represents whether a courier's account is operational.
type AccountStatus int

const (
	// AccountUnknown represents an invalid or undefined status.
	AccountUnknown AccountStatus = iota

	// Active means the account is operational.
	Active

	// Suspended means the account has been taken out of service.
	Suspended
)

// AccountStatusFromString parses an account status from its wire representation.
func AccountStatusFromString(s string) (AccountStatus, error) {
	switch s {
	case "ACTIVE":
		return Active, nil
	case "SUSPENDED":
		return Suspended, nil
	default:
		return AccountUnknown, errs.NewValueIsInvalidErrorWithCause(
			"accountStatus",
			fmt.Errorf("%q is not a known account status", s),
		)
	}
}

// Validate checks the account status is one of the known values.
func (s AccountStatus) Validate() error {
	if s != Active && s != Suspended {
		return errs.NewValueIsInvalidErrorWithCause(
			"accountStatus",
			fmt.Errorf("%d is not a valid account status", s),
		)
	}
	return nil
}

// String returns the wire name of the account status.
func (s AccountStatus) String() string {
	switch s {
	case Active:
		return "ACTIVE"
	case Suspended:
		return "SUSPENDED"
	default:
		return "UNKNOWN"
	}
}
