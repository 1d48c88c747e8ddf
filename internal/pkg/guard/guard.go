// Package guard provides the constructor guard pattern for domain objects.
// Embedding a ConstructorGuard in a struct makes zero-value instances
// detectable, so aggregates and value objects can only be used when created
// through their designated constructor functions.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by ConstructorGuard.Validate()
// when a nil error is passed as the validation error. Validation always
// fails with a meaningful message even if no specific error is provided.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard ensures value objects and entities are only created through
// their designated constructor functions. It prevents direct struct
// initialization and enforces validation rules.
//
// The guard maintains an internal flag that is only set when the object is
// created through the proper constructor. Any attempt to use a zero-value
// struct fails validation.
//
// Example usage:
//
//	var ErrZoneIsNotConstructed = errors.New("Zone must be created via NewZone")
//
//	type Zone struct {
//	    code  string
//	    guard guard.ConstructorGuard
//	}
//
//	func NewZone(code string) (Zone, error) {
//	    if code == "" {
//	        return Zone{}, errors.New("code is required")
//	    }
//	    return Zone{code: code, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (z Zone) Validate() error {
//	    return z.guard.Validate(ErrZoneIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a ConstructorGuard that marks an object as
// properly constructed. Call it in the constructor of domain objects so they
// can be distinguished from zero-value instances.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate checks whether the guarded object was properly constructed.
//
// If the object was created as a zero value, the provided validationError is
// returned. If validationError is nil, ErrDefaultConstructorGuard is returned
// instead.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
