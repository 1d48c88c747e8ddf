// Package kernel contains shared value objects used across the domain model.
// These are the building blocks for aggregates: identifiers and delivery zones.
//
// All kernel types are immutable value objects that enforce their invariants
// through constructor functions and fail validation when created as zero values.
package kernel
