// Package services contains domain services that coordinate logic spanning
// multiple aggregates.
//
// OrderDispatcher decides courier eligibility and executes assignments;
// Tariff computes the delivery fee and courier earning for an order.
package services
