// Package order contains the Order aggregate and its supporting value types.
//
// The aggregate owns the order status state machine (Placed through
// Delivered, with Cancelled reachable from any active state), the
// cash-on-delivery payment gate on the delivered transition, and the
// set-once delivery fee and courier earning fields.
package order
