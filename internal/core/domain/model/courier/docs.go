// Package courier contains the Courier aggregate and its status enums.
//
// The aggregate tracks a courier's identity, home zone, verification
// outcome, and account state. Assignment eligibility (zone match plus
// verified status) is read from here; availability itself lives in the
// in-memory availability registry.
package courier
