// Package availabilityregistry provides the in-memory, zone-sharded
// implementation of the availability registry port.
package availabilityregistry
