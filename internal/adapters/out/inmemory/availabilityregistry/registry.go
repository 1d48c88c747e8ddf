package availabilityregistry

import (
	"sync"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

// defaultFreshness is how long a registration stays valid without a
// heartbeat. A courier silent for longer is treated as offline.
const defaultFreshness = 5 * time.Minute

// Option configures a Registry.
type Option func(*Registry)

// WithClock replaces the time source. Tests use this to control expiry.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		r.now = now
	}
}

// WithFreshness overrides the heartbeat freshness window.
func WithFreshness(d time.Duration) Option {
	return func(r *Registry) {
		r.freshness = d
	}
}

// entry is one courier's registration inside a zone shard.
type entry struct {
	courierID kernel.UUID
	zone      kernel.Zone
	lastSeen  time.Time
}

// zoneShard holds the registrations of a single zone. Members keep their
// insertion order so the dispatch loop rotates through couriers fairly.
type zoneShard struct {
	mu      sync.Mutex
	members []*entry
	byID    map[string]*entry
}

func newZoneShard() *zoneShard {
	return &zoneShard{byID: make(map[string]*entry)}
}

// remove drops the courier from the shard. Caller holds shard.mu.
func (s *zoneShard) remove(id string) {
	if _, ok := s.byID[id]; !ok {
		return
	}
	delete(s.byID, id)
	for i, e := range s.members {
		if e.courierID.String() == id {
			s.members = append(s.members[:i], s.members[i+1:]...)
			break
		}
	}
}

// Registry is an in-memory implementation of ports.AvailabilityRegistry.
//
// Registrations are sharded by zone: the outer lock guards the shard map
// and the courier-to-zone index, while each shard carries its own mutex.
// Zone membership changes take the outer write lock; heartbeats and reads
// take the outer read lock plus the shard lock, so traffic in one zone
// does not serialize with traffic in another.
//
// Expired entries are evicted lazily when a read encounters them. The
// courier-to-zone index may briefly point at an evicted entry; lookups
// treat a missing or expired shard entry as not available, and the next
// MarkAvailable or MarkUnavailable repairs the index.
type Registry struct {
	mu        sync.RWMutex
	zones     map[string]*zoneShard
	index     map[string]string
	freshness time.Duration
	now       func() time.Time
}

// NewRegistry creates an empty availability registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		zones:     make(map[string]*zoneShard),
		index:     make(map[string]string),
		freshness: defaultFreshness,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ ports.AvailabilityRegistry = (*Registry)(nil)

// MarkAvailable registers the courier in the given zone. A courier already
// registered elsewhere is moved; a fresh registration in the same zone only
// refreshes the heartbeat and keeps the courier's rotation position. An
// expired or new registration joins at the back of the zone's rotation.
func (r *Registry) MarkAvailable(courierID kernel.UUID, zone kernel.Zone) {
	id := courierID.String()
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	if oldZone, ok := r.index[id]; ok && oldZone != zone.Code() {
		if shard, ok := r.zones[oldZone]; ok {
			shard.mu.Lock()
			shard.remove(id)
			shard.mu.Unlock()
		}
	}

	shard, ok := r.zones[zone.Code()]
	if !ok {
		shard = newZoneShard()
		r.zones[zone.Code()] = shard
	}

	shard.mu.Lock()
	defer shard.mu.Unlock()

	if e, ok := shard.byID[id]; ok && r.isFresh(e, now) {
		e.lastSeen = now
	} else {
		shard.remove(id)
		e := &entry{courierID: courierID, zone: zone, lastSeen: now}
		shard.members = append(shard.members, e)
		shard.byID[id] = e
	}

	r.index[id] = zone.Code()
}

// MarkUnavailable removes the courier from the registry. Unknown couriers
// are ignored.
func (r *Registry) MarkUnavailable(courierID kernel.UUID) {
	id := courierID.String()

	r.mu.Lock()
	defer r.mu.Unlock()

	zoneCode, ok := r.index[id]
	if !ok {
		return
	}
	delete(r.index, id)

	shard, ok := r.zones[zoneCode]
	if !ok {
		return
	}

	shard.mu.Lock()
	shard.remove(id)
	if len(shard.members) == 0 {
		delete(r.zones, zoneCode)
	}
	shard.mu.Unlock()
}

// Heartbeat refreshes the courier's freshness window. Returns false when
// the courier is not registered or already expired; expired entries are
// evicted on the spot.
func (r *Registry) Heartbeat(courierID kernel.UUID) bool {
	id := courierID.String()
	now := r.now()

	r.mu.RLock()
	defer r.mu.RUnlock()

	shard := r.shardOf(id)
	if shard == nil {
		return false
	}

	shard.mu.Lock()
	defer shard.mu.Unlock()

	e, ok := shard.byID[id]
	if !ok {
		return false
	}
	if !r.isFresh(e, now) {
		shard.remove(id)
		return false
	}

	e.lastSeen = now
	return true
}

// ListAvailable returns the zone's fresh registrations in rotation order.
// Expired entries encountered during the scan are evicted.
func (r *Registry) ListAvailable(zone kernel.Zone) []ports.AvailableCourier {
	now := r.now()

	r.mu.RLock()
	shard, ok := r.zones[zone.Code()]
	r.mu.RUnlock()
	if !ok {
		return nil
	}

	shard.mu.Lock()
	defer shard.mu.Unlock()

	fresh := make([]*entry, 0, len(shard.members))
	var result []ports.AvailableCourier
	for _, e := range shard.members {
		if !r.isFresh(e, now) {
			delete(shard.byID, e.courierID.String())
			continue
		}
		fresh = append(fresh, e)
		result = append(result, ports.AvailableCourier{
			CourierID: e.courierID,
			Zone:      e.zone,
			LastSeen:  e.lastSeen,
		})
	}
	shard.members = fresh

	return result
}

// IsAvailable reports whether the courier is registered with a fresh heartbeat.
func (r *Registry) IsAvailable(courierID kernel.UUID) bool {
	id := courierID.String()
	now := r.now()

	r.mu.RLock()
	defer r.mu.RUnlock()

	shard := r.shardOf(id)
	if shard == nil {
		return false
	}

	shard.mu.Lock()
	defer shard.mu.Unlock()

	e, ok := shard.byID[id]
	return ok && r.isFresh(e, now)
}

// Zones returns every zone holding at least one fresh registration.
func (r *Registry) Zones() []kernel.Zone {
	now := r.now()

	r.mu.RLock()
	defer r.mu.RUnlock()

	zones := make([]kernel.Zone, 0, len(r.zones))
	for _, shard := range r.zones {
		shard.mu.Lock()
		for _, e := range shard.members {
			if r.isFresh(e, now) {
				zones = append(zones, e.zone)
				break
			}
		}
		shard.mu.Unlock()
	}

	return zones
}

// shardOf resolves the courier's zone shard through the index.
// Caller holds r.mu at least for reading.
func (r *Registry) shardOf(id string) *zoneShard {
	zoneCode, ok := r.index[id]
	if !ok {
		return nil
	}
	return r.zones[zoneCode]
}

func (r *Registry) isFresh(e *entry, now time.Time) bool {
	return now.Sub(e.lastSeen) <= r.freshness
}
