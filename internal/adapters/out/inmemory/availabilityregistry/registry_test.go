package availabilityregistry_test

import (
	"sync"
	"testing"
	"time"

	"dispatch/internal/adapters/out/inmemory/availabilityregistry"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func mustZone(t *testing.T, code string) kernel.Zone {
	t.Helper()
	zone, err := kernel.NewZone(code)
	require.NoError(t, err)
	return zone
}

func TestRegistry_MarkAvailable(t *testing.T) {
	t.Run("registered courier is listed in its zone", func(t *testing.T) {
		registry := availabilityregistry.NewRegistry()
		zone := mustZone(t, "110001")
		id := kernel.NewUUID()

		registry.MarkAvailable(id, zone)

		listed := registry.ListAvailable(zone)
		require.Len(t, listed, 1)
		assert.True(t, listed[0].CourierID.IsEqual(id))
		assert.True(t, registry.IsAvailable(id))
	})

	t.Run("registration order is preserved", func(t *testing.T) {
		registry := availabilityregistry.NewRegistry()
		zone := mustZone(t, "110001")
		first, second, third := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()

		registry.MarkAvailable(first, zone)
		registry.MarkAvailable(second, zone)
		registry.MarkAvailable(third, zone)

		listed := registry.ListAvailable(zone)
		require.Len(t, listed, 3)
		assert.True(t, listed[0].CourierID.IsEqual(first))
		assert.True(t, listed[1].CourierID.IsEqual(second))
		assert.True(t, listed[2].CourierID.IsEqual(third))
	})

	t.Run("re-registering in the same zone keeps rotation position", func(t *testing.T) {
		registry := availabilityregistry.NewRegistry()
		zone := mustZone(t, "110001")
		first, second := kernel.NewUUID(), kernel.NewUUID()

		registry.MarkAvailable(first, zone)
		registry.MarkAvailable(second, zone)
		registry.MarkAvailable(first, zone)

		listed := registry.ListAvailable(zone)
		require.Len(t, listed, 2)
		assert.True(t, listed[0].CourierID.IsEqual(first))
	})

	t.Run("switching zones moves the registration", func(t *testing.T) {
		registry := availabilityregistry.NewRegistry()
		north, south := mustZone(t, "110001"), mustZone(t, "560034")
		id := kernel.NewUUID()

		registry.MarkAvailable(id, north)
		registry.MarkAvailable(id, south)

		assert.Empty(t, registry.ListAvailable(north))
		require.Len(t, registry.ListAvailable(south), 1)
	})
}

func TestRegistry_MarkUnavailable(t *testing.T) {
	registry := availabilityregistry.NewRegistry()
	zone := mustZone(t, "110001")
	id := kernel.NewUUID()

	registry.MarkAvailable(id, zone)
	registry.MarkUnavailable(id)

	assert.False(t, registry.IsAvailable(id))
	assert.Empty(t, registry.ListAvailable(zone))

	// unknown courier is a no-op
	registry.MarkUnavailable(kernel.NewUUID())
}

func TestRegistry_Heartbeat(t *testing.T) {
	t.Run("extends the freshness window", func(t *testing.T) {
		clock := newFakeClock()
		registry := availabilityregistry.NewRegistry(availabilityregistry.WithClock(clock.Now))
		zone := mustZone(t, "110001")
		id := kernel.NewUUID()

		registry.MarkAvailable(id, zone)
		clock.Advance(4 * time.Minute)
		assert.True(t, registry.Heartbeat(id))
		clock.Advance(4 * time.Minute)

		// 8 minutes since registration, but only 4 since the heartbeat
		assert.True(t, registry.IsAvailable(id))
	})

	t.Run("expired registration is evicted", func(t *testing.T) {
		clock := newFakeClock()
		registry := availabilityregistry.NewRegistry(availabilityregistry.WithClock(clock.Now))
		zone := mustZone(t, "110001")
		id := kernel.NewUUID()

		registry.MarkAvailable(id, zone)
		clock.Advance(6 * time.Minute)

		assert.False(t, registry.Heartbeat(id))
		assert.False(t, registry.IsAvailable(id))
	})

	t.Run("unknown courier", func(t *testing.T) {
		registry := availabilityregistry.NewRegistry()
		assert.False(t, registry.Heartbeat(kernel.NewUUID()))
	})
}

func TestRegistry_Expiry(t *testing.T) {
	t.Run("stale entries disappear from listings", func(t *testing.T) {
		clock := newFakeClock()
		registry := availabilityregistry.NewRegistry(availabilityregistry.WithClock(clock.Now))
		zone := mustZone(t, "110001")
		stale, fresh := kernel.NewUUID(), kernel.NewUUID()

		registry.MarkAvailable(stale, zone)
		clock.Advance(3 * time.Minute)
		registry.MarkAvailable(fresh, zone)
		clock.Advance(3 * time.Minute)

		listed := registry.ListAvailable(zone)
		require.Len(t, listed, 1)
		assert.True(t, listed[0].CourierID.IsEqual(fresh))
		assert.False(t, registry.IsAvailable(stale))
	})

	t.Run("expired courier can re-register", func(t *testing.T) {
		clock := newFakeClock()
		registry := availabilityregistry.NewRegistry(availabilityregistry.WithClock(clock.Now))
		zone := mustZone(t, "110001")
		id := kernel.NewUUID()

		registry.MarkAvailable(id, zone)
		clock.Advance(10 * time.Minute)
		require.False(t, registry.IsAvailable(id))

		registry.MarkAvailable(id, zone)
		assert.True(t, registry.IsAvailable(id))
	})

	t.Run("custom freshness window", func(t *testing.T) {
		clock := newFakeClock()
		registry := availabilityregistry.NewRegistry(
			availabilityregistry.WithClock(clock.Now),
			availabilityregistry.WithFreshness(time.Minute),
		)
		zone := mustZone(t, "110001")
		id := kernel.NewUUID()

		registry.MarkAvailable(id, zone)
		clock.Advance(90 * time.Second)

		assert.False(t, registry.IsAvailable(id))
	})
}

func TestRegistry_ZoneIsolation(t *testing.T) {
	registry := availabilityregistry.NewRegistry()
	north, south := mustZone(t, "110001"), mustZone(t, "560034")

	registry.MarkAvailable(kernel.NewUUID(), north)
	registry.MarkAvailable(kernel.NewUUID(), north)
	registry.MarkAvailable(kernel.NewUUID(), south)

	assert.Len(t, registry.ListAvailable(north), 2)
	assert.Len(t, registry.ListAvailable(south), 1)
	assert.Empty(t, registry.ListAvailable(mustZone(t, "400050")))
}

func TestRegistry_Zones(t *testing.T) {
	clock := newFakeClock()
	registry := availabilityregistry.NewRegistry(availabilityregistry.WithClock(clock.Now))
	north, south := mustZone(t, "110001"), mustZone(t, "560034")

	assert.Empty(t, registry.Zones())

	registry.MarkAvailable(kernel.NewUUID(), north)
	clock.Advance(4 * time.Minute)
	registry.MarkAvailable(kernel.NewUUID(), south)

	zones := registry.Zones()
	require.Len(t, zones, 2)

	// The north registration expires; only south should remain.
	clock.Advance(2 * time.Minute)
	zones = registry.Zones()
	require.Len(t, zones, 1)
	assert.True(t, zones[0].IsEqual(south))
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	registry := availabilityregistry.NewRegistry()
	zones := []kernel.Zone{mustZone(t, "110001"), mustZone(t, "560034"), mustZone(t, "400050")}

	ids := make([]kernel.UUID, 30)
	for i := range ids {
		ids[i] = kernel.NewUUID()
	}

	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(id kernel.UUID, zone kernel.Zone) {
			defer wg.Done()
			for range 100 {
				registry.MarkAvailable(id, zone)
				registry.Heartbeat(id)
				registry.ListAvailable(zone)
				registry.IsAvailable(id)
				registry.MarkUnavailable(id)
			}
			registry.MarkAvailable(id, zone)
		}(id, zones[i%len(zones)])
	}
	wg.Wait()

	total := 0
	for _, zone := range zones {
		total += len(registry.ListAvailable(zone))
	}
	assert.Equal(t, len(ids), total)
}
