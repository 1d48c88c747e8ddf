package commands_test

import (
	"context"
	"sort"
	"sync"
	"testing"

	"dispatch/internal/adapters/out/inmemory/availabilityregistry"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/keyedmutex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// orderStore is an in-memory stand-in for the postgres adapter with the
// same concurrency discipline: plain reads return the committed snapshot,
// GetForUpdate holds a per-row lock until the transaction ends, and staged
// writes become visible only on commit. It lets the handler tests exercise
// genuinely concurrent assignments without a database.
type orderStore struct {
	mu       sync.Mutex
	orders   map[string]*order.Order
	couriers map[string]*courier.Courier
	rowLocks map[string]*sync.Mutex
}

func newOrderStore() *orderStore {
	return &orderStore{
		orders:   make(map[string]*order.Order),
		couriers: make(map[string]*courier.Courier),
		rowLocks: make(map[string]*sync.Mutex),
	}
}

func (s *orderStore) putOrder(t *testing.T, o *order.Order) {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID().String()] = cloneOrder(t, o)
}

func (s *orderStore) putCourier(c *courier.Courier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.couriers[c.ID().String()] = c
}

// order returns the committed state of the order, cloned so callers cannot
// mutate the store through the aggregate.
func (s *orderStore) order(t *testing.T, id kernel.UUID) *order.Order {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id.String()]
	require.True(t, ok)
	return cloneOrder(t, o)
}

func (s *orderStore) activeCount(courierID kernel.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, o := range s.orders {
		if o.IsAssignedTo(courierID) && !o.Status().IsTerminal() {
			count++
		}
	}
	return count
}

func (s *orderStore) rowLock(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.rowLocks[id]
	if !ok {
		l = &sync.Mutex{}
		s.rowLocks[id] = l
	}
	return l
}

// cloneOrder deep-copies an order through its restore path, the same round
// trip the postgres adapter performs through OrderDTO.
func cloneOrder(t *testing.T, o *order.Order) *order.Order {
	t.Helper()
	clone, err := order.RestoreOrder(order.RestoreOrderParams{
		ID:             o.ID(),
		Zone:           o.Zone(),
		TotalAmount:    o.TotalAmount(),
		Status:         o.Status(),
		CourierID:      copyOf(o.Courier()),
		PaymentMethod:  o.PaymentMethod(),
		PaymentStatus:  o.PaymentStatus(),
		DeliveryFee:    copyOf(o.DeliveryFee()),
		CourierEarning: copyOf(o.CourierEarning()),
		PlacedAt:       o.PlacedAt(),
		AssignedAt:     copyOf(o.AssignedAt()),
		PickedUpAt:     copyOf(o.PickedUpAt()),
		DeliveredAt:    copyOf(o.DeliveredAt()),
		CancelledAt:    copyOf(o.CancelledAt()),
	})
	require.NoError(t, err)
	return clone
}

func copyOf[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// storeTx implements commands.UoW over the store. Writes staged through the
// repositories apply on Commit; row locks taken by GetForUpdate release
// when the transaction ends either way.
type storeTx struct {
	t       *testing.T
	store   *orderStore
	pending map[string]*order.Order
	held    []*sync.Mutex
	done    bool
}

func (tx *storeTx) Begin(_ context.Context) error { return nil }

func (tx *storeTx) Commit(_ context.Context) error {
	tx.store.mu.Lock()
	for id, o := range tx.pending {
		tx.store.orders[id] = cloneOrder(tx.t, o)
	}
	tx.store.mu.Unlock()
	tx.release()
	return nil
}

func (tx *storeTx) Rollback(_ context.Context) error {
	tx.pending = make(map[string]*order.Order)
	tx.release()
	return nil
}

func (tx *storeTx) release() {
	if tx.done {
		return
	}
	tx.done = true
	for _, l := range tx.held {
		l.Unlock()
	}
	tx.held = nil
}

func (tx *storeTx) OrderRepository() ports.OrderRepository {
	return &storeOrderRepository{tx: tx}
}

func (tx *storeTx) CourierRepository() ports.CourierRepository {
	return &storeCourierRepository{tx: tx}
}

type storeUoWFactory struct {
	t     *testing.T
	store *orderStore
}

func (f *storeUoWFactory) Create() commands.UoW {
	return &storeTx{
		t:       f.t,
		store:   f.store,
		pending: make(map[string]*order.Order),
	}
}

type storeOrderRepository struct {
	tx *storeTx
}

func (r *storeOrderRepository) Add(_ context.Context, o *order.Order) error {
	r.tx.pending[o.ID().String()] = o
	return nil
}

func (r *storeOrderRepository) Update(_ context.Context, o *order.Order) error {
	r.tx.pending[o.ID().String()] = o
	return nil
}

func (r *storeOrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	r.tx.store.mu.Lock()
	defer r.tx.store.mu.Unlock()
	o, ok := r.tx.store.orders[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return cloneOrder(r.tx.t, o), nil
}

func (r *storeOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	l := r.tx.store.rowLock(id.String())
	l.Lock()
	r.tx.held = append(r.tx.held, l)
	return r.Get(ctx, id)
}

func (r *storeOrderRepository) GetAllPlacedInZone(_ context.Context, zone kernel.Zone) ([]*order.Order, error) {
	r.tx.store.mu.Lock()
	defer r.tx.store.mu.Unlock()
	var placed []*order.Order
	for _, o := range r.tx.store.orders {
		if o.Status() == order.Placed && o.Zone().IsEqual(zone) {
			placed = append(placed, cloneOrder(r.tx.t, o))
		}
	}
	sort.Slice(placed, func(i, j int) bool {
		return placed[i].PlacedAt().Before(placed[j].PlacedAt())
	})
	return placed, nil
}

func (r *storeOrderRepository) GetActiveByCourier(_ context.Context, courierID kernel.UUID) ([]*order.Order, error) {
	r.tx.store.mu.Lock()
	defer r.tx.store.mu.Unlock()
	var active []*order.Order
	for _, o := range r.tx.store.orders {
		if o.IsAssignedTo(courierID) && !o.Status().IsTerminal() {
			active = append(active, cloneOrder(r.tx.t, o))
		}
	}
	return active, nil
}

func (r *storeOrderRepository) CountActiveByCourier(_ context.Context, courierID kernel.UUID) (int, error) {
	return r.tx.store.activeCount(courierID), nil
}

func (r *storeOrderRepository) GetDeliveredWithoutEarnings(_ context.Context) ([]*order.Order, error) {
	r.tx.store.mu.Lock()
	defer r.tx.store.mu.Unlock()
	var missing []*order.Order
	for _, o := range r.tx.store.orders {
		if o.Status() == order.Delivered && o.CourierEarning() == nil {
			missing = append(missing, cloneOrder(r.tx.t, o))
		}
	}
	return missing, nil
}

type storeCourierRepository struct {
	tx *storeTx
}

func (r *storeCourierRepository) Add(_ context.Context, c *courier.Courier) error {
	r.tx.store.putCourier(c)
	return nil
}

func (r *storeCourierRepository) Update(_ context.Context, c *courier.Courier) error {
	r.tx.store.putCourier(c)
	return nil
}

func (r *storeCourierRepository) Get(_ context.Context, id kernel.UUID) (*courier.Courier, error) {
	r.tx.store.mu.Lock()
	defer r.tx.store.mu.Unlock()
	c, ok := r.tx.store.couriers[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("courier", id.String())
	}
	return c, nil
}

func (r *storeCourierRepository) GetAllVerified(_ context.Context) ([]*courier.Courier, error) {
	r.tx.store.mu.Lock()
	defer r.tx.store.mu.Unlock()
	var verified []*courier.Courier
	for _, c := range r.tx.store.couriers {
		if c.IsVerified() {
			verified = append(verified, c)
		}
	}
	return verified, nil
}

// Two couriers race for the same placed order. The per-courier lock does
// not serialize them, so correctness rests on the locked order read:
// exactly one assignment commits and the loser reads the committed
// Assigned status and backs off with the soft not-available error.
func TestAssignOrderCommandHandler_Handle_ConcurrentSameOrder(t *testing.T) {
	ctx := t.Context()
	zone := testZone(t, "110001")
	testOrder := placedOrder(t, zone, 600, order.Online)
	first := verifiedCourier(t, zone)
	second := verifiedCourier(t, zone)

	store := newOrderStore()
	store.putOrder(t, testOrder)
	store.putCourier(first)
	store.putCourier(second)

	registry := availabilityregistry.NewRegistry()
	registry.MarkAvailable(first.ID(), zone)
	registry.MarkAvailable(second.ID(), zone)

	handler := commands.NewAssignOrderCommandHandler(
		&storeUoWFactory{t: t, store: store}, registry, &keyedmutex.KeyedMutex{},
	)

	cmds := make([]commands.AssignOrderCommand, 2)
	for i, c := range []*courier.Courier{first, second} {
		cmd, err := commands.NewAssignOrderCommand(testOrder.ID(), c.ID())
		require.NoError(t, err)
		cmds[i] = cmd
	}

	results := make([]error, 2)
	var wg sync.WaitGroup
	for i := range cmds {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = handler.Handle(ctx, cmds[i])
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
		} else {
			require.ErrorIs(t, err, order.ErrOrderNotAvailable)
		}
	}
	require.Equal(t, 1, winners)

	final := store.order(t, testOrder.ID())
	require.Equal(t, order.Assigned, final.Status())
	if results[0] == nil {
		assert.True(t, final.IsAssignedTo(first.ID()))
	} else {
		assert.True(t, final.IsAssignedTo(second.ID()))
	}
}

// One courier receives more concurrent assignments than their capacity
// allows. The per-courier lock serializes the capacity checks, so the
// persisted active-order count never exceeds the cap and the surplus
// assignment fails hard.
func TestAssignOrderCommandHandler_Handle_ConcurrentCapacityCap(t *testing.T) {
	ctx := t.Context()
	zone := testZone(t, "110001")
	testCourier := verifiedCourier(t, zone)

	store := newOrderStore()
	store.putCourier(testCourier)

	orders := make([]*order.Order, services.MaxActiveOrders+1)
	for i := range orders {
		orders[i] = placedOrder(t, zone, 600, order.Online)
		store.putOrder(t, orders[i])
	}

	registry := availabilityregistry.NewRegistry()
	registry.MarkAvailable(testCourier.ID(), zone)

	handler := commands.NewAssignOrderCommandHandler(
		&storeUoWFactory{t: t, store: store}, registry, &keyedmutex.KeyedMutex{},
	)

	results := make([]error, len(orders))
	var wg sync.WaitGroup
	for i := range orders {
		cmd, err := commands.NewAssignOrderCommand(orders[i].ID(), testCourier.ID())
		require.NoError(t, err)
		wg.Add(1)
		go func(i int, cmd commands.AssignOrderCommand) {
			defer wg.Done()
			results[i] = handler.Handle(ctx, cmd)
		}(i, cmd)
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
		} else {
			require.ErrorIs(t, err, services.ErrCourierAtCapacity)
		}
	}
	assert.Equal(t, services.MaxActiveOrders, winners)
	assert.Equal(t, services.MaxActiveOrders, store.activeCount(testCourier.ID()))
	// the courier's last slot is taken, so the rotation dropped them
	assert.False(t, registry.IsAvailable(testCourier.ID()))
}
