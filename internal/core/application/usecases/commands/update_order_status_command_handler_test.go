package commands_test

import (
	"testing"

	"dispatch/internal/adapters/out/inmemory/availabilityregistry"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/keyedmutex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewUpdateOrderStatusCommand(t *testing.T) {
	t.Run("valid targets", func(t *testing.T) {
		for _, status := range []order.Status{order.PickedUp, order.OutForDelivery, order.Delivered, order.Cancelled} {
			cmd, err := commands.NewUpdateOrderStatusCommand(kernel.NewUUID(), kernel.NewUUID(), status)
			require.NoError(t, err)
			assert.Equal(t, status, cmd.NewStatus())
		}
	})

	t.Run("unreachable targets", func(t *testing.T) {
		for _, status := range []order.Status{order.Placed, order.Assigned, order.StatusUnknown} {
			_, err := commands.NewUpdateOrderStatusCommand(kernel.NewUUID(), kernel.NewUUID(), status)
			assert.ErrorIs(t, err, commands.ErrStatusIsNotReachable)
		}
	})
}

func newStatusHandler(uow *MockUoW, registry *availabilityregistry.Registry) commands.UpdateOrderStatusCommandHandler {
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	return commands.NewUpdateOrderStatusCommandHandler(factory, registry, &keyedmutex.KeyedMutex{})
}

func TestUpdateOrderStatusCommandHandler_Handle_PickUp(t *testing.T) {
	ctx := t.Context()
	zone := testZone(t, "110001")
	courierID := kernel.NewUUID()
	testOrder := assignedOrder(t, zone, courierID, order.Online)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := newStatusHandler(uow, availabilityregistry.NewRegistry())
	cmd, err := commands.NewUpdateOrderStatusCommand(testOrder.ID(), courierID, order.PickedUp)
	require.NoError(t, err)

	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.PickedUp, updated.Status())
	require.NotNil(t, updated.PickedUpAt())
	uow.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_WrongCourier(t *testing.T) {
	ctx := t.Context()
	zone := testZone(t, "110001")
	testOrder := assignedOrder(t, zone, kernel.NewUUID(), order.Online)
	intruder := kernel.NewUUID()

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := newStatusHandler(uow, availabilityregistry.NewRegistry())
	cmd, err := commands.NewUpdateOrderStatusCommand(testOrder.ID(), intruder, order.PickedUp)
	require.NoError(t, err)

	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrNotAssignedCourier)
	assert.Equal(t, order.Assigned, testOrder.Status())
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateOrderStatusCommandHandler_Handle_DeliverCODPending(t *testing.T) {
	ctx := t.Context()
	zone := testZone(t, "110001")
	courierID := kernel.NewUUID()
	testOrder := outForDeliveryOrder(t, zone, courierID, order.CashOnDelivery)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := newStatusHandler(uow, availabilityregistry.NewRegistry())
	cmd, err := commands.NewUpdateOrderStatusCommand(testOrder.ID(), courierID, order.Delivered)
	require.NoError(t, err)

	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrPaymentNotCollected)
	assert.Equal(t, order.OutForDelivery, testOrder.Status())
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateOrderStatusCommandHandler_Handle_DeliverReadmitsCourier(t *testing.T) {
	ctx := t.Context()
	zone := testZone(t, "110001")
	courierID := kernel.NewUUID()
	testOrder := outForDeliveryOrder(t, zone, courierID, order.CashOnDelivery)
	testOrder.CollectPayment()

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		orderRepo.On("CountActiveByCourier", ctx, courierID).Return(1, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	registry := availabilityregistry.NewRegistry()
	handler := newStatusHandler(uow, registry)
	cmd, err := commands.NewUpdateOrderStatusCommand(testOrder.ID(), courierID, order.Delivered)
	require.NoError(t, err)

	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Delivered, updated.Status())
	require.NotNil(t, updated.DeliveredAt())
	// a freed slot re-admits the courier to their zone's rotation
	assert.True(t, registry.IsAvailable(courierID))
}

func TestUpdateOrderStatusCommandHandler_Handle_CancelReadmitsCourier(t *testing.T) {
	ctx := t.Context()
	zone := testZone(t, "110001")
	courierID := kernel.NewUUID()
	testOrder := assignedOrder(t, zone, courierID, order.Online)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		orderRepo.On("CountActiveByCourier", ctx, courierID).Return(0, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	registry := availabilityregistry.NewRegistry()
	handler := newStatusHandler(uow, registry)
	cmd, err := commands.NewUpdateOrderStatusCommand(testOrder.ID(), courierID, order.Cancelled)
	require.NoError(t, err)

	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, updated.Status())
	require.NotNil(t, updated.CancelledAt())
	assert.True(t, registry.IsAvailable(courierID))
}

func TestUpdateOrderStatusCommandHandler_Handle_StillAtCapacity(t *testing.T) {
	ctx := t.Context()
	zone := testZone(t, "110001")
	courierID := kernel.NewUUID()
	testOrder := assignedOrder(t, zone, courierID, order.Online)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		orderRepo.On("CountActiveByCourier", ctx, courierID).Return(2, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	registry := availabilityregistry.NewRegistry()
	handler := newStatusHandler(uow, registry)
	cmd, err := commands.NewUpdateOrderStatusCommand(testOrder.ID(), courierID, order.Cancelled)
	require.NoError(t, err)

	_, err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, registry.IsAvailable(courierID))
}
