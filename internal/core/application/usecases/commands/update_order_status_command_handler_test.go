package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func assignedOrder(t *testing.T, partnerID kernel.UUID) *order.Order {
	t.Helper()

	o := pendingOrder(t, "Downtown", "12:00")
	require.NoError(t, o.Assign(partnerID))
	return o
}

func TestUpdateOrderStatusCommandHandler_Handle_Picked(t *testing.T) {
	ctx := t.Context()

	assigned := activePartner(t, "carrier", 1, []string{"Downtown"}, "09:00", "18:00")
	testOrder := assignedOrder(t, assigned.ID())

	cmd, err := commands.NewUpdateOrderStatusCommand(testOrder.ID(), order.Picked)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()
	orderRepo.On("Update", ctx, testOrder).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil)

	factory := new(MockStatusUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(factory)
	require.NoError(t, handler.Handle(ctx, cmd))

	assert.Equal(t, order.Picked, testOrder.Status())
	// Picking up does not release the partner's load slot.
	assert.Equal(t, 1, assigned.CurrentLoad())
}

func TestUpdateOrderStatusCommandHandler_Handle_Delivered(t *testing.T) {
	ctx := t.Context()

	assigned := activePartner(t, "carrier", 1, []string{"Downtown"}, "09:00", "18:00")
	testOrder := assignedOrder(t, assigned.ID())
	require.NoError(t, testOrder.Pick())

	cmd, err := commands.NewUpdateOrderStatusCommand(testOrder.ID(), order.Delivered)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	partnerRepo := new(MockPartnerRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("PartnerRepository").Return(partnerRepo)
	orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()
	orderRepo.On("Update", ctx, testOrder).Return(nil).Once()
	partnerRepo.On("Get", ctx, assigned.ID()).Return(assigned, nil).Once()
	partnerRepo.On("ConfirmReleaseOrder", ctx, assigned).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil)

	factory := new(MockStatusUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(factory)
	require.NoError(t, handler.Handle(ctx, cmd))

	assert.Equal(t, order.Delivered, testOrder.Status())
	assert.Zero(t, assigned.CurrentLoad())
	assert.Equal(t, 1, assigned.PartnerMetrics().CompletedOrders)
}

func TestUpdateOrderStatusCommandHandler_Handle_Cancelled(t *testing.T) {
	ctx := t.Context()

	assigned := activePartner(t, "carrier", 2, []string{"Downtown"}, "09:00", "18:00")
	testOrder := assignedOrder(t, assigned.ID())

	cmd, err := commands.NewUpdateOrderStatusCommand(testOrder.ID(), order.Cancelled)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	partnerRepo := new(MockPartnerRepository)
	metricsRepo := new(MockMetricsRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("PartnerRepository").Return(partnerRepo)
	uow.On("MetricsRepository").Return(metricsRepo)
	orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()
	orderRepo.On("Update", ctx, testOrder).Return(nil).Once()
	partnerRepo.On("Get", ctx, assigned.ID()).Return(assigned, nil).Once()
	partnerRepo.On("ConfirmReleaseOrder", ctx, assigned).Return(nil).Once()
	metricsRepo.On("GetForUpdate", ctx).Return(assignment.NewMetrics(), nil).Once()
	metricsRepo.On("Save", ctx, mock.AnythingOfType("*assignment.Metrics")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil)

	factory := new(MockStatusUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(factory)
	require.NoError(t, handler.Handle(ctx, cmd))

	assert.Equal(t, order.Cancelled, testOrder.Status())
	assert.Equal(t, 1, assigned.CurrentLoad())
	assert.Equal(t, 1, assigned.PartnerMetrics().CancelledOrders)

	saved := metricsRepo.Calls[1].Arguments[1].(*assignment.Metrics)
	assert.Equal(t, int64(1), saved.FailureReasons()[assignment.ReasonOrderCancelled])
}

func TestUpdateOrderStatusCommandHandler_Handle_MissingPartnerTolerated(t *testing.T) {
	ctx := t.Context()

	partnerID := kernel.NewUUID()
	testOrder := assignedOrder(t, partnerID)
	require.NoError(t, testOrder.Pick())

	cmd, err := commands.NewUpdateOrderStatusCommand(testOrder.ID(), order.Delivered)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	partnerRepo := new(MockPartnerRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("PartnerRepository").Return(partnerRepo)
	orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()
	orderRepo.On("Update", ctx, testOrder).Return(nil).Once()
	partnerRepo.On("Get", ctx, partnerID).
		Return(nil, errs.NewObjectNotFoundError("partnerID", partnerID.String())).
		Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil)

	factory := new(MockStatusUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(factory)
	require.NoError(t, handler.Handle(ctx, cmd))

	assert.Equal(t, order.Delivered, testOrder.Status())
	partnerRepo.AssertNotCalled(t, "ConfirmReleaseOrder", ctx, mock.Anything)
}

func TestUpdateOrderStatusCommandHandler_Handle_UnsupportedTarget(t *testing.T) {
	ctx := t.Context()

	testOrder := pendingOrder(t, "Downtown", "12:00")

	cmd, err := commands.NewUpdateOrderStatusCommand(testOrder.ID(), order.Assigned)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()
	uow.On("Rollback", ctx).Return(nil)

	factory := new(MockStatusUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrUnsupportedStatusTarget)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestUpdateOrderStatusCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()

	testOrder := pendingOrder(t, "Downtown", "12:00")

	cmd, err := commands.NewUpdateOrderStatusCommand(testOrder.ID(), order.Delivered)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()
	uow.On("Rollback", ctx).Return(nil)

	factory := new(MockStatusUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Equal(t, order.Pending, testOrder.Status())
}
