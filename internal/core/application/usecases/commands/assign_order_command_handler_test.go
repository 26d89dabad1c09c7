package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/partner"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAssignHandler(factory *MockAssignmentUoWFactory) commands.AssignOrderCommandHandler {
	return commands.NewAssignOrderCommandHandler(factory, services.NewDispatcher(partner.DefaultMaxLoad))
}

func TestAssignOrderCommandHandler_Handle_AutomaticSuccess(t *testing.T) {
	ctx := t.Context()

	testOrder := pendingOrder(t, "Downtown", "12:00")
	busy := activePartner(t, "busy", 2, []string{"Downtown"}, "09:00", "18:00")
	free := activePartner(t, "free", 0, []string{"Downtown"}, "09:00", "18:00")

	cmd, err := commands.NewAssignOrderCommand(testOrder.ID(), nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	partnerRepo := new(MockPartnerRepository)
	ledgerRepo := new(MockAssignmentRepository)
	metricsRepo := new(MockMetricsRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("PartnerRepository").Return(partnerRepo)
	uow.On("AssignmentRepository").Return(ledgerRepo)
	uow.On("MetricsRepository").Return(metricsRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil)

	orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()
	partnerRepo.On("GetAll", ctx).Return([]*partner.Partner{busy, free}, nil).Once()
	partnerRepo.On("ConfirmTakeOrder", ctx, free, partner.DefaultMaxLoad).Return(nil).Once()
	orderRepo.On("ConfirmAssignment", ctx, testOrder).Return(nil).Once()
	ledgerRepo.On("Add", ctx, mock.AnythingOfType("*assignment.Entry")).Return(nil).Once()
	metricsRepo.On("GetForUpdate", ctx).Return(assignment.NewMetrics(), nil).Once()
	ledgerRepo.On("CountByStatus", ctx).Return(int64(1), int64(1), nil).Once()
	metricsRepo.On("Save", ctx, mock.AnythingOfType("*assignment.Metrics")).Return(nil).Once()

	factory := new(MockAssignmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	result, err := newAssignHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, result.Partner.ID.IsEqual(free.ID()))
	assert.Equal(t, "free", result.Partner.Name)
	assert.Equal(t, order.Assigned, result.Order.Status())

	// Least loaded partner takes the order.
	assert.Equal(t, 1, free.CurrentLoad())
	assert.Equal(t, 2, busy.CurrentLoad())

	entry := ledgerRepo.Calls[0].Arguments[1].(*assignment.Entry)
	assert.True(t, entry.IsSuccess())
	require.NotNil(t, entry.PartnerID())
	assert.True(t, entry.PartnerID().IsEqual(free.ID()))

	saved := metricsRepo.Calls[1].Arguments[1].(*assignment.Metrics)
	assert.Equal(t, int64(1), saved.TotalAssigned())
	assert.InDelta(t, 100, saved.SuccessRate(), 0.001)

	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	partnerRepo.AssertExpectations(t)
	ledgerRepo.AssertExpectations(t)
	metricsRepo.AssertExpectations(t)
}

func TestAssignOrderCommandHandler_Handle_ExplicitSuccess(t *testing.T) {
	ctx := t.Context()

	testOrder := pendingOrder(t, "Downtown", "12:00")
	requested := activePartner(t, "requested", 1, []string{"Downtown"}, "09:00", "18:00")
	requestedID := requested.ID()

	cmd, err := commands.NewAssignOrderCommand(testOrder.ID(), &requestedID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	partnerRepo := new(MockPartnerRepository)
	ledgerRepo := new(MockAssignmentRepository)
	metricsRepo := new(MockMetricsRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("PartnerRepository").Return(partnerRepo)
	uow.On("AssignmentRepository").Return(ledgerRepo)
	uow.On("MetricsRepository").Return(metricsRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil)

	orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()
	partnerRepo.On("Get", ctx, requestedID).Return(requested, nil).Once()
	partnerRepo.On("ConfirmTakeOrder", ctx, requested, partner.DefaultMaxLoad).Return(nil).Once()
	orderRepo.On("ConfirmAssignment", ctx, testOrder).Return(nil).Once()
	ledgerRepo.On("Add", ctx, mock.AnythingOfType("*assignment.Entry")).Return(nil).Once()
	metricsRepo.On("GetForUpdate", ctx).Return(assignment.NewMetrics(), nil).Once()
	ledgerRepo.On("CountByStatus", ctx).Return(int64(1), int64(1), nil).Once()
	metricsRepo.On("Save", ctx, mock.AnythingOfType("*assignment.Metrics")).Return(nil).Once()

	factory := new(MockAssignmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	result, err := newAssignHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, result.Partner.ID.IsEqual(requestedID))
	assert.Equal(t, 2, requested.CurrentLoad())
}

func TestAssignOrderCommandHandler_Handle_ExplicitRejections(t *testing.T) {
	makePartner := map[string]func(t *testing.T) *partner.Partner{
		"inactive": func(t *testing.T) *partner.Partner {
			p := activePartner(t, "p", 0, []string{"Downtown"}, "09:00", "18:00")
			require.NoError(t, p.SetStatus(partner.Inactive))
			return p
		},
		"full": func(t *testing.T) *partner.Partner {
			return activePartner(t, "p", partner.DefaultMaxLoad, []string{"Downtown"}, "09:00", "18:00")
		},
		"wrong area": func(t *testing.T) *partner.Partner {
			return activePartner(t, "p", 0, []string{"Uptown"}, "09:00", "18:00")
		},
		"off shift": func(t *testing.T) *partner.Partner {
			return activePartner(t, "p", 0, []string{"Downtown"}, "13:00", "18:00")
		},
	}

	cases := []struct {
		name       string
		wantErr    error
		wantReason string
	}{
		{"inactive", services.ErrPartnerInactive, assignment.ReasonPartnerInactive},
		{"full", partner.ErrPartnerAtCapacity, assignment.ReasonPartnerAtCapacity},
		{"wrong area", services.ErrAreaNotServed, assignment.ReasonAreaNotServed},
		{"off shift", services.ErrOutsideShift, assignment.ReasonOutsideShift},
	}

	for _, tc := range cases {
		t.Run("should record "+tc.wantReason, func(t *testing.T) {
			ctx := t.Context()

			testOrder := pendingOrder(t, "Downtown", "12:00")
			requested := makePartner[tc.name](t)
			requestedID := requested.ID()

			cmd, err := commands.NewAssignOrderCommand(testOrder.ID(), &requestedID)
			require.NoError(t, err)

			orderRepo := new(MockOrderRepository)
			partnerRepo := new(MockPartnerRepository)
			ledgerRepo := new(MockAssignmentRepository)
			metricsRepo := new(MockMetricsRepository)
			uow := new(MockUoW)

			uow.On("Begin", ctx).Return(nil)
			uow.On("OrderRepository").Return(orderRepo)
			uow.On("PartnerRepository").Return(partnerRepo)
			uow.On("AssignmentRepository").Return(ledgerRepo)
			uow.On("MetricsRepository").Return(metricsRepo)
			uow.On("Commit", ctx).Return(nil).Once()
			uow.On("Rollback", ctx).Return(nil)

			orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()
			partnerRepo.On("Get", ctx, requestedID).Return(requested, nil).Once()
			ledgerRepo.On("Add", ctx, mock.AnythingOfType("*assignment.Entry")).Return(nil).Once()
			metricsRepo.On("GetForUpdate", ctx).Return(assignment.NewMetrics(), nil).Once()
			ledgerRepo.On("CountByStatus", ctx).Return(int64(1), int64(0), nil).Once()
			metricsRepo.On("Save", ctx, mock.AnythingOfType("*assignment.Metrics")).Return(nil).Once()

			factory := new(MockAssignmentUoWFactory)
			factory.On("Create").Return(uow).Once()

			_, err = newAssignHandler(factory).Handle(ctx, cmd)

			require.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, order.Pending, testOrder.Status())

			// The failed attempt still lands in the ledger with the rejected partner.
			entry := ledgerRepo.Calls[0].Arguments[1].(*assignment.Entry)
			assert.False(t, entry.IsSuccess())
			assert.Equal(t, tc.wantReason, entry.Reason())
			require.NotNil(t, entry.PartnerID())
			assert.True(t, entry.PartnerID().IsEqual(requestedID))

			saved := metricsRepo.Calls[1].Arguments[1].(*assignment.Metrics)
			assert.Equal(t, int64(1), saved.TotalAssigned())
			assert.Equal(t, int64(1), saved.FailureReasons()[tc.wantReason])
		})
	}
}

func TestAssignOrderCommandHandler_Handle_NoEligiblePartners(t *testing.T) {
	ctx := t.Context()

	testOrder := pendingOrder(t, "Downtown", "12:00")
	elsewhere := activePartner(t, "elsewhere", 0, []string{"Uptown"}, "09:00", "18:00")

	cmd, err := commands.NewAssignOrderCommand(testOrder.ID(), nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	partnerRepo := new(MockPartnerRepository)
	ledgerRepo := new(MockAssignmentRepository)
	metricsRepo := new(MockMetricsRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("PartnerRepository").Return(partnerRepo)
	uow.On("AssignmentRepository").Return(ledgerRepo)
	uow.On("MetricsRepository").Return(metricsRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil)

	orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()
	partnerRepo.On("GetAll", ctx).Return([]*partner.Partner{elsewhere}, nil).Once()
	ledgerRepo.On("Add", ctx, mock.AnythingOfType("*assignment.Entry")).Return(nil).Once()
	metricsRepo.On("GetForUpdate", ctx).Return(assignment.NewMetrics(), nil).Once()
	ledgerRepo.On("CountByStatus", ctx).Return(int64(1), int64(0), nil).Once()
	metricsRepo.On("Save", ctx, mock.AnythingOfType("*assignment.Metrics")).Return(nil).Once()

	factory := new(MockAssignmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	_, err = newAssignHandler(factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, services.ErrNoEligiblePartners)

	// Automatic failures carry no partner reference.
	entry := ledgerRepo.Calls[0].Arguments[1].(*assignment.Entry)
	assert.Equal(t, assignment.ReasonNoEligiblePartners, entry.Reason())
	assert.Nil(t, entry.PartnerID())
}

func TestAssignOrderCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()

	cmd, err := commands.NewAssignOrderCommand(orderID, nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	ledgerRepo := new(MockAssignmentRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Rollback", ctx).Return(nil)

	orderRepo.On("Get", ctx, orderID).Return(nil, errs.NewObjectNotFoundError("orderID", orderID.String())).Once()

	factory := new(MockAssignmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	_, err = newAssignHandler(factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrOrderNotFound)
	// Rejected requests never reach the ledger.
	ledgerRepo.AssertNotCalled(t, "Add", ctx, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestAssignOrderCommandHandler_Handle_AlreadyAssigned(t *testing.T) {
	ctx := t.Context()

	testOrder := pendingOrder(t, "Downtown", "12:00")
	require.NoError(t, testOrder.Assign(kernel.NewUUID()))

	cmd, err := commands.NewAssignOrderCommand(testOrder.ID(), nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	ledgerRepo := new(MockAssignmentRepository)
	metricsRepo := new(MockMetricsRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("AssignmentRepository").Return(ledgerRepo)
	uow.On("MetricsRepository").Return(metricsRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil)

	orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()
	ledgerRepo.On("Add", ctx, mock.AnythingOfType("*assignment.Entry")).Return(nil).Once()
	metricsRepo.On("GetForUpdate", ctx).Return(assignment.NewMetrics(), nil).Once()
	ledgerRepo.On("CountByStatus", ctx).Return(int64(1), int64(0), nil).Once()
	metricsRepo.On("Save", ctx, mock.AnythingOfType("*assignment.Metrics")).Return(nil).Once()

	factory := new(MockAssignmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	_, err = newAssignHandler(factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrOrderAlreadyAssigned)
	assert.Contains(t, err.Error(), "assigned")

	entry := ledgerRepo.Calls[0].Arguments[1].(*assignment.Entry)
	assert.Equal(t, "Order is already assigned", entry.Reason())
}

func TestAssignOrderCommandHandler_Handle_OrderRaceLost(t *testing.T) {
	ctx := t.Context()

	testOrder := pendingOrder(t, "Downtown", "12:00")
	free := activePartner(t, "free", 0, []string{"Downtown"}, "09:00", "18:00")

	cmd, err := commands.NewAssignOrderCommand(testOrder.ID(), nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	partnerRepo := new(MockPartnerRepository)
	ledgerRepo := new(MockAssignmentRepository)
	metricsRepo := new(MockMetricsRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("PartnerRepository").Return(partnerRepo)
	uow.On("AssignmentRepository").Return(ledgerRepo)
	uow.On("MetricsRepository").Return(metricsRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil)

	orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()
	partnerRepo.On("GetAll", ctx).Return([]*partner.Partner{free}, nil).Once()
	partnerRepo.On("ConfirmTakeOrder", ctx, free, partner.DefaultMaxLoad).Return(nil).Once()
	orderRepo.On("ConfirmAssignment", ctx, testOrder).Return(ports.ErrConcurrentModification).Once()
	ledgerRepo.On("Add", ctx, mock.AnythingOfType("*assignment.Entry")).Return(nil).Once()
	metricsRepo.On("GetForUpdate", ctx).Return(assignment.NewMetrics(), nil).Once()
	ledgerRepo.On("CountByStatus", ctx).Return(int64(1), int64(0), nil).Once()
	metricsRepo.On("Save", ctx, mock.AnythingOfType("*assignment.Metrics")).Return(nil).Once()

	factory := new(MockAssignmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	_, err = newAssignHandler(factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrOrderAlreadyAssigned)
}
