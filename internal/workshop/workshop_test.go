package workshop

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AtexDEPR/Sistema-CarMotors-sub000/internal/db"
	"github.com/AtexDEPR/Sistema-CarMotors-sub000/internal/lifecycle"
	"github.com/AtexDEPR/Sistema-CarMotors-sub000/internal/models"
)

type mockServiceCollection struct {
	mock.Mock
}

func (m *mockServiceCollection) InsertService(ctx context.Context, service models.Service) (string, error) {
	args := m.Called(ctx, service)
	return args.String(0), args.Error(1)
}

func (m *mockServiceCollection) FindServiceByID(ctx context.Context, id string) (*models.Service, error) {
	args := m.Called(ctx, id)
	if svc, ok := args.Get(0).(*models.Service); ok {
		return svc, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockServiceCollection) FindServices(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (db.ServiceCursor, error) {
	args := m.Called(ctx, filter)
	if cur, ok := args.Get(0).(db.ServiceCursor); ok {
		return cur, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockServiceCollection) UpdateService(ctx context.Context, id string, service models.Service) error {
	args := m.Called(ctx, id, service)
	return args.Error(0)
}

func (m *mockServiceCollection) DeleteService(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockUsageCollection struct {
	mock.Mock
}

func (m *mockUsageCollection) InsertPartUsage(ctx context.Context, usage models.PartUsage) error {
	args := m.Called(ctx, usage)
	return args.Error(0)
}

func (m *mockUsageCollection) FindUsageByService(ctx context.Context, serviceID string) ([]models.PartUsage, error) {
	args := m.Called(ctx, serviceID)
	if usage, ok := args.Get(0).([]models.PartUsage); ok {
		return usage, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUsageCollection) UpdatePartUsage(ctx context.Context, id string, usage models.PartUsage) error {
	args := m.Called(ctx, id, usage)
	return args.Error(0)
}

func (m *mockUsageCollection) DeletePartUsage(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockDeliveryCollection struct {
	mock.Mock
}

func (m *mockDeliveryCollection) InsertDeliveryOrder(ctx context.Context, order models.DeliveryOrder) (string, error) {
	args := m.Called(ctx, order)
	return args.String(0), args.Error(1)
}

func (m *mockDeliveryCollection) FindDeliveryOrderByID(ctx context.Context, id string) (*models.DeliveryOrder, error) {
	args := m.Called(ctx, id)
	if order, ok := args.Get(0).(*models.DeliveryOrder); ok {
		return order, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDeliveryCollection) FindDeliveryOrderByService(ctx context.Context, serviceID string) (*models.DeliveryOrder, error) {
	args := m.Called(ctx, serviceID)
	if order, ok := args.Get(0).(*models.DeliveryOrder); ok {
		return order, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDeliveryCollection) FindDeliveryOrders(ctx context.Context, filter bson.M) ([]models.DeliveryOrder, error) {
	args := m.Called(ctx, filter)
	if orders, ok := args.Get(0).([]models.DeliveryOrder); ok {
		return orders, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDeliveryCollection) DeleteDeliveryOrder(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockPartCollection struct {
	mock.Mock
}

func (m *mockPartCollection) InsertPart(ctx context.Context, part models.Part) error {
	args := m.Called(ctx, part)
	return args.Error(0)
}

func (m *mockPartCollection) FindPartByID(ctx context.Context, id string) (*models.Part, error) {
	args := m.Called(ctx, id)
	if part, ok := args.Get(0).(*models.Part); ok {
		return part, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPartCollection) FindParts(ctx context.Context, filter bson.M) ([]models.Part, error) {
	args := m.Called(ctx, filter)
	if parts, ok := args.Get(0).([]models.Part); ok {
		return parts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPartCollection) FindLowStockParts(ctx context.Context) ([]models.Part, error) {
	args := m.Called(ctx)
	if parts, ok := args.Get(0).([]models.Part); ok {
		return parts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPartCollection) UpdatePart(ctx context.Context, id string, part models.Part) error {
	args := m.Called(ctx, id, part)
	return args.Error(0)
}

func (m *mockPartCollection) DeletePart(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// recordingPublisher captures announced transitions.
type recordingPublisher struct {
	events [][2]models.ServiceStatus
}

func (p *recordingPublisher) PublishStatusChange(serviceID string, from, to models.ServiceStatus) error {
	p.events = append(p.events, [2]models.ServiceStatus{from, to})
	return nil
}

func newTestOrchestrator() (*Orchestrator, *mockServiceCollection, *mockUsageCollection, *mockDeliveryCollection, *mockPartCollection, *recordingPublisher) {
	services := new(mockServiceCollection)
	usage := new(mockUsageCollection)
	deliveries := new(mockDeliveryCollection)
	parts := new(mockPartCollection)
	publisher := &recordingPublisher{}
	return New(services, usage, deliveries, parts, publisher), services, usage, deliveries, parts, publisher
}

func TestAdvanceService(t *testing.T) {
	o, services, _, _, _, publisher := newTestOrchestrator()
	serviceID := primitive.NewObjectID().Hex()

	services.On("FindServiceByID", mock.Anything, serviceID).
		Return(&models.Service{Status: models.ServicePending}, nil)
	services.On("UpdateService", mock.Anything, serviceID, mock.Anything).Return(nil)

	svc, err := o.AdvanceService(context.Background(), serviceID, models.ServiceInProgress)
	require.NoError(t, err)
	assert.Equal(t, models.ServiceInProgress, svc.Status)
	assert.NotNil(t, svc.StartDate)
	require.Len(t, publisher.events, 1)
	assert.Equal(t, models.ServicePending, publisher.events[0][0])
	assert.Equal(t, models.ServiceInProgress, publisher.events[0][1])
	services.AssertExpectations(t)
}

func TestAdvanceService_InvalidTransitionDoesNotPersist(t *testing.T) {
	o, services, _, _, _, publisher := newTestOrchestrator()
	serviceID := primitive.NewObjectID().Hex()

	services.On("FindServiceByID", mock.Anything, serviceID).
		Return(&models.Service{Status: models.ServicePending}, nil)

	_, err := o.AdvanceService(context.Background(), serviceID, models.ServiceDelivered)
	assert.ErrorIs(t, err, lifecycle.ErrInvalidTransition)
	assert.Empty(t, publisher.events)
	services.AssertNotCalled(t, "UpdateService", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateDeliveryOrder(t *testing.T) {
	o, services, _, deliveries, _, publisher := newTestOrchestrator()
	serviceID := primitive.NewObjectID().Hex()
	orderID := primitive.NewObjectID()
	order := models.DeliveryOrder{ServiceID: serviceID, CustomerSatisfaction: models.Satisfied}

	services.On("FindServiceByID", mock.Anything, serviceID).
		Return(&models.Service{Status: models.ServiceCompleted}, nil)
	deliveries.On("FindDeliveryOrderByService", mock.Anything, serviceID).
		Return(nil, errors.New("not found"))
	services.On("UpdateService", mock.Anything, serviceID, mock.MatchedBy(func(s models.Service) bool {
		return s.Status == models.ServiceDelivered
	})).Return(nil)
	deliveries.On("InsertDeliveryOrder", mock.Anything, order).Return(orderID.Hex(), nil)
	deliveries.On("FindDeliveryOrderByID", mock.Anything, orderID.Hex()).
		Return(&models.DeliveryOrder{ID: orderID, ServiceID: serviceID}, nil)

	created, err := o.CreateDeliveryOrder(context.Background(), order)
	require.NoError(t, err)
	assert.Equal(t, orderID, created.ID)
	require.Len(t, publisher.events, 1)
	assert.Equal(t, models.ServiceDelivered, publisher.events[0][1])
	services.AssertExpectations(t)
	deliveries.AssertExpectations(t)
}

func TestCreateDeliveryOrder_ServiceNotCompleted(t *testing.T) {
	o, services, _, deliveries, _, _ := newTestOrchestrator()
	serviceID := primitive.NewObjectID().Hex()

	services.On("FindServiceByID", mock.Anything, serviceID).
		Return(&models.Service{Status: models.ServiceInProgress}, nil)
	deliveries.On("FindDeliveryOrderByService", mock.Anything, serviceID).
		Return(nil, errors.New("not found"))

	_, err := o.CreateDeliveryOrder(context.Background(), models.DeliveryOrder{ServiceID: serviceID})
	assert.ErrorIs(t, err, lifecycle.ErrNotCompleted)
	services.AssertNotCalled(t, "UpdateService", mock.Anything, mock.Anything, mock.Anything)
	deliveries.AssertNotCalled(t, "InsertDeliveryOrder", mock.Anything, mock.Anything)
}

func TestCreateDeliveryOrder_AlreadyExists(t *testing.T) {
	o, services, _, deliveries, _, _ := newTestOrchestrator()
	serviceID := primitive.NewObjectID().Hex()

	services.On("FindServiceByID", mock.Anything, serviceID).
		Return(&models.Service{Status: models.ServiceCompleted}, nil)
	deliveries.On("FindDeliveryOrderByService", mock.Anything, serviceID).
		Return(&models.DeliveryOrder{ServiceID: serviceID}, nil)

	_, err := o.CreateDeliveryOrder(context.Background(), models.DeliveryOrder{ServiceID: serviceID})
	assert.ErrorIs(t, err, ErrDeliveryOrderExists)
	services.AssertNotCalled(t, "UpdateService", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateDeliveryOrder_InsertFailureRollsBackStatus(t *testing.T) {
	o, services, _, deliveries, _, publisher := newTestOrchestrator()
	serviceID := primitive.NewObjectID().Hex()

	services.On("FindServiceByID", mock.Anything, serviceID).
		Return(&models.Service{Status: models.ServiceCompleted}, nil)
	deliveries.On("FindDeliveryOrderByService", mock.Anything, serviceID).
		Return(nil, errors.New("not found"))
	services.On("UpdateService", mock.Anything, serviceID, mock.MatchedBy(func(s models.Service) bool {
		return s.Status == models.ServiceDelivered
	})).Return(nil).Once()
	deliveries.On("InsertDeliveryOrder", mock.Anything, mock.Anything).
		Return("", errors.New("write failed"))
	// The rollback write restores COMPLETED.
	services.On("UpdateService", mock.Anything, serviceID, mock.MatchedBy(func(s models.Service) bool {
		return s.Status == models.ServiceCompleted
	})).Return(nil).Once()

	_, err := o.CreateDeliveryOrder(context.Background(), models.DeliveryOrder{ServiceID: serviceID})
	require.Error(t, err)
	assert.Empty(t, publisher.events)
	services.AssertExpectations(t)
}

func TestDeleteDeliveryOrder(t *testing.T) {
	o, services, _, deliveries, _, publisher := newTestOrchestrator()
	serviceID := primitive.NewObjectID().Hex()
	orderID := primitive.NewObjectID().Hex()

	deliveries.On("FindDeliveryOrderByID", mock.Anything, orderID).
		Return(&models.DeliveryOrder{ServiceID: serviceID}, nil)
	services.On("FindServiceByID", mock.Anything, serviceID).
		Return(&models.Service{Status: models.ServiceDelivered}, nil)
	services.On("UpdateService", mock.Anything, serviceID, mock.MatchedBy(func(s models.Service) bool {
		return s.Status == models.ServiceCompleted
	})).Return(nil)
	deliveries.On("DeleteDeliveryOrder", mock.Anything, orderID).Return(nil)

	err := o.DeleteDeliveryOrder(context.Background(), orderID)
	require.NoError(t, err)
	require.Len(t, publisher.events, 1)
	assert.Equal(t, models.ServiceDelivered, publisher.events[0][0])
	assert.Equal(t, models.ServiceCompleted, publisher.events[0][1])
	services.AssertExpectations(t)
	deliveries.AssertExpectations(t)
}

func TestDeleteDeliveryOrder_ServiceNotDelivered(t *testing.T) {
	o, services, _, deliveries, _, _ := newTestOrchestrator()
	serviceID := primitive.NewObjectID().Hex()
	orderID := primitive.NewObjectID().Hex()

	deliveries.On("FindDeliveryOrderByID", mock.Anything, orderID).
		Return(&models.DeliveryOrder{ServiceID: serviceID}, nil)
	services.On("FindServiceByID", mock.Anything, serviceID).
		Return(&models.Service{Status: models.ServiceCompleted}, nil)

	err := o.DeleteDeliveryOrder(context.Background(), orderID)
	assert.ErrorIs(t, err, lifecycle.ErrNotDelivered)
	deliveries.AssertNotCalled(t, "DeleteDeliveryOrder", mock.Anything, mock.Anything)
}

func TestDeleteDeliveryOrder_DeleteFailureRollsBackStatus(t *testing.T) {
	o, services, _, deliveries, _, publisher := newTestOrchestrator()
	serviceID := primitive.NewObjectID().Hex()
	orderID := primitive.NewObjectID().Hex()

	deliveries.On("FindDeliveryOrderByID", mock.Anything, orderID).
		Return(&models.DeliveryOrder{ServiceID: serviceID}, nil)
	services.On("FindServiceByID", mock.Anything, serviceID).
		Return(&models.Service{Status: models.ServiceDelivered}, nil)
	services.On("UpdateService", mock.Anything, serviceID, mock.MatchedBy(func(s models.Service) bool {
		return s.Status == models.ServiceCompleted
	})).Return(nil).Once()
	deliveries.On("DeleteDeliveryOrder", mock.Anything, orderID).
		Return(errors.New("delete failed"))
	services.On("UpdateService", mock.Anything, serviceID, mock.MatchedBy(func(s models.Service) bool {
		return s.Status == models.ServiceDelivered
	})).Return(nil).Once()

	err := o.DeleteDeliveryOrder(context.Background(), orderID)
	require.Error(t, err)
	assert.Empty(t, publisher.events)
	services.AssertExpectations(t)
}

func TestServiceInvoice(t *testing.T) {
	o, services, usage, _, _, _ := newTestOrchestrator()
	serviceID := primitive.NewObjectID().Hex()

	services.On("FindServiceByID", mock.Anything, serviceID).
		Return(&models.Service{LaborCost: 40.00}, nil)
	usage.On("FindUsageByService", mock.Anything, serviceID).
		Return([]models.PartUsage{
			{Quantity: 2, UnitPrice: 5.00},
			{Quantity: 1, UnitPrice: 15.00},
		}, nil)

	inv, err := o.ServiceInvoice(context.Background(), serviceID)
	require.NoError(t, err)
	assert.Equal(t, "25", inv.PartsCost.String())
	assert.Equal(t, "65", inv.Subtotal.String())
	assert.Equal(t, "12.35", inv.Taxes.String())
	assert.Equal(t, "77.35", inv.Total.String())
}

func TestRecordPartUsage(t *testing.T) {
	o, services, usage, _, parts, _ := newTestOrchestrator()
	serviceID := primitive.NewObjectID().Hex()
	partID := primitive.NewObjectID().Hex()

	services.On("FindServiceByID", mock.Anything, serviceID).
		Return(&models.Service{Status: models.ServiceInProgress}, nil)
	parts.On("FindPartByID", mock.Anything, partID).
		Return(&models.Part{QuantityInStock: 10, MinimumStock: 2, UnitPrice: 9.99}, nil)
	usage.On("InsertPartUsage", mock.Anything, mock.MatchedBy(func(u models.PartUsage) bool {
		return u.Quantity == 3 && u.TotalPrice == 29.97
	})).Return(nil)
	parts.On("UpdatePart", mock.Anything, partID, mock.MatchedBy(func(p models.Part) bool {
		return p.QuantityInStock == 7
	})).Return(nil)

	u, err := o.RecordPartUsage(context.Background(), serviceID, partID, 3)
	require.NoError(t, err)
	assert.Equal(t, 29.97, u.TotalPrice)
	usage.AssertExpectations(t)
	parts.AssertExpectations(t)
}

func TestRecordPartUsage_InsufficientStock(t *testing.T) {
	o, services, usage, _, parts, _ := newTestOrchestrator()
	serviceID := primitive.NewObjectID().Hex()
	partID := primitive.NewObjectID().Hex()

	services.On("FindServiceByID", mock.Anything, serviceID).
		Return(&models.Service{Status: models.ServiceInProgress}, nil)
	parts.On("FindPartByID", mock.Anything, partID).
		Return(&models.Part{QuantityInStock: 2, UnitPrice: 9.99}, nil)

	_, err := o.RecordPartUsage(context.Background(), serviceID, partID, 3)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	usage.AssertNotCalled(t, "InsertPartUsage", mock.Anything, mock.Anything)
	parts.AssertNotCalled(t, "UpdatePart", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordPartUsage_UnknownService(t *testing.T) {
	o, services, _, _, parts, _ := newTestOrchestrator()
	serviceID := primitive.NewObjectID().Hex()

	services.On("FindServiceByID", mock.Anything, serviceID).
		Return(nil, errors.New("not found"))

	_, err := o.RecordPartUsage(context.Background(), serviceID, "whatever", 1)
	require.ErrorIs(t, err, ErrServiceNotFound)
	parts.AssertNotCalled(t, "FindPartByID", mock.Anything, mock.Anything)
}

func TestAdvanceService_UnknownService(t *testing.T) {
	o, services, _, _, _, _ := newTestOrchestrator()
	serviceID := primitive.NewObjectID().Hex()

	services.On("FindServiceByID", mock.Anything, serviceID).
		Return(nil, errors.New("not found"))

	_, err := o.AdvanceService(context.Background(), serviceID, models.ServiceInProgress)
	require.ErrorIs(t, err, ErrServiceNotFound)
	services.AssertNotCalled(t, "UpdateService", mock.Anything, mock.Anything, mock.Anything)
}
